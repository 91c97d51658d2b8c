// Copyright (c) 2022 The AuxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
	"gitlab.com/auxnet/auxnetd/auxpow"
	"gitlab.com/auxnet/auxnetd/corelog"
	"gitlab.com/auxnet/auxnetd/types/chaincfg"
)

func main() {
	app := &App{}
	cliApp := &cli.App{
		Name:   "auxpow-tool",
		Usage:  "build, verify, and inspect merged-mining evidence",
		Flags:  app.InitFlags(),
		Before: app.InitCfg,
		Commands: []*cli.Command{
			{
				Name:   "build",
				Usage:  "attach minimal merged-mining evidence to a fresh header",
				Flags:  app.BuildFlags(),
				Action: app.BuildCmd,
			},
			{
				Name:   "verify",
				Usage:  "run the consensus checks on a serialized header",
				Flags:  app.VerifyFlags(),
				Action: app.VerifyCmd,
			},
			{
				Name:   "inspect",
				Usage:  "decode a serialized header and dump its structure",
				Flags:  app.VerifyFlags(),
				Action: app.InspectCmd,
			},
		},
	}

	err := cliApp.Run(os.Args)
	if err != nil {
		println(err.Error())
		os.Exit(1)
	}
}

type App struct {
	config Config
	params *chaincfg.Params
}

func (app *App) InitFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Value:   "./config.yaml",
			Usage:   "path to configuration",
		},
		&cli.StringFlag{
			Name:    "net",
			Value:   "",
			EnvVars: []string{"AUXPOW_NET"},
			Usage:   "network name, will override value from config file",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "log the rejection reasons of the consensus checks",
		},
	}
}

func (app *App) InitCfg(c *cli.Context) error {
	var err error
	app.config, err = parseConfig(c.String("config"))
	if err != nil {
		return cli.Exit(err, 1)
	}

	if net := c.String("net"); net != "" {
		app.config.Net = net
	}

	app.params = app.config.NetParams()
	if app.params == nil {
		return cli.Exit("unknown network "+app.config.Net, 1)
	}

	level := zerolog.InfoLevel
	if c.Bool("debug") {
		level = zerolog.DebugLevel
	}
	auxpow.UseLogger(corelog.New("auxpow", level, app.config.Logging))

	return nil
}
