// Copyright (c) 2022 The AuxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.
package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io/ioutil"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gitlab.com/auxnet/auxnetd/auxpow"
	"gitlab.com/auxnet/auxnetd/types/chainhash"
)

func (app *App) BuildFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "equihash",
			Usage: "shape the fake parent as an equihash block",
		},
		&cli.BoolFlag{
			Name:  "zhash",
			Usage: "use the Zhash equihash variant (implies equihash)",
		},
		&cli.BoolFlag{
			Name:  "stake",
			Usage: "use the proof-of-stake coinbase layout",
		},
		&cli.StringFlag{
			Name:  "prev",
			Usage: "hash of the previous auxiliary block",
		},
		&cli.StringFlag{
			Name:  "merkle-root",
			Usage: "transaction merkle root of the auxiliary block",
		},
		&cli.Int64Flag{
			Name:  "header-version",
			Value: 1,
			Usage: "base version bits of the auxiliary header",
		},
	}
}

func (app *App) auxVersion(c *cli.Context) int32 {
	var version int32
	if c.Bool("equihash") || c.Bool("zhash") {
		version |= auxpow.VersionEquihash
	}
	if c.Bool("zhash") {
		version |= auxpow.VersionZhash
	}
	if c.Bool("stake") {
		version |= auxpow.VersionStake
	}
	return version
}

func (app *App) BuildCmd(c *cli.Context) error {
	hdr := &auxpow.BlockHeader{
		Version: auxpow.BlockVersion(int32(c.Int64("header-version")),
			app.params.ChainID, false),
		Timestamp: time.Unix(time.Now().Unix(), 0),
	}

	if prev := c.String("prev"); prev != "" {
		if err := chainhash.Decode(&hdr.PrevBlock, prev); err != nil {
			return cli.Exit(errors.Wrap(err, "invalid prev hash"), 1)
		}
	}
	if root := c.String("merkle-root"); root != "" {
		if err := chainhash.Decode(&hdr.MerkleRoot, root); err != nil {
			return cli.Exit(errors.Wrap(err, "invalid merkle root"), 1)
		}
	}

	err := auxpow.InitAuxPow(hdr, app.auxVersion(c), app.params)
	if err != nil {
		return cli.Exit(errors.Wrap(err, "unable to build aux pow"), 1)
	}

	buf := new(bytes.Buffer)
	if err := hdr.Serialize(buf); err != nil {
		return cli.Exit(errors.Wrap(err, "unable to serialize header"), 1)
	}

	fmt.Println(hex.EncodeToString(buf.Bytes()))
	return nil
}

func (app *App) VerifyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "header",
			Usage: "hex-encoded auxiliary header with attached evidence",
		},
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Usage:   "file with the hex-encoded header, overrides --header",
		},
	}
}

func (app *App) readHeader(c *cli.Context) (*auxpow.BlockHeader, error) {
	raw := c.String("header")
	if file := c.String("input"); file != "" {
		data, err := ioutil.ReadFile(file)
		if err != nil {
			return nil, errors.Wrap(err, "unable to read input file")
		}
		raw = strings.TrimSpace(string(data))
	}
	if raw == "" {
		return nil, errors.New("no header provided, use --header or --input")
	}

	decoded, err := hex.DecodeString(raw)
	if err != nil {
		return nil, errors.Wrap(err, "header is not valid hex")
	}

	hdr := new(auxpow.BlockHeader)
	if err := hdr.Deserialize(bytes.NewReader(decoded)); err != nil {
		return nil, errors.Wrap(err, "unable to decode header")
	}
	return hdr, nil
}

func (app *App) VerifyCmd(c *cli.Context) error {
	hdr, err := app.readHeader(c)
	if err != nil {
		return cli.Exit(err, 1)
	}
	if !hdr.IsAuxPow() {
		return cli.Exit("header carries no merged-mining evidence", 1)
	}

	err = hdr.AuxPow.Check(hdr.BlockHash(), app.params.ChainID, app.params)
	if err != nil {
		var ruleErr auxpow.RuleError
		if errors.As(err, &ruleErr) {
			fmt.Printf("REJECTED: %s (%s)\n", ruleErr.Description,
				ruleErr.ErrorCode)
			return cli.Exit("", 1)
		}
		return cli.Exit(err, 1)
	}

	fmt.Printf("OK: block %s is backed by parent %s\n",
		hdr.BlockHash(), hdr.AuxPow.Parent.BlockHash())
	return nil
}

func (app *App) InspectCmd(c *cli.Context) error {
	hdr, err := app.readHeader(c)
	if err != nil {
		return cli.Exit(err, 1)
	}

	fmt.Printf("block hash:  %s\n", hdr.BlockHash())
	fmt.Printf("chain id:    %d\n", hdr.ChainID())
	fmt.Printf("aux pow:     %v\n", hdr.IsAuxPow())
	fmt.Print(spew.Sdump(hdr))
	return nil
}
