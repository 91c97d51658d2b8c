// Copyright (c) 2022 The AuxNetwork developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.
package main

import (
	"io/ioutil"
	"os"

	"github.com/pkg/errors"
	"gitlab.com/auxnet/auxnetd/corelog"
	"gitlab.com/auxnet/auxnetd/types/chaincfg"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Net     string         `yaml:"net"`
	Logging corelog.Config `yaml:"logging"`
}

func defaultConfig() Config {
	return Config{
		Net:     chaincfg.MainNetParams.Name,
		Logging: corelog.Config{}.Default(),
	}
}

func (cfg *Config) NetParams() *chaincfg.Params {
	return chaincfg.ParamsByName(cfg.Net)
}

func parseConfig(path string) (Config, error) {
	cfg := defaultConfig()

	rawFile, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		// Missing configuration file just means defaults.
		return cfg, nil
	}
	if err != nil {
		return Config{}, errors.Wrap(err, "unable to read configuration")
	}

	if err = yaml.Unmarshal(rawFile, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "unable to decode configuration")
	}

	return cfg, nil
}
