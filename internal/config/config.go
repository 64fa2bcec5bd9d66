// Package config resolves Sniffer defaults from CLI flags, environment
// variables, and an optional config file, in that precedence order, using
// viper. The core csvqsniffer.Sniffer stays a plain struct — this package
// only decides how the CLI populates one.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

const (
	envPrefix = "CSVQSNIFFER"

	KeyMaxRows = "max-rows"
	KeyMinRows = "min-rows"
)

// Sniff holds the resolved settings the CLI passes into csvqsniffer.Sniffer.
type Sniff struct {
	MaxRows int
	MinRows int
}

// Load builds a viper instance seeded with defaults, then layers in an
// optional config file (searched as .csvqsniffer.{yaml,yml,json} in the
// current directory and $HOME) and CSVQSNIFFER_-prefixed environment
// variables, and finally applies any explicitly-set flag values in
// flagMaxRows/flagMinRows (zero means "flag not set, use default/file/env").
func Load(configFile string, flagMaxRows, flagMinRows int) (Sniff, error) {
	v := viper.New()
	v.SetDefault(KeyMaxRows, 1000)
	v.SetDefault(KeyMinRows, 2)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".csvqsniffer")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound && configFile != "" {
			return Sniff{}, err
		}
	}

	if flagMaxRows > 0 {
		v.Set(KeyMaxRows, flagMaxRows)
	}
	if flagMinRows > 0 {
		v.Set(KeyMinRows, flagMinRows)
	}

	return Sniff{
		MaxRows: v.GetInt(KeyMaxRows),
		MinRows: v.GetInt(KeyMinRows),
	}, nil
}
