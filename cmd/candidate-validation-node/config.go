// Copyright 2024 ChainSafe Systems (ON)
// SPDX-License-Identifier: LGPL-3.0-only

package main

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds everything the candidate-validation node needs to start. It is the
// process-wide configuration of a PVF host: where to cache compiled PVF artifacts, and
// which worker executable to spawn for them. This core never reads either path itself.
// The in-process reference host this binary runs has no artifact cache and spawns no
// worker, so neither path is passed to it: both are only required, validated, and
// logged at startup.
type Config struct {
	ArtifactsCachePath string `mapstructure:"artifacts_cache_path" validate:"required"`
	ProgramPath        string `mapstructure:"program_path" validate:"required"`
	MetricsAddr        string `mapstructure:"metrics_addr"`
	LogLevel           string `mapstructure:"log_level"`
}

var configValidator = validator.New()

// loadConfig reads configuration from (in increasing precedence) a config file, the
// CANDIDATE_VALIDATION_ environment prefix, and flags already bound into v, then
// validates the result.
func loadConfig(v *viper.Viper) (*Config, error) {
	v.SetDefault("log_level", "info")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	if err := configValidator.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}
