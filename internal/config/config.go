/*
 * Copyright (c) 2025 Hardiyanto Y -Ebiet.
 * This software is part of the HDX (Hardix Audio) project.
 * This code is provided "as is", without warranty of any kind.
 */

// Package config reads the deck settings from ~/.hdx-deck (JSON), the
// HDXDECK_* environment and built in defaults, in that order of
// precedence from last to first.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"hdxdeck/pkg/defaults"

	"github.com/spf13/viper"
)

type Config struct {
	Library          string  `mapstructure:"library"`
	Start            int     `mapstructure:"start"`
	Socket           string  `mapstructure:"socket"`
	Preferences      string  `mapstructure:"preferences"`
	PreferencesQuota int64   `mapstructure:"preferences_quota"`
	SeekStep         float64 `mapstructure:"seek_step"`
	VolumeStep       float64 `mapstructure:"volume_step"`
	SampleRate       int     `mapstructure:"sample_rate"`
	Headless         bool    `mapstructure:"headless"`
	LogFile          string  `mapstructure:"log_file"`
	LogLevel         string  `mapstructure:"log_level"`
}

// New returns a viper instance with the deck's search paths, env
// binding and defaults.
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigName(defaults.ConfigName)
	v.SetConfigType("json")
	v.AddConfigPath("$HOME")
	v.AddConfigPath(".")

	v.SetEnvPrefix(defaults.EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("library", ".")
	v.SetDefault("start", 0)
	v.SetDefault("socket", defaults.SocketFile)
	v.SetDefault("preferences", filepath.Join("$HOME", defaults.PreferencesFile))
	v.SetDefault("preferences_quota", defaults.PreferencesQuota)
	v.SetDefault("seek_step", defaults.SeekStep)
	v.SetDefault("volume_step", defaults.VolumeStep)
	v.SetDefault("sample_rate", defaults.SampleRate)
	v.SetDefault("headless", false)
	v.SetDefault("log_file", filepath.Join("$HOME", defaults.LogFile))
	v.SetDefault("log_level", "info")
	return v
}

// Load reads the config file if there is one. A missing file is fine.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	c.Library = expandHome(c.Library)
	c.Socket = expandHome(c.Socket)
	c.Preferences = expandHome(c.Preferences)
	c.LogFile = expandHome(c.LogFile)

	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	switch {
	case c.Start < 0:
		return fmt.Errorf("config: start must be >= 0, got %d", c.Start)
	case c.SeekStep <= 0:
		return fmt.Errorf("config: seek_step must be > 0, got %g", c.SeekStep)
	case c.VolumeStep <= 0 || c.VolumeStep > 1:
		return fmt.Errorf("config: volume_step must be in (0, 1], got %g", c.VolumeStep)
	case c.SampleRate <= 0:
		return fmt.Errorf("config: sample_rate must be > 0, got %d", c.SampleRate)
	case c.Socket == "":
		return errors.New("config: socket must not be empty")
	}
	return nil
}

func expandHome(p string) string {
	if !strings.Contains(p, "$HOME") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	return strings.ReplaceAll(p, "$HOME", home)
}
