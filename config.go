package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/b97tsk/almanac/internal/logging"
)

const (
	_envPrefix      = "ALMANAC"
	_configName     = "almanac"
	_defaultMode    = "points"
	_defaultFormat  = "text"
	_defaultLevel   = "warn"
	_defaultMaxSize = 1 // MiB
)

type _Config struct {
	Mode   string     `mapstructure:"mode"`
	Format string     `mapstructure:"format"`
	Log    _LogConfig `mapstructure:"log"`
}

type _LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

func (c _LogConfig) logging() logging.Config {
	return logging.Config{
		Level:      c.Level,
		File:       c.File,
		MaxSize:    c.MaxSize,
		MaxBackups: c.MaxBackups,
		MaxAge:     c.MaxAge,
	}
}

func _newViper() *viper.Viper {
	v := viper.New()
	v.SetDefault("mode", _defaultMode)
	v.SetDefault("format", _defaultFormat)
	v.SetDefault("log.level", _defaultLevel)
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", _defaultMaxSize)
	v.SetDefault("log.max_backups", 2)
	v.SetDefault("log.max_age", 30)
	v.SetEnvPrefix(_envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// _bindFlags maps config keys onto the flags that override them.
func _bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		f := flags.Lookup(name)
		if f == nil {
			return fmt.Errorf("no flag %q for %s", name, key)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

// _loadConfig reads path, or ./almanac.yaml when path is empty and such a
// file exists, on top of defaults, environment and flags.
func _loadConfig(v *viper.Viper, path string) (cfg _Config, err error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(_configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
	}
	if err = v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, cfg.validate()
}

func (c _Config) validate() error {
	switch c.Mode {
	case "points", "pairs":
	default:
		return fmt.Errorf("invalid mode %q (want points or pairs)", c.Mode)
	}
	switch c.Format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid format %q (want text, json or yaml)", c.Format)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}
