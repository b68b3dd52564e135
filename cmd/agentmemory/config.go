package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hupe1980/agentmemory/logging"
	"github.com/hupe1980/agentmemory/persist"
)

// config carries the CLI settings resolved from flags, environment variables
// (AGENTMEMORY_*) and the optional config file, in that precedence order.
type config struct {
	DataDir    string `mapstructure:"data_dir"`
	Format     string `mapstructure:"format"`
	Capacity   int    `mapstructure:"capacity"`
	PatternCap int    `mapstructure:"pattern_cap"`
	LogLevel   string `mapstructure:"log_level"`
	LogFormat  string `mapstructure:"log_format"`
}

func loadConfig(cmd *cobra.Command) (*config, error) {
	v := viper.New()

	v.SetDefault("data_dir", filepath.Join(xdg.DataHome, "agentmemory"))
	v.SetDefault("format", string(persist.FormatStructured))
	v.SetDefault("capacity", 0)
	v.SetDefault("pattern_cap", 0)
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "text")

	if cfgFile, _ := cmd.Flags().GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(xdg.ConfigHome, "agentmemory"))
	}

	v.SetEnvPrefix("AGENTMEMORY")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found; ignore and use defaults
	}

	// Changed flags take precedence over file and environment values.
	for key, flag := range map[string]string{
		"data_dir":  "data-dir",
		"format":    "format",
		"capacity":  "capacity",
		"log_level": "log-level",
	} {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
			}
		}
	}

	cfg := &config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

func parseLogLevel(s string) logging.LogLevel {
	switch strings.ToLower(s) {
	case "debug":
		return logging.LogLevelDebug
	case "info":
		return logging.LogLevelInfo
	case "error":
		return logging.LogLevelError
	default:
		return logging.LogLevelWarn
	}
}
