package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/ksysoev/cgiform/pkg/inspect"
)

type appConfig struct {
	Inspect inspect.Config `mapstructure:"inspect"`
}

// loadConfig loads the inspector configuration from the config file and
// environment variables, then applies command-line flag overrides on top.
func loadConfig(arg *args) (*appConfig, error) {
	v := viper.NewWithOptions(viper.ExperimentalBindStruct())

	v.SetDefault("inspect.status", 200)

	if arg.ConfigPath != "" {
		v.SetConfigFile(arg.ConfigPath)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg appConfig

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if arg.Listen != "" {
		cfg.Inspect.Listen = arg.Listen
	}

	if arg.Status != 0 {
		cfg.Inspect.Status = arg.Status
	}

	if arg.RespBody != "" {
		cfg.Inspect.Body = arg.RespBody
	}

	if arg.RespJSON != "" {
		cfg.Inspect.JSON = arg.RespJSON
	}

	if len(arg.Headers) > 0 {
		cfg.Inspect.Headers = arg.Headers
	}

	if arg.KeepBlank {
		cfg.Inspect.KeepBlankValues = true
	}

	slog.Debug("Config loaded", slog.Any("config", cfg))

	return &cfg, nil
}
