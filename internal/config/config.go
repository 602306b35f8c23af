// Package config loads the CLI layer's shared defaults — the
// variable-map path, the skip-list path, and the color toggle — from an
// optional config file and the environment, so none of the four
// binaries has to hardcode them.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the defaults every graft CLI command can fall back to
// when the corresponding flag is left unset.
type Config struct {
	VarMapPath   string `mapstructure:"var_map_path"`
	SkipListPath string `mapstructure:"skip_list_path"`
	Color        bool   `mapstructure:"color"`
}

// Load reads configPath if given, otherwise looks for "graft.yaml" in
// the working directory and "$HOME/.graft", and overlays GRAFT_-
// prefixed environment variables on top.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("var_map_path", "")
	v.SetDefault("skip_list_path", "")
	v.SetDefault("color", true)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("graft")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.graft")
	}

	v.SetEnvPrefix("GRAFT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
