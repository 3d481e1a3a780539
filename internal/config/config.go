// Package config resolves rmbrr's run settings from three layers: built-in
// defaults, an optional YAML config file, and RMBRR_* environment
// variables, merged with CLI flags taking final precedence. Grounded on
// joshyorko-rcc's xviper package (a package-scoped viper instance backing a
// CLI's settings) and spf13/viper's own config-file + env-var idiom.
package config

import (
	"fmt"
	"strings"

	"dario.cat/mergo"
	"github.com/spf13/viper"
)

// Settings holds every tunable that can come from a config file or
// environment, independent of the flags a given cobra invocation set.
type Settings struct {
	Threads      int    `mapstructure:"threads"`
	Silent       bool   `mapstructure:"silent"`
	Verbose      bool   `mapstructure:"verbose"`
	Stats        bool   `mapstructure:"stats"`
	IgnoreErrors bool   `mapstructure:"ignore_errors"`
	LogFile      string `mapstructure:"log_file"`
}

// Defaults returns the built-in baseline, the lowest-precedence layer.
func Defaults() Settings {
	return Settings{
		Threads:      0,
		Silent:       false,
		Verbose:      false,
		Stats:        false,
		IgnoreErrors: true,
		LogFile:      "",
	}
}

// Load reads an optional config file (searched as "rmbrr" with extensions
// viper understands, in the current directory and $HOME) and RMBRR_*
// environment variables, then merges them over Defaults(). A missing config
// file is not an error; a malformed one is.
// settingsEnvKeys lists every Settings mapstructure key so each can be bound
// to its RMBRR_* environment variable explicitly: viper's AutomaticEnv only
// resolves env vars for keys it already knows about (from a config file or a
// prior BindEnv/SetDefault call), so without this a run with no config file
// present would silently ignore the environment layer entirely.
var settingsEnvKeys = []string{"threads", "silent", "verbose", "stats", "ignore_errors", "log_file"}

func Load(configFile string) (Settings, error) {
	v := viper.New()
	v.SetEnvPrefix("RMBRR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, key := range settingsEnvKeys {
		if err := v.BindEnv(key); err != nil {
			return Settings{}, fmt.Errorf("binding environment variable for %s: %w", key, err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("rmbrr")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	settings := Defaults()
	if err := v.ReadInConfig(); err != nil {
		if _, isNotFound := err.(viper.ConfigFileNotFoundError); !isNotFound {
			return settings, fmt.Errorf("reading config: %w", err)
		}
	}

	// Unmarshal unconditionally: even with no config file present, this
	// still picks up any bound RMBRR_* environment variables.
	var fromFileOrEnv Settings
	if err := v.Unmarshal(&fromFileOrEnv); err != nil {
		return settings, fmt.Errorf("parsing config: %w", err)
	}
	if err := mergo.Merge(&settings, fromFileOrEnv, mergo.WithOverride); err != nil {
		return settings, fmt.Errorf("merging config: %w", err)
	}

	return settings, nil
}

// MergeFlags layers explicit CLI-set values over settings, the highest
// precedence. Only the fields the caller marks as explicitly set are
// applied, so an unset flag never clobbers a config-file or environment
// value with its zero value.
func MergeFlags(settings Settings, flags Settings, explicit map[string]bool) (Settings, error) {
	out := settings
	if explicit["threads"] {
		out.Threads = flags.Threads
	}
	if explicit["silent"] {
		out.Silent = flags.Silent
	}
	if explicit["verbose"] {
		out.Verbose = flags.Verbose
	}
	if explicit["stats"] {
		out.Stats = flags.Stats
	}
	if explicit["ignore_errors"] {
		out.IgnoreErrors = flags.IgnoreErrors
	}
	if explicit["log_file"] {
		out.LogFile = flags.LogFile
	}
	return out, nil
}
