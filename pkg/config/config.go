// Package config resolves cutover's typed inputs from defaults, an
// optional config file, the environment and command-line flags, in that
// order of increasing precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/cutover-sh/cutover/pkg/cutover_err"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Action selects which top-level state-machine entry point runs.
type Action string

const (
	ActionRelease    Action = "release"
	ActionReleaseCut Action = "release-cut"
)

// ParseAction validates an action string.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionRelease, ActionReleaseCut:
		return Action(s), nil
	default:
		return "", cutover_err.NewConfigurationError(
			fmt.Sprintf("unsupported action %q", s),
			fmt.Sprintf("Supported actions: %s, %s", ActionReleaseCut, ActionRelease),
		)
	}
}

// Config carries every input the engine and the CLI consume.
type Config struct {
	Action          string `mapstructure:"action"`
	TrunkBranch     string `mapstructure:"trunk-branch-name"`
	ReleasePattern  string `mapstructure:"release-branch-pattern"`
	ReleaseTemplate string `mapstructure:"release-branch-template"`
	DryRun          bool   `mapstructure:"dry-run"`
	Remote          string `mapstructure:"remote"`
	RepoPath        string `mapstructure:"repo-path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		TrunkBranch:     "main",
		ReleasePattern:  `^release-(\d+)\.(\d+)\.x$`,
		ReleaseTemplate: "release-${major}.${minor}.x",
		Remote:          "origin",
		RepoPath:        ".",
	}
}

var keys = []string{
	"action",
	"trunk-branch-name",
	"release-branch-pattern",
	"release-branch-template",
	"dry-run",
	"remote",
	"repo-path",
}

// Load resolves the configuration. A missing config file is fine; a
// malformed one is a configuration error. flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	// Local .env files are a convenience for running outside CI.
	_ = godotenv.Load()

	v := viper.New()

	defaults := Default()
	v.SetDefault("trunk-branch-name", defaults.TrunkBranch)
	v.SetDefault("release-branch-pattern", defaults.ReleasePattern)
	v.SetDefault("release-branch-template", defaults.ReleaseTemplate)
	v.SetDefault("dry-run", false)
	v.SetDefault("remote", defaults.Remote)
	v.SetDefault("repo-path", defaults.RepoPath)

	v.SetConfigName(".cutover")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, cutover_err.NewConfigurationError(
				fmt.Sprintf("could not read config file: %v", err),
			)
		}
	}

	// Both CUTOVER_* and the automation platform's INPUT_* bindings are
	// honored for every key.
	for _, key := range keys {
		envKey := strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
		if err := v.BindEnv(key, "CUTOVER_"+envKey, "INPUT_"+envKey); err != nil {
			return nil, err
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, cutover_err.NewConfigurationError(
			fmt.Sprintf("could not decode configuration: %v", err),
		)
	}
	return cfg, nil
}
