// Package config loads tool settings from $HOME/.gitput.yaml with GITPUT_*
// environment overrides. Credentials live elsewhere; see credstore.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the tunable settings of the tool.
type Config struct {
	APIBase         string `mapstructure:"api_base"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds"`
	DefaultBranch   string `mapstructure:"default_branch"`
	CommitMessage   string `mapstructure:"commit_message"`
	MaxAuthAttempts int    `mapstructure:"max_auth_attempts"`
}

const (
	DefaultTimeoutSeconds  = 10
	DefaultBranch          = "main"
	DefaultCommitMessage   = "Initial commit"
	DefaultMaxAuthAttempts = 3
	DefaultConfigName      = ".gitput"
)

// InitConfig wires viper to the config file. When cfgFile is empty the file
// is looked up in the user home directory and created with defaults on first
// run.
func InitConfig(cfgFile string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot locate home directory: %w", err)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(DefaultConfigName)
		viper.SetConfigType("yaml")
	}

	viper.SetDefault("api_base", "")
	viper.SetDefault("timeout_seconds", DefaultTimeoutSeconds)
	viper.SetDefault("default_branch", DefaultBranch)
	viper.SetDefault("commit_message", DefaultCommitMessage)
	viper.SetDefault("max_auth_attempts", DefaultMaxAuthAttempts)

	viper.SetEnvPrefix("gitput")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Path-search mode reports ConfigFileNotFoundError; an explicit
		// --config path reports a plain not-exist error.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot read config file: %w", err)
		}
		// First run: write the defaults so the file is there to edit.
		configPath := cfgFile
		if configPath == "" {
			home, _ := os.UserHomeDir()
			configPath = filepath.Join(home, DefaultConfigName+".yaml")
		}
		if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
			return fmt.Errorf("cannot create config directory: %w", err)
		}
		if err := viper.WriteConfigAs(configPath); err != nil {
			return fmt.Errorf("cannot write config file: %w", err)
		}
	}
	return nil
}

// GetConfig unmarshals the current settings, falling back to defaults when
// viper has nothing loaded.
func GetConfig() *Config {
	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return &Config{
			TimeoutSeconds:  DefaultTimeoutSeconds,
			DefaultBranch:   DefaultBranch,
			CommitMessage:   DefaultCommitMessage,
			MaxAuthAttempts: DefaultMaxAuthAttempts,
		}
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if cfg.DefaultBranch == "" {
		cfg.DefaultBranch = DefaultBranch
	}
	if cfg.CommitMessage == "" {
		cfg.CommitMessage = DefaultCommitMessage
	}
	if cfg.MaxAuthAttempts <= 0 {
		cfg.MaxAuthAttempts = DefaultMaxAuthAttempts
	}
	return cfg
}
