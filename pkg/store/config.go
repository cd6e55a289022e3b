package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const configName = ".moodlog"

// Config is the resolved moodlog configuration.
type Config interface {
	BasePath() string
	Backend() string
	RemoteURL() string
	RemoteTimeout() time.Duration
	LogLevel() string
}

// LoadConfig reads .moodlog.yaml from $MOODLOG_CONFIG_PATH, the working
// directory or $HOME, with MOODLOG_* environment overrides.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.moodlog")
	viper.SetDefault("backend", string(BackendDiskv))
	viper.SetDefault("remote.url", "")
	viper.SetDefault("remote.timeout", 10*time.Second)
	viper.SetDefault("log.level", "info")
	viper.SetConfigName(configName) // .yaml is implicit
	viper.SetEnvPrefix("MOODLOG")
	viper.AutomaticEnv()

	if override := os.Getenv("MOODLOG_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		viper.AddConfigPath(home)
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}

	return StaticConfig{
		Path:    path,
		Kind:    viper.GetString("backend"),
		Remote:  viper.GetString("remote.url"),
		Timeout: viper.GetDuration("remote.timeout"),
		Level:   viper.GetString("log.level"),
	}, nil
}

// ConfigFile returns the config file in use, or the default location under
// $HOME when none was found.
func ConfigFile() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	home, err := homedir.Dir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, configName+".yaml")
}

// StaticConfig is a Config with fixed values. LoadConfig returns one.
type StaticConfig struct {
	Path    string
	Kind    string
	Remote  string
	Timeout time.Duration
	Level   string
}

func (s StaticConfig) BasePath() string             { return s.Path }
func (s StaticConfig) Backend() string              { return s.Kind }
func (s StaticConfig) RemoteURL() string            { return s.Remote }
func (s StaticConfig) RemoteTimeout() time.Duration { return s.Timeout }
func (s StaticConfig) LogLevel() string             { return s.Level }
