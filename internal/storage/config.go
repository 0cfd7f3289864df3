package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config holds tpane user configuration.
type Config struct {
	Theme         string        `mapstructure:"theme"`
	DataDir       string        `mapstructure:"data_dir"`
	LogLevel      string        `mapstructure:"log_level"`
	PageCacheSize int           `mapstructure:"page_cache_size"`
	History       HistoryConfig `mapstructure:"history"`
	ClosedTabs    ClosedTabsCfg `mapstructure:"closed_tabs"`

	path string
}

// HistoryConfig tunes back/forward navigation.
type HistoryConfig struct {
	FallbackLimit int `mapstructure:"fallback_limit"`
	MaxLocations  int `mapstructure:"max_locations"`
}

// ClosedTabsCfg tunes the recently closed tabs stack.
type ClosedTabsCfg struct {
	Capacity int `mapstructure:"capacity"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Theme:         "default",
		LogLevel:      "info",
		PageCacheSize: 50,
		History: HistoryConfig{
			FallbackLimit: 100,
			MaxLocations:  100,
		},
		ClosedTabs: ClosedTabsCfg{Capacity: 10},
	}
}

// Path returns the config file the configuration was read from, or would
// be read from.
func (c *Config) Path() string {
	return c.path
}

// LoadConfig reads config.yaml from path, or from the standard config
// directory when path is empty. A missing file yields the defaults.
// TPANE_* environment variables override file values.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		dir, err := configDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "config.yaml")
	}

	def := DefaultConfig()
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("TPANE")
	v.AutomaticEnv()
	v.SetDefault("theme", def.Theme)
	v.SetDefault("data_dir", "")
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("page_cache_size", def.PageCacheSize)
	v.SetDefault("history.fallback_limit", def.History.FallbackLimit)
	v.SetDefault("history.max_locations", def.History.MaxLocations)
	v.SetDefault("closed_tabs.capacity", def.ClosedTabs.Capacity)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := def
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.path = path

	if cfg.DataDir == "" {
		dir, err := DataDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = dir
	} else {
		dir, err := homedir.Expand(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("expanding data_dir: %w", err)
		}
		cfg.DataDir = dir
	}

	if cfg.History.FallbackLimit <= 0 {
		cfg.History.FallbackLimit = def.History.FallbackLimit
	}
	if cfg.History.MaxLocations <= 0 {
		cfg.History.MaxLocations = def.History.MaxLocations
	}
	if cfg.ClosedTabs.Capacity <= 0 {
		cfg.ClosedTabs.Capacity = def.ClosedTabs.Capacity
	}
	if cfg.PageCacheSize <= 0 {
		cfg.PageCacheSize = def.PageCacheSize
	}
	return &cfg, nil
}

// DataDir returns the data directory for persistent storage.
func DataDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}

	var dir string
	switch runtime.GOOS {
	case "darwin":
		dir = filepath.Join(home, "Library", "Application Support", "tpane")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			dir = filepath.Join(appData, "tpane")
		} else {
			dir = filepath.Join(home, ".tpane")
		}
	default: // Linux, BSD, etc.
		if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
			dir = filepath.Join(xdgData, "tpane")
		} else {
			dir = filepath.Join(home, ".local", "share", "tpane")
		}
	}

	return dir, nil
}

func configDir() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}

	var dir string
	switch runtime.GOOS {
	case "darwin":
		dir = filepath.Join(home, "Library", "Application Support", "tpane")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			dir = filepath.Join(appData, "tpane")
		} else {
			dir = filepath.Join(home, ".tpane")
		}
	default:
		if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
			dir = filepath.Join(xdgConfig, "tpane")
		} else {
			dir = filepath.Join(home, ".config", "tpane")
		}
	}

	return dir, nil
}
