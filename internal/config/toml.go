// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Editor  EditorConfig  `toml:"editor"`
	Stats   StatsConfig   `toml:"stats"`
	History HistoryConfig `toml:"history"`
}

// EditorConfig maps editor settings.
type EditorConfig struct {
	Width       *int  `toml:"width"`
	LineNumbers *bool `toml:"line-numbers"`
}

// StatsConfig maps statistics engine settings.
type StatsConfig struct {
	CacheGatedSelection *bool `toml:"cache-gated-selection"`
	Record              *bool `toml:"record"`
}

// HistoryConfig maps history output settings.
type HistoryConfig struct {
	Last *int `toml:"last"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}
