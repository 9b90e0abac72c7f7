package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"github.com/tailscale/hujson"

	"github.com/simonhull/cratekit"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var errConfigFileNotFound = errors.New("config file not found")

// Config holds the settings that may come from a config file.
// Flags override every field.
type Config struct {
	Strict        bool     `json:"strict,omitempty"`
	Verbose       bool     `json:"verbose,omitempty"`
	JSON          bool     `json:"json,omitempty"`
	DropUnknown   bool     `json:"drop_unknown,omitempty"`
	ChunkSize     int      `json:"chunk_size,omitempty"`
	MaxRecordSize int      `json:"max_record_size,omitempty"`
	RawFields     []string `json:"raw_fields,omitempty"`
}

// configPath returns $XDG_CONFIG_HOME/crate-dump/config.json, falling back
// to ~/.config. Returns "" if neither can be determined.
func configPath(env map[string]string) string {
	if xdg := env["XDG_CONFIG_HOME"]; xdg != "" {
		return filepath.Join(xdg, "crate-dump", "config.json")
	}
	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "crate-dump", "config.json")
	}
	return ""
}

// loadConfig reads a JSON config file that may contain comments and
// trailing commas. A missing file is only an error when mustExist is set.
func loadConfig(path string, mustExist bool) (Config, error) {
	if path == "" {
		return Config{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if mustExist {
				return Config{}, fmt.Errorf("%w: %s", errConfigFileNotFound, path)
			}
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return parseConfig(data)
}

func parseConfig(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}
	for _, tag := range cfg.RawFields {
		if !cratekit.Tag(tag).Valid() {
			return Config{}, fmt.Errorf("raw_fields: %q is not a 4-byte tag", tag)
		}
	}
	return cfg, nil
}

// options converts the config into library options.
func (c Config) options() []cratekit.Option {
	var opts []cratekit.Option
	if c.Strict {
		opts = append(opts, cratekit.WithStrictParsing())
	}
	if c.DropUnknown {
		opts = append(opts, cratekit.WithUnknownFields(cratekit.DropUnknown))
	}
	if c.ChunkSize > 0 {
		opts = append(opts, cratekit.WithChunkSize(c.ChunkSize))
	}
	if c.MaxRecordSize > 0 {
		opts = append(opts, cratekit.WithMaxRecordSize(c.MaxRecordSize))
	}
	for _, tag := range c.RawFields {
		opts = append(opts, cratekit.WithFieldHandler(cratekit.Tag(tag), cratekit.RawField))
	}
	return opts
}
