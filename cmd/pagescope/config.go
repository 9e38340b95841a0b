package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/fwojciec/pagescope"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the config file looked up in the working and home
// directories.
const ConfigFileName = ".pagescope.yaml"

// Config holds settings read from the optional YAML config file.
type Config struct {
	DB        string        `yaml:"db"`
	Static    bool          `yaml:"static"`
	Timeout   time.Duration `yaml:"timeout"`
	UserAgent string        `yaml:"userAgent"`
	Settle    time.Duration `yaml:"settle"`
}

// LoadConfig reads the config file at path. An explicit path that does not
// exist is an error; when path is empty the working and home directories are
// searched and a missing file yields an empty Config.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = findConfig()
		if path == "" {
			return &Config{}, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, pagescope.Errorf(pagescope.ENOTFOUND, "config file %q not found", path)
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, pagescope.Errorf(pagescope.EINVALID, "invalid config file %q: %v", path, err)
	}
	return &cfg, nil
}

func findConfig() string {
	candidates := []string{ConfigFileName}
	if xdg.Home != "" {
		candidates = append(candidates, filepath.Join(xdg.Home, ConfigFileName))
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// ResolveDBPath picks the database path: flag, PAGESCOPE_DB, config file,
// fallback, then the XDG data directory.
func ResolveDBPath(flag string, cfg *Config, fallback string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if path := os.Getenv("PAGESCOPE_DB"); path != "" {
		return path, nil
	}
	if cfg != nil && cfg.DB != "" {
		return cfg.DB, nil
	}
	if fallback != "" {
		return fallback, nil
	}
	path, err := xdg.DataFile(filepath.Join("pagescope", "pagescope.db"))
	if err != nil {
		return "", fmt.Errorf("resolving data directory: %w", err)
	}
	return path, nil
}
