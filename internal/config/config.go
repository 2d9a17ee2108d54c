// Package config handles configuration file parsing and hot-reloading.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Name  string      `yaml:"name"`
	Serve ServeConfig `yaml:"serve"`

	// Database sources - file paths, directories, or globs
	Databases []DatabaseSource `yaml:"databases"`

	// Notebook behavior
	Notebook NotebookConfig `yaml:"notebook"`

	// Internal: path to the config file
	path string

	// Internal: last modified time
	modTime time.Time

	mu sync.RWMutex
}

// ServeConfig contains SSH sharing configuration.
type ServeConfig struct {
	Listen      string `yaml:"listen"`
	HostKeyPath string `yaml:"host_key_path"`
	IdleTimeout string `yaml:"idle_timeout"`
	MaxTimeout  string `yaml:"max_timeout"`
}

// NotebookConfig tunes the notebook itself.
type NotebookConfig struct {
	// PreviewRows is the row sample size fetched on table selection.
	PreviewRows int `yaml:"preview_rows"`
}

// DatabaseSource defines a source of database files.
type DatabaseSource struct {
	Path        string `yaml:"path"`
	Alias       string `yaml:"alias"`
	Description string `yaml:"description"`
	Recursive   bool   `yaml:"recursive"`
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Name: "tablelab",
		Serve: ServeConfig{
			Listen:      ":2222",
			HostKeyPath: ".tablelab/host_key",
			IdleTimeout: "30m",
			MaxTimeout:  "24h",
		},
		Databases: []DatabaseSource{},
		Notebook: NotebookConfig{
			PreviewRows: 20,
		},
	}
}

// Load reads and parses a configuration file.
func Load(path string) (*Config, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.path = absPath

	if info, err := os.Stat(absPath); err == nil {
		cfg.modTime = info.ModTime()
	}

	return cfg, nil
}

// Path returns the path to the config file.
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.path
}

// Reload reloads the configuration from disk.
func (c *Config) Reload() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	newCfg := DefaultConfig()
	if err := yaml.Unmarshal(data, newCfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	c.Name = newCfg.Name
	c.Serve = newCfg.Serve
	c.Databases = newCfg.Databases
	c.Notebook = newCfg.Notebook

	if info, err := os.Stat(c.path); err == nil {
		c.modTime = info.ModTime()
	}

	return nil
}

// HasChanged checks if the config file has been modified since load.
func (c *Config) HasChanged() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	info, err := os.Stat(c.path)
	if err != nil {
		return false
	}
	return info.ModTime().After(c.modTime)
}

// PreviewRows returns the configured preview sample size.
func (c *Config) PreviewRows() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.Notebook.PreviewRows > 0 {
		return c.Notebook.PreviewRows
	}
	return 20
}

// GetIdleTimeout parses and returns the idle timeout duration.
func (c *Config) GetIdleTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	d, err := time.ParseDuration(c.Serve.IdleTimeout)
	if err != nil {
		return 30 * time.Minute
	}
	return d
}

// GetMaxTimeout parses and returns the max timeout duration.
func (c *Config) GetMaxTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	d, err := time.ParseDuration(c.Serve.MaxTimeout)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// GetDataDir returns the data directory path (for history, keys, etc.).
func (c *Config) GetDataDir() string {
	return ".tablelab"
}
