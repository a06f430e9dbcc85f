package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the kuiper configuration, loaded from kuiper.yaml.
type Config struct {
	Root              string            `yaml:"root,omitempty"`
	HeaderFile        string            `yaml:"headerFile,omitempty"`
	InterpolateParams *bool             `yaml:"interpolateParams,omitempty"`
	Timeout           string            `yaml:"timeout,omitempty"` // duration string, e.g. "30s"
	FollowRedirects   *bool             `yaml:"followRedirects,omitempty"`
	MaxRedirects      int               `yaml:"maxRedirects,omitempty"`
	ValidateSSL       *bool             `yaml:"validateSSL,omitempty"`
	Proxy             string            `yaml:"proxy,omitempty"`
	Headers           map[string]string `yaml:"headers,omitempty"` // default headers sent with every request
	HistoryFile       string            `yaml:"historyFile,omitempty"`
}

// ConfigFilenames contains the config file names probed in order when no
// explicit path is given.
var ConfigFilenames = []string{
	".kuiper.yaml",
	"kuiper.yaml",
	"kuiper.yml",
}

// LoadConfig loads configuration from the given path, or from the first
// candidate file in the current directory when path is empty. A missing
// file yields defaults, not an error.
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadFile(path)
	}

	for _, name := range ConfigFilenames {
		cfg, err := loadFile(name)
		if err == nil {
			return cfg, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return &Config{}, nil
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetRoot returns the request root directory, defaulting to the current
// directory.
func (c *Config) GetRoot() string {
	if c.Root == "" {
		return DefaultRoot
	}
	return c.Root
}

// GetHeaderFile returns the per-directory header file name.
func (c *Config) GetHeaderFile() string {
	if c.HeaderFile == "" {
		return DefaultHeaderFile
	}
	return c.HeaderFile
}

// GetInterpolateParams returns whether query params are interpolated,
// defaulting to true.
func (c *Config) GetInterpolateParams() bool {
	return getBool(c.InterpolateParams, true)
}

// GetTimeout parses the configured timeout, falling back to the default on
// absence or a bad value.
func (c *Config) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return DefaultTimeout
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return DefaultTimeout
	}
	return d
}

// GetFollowRedirects returns the follow redirects setting, defaulting to true.
func (c *Config) GetFollowRedirects() bool {
	return getBool(c.FollowRedirects, true)
}

// GetMaxRedirects returns the redirect cap.
func (c *Config) GetMaxRedirects() int {
	if c.MaxRedirects <= 0 {
		return DefaultMaxRedirects
	}
	return c.MaxRedirects
}

// GetValidateSSL returns the TLS verification setting, defaulting to true.
func (c *Config) GetValidateSSL() bool {
	return getBool(c.ValidateSSL, true)
}
