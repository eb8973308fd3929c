package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	defaultInterval = 2
	minInterval     = 1
	maxInterval     = 60
)

type Config struct {
	Interval    int    `yaml:"interval"`
	Volume      string `yaml:"volume"`
	OutputDir   string `yaml:"output_dir"`
	Format      string `yaml:"format"`
	Sampler     string `yaml:"sampler"`
	MetricsFile string `yaml:"metrics_file"`
	LogLevel    string `yaml:"log_level"`
}

func defaultVolume() string {
	if runtime.GOOS == "windows" {
		return `C:\`
	}
	return "/"
}

func defaultConfig() *Config {
	return &Config{
		Interval: defaultInterval,
		Volume:   defaultVolume(),
		Format:   string(FormatText),
		Sampler:  samplerGopsutil,
		LogLevel: "info",
	}
}

func defaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".healthgrade", "config.yaml")
}

// loadConfig reads path over the defaults. A missing file is not an error.
// Keys absent from the file keep their defaults; an explicit "interval: 0"
// is kept so Validate rejects it.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Volume == "" {
		cfg.Volume = defaultVolume()
	}
	if cfg.Format == "" {
		cfg.Format = string(FormatText)
	}
	if cfg.Sampler == "" {
		cfg.Sampler = samplerGopsutil
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// Validate has no side effects; it runs before the sampler is touched.
func (c *Config) Validate() error {
	if c.Interval < minInterval || c.Interval > maxInterval {
		return &ConfigurationError{
			Field:  "interval",
			Value:  c.Interval,
			Reason: fmt.Sprintf("must be between %d and %d seconds", minInterval, maxInterval),
		}
	}
	if strings.TrimSpace(c.Volume) == "" {
		return &ConfigurationError{Field: "volume", Value: c.Volume, Reason: "must not be empty"}
	}
	if _, err := parseFormat(c.Format); err != nil {
		return err
	}
	switch c.Sampler {
	case samplerNative, samplerGopsutil:
	default:
		return &ConfigurationError{Field: "sampler", Value: c.Sampler, Reason: "must be native or gopsutil"}
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return &ConfigurationError{Field: "log_level", Value: c.LogLevel, Reason: err.Error()}
	}
	return nil
}

// ResolveOutputDir returns the configured output directory, or the
// working directory when none is set.
func (c *Config) ResolveOutputDir() (string, error) {
	if d := c.OutputDir; d != "" {
		if d[0] == '~' {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("expanding %s: %w", d, err)
			}
			d = filepath.Join(home, d[1:])
		}
		return d, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return wd, nil
}
