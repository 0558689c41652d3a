package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/rustyeddy/resample/market"
	"github.com/rustyeddy/resample/saver"
	"gopkg.in/yaml.v3"
)

// Config represents the complete resampler configuration
type Config struct {
	Columns  market.Columns `json:"columns" yaml:"columns"`
	Ingest   IngestConfig   `json:"ingest" yaml:"ingest"`
	Resample ResampleConfig `json:"resample" yaml:"resample"`
	Output   OutputConfig   `json:"output" yaml:"output"`
	Server   ServerConfig   `json:"server" yaml:"server"`
	Log      LogConfig      `json:"log" yaml:"log"`
}

// IngestConfig controls how input rows are validated
type IngestConfig struct {
	CollectErrors bool `json:"collect_errors" yaml:"collect_errors"`
}

// ResampleConfig holds the default grouping factor
type ResampleConfig struct {
	GroupSize int `json:"group_size" yaml:"group_size"`
}

// OutputConfig selects the output encoder and destination
type OutputConfig struct {
	Format string `json:"format" yaml:"format"` // json, csv, parquet or msgpack
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`
}

// ServerConfig contains HTTP upload server parameters
type ServerConfig struct {
	Addr           string `json:"addr" yaml:"addr"`
	MaxUploadBytes int64  `json:"max_upload_bytes" yaml:"max_upload_bytes"`
}

// LogConfig contains logging parameters
type LogConfig struct {
	Level string `json:"level" yaml:"level"` // off, debug, info, warn, error
}

var logLevels = []string{"off", "debug", "info", "warn", "error"}

// DefaultOutputBase names the output file when output.path is unset.
const DefaultOutputBase = "converted_data"

// OutputPath returns the configured output path, or DefaultOutputBase with
// the extension of enc when none is set.
func (c *Config) OutputPath(enc saver.Encoder) string {
	if c.Output.Path != "" {
		return c.Output.Path
	}
	return saver.FileName(DefaultOutputBase, enc)
}

// IngestOptions returns the options handed to market.Ingest.
func (c *Config) IngestOptions() market.IngestOptions {
	return market.IngestOptions{CollectErrors: c.Ingest.CollectErrors}
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON).
// Fields absent from the file keep their Default values.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (YAML for .yaml/.yml, JSON otherwise)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	seen := make(map[string]bool, 6)
	for _, name := range c.Columns.Names() {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("columns: every column name is required")
		}
		if seen[name] {
			return fmt.Errorf("columns: duplicate column name %q", name)
		}
		seen[name] = true
	}
	if c.Resample.GroupSize <= 0 {
		return fmt.Errorf("resample.group_size must be positive")
	}
	if _, err := saver.New(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server.max_upload_bytes must be positive")
	}
	if !validLevel(c.Log.Level) {
		return fmt.Errorf("log.level must be one of %s", strings.Join(logLevels, ", "))
	}
	return nil
}

func validLevel(level string) bool {
	for _, l := range logLevels {
		if l == level {
			return true
		}
	}
	return false
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Columns: market.DefaultColumns(),
		Resample: ResampleConfig{
			GroupSize: 5,
		},
		Output: OutputConfig{
			Format: "json",
		},
		Server: ServerConfig{
			Addr:           ":8080",
			MaxUploadBytes: 32 << 20,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
