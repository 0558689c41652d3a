package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rustyeddy/resample/market"
	"github.com/rustyeddy/resample/saver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, market.DefaultColumns(), cfg.Columns)
	assert.Equal(t, 5, cfg.Resample.GroupSize)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.False(t, cfg.IngestOptions().CollectErrors)
	assert.NoError(t, cfg.Validate())
}

func TestOutputPath(t *testing.T) {
	enc, err := saver.New("csv")
	require.NoError(t, err)

	cfg := Default()
	assert.Equal(t, "converted_data.csv", cfg.OutputPath(enc))

	cfg.Output.Path = "bars.out"
	assert.Equal(t, "bars.out", cfg.OutputPath(enc))
}

func TestLoadFormatOnlyDerivesPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resample.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  format: csv\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	enc, err := saver.New(cfg.Output.Format)
	require.NoError(t, err)
	assert.Equal(t, "converted_data.csv", cfg.OutputPath(enc))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:   "empty column",
			mutate: func(c *Config) { c.Columns.Close = " " },
			errMsg: "every column name is required",
		},
		{
			name:   "duplicate column",
			mutate: func(c *Config) { c.Columns.High = "OPEN" },
			errMsg: "duplicate column name",
		},
		{
			name:   "zero group size",
			mutate: func(c *Config) { c.Resample.GroupSize = 0 },
			errMsg: "resample.group_size must be positive",
		},
		{
			name:   "negative group size",
			mutate: func(c *Config) { c.Resample.GroupSize = -3 },
			errMsg: "resample.group_size must be positive",
		},
		{
			name:   "unknown format",
			mutate: func(c *Config) { c.Output.Format = "xml" },
			errMsg: "output.format",
		},
		{
			name:   "missing addr",
			mutate: func(c *Config) { c.Server.Addr = "" },
			errMsg: "server.addr is required",
		},
		{
			name:   "zero upload limit",
			mutate: func(c *Config) { c.Server.MaxUploadBytes = 0 },
			errMsg: "server.max_upload_bytes must be positive",
		},
		{
			name:   "bad log level",
			mutate: func(c *Config) { c.Log.Level = "trace" },
			errMsg: "log.level must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Resample.GroupSize = 15
			cfg.Output.Format = "parquet"
			cfg.Ingest.CollectErrors = true
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "resample:\n  group_size: 60\ncolumns:\n  date: Day\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.Resample.GroupSize)
	assert.Equal(t, "Day", cfg.Columns.Date)
	assert.Equal(t, "TIME", cfg.Columns.Time)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("resample:\n  group_size: 0\n"), 0644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)
}
