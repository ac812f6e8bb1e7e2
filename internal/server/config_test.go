package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/payroll-forecast/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsWhenMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultServerAddress, cfg.Address)
	assert.Equal(t, constants.DefaultMaxBodySizeBytes, cfg.BodySizeBytes())
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Empty(t, cfg.Logging.Level)
	assert.Empty(t, cfg.Logging.Format)
	assert.Empty(t, cfg.Logging.OutputFile)
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server-config.yaml")
	contents := []byte(`address: 127.0.0.1:9000
maxBodySize: 2M
allowedOrigins:
  - http://localhost:5173
  - " "
logging:
  level: debug
  format: console
  outputFile: /tmp/server.log
`)
	require.NoError(t, os.WriteFile(path, contents, 0600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Address)
	assert.Equal(t, int64(2*1024*1024), cfg.BodySizeBytes())
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "/tmp/server.log", cfg.Logging.OutputFile)
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{name: "Invalid size", contents: "maxBodySize: invalid"},
		{name: "Malformed YAML", contents: "address: [unterminated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.contents), 0600))

			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestSetBodySizeBytes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SetBodySizeBytes(4096)
	assert.Equal(t, int64(4096), cfg.BodySizeBytes())
	assert.Equal(t, "4096", cfg.MaxBodySize)

	cfg.SetBodySizeBytes(-1)
	assert.Equal(t, int64(4096), cfg.BodySizeBytes())
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		input string
		want  int64
	}{
		{input: "", want: constants.DefaultMaxBodySizeBytes},
		{input: "1024", want: 1024},
		{input: "512b", want: 512},
		{input: "256K", want: 256 * 1024},
		{input: "1m", want: 1024 * 1024},
		{input: "3MB", want: 3 * 1024 * 1024},
		{input: "2G", want: 2 * 1024 * 1024 * 1024},
		{input: "  4096   ", want: 4096},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"1TB", "abc", "99999999999999999999G"} {
		_, err := ParseSize(bad)
		assert.Error(t, err, bad)
	}

	for _, unitOnly := range []string{"K", " MB "} {
		_, err := ParseSize(unitOnly)
		require.Error(t, err, unitOnly)
		assert.Contains(t, err.Error(), "invalid size:")
	}
}
