package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STATEMENT_PORT", "")
	t.Setenv("STATEMENT_HOST", "")
	t.Setenv("STATEMENT_LOG_LEVEL", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, 32, cfg.Server.MaxUploadMB)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("STATEMENT_HOST", "127.0.0.1")
	t.Setenv("STATEMENT_PORT", "9090")
	t.Setenv("STATEMENT_LOG_FORMAT", "json")
	t.Setenv("STATEMENT_MAX_UPLOAD_MB", "not-a-number")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 32, cfg.Server.MaxUploadMB)
}

func TestLoad_EnvFile(t *testing.T) {
	t.Setenv("STATEMENT_STATIC_DIR", "")
	os.Unsetenv("STATEMENT_STATIC_DIR")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("STATEMENT_STATIC_DIR=/srv/web\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/web", cfg.Server.StaticDir)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("STATEMENT_PORT", "70000")

	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	assert.Error(t, err)
}
