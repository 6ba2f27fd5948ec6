package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, BackendCSV, cfg.Data.Backend)
	assert.Equal(t, "Rp", cfg.Reports.Currency)
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Data.Dir, cfg.Data.Dir)
}

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "fintrack.yaml")
	body := `
data:
  dir: /tmp/ledgers
  backend: sqlite
  sqlite_path: /tmp/ledgers/fin.sqlite
reports:
  currency: "$"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/ledgers", cfg.Data.Dir)
	assert.Equal(t, BackendSQLite, cfg.Data.Backend)
	assert.Equal(t, "$", cfg.Reports.Currency)
	// Untouched sections keep defaults.
	assert.Equal(t, ":8787", cfg.Server.Listen)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FINTRACK_CURRENCY", "USD")
	t.Setenv("FINTRACK_REPORT_ON_START", "false")
	t.Setenv("FINTRACK_LISTEN", ":9999")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "USD", cfg.Reports.Currency)
	assert.False(t, cfg.Reports.RunOnStart)
	assert.Equal(t, ":9999", cfg.Server.Listen)
}

func TestValidateRejectsBadBackend(t *testing.T) {
	t.Parallel()

	cfg := Default()
	cfg.Data.Backend = "postgres"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Data.Backend = BackendSQLite
	cfg.Data.SQLitePath = ""
	assert.Error(t, cfg.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := Default()
	cfg.Reports.Currency = "EUR"
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "EUR", loaded.Reports.Currency)
}
