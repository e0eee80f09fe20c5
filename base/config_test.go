package base

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "en", cfg.DefaultLang)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "local/thesauri", cfg.Sync.Dir)
	assert.Equal(t, "gemet", cfg.Sync.Variant)
	assert.Equal(t, "X-User", cfg.Auth.UserHeader)
	assert.False(t, cfg.Solr.Enabled())
	assert.Equal(t, int32(10), cfg.Database.MaxConnections)
	assert.Equal(t, time.Hour, cfg.Database.MaxConnLifetime)
	assert.Equal(t, 30*time.Minute, cfg.Database.MaxConnIdleTime)
}

func TestLoadFileWithEnvironmentOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
default_lang: DE
database:
  url: postgres://geonode@localhost/geonode
  max_connections: 4
server:
  port: 8080
  allowed_origins: [https://geonode.example.org]
solr:
  endpoint: http://localhost:8983
sync:
  variant: agrovoc
`), 0600))
	t.Setenv("PORT", "9000")
	t.Setenv("SOLR_COLLECTION", "keywords")
	t.Setenv("DATABASE_MAX_CONN_IDLE_TIME", "5m")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "de", cfg.DefaultLang)
	assert.Equal(t, "postgres://geonode@localhost/geonode", cfg.Database.URL)
	assert.Equal(t, int32(4), cfg.Database.MaxConnections)
	assert.Equal(t, 5*time.Minute, cfg.Database.MaxConnIdleTime)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000", "https://geonode.example.org"}, cfg.Server.AllowedOrigins)
	assert.True(t, cfg.Solr.Enabled())
	assert.Equal(t, "keywords", cfg.Solr.Collection)
	assert.Equal(t, "agrovoc", cfg.Sync.Variant)
}

func TestLoadUsesConfigFileVariable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "importer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_lang: fr\n"), 0600))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "fr", cfg.DefaultLang)
}

func TestLoadRejectsEmptyDefaultLanguage(t *testing.T) {
	t.Setenv("THESAURUS_DEFAULT_LANG", " ")

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger("debug")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = NewLogger("verbose")
	assert.Error(t, err)
}

func TestEnvVar(t *testing.T) {
	t.Setenv("IMPORTER_TEST_VALUE", "set")
	assert.Equal(t, "set", EnvVar("IMPORTER_TEST_VALUE", "default"))
	assert.Equal(t, "default", EnvVar("IMPORTER_TEST_UNSET", "default"))
}
