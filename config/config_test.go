package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBuildsConnectionString(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "tabloide")
	t.Setenv("DB_NAME", "tabloide")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_PORT", "")
	t.Setenv("PORT", ":9090")
	t.Setenv("MEDIA_ROOT", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "host=localhost port=5432 user=tabloide password=secret dbname=tabloide sslmode=disable", cfg.DatabaseURL)
	assert.Equal(t, "0.0.0.0:9090", cfg.Addr())
	assert.True(t, filepath.IsAbs(cfg.MediaRoot))
	assert.Equal(t, "media", filepath.Base(cfg.MediaRoot))
}

func TestLoadPrefersDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db/tabloide")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db/tabloide", cfg.DatabaseURL)
}

func TestLoadFailsWithoutDatabase(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_NAME", "")

	_, err := Load()
	assert.Error(t, err)
}
