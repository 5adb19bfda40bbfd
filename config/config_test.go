package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte("server:\n  port: \"9090\"\nrender:\n  cache_ttl: 1m\n  cache_enabled: false\n")
	require.NoError(t, os.WriteFile(path, content, 0644))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("DB_TYPE", "mysql")
	t.Setenv("RENDER_CACHE_ENABLED", "true")

	c := loadConfig()
	assert.Equal(t, "9090", c.Server.Port)
	assert.Equal(t, "debug", c.Server.Mode)
	assert.Equal(t, "mysql", c.Database.Type)
	assert.Equal(t, time.Minute, c.Render.CacheTTL)
	assert.True(t, c.Render.CacheEnabled)
	assert.Equal(t, 50, c.Render.InstanceListLimit)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	c := Default()
	c.Server.Port = "7000"
	require.NoError(t, c.Save(path))

	t.Setenv("CONFIG_PATH", path)
	loaded := loadConfig()
	assert.Equal(t, "7000", loaded.Server.Port)
	assert.Equal(t, c.Render.CacheTTL, loaded.Render.CacheTTL)
}

func TestSaveReplacesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: \"1\"\n"), 0644))

	c := Default()
	c.Server.Port = "8181"
	require.NoError(t, c.Save(path))

	t.Setenv("CONFIG_PATH", path)
	assert.Equal(t, "8181", loadConfig().Server.Port)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files may be left behind")
}
