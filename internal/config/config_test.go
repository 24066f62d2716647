package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_SECRET", "s3cret")

	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", c.Server.Addr)
	assert.Equal(t, "memory", c.Storage.Driver)
	assert.Equal(t, 15*time.Minute, c.AccessTTL())
	assert.Equal(t, 10, c.Rate.Login.Limit)
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yml := []byte("server:\n  addr: \":9090\"\nauth:\n  secret: archivo\n  access_ttl: 1h\n")
	require.NoError(t, os.WriteFile(path, yml, 0o600))

	t.Setenv("AUTH_SECRET", "entorno")

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", c.Server.Addr)
	assert.Equal(t, "entorno", c.Auth.Secret, "el entorno gana sobre el archivo")
	assert.Equal(t, time.Hour, c.AccessTTL())
}

func TestValidate(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err, "sin secreto no se arranca")

	t.Setenv("AUTH_SECRET", "s3cret")
	t.Setenv("STORAGE_DRIVER", "postgres")
	_, err = Load("")
	assert.Error(t, err, "postgres sin dsn no se arranca")

	t.Setenv("STORAGE_DSN", "postgres://localhost/paas")
	_, err = Load("")
	assert.NoError(t, err)
}
