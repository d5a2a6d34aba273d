package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "none.env")
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, "librelingo.db", cfg.DatabasePath)
	assert.Equal(t, "./src/courses", cfg.OutputRoot)
	assert.Equal(t, "./src/audios_to_fetch.csv", cfg.ManifestPath)
	assert.Equal(t, "./docs/image_attributions.csv", cfg.ImagesPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.False(t, cfg.Publish.Enabled())
	assert.True(t, cfg.Publish.UseSSL)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LIBRELINGO_DB", "/data/content.db")
	t.Setenv("LIBRELINGO_LOG_LEVEL", "DEBUG")
	t.Setenv("LIBRELINGO_DICT_CACHE_SIZE", "128")
	t.Setenv("LIBRELINGO_S3_ENDPOINT", "localhost:9000")
	t.Setenv("LIBRELINGO_S3_ACCESS_KEY", "minio")
	t.Setenv("LIBRELINGO_S3_SECRET_KEY", "minio123")
	t.Setenv("LIBRELINGO_S3_BUCKET", "courses")
	t.Setenv("LIBRELINGO_S3_USE_SSL", "false")

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, "/data/content.db", cfg.DatabasePath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 128, cfg.DictCacheSize)
	assert.True(t, cfg.Publish.Enabled())
	assert.False(t, cfg.Publish.UseSSL)
	assert.Equal(t, "courses", cfg.Publish.Bucket)
}

func TestLoadDotEnvFile(t *testing.T) {
	// godotenv.Load sets process variables; register them for cleanup.
	t.Setenv("LIBRELINGO_OUTPUT_ROOT", "")
	t.Setenv("LIBRELINGO_LOG_FORMAT", "")
	require.NoError(t, os.Unsetenv("LIBRELINGO_OUTPUT_ROOT"))
	require.NoError(t, os.Unsetenv("LIBRELINGO_LOG_FORMAT"))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LIBRELINGO_OUTPUT_ROOT=/tmp/bundles\nLIBRELINGO_LOG_FORMAT=json\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/bundles", cfg.OutputRoot)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadInvalid(t *testing.T) {
	t.Run("bad level", func(t *testing.T) {
		t.Setenv("LIBRELINGO_LOG_LEVEL", "loud")
		_, err := Load(missingEnvFile(t))
		assert.ErrorContains(t, err, "invalid configuration")
	})
	t.Run("bad cache size", func(t *testing.T) {
		t.Setenv("LIBRELINGO_DICT_CACHE_SIZE", "many")
		_, err := Load(missingEnvFile(t))
		assert.Error(t, err)
	})
	t.Run("publish without credentials", func(t *testing.T) {
		t.Setenv("LIBRELINGO_S3_ENDPOINT", "localhost:9000")
		_, err := Load(missingEnvFile(t))
		assert.ErrorContains(t, err, "AccessKey")
	})
}
