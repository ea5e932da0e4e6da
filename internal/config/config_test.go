package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(viper.New(), t.TempDir())
	require.NoError(t, err)

	require.Equal(t, "3000", cfg.Server.Port)
	require.Equal(t, ":3000", cfg.Server.Address())
	require.Empty(t, cfg.Server.BaseURL)
	require.Equal(t, "mongodb://localhost:27017", cfg.Database.URI)
	require.Equal(t, "exercise_tracker", cfg.Database.Name)
	require.Equal(t, "info", cfg.Log.Level)
	require.True(t, cfg.CORS.AllowAll())
	require.Equal(t, "us-east-1", cfg.S3.Region)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("BASE_URL", "https://tracker.example.com")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := load(viper.New(), t.TempDir())
	require.NoError(t, err)

	require.Equal(t, ":8081", cfg.Server.Address())
	require.Equal(t, "https://tracker.example.com", cfg.Server.BaseURL)
	require.Equal(t, "mongodb://db:27017", cfg.Database.URI)
	require.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
	require.False(t, cfg.CORS.AllowAll())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	body := []byte("server:\n  port: \"4000\"\ndatabase:\n  name: tracker_test\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), body, 0o600))

	cfg, err := load(viper.New(), dir)
	require.NoError(t, err)

	require.Equal(t, ":4000", cfg.Server.Address())
	require.Equal(t, "tracker_test", cfg.Database.Name)
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server: [::"), 0o600))

	_, err := load(viper.New(), dir)
	require.Error(t, err)
}

func TestLoadRejectsMissingRequiredValues(t *testing.T) {
	dir := t.TempDir()
	body := []byte("database:\n  name: \"\"\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), body, 0o600))

	_, err := load(viper.New(), dir)
	require.ErrorContains(t, err, "config validation failed")
}

func TestLoadS3FromEnv(t *testing.T) {
	t.Setenv("S3_ENDPOINT", "http://minio:9000")
	t.Setenv("S3_BUCKET_NAME", "exports")
	t.Setenv("S3_ACCESS_KEY_ID", "minio")

	cfg, err := load(viper.New(), t.TempDir())
	require.NoError(t, err)

	require.Equal(t, "http://minio:9000", cfg.S3.Endpoint)
	require.Equal(t, "exports", cfg.S3.BucketName)
	require.Equal(t, "minio", cfg.S3.AccessKeyID)
	require.Equal(t, "us-east-1", cfg.S3.Region)
}
