package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into an empty directory so no .env file leaks into the test.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "DATABASE_DRIVER", "DATABASE_URL", "REDIS_URL", "JWT_SECRET",
		"UPLOADS_DIR", "LOG_LEVEL", "LOG_FORMAT", "TOKEN_TTL", "BCRYPT_COST",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	chdir(t)
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/social")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("PORT", "9000")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "postgres://localhost/social", cfg.Database.URL)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "instance/uploads", cfg.UploadsDir)
}

func TestLoad_YAMLFileWithEnvOverride(t *testing.T) {
	dir := chdir(t)
	clearEnv(t)

	path := filepath.Join(dir, "socialnet.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "7000"
database:
  driver: sqlite
  url: social.db
jwt_secret: from-file
token_ttl: 30m
uploads_dir: /tmp/uploads
log:
  level: debug
  format: json
`), 0o644))

	t.Setenv("JWT_SECRET", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "social.db", cfg.Database.URL)
	assert.Equal(t, "from-env", cfg.JWTSecret)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdir(t)
	clearEnv(t)
	// godotenv never overrides variables that are already set, even empty ones
	for _, key := range []string{"DATABASE_URL", "JWT_SECRET"} {
		os.Unsetenv(key)
	}

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DATABASE_URL=from-dotenv\nJWT_SECRET=dotenv-secret\n"), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("DATABASE_URL")
		os.Unsetenv("JWT_SECRET")
	})

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.Database.URL)
	assert.Equal(t, "dotenv-secret", cfg.JWTSecret)
}

func TestLoad_Invalid(t *testing.T) {
	testCases := []struct {
		Description string
		Env         map[string]string
	}{
		{Description: "missing database url", Env: map[string]string{"JWT_SECRET": "x"}},
		{Description: "missing secret", Env: map[string]string{"DATABASE_URL": "db"}},
		{Description: "bad driver", Env: map[string]string{"DATABASE_URL": "db", "JWT_SECRET": "x", "DATABASE_DRIVER": "mysql"}},
		{Description: "bad ttl", Env: map[string]string{"DATABASE_URL": "db", "JWT_SECRET": "x", "TOKEN_TTL": "soon"}},
		{Description: "bad bcrypt cost", Env: map[string]string{"DATABASE_URL": "db", "JWT_SECRET": "x", "BCRYPT_COST": "high"}},
	}

	for _, tc := range testCases {
		t.Run(tc.Description, func(t *testing.T) {
			chdir(t)
			clearEnv(t)
			for k, v := range tc.Env {
				t.Setenv(k, v)
			}

			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	chdir(t)
	clearEnv(t)
	t.Setenv("DATABASE_URL", "db")
	t.Setenv("JWT_SECRET", "x")

	_, err := Load("does-not-exist.yaml")
	assert.Error(t, err)
}
