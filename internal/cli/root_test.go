package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "socialnet", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"serve", "migrate"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	flag := cmd.PersistentFlags().Lookup("config")
	require.NotNil(t, flag)
	assert.Equal(t, "c", flag.Shorthand)
	assert.Equal(t, "", flag.DefValue)
}

// chdir moves into dir so no stray .env file is picked up.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DATABASE_DRIVER", "DATABASE_URL", "JWT_SECRET", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
	}
}

func TestMigrateCreatesSchema(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	clearEnv(t)

	dbPath := filepath.Join(dir, "socialnet.db")
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"database:\n  driver: sqlite\n  url: "+dbPath+"\njwt_secret: test-secret\nlog:\n  level: error\n",
	), 0o600))

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"migrate", "--config", cfgPath})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "migrated")

	_, err := os.Stat(dbPath)
	assert.NoError(t, err)
}

func TestMigrateRejectsMissingConfig(t *testing.T) {
	chdir(t, t.TempDir())
	clearEnv(t)

	cmd := NewRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"migrate", "--config", "does-not-exist.yaml"})

	assert.Error(t, cmd.Execute())
}
