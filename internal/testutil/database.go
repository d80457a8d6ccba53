package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/thereayou/socialnet/internal/database"
)

// NewDatabase opens a migrated SQLite database in a temp dir. It is closed
// when the test ends.
func NewDatabase(t *testing.T, clock *Clock) *database.Database {
	t.Helper()

	opts := database.Options{
		Driver:   database.DriverSQLite,
		DSN:      filepath.Join(t.TempDir(), "socialnet.db"),
		LogLevel: logger.Silent,
	}
	if clock != nil {
		opts.NowFunc = clock.Now
	}

	db := &database.Database{}
	require.NoError(t, db.Connect(opts))
	require.NoError(t, db.Migrate())
	t.Cleanup(func() { db.Close() })

	return db
}
