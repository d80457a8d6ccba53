package database

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/thereayou/socialnet/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Options struct {
	Driver string
	DSN    string

	// NowFunc stamps creation_time on posts and comments. Defaults to time.Now in UTC.
	NowFunc func() time.Time

	LogLevel logger.LogLevel
}

func (d *Database) Connect(opts Options) error {
	if opts.DSN == "" {
		return errors.New("DATABASE_URL is not set")
	}

	dialector, err := openDialector(opts.Driver, opts.DSN)
	if err != nil {
		return err
	}

	nowFunc := opts.NowFunc
	if nowFunc == nil {
		nowFunc = func() time.Time { return time.Now().UTC() }
	}

	logLevel := opts.LogLevel
	if logLevel == 0 {
		logLevel = logger.Warn
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		NowFunc:        nowFunc,
		TranslateError: true,
		Logger:         logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return err
	}

	if opts.Driver == DriverSQLite {
		if err := configureSQLite(db); err != nil {
			return err
		}
	}

	d.db = db
	d.stampMu = &sync.Mutex{}

	return nil
}

// Migrate creates or updates the users, friends, posts and comments tables.
func (d *Database) Migrate() error {
	return d.db.AutoMigrate(&models.User{}, &models.Friend{}, &models.Post{}, &models.Comment{})
}

func openDialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case DriverPostgres, "":
		return postgres.Open(dsn), nil
	case DriverSQLite:
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// SQLite allows one writer at a time, so the pool is pinned to a single
// connection and writers queue instead of failing with SQLITE_BUSY.
func configureSQLite(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}
