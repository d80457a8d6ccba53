package database

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"
)

type Database struct {
	db *gorm.DB

	// stampMu is shared by every handle derived from one connection so
	// creation_time and the row id are assigned in the same order.
	stampMu *sync.Mutex
}

func NewDatabase(db *gorm.DB) *Database {
	return &Database{db: db, stampMu: &sync.Mutex{}}
}

// Transaction runs fn against a Database bound to a single transaction.
// The transaction is rolled back if fn returns an error.
func (d *Database) Transaction(ctx context.Context, fn func(tx *Database) error) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Database{db: tx, stampMu: d.stampMu})
	})
}

func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	if d.db == nil {
		return nil
	}
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// createStamped inserts value with *stamp set to the current time. Stamping
// and inserting happen under one lock, so rows written by this process get
// creation times in id order.
func (d *Database) createStamped(ctx context.Context, value interface{}, stamp *time.Time) error {
	d.stampMu.Lock()
	defer d.stampMu.Unlock()

	*stamp = d.db.NowFunc()
	return d.db.WithContext(ctx).Create(value).Error
}
