package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// record is one row of the device store.
type record struct {
	Key       string `gorm:"primaryKey;column:record_key"`
	Value     []byte `gorm:"not null"`
	UpdatedAt time.Time
}

func (record) TableName() string { return "kv_records" }

// SQLite is a KV backed by a single SQLite file.
type SQLite struct {
	db *gorm.DB
}

// OpenSQLite opens (creating if needed) the store at path.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	if err != nil {
		return nil, fmt.Errorf("open device store: %w", err)
	}
	if err := db.AutoMigrate(&record{}); err != nil {
		return nil, fmt.Errorf("migrate device store: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var r record
	err := s.db.WithContext(ctx).Where("record_key = ?", key).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return r.Value, nil
}

func (s *SQLite) Put(ctx context.Context, key string, value []byte) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "record_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).Create(&record{Key: key, Value: value, UpdatedAt: time.Now().UTC()}).Error
	})
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Where("record_key = ?", key).Delete(&record{}).Error
}

func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
