package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is the row layout of the Postgres session backend.
type Entry struct {
	Key       string     `gorm:"primaryKey;size:255"`
	Value     string     `gorm:"type:text;not null"`
	ExpiresAt *time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// TableName implements gorm's tabler interface.
func (Entry) TableName() string {
	return "session_entries"
}

// GormStore keeps session values in a SQL table through gorm.
type GormStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormStore wraps an open gorm connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, now: time.Now}
}

// Migrate creates or updates the session table.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(&Entry{})
}

// Get returns the value for key. Expired rows are treated as missing; they are
// overwritten by the next Set.
func (s *GormStore) Get(ctx context.Context, key string) (string, bool, error) {
	var e Entry
	err := s.db.WithContext(ctx).Where("key = ?", key).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load session entry %q: %w", key, err)
	}

	if e.ExpiresAt != nil && s.now().After(*e.ExpiresAt) {
		return "", false, nil
	}
	return e.Value, true, nil
}

// Set upserts the row for key.
func (s *GormStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	e := Entry{Key: key, Value: value}
	if ttl > 0 {
		expires := s.now().Add(ttl)
		e.ExpiresAt = &expires
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(&e).Error
	if err != nil {
		return fmt.Errorf("save session entry %q: %w", key, err)
	}
	return nil
}

// Ping checks the underlying connection pool.
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
