package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pageza/nutriai/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBackend stores items as rows of the kv_entries table.
type GormBackend struct {
	db *gorm.DB
}

// NewGormBackend wraps a migrated database handle.
func NewGormBackend(db *gorm.DB) *GormBackend {
	return &GormBackend{db: db}
}

// GetItem returns the raw value stored under key.
func (g *GormBackend) GetItem(ctx context.Context, key string) (string, error) {
	var entry models.KVEntry
	err := g.db.WithContext(ctx).Where("entry_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load %s: %w", key, err)
	}
	return entry.Value, nil
}

// SetItem upserts the row for key.
func (g *GormBackend) SetItem(ctx context.Context, key, value string) error {
	entry := models.KVEntry{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// RemoveItem deletes the row for key.
func (g *GormBackend) RemoveItem(ctx context.Context, key string) error {
	if err := g.db.WithContext(ctx).Where("entry_key = ?", key).Delete(&models.KVEntry{}).Error; err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
