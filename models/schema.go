package models

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// AllModels returns the persisted record kinds in dependency order.
func AllModels() []any {
	return []any{
		&Category{},
		&Supplier{},
		&Product{},
	}
}

// Migrate creates missing tables, columns, indexes and foreign keys.
// Existing data is never dropped.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
