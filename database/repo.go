package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/bilingual-portfolio-backend/errs"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

// contentOrder is the public sort order of display-ordered entities.
const contentOrder = "display_order ASC, created_at ASC"

// primary pins a statement to the write connection. Rows read back after a
// write and authorization checks go through it, never through a replica.
func primary(ctx context.Context, db *gorm.DB) *gorm.DB {
	return db.WithContext(ctx).Clauses(dbresolver.Write)
}

func findByID[T any](ctx context.Context, db *gorm.DB, entity string, id uuid.UUID) (*T, error) {
	return first[T](db.WithContext(ctx), entity, id)
}

// findWritten is findByID on the write connection.
func findWritten[T any](ctx context.Context, db *gorm.DB, entity string, id uuid.UUID) (*T, error) {
	return first[T](primary(ctx, db), entity, id)
}

func first[T any](tx *gorm.DB, entity string, id uuid.UUID) (*T, error) {
	var record T
	if err := tx.Where("id = ?", id).First(&record).Error; err != nil {
		return nil, errs.NotFoundOr(entity, err)
	}
	return &record, nil
}

// updateByID applies a partial update and returns the row as stored afterwards.
func updateByID[T any](ctx context.Context, db *gorm.DB, entity string, id uuid.UUID, changes map[string]any) (*T, error) {
	if len(changes) > 0 {
		if err := db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(changes).Error; err != nil {
			return nil, err
		}
	}
	return findWritten[T](ctx, db, entity, id)
}

// toggleColumn flips one boolean column without touching updated_at or any
// other column.
func toggleColumn[T any](ctx context.Context, db *gorm.DB, entity string, id uuid.UUID, column string) (*T, error) {
	result := db.WithContext(ctx).Model(new(T)).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr("NOT "+column))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, errs.NewNotFound(entity)
	}
	return findWritten[T](ctx, db, entity, id)
}

func deleteByID[T any](ctx context.Context, db *gorm.DB, id uuid.UUID) error {
	return db.WithContext(ctx).Where("id = ?", id).Delete(new(T)).Error
}
