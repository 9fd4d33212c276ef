package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/bilingual-portfolio-backend/models"
	"gorm.io/gorm"
)

type MediaRepo struct {
	db *gorm.DB
}

func NewMediaRepo(db *gorm.DB) *MediaRepo {
	return &MediaRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *MediaRepo) GetDB() *gorm.DB {
	return r.db
}

// FindAll returns the media library, newest first
func (r *MediaRepo) FindAll(ctx context.Context) ([]*models.MediaItem, error) {
	var items []*models.MediaItem
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error
	return items, err
}

// FindByType returns items whose file_type equals fileType exactly
func (r *MediaRepo) FindByType(ctx context.Context, fileType string) ([]*models.MediaItem, error) {
	var items []*models.MediaItem
	err := r.db.WithContext(ctx).Where("file_type = ?", fileType).Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *MediaRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.MediaItem, error) {
	return findByID[models.MediaItem](ctx, r.db, "media item", id)
}

func (r *MediaRepo) Create(ctx context.Context, item *models.MediaItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *MediaRepo) Update(ctx context.Context, id uuid.UUID, update models.MediaItemUpdate) (*models.MediaItem, error) {
	return updateByID[models.MediaItem](ctx, r.db, "media item", id, update.Changes())
}

func (r *MediaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.MediaItem](ctx, r.db, id)
}
