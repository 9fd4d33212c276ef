package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/bilingual-portfolio-backend/models"
	"gorm.io/gorm"
)

const DefaultFeaturedActivities = 4

type ActivityRepo struct {
	db *gorm.DB
}

func NewActivityRepo(db *gorm.DB) *ActivityRepo {
	return &ActivityRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ActivityRepo) GetDB() *gorm.DB {
	return r.db
}

func (r *ActivityRepo) FindPublished(ctx context.Context) ([]*models.Activity, error) {
	var activities []*models.Activity
	err := r.db.WithContext(ctx).Where("published = ?", true).Order(contentOrder).Find(&activities).Error
	return activities, err
}

func (r *ActivityRepo) FindFeatured(ctx context.Context, limit int) ([]*models.Activity, error) {
	if limit <= 0 {
		limit = DefaultFeaturedActivities
	}
	var activities []*models.Activity
	err := r.db.WithContext(ctx).
		Where("published = ? AND featured = ?", true, true).
		Order(contentOrder).
		Limit(limit).
		Find(&activities).Error
	return activities, err
}

func (r *ActivityRepo) FindAll(ctx context.Context) ([]*models.Activity, error) {
	var activities []*models.Activity
	err := r.db.WithContext(ctx).Order(contentOrder).Find(&activities).Error
	return activities, err
}

func (r *ActivityRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Activity, error) {
	return findByID[models.Activity](ctx, r.db, "activity", id)
}

func (r *ActivityRepo) Create(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *ActivityRepo) Update(ctx context.Context, id uuid.UUID, update models.ActivityUpdate) (*models.Activity, error) {
	return updateByID[models.Activity](ctx, r.db, "activity", id, update.Changes())
}

func (r *ActivityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.Activity](ctx, r.db, id)
}

func (r *ActivityRepo) TogglePublished(ctx context.Context, id uuid.UUID) (*models.Activity, error) {
	return toggleColumn[models.Activity](ctx, r.db, "activity", id, "published")
}

func (r *ActivityRepo) ToggleFeatured(ctx context.Context, id uuid.UUID) (*models.Activity, error) {
	return toggleColumn[models.Activity](ctx, r.db, "activity", id, "featured")
}
