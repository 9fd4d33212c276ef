package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/bilingual-portfolio-backend/models"
	"gorm.io/gorm"
)

type ExperienceRepo struct {
	db *gorm.DB
}

func NewExperienceRepo(db *gorm.DB) *ExperienceRepo {
	return &ExperienceRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ExperienceRepo) GetDB() *gorm.DB {
	return r.db
}

// FindPublished returns published experiences in display order
func (r *ExperienceRepo) FindPublished(ctx context.Context) ([]*models.Experience, error) {
	var experiences []*models.Experience
	err := r.db.WithContext(ctx).Where("published = ?", true).Order(contentOrder).Find(&experiences).Error
	return experiences, err
}

// FindAll returns every experience for the admin area
func (r *ExperienceRepo) FindAll(ctx context.Context) ([]*models.Experience, error) {
	var experiences []*models.Experience
	err := r.db.WithContext(ctx).Order(contentOrder).Find(&experiences).Error
	return experiences, err
}

func (r *ExperienceRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Experience, error) {
	return findByID[models.Experience](ctx, r.db, "experience", id)
}

func (r *ExperienceRepo) Create(ctx context.Context, experience *models.Experience) error {
	return r.db.WithContext(ctx).Create(experience).Error
}

// Update applies update to the experience. An end date sent without
// is_current is dropped when the stored row is current.
func (r *ExperienceRepo) Update(ctx context.Context, id uuid.UUID, update models.ExperienceUpdate) (*models.Experience, error) {
	if !update.EndDate.Present() || update.IsCurrent.Set {
		return updateByID[models.Experience](ctx, r.db, "experience", id, update.Changes())
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Experience{}).Where("id = ?", id).Updates(update.Changes()).Error; err != nil {
			return err
		}
		return tx.Model(&models.Experience{}).Where("id = ? AND is_current = ?", id, true).
			UpdateColumn("end_date", nil).Error
	})
	if err != nil {
		return nil, err
	}
	return findWritten[models.Experience](ctx, r.db, "experience", id)
}

func (r *ExperienceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.Experience](ctx, r.db, id)
}

func (r *ExperienceRepo) TogglePublished(ctx context.Context, id uuid.UUID) (*models.Experience, error) {
	return toggleColumn[models.Experience](ctx, r.db, "experience", id, "published")
}
