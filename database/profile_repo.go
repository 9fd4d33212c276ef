package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/bilingual-portfolio-backend/models"
	"gorm.io/gorm"
)

type ProfileRepo struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ProfileRepo) GetDB() *gorm.DB {
	return r.db
}

// Get returns the canonical profile, or nil when none exists
func (r *ProfileRepo) Get(ctx context.Context) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.WithContext(ctx).Order("created_at ASC").First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Create inserts a profile row; server-assigned fields are filled in place
func (r *ProfileRepo) Create(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *ProfileRepo) Update(ctx context.Context, id uuid.UUID, update models.ProfileUpdate) (*models.Profile, error) {
	return updateByID[models.Profile](ctx, r.db, "profile", id, update.Changes())
}

func (r *ProfileRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.Profile](ctx, r.db, id)
}
