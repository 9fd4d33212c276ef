package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/bilingual-portfolio-backend/errs"
	"github.com/rpupo63/bilingual-portfolio-backend/models"
	"gorm.io/gorm"
)

const DefaultFeaturedProjects = 3

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *ProjectRepo) GetDB() *gorm.DB {
	return r.db
}

// FindPublished returns published projects in display order
func (r *ProjectRepo) FindPublished(ctx context.Context) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.WithContext(ctx).Where("published = ?", true).Order(contentOrder).Find(&projects).Error
	return projects, err
}

// FindFeatured returns at most limit published, featured projects
func (r *ProjectRepo) FindFeatured(ctx context.Context, limit int) ([]*models.Project, error) {
	if limit <= 0 {
		limit = DefaultFeaturedProjects
	}
	var projects []*models.Project
	err := r.db.WithContext(ctx).
		Where("published = ? AND featured = ?", true, true).
		Order(contentOrder).
		Limit(limit).
		Find(&projects).Error
	return projects, err
}

// FindAll returns all projects from the database
func (r *ProjectRepo) FindAll(ctx context.Context) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.WithContext(ctx).Order(contentOrder).Find(&projects).Error
	return projects, err
}

// FindBySlug returns the published project with slug
func (r *ProjectRepo) FindBySlug(ctx context.Context, slug string) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Where("slug = ? AND published = ?", slug, true).First(&project).Error
	if err != nil {
		return nil, errs.NotFoundOr("project", err)
	}
	return &project, nil
}

// FindByID returns a project by its ID
func (r *ProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return findByID[models.Project](ctx, r.db, "project", id)
}

// Create inserts a new project into the database
func (r *ProjectRepo) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// Update applies the fields present in update
func (r *ProjectRepo) Update(ctx context.Context, id uuid.UUID, update models.ProjectUpdate) (*models.Project, error) {
	return updateByID[models.Project](ctx, r.db, "project", id, update.Changes())
}

// Delete removes a project from the database by id
func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[models.Project](ctx, r.db, id)
}

func (r *ProjectRepo) TogglePublished(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return toggleColumn[models.Project](ctx, r.db, "project", id, "published")
}

func (r *ProjectRepo) ToggleFeatured(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return toggleColumn[models.Project](ctx, r.db, "project", id, "featured")
}
