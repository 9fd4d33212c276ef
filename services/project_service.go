package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/bilingual-portfolio-backend/cache"
	"github.com/rpupo63/bilingual-portfolio-backend/database"
	"github.com/rpupo63/bilingual-portfolio-backend/models"
)

type ProjectService struct {
	cache *cache.Cache
	repo  *database.ProjectRepo
}

func (s *ProjectService) Published(ctx context.Context) ([]*models.Project, error) {
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.Projects, "published"), s.repo.FindPublished)
}

func (s *ProjectService) Featured(ctx context.Context, limit int) ([]*models.Project, error) {
	if limit <= 0 {
		limit = database.DefaultFeaturedProjects
	}
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.Projects, "featured", limit), func(ctx context.Context) ([]*models.Project, error) {
		return s.repo.FindFeatured(ctx, limit)
	})
}

func (s *ProjectService) All(ctx context.Context) ([]*models.Project, error) {
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.Projects, "all"), s.repo.FindAll)
}

// BySlug returns a published project.
func (s *ProjectService) BySlug(ctx context.Context, slug string) (*models.Project, error) {
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.Projects, "slug", slug), func(ctx context.Context) (*models.Project, error) {
		return s.repo.FindBySlug(ctx, slug)
	})
}

func (s *ProjectService) ByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.Projects, id), func(ctx context.Context) (*models.Project, error) {
		return s.repo.FindByID(ctx, id)
	})
}

// Create stores a project, deriving the slug from title_en when it is blank.
func (s *ProjectService) Create(ctx context.Context, project *models.Project) (Mutation[*models.Project], error) {
	o := outcome{entity: cache.Projects, noun: "project", action: "create", success: "Project created successfully", failure: "create project"}
	if project.Slug == "" {
		project.Slug = Slugify(project.TitleEn)
	}
	if err := firstError(
		required("title_en", project.TitleEn),
		required("title_vi", project.TitleVi),
		validSlug("slug", project.Slug),
	); err != nil {
		return reject[*models.Project](o, err)
	}
	return commit(ctx, s.cache, o, func(ctx context.Context) (*models.Project, error) {
		return project, s.repo.Create(ctx, project)
	})
}

func (s *ProjectService) Update(ctx context.Context, id uuid.UUID, update models.ProjectUpdate) (Mutation[*models.Project], error) {
	o := outcome{entity: cache.Projects, noun: "project", action: "update", success: "Project updated successfully", failure: "update project"}
	err := firstError(
		keepRequired("title_en", update.TitleEn),
		keepRequired("title_vi", update.TitleVi),
		keepRequired("slug", update.Slug),
	)
	if err == nil && update.Slug.Present() {
		err = validSlug("slug", update.Slug.Value)
	}
	if err != nil {
		return reject[*models.Project](o, err)
	}
	return commit(ctx, s.cache, o, func(ctx context.Context) (*models.Project, error) {
		return s.repo.Update(ctx, id, update)
	})
}

func (s *ProjectService) Delete(ctx context.Context, id uuid.UUID) (Mutation[uuid.UUID], error) {
	o := outcome{entity: cache.Projects, noun: "project", action: "delete", success: "Project deleted successfully", failure: "delete project"}
	return commit(ctx, s.cache, o, func(ctx context.Context) (uuid.UUID, error) {
		return id, s.repo.Delete(ctx, id)
	})
}

func (s *ProjectService) TogglePublished(ctx context.Context, id uuid.UUID) (Mutation[*models.Project], error) {
	o := outcome{entity: cache.Projects, noun: "project", action: "toggle_published", success: "Project status updated", failure: "update status"}
	return commit(ctx, s.cache, o, func(ctx context.Context) (*models.Project, error) {
		return s.repo.TogglePublished(ctx, id)
	})
}

func (s *ProjectService) ToggleFeatured(ctx context.Context, id uuid.UUID) (Mutation[*models.Project], error) {
	o := outcome{entity: cache.Projects, noun: "project", action: "toggle_featured", success: "Project featured status updated", failure: "update featured status"}
	return commit(ctx, s.cache, o, func(ctx context.Context) (*models.Project, error) {
		return s.repo.ToggleFeatured(ctx, id)
	})
}
