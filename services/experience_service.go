package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/bilingual-portfolio-backend/cache"
	"github.com/rpupo63/bilingual-portfolio-backend/database"
	"github.com/rpupo63/bilingual-portfolio-backend/models"
)

type ExperienceService struct {
	cache *cache.Cache
	repo  *database.ExperienceRepo
}

func (s *ExperienceService) Published(ctx context.Context) ([]*models.Experience, error) {
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.Experiences, "published"), s.repo.FindPublished)
}

func (s *ExperienceService) All(ctx context.Context) ([]*models.Experience, error) {
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.Experiences, "all"), s.repo.FindAll)
}

func (s *ExperienceService) ByID(ctx context.Context, id uuid.UUID) (*models.Experience, error) {
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.Experiences, id), func(ctx context.Context) (*models.Experience, error) {
		return s.repo.FindByID(ctx, id)
	})
}

func (s *ExperienceService) Create(ctx context.Context, experience *models.Experience) (Mutation[*models.Experience], error) {
	o := outcome{entity: cache.Experiences, noun: "experience", action: "create", success: "Experience created successfully", failure: "create experience"}
	if err := firstError(
		required("title_en", experience.TitleEn),
		required("title_vi", experience.TitleVi),
		required("company_en", experience.CompanyEn),
		required("company_vi", experience.CompanyVi),
		requiredDate("start_date", experience.StartDate),
	); err != nil {
		return reject[*models.Experience](o, err)
	}
	if experience.IsCurrent {
		experience.EndDate = nil
	}
	return commit(ctx, s.cache, o, func(ctx context.Context) (*models.Experience, error) {
		return experience, s.repo.Create(ctx, experience)
	})
}

func (s *ExperienceService) Update(ctx context.Context, id uuid.UUID, update models.ExperienceUpdate) (Mutation[*models.Experience], error) {
	o := outcome{entity: cache.Experiences, noun: "experience", action: "update", success: "Experience updated successfully", failure: "update experience"}
	if err := firstError(
		keepRequired("title_en", update.TitleEn),
		keepRequired("title_vi", update.TitleVi),
		keepRequired("company_en", update.CompanyEn),
		keepRequired("company_vi", update.CompanyVi),
		keepRequiredDate("start_date", update.StartDate),
	); err != nil {
		return reject[*models.Experience](o, err)
	}
	return commit(ctx, s.cache, o, func(ctx context.Context) (*models.Experience, error) {
		return s.repo.Update(ctx, id, update)
	})
}

func (s *ExperienceService) Delete(ctx context.Context, id uuid.UUID) (Mutation[uuid.UUID], error) {
	o := outcome{entity: cache.Experiences, noun: "experience", action: "delete", success: "Experience deleted successfully", failure: "delete experience"}
	return commit(ctx, s.cache, o, func(ctx context.Context) (uuid.UUID, error) {
		return id, s.repo.Delete(ctx, id)
	})
}

func (s *ExperienceService) TogglePublished(ctx context.Context, id uuid.UUID) (Mutation[*models.Experience], error) {
	o := outcome{entity: cache.Experiences, noun: "experience", action: "toggle_published", success: "Experience status updated", failure: "update status"}
	return commit(ctx, s.cache, o, func(ctx context.Context) (*models.Experience, error) {
		return s.repo.TogglePublished(ctx, id)
	})
}
