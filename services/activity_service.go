package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/bilingual-portfolio-backend/cache"
	"github.com/rpupo63/bilingual-portfolio-backend/database"
	"github.com/rpupo63/bilingual-portfolio-backend/models"
)

type ActivityService struct {
	cache *cache.Cache
	repo  *database.ActivityRepo
}

func (s *ActivityService) Published(ctx context.Context) ([]*models.Activity, error) {
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.Activities, "published"), s.repo.FindPublished)
}

func (s *ActivityService) Featured(ctx context.Context, limit int) ([]*models.Activity, error) {
	if limit <= 0 {
		limit = database.DefaultFeaturedActivities
	}
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.Activities, "featured", limit), func(ctx context.Context) ([]*models.Activity, error) {
		return s.repo.FindFeatured(ctx, limit)
	})
}

func (s *ActivityService) All(ctx context.Context) ([]*models.Activity, error) {
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.Activities, "all"), s.repo.FindAll)
}

func (s *ActivityService) ByID(ctx context.Context, id uuid.UUID) (*models.Activity, error) {
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.Activities, id), func(ctx context.Context) (*models.Activity, error) {
		return s.repo.FindByID(ctx, id)
	})
}

func (s *ActivityService) Create(ctx context.Context, activity *models.Activity) (Mutation[*models.Activity], error) {
	o := outcome{entity: cache.Activities, noun: "activity", action: "create", success: "Activity created successfully", failure: "create activity"}
	if err := firstError(
		required("title_en", activity.TitleEn),
		required("title_vi", activity.TitleVi),
		required("organization_en", activity.OrganizationEn),
		required("organization_vi", activity.OrganizationVi),
		requiredDate("start_date", activity.StartDate),
	); err != nil {
		return reject[*models.Activity](o, err)
	}
	return commit(ctx, s.cache, o, func(ctx context.Context) (*models.Activity, error) {
		return activity, s.repo.Create(ctx, activity)
	})
}

func (s *ActivityService) Update(ctx context.Context, id uuid.UUID, update models.ActivityUpdate) (Mutation[*models.Activity], error) {
	o := outcome{entity: cache.Activities, noun: "activity", action: "update", success: "Activity updated successfully", failure: "update activity"}
	if err := firstError(
		keepRequired("title_en", update.TitleEn),
		keepRequired("title_vi", update.TitleVi),
		keepRequired("organization_en", update.OrganizationEn),
		keepRequired("organization_vi", update.OrganizationVi),
		keepRequiredDate("start_date", update.StartDate),
	); err != nil {
		return reject[*models.Activity](o, err)
	}
	return commit(ctx, s.cache, o, func(ctx context.Context) (*models.Activity, error) {
		return s.repo.Update(ctx, id, update)
	})
}

func (s *ActivityService) Delete(ctx context.Context, id uuid.UUID) (Mutation[uuid.UUID], error) {
	o := outcome{entity: cache.Activities, noun: "activity", action: "delete", success: "Activity deleted successfully", failure: "delete activity"}
	return commit(ctx, s.cache, o, func(ctx context.Context) (uuid.UUID, error) {
		return id, s.repo.Delete(ctx, id)
	})
}

func (s *ActivityService) TogglePublished(ctx context.Context, id uuid.UUID) (Mutation[*models.Activity], error) {
	o := outcome{entity: cache.Activities, noun: "activity", action: "toggle_published", success: "Activity status updated", failure: "update status"}
	return commit(ctx, s.cache, o, func(ctx context.Context) (*models.Activity, error) {
		return s.repo.TogglePublished(ctx, id)
	})
}

func (s *ActivityService) ToggleFeatured(ctx context.Context, id uuid.UUID) (Mutation[*models.Activity], error) {
	o := outcome{entity: cache.Activities, noun: "activity", action: "toggle_featured", success: "Activity featured status updated", failure: "update featured status"}
	return commit(ctx, s.cache, o, func(ctx context.Context) (*models.Activity, error) {
		return s.repo.ToggleFeatured(ctx, id)
	})
}
