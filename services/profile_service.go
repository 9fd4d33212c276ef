package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/bilingual-portfolio-backend/cache"
	"github.com/rpupo63/bilingual-portfolio-backend/database"
	"github.com/rpupo63/bilingual-portfolio-backend/models"
)

type ProfileService struct {
	cache *cache.Cache
	repo  *database.ProfileRepo
}

// Get returns the canonical profile, or nil when none exists yet.
func (s *ProfileService) Get(ctx context.Context) (*models.Profile, error) {
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.Profile), s.repo.Get)
}

func (s *ProfileService) Create(ctx context.Context, profile *models.Profile) (Mutation[*models.Profile], error) {
	o := outcome{entity: cache.Profile, noun: "profile", action: "create", success: "Profile created successfully", failure: "create profile"}
	if err := firstError(
		required("name", profile.Name),
		required("title_en", profile.TitleEn),
		required("title_vi", profile.TitleVi),
	); err != nil {
		return reject[*models.Profile](o, err)
	}
	return commit(ctx, s.cache, o, func(ctx context.Context) (*models.Profile, error) {
		return profile, s.repo.Create(ctx, profile)
	})
}

func (s *ProfileService) Update(ctx context.Context, id uuid.UUID, update models.ProfileUpdate) (Mutation[*models.Profile], error) {
	o := outcome{entity: cache.Profile, noun: "profile", action: "update", success: "Profile updated successfully", failure: "update profile"}
	if err := firstError(
		keepRequired("name", update.Name),
		keepRequired("title_en", update.TitleEn),
		keepRequired("title_vi", update.TitleVi),
	); err != nil {
		return reject[*models.Profile](o, err)
	}
	return commit(ctx, s.cache, o, func(ctx context.Context) (*models.Profile, error) {
		return s.repo.Update(ctx, id, update)
	})
}

func (s *ProfileService) Delete(ctx context.Context, id uuid.UUID) (Mutation[uuid.UUID], error) {
	o := outcome{entity: cache.Profile, noun: "profile", action: "delete", success: "Profile deleted successfully", failure: "delete profile"}
	return commit(ctx, s.cache, o, func(ctx context.Context) (uuid.UUID, error) {
		return id, s.repo.Delete(ctx, id)
	})
}
