package services

import (
	"context"

	"github.com/rpupo63/bilingual-portfolio-backend/cache"
	"github.com/rpupo63/bilingual-portfolio-backend/database"
	"github.com/rpupo63/bilingual-portfolio-backend/errs"
	"github.com/rpupo63/bilingual-portfolio-backend/models"
)

// FooterTextKey is the setting rendered in the site footer.
const FooterTextKey = "footer_text"

type SettingService struct {
	cache *cache.Cache
	repo  *database.SettingRepo
}

func (s *SettingService) All(ctx context.Context) ([]*models.Setting, error) {
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.Settings), s.repo.FindAll)
}

// ByKey returns the setting under key, or nil when there is none.
func (s *SettingService) ByKey(ctx context.Context, key string) (*models.Setting, error) {
	return cache.Fetch(ctx, s.cache, cache.NewKey(cache.Settings, key), func(ctx context.Context) (*models.Setting, error) {
		return s.repo.FindByKey(ctx, key)
	})
}

// Upsert saves the setting under in.Key. Values left out of in keep their
// stored value.
func (s *SettingService) Upsert(ctx context.Context, in models.SettingUpsert) (Mutation[*models.Setting], error) {
	o := outcome{entity: cache.Settings, noun: "setting", action: "upsert", success: "Setting saved successfully", failure: "save setting"}
	if err := validKey(in.Key); err != nil {
		return reject[*models.Setting](o, err)
	}
	return commit(ctx, s.cache, o, func(ctx context.Context) (*models.Setting, error) {
		return s.repo.Upsert(ctx, in)
	})
}

func (s *SettingService) UpdateByKey(ctx context.Context, key string, update models.SettingUpdate) (Mutation[*models.Setting], error) {
	o := outcome{entity: cache.Settings, noun: "setting", action: "update", success: "Setting updated successfully", failure: "update setting"}
	return commit(ctx, s.cache, o, func(ctx context.Context) (*models.Setting, error) {
		return s.repo.UpdateByKey(ctx, key, update)
	})
}

func (s *SettingService) DeleteByKey(ctx context.Context, key string) (Mutation[string], error) {
	o := outcome{entity: cache.Settings, noun: "setting", action: "delete", success: "Setting deleted successfully", failure: "delete setting"}
	return commit(ctx, s.cache, o, func(ctx context.Context) (string, error) {
		return key, s.repo.DeleteByKey(ctx, key)
	})
}

// validKey accepts lowercase keys made of letters, digits, '_', '.' and '-'.
func validKey(key string) error {
	if key == "" {
		return errs.NewMissingRequiredFieldError("key")
	}
	for _, r := range key {
		ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '.' || r == '-'
		if !ok {
			return errs.NewInvalidFieldError("key", "use lowercase letters, digits, '_', '.' or '-'")
		}
	}
	return nil
}
