package database

import (
	"context"
	"errors"
	"time"

	"github.com/rpupo63/bilingual-portfolio-backend/errs"
	"github.com/rpupo63/bilingual-portfolio-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// keyColumn is quoted by the dialect; key is a keyword in some databases.
var keyColumn = clause.Column{Name: "key"}

type SettingRepo struct {
	db *gorm.DB
}

func NewSettingRepo(db *gorm.DB) *SettingRepo {
	return &SettingRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *SettingRepo) GetDB() *gorm.DB {
	return r.db
}

// FindAll returns every setting ordered by key
func (r *SettingRepo) FindAll(ctx context.Context) ([]*models.Setting, error) {
	var settings []*models.Setting
	err := r.db.WithContext(ctx).Order(clause.OrderByColumn{Column: keyColumn}).Find(&settings).Error
	return settings, err
}

// FindByKey returns the setting stored under key, or nil when there is none
func (r *SettingRepo) FindByKey(ctx context.Context, key string) (*models.Setting, error) {
	return findByKey(r.db.WithContext(ctx), key)
}

// Upsert inserts the setting or, when its key exists, writes only the values
// that were sent. It returns the row as stored.
func (r *SettingRepo) Upsert(ctx context.Context, in models.SettingUpsert) (*models.Setting, error) {
	onConflict := clause.OnConflict{Columns: []clause.Column{keyColumn}, DoNothing: true}
	if changes := in.Changes(); len(changes) > 0 {
		changes["updated_at"] = time.Now()
		onConflict = clause.OnConflict{Columns: []clause.Column{keyColumn}, DoUpdates: clause.Assignments(changes)}
	}
	if err := r.db.WithContext(ctx).Clauses(onConflict).Create(in.Setting()).Error; err != nil {
		return nil, err
	}
	return r.findStored(ctx, in.Key)
}

// UpdateByKey applies the fields present in update to the setting under key
func (r *SettingRepo) UpdateByKey(ctx context.Context, key string, update models.SettingUpdate) (*models.Setting, error) {
	if changes := update.Changes(); len(changes) > 0 {
		if err := r.db.WithContext(ctx).Model(&models.Setting{}).Where(clause.Eq{Column: keyColumn, Value: key}).Updates(changes).Error; err != nil {
			return nil, err
		}
	}
	return r.findStored(ctx, key)
}

func (r *SettingRepo) findStored(ctx context.Context, key string) (*models.Setting, error) {
	stored, err := findByKey(primary(ctx, r.db), key)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, errs.NewNotFound("setting")
	}
	return stored, nil
}

func findByKey(tx *gorm.DB, key string) (*models.Setting, error) {
	var setting models.Setting
	err := tx.Where(clause.Eq{Column: keyColumn, Value: key}).First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *SettingRepo) DeleteByKey(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where(clause.Eq{Column: keyColumn, Value: key}).Delete(&models.Setting{}).Error
}
