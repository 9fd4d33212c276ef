package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/bilingual-portfolio-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRoleRepo struct {
	db *gorm.DB
}

func NewUserRoleRepo(db *gorm.DB) *UserRoleRepo {
	return &UserRoleRepo{db}
}

// GetDB returns the underlying database connection for debugging purposes
func (r *UserRoleRepo) GetDB() *gorm.DB {
	return r.db
}

// HasRole reports whether userID currently holds role. It always reads the
// primary; callers must not cache the answer.
func (r *UserRoleRepo) HasRole(ctx context.Context, userID uuid.UUID, role string) (bool, error) {
	var ok bool
	err := roleCheck(primary(ctx, r.db), userID, role).Scan(&ok).Error
	return ok, err
}

// roleCheck selects one boolean. Postgres answers through the has_role
// function; other databases count user_roles rows.
func roleCheck(tx *gorm.DB, userID uuid.UUID, role string) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Raw("SELECT has_role(?, ?)", userID, role)
	}
	return tx.Model(&models.UserRole{}).
		Select("COUNT(*) > 0").
		Where("user_id = ? AND role = ?", userID, role)
}

// Grant gives role to userID. Granting a held role is a no-op.
func (r *UserRoleRepo) Grant(ctx context.Context, userID uuid.UUID, role string) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "role"}},
		DoNothing: true,
	}).Create(&models.UserRole{UserID: userID, Role: role}).Error
}

func (r *UserRoleRepo) Revoke(ctx context.Context, userID uuid.UUID, role string) error {
	return r.db.WithContext(ctx).Where("user_id = ? AND role = ?", userID, role).Delete(&models.UserRole{}).Error
}
