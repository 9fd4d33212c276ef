package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the server-assigned columns every table shares.
type Base struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at" gorm:"not null"`
}

// BeforeCreate assigns the id on the application side so inserts behave the
// same on Postgres and on the sqlite database used in tests.
func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// All lists every model owned by the schema, in dependency order.
func All() []any {
	return []any{
		&Profile{},
		&Experience{},
		&Project{},
		&Activity{},
		&BlogPost{},
		&BlogTag{},
		&BlogPostTag{},
		&MediaItem{},
		&Setting{},
		&UserRole{},
	}
}
