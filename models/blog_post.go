package models

import "time"

// BlogPost represents a bilingual blog post with publishing metadata
type BlogPost struct {
	Base
	TitleEn          string     `json:"title_en" db:"title_en" gorm:"type:text;not null"`
	TitleVi          string     `json:"title_vi" db:"title_vi" gorm:"type:text;not null"`
	Slug             string     `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	ContentEn        string     `json:"content_en" db:"content_en" gorm:"type:text;not null"`
	ContentVi        string     `json:"content_vi" db:"content_vi" gorm:"type:text;not null"`
	ExcerptEn        *string    `json:"excerpt_en" db:"excerpt_en" gorm:"type:text"`
	ExcerptVi        *string    `json:"excerpt_vi" db:"excerpt_vi" gorm:"type:text"`
	CategoryEn       *string    `json:"category_en" db:"category_en" gorm:"type:text;index"`
	CategoryVi       *string    `json:"category_vi" db:"category_vi" gorm:"type:text;index"`
	FeaturedImageURL *string    `json:"featured_image_url" db:"featured_image_url" gorm:"type:text"`
	AuthorName       *string    `json:"author_name" db:"author_name" gorm:"type:text"`
	ReadingTime      *int       `json:"reading_time" db:"reading_time" gorm:"type:integer"`
	Views            int        `json:"views" db:"views" gorm:"type:integer;not null;default:0"`
	Published        bool       `json:"published" db:"published" gorm:"not null;default:false;index"`
	PublishedAt      *time.Time `json:"published_at" db:"published_at"`
	Featured         bool       `json:"featured" db:"featured" gorm:"not null;default:false"`

	Tags []BlogTag `json:"tags,omitempty" gorm:"-"`
}

func (BlogPost) TableName() string { return "blog_posts" }
