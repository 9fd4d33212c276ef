package models

import "github.com/google/uuid"

// BlogTag is a bilingual label that posts link to through BlogPostTag
type BlogTag struct {
	Base
	NameEn string `json:"name_en" db:"name_en" gorm:"type:text;not null"`
	NameVi string `json:"name_vi" db:"name_vi" gorm:"type:text;not null"`
	Slug   string `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
}

func (BlogTag) TableName() string { return "blog_tags" }

// BlogPostTag links one post to one tag. A pair is stored at most once.
type BlogPostTag struct {
	Base
	PostID uuid.UUID `json:"post_id" db:"post_id" gorm:"type:uuid;not null;uniqueIndex:idx_blog_post_tag_unique;index:idx_blog_post_tag_post_id"`
	TagID  uuid.UUID `json:"tag_id" db:"tag_id" gorm:"type:uuid;not null;uniqueIndex:idx_blog_post_tag_unique"`

	Post BlogPost `json:"-" gorm:"foreignKey:PostID;references:ID;constraint:OnDelete:CASCADE"`
	Tag  BlogTag  `json:"-" gorm:"foreignKey:TagID;references:ID;constraint:OnDelete:CASCADE"`
}

func (BlogPostTag) TableName() string { return "blog_post_tags" }
