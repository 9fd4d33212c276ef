package models

import "github.com/google/uuid"

// Profile is the site owner's profile. The first row is treated as canonical.
type Profile struct {
	Base
	UserID      *uuid.UUID `json:"user_id" db:"user_id" gorm:"type:uuid"`
	Name        string     `json:"name" db:"name" gorm:"type:text;not null"`
	TitleEn     string     `json:"title_en" db:"title_en" gorm:"type:text;not null"`
	TitleVi     string     `json:"title_vi" db:"title_vi" gorm:"type:text;not null"`
	TaglineEn   *string    `json:"tagline_en" db:"tagline_en" gorm:"type:text"`
	TaglineVi   *string    `json:"tagline_vi" db:"tagline_vi" gorm:"type:text"`
	SummaryEn   *string    `json:"summary_en" db:"summary_en" gorm:"type:text"`
	SummaryVi   *string    `json:"summary_vi" db:"summary_vi" gorm:"type:text"`
	StoryEn     *string    `json:"story_en" db:"story_en" gorm:"type:text"`
	StoryVi     *string    `json:"story_vi" db:"story_vi" gorm:"type:text"`
	Email       *string    `json:"email" db:"email" gorm:"type:text"`
	Phone       *string    `json:"phone" db:"phone" gorm:"type:text"`
	Location    *string    `json:"location" db:"location" gorm:"type:text"`
	AvatarURL   *string    `json:"avatar_url" db:"avatar_url" gorm:"type:text"`
	GithubURL   *string    `json:"github_url" db:"github_url" gorm:"type:text"`
	LinkedinURL *string    `json:"linkedin_url" db:"linkedin_url" gorm:"type:text"`
	TwitterURL  *string    `json:"twitter_url" db:"twitter_url" gorm:"type:text"`
}

func (Profile) TableName() string { return "profile" }
