package models

import "gorm.io/datatypes"

// Activity is a volunteering, community or side activity entry.
type Activity struct {
	Base
	TitleEn        string                      `json:"title_en" db:"title_en" gorm:"type:text;not null"`
	TitleVi        string                      `json:"title_vi" db:"title_vi" gorm:"type:text;not null"`
	OrganizationEn string                      `json:"organization_en" db:"organization_en" gorm:"type:text;not null"`
	OrganizationVi string                      `json:"organization_vi" db:"organization_vi" gorm:"type:text;not null"`
	RoleEn         *string                     `json:"role_en" db:"role_en" gorm:"type:text"`
	RoleVi         *string                     `json:"role_vi" db:"role_vi" gorm:"type:text"`
	DescriptionEn  *string                     `json:"description_en" db:"description_en" gorm:"type:text"`
	DescriptionVi  *string                     `json:"description_vi" db:"description_vi" gorm:"type:text"`
	StartDate      datatypes.Date              `json:"start_date" db:"start_date" gorm:"not null"`
	EndDate        *datatypes.Date             `json:"end_date" db:"end_date"`
	AchievementsEn datatypes.JSONSlice[string] `json:"achievements_en" db:"achievements_en"`
	AchievementsVi datatypes.JSONSlice[string] `json:"achievements_vi" db:"achievements_vi"`
	ImageURL       *string                     `json:"image_url" db:"image_url" gorm:"type:text"`
	Published      bool                        `json:"published" db:"published" gorm:"not null;default:false;index"`
	Featured       bool                        `json:"featured" db:"featured" gorm:"not null;default:false"`
	DisplayOrder   int                         `json:"display_order" db:"display_order" gorm:"type:integer;not null;default:0"`
}

func (Activity) TableName() string { return "activities" }
