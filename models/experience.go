package models

import "gorm.io/datatypes"

// Experience is a work history entry. EndDate is nil while IsCurrent is set.
type Experience struct {
	Base
	TitleEn        string                      `json:"title_en" db:"title_en" gorm:"type:text;not null"`
	TitleVi        string                      `json:"title_vi" db:"title_vi" gorm:"type:text;not null"`
	CompanyEn      string                      `json:"company_en" db:"company_en" gorm:"type:text;not null"`
	CompanyVi      string                      `json:"company_vi" db:"company_vi" gorm:"type:text;not null"`
	DescriptionEn  *string                     `json:"description_en" db:"description_en" gorm:"type:text"`
	DescriptionVi  *string                     `json:"description_vi" db:"description_vi" gorm:"type:text"`
	Location       *string                     `json:"location" db:"location" gorm:"type:text"`
	StartDate      datatypes.Date              `json:"start_date" db:"start_date" gorm:"not null"`
	EndDate        *datatypes.Date             `json:"end_date" db:"end_date"`
	IsCurrent      bool                        `json:"is_current" db:"is_current" gorm:"not null;default:false"`
	AchievementsEn datatypes.JSONSlice[string] `json:"achievements_en" db:"achievements_en"`
	AchievementsVi datatypes.JSONSlice[string] `json:"achievements_vi" db:"achievements_vi"`
	ImageURL       *string                     `json:"image_url" db:"image_url" gorm:"type:text"`
	Published      bool                        `json:"published" db:"published" gorm:"not null;default:false;index"`
	DisplayOrder   int                         `json:"display_order" db:"display_order" gorm:"type:integer;not null;default:0"`
}

func (Experience) TableName() string { return "experiences" }
