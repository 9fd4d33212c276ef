package models

import "gorm.io/datatypes"

// Project is a portfolio case study, looked up publicly by its slug.
type Project struct {
	Base
	TitleEn       string                      `json:"title_en" db:"title_en" gorm:"type:text;not null"`
	TitleVi       string                      `json:"title_vi" db:"title_vi" gorm:"type:text;not null"`
	Slug          string                      `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	DescriptionEn *string                     `json:"description_en" db:"description_en" gorm:"type:text"`
	DescriptionVi *string                     `json:"description_vi" db:"description_vi" gorm:"type:text"`
	ProblemEn     *string                     `json:"problem_en" db:"problem_en" gorm:"type:text"`
	ProblemVi     *string                     `json:"problem_vi" db:"problem_vi" gorm:"type:text"`
	ActionEn      *string                     `json:"action_en" db:"action_en" gorm:"type:text"`
	ActionVi      *string                     `json:"action_vi" db:"action_vi" gorm:"type:text"`
	ResultEn      *string                     `json:"result_en" db:"result_en" gorm:"type:text"`
	ResultVi      *string                     `json:"result_vi" db:"result_vi" gorm:"type:text"`
	ImageURL      *string                     `json:"image_url" db:"image_url" gorm:"type:text"`
	GalleryURLs   datatypes.JSONSlice[string] `json:"gallery_urls" db:"gallery_urls"`
	Tags          datatypes.JSONSlice[string] `json:"tags" db:"tags"`
	ProjectURL    *string                     `json:"project_url" db:"project_url" gorm:"type:text"`
	ProjectDate   *datatypes.Date             `json:"project_date" db:"project_date"`
	Published     bool                        `json:"published" db:"published" gorm:"not null;default:false;index"`
	Featured      bool                        `json:"featured" db:"featured" gorm:"not null;default:false"`
	DisplayOrder  int                         `json:"display_order" db:"display_order" gorm:"type:integer;not null;default:0"`
}

func (Project) TableName() string { return "projects" }
