package models

import "github.com/google/uuid"

// MediaItem is the metadata row of an object stored in the media bucket.
type MediaItem struct {
	Base
	Filename   string     `json:"filename" db:"filename" gorm:"type:text;not null"`
	URL        string     `json:"url" db:"url" gorm:"type:text;not null"`
	FileType   *string    `json:"file_type" db:"file_type" gorm:"type:text;index"`
	FileSize   *int64     `json:"file_size" db:"file_size" gorm:"type:bigint"`
	AltTextEn  *string    `json:"alt_text_en" db:"alt_text_en" gorm:"type:text"`
	AltTextVi  *string    `json:"alt_text_vi" db:"alt_text_vi" gorm:"type:text"`
	UploadedBy *uuid.UUID `json:"uploaded_by" db:"uploaded_by" gorm:"type:uuid"`
}

func (MediaItem) TableName() string { return "media_library" }
