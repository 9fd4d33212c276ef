package models

// Setting is a site text entry keyed by Key, such as footer_text.
type Setting struct {
	Base
	Key         string  `json:"key" db:"key" gorm:"type:text;not null;uniqueIndex"`
	ValueEn     *string `json:"value_en" db:"value_en" gorm:"type:text"`
	ValueVi     *string `json:"value_vi" db:"value_vi" gorm:"type:text"`
	Description *string `json:"description" db:"description" gorm:"type:text"`
}

func (Setting) TableName() string { return "settings" }
