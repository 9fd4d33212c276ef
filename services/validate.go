package services

import (
	"strings"
	"time"

	"github.com/rpupo63/bilingual-portfolio-backend/errs"
	"github.com/rpupo63/bilingual-portfolio-backend/models"
	"gorm.io/datatypes"
)

// keepRequired rejects an update that clears a required text column.
func keepRequired(field string, v models.Optional[string]) error {
	if v.Set && (v.Null || strings.TrimSpace(v.Value) == "") {
		return errs.NewMissingRequiredFieldError(field)
	}
	return nil
}

// keepRequiredDate rejects an update that clears a required date column.
func keepRequiredDate(field string, v models.Optional[datatypes.Date]) error {
	if v.Set && (v.Null || time.Time(v.Value).IsZero()) {
		return errs.NewMissingRequiredFieldError(field)
	}
	return nil
}

// validSlug checks a caller-supplied slug is already in slug form.
func validSlug(field, slug string) error {
	if slug == "" {
		return errs.NewMissingRequiredFieldError(field)
	}
	if Slugify(slug) != slug {
		return errs.NewInvalidFieldError(field, "must contain only lowercase letters, digits, '_' and single dashes")
	}
	return nil
}

// required rejects blank values of a required text field.
func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewMissingRequiredFieldError(field)
	}
	return nil
}

// requiredDate rejects the zero date.
func requiredDate(field string, value datatypes.Date) error {
	if time.Time(value).IsZero() {
		return errs.NewMissingRequiredFieldError(field)
	}
	return nil
}

// firstError returns the first non-nil error.
func firstError(errors ...error) error {
	for _, err := range errors {
		if err != nil {
			return err
		}
	}
	return nil
}
