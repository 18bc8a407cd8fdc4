package service

import (
	"strings"
	"time"

	"github.com/delilar/avito-intenship-2025/internal/domain/entity"
)

// FieldErrors maps a field name to a human-readable validation message.
// Validation results are data shown next to the offending field, never Go
// errors: a failed check only blocks the attempted step transition.
type FieldErrors map[string]string

const msgRequired = "this field is required"

// ValidateRequired returns a message when the value is empty or
// whitespace-only, and "" when the value passes.
func ValidateRequired(value string) string {
	if strings.TrimSpace(value) == "" {
		return msgRequired
	}
	return ""
}

// ValidateNumeric applies the per-field bounds. Fields without a rule pass.
func ValidateNumeric(field string, value float64) string {
	switch field {
	case "area":
		if value < 1 {
			return "area must be at least 1"
		}
	case "rooms":
		if value < 1 {
			return "at least 1 room is required"
		}
	case "price", "cost":
		if value < 0 {
			return "value cannot be negative"
		}
	case "year":
		if value < 1900 {
			return "year must be 1900 or later"
		}
		if value > float64(time.Now().Year()) {
			return "year cannot be in the future"
		}
	case "mileage":
		if value < 0 {
			return "mileage cannot be negative"
		}
	case "experience":
		if value < 0 {
			return "experience cannot be negative"
		}
	}
	return ""
}

// validateBasicInfo checks the step-0 common fields.
func validateBasicInfo(l *entity.Listing) FieldErrors {
	errs := FieldErrors{}
	if msg := ValidateRequired(l.Name); msg != "" {
		errs["name"] = msg
	}
	if msg := ValidateRequired(l.Description); msg != "" {
		errs["description"] = msg
	}
	if msg := ValidateRequired(l.Location); msg != "" {
		errs["location"] = msg
	}
	if msg := ValidateRequired(string(l.Category)); msg != "" {
		errs["category"] = msg
	} else if !l.Category.Valid() {
		errs["category"] = "unknown category"
	}
	return errs
}

// validateCategoryDetails checks the step-1 fields of the active category:
// presence for every required field (zero value counts as absent) plus the
// numeric bounds. Fields of inactive variants are never inspected.
func validateCategoryDetails(l *entity.Listing) FieldErrors {
	errs := FieldErrors{}
	if !l.Category.Valid() {
		errs["category"] = msgRequired
		return errs
	}

	for _, field := range RequiredFields(l.Category) {
		acc := categoryFields[field]
		switch acc.kind {
		case kindString:
			if msg := ValidateRequired(acc.str(l)); msg != "" {
				errs[field] = msg
			}
		case kindNumber:
			v := acc.num(l)
			if v == 0 {
				errs[field] = msgRequired
				continue
			}
			if msg := ValidateNumeric(field, v); msg != "" {
				errs[field] = msg
			}
		}
	}

	for _, field := range optionalNumericFields[l.Category] {
		v := categoryFields[field].num(l)
		if v == 0 {
			continue
		}
		if msg := ValidateNumeric(field, v); msg != "" {
			errs[field] = msg
		}
	}
	return errs
}
