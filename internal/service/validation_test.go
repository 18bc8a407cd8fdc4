package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateRequired(t *testing.T) {
	assert.NotEmpty(t, ValidateRequired(""))
	assert.NotEmpty(t, ValidateRequired("   "))
	assert.NotEmpty(t, ValidateRequired("\t\n"))
	assert.Empty(t, ValidateRequired("x"))
	assert.Empty(t, ValidateRequired(" padded "))
}

func TestValidateNumeric_Bounds(t *testing.T) {
	currentYear := float64(time.Now().Year())

	tests := []struct {
		name   string
		field  string
		value  float64
		wantOK bool
	}{
		{"area below minimum", "area", 0, false},
		{"area at minimum", "area", 1, true},
		{"rooms below minimum", "rooms", 0, false},
		{"rooms at minimum", "rooms", 1, true},
		{"price negative", "price", -1, false},
		{"price zero", "price", 0, true},
		{"cost negative", "cost", -1, false},
		{"cost zero", "cost", 0, true},
		{"year below minimum", "year", 1899, false},
		{"year at minimum", "year", 1900, true},
		{"year current", "year", currentYear, true},
		{"year in the future", "year", currentYear + 1, false},
		{"mileage negative", "mileage", -1, false},
		{"mileage zero", "mileage", 0, true},
		{"experience negative", "experience", -1, false},
		{"experience zero", "experience", 0, true},
		{"unknown field always passes", "somethingElse", -42, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := ValidateNumeric(tt.field, tt.value)
			if tt.wantOK {
				assert.Empty(t, msg)
			} else {
				assert.NotEmpty(t, msg)
			}
		})
	}
}
