package service

import (
	"github.com/delilar/avito-intenship-2025/internal/domain/entity"
)

// The schema registry is the single source of truth for which fields each
// category requires and how to read them off a Listing. Validation is
// table-driven from here instead of being replicated per variant.

type fieldKind int

const (
	kindString fieldKind = iota
	kindNumber
)

type fieldAccessor struct {
	kind fieldKind
	str  func(l *entity.Listing) string
	num  func(l *entity.Listing) float64
}

var categoryFields = map[string]fieldAccessor{
	"propertyType": {kind: kindString, str: func(l *entity.Listing) string { return l.PropertyType }},
	"area":         {kind: kindNumber, num: func(l *entity.Listing) float64 { return l.Area }},
	"rooms":        {kind: kindNumber, num: func(l *entity.Listing) float64 { return float64(l.Rooms) }},
	"price":        {kind: kindNumber, num: func(l *entity.Listing) float64 { return l.Price }},
	"brand":        {kind: kindString, str: func(l *entity.Listing) string { return l.Brand }},
	"model":        {kind: kindString, str: func(l *entity.Listing) string { return l.Model }},
	"year":         {kind: kindNumber, num: func(l *entity.Listing) float64 { return float64(l.Year) }},
	"mileage":      {kind: kindNumber, num: func(l *entity.Listing) float64 { return l.Mileage }},
	"serviceType":  {kind: kindString, str: func(l *entity.Listing) string { return l.ServiceType }},
	"experience":   {kind: kindNumber, num: func(l *entity.Listing) float64 { return l.Experience }},
	"cost":         {kind: kindNumber, num: func(l *entity.Listing) float64 { return l.Cost }},
}

// optionalNumericFields are not required but still bound-checked when set.
var optionalNumericFields = map[entity.Category][]string{
	entity.CategoryVehicle: {"mileage"},
}

// basicInfoFields are required on step 0 regardless of category.
var basicInfoFields = []string{"name", "description", "location", "category"}

// RequiredFields returns the ordered list of category-specific fields that
// must be present before a listing of that category can be submitted.
// Unknown categories yield nil.
func RequiredFields(c entity.Category) []string {
	switch c {
	case entity.CategoryRealEstate:
		return []string{"propertyType", "area", "rooms", "price"}
	case entity.CategoryVehicle:
		return []string{"brand", "model", "year"}
	case entity.CategoryService:
		return []string{"serviceType", "experience", "cost"}
	}
	return nil
}

// BasicInfoFields returns the step-0 required field names.
func BasicInfoFields() []string {
	out := make([]string, len(basicInfoFields))
	copy(out, basicInfoFields)
	return out
}
