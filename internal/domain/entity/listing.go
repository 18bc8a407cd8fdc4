package entity

type Category string

const (
	CategoryRealEstate Category = "real_estate"
	CategoryVehicle    Category = "vehicle"
	CategoryService    Category = "service"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryRealEstate, CategoryVehicle, CategoryService:
		return true
	}
	return false
}

// Listing is the tagged union over the three classified categories. The
// Category field selects which variant block is semantically required;
// fields of the other variants may hold leftovers from a previous category
// selection and are ignored by validation and submission.
type Listing struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Category    Category `json:"category"`
	Image       string   `json:"image,omitempty"`

	// Real estate
	PropertyType string  `json:"propertyType,omitempty"`
	Area         float64 `json:"area,omitempty"`
	Rooms        int     `json:"rooms,omitempty"`
	Price        float64 `json:"price,omitempty"`

	// Vehicle
	Brand   string  `json:"brand,omitempty"`
	Model   string  `json:"model,omitempty"`
	Year    int     `json:"year,omitempty"`
	Mileage float64 `json:"mileage,omitempty"`

	// Service
	ServiceType  string  `json:"serviceType,omitempty"`
	Experience   float64 `json:"experience,omitempty"`
	Cost         float64 `json:"cost,omitempty"`
	WorkSchedule string  `json:"workSchedule,omitempty"`
}

// ForSubmission returns a copy reduced to the common fields plus the variant
// block of the active category. Inert fields left over from an earlier
// category selection are stripped here, at the API boundary only; the
// in-session copy keeps them so the user can switch back without data loss.
func (l Listing) ForSubmission() Listing {
	out := Listing{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		Location:    l.Location,
		Category:    l.Category,
		Image:       l.Image,
	}
	switch l.Category {
	case CategoryRealEstate:
		out.PropertyType = l.PropertyType
		out.Area = l.Area
		out.Rooms = l.Rooms
		out.Price = l.Price
	case CategoryVehicle:
		out.Brand = l.Brand
		out.Model = l.Model
		out.Year = l.Year
		out.Mileage = l.Mileage
	case CategoryService:
		out.ServiceType = l.ServiceType
		out.Experience = l.Experience
		out.Cost = l.Cost
		out.WorkSchedule = l.WorkSchedule
	}
	return out
}
