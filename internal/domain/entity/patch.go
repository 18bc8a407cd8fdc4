package entity

// ListingPatch is a partial Listing: nil means "field not supplied".
// It is the unit of merge for both the wizard working copy and the durable
// draft. Merge semantics are shallow, per-field, last-write-wins.
type ListingPatch struct {
	Name        *string   `json:"name,omitempty"`
	Description *string   `json:"description,omitempty"`
	Location    *string   `json:"location,omitempty"`
	Category    *Category `json:"category,omitempty"`
	Image       *string   `json:"image,omitempty"`

	PropertyType *string  `json:"propertyType,omitempty"`
	Area         *float64 `json:"area,omitempty"`
	Rooms        *int     `json:"rooms,omitempty"`
	Price        *float64 `json:"price,omitempty"`

	Brand   *string  `json:"brand,omitempty"`
	Model   *string  `json:"model,omitempty"`
	Year    *int     `json:"year,omitempty"`
	Mileage *float64 `json:"mileage,omitempty"`

	ServiceType  *string  `json:"serviceType,omitempty"`
	Experience   *float64 `json:"experience,omitempty"`
	Cost         *float64 `json:"cost,omitempty"`
	WorkSchedule *string  `json:"workSchedule,omitempty"`
}

// Apply overwrites the supplied fields on l and leaves the rest untouched.
func (p ListingPatch) Apply(l *Listing) {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.Location != nil {
		l.Location = *p.Location
	}
	if p.Category != nil {
		l.Category = *p.Category
	}
	if p.Image != nil {
		l.Image = *p.Image
	}
	if p.PropertyType != nil {
		l.PropertyType = *p.PropertyType
	}
	if p.Area != nil {
		l.Area = *p.Area
	}
	if p.Rooms != nil {
		l.Rooms = *p.Rooms
	}
	if p.Price != nil {
		l.Price = *p.Price
	}
	if p.Brand != nil {
		l.Brand = *p.Brand
	}
	if p.Model != nil {
		l.Model = *p.Model
	}
	if p.Year != nil {
		l.Year = *p.Year
	}
	if p.Mileage != nil {
		l.Mileage = *p.Mileage
	}
	if p.ServiceType != nil {
		l.ServiceType = *p.ServiceType
	}
	if p.Experience != nil {
		l.Experience = *p.Experience
	}
	if p.Cost != nil {
		l.Cost = *p.Cost
	}
	if p.WorkSchedule != nil {
		l.WorkSchedule = *p.WorkSchedule
	}
}

// Fields reports the names of the fields the patch supplies, using the wire
// names shared with the validation error map.
func (p ListingPatch) Fields() []string {
	var out []string
	if p.Name != nil {
		out = append(out, "name")
	}
	if p.Description != nil {
		out = append(out, "description")
	}
	if p.Location != nil {
		out = append(out, "location")
	}
	if p.Category != nil {
		out = append(out, "category")
	}
	if p.Image != nil {
		out = append(out, "image")
	}
	if p.PropertyType != nil {
		out = append(out, "propertyType")
	}
	if p.Area != nil {
		out = append(out, "area")
	}
	if p.Rooms != nil {
		out = append(out, "rooms")
	}
	if p.Price != nil {
		out = append(out, "price")
	}
	if p.Brand != nil {
		out = append(out, "brand")
	}
	if p.Model != nil {
		out = append(out, "model")
	}
	if p.Year != nil {
		out = append(out, "year")
	}
	if p.Mileage != nil {
		out = append(out, "mileage")
	}
	if p.ServiceType != nil {
		out = append(out, "serviceType")
	}
	if p.Experience != nil {
		out = append(out, "experience")
	}
	if p.Cost != nil {
		out = append(out, "cost")
	}
	if p.WorkSchedule != nil {
		out = append(out, "workSchedule")
	}
	return out
}

// PatchFrom builds a patch carrying every non-zero field of l. It is used to
// persist the accumulated working copy as a draft without clobbering stored
// fields the session never touched.
func PatchFrom(l Listing) ListingPatch {
	var p ListingPatch
	if l.Name != "" {
		p.Name = &l.Name
	}
	if l.Description != "" {
		p.Description = &l.Description
	}
	if l.Location != "" {
		p.Location = &l.Location
	}
	if l.Category != "" {
		p.Category = &l.Category
	}
	if l.Image != "" {
		p.Image = &l.Image
	}
	if l.PropertyType != "" {
		p.PropertyType = &l.PropertyType
	}
	if l.Area != 0 {
		p.Area = &l.Area
	}
	if l.Rooms != 0 {
		p.Rooms = &l.Rooms
	}
	if l.Price != 0 {
		p.Price = &l.Price
	}
	if l.Brand != "" {
		p.Brand = &l.Brand
	}
	if l.Model != "" {
		p.Model = &l.Model
	}
	if l.Year != 0 {
		p.Year = &l.Year
	}
	if l.Mileage != 0 {
		p.Mileage = &l.Mileage
	}
	if l.ServiceType != "" {
		p.ServiceType = &l.ServiceType
	}
	if l.Experience != 0 {
		p.Experience = &l.Experience
	}
	if l.Cost != 0 {
		p.Cost = &l.Cost
	}
	if l.WorkSchedule != "" {
		p.WorkSchedule = &l.WorkSchedule
	}
	return p
}
