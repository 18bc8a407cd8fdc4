package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryValid(t *testing.T) {
	assert.True(t, CategoryRealEstate.Valid())
	assert.True(t, CategoryVehicle.Valid())
	assert.True(t, CategoryService.Valid())
	assert.False(t, Category("").Valid())
	assert.False(t, Category("bicycles").Valid())
}

func TestForSubmission_StripsInertVariants(t *testing.T) {
	l := Listing{
		ID:          "7",
		Name:        "Flat",
		Description: "d",
		Location:    "l",
		Category:    CategoryRealEstate,
		Image:       "http://img",

		PropertyType: "apartment",
		Area:         50,
		Rooms:        2,
		Price:        120000,

		// Leftovers from earlier category selections.
		Brand:       "Toyota",
		Year:        2010,
		ServiceType: "cleaning",
		Cost:        5000,
	}

	out := l.ForSubmission()

	assert.Equal(t, "7", out.ID)
	assert.Equal(t, "http://img", out.Image)
	assert.Equal(t, float64(50), out.Area)
	assert.Empty(t, out.Brand)
	assert.Zero(t, out.Year)
	assert.Empty(t, out.ServiceType)
	assert.Zero(t, out.Cost)
}

func TestForSubmission_UnknownCategoryKeepsCommonOnly(t *testing.T) {
	l := Listing{Name: "x", Category: Category("bicycles"), Area: 50, Brand: "b"}

	out := l.ForSubmission()

	assert.Equal(t, "x", out.Name)
	assert.Zero(t, out.Area)
	assert.Empty(t, out.Brand)
}

func TestPatchApplyAndFields(t *testing.T) {
	name := "Bike"
	area := 50.0
	p := ListingPatch{Name: &name, Area: &area}

	l := Listing{Name: "old", Location: "Almaty"}
	p.Apply(&l)

	assert.Equal(t, "Bike", l.Name)
	assert.Equal(t, 50.0, l.Area)
	assert.Equal(t, "Almaty", l.Location)
	assert.Equal(t, []string{"name", "area"}, p.Fields())
}

func TestPatchFrom_SkipsZeroFields(t *testing.T) {
	p := PatchFrom(Listing{Name: "Bike", Category: CategoryVehicle, Year: 2015})

	assert.Equal(t, []string{"name", "category", "year"}, p.Fields())
	require.NotNil(t, p.Year)
	assert.Equal(t, 2015, *p.Year)
}

func TestDraftMerge(t *testing.T) {
	d := NewDraft()
	require.Nil(t, d.CurrentDraft)

	name := "Bike"
	d.Merge(ListingPatch{Name: &name}, 0)
	location := "Almaty"
	d.Merge(ListingPatch{Location: &location}, 1)

	require.NotNil(t, d.CurrentDraft)
	assert.Equal(t, "Bike", d.CurrentDraft.Name)
	assert.Equal(t, "Almaty", d.CurrentDraft.Location)
	assert.Equal(t, 1, d.Step)
}

func TestDraftJSONLayout(t *testing.T) {
	name := "Bike"
	d := NewDraft()
	d.Merge(ListingPatch{Name: &name}, 1)

	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"currentDraft":{"name":"Bike","description":"","location":"","category":""},"step":1}`, string(data))
}
