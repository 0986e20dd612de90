// Package types provides type definitions for structured data used throughout the job-autofill system.
package types

// Category is the semantic field type a form input is believed to represent.
type Category string

// Recognized field categories. Unknown marks an element no rule scored high enough for.
const (
	CategoryEmail     Category = "email"
	CategoryFirstName Category = "firstName"
	CategoryLastName  Category = "lastName"
	CategoryFullName  Category = "fullName"
	CategoryPhone     Category = "phone"
	CategoryAddress   Category = "address"
	CategoryCity      Category = "city"
	CategoryState     Category = "state"
	CategoryZipCode   Category = "zipCode"
	CategoryCountry   Category = "country"
	CategoryLocation  Category = "location"
	CategoryUnknown   Category = "unknown"
)

// AllCategories returns every category except Unknown, in rule-table order.
func AllCategories() []Category {
	return []Category{
		CategoryEmail,
		CategoryFirstName,
		CategoryLastName,
		CategoryFullName,
		CategoryPhone,
		CategoryAddress,
		CategoryCity,
		CategoryState,
		CategoryZipCode,
		CategoryCountry,
		CategoryLocation,
	}
}

// IsKnown reports whether c is a recognized, fillable category.
func (c Category) IsKnown() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory maps a string to a Category, returning Unknown for anything unrecognized.
func ParseCategory(s string) Category {
	c := Category(s)
	if c.IsKnown() {
		return c
	}
	return CategoryUnknown
}
