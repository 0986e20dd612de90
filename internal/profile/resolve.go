// Package profile resolves profile values for field categories and handles
// profile import, export and completion reporting.
package profile

import (
	"strings"

	"github.com/jonathan/job-autofill/internal/types"
)

// ResolveValue returns the profile value for category. A value that is empty
// after trimming counts as absent, and the field is skipped rather than
// failed. fullName and location fall back to values derived from the name
// and address parts when both parts are present.
func ResolveValue(category types.Category, p *types.Profile) (string, bool) {
	if p == nil {
		return "", false
	}
	info := p.PersonalInfo

	switch category {
	case types.CategoryFirstName:
		return present(info.FirstName)
	case types.CategoryLastName:
		return present(info.LastName)
	case types.CategoryEmail:
		return present(info.Email)
	case types.CategoryPhone:
		return present(info.Phone)
	case types.CategoryAddress:
		return present(info.Address)
	case types.CategoryCity:
		return present(info.City)
	case types.CategoryState:
		return present(info.State)
	case types.CategoryZipCode:
		return present(info.ZipCode)
	case types.CategoryCountry:
		return present(info.Country)
	case types.CategoryFullName:
		if v, ok := present(info.FullName); ok {
			return v, true
		}
		return joined(info.FirstName, " ", info.LastName)
	case types.CategoryLocation:
		if v, ok := present(info.Location); ok {
			return v, true
		}
		return joined(info.City, ", ", info.State)
	}
	return "", false
}

func present(v string) (string, bool) {
	if strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

func joined(a, sep, b string) (string, bool) {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return "", false
	}
	return a + sep + b, true
}
