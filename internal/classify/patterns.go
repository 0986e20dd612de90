// Package classify infers the semantic category of a form element from the
// text signals around it.
package classify

import "github.com/jonathan/job-autofill/internal/types"

// Rule is the pattern list and priority weight for one category.
type Rule struct {
	Category types.Category
	Patterns []string
	Priority int
}

// Rules is the category table, iterated in order so ties resolve to the earlier entry.
var Rules = []Rule{
	{
		Category: types.CategoryEmail,
		Patterns: []string{
			"email", "e-mail", "email address", "mail", "electronic mail",
			"email_address", "contact_email", "work_email", "personal_email",
			"e_mail", "emailaddress", "mail_address", "user.email",
		},
		Priority: 100,
	},
	{
		Category: types.CategoryFirstName,
		Patterns: []string{
			"first name", "firstname", "fname", "given name", "forename",
			"first_name", "givenname", "name_first", "applicant_first_name",
			"candidate_first_name", "first", "given",
			"name-first", "name.first", "personal.firstname", "user.firstname",
		},
		Priority: 90,
	},
	{
		Category: types.CategoryLastName,
		Patterns: []string{
			"last name", "lastname", "lname", "surname", "family name",
			"last_name", "familyname", "name_last", "applicant_last_name",
			"candidate_last_name", "last", "family", "sur name",
			"name-last", "name.last", "personal.lastname", "user.lastname",
		},
		Priority: 90,
	},
	{
		Category: types.CategoryFullName,
		Patterns: []string{
			"full name", "name", "candidate name", "applicant name", "your name",
			"fullname", "complete name", "legal name", "display name", "user name",
			"full-name", "full_name", "applicant_name", "candidate_name",
		},
		Priority: 70,
	},
	{
		Category: types.CategoryPhone,
		Patterns: []string{
			"phone", "telephone", "mobile", "cell", "contact number",
			"phone number", "tel", "mobile number", "cell phone", "contact_phone",
			"home phone", "work phone", "phone_number", "telephone_number",
		},
		Priority: 80,
	},
	{
		Category: types.CategoryAddress,
		Patterns: []string{
			"address", "street address", "home address", "mailing address",
			"street", "address line", "residential address", "current address",
			"address line 1", "addr", "street_address", "address1", "address_1",
		},
		Priority: 70,
	},
	{
		Category: types.CategoryCity,
		Patterns: []string{"city", "town", "locality", "municipality", "urban area"},
		Priority: 70,
	},
	{
		Category: types.CategoryState,
		Patterns: []string{"state", "province", "region", "territory", "county", "prefecture"},
		Priority: 70,
	},
	{
		Category: types.CategoryZipCode,
		Patterns: []string{
			"zip", "zip code", "postal code", "postcode", "postal", "pin code",
			"zipcode", "zip_code", "postal_code", "post_code",
		},
		Priority: 70,
	},
	{
		Category: types.CategoryCountry,
		Patterns: []string{"country", "nation", "nationality", "country of residence"},
		Priority: 70,
	},
	{
		Category: types.CategoryLocation,
		Patterns: []string{
			"location", "current location", "preferred location", "work location",
			"job location", "where are you located", "your location", "based in",
			"residence", "current city", "current residence",
		},
		Priority: 60,
	},
}

// RuleFor returns the rule for a category.
func RuleFor(c types.Category) (Rule, bool) {
	for _, r := range Rules {
		if r.Category == c {
			return r, true
		}
	}
	return Rule{}, false
}
