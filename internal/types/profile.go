package types

import (
	"github.com/go-playground/validator/v10"
)

// Profile is the user record the autofill core reads values from.
// Only PersonalInfo is consumed when filling; the other sections are carried
// through import/export untouched.
type Profile struct {
	PersonalInfo PersonalInfo `json:"personalInfo" yaml:"personalInfo"`
	Professional Professional `json:"professional" yaml:"professional"`
	Education    Education    `json:"education" yaml:"education"`
	Social       Social       `json:"social" yaml:"social"`
	Skills       []string     `json:"skills" yaml:"skills"`
	Additional   Additional   `json:"additional" yaml:"additional"`
}

// PersonalInfo holds contact and address details.
type PersonalInfo struct {
	FirstName string `json:"firstName" yaml:"firstName"`
	LastName  string `json:"lastName" yaml:"lastName"`
	FullName  string `json:"fullName,omitempty" yaml:"fullName,omitempty"`
	Email     string `json:"email" yaml:"email" validate:"omitempty,email"`
	Phone     string `json:"phone" yaml:"phone"`
	Address   string `json:"address" yaml:"address"`
	City      string `json:"city" yaml:"city"`
	State     string `json:"state" yaml:"state"`
	ZipCode   string `json:"zipCode" yaml:"zipCode"`
	Country   string `json:"country" yaml:"country"`
	Location  string `json:"location,omitempty" yaml:"location,omitempty"`
}

// Professional holds current employment details.
type Professional struct {
	JobTitle   string `json:"jobTitle" yaml:"jobTitle"`
	Company    string `json:"company" yaml:"company"`
	Experience string `json:"experience" yaml:"experience"`
}

// Education holds the most relevant degree.
type Education struct {
	Degree         string `json:"degree" yaml:"degree"`
	University     string `json:"university" yaml:"university"`
	GraduationYear string `json:"graduationYear" yaml:"graduationYear"`
	GPA            string `json:"gpa" yaml:"gpa"`
}

// Social holds public profile links.
type Social struct {
	LinkedIn  string `json:"linkedin" yaml:"linkedin" validate:"omitempty,url"`
	Portfolio string `json:"portfolio" yaml:"portfolio" validate:"omitempty,url"`
}

// Additional holds free-form application material.
type Additional struct {
	CoverLetter string `json:"coverLetter" yaml:"coverLetter"`
}

// Validate validates field formats on the Profile using the validator.
func (p *Profile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}
