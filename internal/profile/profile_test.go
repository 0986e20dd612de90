package profile

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-autofill/internal/schemas"
	"github.com/jonathan/job-autofill/internal/types"
)

func TestResolveValue_Direct(t *testing.T) {
	p := &types.Profile{PersonalInfo: types.PersonalInfo{
		FirstName: "Ann",
		LastName:  "Lee",
		Email:     "a@b.com",
		Phone:     "555-0100",
		Address:   "1 Main St",
		City:      "Austin",
		State:     "TX",
		ZipCode:   "78701",
		Country:   "USA",
	}}

	tests := map[types.Category]string{
		types.CategoryFirstName: "Ann",
		types.CategoryLastName:  "Lee",
		types.CategoryEmail:     "a@b.com",
		types.CategoryPhone:     "555-0100",
		types.CategoryAddress:   "1 Main St",
		types.CategoryCity:      "Austin",
		types.CategoryState:     "TX",
		types.CategoryZipCode:   "78701",
		types.CategoryCountry:   "USA",
		types.CategoryFullName:  "Ann Lee",
		types.CategoryLocation:  "Austin, TX",
	}
	for c, want := range tests {
		got, ok := ResolveValue(c, p)
		assert.True(t, ok, c)
		assert.Equal(t, want, got, c)
	}

	_, ok := ResolveValue(types.CategoryUnknown, p)
	assert.False(t, ok)
}

func TestResolveValue_Derived(t *testing.T) {
	tests := []struct {
		name     string
		info     types.PersonalInfo
		category types.Category
		want     string
		ok       bool
	}{
		{"explicit full name wins", types.PersonalInfo{FullName: "Dr. Ann Lee", FirstName: "Ann", LastName: "Lee"}, types.CategoryFullName, "Dr. Ann Lee", true},
		{"full name needs both parts", types.PersonalInfo{FirstName: "Ann"}, types.CategoryFullName, "", false},
		{"blank explicit full name falls back", types.PersonalInfo{FullName: "  ", FirstName: "Ann", LastName: "Lee"}, types.CategoryFullName, "Ann Lee", true},
		{"explicit location wins", types.PersonalInfo{Location: "Remote", City: "Austin", State: "TX"}, types.CategoryLocation, "Remote", true},
		{"location absent without state", types.PersonalInfo{City: "Austin"}, types.CategoryLocation, "", false},
		{"location absent without city", types.PersonalInfo{State: "TX"}, types.CategoryLocation, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveValue(tt.category, &types.Profile{PersonalInfo: tt.info})
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveValue_BlankIsAbsent(t *testing.T) {
	p := &types.Profile{PersonalInfo: types.PersonalInfo{Phone: " \t", Email: ""}}
	_, ok := ResolveValue(types.CategoryPhone, p)
	assert.False(t, ok)
	_, ok = ResolveValue(types.CategoryEmail, p)
	assert.False(t, ok)
	_, ok = ResolveValue(types.CategoryEmail, nil)
	assert.False(t, ok)
}

func TestDecode_JSONAndYAML(t *testing.T) {
	fromJSON, err := Decode([]byte(`{"personalInfo": {"firstName": "Ann", "email": "a@b.com"}, "skills": ["go"]}`), FormatJSON)
	require.NoError(t, err)

	fromYAML, err := Decode([]byte("personalInfo:\n  firstName: Ann\n  email: a@b.com\nskills:\n  - go\n"), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, fromJSON, fromYAML)
	assert.Equal(t, "Ann", fromYAML.PersonalInfo.FirstName)
}

func TestDecode_YAMLKeepsDigitStrings(t *testing.T) {
	p, err := Decode([]byte("personalInfo:\n  firstName: Ann\n  zipCode: 02139\n  phone: 5551234567\nskills:\n  - 3.10\n"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "02139", p.PersonalInfo.ZipCode)
	assert.Equal(t, "5551234567", p.PersonalInfo.Phone)
	assert.Equal(t, []string{"3.10"}, p.Skills)

	zip, ok := ResolveValue(types.CategoryZipCode, p)
	assert.True(t, ok)
	assert.Equal(t, "02139", zip)
}

func TestDecode_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"empty", "  ", FormatJSON},
		{"missing personalInfo", `{"skills": []}`, FormatJSON},
		{"bad email", `{"personalInfo": {"email": "not-an-email"}}`, FormatJSON},
		{"bad yaml", "personalInfo: [", FormatYAML},
		{"bad url", `{"personalInfo": {}, "social": {"linkedin": "nope"}}`, FormatJSON},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), tt.format)
			require.Error(t, err)
			var ie *ImportError
			assert.ErrorAs(t, err, &ie)
		})
	}
}

func TestDecode_MissingPersonalInfoIsSchemaError(t *testing.T) {
	_, err := Decode([]byte(`{"professional": {}}`), FormatJSON)
	var ve *schemas.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.HasField("personalInfo"))
}

func TestDecodeString_DetectsFormat(t *testing.T) {
	p, err := DecodeString("personalInfo:\n  city: Austin\n")
	require.NoError(t, err)
	assert.Equal(t, "Austin", p.PersonalInfo.City)

	p, err = DecodeString(` {"personalInfo": {"city": "Boston"}}`)
	require.NoError(t, err)
	assert.Equal(t, "Boston", p.PersonalInfo.City)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "me.yml")
	require.NoError(t, os.WriteFile(path, []byte("personalInfo:\n  lastName: Lee\n"), 0o600))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Lee", p.PersonalInfo.LastName)

	_, err = Load(filepath.Join(dir, "missing.json"))
	var ie *ImportError
	require.ErrorAs(t, err, &ie)
	assert.Contains(t, ie.Source, "missing.json")
}

func TestExport_RoundTrips(t *testing.T) {
	in := &types.Profile{
		PersonalInfo: types.PersonalInfo{FirstName: "Ann", Email: "a@b.com"},
		Skills:       []string{"go"},
	}
	var buf bytes.Buffer
	require.NoError(t, Export(&buf, in))
	assert.Contains(t, buf.String(), "\n  \"personalInfo\": {")

	out, err := Decode(buf.Bytes(), FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestExportFilename(t *testing.T) {
	ts := time.Date(2024, time.March, 5, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "job_autofill_profile_2024-03-05.json", ExportFilename(ts))
}

func TestTemplate(t *testing.T) {
	data, err := json.Marshal(Template())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"personalInfo":{`)
	assert.Contains(t, string(data), `"skills":[]`)
	assert.Equal(t, 0, Completion(Template()))
}

func TestCompletion(t *testing.T) {
	p := &types.Profile{
		PersonalInfo: types.PersonalInfo{FirstName: "Ann", LastName: "Lee", Email: "a@b.com"},
	}
	assert.Equal(t, 25, Completion(p))

	p.Skills = []string{"go"}
	assert.Equal(t, 33, Completion(p))

	full := &types.Profile{
		PersonalInfo: types.PersonalInfo{FirstName: "a", LastName: "b", Email: "c@d.e", Phone: "1", Address: "x", City: "y"},
		Professional: types.Professional{Experience: "5"},
		Education:    types.Education{Degree: "BS", University: "U"},
		Social:       types.Social{LinkedIn: "https://linkedin.com/in/a"},
		Additional:   types.Additional{CoverLetter: "hi"},
		Skills:       []string{"go"},
	}
	assert.Equal(t, 100, Completion(full))
	assert.Equal(t, 0, Completion(nil))
}
