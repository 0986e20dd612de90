package profile

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/jonathan/job-autofill/internal/types"
)

// Export writes p as indented JSON.
func Export(w io.Writer, p *types.Profile) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}
	return nil
}

// ExportFilename returns the default file name for a profile exported at t.
func ExportFilename(t time.Time) string {
	return fmt.Sprintf("job_autofill_profile_%s.json", t.Format("2006-01-02"))
}

// Template returns an empty profile with every section present.
func Template() *types.Profile {
	return &types.Profile{Skills: []string{}}
}

// Completion returns how complete p is as a whole percentage over the
// commonly requested fields plus the skills list.
func Completion(p *types.Profile) int {
	if p == nil {
		return 0
	}
	fields := []string{
		p.PersonalInfo.FirstName,
		p.PersonalInfo.LastName,
		p.PersonalInfo.Email,
		p.PersonalInfo.Phone,
		p.PersonalInfo.Address,
		p.PersonalInfo.City,
		p.Professional.Experience,
		p.Education.Degree,
		p.Education.University,
		p.Social.LinkedIn,
		p.Additional.CoverLetter,
	}

	filled := 0
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			filled++
		}
	}
	if len(p.Skills) > 0 {
		filled++
	}
	total := len(fields) + 1
	return int(math.Round(float64(filled) / float64(total) * 100))
}
