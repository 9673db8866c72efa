package jobseeker

import (
	"strings"
	"time"
)

// JobSeeker is the applicant-facing profile, distinct from the users row
// used for authentication. A job's applicant list records these ids.
type JobSeeker struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Skills          string    `json:"-"`
	SkillsArray     []string  `json:"skills"`
	ExperienceYears int       `json:"experience_years"`
	ResumeURL       string    `json:"resume_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Summary is what a job creator sees in the applicant list.
type Summary struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	SkillsArray     []string  `json:"skills"`
	ExperienceYears int       `json:"experience_years"`
	AppliedAt       time.Time `json:"applied_at"`
}

type ProfileRq struct {
	Skills          []string `json:"skills"`
	ExperienceYears int      `json:"experience_years"`
	ResumeURL       string   `json:"resume_url"`
}

// SplitSkills turns the stored comma-separated skills column into the
// payload array, dropping empty entries.
func SplitSkills(skills string) []string {
	if skills == "" {
		return []string{}
	}
	parts := strings.Split(skills, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
