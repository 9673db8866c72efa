package jobseeker

import (
	"database/sql"
	"strings"
	"time"

	"github.com/segmentio/ksuid"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db}
}

func (r *Repository) JobSeekerByUserID(userID string) (JobSeeker, error) {
	row := r.db.QueryRow(`SELECT id, user_id, skills, experience_years, resume_url, created_at, updated_at FROM job_seeker WHERE user_id = $1`, userID)
	var js JobSeeker
	var resumeURL sql.NullString
	var updatedAt sql.NullTime
	err := row.Scan(&js.ID, &js.UserID, &js.Skills, &js.ExperienceYears, &resumeURL, &js.CreatedAt, &updatedAt)
	if err != nil {
		return js, err
	}
	js.ResumeURL = resumeURL.String
	if updatedAt.Valid {
		js.UpdatedAt = updatedAt.Time
	}
	js.SkillsArray = SplitSkills(js.Skills)
	return js, nil
}

// UpsertProfile creates or updates the caller's profile in one statement.
func (r *Repository) UpsertProfile(userID string, rq ProfileRq) (JobSeeker, error) {
	k, err := ksuid.NewRandom()
	if err != nil {
		return JobSeeker{}, err
	}
	now := time.Now().UTC()
	skills := strings.Join(rq.Skills, ",")
	_, err = r.db.Exec(
		`INSERT INTO job_seeker (id, user_id, skills, experience_years, resume_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id)
		DO UPDATE SET skills = $3, experience_years = $4, resume_url = $5, updated_at = $6`,
		k.String(),
		userID,
		skills,
		rq.ExperienceYears,
		rq.ResumeURL,
		now,
	)
	if err != nil {
		return JobSeeker{}, err
	}
	return r.JobSeekerByUserID(userID)
}
