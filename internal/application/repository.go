package application

import (
	"database/sql"
	"errors"

	"github.com/workhive/job-portal/internal/jobseeker"

	"github.com/lib/pq"
)

// Repository implements Store over Postgres. The apply transaction takes
// a row lock on the job so the counter and the ledger move together.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db}
}

func (r *Repository) RunTx(fn func(Tx) error) error {
	tx, err := r.db.Begin()
	if err != nil {
		return translateTxErr(err)
	}
	if err := fn(&sqlTx{tx}); err != nil {
		tx.Rollback()
		return translateTxErr(err)
	}
	if err := tx.Commit(); err != nil {
		return translateTxErr(err)
	}
	return nil
}

func (r *Repository) ApplicantsForJob(jobID string, page, perPage int) ([]jobseeker.Summary, int, error) {
	applicants := []jobseeker.Summary{}
	offset := page*perPage - perPage
	rows, err := r.db.Query(
		`SELECT count(*) OVER() AS full_count, js.id, u.first_name || ' ' || u.last_name, u.email, js.skills, js.experience_years, a.applied_at
		FROM application a
		JOIN job_seeker js ON js.id = a.job_seeker_id
		JOIN users u ON u.id = a.user_id
		WHERE a.job_id = $1
		ORDER BY a.applied_at ASC LIMIT $2 OFFSET $3`, jobID, perPage, offset)
	if err == sql.ErrNoRows {
		return applicants, 0, nil
	}
	if err != nil {
		return applicants, 0, err
	}
	defer rows.Close()
	var fullRowsCount int
	for rows.Next() {
		var a jobseeker.Summary
		var skills string
		if err := rows.Scan(&fullRowsCount, &a.ID, &a.Name, &a.Email, &skills, &a.ExperienceYears, &a.AppliedAt); err != nil {
			return applicants, fullRowsCount, err
		}
		a.SkillsArray = jobseeker.SplitSkills(skills)
		applicants = append(applicants, a)
	}
	if err := rows.Err(); err != nil {
		return applicants, fullRowsCount, err
	}
	return applicants, fullRowsCount, nil
}

type sqlTx struct {
	tx *sql.Tx
}

func (t *sqlTx) JobForUpdate(jobID string) (*JobState, error) {
	row := t.tx.QueryRow(`SELECT id, status, deleted_at IS NOT NULL FROM job WHERE id = $1 FOR UPDATE`, jobID)
	j := &JobState{}
	err := row.Scan(&j.ID, &j.Status, &j.Deleted)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return j, nil
}

func (t *sqlTx) HasApplied(userID, jobID string) (bool, error) {
	var applied bool
	err := t.tx.QueryRow(`SELECT EXISTS (SELECT 1 FROM application WHERE job_id = $1 AND user_id = $2)`, jobID, userID).Scan(&applied)
	return applied, err
}

func (t *sqlTx) SeekerIDForUser(userID string) (string, error) {
	var seekerID string
	err := t.tx.QueryRow(`SELECT id FROM job_seeker WHERE user_id = $1`, userID).Scan(&seekerID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return seekerID, nil
}

func (t *sqlTx) InsertApplication(jobID, userID, seekerID string) (bool, error) {
	res, err := t.tx.Exec(
		`INSERT INTO application (job_id, user_id, job_seeker_id, applied_at) VALUES ($1, $2, $3, NOW()) ON CONFLICT (job_id, user_id) DO NOTHING`,
		jobID,
		userID,
		seekerID,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (t *sqlTx) IncrementApplicants(jobID string) error {
	_, err := t.tx.Exec(`UPDATE job SET applicants = applicants + 1 WHERE id = $1`, jobID)
	return err
}

// translateTxErr maps serialisation failures and deadlocks onto
// ErrTxConflict so the workflow can retry them.
func translateTxErr(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == "40001" || pqErr.Code == "40P01" {
			return ErrTxConflict
		}
	}
	return err
}
