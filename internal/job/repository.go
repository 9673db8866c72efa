package job

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/workhive/job-portal/internal/company"

	"github.com/gosimple/slug"
	"github.com/microcosm-cc/bluemonday"
	"github.com/segmentio/ksuid"
)

var (
	ErrNotFound     = errors.New("job not found")
	ErrInvalidState = errors.New("job is not in a valid state for this transition")
)

type Repository struct {
	db        *sql.DB
	sanitiser *bluemonday.Policy
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db, sanitiser: bluemonday.UGCPolicy()}
}

func (r *Repository) SaveJob(rq *JobRq, creatorID string) (*Job, error) {
	k, err := ksuid.NewRandom()
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	j := &Job{
		ID:          k.String(),
		Title:       rq.Title,
		Description: r.sanitiser.Sanitize(rq.Description),
		CompanyID:   rq.CompanyID,
		CreatedBy:   creatorID,
		City:        rq.City,
		State:       rq.State,
		Country:     rq.Country,
		SalaryMin:   rq.SalaryMin,
		SalaryMax:   rq.SalaryMax,
		Status:      StatusOpen,
		Slug:        slug.Make(fmt.Sprintf("%s %d", rq.Title, now.Unix())),
		PostedAt:    now,
	}
	if rq.ApplicationDeadline != "" {
		deadline, err := time.Parse(time.RFC3339, rq.ApplicationDeadline)
		if err != nil {
			return nil, err
		}
		j.ApplicationDeadline = &deadline
	}
	_, err = r.db.Exec(
		`INSERT INTO job (id, title, description, company_id, created_by, city, state, country, salary_min, salary_max, status, applicants, slug, posted_at, application_deadline)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 0, $12, $13, $14)`,
		j.ID,
		j.Title,
		j.Description,
		j.CompanyID,
		j.CreatedBy,
		j.City,
		j.State,
		j.Country,
		j.SalaryMin,
		j.SalaryMax,
		j.Status,
		j.Slug,
		j.PostedAt,
		j.ApplicationDeadline,
	)
	if err != nil {
		return nil, err
	}
	j.Humanise()
	return j, nil
}

// JobByID returns a job with its company summary populated. Soft-deleted
// jobs are invisible here like everywhere else in the catalog.
func (r *Repository) JobByID(jobID string) (*Job, error) {
	row := r.db.QueryRow(
		`SELECT `+listSelectColumns+`
		FROM job j JOIN company c ON c.id = j.company_id
		WHERE j.id = $1 AND j.deleted_at IS NULL`, jobID)
	j, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return j, nil
}

func (r *Repository) JobBySlug(jobSlug string) (*Job, error) {
	row := r.db.QueryRow(
		`SELECT `+listSelectColumns+`
		FROM job j JOIN company c ON c.id = j.company_id
		WHERE j.slug = $1 AND j.deleted_at IS NULL`, jobSlug)
	j, err := scanJob(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return j, nil
}

// JobsByQuery runs one catalog listing and returns the jobs for the page
// along with the unpaginated total.
func (r *Repository) JobsByQuery(q Query) ([]*Job, int, error) {
	stmt, args := buildListQuery(q)
	jobs := []*Job{}
	rows, err := r.db.Query(stmt, args...)
	if err == sql.ErrNoRows {
		return jobs, 0, nil
	}
	if err != nil {
		return jobs, 0, err
	}
	defer rows.Close()
	var fullRowsCount int
	for rows.Next() {
		j := &Job{}
		var city, state, country, companyName, companyLogo sql.NullString
		var deadline sql.NullTime
		var hasApplied bool
		err := rows.Scan(
			&fullRowsCount,
			&j.ID,
			&j.Title,
			&j.Description,
			&j.CompanyID,
			&j.CreatedBy,
			&city,
			&state,
			&country,
			&j.SalaryMin,
			&j.SalaryMax,
			&j.Status,
			&j.Applicants,
			&j.Slug,
			&j.PostedAt,
			&deadline,
			&companyName,
			&companyLogo,
			&hasApplied,
		)
		if err != nil {
			return jobs, fullRowsCount, err
		}
		j.City = city.String
		j.State = state.String
		j.Country = country.String
		if deadline.Valid {
			j.ApplicationDeadline = &deadline.Time
		}
		j.Company = &company.Summary{ID: j.CompanyID, Name: companyName.String, LogoURL: companyLogo.String}
		if q.CallerID != "" || q.ExcludeAppliedBy != "" {
			j.HasApplied = &hasApplied
		}
		j.Humanise()
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return jobs, fullRowsCount, err
	}
	return jobs, fullRowsCount, nil
}

func (r *Repository) UpdateJob(jobID string, rq *JobRqUpdate) (*Job, error) {
	set := []string{}
	args := []interface{}{}
	add := func(col string, v interface{}) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if rq.Title != nil {
		add("title", *rq.Title)
	}
	if rq.Description != nil {
		add("description", r.sanitiser.Sanitize(*rq.Description))
	}
	if rq.City != nil {
		add("city", *rq.City)
	}
	if rq.State != nil {
		add("state", *rq.State)
	}
	if rq.Country != nil {
		add("country", *rq.Country)
	}
	if rq.SalaryMin != nil {
		add("salary_min", *rq.SalaryMin)
	}
	if rq.SalaryMax != nil {
		add("salary_max", *rq.SalaryMax)
	}
	if rq.ApplicationDeadline != nil {
		deadline, err := time.Parse(time.RFC3339, *rq.ApplicationDeadline)
		if err != nil {
			return nil, err
		}
		add("application_deadline", deadline)
	}
	if len(set) > 0 {
		args = append(args, jobID)
		stmt := fmt.Sprintf(`UPDATE job SET %s WHERE id = $%d AND deleted_at IS NULL`, strings.Join(set, ", "), len(args))
		res, err := r.db.Exec(stmt, args...)
		if err != nil {
			return nil, err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return nil, err
		}
		if affected == 0 {
			return nil, ErrNotFound
		}
	}
	return r.JobByID(jobID)
}

// SoftDeleteJob marks the job deleted without removing the row. It does
// not cascade into the application ledger; listings filter at read time.
func (r *Repository) SoftDeleteJob(jobID string) error {
	res, err := r.db.Exec(`UPDATE job SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, jobID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// CloseJob moves an open job to closed. An already-closed job yields
// ErrInvalidState, a missing or deleted one ErrNotFound.
func (r *Repository) CloseJob(jobID string) error {
	return r.transitionJob(jobID, StatusOpen, StatusClosed)
}

// ReopenJob moves a closed job back to open.
func (r *Repository) ReopenJob(jobID string) error {
	return r.transitionJob(jobID, StatusClosed, StatusOpen)
}

func (r *Repository) transitionJob(jobID, from, to string) error {
	res, err := r.db.Exec(`UPDATE job SET status = $1 WHERE id = $2 AND status = $3 AND deleted_at IS NULL`, to, jobID, from)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 1 {
		return nil
	}
	// nothing changed: distinguish a missing job from a wrong-state one
	var status string
	err = r.db.QueryRow(`SELECT status FROM job WHERE id = $1 AND deleted_at IS NULL`, jobID).Scan(&status)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return ErrInvalidState
}

// TotalJobCount feeds the cached landing-page aggregate.
func (r *Repository) TotalJobCount() (int, error) {
	var c int
	err := r.db.QueryRow(`SELECT count(*) AS c FROM job WHERE deleted_at IS NULL`).Scan(&c)
	return c, err
}

// NewJobsLastWeek feeds the cached landing-page aggregate.
func (r *Repository) NewJobsLastWeek() (int, error) {
	var c int
	err := r.db.QueryRow(`SELECT count(*) AS c FROM job WHERE posted_at > NOW() - INTERVAL '1 week' AND deleted_at IS NULL`).Scan(&c)
	return c, err
}

func scanJob(row *sql.Row) (*Job, error) {
	j := &Job{}
	var city, state, country, companyName, companyLogo sql.NullString
	var deadline sql.NullTime
	err := row.Scan(
		&j.ID,
		&j.Title,
		&j.Description,
		&j.CompanyID,
		&j.CreatedBy,
		&city,
		&state,
		&country,
		&j.SalaryMin,
		&j.SalaryMax,
		&j.Status,
		&j.Applicants,
		&j.Slug,
		&j.PostedAt,
		&deadline,
		&companyName,
		&companyLogo,
	)
	if err != nil {
		return nil, err
	}
	j.City = city.String
	j.State = state.String
	j.Country = country.String
	if deadline.Valid {
		j.ApplicationDeadline = &deadline.Time
	}
	j.Company = &company.Summary{ID: j.CompanyID, Name: companyName.String, LogoURL: companyLogo.String}
	j.Humanise()
	return j, nil
}
