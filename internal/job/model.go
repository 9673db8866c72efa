package job

import (
	"fmt"
	"time"

	"github.com/workhive/job-portal/internal/apperr"
	"github.com/workhive/job-portal/internal/company"

	"github.com/dustin/go-humanize"
)

const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

type Job struct {
	ID                  string           `json:"id"`
	Title               string           `json:"title"`
	Description         string           `json:"description"`
	CompanyID           string           `json:"company_id"`
	CreatedBy           string           `json:"created_by"`
	City                string           `json:"city"`
	State               string           `json:"state"`
	Country             string           `json:"country"`
	SalaryMin           int64            `json:"min_salary"`
	SalaryMax           int64            `json:"max_salary"`
	SalaryRange         string           `json:"salary_range"`
	Status              string           `json:"status"`
	Applicants          int              `json:"applicants"`
	Slug                string           `json:"slug"`
	PostedAt            time.Time        `json:"posted_date"`
	PostedTimeAgo       string           `json:"posted_time_ago"`
	ApplicationDeadline *time.Time       `json:"application_deadline,omitempty"`
	DeletedAt           *time.Time       `json:"-"`
	Company             *company.Summary `json:"company,omitempty"`
	HasApplied          *bool            `json:"hasApplied,omitempty"`
}

// Humanise fills the display-only fields derived from stored columns.
func (j *Job) Humanise() {
	j.PostedTimeAgo = humanize.Time(j.PostedAt)
	j.SalaryRange = fmt.Sprintf("$%s to $%s", humanize.Comma(j.SalaryMin), humanize.Comma(j.SalaryMax))
}

type JobRq struct {
	Title               string `json:"title"`
	Description         string `json:"description"`
	CompanyID           string `json:"company_id"`
	City                string `json:"city"`
	State               string `json:"state"`
	Country             string `json:"country"`
	SalaryMin           int64  `json:"min_salary"`
	SalaryMax           int64  `json:"max_salary"`
	ApplicationDeadline string `json:"application_deadline,omitempty"`
}

// Validate checks required and malformed fields, returning a validation
// error carrying one entry per offending field.
func (rq *JobRq) Validate() error {
	fields := make(map[string]string)
	if rq.Title == "" {
		fields["title"] = "title is required"
	}
	if rq.Description == "" {
		fields["description"] = "description is required"
	}
	if rq.CompanyID == "" {
		fields["company_id"] = "company_id is required"
	}
	if rq.SalaryMin < 0 {
		fields["min_salary"] = "min_salary cannot be negative"
	}
	if rq.SalaryMax < 0 {
		fields["max_salary"] = "max_salary cannot be negative"
	}
	if rq.ApplicationDeadline != "" {
		if _, err := time.Parse(time.RFC3339, rq.ApplicationDeadline); err != nil {
			fields["application_deadline"] = "application_deadline must be a RFC3339 timestamp"
		}
	}
	if len(fields) > 0 {
		err := apperr.Validation("Invalid job payload")
		err.Fields = fields
		return err
	}
	return nil
}

// JobRqUpdate carries a partial update; nil fields are left untouched.
type JobRqUpdate struct {
	Title               *string `json:"title"`
	Description         *string `json:"description"`
	City                *string `json:"city"`
	State               *string `json:"state"`
	Country             *string `json:"country"`
	SalaryMin           *int64  `json:"min_salary"`
	SalaryMax           *int64  `json:"max_salary"`
	ApplicationDeadline *string `json:"application_deadline"`
}

// Filters narrows a catalog listing. Zero values mean "no filter".
// MinSalary and MaxSalary are applied as two independent range checks
// against the job's salary band.
type Filters struct {
	Title     string
	City      string
	State     string
	Country   string
	CompanyID string
	Status    string
	CreatedBy string
	MinSalary int64
	MaxSalary int64
}

type Sort struct {
	Field string
	Desc  bool
}

// Query describes one catalog listing. CallerID, when set, annotates each
// job with whether that user applied to it. OnlyAppliedBy restricts the
// listing to jobs the user applied to; ExcludeAppliedBy removes them.
type Query struct {
	Filters          Filters
	Sort             Sort
	Page             int
	PerPage          int
	CallerID         string
	OnlyAppliedBy    string
	ExcludeAppliedBy string
}
