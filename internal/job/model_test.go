package job

import (
	"errors"
	"testing"
	"time"

	"github.com/workhive/job-portal/internal/apperr"
)

func validJobRq() JobRq {
	return JobRq{
		Title:       "Backend Engineer",
		Description: "Build things",
		CompanyID:   "comp-1",
		SalaryMin:   50000,
		SalaryMax:   90000,
	}
}

func TestJobRqValidateOK(t *testing.T) {
	rq := validJobRq()
	if err := rq.Validate(); err != nil {
		t.Fatalf("valid payload rejected: %v", err)
	}
}

func TestJobRqValidateRequiredFields(t *testing.T) {
	rq := JobRq{}
	err := rq.Validate()
	if err == nil {
		t.Fatal("empty payload must fail validation")
	}
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperr.Error, got %T", err)
	}
	if appErr.Code != apperr.CodeValidation {
		t.Errorf("code = %s, want %s", appErr.Code, apperr.CodeValidation)
	}
	for _, field := range []string{"title", "description", "company_id"} {
		if _, ok := appErr.Fields[field]; !ok {
			t.Errorf("missing field error for %q: %v", field, appErr.Fields)
		}
	}
}

func TestJobRqValidateNegativeSalary(t *testing.T) {
	rq := validJobRq()
	rq.SalaryMin = -1
	err := rq.Validate()
	if err == nil {
		t.Fatal("negative salary must fail validation")
	}
	var appErr *apperr.Error
	errors.As(err, &appErr)
	if _, ok := appErr.Fields["min_salary"]; !ok {
		t.Errorf("missing field error for min_salary: %v", appErr.Fields)
	}
}

// An inverted salary band is stored as-is; only negatives are rejected.
func TestJobRqValidateInvertedBandAccepted(t *testing.T) {
	rq := validJobRq()
	rq.SalaryMin = 90000
	rq.SalaryMax = 50000
	if err := rq.Validate(); err != nil {
		t.Fatalf("inverted band must pass validation: %v", err)
	}
}

func TestJobRqValidateDeadlineFormat(t *testing.T) {
	rq := validJobRq()
	rq.ApplicationDeadline = "next tuesday"
	err := rq.Validate()
	if err == nil {
		t.Fatal("malformed deadline must fail validation")
	}
	rq.ApplicationDeadline = time.Now().Add(24 * time.Hour).Format(time.RFC3339)
	if err := rq.Validate(); err != nil {
		t.Fatalf("RFC3339 deadline rejected: %v", err)
	}
}

func TestHumanise(t *testing.T) {
	j := Job{SalaryMin: 50000, SalaryMax: 90000, PostedAt: time.Now().Add(-2 * time.Hour)}
	j.Humanise()
	if j.SalaryRange != "$50,000 to $90,000" {
		t.Errorf("salary range = %q", j.SalaryRange)
	}
	if j.PostedTimeAgo == "" {
		t.Error("posted_time_ago not populated")
	}
}
