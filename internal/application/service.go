// Package application coordinates the multi-entity mutation behind a job
// application and the applied/not-applied views derived from the ledger.
package application

import (
	"errors"

	"github.com/workhive/job-portal/internal/apperr"
	"github.com/workhive/job-portal/internal/authoriser"
	"github.com/workhive/job-portal/internal/job"
	"github.com/workhive/job-portal/internal/jobseeker"
	"github.com/workhive/job-portal/internal/middleware"

	"github.com/segmentio/ksuid"
)

// ErrTxConflict marks a transaction abort that is safe to retry.
var ErrTxConflict = errors.New("transaction conflict")

// JobState is the locked snapshot of a job taken inside the apply
// transaction; every precondition is re-checked against it.
type JobState struct {
	ID      string
	Status  string
	Deleted bool
}

// Tx is the set of ledger operations available inside one transaction
// boundary. JobForUpdate must lock the job row so that concurrent apply
// attempts for the same job serialise.
type Tx interface {
	// JobForUpdate returns nil when no such job exists.
	JobForUpdate(jobID string) (*JobState, error)
	HasApplied(userID, jobID string) (bool, error)
	// SeekerIDForUser returns "" when the user has no jobseeker profile.
	SeekerIDForUser(userID string) (string, error)
	// InsertApplication reports false when the (job, user) pair is
	// already recorded, without treating it as an error.
	InsertApplication(jobID, userID, seekerID string) (bool, error)
	IncrementApplicants(jobID string) error
}

// Store runs fn inside a transaction: commit on nil, roll back otherwise.
// Aborts that are safe to retry surface as ErrTxConflict.
type Store interface {
	RunTx(fn func(Tx) error) error
	ApplicantsForJob(jobID string, page, perPage int) ([]jobseeker.Summary, int, error)
}

// Catalog is the slice of the job catalog the workflow reads.
type Catalog interface {
	JobByID(jobID string) (*job.Job, error)
	JobsByQuery(q job.Query) ([]*job.Job, int, error)
}

type Service struct {
	store   Store
	catalog Catalog
	auth    authoriser.Authoriser
}

func NewService(store Store, catalog Catalog, auth authoriser.Authoriser) *Service {
	return &Service{store: store, catalog: catalog, auth: auth}
}

// ApplyToJob records that userID applied to jobID. The whole effect — the
// ledger row and the job's applicant counter — commits or rolls back as
// one unit, and every precondition is evaluated under the job row lock so
// concurrent attempts for the same (user, job) pair yield exactly one
// success. A retryable abort is retried once; a second abort surfaces as
// an internal error. Retrying a timed-out call is safe because a landed
// application trips the already-applied precondition.
func (s *Service) ApplyToJob(userID, jobID string) error {
	apply := func(tx Tx) error {
		j, err := tx.JobForUpdate(jobID)
		if err != nil {
			return err
		}
		if j == nil || j.Deleted {
			return apperr.NotFound("Job not found or has been deleted")
		}
		if j.Status != job.StatusOpen {
			return apperr.Conflict("Job applications are closed")
		}
		if _, err := ksuid.Parse(userID); err != nil {
			return apperr.BadRequest("Invalid user ID format")
		}
		applied, err := tx.HasApplied(userID, jobID)
		if err != nil {
			return err
		}
		if applied {
			return apperr.Conflict("You have already applied for this job")
		}
		seekerID, err := tx.SeekerIDForUser(userID)
		if err != nil {
			return err
		}
		if seekerID == "" {
			return apperr.NotFound("JobSeeker profile not found")
		}
		inserted, err := tx.InsertApplication(jobID, userID, seekerID)
		if err != nil {
			return err
		}
		if !inserted {
			// lost the race to a concurrent apply that committed first
			return apperr.Conflict("You have already applied for this job")
		}
		return tx.IncrementApplicants(jobID)
	}

	err := s.store.RunTx(apply)
	if errors.Is(err, ErrTxConflict) {
		err = s.store.RunTx(apply)
		if errors.Is(err, ErrTxConflict) {
			return apperr.Internal(err)
		}
	}
	return err
}

// AppliedJobs lists the jobs the user applied to, soft-deleted ones
// filtered out, company summary populated.
func (s *Service) AppliedJobs(userID string, sort job.Sort, page, perPage int) ([]*job.Job, int, error) {
	return s.catalog.JobsByQuery(job.Query{
		Sort:          sort,
		Page:          page,
		PerPage:       perPage,
		CallerID:      userID,
		OnlyAppliedBy: userID,
	})
}

// NotAppliedJobs lists the catalog minus the user's applied set; every
// returned job carries hasApplied false by construction.
func (s *Service) NotAppliedJobs(userID string, filters job.Filters, sort job.Sort, page, perPage int) ([]*job.Job, int, error) {
	return s.catalog.JobsByQuery(job.Query{
		Filters:          filters,
		Sort:             sort,
		Page:             page,
		PerPage:          perPage,
		ExcludeAppliedBy: userID,
	})
}

// JobApplicants returns the jobseeker summaries recorded against a job.
// Only the job's creator or an admin may see them.
func (s *Service) JobApplicants(jobID string, caller *middleware.UserJWT, page, perPage int) ([]jobseeker.Summary, int, error) {
	j, err := s.catalog.JobByID(jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			return nil, 0, apperr.NotFound("Job not found or has been deleted")
		}
		return nil, 0, err
	}
	if !s.auth.Can(caller, authoriser.ActionJobViewApplicants, authoriser.Resource{OwnerID: j.CreatedBy}) {
		return nil, 0, apperr.Forbidden("You are not allowed to view applicants for this job")
	}
	return s.store.ApplicantsForJob(jobID, page, perPage)
}
