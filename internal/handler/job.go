package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/workhive/job-portal/internal/apperr"
	"github.com/workhive/job-portal/internal/authoriser"
	"github.com/workhive/job-portal/internal/company"
	"github.com/workhive/job-portal/internal/job"
	"github.com/workhive/job-portal/internal/middleware"
	"github.com/workhive/job-portal/internal/server"

	"github.com/gorilla/mux"
)

// jobGetter is the slice of the job repository the write guard reads.
type jobGetter interface {
	JobByID(jobID string) (*job.Job, error)
}

// jobTransitioner covers the open/closed state machine.
type jobTransitioner interface {
	jobGetter
	CloseJob(jobID string) error
	ReopenJob(jobID string) error
}

// ListJobsHandler serves the public catalog. Caller identity is optional;
// when present each job carries the hasApplied annotation.
func ListJobsHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID := ""
		if caller, err := middleware.GetCallerFromRequest(r, svr.SessionStore, svr.GetJWTSigningKey()); err == nil {
			callerID = caller.UserID
		}
		page := pageFromRequest(r)
		perPage := svr.GetConfig().JobsPerPage
		jobs, total, err := jobRepo.JobsByQuery(job.Query{
			Filters:  filtersFromRequest(r),
			Sort:     sortFromRequest(r),
			Page:     page,
			PerPage:  perPage,
			CallerID: callerID,
		})
		if err != nil {
			svr.Fail(w, err, "unable to get jobs by query")
			return
		}
		svr.SuccessWithPagination(w, http.StatusOK, "Jobs retrieved successfully", map[string]interface{}{
			"jobs": jobs,
		}, server.NewPagination(page, perPage, total))
	}
}

func GetJobHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := middleware.GetCallerFromRequest(r, svr.SessionStore, svr.GetJWTSigningKey()); err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		jobID := mux.Vars(r)["id"]
		j, err := jobRepo.JobByID(jobID)
		if err != nil {
			if errors.Is(err, job.ErrNotFound) {
				svr.Fail(w, apperr.NotFound("Job not found or has been deleted"), "JobByID")
				return
			}
			svr.Fail(w, err, "JobByID")
			return
		}
		svr.Success(w, http.StatusOK, "Job retrieved successfully", map[string]interface{}{
			"job": j,
		})
	}
}

func GetJobBySlugHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		j, err := jobRepo.JobBySlug(mux.Vars(r)["slug"])
		if err != nil {
			if errors.Is(err, job.ErrNotFound) {
				svr.Fail(w, apperr.NotFound("Job not found or has been deleted"), "JobBySlug")
				return
			}
			svr.Fail(w, err, "JobBySlug")
			return
		}
		svr.Success(w, http.StatusOK, "Job retrieved successfully", map[string]interface{}{
			"job": j,
		})
	}
}

func CreateJobHandler(svr server.Server, jobRepo *job.Repository, companyRepo *company.Repository, auth authoriser.Authoriser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := middleware.GetCallerFromRequest(r, svr.SessionStore, svr.GetJWTSigningKey())
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if !auth.Can(caller, authoriser.ActionJobCreate, authoriser.Resource{}) {
			svr.Fail(w, apperr.Forbidden("Only recruiters can post jobs"), "CreateJob")
			return
		}
		var rq job.JobRq
		if err := json.NewDecoder(r.Body).Decode(&rq); err != nil {
			svr.Fail(w, apperr.BadRequest("Invalid request payload"), "unable to decode job payload")
			return
		}
		if err := rq.Validate(); err != nil {
			svr.Fail(w, err, "invalid job payload")
			return
		}
		if _, err := companyRepo.CompanyByID(rq.CompanyID); err != nil {
			if err == sql.ErrNoRows {
				svr.Fail(w, apperr.NotFound("Company not found"), "CompanyByID")
				return
			}
			svr.Fail(w, err, "CompanyByID")
			return
		}
		j, err := jobRepo.SaveJob(&rq, caller.UserID)
		if err != nil {
			svr.Fail(w, err, "unable to save job")
			return
		}
		invalidateJobAggregates(svr)
		svr.Success(w, http.StatusCreated, "Job created successfully", map[string]interface{}{
			"job": j,
		})
	}
}

func UpdateJobHandler(svr server.Server, jobRepo *job.Repository, auth authoriser.Authoriser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, j, ok := jobForWrite(svr, jobRepo, auth, authoriser.ActionJobUpdate, w, r)
		if !ok {
			return
		}
		var rq job.JobRqUpdate
		if err := json.NewDecoder(r.Body).Decode(&rq); err != nil {
			svr.Fail(w, apperr.BadRequest("Invalid request payload"), "unable to decode job payload")
			return
		}
		updated, err := jobRepo.UpdateJob(j.ID, &rq)
		if err != nil {
			if errors.Is(err, job.ErrNotFound) {
				svr.Fail(w, apperr.NotFound("Job not found or has been deleted"), "UpdateJob")
				return
			}
			svr.Fail(w, err, "unable to update job")
			return
		}
		svr.Success(w, http.StatusOK, "Job updated successfully", map[string]interface{}{
			"job": updated,
		})
	}
}

func DeleteJobHandler(svr server.Server, jobRepo *job.Repository, auth authoriser.Authoriser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, j, ok := jobForWrite(svr, jobRepo, auth, authoriser.ActionJobDelete, w, r)
		if !ok {
			return
		}
		if err := jobRepo.SoftDeleteJob(j.ID); err != nil {
			if errors.Is(err, job.ErrNotFound) {
				svr.Fail(w, apperr.NotFound("Job not found or has been deleted"), "SoftDeleteJob")
				return
			}
			svr.Fail(w, err, "unable to delete job")
			return
		}
		invalidateJobAggregates(svr)
		svr.Success(w, http.StatusOK, "Job deleted successfully", nil)
	}
}

func CloseJobHandler(svr server.Server, jobRepo jobTransitioner, auth authoriser.Authoriser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, j, ok := jobForWrite(svr, jobRepo, auth, authoriser.ActionJobClose, w, r)
		if !ok {
			return
		}
		if err := jobRepo.CloseJob(j.ID); err != nil {
			svr.Fail(w, transitionError(err, "Job is already closed"), "CloseJob")
			return
		}
		svr.Success(w, http.StatusOK, "Job closed successfully", nil)
	}
}

func ReopenJobHandler(svr server.Server, jobRepo jobTransitioner, auth authoriser.Authoriser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, j, ok := jobForWrite(svr, jobRepo, auth, authoriser.ActionJobReopen, w, r)
		if !ok {
			return
		}
		if err := jobRepo.ReopenJob(j.ID); err != nil {
			svr.Fail(w, transitionError(err, "Job is already open"), "ReopenJob")
			return
		}
		svr.Success(w, http.StatusOK, "Job reopened successfully", nil)
	}
}

func ListJobsByCompanyHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		companyID := mux.Vars(r)["id"]
		page := pageFromRequest(r)
		perPage := svr.GetConfig().JobsPerPage
		jobs, total, err := jobRepo.JobsByQuery(job.Query{
			Filters: job.Filters{CompanyID: companyID},
			Sort:    sortFromRequest(r),
			Page:    page,
			PerPage: perPage,
		})
		if err != nil {
			svr.Fail(w, err, "unable to get jobs by company")
			return
		}
		svr.SuccessWithPagination(w, http.StatusOK, "Jobs retrieved successfully", map[string]interface{}{
			"jobs": jobs,
		}, server.NewPagination(page, perPage, total))
	}
}

func ListJobsByCreatorHandler(svr server.Server, jobRepo *job.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := middleware.GetCallerFromRequest(r, svr.SessionStore, svr.GetJWTSigningKey())
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		page := pageFromRequest(r)
		perPage := svr.GetConfig().JobsPerPage
		jobs, total, err := jobRepo.JobsByQuery(job.Query{
			Filters: job.Filters{CreatedBy: caller.UserID},
			Sort:    sortFromRequest(r),
			Page:    page,
			PerPage: perPage,
		})
		if err != nil {
			svr.Fail(w, err, "unable to get jobs by creator")
			return
		}
		svr.SuccessWithPagination(w, http.StatusOK, "Jobs retrieved successfully", map[string]interface{}{
			"jobs": jobs,
		}, server.NewPagination(page, perPage, total))
	}
}

// jobForWrite loads the target job and enforces the write capability for
// the action, short-circuiting the response on any failure.
func jobForWrite(svr server.Server, jobRepo jobGetter, auth authoriser.Authoriser, action authoriser.Action, w http.ResponseWriter, r *http.Request) (*middleware.UserJWT, *job.Job, bool) {
	caller, err := middleware.GetCallerFromRequest(r, svr.SessionStore, svr.GetJWTSigningKey())
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		return nil, nil, false
	}
	jobID := mux.Vars(r)["id"]
	j, err := jobRepo.JobByID(jobID)
	if err != nil {
		if errors.Is(err, job.ErrNotFound) {
			svr.Fail(w, apperr.NotFound("Job not found or has been deleted"), "JobByID")
			return nil, nil, false
		}
		svr.Fail(w, err, "JobByID")
		return nil, nil, false
	}
	if !auth.Can(caller, action, authoriser.Resource{OwnerID: j.CreatedBy}) {
		svr.Fail(w, apperr.Forbidden("You are not allowed to manage this job"), string(action))
		return nil, nil, false
	}
	return caller, j, true
}

// invalidateJobAggregates drops the cached counts after a catalog change
// so the stats payload never serves a stale total.
func invalidateJobAggregates(svr server.Server) {
	svr.CacheDelete(server.CacheKeyTotalJobs)
	svr.CacheDelete(server.CacheKeyNewJobsLastWeek)
}

func transitionError(err error, invalidStateMsg string) error {
	if errors.Is(err, job.ErrInvalidState) {
		return apperr.Conflict(invalidStateMsg)
	}
	if errors.Is(err, job.ErrNotFound) {
		return apperr.NotFound("Job not found or has been deleted")
	}
	return err
}
