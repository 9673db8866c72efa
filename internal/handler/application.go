package handler

import (
	"net/http"

	"github.com/workhive/job-portal/internal/application"
	"github.com/workhive/job-portal/internal/middleware"
	"github.com/workhive/job-portal/internal/server"

	"github.com/gorilla/mux"
)

func ApplyToJobHandler(svr server.Server, appSvc *application.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := middleware.GetCallerFromRequest(r, svr.SessionStore, svr.GetJWTSigningKey())
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		jobID := mux.Vars(r)["id"]
		if err := appSvc.ApplyToJob(caller.UserID, jobID); err != nil {
			svr.Fail(w, err, "ApplyToJob")
			return
		}
		svr.Success(w, http.StatusOK, "Job application submitted successfully", nil)
	}
}

func AppliedJobsHandler(svr server.Server, appSvc *application.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := middleware.GetCallerFromRequest(r, svr.SessionStore, svr.GetJWTSigningKey())
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		page := pageFromRequest(r)
		perPage := svr.GetConfig().JobsPerPage
		jobs, total, err := appSvc.AppliedJobs(caller.UserID, sortFromRequest(r), page, perPage)
		if err != nil {
			svr.Fail(w, err, "AppliedJobs")
			return
		}
		svr.SuccessWithPagination(w, http.StatusOK, "Applied jobs retrieved successfully", map[string]interface{}{
			"jobs": jobs,
		}, server.NewPagination(page, perPage, total))
	}
}

func NotAppliedJobsHandler(svr server.Server, appSvc *application.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := middleware.GetCallerFromRequest(r, svr.SessionStore, svr.GetJWTSigningKey())
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		page := pageFromRequest(r)
		perPage := svr.GetConfig().JobsPerPage
		jobs, total, err := appSvc.NotAppliedJobs(caller.UserID, filtersFromRequest(r), sortFromRequest(r), page, perPage)
		if err != nil {
			svr.Fail(w, err, "NotAppliedJobs")
			return
		}
		svr.SuccessWithPagination(w, http.StatusOK, "Jobs retrieved successfully", map[string]interface{}{
			"jobs": jobs,
		}, server.NewPagination(page, perPage, total))
	}
}

func JobApplicantsHandler(svr server.Server, appSvc *application.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := middleware.GetCallerFromRequest(r, svr.SessionStore, svr.GetJWTSigningKey())
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		jobID := mux.Vars(r)["id"]
		page := pageFromRequest(r)
		perPage := svr.GetConfig().ApplicantsPerPage
		applicants, total, err := appSvc.JobApplicants(jobID, caller, page, perPage)
		if err != nil {
			svr.Fail(w, err, "JobApplicants")
			return
		}
		svr.SuccessWithPagination(w, http.StatusOK, "Applicants retrieved successfully", map[string]interface{}{
			"applicants": applicants,
		}, server.NewPagination(page, perPage, total))
	}
}
