package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"github.com/workhive/job-portal/internal/apperr"
	"github.com/workhive/job-portal/internal/jobseeker"
	"github.com/workhive/job-portal/internal/middleware"
	"github.com/workhive/job-portal/internal/server"
)

func SaveJobSeekerProfileHandler(svr server.Server, seekerRepo *jobseeker.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := middleware.GetCallerFromRequest(r, svr.SessionStore, svr.GetJWTSigningKey())
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if !caller.IsJobSeeker && !caller.IsAdmin {
			svr.Fail(w, apperr.Forbidden("Only job seekers can create a profile"), "SaveJobSeekerProfile")
			return
		}
		var rq jobseeker.ProfileRq
		if err := json.NewDecoder(r.Body).Decode(&rq); err != nil {
			svr.Fail(w, apperr.BadRequest("Invalid request payload"), "SaveJobSeekerProfile")
			return
		}
		js, err := seekerRepo.UpsertProfile(caller.UserID, rq)
		if err != nil {
			svr.Fail(w, err, "SaveJobSeekerProfile")
			return
		}
		svr.Success(w, http.StatusOK, "Profile saved successfully", map[string]interface{}{
			"profile": js,
		})
	}
}

func GetJobSeekerProfileHandler(svr server.Server, seekerRepo *jobseeker.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := middleware.GetCallerFromRequest(r, svr.SessionStore, svr.GetJWTSigningKey())
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		js, err := seekerRepo.JobSeekerByUserID(caller.UserID)
		if err == sql.ErrNoRows {
			svr.Fail(w, apperr.NotFound("JobSeeker profile not found"), "GetJobSeekerProfile")
			return
		}
		if err != nil {
			svr.Fail(w, err, "GetJobSeekerProfile")
			return
		}
		svr.Success(w, http.StatusOK, "Profile retrieved successfully", map[string]interface{}{
			"profile": js,
		})
	}
}
