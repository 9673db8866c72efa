package handler

import (
	"database/sql"
	"net/http"

	"github.com/workhive/job-portal/internal/apperr"
	"github.com/workhive/job-portal/internal/middleware"
	"github.com/workhive/job-portal/internal/server"
	"github.com/workhive/job-portal/internal/user"

	"github.com/gorilla/mux"
)

// userGetter is the slice of the user repository the profile path reads.
type userGetter interface {
	GetUser(userID string) (user.User, error)
}

// GetMeHandler returns the caller's own user record.
func GetMeHandler(svr server.Server, users userGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		caller, err := middleware.GetCallerFromRequest(r, svr.SessionStore, svr.GetJWTSigningKey())
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		u, err := users.GetUser(caller.UserID)
		if err == sql.ErrNoRows {
			svr.Fail(w, apperr.NotFound("User not found"), "GetMe")
			return
		}
		if err != nil {
			svr.Fail(w, err, "GetMe")
			return
		}
		svr.Success(w, http.StatusOK, "User retrieved successfully", map[string]interface{}{
			"user": u,
		})
	}
}

func DeleteUserHandler(svr server.Server, userRepo *user.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := mux.Vars(r)["id"]
		if err := userRepo.DeleteUser(userID); err != nil {
			if err == sql.ErrNoRows {
				svr.Fail(w, apperr.NotFound("User not found"), "DeleteUser")
				return
			}
			svr.Fail(w, err, "DeleteUser")
			return
		}
		svr.Success(w, http.StatusOK, "User deleted successfully", nil)
	}
}

func HealthHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svr.Conn.Ping(); err != nil {
			svr.Fail(w, apperr.Internal(err), "Health")
			return
		}
		svr.Success(w, http.StatusOK, "OK", nil)
	}
}
