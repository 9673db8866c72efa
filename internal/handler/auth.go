package handler

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/workhive/job-portal/internal/apperr"
	"github.com/workhive/job-portal/internal/middleware"
	"github.com/workhive/job-portal/internal/server"
	"github.com/workhive/job-portal/internal/user"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

func SignupHandler(svr server.Server, userRepo *user.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rq user.SignupRq
		if err := json.NewDecoder(r.Body).Decode(&rq); err != nil {
			svr.Fail(w, apperr.BadRequest("Invalid request payload"), "Signup")
			return
		}
		if err := validateSignup(&rq); err != nil {
			svr.Fail(w, err, "Signup")
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(rq.Password), bcrypt.DefaultCost)
		if err != nil {
			svr.Fail(w, apperr.Internal(err), "Signup")
			return
		}
		u := &user.User{
			Email:        rq.Email,
			FirstName:    rq.FirstName,
			LastName:     rq.LastName,
			PasswordHash: string(hash),
			Role:         rq.Role,
			IsAdmin:      rq.Email == svr.GetConfig().AdminEmail,
		}
		if err := userRepo.SaveUser(u); err != nil {
			if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
				svr.Fail(w, apperr.Conflict("Email already registered"), "Signup")
				return
			}
			svr.Fail(w, apperr.Internal(err), "Signup")
			return
		}
		svr.Success(w, http.StatusCreated, "User registered successfully", map[string]interface{}{
			"user": u,
		})
	}
}

func SigninHandler(svr server.Server, userRepo *user.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rq user.SigninRq
		if err := json.NewDecoder(r.Body).Decode(&rq); err != nil {
			svr.Fail(w, apperr.BadRequest("Invalid request payload"), "Signin")
			return
		}
		u, err := userRepo.GetUserByEmail(strings.ToLower(strings.TrimSpace(rq.Email)))
		if err == sql.ErrNoRows {
			svr.Fail(w, apperr.BadRequest("Invalid email or password"), "Signin")
			return
		}
		if err != nil {
			svr.Fail(w, apperr.Internal(err), "Signin")
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(rq.Password)) != nil {
			svr.Fail(w, apperr.BadRequest("Invalid email or password"), "Signin")
			return
		}
		token, err := issueToken(svr, u)
		if err != nil {
			svr.Fail(w, apperr.Internal(err), "Signin")
			return
		}
		sess, _ := svr.SessionStore.Get(r, middleware.SessionName)
		sess.Values["jwt"] = token
		if err := sess.Save(r, w); err != nil {
			svr.Log(err, "unable to save session cookie")
		}
		svr.Success(w, http.StatusOK, "Signed in successfully", map[string]interface{}{
			"token": token,
			"user":  u,
		})
	}
}

func issueToken(svr server.Server, u user.User) (string, error) {
	claims := middleware.UserJWT{
		IsAdmin:     u.IsAdmin,
		IsRecruiter: u.Role == user.RoleRecruiter,
		IsJobSeeker: u.Role == user.RoleJobSeeker,
		UserID:      u.ID,
		Email:       u.Email,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(30 * 24 * time.Hour).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(svr.GetJWTSigningKey())
}

func validateSignup(rq *user.SignupRq) error {
	appErr := apperr.Validation("Invalid signup payload")
	rq.Email = strings.ToLower(strings.TrimSpace(rq.Email))
	if rq.Email == "" || !strings.Contains(rq.Email, "@") {
		appErr.WithField("email", "a valid email is required")
	}
	if len(rq.Password) < 8 {
		appErr.WithField("password", "password must be at least 8 characters")
	}
	if rq.Role != user.RoleJobSeeker && rq.Role != user.RoleRecruiter {
		appErr.WithField("role", "role must be jobseeker or recruiter")
	}
	if len(appErr.Fields) > 0 {
		return appErr
	}
	return nil
}
