package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/workhive/job-portal/internal/apperr"
	"github.com/workhive/job-portal/internal/config"
	"github.com/workhive/job-portal/internal/middleware"

	"github.com/allegro/bigcache/v3"
	"github.com/getsentry/raven-go"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
)

const (
	CacheKeyTotalJobs       = "totalJobs"
	CacheKeyNewJobsLastWeek = "newJobsLastWeek"
)

type Server struct {
	cfg          config.Config
	Conn         *sql.DB
	router       *mux.Router
	SessionStore *sessions.CookieStore
	bigCache     *bigcache.BigCache
}

func NewServer(
	cfg config.Config,
	conn *sql.DB,
	r *mux.Router,
	sessionStore *sessions.CookieStore,
) Server {
	raven.SetDSN(cfg.SentryDSN)

	bigCache, err := bigcache.NewBigCache(bigcache.DefaultConfig(12 * time.Hour))
	svr := Server{
		cfg:          cfg,
		Conn:         conn,
		router:       r,
		SessionStore: sessionStore,
		bigCache:     bigCache,
	}
	if err != nil {
		svr.Log(err, "unable to initialise big cache")
	}

	return svr
}

func (s Server) RegisterRoute(path string, handler func(w http.ResponseWriter, r *http.Request), methods []string) {
	s.router.HandleFunc(path, handler).Methods(methods...)
}

func (s Server) GetConfig() config.Config {
	return s.cfg
}

func (s Server) GetJWTSigningKey() []byte {
	return s.cfg.JwtSigningKey
}

// Pagination is the uniform pagination block carried in list responses.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
	TotalPages  int `json:"totalPages"`
	TotalJobs   int `json:"totalJobs"`
}

func NewPagination(page, pageSize, total int) *Pagination {
	totalPages := total / pageSize
	if total%pageSize != 0 || totalPages == 0 {
		totalPages++
	}
	return &Pagination{
		CurrentPage: page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
		TotalJobs:   total,
	}
}

func (s Server) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// Success writes the uniform response envelope with the payload fields
// spliced at the top level.
func (s Server) Success(w http.ResponseWriter, status int, message string, payload map[string]interface{}) {
	s.SuccessWithPagination(w, status, message, payload, nil)
}

func (s Server) SuccessWithPagination(w http.ResponseWriter, status int, message string, payload map[string]interface{}, pagination *Pagination) {
	envelope := map[string]interface{}{
		"success": true,
		"status":  status,
		"message": message,
	}
	for k, v := range payload {
		envelope[k] = v
	}
	if pagination != nil {
		envelope["pagination"] = pagination
	}
	s.JSON(w, status, envelope)
}

// Fail converts err to the error taxonomy and writes the envelope with
// its fixed status code and stable message. Unexpected errors are logged
// and surface as a generic internal error, never as raw detail.
func (s Server) Fail(w http.ResponseWriter, err error, msg string) {
	appErr := apperr.As(err)
	if appErr.Code == apperr.CodeInternal {
		s.Log(err, msg)
	}
	envelope := map[string]interface{}{
		"success": false,
		"status":  appErr.Status,
		"message": appErr.Message,
	}
	if len(appErr.Fields) > 0 {
		envelope["errors"] = appErr.Fields
	}
	s.JSON(w, appErr.Status, envelope)
}

func (s Server) Log(err error, msg string) {
	raven.CaptureErrorAndWait(err, map[string]string{"ctx": msg})
	log.Printf("%s: %+v", msg, err)
}

func (s Server) CacheGet(key string) ([]byte, bool) {
	out, err := s.bigCache.Get(key)
	if err != nil {
		return []byte{}, false
	}
	return out, true
}

func (s Server) CacheSet(key string, val []byte) error {
	return s.bigCache.Set(key, val)
}

func (s Server) CacheDelete(key string) error {
	return s.bigCache.Delete(key)
}

func (s Server) Run() error {
	addr := fmt.Sprintf(":%s", s.cfg.Port)
	if s.cfg.Env == "dev" {
		log.Printf("local env http://localhost:%s", s.cfg.Port)
		addr = fmt.Sprintf("localhost:%s", s.cfg.Port)
	}
	return http.ListenAndServe(
		addr,
		middleware.HTTPSMiddleware(
			middleware.LoggingMiddleware(middleware.HeadersMiddleware(s.router, s.cfg.Env)),
			s.cfg.Env,
		),
	)
}
