package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/workhive/job-portal/internal/application"
	"github.com/workhive/job-portal/internal/authoriser"
	"github.com/workhive/job-portal/internal/config"
	"github.com/workhive/job-portal/internal/job"
	"github.com/workhive/job-portal/internal/jobseeker"
	"github.com/workhive/job-portal/internal/middleware"
	"github.com/workhive/job-portal/internal/server"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/segmentio/ksuid"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func testServer(t *testing.T) (server.Server, *mux.Router) {
	t.Helper()
	router := mux.NewRouter()
	svr := server.NewServer(
		config.Config{JwtSigningKey: testKey, JobsPerPage: 10, ApplicantsPerPage: 20, Env: "dev"},
		nil,
		router,
		sessions.NewCookieStore(testKey),
	)
	return svr, router
}

func bearerFor(t *testing.T, claims middleware.UserJWT) string {
	t.Helper()
	claims.StandardClaims = jwt.StandardClaims{ExpiresAt: time.Now().Add(time.Hour).Unix()}
	tk, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testKey)
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + tk
}

// memStore is an in-memory application.Store for handler tests; every
// precondition holds so the workflow's happy path drives the response.
type memStore struct {
	jobs    map[string]*application.JobState
	seekers map[string]string
	applied map[string]map[string]bool
}

type memTx struct{ s *memStore }

func (s *memStore) RunTx(fn func(application.Tx) error) error {
	return fn(&memTx{s})
}

func (s *memStore) ApplicantsForJob(jobID string, page, perPage int) ([]jobseeker.Summary, int, error) {
	return []jobseeker.Summary{{ID: "seeker-1", Name: "Ada Lovelace", Email: "ada@example.com"}}, 1, nil
}

func (t *memTx) JobForUpdate(jobID string) (*application.JobState, error) {
	j, ok := t.s.jobs[jobID]
	if !ok {
		return nil, nil
	}
	return j, nil
}

func (t *memTx) HasApplied(userID, jobID string) (bool, error) {
	return t.s.applied[jobID][userID], nil
}

func (t *memTx) SeekerIDForUser(userID string) (string, error) {
	return t.s.seekers[userID], nil
}

func (t *memTx) InsertApplication(jobID, userID, seekerID string) (bool, error) {
	if t.s.applied == nil {
		t.s.applied = map[string]map[string]bool{}
	}
	if t.s.applied[jobID] == nil {
		t.s.applied[jobID] = map[string]bool{}
	}
	if t.s.applied[jobID][userID] {
		return false, nil
	}
	t.s.applied[jobID][userID] = true
	return true, nil
}

func (t *memTx) IncrementApplicants(jobID string) error { return nil }

type memCatalog struct {
	jobs    map[string]*job.Job
	results []*job.Job
}

func (c *memCatalog) JobByID(jobID string) (*job.Job, error) {
	j, ok := c.jobs[jobID]
	if !ok {
		return nil, job.ErrNotFound
	}
	return j, nil
}

func (c *memCatalog) JobsByQuery(q job.Query) ([]*job.Job, int, error) {
	return c.results, len(c.results), nil
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	return body
}

func TestApplyToJobHandler(t *testing.T) {
	svr, router := testServer(t)
	userID := ksuid.New().String()
	store := &memStore{
		jobs:    map[string]*application.JobState{"job-1": {ID: "job-1", Status: job.StatusOpen}},
		seekers: map[string]string{userID: "seeker-1"},
	}
	svc := application.NewService(store, &memCatalog{}, authoriser.NewAuthoriser())
	router.HandleFunc("/job/apply/{id}", ApplyToJobHandler(svr, svc)).Methods("POST")

	r := httptest.NewRequest(http.MethodPost, "/job/apply/job-1", nil)
	r.Header.Set("Authorization", bearerFor(t, middleware.UserJWT{UserID: userID, IsJobSeeker: true}))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["success"] != true || body["message"] != "Job application submitted successfully" {
		t.Errorf("unexpected envelope: %v", body)
	}

	// the second identical request must hit the duplicate guard
	r = httptest.NewRequest(http.MethodPost, "/job/apply/job-1", nil)
	r.Header.Set("Authorization", bearerFor(t, middleware.UserJWT{UserID: userID, IsJobSeeker: true}))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate apply: status = %d, want 409", w.Code)
	}
	body = decodeBody(t, w)
	if body["message"] != "You have already applied for this job" {
		t.Errorf("unexpected envelope: %v", body)
	}
}

func TestApplyToJobHandlerAnonymous(t *testing.T) {
	svr, router := testServer(t)
	svc := application.NewService(&memStore{}, &memCatalog{}, authoriser.NewAuthoriser())
	router.HandleFunc("/job/apply/{id}", ApplyToJobHandler(svr, svc)).Methods("POST")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/job/apply/job-1", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestApplyToJobHandlerJobNotFound(t *testing.T) {
	svr, router := testServer(t)
	userID := ksuid.New().String()
	store := &memStore{jobs: map[string]*application.JobState{}, seekers: map[string]string{userID: "seeker-1"}}
	svc := application.NewService(store, &memCatalog{}, authoriser.NewAuthoriser())
	router.HandleFunc("/job/apply/{id}", ApplyToJobHandler(svr, svc)).Methods("POST")

	r := httptest.NewRequest(http.MethodPost, "/job/apply/missing", nil)
	r.Header.Set("Authorization", bearerFor(t, middleware.UserJWT{UserID: userID, IsJobSeeker: true}))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if body := decodeBody(t, w); body["message"] != "Job not found or has been deleted" {
		t.Errorf("unexpected envelope: %v", body)
	}
}

func TestAppliedJobsHandler(t *testing.T) {
	svr, router := testServer(t)
	userID := ksuid.New().String()
	catalog := &memCatalog{results: []*job.Job{{ID: "job-1", Title: "Backend Engineer"}}}
	svc := application.NewService(&memStore{}, catalog, authoriser.NewAuthoriser())
	router.HandleFunc("/job/applied/user", AppliedJobsHandler(svr, svc)).Methods("GET")

	r := httptest.NewRequest(http.MethodGet, "/job/applied/user", nil)
	r.Header.Set("Authorization", bearerFor(t, middleware.UserJWT{UserID: userID, IsJobSeeker: true}))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	jobs, ok := body["jobs"].([]interface{})
	if !ok || len(jobs) != 1 {
		t.Errorf("jobs = %v", body["jobs"])
	}
	if _, ok := body["pagination"]; !ok {
		t.Error("missing pagination block")
	}
}

func TestJobApplicantsHandlerForbidden(t *testing.T) {
	svr, router := testServer(t)
	catalog := &memCatalog{jobs: map[string]*job.Job{
		"job-1": {ID: "job-1", CreatedBy: ksuid.New().String()},
	}}
	svc := application.NewService(&memStore{}, catalog, authoriser.NewAuthoriser())
	router.HandleFunc("/job/{id}/applicants", JobApplicantsHandler(svr, svc)).Methods("GET")

	r := httptest.NewRequest(http.MethodGet, "/job/job-1/applicants", nil)
	r.Header.Set("Authorization", bearerFor(t, middleware.UserJWT{UserID: ksuid.New().String(), IsRecruiter: true}))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
	if body := decodeBody(t, w); body["message"] != "You are not allowed to view applicants for this job" {
		t.Errorf("unexpected envelope: %v", body)
	}
}

func TestJobApplicantsHandlerCreator(t *testing.T) {
	svr, router := testServer(t)
	creatorID := ksuid.New().String()
	catalog := &memCatalog{jobs: map[string]*job.Job{
		"job-1": {ID: "job-1", CreatedBy: creatorID},
	}}
	svc := application.NewService(&memStore{}, catalog, authoriser.NewAuthoriser())
	router.HandleFunc("/job/{id}/applicants", JobApplicantsHandler(svr, svc)).Methods("GET")

	r := httptest.NewRequest(http.MethodGet, "/job/job-1/applicants", nil)
	r.Header.Set("Authorization", bearerFor(t, middleware.UserJWT{UserID: creatorID, IsRecruiter: true}))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	applicants, ok := body["applicants"].([]interface{})
	if !ok || len(applicants) != 1 {
		t.Errorf("applicants = %v", body["applicants"])
	}
}
