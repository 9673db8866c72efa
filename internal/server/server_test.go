package server

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/workhive/job-portal/internal/apperr"
	"github.com/workhive/job-portal/internal/config"

	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
)

func testServer() Server {
	key := []byte("0123456789abcdef0123456789abcdef")
	return NewServer(
		config.Config{JwtSigningKey: key, JobsPerPage: 10, ApplicantsPerPage: 20, Env: "dev"},
		nil,
		mux.NewRouter(),
		sessions.NewCookieStore(key),
	)
}

func TestNewPagination(t *testing.T) {
	cases := []struct {
		page, pageSize, total, wantPages int
	}{
		{1, 10, 0, 1},
		{1, 10, 5, 1},
		{1, 10, 10, 1},
		{2, 10, 11, 2},
		{3, 10, 35, 4},
	}
	for _, tc := range cases {
		p := NewPagination(tc.page, tc.pageSize, tc.total)
		if p.TotalPages != tc.wantPages {
			t.Errorf("total %d per %d: pages = %d, want %d", tc.total, tc.pageSize, p.TotalPages, tc.wantPages)
		}
		if p.CurrentPage != tc.page || p.TotalJobs != tc.total {
			t.Errorf("pagination not carried through: %+v", p)
		}
	}
}

func TestSuccessEnvelope(t *testing.T) {
	svr := testServer()
	w := httptest.NewRecorder()
	svr.SuccessWithPagination(w, 200, "Jobs retrieved successfully", map[string]interface{}{
		"jobs": []string{},
	}, NewPagination(1, 10, 0))

	if w.Code != 200 {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["success"] != true {
		t.Errorf("success = %v", body["success"])
	}
	if body["message"] != "Jobs retrieved successfully" {
		t.Errorf("message = %v", body["message"])
	}
	if _, ok := body["jobs"]; !ok {
		t.Error("payload must be spliced at the top level")
	}
	pagination, ok := body["pagination"].(map[string]interface{})
	if !ok {
		t.Fatal("missing pagination block")
	}
	if pagination["currentPage"] != float64(1) {
		t.Errorf("currentPage = %v", pagination["currentPage"])
	}
}

func TestFailEnvelope(t *testing.T) {
	svr := testServer()
	w := httptest.NewRecorder()
	svr.Fail(w, apperr.Conflict("You have already applied for this job"), "ApplyToJob")

	if w.Code != 409 {
		t.Fatalf("status = %d, want 409", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["success"] != false {
		t.Errorf("success = %v", body["success"])
	}
	if body["message"] != "You have already applied for this job" {
		t.Errorf("message = %v", body["message"])
	}
	if body["status"] != float64(409) {
		t.Errorf("status field = %v", body["status"])
	}
}

func TestFailHidesRawErrors(t *testing.T) {
	svr := testServer()
	w := httptest.NewRecorder()
	svr.Fail(w, errors.New("pq: connection refused"), "ListJobs")

	if w.Code != 500 {
		t.Fatalf("status = %d, want 500", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["message"] != "Oops! An internal error has occurred" {
		t.Errorf("raw error leaked into response: %v", body["message"])
	}
}

func TestFailValidationFields(t *testing.T) {
	svr := testServer()
	w := httptest.NewRecorder()
	svr.Fail(w, apperr.Validation("Invalid job payload").WithField("title", "title is required"), "CreateJob")

	if w.Code != 400 {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	fields, ok := body["errors"].(map[string]interface{})
	if !ok {
		t.Fatal("missing errors block")
	}
	if fields["title"] != "title is required" {
		t.Errorf("errors = %v", fields)
	}
}

func TestCacheRoundTrip(t *testing.T) {
	svr := testServer()
	if _, ok := svr.CacheGet(CacheKeyTotalJobs); ok {
		t.Fatal("cache must start empty")
	}
	if err := svr.CacheSet(CacheKeyTotalJobs, []byte("42")); err != nil {
		t.Fatal(err)
	}
	got, ok := svr.CacheGet(CacheKeyTotalJobs)
	if !ok || string(got) != "42" {
		t.Errorf("cache get = %q %v", got, ok)
	}
	if err := svr.CacheDelete(CacheKeyTotalJobs); err != nil {
		t.Fatal(err)
	}
	if _, ok := svr.CacheGet(CacheKeyTotalJobs); ok {
		t.Error("deleted key must be gone")
	}
}
