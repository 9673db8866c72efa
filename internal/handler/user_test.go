package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/workhive/job-portal/internal/middleware"
	"github.com/workhive/job-portal/internal/user"

	"github.com/segmentio/ksuid"
)

type memUsers struct {
	users map[string]user.User
}

func (m *memUsers) GetUser(userID string) (user.User, error) {
	u, ok := m.users[userID]
	if !ok {
		return user.User{}, sql.ErrNoRows
	}
	return u, nil
}

func TestGetMeHandler(t *testing.T) {
	svr, router := testServer(t)
	userID := ksuid.New().String()
	repo := &memUsers{users: map[string]user.User{
		userID: {ID: userID, Email: "someone@example.com", Role: user.RoleJobSeeker},
	}}
	router.HandleFunc("/user/me", GetMeHandler(svr, repo)).Methods("GET")

	r := httptest.NewRequest(http.MethodGet, "/user/me", nil)
	r.Header.Set("Authorization", bearerFor(t, middleware.UserJWT{UserID: userID, IsJobSeeker: true}))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	me, ok := body["user"].(map[string]interface{})
	if !ok || me["email"] != "someone@example.com" {
		t.Errorf("unexpected envelope: %v", body)
	}
	if _, leaked := me["password_hash"]; leaked {
		t.Error("password hash must never reach a payload")
	}
}

func TestGetMeHandlerUnknownUser(t *testing.T) {
	svr, router := testServer(t)
	router.HandleFunc("/user/me", GetMeHandler(svr, &memUsers{users: map[string]user.User{}})).Methods("GET")

	r := httptest.NewRequest(http.MethodGet, "/user/me", nil)
	r.Header.Set("Authorization", bearerFor(t, middleware.UserJWT{UserID: ksuid.New().String()}))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestGetMeHandlerAnonymous(t *testing.T) {
	svr, router := testServer(t)
	router.HandleFunc("/user/me", GetMeHandler(svr, &memUsers{})).Methods("GET")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/user/me", nil))
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}
