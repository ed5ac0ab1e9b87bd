package profile

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/account360/account360-api/internal/auth"
	"github.com/account360/account360-api/internal/logging"
	"github.com/account360/account360-api/internal/user"
)

type memStore struct {
	users map[uuid.UUID]*user.User
}

func (s *memStore) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (s *memStore) UpdateProfile(ctx context.Context, id uuid.UUID, name, contact, profilePic string) (*user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	u.Name = name
	u.Contact = contact
	u.ProfilePic = profilePic
	return u, nil
}

func (s *memStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.users[id]; !ok {
		return user.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func newTestHandler() (*Handler, *memStore, uuid.UUID) {
	id := uuid.New()
	store := &memStore{users: map[uuid.UUID]*user.User{
		id: {
			ID:         id,
			Name:       "Jane Doe",
			Email:      "jane@gmail.com",
			Contact:    "9876543210",
			IsVerified: true,
		},
	}}
	logger := &logging.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	return NewHandler(store, logger), store, id
}

func doRequest(h http.HandlerFunc, method string, userID uuid.UUID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/profile", bytes.NewBufferString(body))
	ctx := context.WithValue(req.Context(), auth.UserIDContextKey, userID)
	rec := httptest.NewRecorder()
	h(rec, req.WithContext(ctx))
	return rec
}

func TestGetProfile(t *testing.T) {
	h, _, id := newTestHandler()

	rec := doRequest(h.Get, http.MethodGet, id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var p user.Profile
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if p.Email != "jane@gmail.com" {
		t.Errorf("email = %q", p.Email)
	}

	// The projection must never leak the password hash
	if bytes.Contains(rec.Body.Bytes(), []byte("passwordHash")) {
		t.Error("response should not contain the password hash")
	}
}

func TestGetProfile_UnknownUser(t *testing.T) {
	h, _, _ := newTestHandler()

	rec := doRequest(h.Get, http.MethodGet, uuid.New(), "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestUpdateProfile(t *testing.T) {
	h, store, id := newTestHandler()

	rec := doRequest(h.Update, http.MethodPut, id, `{"name":"Jane Smith","contact":"1234567890","profilePic":"pic.jpg"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	u := store.users[id]
	if u.Name != "Jane Smith" || u.Contact != "1234567890" {
		t.Errorf("stored user = %+v, want updated fields", u)
	}
	// Email stays what it was
	if u.Email != "jane@gmail.com" {
		t.Errorf("email = %q, want unchanged", u.Email)
	}
}

func TestUpdateProfile_MissingFields(t *testing.T) {
	h, _, id := newTestHandler()

	rec := doRequest(h.Update, http.MethodPut, id, `{"name":"","contact":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestDeleteAccount(t *testing.T) {
	h, store, id := newTestHandler()

	rec := doRequest(h.Delete, http.MethodDelete, id, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if len(store.users) != 0 {
		t.Errorf("stored users = %d, want 0", len(store.users))
	}

	rec = doRequest(h.Delete, http.MethodDelete, id, "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
