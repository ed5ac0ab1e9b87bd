package auth

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestRequireAuth(t *testing.T) {
	svc := newTestPasetoService(t)
	mw := NewMiddleware(svc)

	userID := uuid.New()
	sessionToken, err := svc.CreateToken(userID, PurposeSession, time.Hour)
	if err != nil {
		t.Fatalf("CreateToken() error = %v", err)
	}
	verifyToken, err := svc.CreateToken(userID, PurposeVerify, time.Hour)
	if err != nil {
		t.Fatalf("CreateToken() error = %v", err)
	}
	expiredToken, err := svc.CreateToken(userID, PurposeSession, -time.Minute)
	if err != nil {
		t.Fatalf("CreateToken() error = %v", err)
	}

	var gotUserID uuid.UUID
	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = GetUserIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"valid session token", "Bearer " + sessionToken, http.StatusOK},
		{"missing header", "", http.StatusUnauthorized},
		{"malformed header", "Token abc", http.StatusUnauthorized},
		{"expired token", "Bearer " + expiredToken, http.StatusUnauthorized},
		{"wrong purpose token", "Bearer " + verifyToken, http.StatusUnauthorized},
		{"garbage token", "Bearer garbage", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}

	if gotUserID != userID {
		t.Errorf("user ID in context = %v, want %v", gotUserID, userID)
	}
}

func TestRequireAuth_ErrorBody(t *testing.T) {
	svc := newTestPasetoService(t)
	mw := NewMiddleware(svc)

	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not run without auth")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("MISSING_AUTH")) {
		t.Errorf("body = %s, want MISSING_AUTH code", rec.Body.String())
	}
}
