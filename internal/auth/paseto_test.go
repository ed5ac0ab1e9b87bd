package auth

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestPasetoService(t *testing.T) *PasetoService {
	t.Helper()

	svc, err := NewPasetoService(bytes.Repeat([]byte("k"), 32))
	if err != nil {
		t.Fatalf("NewPasetoService() error = %v", err)
	}
	return svc
}

func TestPasetoService_KeyLength(t *testing.T) {
	if _, err := NewPasetoService([]byte("too-short")); err == nil {
		t.Error("NewPasetoService() with short key, want error")
	}
}

func TestPasetoService_RoundTrip(t *testing.T) {
	svc := newTestPasetoService(t)
	userID := uuid.New()

	token, err := svc.CreateToken(userID, PurposeSession, time.Hour)
	if err != nil {
		t.Fatalf("CreateToken() error = %v", err)
	}

	claims, err := svc.VerifyToken(token, PurposeSession)
	if err != nil {
		t.Fatalf("VerifyToken() error = %v", err)
	}

	if claims.UserID != userID.String() {
		t.Errorf("UserID = %q, want %q", claims.UserID, userID.String())
	}
	if claims.Purpose != PurposeSession {
		t.Errorf("Purpose = %q, want %q", claims.Purpose, PurposeSession)
	}
	if !claims.ExpiresAt.After(time.Now()) {
		t.Errorf("ExpiresAt = %v, want in the future", claims.ExpiresAt)
	}
}

func TestPasetoService_PurposeMismatch(t *testing.T) {
	svc := newTestPasetoService(t)

	token, err := svc.CreateToken(uuid.New(), PurposeVerify, time.Hour)
	if err != nil {
		t.Fatalf("CreateToken() error = %v", err)
	}

	// A verification token must never be usable as a session or reset token
	for _, purpose := range []Purpose{PurposeSession, PurposeReset} {
		if _, err := svc.VerifyToken(token, purpose); err != ErrInvalidToken {
			t.Errorf("VerifyToken(%q) error = %v, want ErrInvalidToken", purpose, err)
		}
	}
}

func TestPasetoService_Expired(t *testing.T) {
	svc := newTestPasetoService(t)

	token, err := svc.CreateToken(uuid.New(), PurposeSession, -time.Minute)
	if err != nil {
		t.Fatalf("CreateToken() error = %v", err)
	}

	if _, err := svc.VerifyToken(token, PurposeSession); err != ErrExpiredToken {
		t.Errorf("VerifyToken() error = %v, want ErrExpiredToken", err)
	}
}

func TestPasetoService_WrongKey(t *testing.T) {
	svc := newTestPasetoService(t)

	other, err := NewPasetoService(bytes.Repeat([]byte("x"), 32))
	if err != nil {
		t.Fatalf("NewPasetoService() error = %v", err)
	}

	token, err := svc.CreateToken(uuid.New(), PurposeSession, time.Hour)
	if err != nil {
		t.Fatalf("CreateToken() error = %v", err)
	}

	if _, err := other.VerifyToken(token, PurposeSession); err != ErrInvalidToken {
		t.Errorf("VerifyToken() with wrong key error = %v, want ErrInvalidToken", err)
	}
}

func TestPasetoService_Garbage(t *testing.T) {
	svc := newTestPasetoService(t)

	if _, err := svc.VerifyToken("not-a-token", PurposeSession); err != ErrInvalidToken {
		t.Errorf("VerifyToken() error = %v, want ErrInvalidToken", err)
	}
}
