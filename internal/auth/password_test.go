package auth

import (
	"strings"
	"testing"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := hashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("hashPassword() error = %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Errorf("hash = %q, want argon2id encoding", hash)
	}

	if !verifyPassword(hash, "correct horse battery staple") {
		t.Error("verifyPassword() should accept the original password")
	}
	if verifyPassword(hash, "wrong password") {
		t.Error("verifyPassword() should reject a wrong password")
	}
}

func TestPasswordHashing_UniqueSalts(t *testing.T) {
	first, err := hashPassword("same password")
	if err != nil {
		t.Fatalf("hashPassword() error = %v", err)
	}
	second, err := hashPassword("same password")
	if err != nil {
		t.Fatalf("hashPassword() error = %v", err)
	}

	if first == second {
		t.Error("two hashes of the same password should differ")
	}
}

func TestVerifyPassword_MalformedHash(t *testing.T) {
	if verifyPassword("not-a-hash", "anything") {
		t.Error("verifyPassword() should reject a malformed hash")
	}
	if verifyPassword("", "anything") {
		t.Error("verifyPassword() should reject an empty hash")
	}
}
