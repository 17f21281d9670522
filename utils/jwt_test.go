package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func TestGenerateAndVerifyToken(t *testing.T) {
	token, err := GenerateToken("user-123", "admin", testSecret)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	id, role, err := VerifyToken(token, testSecret)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if id != "user-123" {
		t.Errorf("id = %q, want user-123", id)
	}
	if role != "admin" {
		t.Errorf("role = %q, want admin", role)
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("user-123", "user", testSecret)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, _, err := VerifyToken(token, "other-secret"); err == nil {
		t.Fatal("token signed with a different secret should not verify")
	}
}

func TestVerifyTokenGarbage(t *testing.T) {
	if _, _, err := VerifyToken("not.a.token", testSecret); err == nil {
		t.Fatal("garbage input should not verify")
	}
}

func TestVerifyTokenExpired(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  "user-123",
		"exp": time.Now().Add(-time.Minute).Unix(),
	})
	signed, err := expired.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, _, err := VerifyToken(signed, testSecret); err == nil {
		t.Fatal("expired token should not verify")
	}
}

func TestResetTokenRoundTrip(t *testing.T) {
	token, err := GenerateResetToken("user-123", testSecret)
	if err != nil {
		t.Fatalf("GenerateResetToken: %v", err)
	}
	id, err := VerifyResetToken(token, testSecret)
	if err != nil {
		t.Fatalf("VerifyResetToken: %v", err)
	}
	if id != "user-123" {
		t.Errorf("id = %q, want user-123", id)
	}
}

func TestResetTokenIsNotASessionToken(t *testing.T) {
	token, err := GenerateResetToken("user-123", testSecret)
	if err != nil {
		t.Fatalf("GenerateResetToken: %v", err)
	}
	if _, _, err := VerifyToken(token, testSecret); err == nil {
		t.Fatal("reset token must not authenticate as a session token")
	}
}

func TestSessionTokenIsNotAResetToken(t *testing.T) {
	token, err := GenerateToken("user-123", "user", testSecret)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := VerifyResetToken(token, testSecret); err == nil {
		t.Fatal("session token must not pass as a reset token")
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "hunter22" {
		t.Fatal("hash must not equal the plain password")
	}
	if !CheckPasswordHash("hunter22", hash) {
		t.Error("correct password should match")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("wrong password should not match")
	}
}
