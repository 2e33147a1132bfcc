package jwt

import (
	"testing"

	"github.com/google/uuid"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := []byte("round-trip-secret")
	userID := uuid.New()

	token, err := GenerateToken(secret, userID, "ada@example.com", true)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	claims, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("failed to validate token: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %s, want %s", claims.UserID, userID)
	}
	if claims.Email != "ada@example.com" {
		t.Errorf("Email = %s, want ada@example.com", claims.Email)
	}
	if !claims.IsAdmin {
		t.Error("IsAdmin = false, want true")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken([]byte("right"), uuid.New(), "ada@example.com", false)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	if _, err := ValidateToken([]byte("wrong"), token); err == nil {
		t.Error("expected validation to fail with the wrong secret")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken([]byte("secret"), "not-a-token"); err == nil {
		t.Error("expected validation to fail for garbage input")
	}
}
