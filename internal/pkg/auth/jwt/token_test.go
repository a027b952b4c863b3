package jwt

import (
	"testing"
	"time"
)

const testSecret = "test-secret-key"

func TestGenerateAndParseTokenRoundTrip(t *testing.T) {
	payload := &Payload{
		ID:    "11111111-2222-3333-4444-555555555555",
		Email: "dev@example.com",
		Name:  "Dev",
	}

	tokenString, err := GenerateToken(payload, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if tokenString == "" {
		t.Fatal("GenerateToken returned an empty token")
	}

	parsed, err := ParseToken(tokenString, testSecret)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}

	if parsed.ID != payload.ID {
		t.Errorf("id mismatch: got %q, want %q", parsed.ID, payload.ID)
	}
	if parsed.Email != payload.Email {
		t.Errorf("email mismatch: got %q, want %q", parsed.Email, payload.Email)
	}
	if parsed.Name != payload.Name {
		t.Errorf("name mismatch: got %q, want %q", parsed.Name, payload.Name)
	}
	if parsed.Issuer != TokenIssuer {
		t.Errorf("issuer mismatch: got %q, want %q", parsed.Issuer, TokenIssuer)
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	payload := &Payload{ID: "u1", Email: "u1@example.com"}

	tokenString, err := GenerateToken(payload, testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ParseToken(tokenString, testSecret); err == nil {
		t.Fatal("expected error for expired token, got nil")
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	payload := &Payload{ID: "u1", Email: "u1@example.com"}

	tokenString, err := GenerateToken(payload, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := ParseToken(tokenString, "another-secret"); err == nil {
		t.Fatal("expected error for wrong secret, got nil")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseToken("not.a.token", testSecret); err == nil {
		t.Fatal("expected error for malformed token, got nil")
	}
}
