package service

import (
	"testing"
)

func TestJWTRoundTrip(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateJWT(42, false)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	userID, isAdmin, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if userID != 42 {
		t.Errorf("userID = %d; want 42", userID)
	}
	if isAdmin {
		t.Error("isAdmin = true; want false")
	}
}

func TestJWTAdminClaim(t *testing.T) {
	InitJWT("test-secret")

	token, err := GenerateJWT(7, true)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	_, isAdmin, err := ParseJWT(token)
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if !isAdmin {
		t.Error("isAdmin = false; want true")
	}
}

func TestJWTInvalid(t *testing.T) {
	InitJWT("test-secret")

	if _, _, err := ParseJWT("not-a-token"); err == nil {
		t.Fatal("expected error for garbage token")
	}

	// token signed with a different secret
	InitJWT("other-secret")
	token, _ := GenerateJWT(1, false)
	InitJWT("test-secret")

	if _, _, err := ParseJWT(token); err == nil {
		t.Fatal("expected error for token signed with wrong secret")
	}
}
