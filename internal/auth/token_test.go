package auth

import (
	"testing"
	"time"
)

var testSecret = []byte("test-secret")

func TestSignVerifyRoundTrip(t *testing.T) {
	claims := map[string]any{
		"email": "a@x.com",
		"name":  "A",
	}

	token, err := Sign(claims, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	got, err := Verify(token, testSecret)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if got["email"] != "a@x.com" || got["name"] != "A" {
		t.Fatalf("claims not preserved, got %v", got)
	}
	if Email(got) != "a@x.com" {
		t.Fatalf("Email helper returned %q", Email(got))
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	token, err := Sign(map[string]any{"email": "a@x.com"}, testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	if _, err := Verify(token, testSecret); err == nil {
		t.Fatal("expected expired token to fail verification")
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	token, err := Sign(map[string]any{"email": "a@x.com"}, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}

	if _, err := Verify(token, []byte("other-secret")); err == nil {
		t.Fatal("expected wrong-secret token to fail verification")
	}
}

func TestVerifyMalformedToken(t *testing.T) {
	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := Verify(token, testSecret); err == nil {
			t.Fatalf("expected malformed token %q to fail verification", token)
		}
	}
}

func TestSignRejectsMissingEmail(t *testing.T) {
	if _, err := Sign(map[string]any{}, testSecret, time.Hour); err == nil {
		t.Fatal("expected empty claims to be rejected")
	}
	if _, err := Sign(map[string]any{"name": "A"}, testSecret, time.Hour); err == nil {
		t.Fatal("expected claims without email to be rejected")
	}
}
