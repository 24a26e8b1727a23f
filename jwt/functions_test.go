package jwt

import (
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestCreateValidateRoundtrip(t *testing.T) {
	claims := Claims{
		Issuer:         "selection-api",
		Subject:        "42",
		Audience:       "selection",
		ExpirationTime: fmt.Sprintf("%d", time.Now().Add(time.Hour).Unix()),
	}

	token, err := Create(claims, "topsecret")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, got, err := Validate(token, "topsecret")
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if got.Subject != "42" {
		t.Fatalf("expected subject 42, got %s", got.Subject)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, err := Create(Claims{Subject: "42"}, "topsecret")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, _, err := Validate(token, "other"); err == nil {
		t.Fatalf("expected signature mismatch")
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	claims := Claims{
		Subject:        "42",
		ExpirationTime: fmt.Sprintf("%d", time.Now().Add(-time.Minute).Unix()),
	}
	token, err := Create(claims, "topsecret")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, _, err := Validate(token, "topsecret"); err == nil {
		t.Fatalf("expected expiry error")
	}
}

func TestValidateRejectsMalformed(t *testing.T) {
	if _, _, err := Validate("only.two", "topsecret"); err == nil {
		t.Fatalf("expected format error")
	}
	token, _ := Create(Claims{Subject: "42"}, "topsecret")
	tampered := strings.Replace(token, ".", ".x", 1)
	if _, _, err := Validate(tampered, "topsecret"); err == nil {
		t.Fatalf("expected error for tampered token")
	}
}
