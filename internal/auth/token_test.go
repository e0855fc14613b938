package auth_test

import (
	"context"
	"testing"
	"time"

	"projecthub/internal/auth"
)

func TestIssueAndParseToken(t *testing.T) {
	issuer := auth.NewJWTIssuer("test-secret", time.Hour, nil)

	token, err := issuer.IssueToken(context.Background(), "u1", "laptop")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := issuer.ParseToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != "u1" {
		t.Errorf("UserID = %q, want u1", claims.UserID)
	}
	if claims.Device != "laptop" {
		t.Errorf("Device = %q, want laptop", claims.Device)
	}
	if claims.TokenID == "" {
		t.Error("TokenID should be set")
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	issuer := auth.NewJWTIssuer("secret-a", time.Hour, nil)
	other := auth.NewJWTIssuer("secret-b", time.Hour, nil)

	token, err := issuer.IssueToken(context.Background(), "u1", "laptop")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := other.ParseToken(token); err == nil {
		t.Error("token signed with a different secret should not parse")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	issuer := auth.NewJWTIssuer("secret", time.Hour, nil)
	if _, err := issuer.ParseToken("not.a.token"); err == nil {
		t.Error("garbage token should not parse")
	}
}
