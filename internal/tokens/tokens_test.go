package tokens

import (
	"testing"
	"time"

	"github.com/fundvault/fundvault/backend/go-services/internal/config"
	"github.com/fundvault/fundvault/backend/go-services/internal/models"
)

func TestGenerateAndParseAccessToken(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "token-test-secret-32-bytes-xxxxxx"

	a := &models.Admin{ID: "admin-1", Name: "operator"}
	tok, err := GenerateAccessToken(cfg, a, time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if tok == "" {
		t.Fatal("expected token")
	}

	id, name, err := ParseAccessToken(cfg, tok)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if id != "admin-1" || name != "operator" {
		t.Fatalf("unexpected claims: %s %s", id, name)
	}
}

func TestParseAccessToken_Expired(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "token-test-secret-32-bytes-xxxxxx"

	a := &models.Admin{ID: "admin-1", Name: "operator"}
	tok, err := GenerateAccessToken(cfg, a, -time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if _, _, err := ParseAccessToken(cfg, tok); err == nil {
		t.Fatal("expected expired token to fail")
	}
}

func TestParseAccessToken_WrongSecret(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT.Secret = "token-test-secret-32-bytes-xxxxxx"
	a := &models.Admin{ID: "admin-1", Name: "operator"}
	tok, err := GenerateAccessToken(cfg, a, time.Minute)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	other := &config.Config{}
	other.JWT.Secret = "another-secret-entirely-xxxxxxxxx"
	if _, _, err := ParseAccessToken(other, tok); err == nil {
		t.Fatal("expected signature mismatch to fail")
	}
}
