package config_test

import (
	"strings"
	"testing"
	"time"

	"ledger/config"
)

func TestLoad_RequiresSecretAndDSN(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("MYSQL_DSN", "")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error when JWT_SECRET is missing")
	}

	t.Setenv("JWT_SECRET", "secret")
	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error when MYSQL_DSN is missing")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("MYSQL_DSN", "user:pass@tcp(localhost:3306)/ledger?parseTime=true")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("JWT_ACCESS_TOKEN_TTL", "")
	t.Setenv("REFRESH_TOKEN_TTL", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}
	if cfg.AccessTokenTTL != 15*time.Minute {
		t.Fatalf("expected 15m access token TTL, got %s", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != time.Hour {
		t.Fatalf("expected 1h refresh token TTL, got %s", cfg.RefreshTokenTTL)
	}
	if cfg.TokenLeeway != 10*time.Second {
		t.Fatalf("expected 10s verification leeway, got %s", cfg.TokenLeeway)
	}
	if cfg.PasswordPolicy.MinLength != 8 {
		t.Fatalf("expected default min length 8, got %d", cfg.PasswordPolicy.MinLength)
	}
}

func TestPasswordPolicy_Validate(t *testing.T) {
	policy := config.PasswordPolicy{
		MinLength:        8,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireNumber:    true,
		RequireSpecial:   true,
	}

	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{"valid", "Abcdef1!", ""},
		{"too short", "Ab1!", "at least 8 characters"},
		{"missing uppercase", "abcdef1!", "uppercase letter"},
		{"missing lowercase", "ABCDEF1!", "lowercase letter"},
		{"missing number", "Abcdefg!", "number"},
		{"missing special", "Abcdefg1", "special character"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policy.Validate(tt.password)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid password, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
