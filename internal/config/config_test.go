package config

import (
	"strings"
	"testing"
	"time"
)

// TestFromEnv_Defaults fills development secrets and documented defaults.
func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("CLUB_ENV", "development")
	t.Setenv("CLUB_SUPER_ADMIN_EMAIL", "  Root@Club.Test ")

	c, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if c.Addr != ":5000" || c.TokenTTL != 168*time.Hour || c.BcryptCost != 10 {
		t.Errorf("defaults = %+v", c)
	}
	if c.RateLimitPerSecond != 10 || c.SlowQueryMs != 50 || c.SlowRequestMs != 200 || c.OutboxInterval != time.Minute {
		t.Errorf("tuning defaults = %+v", c)
	}
	if c.SuperAdminEmail != "root@club.test" {
		t.Errorf("SuperAdminEmail = %q, want normalized", c.SuperAdminEmail)
	}
	if len(c.JWTSecret) != 64 {
		t.Errorf("generated JWTSecret length = %d, want 64 hex chars", len(c.JWTSecret))
	}
	if c.ReplyTo != "root@club.test" {
		t.Errorf("ReplyTo = %q", c.ReplyTo)
	}
	if c.IsProduction() {
		t.Error("development config reported as production")
	}
}

// TestFromEnv_ProductionRequiresSecrets refuses to start without explicit secrets.
func TestFromEnv_ProductionRequiresSecrets(t *testing.T) {
	key := strings.Repeat("ab", 32)
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"no jwt secret", map[string]string{"CLUB_CSRF_KEY": key, "CLUB_SUPER_ADMIN_PASSWORD": "pw"}, "JWT_SECRET"},
		{"no csrf key", map[string]string{"CLUB_JWT_SECRET": "s", "CLUB_SUPER_ADMIN_PASSWORD": "pw"}, "CSRF_KEY"},
		{"no admin password", map[string]string{"CLUB_JWT_SECRET": "s", "CLUB_CSRF_KEY": key}, "SUPER_ADMIN_PASSWORD"},
		{"short csrf key", map[string]string{"CLUB_JWT_SECRET": "s", "CLUB_CSRF_KEY": "abcd", "CLUB_SUPER_ADMIN_PASSWORD": "pw"}, "32 bytes"},
		{"complete", map[string]string{"CLUB_JWT_SECRET": "s", "CLUB_CSRF_KEY": key, "CLUB_SUPER_ADMIN_PASSWORD": "pw"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CLUB_ENV", "production")
			for _, k := range []string{"CLUB_JWT_SECRET", "CLUB_CSRF_KEY", "CLUB_SUPER_ADMIN_PASSWORD"} {
				t.Setenv(k, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			c, err := FromEnv()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("FromEnv: %v", err)
				}
				if c.JWTSecret != "s" {
					t.Errorf("JWTSecret = %q", c.JWTSecret)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("err = %v, want mention of %s", err, tt.wantErr)
			}
		})
	}
}

// TestFromEnv_InvalidValues rejects unparsable and non-positive settings.
func TestFromEnv_InvalidValues(t *testing.T) {
	tests := map[string]string{
		"CLUB_TOKEN_TTL":             "-1h",
		"CLUB_RATE_LIMIT_PER_SECOND": "0",
		"CLUB_BCRYPT_COST":           "ten",
	}
	for k, v := range tests {
		t.Run(k, func(t *testing.T) {
			t.Setenv("CLUB_ENV", "development")
			t.Setenv(k, v)
			if _, err := FromEnv(); err == nil {
				t.Errorf("%s=%s accepted", k, v)
			}
		})
	}
}

// TestConfig_CSRFKeyBytes decodes a configured key and generates one otherwise.
func TestConfig_CSRFKeyBytes(t *testing.T) {
	key, err := Config{CSRFKey: strings.Repeat("0f", 32)}.CSRFKeyBytes()
	if err != nil || len(key) != 32 || key[0] != 0x0f {
		t.Errorf("configured key = %x, %v", key, err)
	}
	a, _ := Config{}.CSRFKeyBytes()
	b, _ := Config{}.CSRFKeyBytes()
	if len(a) != 32 || string(a) == string(b) {
		t.Error("generated keys must be random 32-byte values")
	}
	if _, err := (Config{CSRFKey: "zz"}).CSRFKeyBytes(); err == nil {
		t.Error("non-hex key accepted")
	}
}

// TestConfig_SlogLevel maps names case-insensitively.
func TestConfig_SlogLevel(t *testing.T) {
	for in, want := range map[string]string{"debug": "DEBUG", "WARN": "WARN", "error": "ERROR", "": "INFO", "loud": "INFO"} {
		if got := (Config{LogLevel: in}).SlogLevel().String(); got != want {
			t.Errorf("SlogLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
