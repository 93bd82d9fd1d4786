package goCred

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/MrEthical07/goCred/jwt"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestConfigValidateFields(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantValid bool
	}{
		{"cost at minimum", func(c *Config) { c.Password.Cost = 4 }, true},
		{"cost below minimum", func(c *Config) { c.Password.Cost = 3 }, false},
		{"cost above maximum", func(c *Config) { c.Password.Cost = 32 }, false},
		{"algorithm lowercase", func(c *Config) { c.Token.Algorithm = "hs512" }, true},
		{"algorithm asymmetric", func(c *Config) { c.Token.Algorithm = "RS256" }, false},
		{"algorithm none", func(c *Config) { c.Token.Algorithm = "none" }, false},
		{"negative expiry", func(c *Config) { c.Token.ExpiresIn = -time.Second }, false},
		{"negative leeway", func(c *Config) { c.Token.Leeway = -time.Second }, false},
		{"negative future iat", func(c *Config) { c.Token.MaxFutureIAT = -time.Second }, false},
		{"require expiry without lifetime", func(c *Config) {
			c.Token.RequireExpiry = true
			c.Token.ExpiresIn = 0
		}, false},
		{"negative workers", func(c *Config) { c.Worker.Size = -1 }, false},
		{"audit without buffer", func(c *Config) {
			c.Audit.Enabled = true
			c.Audit.BufferSize = 0
		}, false},
		{"histograms without metrics", func(c *Config) {
			c.Metrics.Enabled = false
			c.Metrics.EnableLatencyHistograms = true
		}, false},
		{"log level debug", func(c *Config) { c.Log.Level = "debug" }, true},
		{"log level bogus", func(c *Config) { c.Log.Level = "loud" }, false},
		{"log format json", func(c *Config) { c.Log.Format = "JSON" }, true},
		{"log format xml", func(c *Config) { c.Log.Format = "xml" }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantValid && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tc.wantValid && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestConfigValidateReportsAllProblems(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Password.Cost = 1
	cfg.Token.Algorithm = "RS256"
	cfg.Worker.Size = -4

	err := cfg.Validate()
	merr, ok := err.(*multierror.Error)
	if !ok {
		t.Fatalf("expected *multierror.Error, got %T", err)
	}
	if len(merr.Errors) != 3 {
		t.Fatalf("expected 3 problems, got %d: %v", len(merr.Errors), merr)
	}
}

func TestConfigDerivedOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Token.Algorithm = "HS384"
	cfg.Token.Issuer = "api"
	cfg.Token.Audience = "mobile"
	cfg.Token.Leeway = 5 * time.Second
	cfg.Token.UnwrapPayload = true

	so := cfg.signOptions()
	if so.Algorithm != jwt.HS384 || so.Issuer != "api" || len(so.Audience) != 1 || so.Audience[0] != "mobile" {
		t.Fatalf("unexpected sign options: %+v", so)
	}
	if so.ExpiresIn != time.Hour {
		t.Fatalf("expected default lifetime, got %v", so.ExpiresIn)
	}

	vo := cfg.verifyOptions()
	if len(vo.Algorithms) != 1 || vo.Algorithms[0] != jwt.HS384 {
		t.Fatalf("expected allow-list of the signing algorithm, got %v", vo.Algorithms)
	}
	if vo.Issuer != "api" || vo.Audience != "mobile" || vo.Leeway != 5*time.Second || !vo.UnwrapPayload {
		t.Fatalf("unexpected verify options: %+v", vo)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gocred.yaml")
	body := strings.Join([]string{
		"password:",
		"  cost: 12",
		"  upgrade_on_compare: true",
		"token:",
		"  algorithm: HS512",
		"  expires_in: 30m",
		"audit:",
		"  enabled: true",
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("GOCRED_TOKEN__ISSUER", "env-issuer")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Password.Cost != 12 || !cfg.Password.UpgradeOnCompare {
		t.Fatalf("password section not loaded: %+v", cfg.Password)
	}
	if cfg.Token.Algorithm != "HS512" || cfg.Token.ExpiresIn != 30*time.Minute {
		t.Fatalf("token section not loaded: %+v", cfg.Token)
	}
	if cfg.Token.Issuer != "env-issuer" {
		t.Fatalf("env override not applied, issuer=%q", cfg.Token.Issuer)
	}
	if !cfg.Audit.Enabled || cfg.Audit.BufferSize != 1024 {
		t.Fatalf("defaults must survive partial file, got %+v", cfg.Audit)
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("password:\n  cost: 50\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected validation error for cost 50")
	}
}

func TestLoadConfigWithoutFile(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Password.Cost != DefaultConfig().Password.Cost {
		t.Fatalf("expected default cost, got %d", cfg.Password.Cost)
	}
}
