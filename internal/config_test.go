package internal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	pkgconfig "github.com/starford/folio/pkg/config"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}

func TestDefaultConfigValid(t *testing.T) {
	if err := NewDefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestConfig_ContentPathRequired(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Content.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty content path should fail")
	}
}

func TestConfig_NegativeScrollThreshold(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Scroll.BackToTopThreshold = -1
	err := cfg.Validate()
	if err == nil {
		t.Fatal("negative threshold should fail")
	}
	if !strings.HasPrefix(err.Error(), "scroll:") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestConfig_LoadOverlaysDefaults(t *testing.T) {
	for name, body := range map[string]string{
		"config.yaml": "app:\n  http:\n    port: 9090\ncontent:\n  path: ./site.yaml\nscroll:\n  header_threshold: 20\n",
		"config.toml": "[app.http]\nport = 9090\n\n[content]\npath = \"./site.yaml\"\n\n[scroll]\nheader_threshold = 20\n",
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
				t.Fatal(err)
			}
			cfg := NewDefaultConfig()
			if err := pkgconfig.Load(path, cfg); err != nil {
				t.Fatalf("Load: %v", err)
			}
			if cfg.App.HTTP.Address() != ":9090" {
				t.Errorf("address = %q", cfg.App.HTTP.Address())
			}
			if cfg.Content.Path != "./site.yaml" {
				t.Errorf("content path = %q", cfg.Content.Path)
			}
			if !cfg.Content.Watch {
				t.Error("watch default lost")
			}
			if cfg.Scroll.HeaderThreshold != 20 {
				t.Errorf("header threshold = %v", cfg.Scroll.HeaderThreshold)
			}
			if cfg.Scroll.BackToTopThreshold != 700 {
				t.Errorf("back-to-top threshold = %v", cfg.Scroll.BackToTopThreshold)
			}
		})
	}
}

func TestConfig_ExplicitZeroScrollRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("scroll:\n  probe_line: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := NewDefaultConfig()
	err := pkgconfig.Load(path, cfg)
	if err == nil {
		t.Fatal("explicit zero probe line should fail")
	}
	if !strings.Contains(err.Error(), "omit the key") {
		t.Errorf("unexpected error: %v", err)
	}
}
