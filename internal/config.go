package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/folio/internal/scroll"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app" toml:"app"`
	Content ContentConfig     `yaml:"content" toml:"content"`
	Index   IndexConfig       `yaml:"index" toml:"index"`
	Assets  AssetsConfig      `yaml:"assets" toml:"assets"`
	Auth    AuthConfig        `yaml:"auth" toml:"auth"`
	Scroll  scroll.Options    `yaml:"scroll" toml:"scroll"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Content.Validate(); err != nil {
		return err
	}
	if err := c.Index.Validate(); err != nil {
		return err
	}
	if err := c.Auth.Validate(); err != nil {
		return err
	}
	return validateScroll(&c.Scroll)
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level" toml:"log_level"`
	HTTP     HTTPConfig `yaml:"http" toml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port" toml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// ContentConfig locates the portfolio document.
//
// A missing file is not an error: the built-in portfolio is served until the
// file appears. Watch reloads the page whenever the file changes.
type ContentConfig struct {
	Path  string `yaml:"path" toml:"path"`
	Watch bool   `yaml:"watch" toml:"watch"`
}

// Validate validates the content configuration.
func (c *ContentConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// IndexConfig holds the SQLite catalog configuration.
type IndexConfig struct {
	Path string `yaml:"path" toml:"path"`
}

// Validate validates the index configuration.
func (c *IndexConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AssetsConfig holds static file serving configuration. An empty Dir
// disables /images and /static.
type AssetsConfig struct {
	Dir  string `yaml:"dir" toml:"dir"`
	WASM bool   `yaml:"wasm" toml:"wasm"`
}

// AuthConfig holds authentication configuration for POST /api/reload.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode" toml:"mode"`
	Token string `yaml:"token" toml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// validateScroll rejects zero and negative values. Defaults are filled in
// by NewDefaultConfig, so a zero here was written explicitly and would
// otherwise be replaced by the default without notice.
func validateScroll(o *scroll.Options) error {
	positive := validation.Required.Error("must be positive; omit the key to use the default")
	if err := validation.ValidateStruct(o,
		validation.Field(&o.HeaderThreshold, positive, validation.Min(0.0)),
		validation.Field(&o.BackToTopThreshold, positive, validation.Min(0.0)),
		validation.Field(&o.ProbeLine, positive, validation.Min(0.0)),
		validation.Field(&o.HeaderOffset, positive, validation.Min(0.0)),
	); err != nil {
		return fmt.Errorf("scroll: %w", err)
	}
	return nil
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Content: ContentConfig{
			Path:  "./content/portfolio.yaml",
			Watch: true,
		},
		Index: IndexConfig{
			Path: "./folio.db",
		},
		Assets: AssetsConfig{
			Dir: "./public",
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
		Scroll: scroll.DefaultOptions(),
	}
}
