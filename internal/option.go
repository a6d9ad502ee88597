package internal

import (
	"github.com/starford/folio/internal/contact"
)

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config *Config
	sink   contact.Sink
	force  bool
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithSink sets where contact form submissions go. The default discards them.
func WithSink(sink contact.Sink) Option {
	return func(a *application) {
		a.sink = sink
	}
}

// WithForce lets Init overwrite an existing content file.
func WithForce(force bool) Option {
	return func(a *application) {
		a.force = force
	}
}

func newApplication(opts []Option) (*application, error) {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, errConfigRequired
	}
	return app, nil
}
