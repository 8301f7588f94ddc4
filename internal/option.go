package internal

import "github.com/starford/mise/internal/library"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config  *Config
	onEvent library.EventCallback
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithEventCallback sets a callback invoked after each watcher-driven
// library change.
func WithEventCallback(cb library.EventCallback) Option {
	return func(a *application) {
		a.onEvent = cb
	}
}
