package toastui

import "log/slog"

const (
	DefaultCookieName = "toast_session"
	DefaultTarget     = "#toasts"
	DefaultBasePath   = "/toasts"
)

// Option configures a Handler.
type Option func(*config)

type config struct {
	cookieName   string
	cookieSecure bool
	target       string
	basePath     string
	logger       *slog.Logger
}

func defaultConfig() *config {
	return &config{
		cookieName: DefaultCookieName,
		target:     DefaultTarget,
		basePath:   DefaultBasePath,
		logger:     slog.Default(),
	}
}

// WithCookieName sets the session cookie name. Empty names are ignored.
func WithCookieName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.cookieName = name
		}
	}
}

// WithSecureCookie marks the session cookie Secure.
func WithSecureCookie(secure bool) Option {
	return func(c *config) { c.cookieSecure = secure }
}

// WithTarget sets the CSS selector patched by the SSE stream.
func WithTarget(selector string) Option {
	return func(c *config) {
		if selector != "" {
			c.target = selector
		}
	}
}

// WithBasePath sets the path the routes are mounted at. Rendered dismiss
// buttons point there.
func WithBasePath(path string) Option {
	return func(c *config) {
		if path != "" {
			c.basePath = path
		}
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
