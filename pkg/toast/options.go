package toast

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Config holds toast settings loaded from the environment.
type Config struct {
	// DefaultDuration applies when Notify gets no duration.
	DefaultDuration time.Duration `env:"TOAST_DEFAULT_DURATION" envDefault:"5s"`
	// GraceDelay is the exit-animation window between dismissal and removal.
	GraceDelay time.Duration `env:"TOAST_GRACE_DELAY" envDefault:"300ms"`
	// BufferSize is the per-subscriber snapshot buffer.
	BufferSize int `env:"TOAST_BUFFER_SIZE" envDefault:"16"`
	// MaxSessions bounds the Registry.
	MaxSessions int `env:"TOAST_MAX_SESSIONS" envDefault:"10000"`
}

// Option configures a Manager.
type Option func(*options)

type options struct {
	defaultDuration time.Duration
	graceDelay      time.Duration
	bufferSize      int
	newID           func() string
	logger          *slog.Logger
}

func defaultOptions() *options {
	return &options{
		defaultDuration: DefaultDuration,
		graceDelay:      DefaultGraceDelay,
		bufferSize:      16,
		newID:           uuid.NewString,
		logger:          slog.Default(),
	}
}

func buildOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithDefaultDuration sets the auto-dismiss delay used when Notify gets no
// duration. A negative value makes toasts persistent by default; zero is ignored.
func WithDefaultDuration(d time.Duration) Option {
	return func(o *options) {
		if d != 0 {
			o.defaultDuration = d
		}
	}
}

// WithGraceDelay sets the delay between dismissal and removal.
// Panics on negative values.
func WithGraceDelay(d time.Duration) Option {
	if d < 0 {
		panic("WithGraceDelay: duration must be >= 0")
	}
	return func(o *options) { o.graceDelay = d }
}

// WithBufferSize sets how many snapshots a subscriber may lag behind before it is dropped.
func WithBufferSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.bufferSize = n
		}
	}
}

// WithIDGenerator replaces the uuid-based id generator. Nil is ignored.
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Options converts the config into manager options. Zero values keep defaults.
func (c Config) Options() []Option {
	opts := make([]Option, 0, 3)
	if c.DefaultDuration != 0 {
		opts = append(opts, WithDefaultDuration(c.DefaultDuration))
	}
	if c.GraceDelay > 0 {
		opts = append(opts, WithGraceDelay(c.GraceDelay))
	}
	if c.BufferSize > 0 {
		opts = append(opts, WithBufferSize(c.BufferSize))
	}
	return opts
}

// NewFromConfig creates a Manager from cfg. Extra options are applied last.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	return New(append(cfg.Options(), opts...)...)
}

// NewRegistryFromConfig creates a Registry bounded by cfg.MaxSessions.
func NewRegistryFromConfig(cfg Config, opts ...Option) *Registry {
	capacity := cfg.MaxSessions
	if capacity <= 0 {
		capacity = 10000
	}
	return NewRegistry(capacity, append(cfg.Options(), opts...)...)
}
