package parfold

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/exascience/parfold/internal"
)

// EnvThreads is the environment variable that overrides the default thread
// count. It is ignored unless it holds a positive integer.
const EnvThreads = "PARFOLD_THREADS"

// A ThreadPolicy decides how many workers a reduction uses. It is called
// once, when the reduction starts.
type ThreadPolicy func() int

// DefaultThreads is the default ThreadPolicy. It returns the value of
// PARFOLD_THREADS if that is a positive integer, and twice
// runtime.GOMAXPROCS(0) otherwise.
func DefaultThreads() int {
	if val := os.Getenv(EnvThreads); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return internal.DefaultThreads()
}

// Config holds the settings of a single reduction.
type Config struct {
	// Threads decides the number of workers.
	Threads ThreadPolicy
	// Logger receives debug events about the fan-out and the merge.
	Logger zerolog.Logger
}

// An Option modifies a Config.
type Option func(*Config)

// WithThreads fixes the number of workers to n.
func WithThreads(n int) Option {
	return func(c *Config) {
		c.Threads = func() int { return n }
	}
}

// WithThreadPolicy replaces the policy that decides the number of workers.
func WithThreadPolicy(policy ThreadPolicy) Option {
	return func(c *Config) {
		c.Threads = policy
	}
}

// WithLogger sets the logger. The default logger discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// NewConfig returns the default Config with opts applied in order.
func NewConfig(opts ...Option) Config {
	c := Config{
		Threads: DefaultThreads,
		Logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// ThreadCount calls the thread policy and validates its result. A nil policy
// means DefaultThreads.
func (c Config) ThreadCount() (int, error) {
	policy := c.Threads
	if policy == nil {
		policy = DefaultThreads
	}
	n := policy()
	if n < 1 {
		return 0, ConfigError{Field: "threads", Message: fmt.Sprintf("policy returned %d, must be at least 1", n)}
	}
	return n, nil
}
