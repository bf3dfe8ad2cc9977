package dataflow

import (
	"time"
)

// Option configures a pipeline stage.
type Option func(*config)

type config struct {
	workers    int
	maxRetries int
	backoff    func(int) time.Duration
	bufferSize int
	// errorHandler returns true when the error is handled and the item
	// should be skipped.
	errorHandler func(error) bool
}

func defaultConfig() *config {
	return &config{
		workers:    1,
		maxRetries: 0,
		bufferSize: 0,
	}
}

func newConfig(opts []Option) *config {
	cfg := defaultConfig()
	for _, o := range opts {
		o(cfg)
	}
	return cfg
}

// WithWorkers sets the number of concurrent workers for a stage.
// Default is 1 (sequential).
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithBufferSize sets the buffer size for the output channel of a stage.
func WithBufferSize(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.bufferSize = n
		}
	}
}

// WithRetry retries a failing item up to maxRetries more times. backoff may be nil.
func WithRetry(maxRetries int, backoff func(attempt int) time.Duration) Option {
	return func(c *config) {
		c.maxRetries = maxRetries
		c.backoff = backoff
	}
}

// WithErrorHandler sets a handler for items that still fail after retries.
// Returning true skips the item; false lets the stage report the error.
func WithErrorHandler(h func(error) bool) Option {
	return func(c *config) {
		c.errorHandler = h
	}
}

// ExponentialBackoff doubles base on every attempt.
func ExponentialBackoff(base time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		return base << (attempt - 1)
	}
}
