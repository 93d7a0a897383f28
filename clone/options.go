package clone

import (
	"time"

	"github.com/rs/zerolog"
)

// Config holds the cloner configuration.
type Config struct {
	// ProgressCallback is called after every packet exchange (optional)
	ProgressCallback ProgressCallback

	// Logger receives transfer diagnostics; defaults to a no-op logger
	Logger zerolog.Logger

	// HandshakeAttempts bounds the handshake retry loop
	HandshakeAttempts int

	// HandshakeDelay is the fixed pause between handshake attempts
	HandshakeDelay time.Duration
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Logger:            zerolog.Nop(),
		HandshakeAttempts: 15,
		HandshakeDelay:    50 * time.Millisecond,
	}
}

// Option is a functional option for configuring the Cloner.
type Option func(*Config)

// WithProgressCallback sets a callback to track transfer progress.
//
// Example:
//
//	c := clone.New(port, model,
//	    clone.WithProgressCallback(func(p clone.Progress) {
//	        bar.Set(p.Current)
//	    }),
//	)
func WithProgressCallback(callback ProgressCallback) Option {
	return func(c *Config) {
		c.ProgressCallback = callback
	}
}

// WithLogger sets the logger for clone diagnostics.
//
// Example:
//
//	c := clone.New(port, model, clone.WithLogger(log.Logger))
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithHandshakeAttempts sets the handshake retry bound. Default is 15.
func WithHandshakeAttempts(attempts int) Option {
	return func(c *Config) {
		if attempts > 0 {
			c.HandshakeAttempts = attempts
		}
	}
}

// WithHandshakeDelay sets the pause between handshake attempts.
// Default is 50ms.
func WithHandshakeDelay(delay time.Duration) Option {
	return func(c *Config) {
		if delay >= 0 {
			c.HandshakeDelay = delay
		}
	}
}
