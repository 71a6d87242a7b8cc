package httpserver

import (
	"log/slog"
	"time"
)

// Option configures the server. Options that receive an unusable value
// panic: a server misconfigured at startup should not come up at all.
type Option func(*config)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	if addr == "" {
		panic("httpserver: WithAddr requires an address")
	}
	return func(c *config) { c.addr = addr }
}

// WithReadTimeout bounds reading the entire request, header and body.
func WithReadTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("httpserver: WithReadTimeout requires a positive duration")
	}
	return func(c *config) { c.readTimeout = d }
}

// WithWriteTimeout bounds writes of the response.
func WithWriteTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("httpserver: WithWriteTimeout requires a positive duration")
	}
	return func(c *config) { c.writeTimeout = d }
}

// WithIdleTimeout bounds how long a keep-alive connection may sit idle.
func WithIdleTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("httpserver: WithIdleTimeout requires a positive duration")
	}
	return func(c *config) { c.idleTimeout = d }
}

// WithShutdownTimeout bounds graceful shutdown. In-flight authorization
// checks and repository calls get this long to finish once a stop signal
// arrives.
func WithShutdownTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("httpserver: WithShutdownTimeout requires a positive duration")
	}
	return func(c *config) { c.shutdownTimeout = d }
}

// WithLogger supplies the logger handed to start and stop hooks. Nil keeps
// the discarding default.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithStartHook registers a callback that runs when the server begins
// listening.
func WithStartHook(h func(*slog.Logger)) Option {
	if h == nil {
		panic("httpserver: WithStartHook requires a hook")
	}
	return func(c *config) { c.startHooks = append(c.startHooks, h) }
}

// WithStopHook registers a callback that runs after the server shuts down.
func WithStopHook(h func(*slog.Logger)) Option {
	if h == nil {
		panic("httpserver: WithStopHook requires a hook")
	}
	return func(c *config) { c.stopHooks = append(c.stopHooks, h) }
}
