package server

import (
	"net/http"
	"time"
)

// Config configures a live Server.
type Config struct {
	// Address is the listen address, e.g. ":8080".
	Address string

	// LivePath is the WebSocket endpoint. Default: "/live".
	LivePath string

	// ClientPath is where the browser client script is served.
	// Default: "/weave.js".
	ClientPath string

	// MetricsPath serves Prometheus metrics when EnableMetrics is set.
	// Default: "/metrics".
	MetricsPath   string
	EnableMetrics bool

	// History is the number of passes kept to catch up late clients.
	// Default: 64.
	History int

	// SendQueue is the number of frames buffered per connection before it
	// is dropped as too slow. Default: 256.
	SendQueue int

	// MaxMessageSize is the maximum size of an incoming WebSocket message.
	// Default: 64KB.
	MaxMessageSize int64

	// WriteTimeout bounds each WebSocket write. Default: 10 seconds.
	WriteTimeout time.Duration

	// PingInterval is the time between heartbeat pings. Default: 30 seconds.
	PingInterval time.Duration

	// ShutdownTimeout bounds graceful shutdown. Default: 10 seconds.
	ShutdownTimeout time.Duration

	// CheckOrigin validates the Origin header of WebSocket upgrades.
	// Nil accepts same-origin requests only.
	CheckOrigin func(r *http.Request) bool
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Address:         ":8080",
		LivePath:        "/live",
		ClientPath:      "/weave.js",
		MetricsPath:     "/metrics",
		History:         64,
		SendQueue:       256,
		MaxMessageSize:  64 * 1024,
		WriteTimeout:    10 * time.Second,
		PingInterval:    30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c *Config) withDefaults() *Config {
	d := DefaultConfig()
	if c == nil {
		return d
	}
	out := *c
	if out.Address == "" {
		out.Address = d.Address
	}
	if out.LivePath == "" {
		out.LivePath = d.LivePath
	}
	if out.ClientPath == "" {
		out.ClientPath = d.ClientPath
	}
	if out.MetricsPath == "" {
		out.MetricsPath = d.MetricsPath
	}
	if out.History <= 0 {
		out.History = d.History
	}
	if out.SendQueue <= 0 {
		out.SendQueue = d.SendQueue
	}
	if out.MaxMessageSize <= 0 {
		out.MaxMessageSize = d.MaxMessageSize
	}
	if out.WriteTimeout <= 0 {
		out.WriteTimeout = d.WriteTimeout
	}
	if out.PingInterval <= 0 {
		out.PingInterval = d.PingInterval
	}
	if out.ShutdownTimeout <= 0 {
		out.ShutdownTimeout = d.ShutdownTimeout
	}
	return &out
}
