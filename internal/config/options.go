package config

import (
	"crypto/tls"
	"log/slog"
	"net/http"
	"time"
)

const (
	// DefaultCommandTimeout is how long a command waits for its response
	// before failing with a timeout.
	DefaultCommandTimeout = 10 * time.Second

	// DefaultDialTimeout is the WebSocket handshake timeout.
	DefaultDialTimeout = 10 * time.Second

	// DefaultPingInterval is how often keepalive pings are sent on an
	// otherwise idle connection.
	DefaultPingInterval = 30 * time.Second
)

// Options configures the behavior of the VS Code MCP client.
type Options struct {
	// Logger receives debug, info, warn, and error messages during
	// client operation. If nil, logging is disabled.
	Logger *slog.Logger

	// CommandTimeout is the per-command response timeout.
	// Zero means DefaultCommandTimeout.
	CommandTimeout time.Duration

	// DialTimeout bounds the WebSocket handshake.
	// Zero means DefaultDialTimeout.
	DialTimeout time.Duration

	// PingInterval is the keepalive ping period.
	// Zero means DefaultPingInterval.
	PingInterval time.Duration

	// TLSConfig is used for wss:// connections. Nil uses the defaults.
	TLSConfig *tls.Config

	// Header is sent with the WebSocket handshake request.
	Header http.Header

	// Transport overrides the default WebSocket transport.
	// Used for testing and custom communication methods.
	Transport Transport
}

// CommandTimeoutOrDefault returns the configured command timeout,
// falling back to DefaultCommandTimeout.
func (o *Options) CommandTimeoutOrDefault() time.Duration {
	if o == nil || o.CommandTimeout <= 0 {
		return DefaultCommandTimeout
	}

	return o.CommandTimeout
}
