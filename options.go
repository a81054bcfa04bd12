package vscodemcp

import (
	"crypto/tls"
	"log/slog"
	"net/http"
	"time"

	"github.com/vscodemcp/vscode-mcp-sdk-go/internal/config"
)

// Option configures ClientOptions using the functional options pattern.
type Option func(*ClientOptions)

// applyOptions applies functional options to a ClientOptions struct.
func applyOptions(opts []Option) *config.Options {
	options := &ClientOptions{}
	for _, opt := range opts {
		opt(options)
	}

	// ClientOptions is a type alias to config.Options, so direct use works
	return options
}

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *ClientOptions) {
		o.Logger = logger
	}
}

// WithCommandTimeout sets how long each command waits for its response
// before failing with ErrCommandTimeout. Default: 10 seconds.
func WithCommandTimeout(timeout time.Duration) Option {
	return func(o *ClientOptions) {
		o.CommandTimeout = timeout
	}
}

// WithDialTimeout bounds the WebSocket handshake. Default: 10 seconds.
func WithDialTimeout(timeout time.Duration) Option {
	return func(o *ClientOptions) {
		o.DialTimeout = timeout
	}
}

// WithPingInterval sets the keepalive ping period on an idle connection.
// Default: 30 seconds.
func WithPingInterval(interval time.Duration) Option {
	return func(o *ClientOptions) {
		o.PingInterval = interval
	}
}

// WithTLSConfig sets the TLS configuration for wss:// connections.
func WithTLSConfig(tlsConfig *tls.Config) Option {
	return func(o *ClientOptions) {
		o.TLSConfig = tlsConfig
	}
}

// WithHeader sets HTTP headers sent with the WebSocket handshake request,
// e.g. for authentication tokens.
func WithHeader(header http.Header) Option {
	return func(o *ClientOptions) {
		o.Header = header
	}
}

// WithTransport injects a custom transport, replacing the default
// WebSocket transport. Used for testing and mocking.
func WithTransport(transport Transport) Option {
	return func(o *ClientOptions) {
		o.Transport = transport
	}
}
