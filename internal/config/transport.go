// Package config provides configuration types for the VS Code MCP SDK.
package config

import "context"

// Transport defines the interface for communicating with the VS Code MCP
// server. Implement this to provide custom transports for testing, mocking,
// or alternative communication methods.
//
// The default implementation is the WebSocket transport in
// internal/wstransport. Custom transports can be injected via
// Options.Transport.
type Transport interface {
	// Start establishes the connection and prepares the transport for
	// communication. It is called before any messages are sent or received.
	Start(ctx context.Context) error

	// ReadMessages returns channels for receiving frames and errors.
	// The message channel yields parsed JSON objects from the server.
	// Frame decode failures are reported as *errors.DecodeError on the
	// error channel without stopping the reader; only fatal transport
	// errors terminate it. Both channels are closed when reading completes.
	ReadMessages(ctx context.Context) (<-chan map[string]any, <-chan error)

	// SendMessage sends a complete JSON frame to the server.
	// This method must be safe for concurrent use.
	SendMessage(ctx context.Context, data []byte) error

	// Close terminates the transport and releases resources.
	// It's safe to call Close multiple times.
	Close() error

	// IsReady returns true if the transport is ready for communication.
	IsReady() bool
}
