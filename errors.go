package vscodemcp

import "github.com/vscodemcp/vscode-mcp-sdk-go/internal/errors"

// Re-export error types from internal package

// ConnectionError indicates failure to establish the WebSocket connection.
type ConnectionError = errors.ConnectionError

// RemoteError indicates the server answered a command with an error.
// Message carries the server's error text verbatim.
type RemoteError = errors.RemoteError

// DecodeError indicates an inbound frame could not be parsed.
// Decode failures are logged and dropped by the receive loop; they are
// never surfaced to a waiting caller.
type DecodeError = errors.DecodeError

// SDKError is the base interface for all SDK errors.
type SDKError = errors.SDKError

// Re-export sentinel errors from internal package.
var (
	// ErrClientNotConnected indicates the client is not connected.
	ErrClientNotConnected = errors.ErrClientNotConnected

	// ErrClientAlreadyConnected indicates the client is already connected.
	ErrClientAlreadyConnected = errors.ErrClientAlreadyConnected

	// ErrClientClosed indicates the client has been closed and cannot be reused.
	ErrClientClosed = errors.ErrClientClosed

	// ErrTransportNotConnected indicates the transport is not connected.
	ErrTransportNotConnected = errors.ErrTransportNotConnected

	// ErrCommandTimeout indicates a command received no response in time.
	ErrCommandTimeout = errors.ErrCommandTimeout

	// ErrConnectionClosed indicates the connection closed while a command
	// was still awaiting its response.
	ErrConnectionClosed = errors.ErrConnectionClosed
)
