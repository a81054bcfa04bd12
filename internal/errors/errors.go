package errors

import (
	"errors"
	"fmt"
)

// SDKError is the base interface for all SDK errors.
type SDKError interface {
	error
	IsVSCodeMCPError() bool
}

// Compile-time verification that all error types implement SDKError.
var (
	_ SDKError = (*ConnectionError)(nil)
	_ SDKError = (*RemoteError)(nil)
	_ SDKError = (*DecodeError)(nil)
)

// Sentinel errors for commonly checked conditions.
var (
	// ErrClientNotConnected indicates the client is not connected.
	ErrClientNotConnected = errors.New("client not connected")

	// ErrClientAlreadyConnected indicates the client is already connected.
	ErrClientAlreadyConnected = errors.New("client already connected")

	// ErrClientClosed indicates the client has been closed and cannot be reused.
	ErrClientClosed = errors.New("client closed: clients are single-use, create a new one with NewClient()")

	// ErrTransportNotConnected indicates the transport is not connected.
	ErrTransportNotConnected = errors.New("transport not connected")

	// ErrCommandTimeout indicates a command received no response in time.
	ErrCommandTimeout = errors.New("command timeout")

	// ErrConnectionClosed indicates the connection closed while a command
	// was still awaiting its response.
	ErrConnectionClosed = errors.New("connection closed")

	// ErrCorrelatorStopped indicates the protocol correlator has stopped.
	ErrCorrelatorStopped = errors.New("protocol correlator stopped")
)

// ConnectionError indicates failure to establish the WebSocket connection.
type ConnectionError struct {
	URL string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to %s: %v", e.URL, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// IsVSCodeMCPError implements SDKError.
func (e *ConnectionError) IsVSCodeMCPError() bool { return true }

// RemoteError indicates the server answered a command with an error field.
// Message carries the server's error text verbatim.
type RemoteError struct {
	Action    string
	RequestID int64
	Message   string
}

func (e *RemoteError) Error() string {
	if e.Action != "" {
		return fmt.Sprintf("%s (request %d): %s", e.Action, e.RequestID, e.Message)
	}

	return fmt.Sprintf("request %d: %s", e.RequestID, e.Message)
}

// IsVSCodeMCPError implements SDKError.
func (e *RemoteError) IsVSCodeMCPError() bool { return true }

// DecodeError indicates an inbound frame could not be parsed as JSON.
// This error preserves the raw frame that failed to parse. It is logged
// and dropped by the read loop, never surfaced to a waiting caller.
type DecodeError struct {
	RawData string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode frame: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsVSCodeMCPError implements SDKError.
func (e *DecodeError) IsVSCodeMCPError() bool { return true }
