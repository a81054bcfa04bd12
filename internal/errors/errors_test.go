package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestConnectionError_Creation tests ConnectionError creation and formatting.
func TestConnectionError_Creation(t *testing.T) {
	innerErr := fmt.Errorf("connection refused")
	err := &ConnectionError{
		URL: "ws://localhost:3000",
		Err: innerErr,
	}

	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to connect to ws://localhost:3000")
	require.Contains(t, err.Error(), "connection refused")
	require.ErrorIs(t, err, innerErr)
}

// TestRemoteError_Formatting tests RemoteError formatting with and without an action.
func TestRemoteError_Formatting(t *testing.T) {
	err := &RemoteError{
		Action:    "openFile",
		RequestID: 5,
		Message:   "file not found",
	}

	require.Error(t, err)
	require.Contains(t, err.Error(), "openFile")
	require.Contains(t, err.Error(), "request 5")
	require.Contains(t, err.Error(), "file not found")

	bare := &RemoteError{RequestID: 7, Message: "permission denied"}
	require.Equal(t, "request 7: permission denied", bare.Error())
}

// TestRemoteError_As tests errors.As extraction through wrapping.
func TestRemoteError_As(t *testing.T) {
	inner := &RemoteError{Action: "saveFile", RequestID: 2, Message: "no active editor"}
	wrapped := fmt.Errorf("send command: %w", inner)

	var remote *RemoteError

	require.ErrorAs(t, wrapped, &remote)
	require.Equal(t, int64(2), remote.RequestID)
	require.Equal(t, "no active editor", remote.Message)
}

// TestDecodeError_PreservesRawData tests that DecodeError keeps the unparseable frame.
func TestDecodeError_PreservesRawData(t *testing.T) {
	innerErr := fmt.Errorf("invalid JSON")
	err := &DecodeError{
		RawData: `{"incomplete": `,
		Err:     innerErr,
	}

	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to decode frame")
	require.Equal(t, `{"incomplete": `, err.RawData)
	require.ErrorIs(t, err, innerErr)
}

// TestSentinelErrors tests that sentinel errors are distinct and comparable.
func TestSentinelErrors(t *testing.T) {
	wrapped := fmt.Errorf("%w after 10s", ErrCommandTimeout)
	require.ErrorIs(t, wrapped, ErrCommandTimeout)
	require.False(t, stderrors.Is(wrapped, ErrConnectionClosed))

	require.NotErrorIs(t, ErrClientNotConnected, ErrClientClosed)
	require.NotErrorIs(t, ErrConnectionClosed, ErrCorrelatorStopped)
}
