package vscodemcp

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// echoTransport implements Transport and resolves every command with a
// fixed result.
type echoTransport struct {
	mu      sync.Mutex
	closed  bool
	msgChan chan map[string]any
	errChan chan error
}

func newEchoTransport() *echoTransport {
	return &echoTransport{
		msgChan: make(chan map[string]any, 10),
		errChan: make(chan error, 1),
	}
}

func (e *echoTransport) Start(_ context.Context) error { return nil }

func (e *echoTransport) ReadMessages(_ context.Context) (<-chan map[string]any, <-chan error) {
	return e.msgChan, e.errChan
}

func (e *echoTransport) SendMessage(_ context.Context, data []byte) error {
	var cmd map[string]any
	if err := json.Unmarshal(data, &cmd); err != nil {
		return err
	}

	e.msgChan <- map[string]any{"id": cmd["id"], "result": map[string]any{"ok": true}}

	return nil
}

func (e *echoTransport) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.closed {
		e.closed = true

		close(e.msgChan)
		close(e.errChan)
	}

	return nil
}

func (e *echoTransport) IsReady() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return !e.closed
}

func TestNewClient_NotConnected(t *testing.T) {
	client := NewClient()
	require.NotNil(t, client)

	_, err := client.SaveFile(context.Background())
	require.ErrorIs(t, err, ErrClientNotConnected)
	require.Equal(t, 0, client.Pending())
}

func TestClient_EndToEndWithInjectedTransport(t *testing.T) {
	client := NewClient()

	err := client.Connect(context.Background(), "ws://unused",
		WithTransport(newEchoTransport()),
		WithLogger(NopLogger()),
		WithCommandTimeout(2*time.Second),
	)
	require.NoError(t, err)

	defer client.Close()

	result, err := client.OpenFile(context.Background(), "main.go")
	require.NoError(t, err)
	require.Equal(t, map[string]any{"ok": true}, result)

	result, err = client.TypeText(context.Background(), "hello", TypeOptions{Quick: true})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"ok": true}, result)

	require.NoError(t, client.Close())

	_, err = client.SaveFile(context.Background())
	require.ErrorIs(t, err, ErrClientNotConnected)
}
