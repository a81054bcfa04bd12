package wstransport

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/vscodemcp/vscode-mcp-sdk-go/internal/config"
	"github.com/vscodemcp/vscode-mcp-sdk-go/internal/errors"
)

const (
	// writeTimeout bounds a single frame write on the socket.
	writeTimeout = 10 * time.Second
)

// Conn implements the Transport interface over a WebSocket connection.
type Conn struct {
	log     *slog.Logger
	url     string
	options *config.Options

	mu        sync.Mutex // guards ws writes and connection state
	ws        *websocket.Conn
	connected bool
	closing   bool

	closeOnce sync.Once
	stop      chan struct{}
	eg        *errgroup.Group
}

// Compile-time verification that Conn implements the Transport interface.
var _ config.Transport = (*Conn)(nil)

// New creates a WebSocket transport for the given ws:// or wss:// URL.
//
// The logger is used for operation tracking and debugging. The connection
// is not dialed until Start().
func New(log *slog.Logger, url string, options *config.Options) *Conn {
	if options == nil {
		options = &config.Options{}
	}

	return &Conn{
		log:     log.With("component", "ws_transport"),
		url:     url,
		options: options,
		stop:    make(chan struct{}),
	}
}

// Start dials the server and performs the WebSocket handshake.
//
// Returns ConnectionError if the dial or handshake fails. On success a
// keepalive ping loop is started; each connection is tagged with a fresh
// ULID in the logs for correlation.
func (t *Conn) Start(ctx context.Context) error {
	dialer := websocket.Dialer{
		HandshakeTimeout: t.dialTimeout(),
		TLSClientConfig:  t.options.TLSConfig,
	}

	ws, resp, err := dialer.DialContext(ctx, t.url, t.options.Header)
	if err != nil {
		if resp != nil {
			t.log.Error("WebSocket handshake rejected", "url", t.url, "status", resp.StatusCode)
		}

		return &errors.ConnectionError{URL: t.url, Err: err}
	}

	t.mu.Lock()
	t.log = t.log.With("conn_id", ulid.Make().String())
	t.ws = ws
	t.connected = true
	t.mu.Unlock()

	t.eg, _ = errgroup.WithContext(context.Background())
	t.eg.Go(t.pingLoop)

	t.log.Info("WebSocket connection established", "url", t.url)

	return nil
}

// ReadMessages reads JSON frames from the socket.
//
// This method starts a goroutine that reads text frames and parses each as
// a JSON object. Frames that fail to decode are reported on the error
// channel as *DecodeError without stopping the reader; a fatal read error
// is reported and terminates it. Both channels are closed when reading
// completes.
func (t *Conn) ReadMessages(ctx context.Context) (<-chan map[string]any, <-chan error) {
	messages := make(chan map[string]any)
	errs := make(chan error, 8)

	t.eg.Go(func() error {
		defer close(messages)
		defer close(errs)
		defer t.log.Debug("ReadMessages goroutine stopped")

		for {
			_, data, err := t.ws.ReadMessage()
			if err != nil {
				if t.isClosing() {
					t.log.Debug("Socket closed during shutdown")

					return nil
				}

				if websocket.IsCloseError(err,
					websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					t.log.Info("Server closed the connection")

					return nil
				}

				t.log.Debug("Socket read failed", "error", err)

				errs <- fmt.Errorf("read frame: %w", err)

				return nil
			}

			var msg map[string]any

			if err := json.Unmarshal(data, &msg); err != nil {
				decodeErr := &errors.DecodeError{RawData: string(data), Err: err}

				select {
				case errs <- decodeErr:
				case <-ctx.Done():
					return nil
				case <-t.stop:
					return nil
				}

				continue
			}

			select {
			case messages <- msg:
			case <-ctx.Done():
				t.log.Debug("Context cancelled during message send")

				return nil
			case <-t.stop:
				return nil
			}
		}
	})

	return messages, errs
}

// SendMessage writes a single text frame to the socket.
// Safe for concurrent use; gorilla connections permit one writer at a time.
func (t *Conn) SendMessage(_ context.Context, data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.connected {
		return errors.ErrTransportNotConnected
	}

	if err := t.ws.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("set write deadline: %w", err)
	}

	if err := t.ws.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}

	return nil
}

// Close sends a close frame, tears down the socket, and waits for the
// reader and ping goroutines to stop. Safe to call multiple times.
func (t *Conn) Close() error {
	var closeErr error

	t.closeOnce.Do(func() {
		t.mu.Lock()

		t.closing = true
		wasConnected := t.connected
		t.connected = false

		if wasConnected {
			deadline := time.Now().Add(writeTimeout)

			_ = t.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)

			closeErr = t.ws.Close()
		}

		t.mu.Unlock()

		close(t.stop)

		if t.eg != nil {
			_ = t.eg.Wait()
		}

		if wasConnected {
			t.log.Info("WebSocket connection closed")
		}
	})

	return closeErr
}

// IsReady returns true if the transport is ready for communication.
func (t *Conn) IsReady() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.connected
}

func (t *Conn) isClosing() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.closing
}

func (t *Conn) dialTimeout() time.Duration {
	if t.options.DialTimeout > 0 {
		return t.options.DialTimeout
	}

	return config.DefaultDialTimeout
}

func (t *Conn) pingInterval() time.Duration {
	if t.options.PingInterval > 0 {
		return t.options.PingInterval
	}

	return config.DefaultPingInterval
}

// pingLoop sends keepalive pings on an otherwise idle connection.
// Ping failures are left to the read side to surface: a dead socket makes
// ReadMessage return an error shortly after.
func (t *Conn) pingLoop() error {
	ticker := time.NewTicker(t.pingInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.mu.Lock()

			if !t.connected {
				t.mu.Unlock()

				return nil
			}

			err := t.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout))

			t.mu.Unlock()

			if err != nil {
				t.log.Debug("Keepalive ping failed", "error", err)

				return nil
			}

		case <-t.stop:
			return nil
		}
	}
}
