package protocol

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/vscodemcp/vscode-mcp-sdk-go/internal/errors"
)

// Transport defines the minimal interface needed for protocol operations.
//
// This interface is satisfied by the WebSocket transport but allows for
// testing with mock transports.
type Transport interface {
	ReadMessages(ctx context.Context) (<-chan map[string]any, <-chan error)
	SendMessage(ctx context.Context, data []byte) error
}

// Correlator manages command/response correlation with the VS Code MCP server.
//
// The Correlator handles:
//   - Sending command envelopes with strictly increasing ids
//   - Receiving and routing response frames to waiting commands
//   - Command timeout enforcement
//   - Failing still-pending commands when the connection closes
//
// The Correlator must be started with Start() before use and manages its own
// goroutine for reading and routing frames. Sending and receiving proceed
// independently, correlated only through the shared pending table.
type Correlator struct {
	log       *slog.Logger
	transport Transport

	// Command tracking
	ids   idAllocator
	table *pendingTable

	// Fatal error handling - stores error and broadcasts via done channel
	errMu    sync.RWMutex
	fatalErr error

	// Lifecycle management
	closeOnce sync.Once
	done      chan struct{}
	wg        sync.WaitGroup
}

// NewCorrelator creates a new protocol correlator.
//
// The logger will receive debug, warn, and error messages during protocol
// operations. The transport must be connected before calling Start().
func NewCorrelator(log *slog.Logger, transport Transport) *Correlator {
	return &Correlator{
		log:       log.With("component", "protocol"),
		transport: transport,
		table:     newPendingTable(),
		done:      make(chan struct{}),
	}
}

// closeDone safely closes the done channel exactly once.
func (c *Correlator) closeDone() {
	c.closeOnce.Do(func() {
		close(c.done)
	})
}

// SetFatalError stores a fatal error and broadcasts to all waiters by closing done.
func (c *Correlator) SetFatalError(err error) {
	c.errMu.Lock()

	if c.fatalErr == nil {
		c.fatalErr = err
	}

	c.errMu.Unlock()

	c.closeDone()
}

// FatalError returns the fatal error if one occurred.
func (c *Correlator) FatalError() error {
	c.errMu.RLock()
	defer c.errMu.RUnlock()

	return c.fatalErr
}

// Done returns a channel that is closed when the correlator stops.
func (c *Correlator) Done() <-chan struct{} {
	return c.done
}

// Pending reports the number of in-flight commands, for diagnostics.
func (c *Correlator) Pending() int {
	return c.table.size()
}

// Start begins reading frames from the transport and routing responses.
//
// This method spawns a goroutine that reads from the transport and resolves
// waiting commands. The goroutine stops when the context is cancelled or the
// transport is closed; on exit every still-pending command is failed with a
// connection-closed error so no caller waits forever.
//
// Start must be called before SendCommand.
func (c *Correlator) Start(ctx context.Context) error {
	c.log.Debug("Starting protocol correlator")

	messages, errs := c.transport.ReadMessages(ctx)

	c.wg.Add(1)

	go c.readLoop(ctx, messages, errs)

	c.log.Info("Protocol correlator started")

	return nil
}

// Stop gracefully shuts down the correlator.
//
// This method signals the read loop to stop and waits for it to finish
// failing any remaining pending commands. It's safe to call Stop multiple
// times.
func (c *Correlator) Stop() {
	c.log.Debug("Stopping protocol correlator")

	c.closeDone()
	c.wg.Wait()
	c.log.Info("Protocol correlator stopped")
}

// SendCommand sends a command envelope and waits for the matching response.
//
// This method allocates a fresh id, registers the command in the pending
// table, transmits the envelope, and blocks until the matching response
// arrives, the timeout expires, the context is cancelled, or the connection
// closes. A nil params map is sent as an empty object; an empty description
// defaults to the action name.
//
// SendCommand never blocks the inbound path: callers may issue commands
// concurrently and responses may resolve in any order relative to send
// order. Each command's continuation is completed exactly once.
func (c *Correlator) SendCommand(
	ctx context.Context,
	action string,
	params map[string]any,
	description string,
	timeout time.Duration,
) (any, error) {
	if params == nil {
		params = map[string]any{}
	}

	if description == "" {
		description = action
	}

	id := c.ids.next()

	c.log.Debug("Sending command", "id", id, "action", action, "description", description)

	pending := newPendingCommand(id, action, description)
	c.table.register(pending)

	data, err := json.Marshal(&Command{ID: id, Action: action, Params: params})
	if err != nil {
		c.table.take(id)

		c.log.Error("Failed to marshal command", "id", id, "error", err)

		return nil, fmt.Errorf("marshal command: %w", err)
	}

	if err := c.transport.SendMessage(ctx, data); err != nil {
		// The send failed synchronously: take the entry back out so the
		// table never holds an orphan for a command that never left.
		c.table.take(id)

		c.log.Error("Failed to send command", "id", id, "error", err)

		return nil, fmt.Errorf("send command: %w", err)
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-pending.done:
		return c.deliver(pending, res)

	case <-timer.C:
		if _, ok := c.table.take(id); ok {
			c.log.Warn("Command timed out", "id", id, "action", action, "timeout", timeout)

			return nil, fmt.Errorf("%w after %s", errors.ErrCommandTimeout, timeout)
		}

		// A response won the race for the entry; its completion is already
		// in flight, so deliver it instead of a timeout.
		return c.deliver(pending, <-pending.done)

	case <-ctx.Done():
		if _, ok := c.table.take(id); ok {
			c.log.Debug("Command cancelled", "id", id)

			return nil, ctx.Err()
		}

		return c.deliver(pending, <-pending.done)

	case <-c.done:
		// Correlator stopped (possibly due to transport error) - fail fast
		if _, ok := c.table.take(id); ok {
			if err := c.FatalError(); err != nil {
				c.log.Warn("Transport error during command", "id", id, "error", err)

				return nil, fmt.Errorf("transport error: %w", err)
			}

			c.log.Debug("Correlator stopped during command", "id", id)

			return nil, errors.ErrCorrelatorStopped
		}

		return c.deliver(pending, <-pending.done)
	}
}

// deliver unpacks a completed continuation for the caller.
func (c *Correlator) deliver(pending *pendingCommand, res Result) (any, error) {
	if res.Err != nil {
		return nil, res.Err
	}

	c.log.Debug("Command resolved", "id", pending.id, "description", pending.description)

	return res.Value, nil
}

// readLoop reads frames from the transport and routes responses to waiting
// commands. It runs for the lifetime of the connection, one iteration per
// inbound frame, and exits when the transport closes or errors.
func (c *Correlator) readLoop(
	ctx context.Context,
	messages <-chan map[string]any,
	errs <-chan error,
) {
	defer c.wg.Done()
	defer c.log.Debug("Protocol read loop stopped")
	defer c.closeDone()
	defer c.failRemaining()

	for {
		select {
		case msg, ok := <-messages:
			if !ok {
				c.log.Debug("Message channel closed")

				return
			}

			c.route(msg)

		case err, ok := <-errs:
			if !ok {
				c.log.Debug("Error channel closed")

				return
			}

			if err == nil {
				continue
			}

			// A frame that fails to decode is logged and dropped; one
			// malformed message must not prevent later correlations.
			var decodeErr *errors.DecodeError
			if stderrors.As(err, &decodeErr) {
				c.log.Warn("Dropping undecodable frame", "error", err)

				continue
			}

			c.log.Debug("Transport error in protocol", "error", err)
			c.SetFatalError(err)

			return

		case <-c.done:
			c.log.Debug("Protocol correlator stop signal received")

			return

		case <-ctx.Done():
			c.log.Debug("Context cancelled in protocol read loop")

			return
		}
	}
}

// route resolves a single inbound frame against the pending table.
//
// Frames lacking an id, or whose id matches no pending command, are
// dropped: they cover unsolicited and unknown messages, including late
// responses whose command already timed out.
func (c *Correlator) route(frame map[string]any) {
	id, ok := frameID(frame)
	if !ok {
		c.log.Debug("Ignoring frame without id")

		return
	}

	pending, ok := c.table.take(id)
	if !ok {
		c.log.Debug("No pending command for frame", "id", id)

		return
	}

	if msg, isErr := frameError(frame); isErr {
		c.log.Warn("Command failed remotely", "id", id, "action", pending.action, "error", msg)

		pending.complete(Result{Err: &errors.RemoteError{
			Action:    pending.action,
			RequestID: id,
			Message:   msg,
		}})

		return
	}

	c.log.Debug("Received response", "id", id)

	// Result may legitimately be absent or null.
	pending.complete(Result{Value: frame["result"]})
}

// failRemaining fails every still-pending command with a connection-closed
// error. Called exactly once when the read loop exits.
func (c *Correlator) failRemaining() {
	remaining := c.table.drain()
	if len(remaining) == 0 {
		return
	}

	err := error(errors.ErrConnectionClosed)
	if fatal := c.FatalError(); fatal != nil {
		err = fmt.Errorf("%w: %w", errors.ErrConnectionClosed, fatal)
	}

	for _, pending := range remaining {
		c.log.Warn("Failing command on connection close",
			"id", pending.id,
			"description", pending.description,
		)

		pending.complete(Result{Err: err})
	}
}
