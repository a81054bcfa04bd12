package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/vscodemcp/vscode-mcp-sdk-go/internal/actions"
	"github.com/vscodemcp/vscode-mcp-sdk-go/internal/config"
	"github.com/vscodemcp/vscode-mcp-sdk-go/internal/errors"
	"github.com/vscodemcp/vscode-mcp-sdk-go/internal/protocol"
	"github.com/vscodemcp/vscode-mcp-sdk-go/internal/wstransport"
)

// Client implements the interactive VS Code MCP client.
type Client struct {
	log        *slog.Logger
	transport  config.Transport
	correlator *protocol.Correlator
	options    *config.Options

	// Lifecycle management
	mu        sync.Mutex
	connected bool
	closed    bool      // Tracks if Close() has been called
	closeOnce sync.Once // Ensures Close() only runs once
}

// New creates a new client.
//
// The client is not connected after creation. Call Connect() to dial the server.
func New() *Client {
	return &Client{}
}

// isConnected returns true if the client is connected.
// This method is safe to call from any goroutine.
func (c *Client) isConnected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.connected
}

// Connect dials the VS Code MCP server and starts the receive loop.
//
// The url is a ws:// or wss:// address. Returns ConnectionError if the dial
// fails, ErrClientAlreadyConnected on a second call, and ErrClientClosed
// after Close().
func (c *Client) Connect(ctx context.Context, url string, options *config.Options) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return errors.ErrClientClosed
	}

	if c.connected {
		return errors.ErrClientAlreadyConnected
	}

	if options == nil {
		options = &config.Options{}
	}

	log := options.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	c.log = log.With("component", "client")
	c.options = options

	// Create or use injected transport
	var transport config.Transport

	if options.Transport != nil {
		transport = options.Transport

		c.log.Debug("Using injected custom transport")
	} else {
		transport = wstransport.New(log, url, options)
	}

	if err := transport.Start(ctx); err != nil {
		return fmt.Errorf("start transport: %w", err)
	}

	c.transport = transport

	// Start the correlation core; it owns the receive loop for the
	// lifetime of the connection.
	c.correlator = protocol.NewCorrelator(log, transport)
	if err := c.correlator.Start(ctx); err != nil {
		transport.Close()

		return fmt.Errorf("start correlator: %w", err)
	}

	c.connected = true
	c.log.Info("Client connected", "url", url)

	return nil
}

// SendCommand sends a raw command and waits for its result.
//
// Params for known actions are schema-checked before dispatch; unknown
// actions go out as-is. An empty description defaults to the action name.
// The response timeout comes from Options.CommandTimeout.
func (c *Client) SendCommand(
	ctx context.Context,
	action string,
	params map[string]any,
	description string,
) (any, error) {
	if !c.isConnected() {
		return nil, errors.ErrClientNotConnected
	}

	if err := actions.Validate(action, params); err != nil {
		return nil, err
	}

	return c.correlator.SendCommand(
		ctx, action, params, description, c.options.CommandTimeoutOrDefault())
}

// OpenFile opens a file in the editor.
func (c *Client) OpenFile(ctx context.Context, path string) (any, error) {
	return c.SendCommand(ctx, actions.OpenFile,
		map[string]any{"path": path}, "Open file: "+path)
}

// CreateFile creates a new file, optionally with initial content.
func (c *Client) CreateFile(ctx context.Context, path, content string) (any, error) {
	return c.SendCommand(ctx, actions.CreateFile,
		map[string]any{"path": path, "content": content}, "Create file: "+path)
}

// GetFileContent returns the content of a file.
// An empty path means the active file.
func (c *Client) GetFileContent(ctx context.Context, path string) (any, error) {
	params := map[string]any{}
	target := "active file"

	if path != "" {
		params["path"] = path
		target = path
	}

	return c.SendCommand(ctx, actions.GetFileContent, params, "Get content of "+target)
}

// SaveFile saves the active file.
func (c *Client) SaveFile(ctx context.Context) (any, error) {
	return c.SendCommand(ctx, actions.SaveFile, nil, "Save current file")
}

// CloseFile closes a file. An empty path means the active file.
func (c *Client) CloseFile(ctx context.Context, path string) (any, error) {
	params := map[string]any{}
	target := "active file"

	if path != "" {
		params["path"] = path
		target = path
	}

	return c.SendCommand(ctx, actions.CloseFile, params, "Close "+target)
}

// TypeText types text into the editor, at the cursor or at a fixed
// position depending on opts.
func (c *Client) TypeText(ctx context.Context, text string, opts actions.TypeOptions) (any, error) {
	description := "Type text"
	if opts.Position != nil {
		description = fmt.Sprintf("Type text at position %d:%d",
			opts.Position.Line, opts.Position.Character)
	}

	return c.SendCommand(ctx, actions.Type, actions.TypeParams(text, opts), description)
}

// RunCommand runs an arbitrary VS Code command with optional arguments.
func (c *Client) RunCommand(ctx context.Context, command string, args []any) (any, error) {
	params := map[string]any{"command": command}
	if len(args) > 0 {
		params["args"] = args
	}

	return c.SendCommand(ctx, actions.RunCommand, params, "Run command: "+command)
}

// Pending reports the number of in-flight commands, for diagnostics.
func (c *Client) Pending() int {
	if !c.isConnected() {
		return 0
	}

	return c.correlator.Pending()
}

// Close terminates the connection and cleans up resources.
//
// Any commands still awaiting responses fail with a connection-closed
// error. After Close(), the client cannot be reused. Safe to call
// multiple times.
func (c *Client) Close() error {
	var closeErr error

	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		wasConnected := c.connected
		c.connected = false
		c.mu.Unlock()

		if !wasConnected {
			return
		}

		c.log.Info("Closing client")

		// Close transport and capture error
		if c.transport != nil {
			closeErr = c.transport.Close()
		}

		// Stop the correlator; it fails any remaining pending commands.
		if c.correlator != nil {
			c.correlator.Stop()
		}

		c.log.Info("Client closed")
	})

	return closeErr
}
