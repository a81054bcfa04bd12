package vscodemcp

import "context"

// Client provides an interactive interface to the VS Code MCP server.
//
// A client maintains one WebSocket connection and correlates every command
// with its eventual response. Commands may be issued from any number of
// goroutines; each call blocks only its own caller until the matching
// response arrives, the per-command timeout expires, or the connection
// closes.
//
// Lifecycle: Clients are single-use. After Close(), create a new client
// with NewClient().
//
// Example usage:
//
//	client := vscodemcp.NewClient()
//	defer client.Close()
//
//	err := client.Connect(ctx, "ws://localhost:3000",
//	    vscodemcp.WithLogger(slog.Default()),
//	    vscodemcp.WithCommandTimeout(10*time.Second),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if _, err := client.OpenFile(ctx, "main.go"); err != nil {
//	    log.Fatal(err)
//	}
type Client interface {
	// Connect dials the VS Code MCP server at the given ws:// or wss:// URL.
	// Must be called before any command method.
	// Returns ConnectionError if the dial or handshake fails.
	Connect(ctx context.Context, url string, opts ...Option) error

	// SendCommand sends a raw command and waits for its result.
	// Params for known actions are schema-checked before dispatch; unknown
	// actions pass through unvalidated. The description labels the command
	// in logs and errors and defaults to the action name.
	SendCommand(ctx context.Context, action string, params map[string]any, description string) (any, error)

	// OpenFile opens a file in the editor.
	OpenFile(ctx context.Context, path string) (any, error)

	// CreateFile creates a new file, optionally with initial content.
	CreateFile(ctx context.Context, path, content string) (any, error)

	// GetFileContent returns a file's content. An empty path means the
	// active file.
	GetFileContent(ctx context.Context, path string) (any, error)

	// SaveFile saves the active file.
	SaveFile(ctx context.Context) (any, error)

	// CloseFile closes a file. An empty path means the active file.
	CloseFile(ctx context.Context, path string) (any, error)

	// TypeText types text into the editor, at the cursor or at a fixed
	// position depending on opts.
	TypeText(ctx context.Context, text string, opts TypeOptions) (any, error)

	// RunCommand runs an arbitrary VS Code command with optional arguments.
	RunCommand(ctx context.Context, command string, args []any) (any, error)

	// Pending reports the number of commands awaiting responses.
	Pending() int

	// Close terminates the connection and fails any still-pending commands
	// with ErrConnectionClosed. After Close(), the client cannot be reused.
	// Safe to call multiple times.
	Close() error
}

// NewClient creates a new client.
//
// Call Connect() with the server URL to begin:
//
//	client := vscodemcp.NewClient()
//	err := client.Connect(ctx, "ws://localhost:3000",
//	    vscodemcp.WithLogger(slog.Default()),
//	)
func NewClient() Client {
	return newClientImpl()
}
