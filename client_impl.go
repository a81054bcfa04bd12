package vscodemcp

import (
	"context"

	"github.com/vscodemcp/vscode-mcp-sdk-go/internal/client"
)

// clientWrapper wraps the internal client to adapt it to the public interface.
type clientWrapper struct {
	impl *client.Client
}

// Compile-time check that *clientWrapper implements the Client interface.
var _ Client = (*clientWrapper)(nil)

// newClientImpl creates the internal client implementation.
func newClientImpl() Client {
	return &clientWrapper{impl: client.New()}
}

// Connect dials the VS Code MCP server.
func (c *clientWrapper) Connect(ctx context.Context, url string, opts ...Option) error {
	return c.impl.Connect(ctx, url, applyOptions(opts))
}

// SendCommand sends a raw command and waits for its result.
func (c *clientWrapper) SendCommand(
	ctx context.Context,
	action string,
	params map[string]any,
	description string,
) (any, error) {
	return c.impl.SendCommand(ctx, action, params, description)
}

// OpenFile opens a file in the editor.
func (c *clientWrapper) OpenFile(ctx context.Context, path string) (any, error) {
	return c.impl.OpenFile(ctx, path)
}

// CreateFile creates a new file, optionally with initial content.
func (c *clientWrapper) CreateFile(ctx context.Context, path, content string) (any, error) {
	return c.impl.CreateFile(ctx, path, content)
}

// GetFileContent returns a file's content.
func (c *clientWrapper) GetFileContent(ctx context.Context, path string) (any, error) {
	return c.impl.GetFileContent(ctx, path)
}

// SaveFile saves the active file.
func (c *clientWrapper) SaveFile(ctx context.Context) (any, error) {
	return c.impl.SaveFile(ctx)
}

// CloseFile closes a file.
func (c *clientWrapper) CloseFile(ctx context.Context, path string) (any, error) {
	return c.impl.CloseFile(ctx, path)
}

// TypeText types text into the editor.
func (c *clientWrapper) TypeText(ctx context.Context, text string, opts TypeOptions) (any, error) {
	return c.impl.TypeText(ctx, text, opts)
}

// RunCommand runs an arbitrary VS Code command.
func (c *clientWrapper) RunCommand(ctx context.Context, command string, args []any) (any, error) {
	return c.impl.RunCommand(ctx, command, args)
}

// Pending reports the number of commands awaiting responses.
func (c *clientWrapper) Pending() int {
	return c.impl.Pending()
}

// Close terminates the connection and cleans up resources.
func (c *clientWrapper) Close() error {
	return c.impl.Close()
}
