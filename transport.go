package vscodemcp

import "github.com/vscodemcp/vscode-mcp-sdk-go/internal/config"

// Transport defines the interface for server communication.
// Implement this to provide custom transports for testing, mocking,
// or alternative communication methods.
//
// The default implementation dials a WebSocket connection. Custom
// transports can be injected via WithTransport.
type Transport = config.Transport
