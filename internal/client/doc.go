// Package client implements the VS Code MCP client by composing the
// WebSocket transport with the protocol correlator.
//
// The client is intentionally thin: it owns connection lifecycle and
// translates typed editor actions into opaque command envelopes. All
// correlation, timeout, and failure handling lives in internal/protocol.
package client
