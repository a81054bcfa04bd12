// Package wstransport implements the WebSocket transport for the VS Code
// MCP server.
//
// The transport dials the server once, delivers decoded JSON frames over a
// channel, and serializes concurrent writes. It performs no reconnection:
// when the socket closes or errors, the channels close and retry policy is
// the caller's decision.
package wstransport
