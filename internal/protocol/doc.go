// Package protocol implements request/response correlation for the VS Code
// MCP WebSocket protocol.
//
// The protocol package provides a Correlator that sends command envelopes
// with unique integer ids and resolves each command's eventual result or
// error exactly once when the matching response frame arrives, regardless
// of arrival order or interleaving with unrelated frames.
//
// The Correlator handles:
//   - Allocating strictly increasing command ids
//   - Tracking in-flight commands in a pending table
//   - Request timeout enforcement
//   - Demultiplexing inbound frames to the right waiting caller
//   - Failing all still-pending commands when the connection closes
//
// Example usage:
//
//	transport := wstransport.New(log, "ws://localhost:3000", opts)
//	transport.Start(ctx)
//
//	correlator := protocol.NewCorrelator(log, transport)
//	correlator.Start(ctx)
//
//	// Send a command with timeout
//	result, err := correlator.SendCommand(ctx, "openFile",
//	    map[string]any{"path": "main.go"}, "Open file: main.go", 10*time.Second)
package protocol
