// Package errors defines error types for the VS Code MCP SDK.
//
// This package provides structured error types that wrap the different
// failure scenarios of the WebSocket control protocol. All error types
// support error unwrapping and can be checked using errors.Is and errors.As.
package errors
