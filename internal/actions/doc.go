// Package actions declares the command actions recognized by the VS Code
// MCP server and the shapes of their params.
//
// The correlation core treats actions and params as opaque; this package is
// presentation-side input hygiene. Params for known actions are checked
// against a JSON Schema before dispatch, so obviously malformed input fails
// locally instead of round-tripping to the server. Unknown actions pass
// through unvalidated.
package actions
