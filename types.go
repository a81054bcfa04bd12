package vscodemcp

import (
	"github.com/vscodemcp/vscode-mcp-sdk-go/internal/actions"
	"github.com/vscodemcp/vscode-mcp-sdk-go/internal/config"
)

// Re-export types from internal packages

// ===== Options and Configuration =====

// ClientOptions configures the behavior of the client.
type ClientOptions = config.Options

// ===== Editor Actions =====

// Action names understood by the VS Code MCP server. SendCommand also
// accepts action names not listed here; they are passed through to the
// server unvalidated.
const (
	// ActionOpenFile opens a file in the editor.
	ActionOpenFile = actions.OpenFile

	// ActionCreateFile creates a new file.
	ActionCreateFile = actions.CreateFile

	// ActionGetFileContent returns a file's content.
	ActionGetFileContent = actions.GetFileContent

	// ActionSaveFile saves the active file.
	ActionSaveFile = actions.SaveFile

	// ActionCloseFile closes a file.
	ActionCloseFile = actions.CloseFile

	// ActionType types text into the editor.
	ActionType = actions.Type

	// ActionRunCommand runs an arbitrary VS Code command.
	ActionRunCommand = actions.RunCommand
)

// Position addresses a point in a document, zero-based.
type Position = actions.Position

// TypeOptions controls how TypeText animates text entry.
type TypeOptions = actions.TypeOptions
