package actions

import (
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

// Action names understood by the VS Code MCP server.
const (
	OpenFile       = "openFile"
	CreateFile     = "createFile"
	GetFileContent = "getFileContent"
	SaveFile       = "saveFile"
	CloseFile      = "closeFile"
	Type           = "type"
	RunCommand     = "runCommand"
)

// Position addresses a point in a document, zero-based.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// TypeOptions controls how the type action animates text entry.
type TypeOptions struct {
	// Speed is milliseconds per character. Zero means the server default (50).
	Speed int

	// Variation adds per-character timing jitter in [0, 1].
	// Zero means the server default (0.2).
	Variation float64

	// Position types at a fixed document position instead of the cursor.
	Position *Position

	// Quick disables the typing animation entirely.
	Quick bool
}

// paramSchemas describes the params shape per action. Schemas stay loose on
// purpose: they catch missing required fields and wrong primitive types,
// nothing more. Server-side validation remains authoritative.
var paramSchemas = map[string]*jsonschema.Schema{
	OpenFile: {
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"path": {Type: "string"},
		},
		Required: []string{"path"},
	},
	CreateFile: {
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"path":    {Type: "string"},
			"content": {Type: "string"},
		},
		Required: []string{"path"},
	},
	GetFileContent: {
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"path": {Type: "string"},
		},
	},
	SaveFile: {
		Type: "object",
	},
	CloseFile: {
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"path": {Type: "string"},
		},
	},
	Type: {
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"text":      {Type: "string"},
			"speed":     {Type: "integer"},
			"variation": {Type: "number"},
			"quick":     {Type: "boolean"},
			"position": {
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"line":      {Type: "integer"},
					"character": {Type: "integer"},
				},
				Required: []string{"line", "character"},
			},
		},
		Required: []string{"text"},
	},
	RunCommand: {
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"command": {Type: "string"},
			"args":    {Type: "array"},
		},
		Required: []string{"command"},
	},
}

var resolveOnce = sync.OnceValues(func() (map[string]*jsonschema.Resolved, error) {
	resolved := make(map[string]*jsonschema.Resolved, len(paramSchemas))

	for action, schema := range paramSchemas {
		rs, err := schema.Resolve(nil)
		if err != nil {
			return nil, fmt.Errorf("resolve %s schema: %w", action, err)
		}

		resolved[action] = rs
	}

	return resolved, nil
})

// Validate checks params against the action's schema. Unknown actions are
// accepted unchecked: the wire protocol is open-ended and the server is the
// authority on what it understands.
func Validate(action string, params map[string]any) error {
	resolved, err := resolveOnce()
	if err != nil {
		return err
	}

	rs, ok := resolved[action]
	if !ok {
		return nil
	}

	if params == nil {
		params = map[string]any{}
	}

	if err := rs.Validate(params); err != nil {
		return fmt.Errorf("invalid params for %s: %w", action, err)
	}

	return nil
}

// TypeParams builds the params for a type action from options.
// Zero-valued options are omitted so the server applies its defaults.
func TypeParams(text string, opts TypeOptions) map[string]any {
	params := map[string]any{"text": text}

	if opts.Speed > 0 {
		params["speed"] = opts.Speed
	}

	if opts.Variation > 0 {
		params["variation"] = opts.Variation
	}

	if opts.Position != nil {
		params["position"] = map[string]any{
			"line":      opts.Position.Line,
			"character": opts.Position.Character,
		}
	}

	if opts.Quick {
		params["quick"] = true
	}

	return params
}
