package protocol

import "encoding/json"

// Command is the outbound request envelope.
//
// Wire format:
//
//	{
//	  "id": 3,
//	  "action": "openFile",
//	  "params": {"path": "main.go"}
//	}
//
// A Command is immutable once sent. Params is never nil on the wire:
// the dispatcher substitutes an empty object when the caller omits it.
type Command struct {
	// ID uniquely identifies this command for response correlation.
	// Ids are strictly increasing for the lifetime of a client and
	// are never reused, even after completion or timeout.
	ID int64 `json:"id"`

	// Action names the operation for the server to perform.
	// Opaque to the correlation core.
	Action string `json:"action"`

	// Params carries the action's arguments. Opaque to the core.
	Params map[string]any `json:"params"`
}

// Response frames arrive as loosely structured JSON:
//
//	{"id": 3, "result": {"ok": true}}
//	{"id": 5, "error": "file not found"}
//
// Exactly one of result/error is meaningful; a present error field takes
// precedence. Frames lacking an id, or whose id matches no pending
// command, are dropped by the router.

// frameID extracts the correlation id from a decoded frame.
// JSON numbers decode as float64; json.Number is handled for transports
// that decode with UseNumber.
func frameID(frame map[string]any) (int64, bool) {
	switch v := frame["id"].(type) {
	case float64:
		return int64(v), true
	case json.Number:
		id, err := v.Int64()
		if err != nil {
			return 0, false
		}

		return id, true
	default:
		return 0, false
	}
}

// frameError extracts the error field from a decoded frame.
// Presence of a non-null error takes precedence over any result.
func frameError(frame map[string]any) (string, bool) {
	raw, present := frame["error"]
	if !present || raw == nil {
		return "", false
	}

	if s, ok := raw.(string); ok {
		return s, true
	}

	// Non-string error payloads are preserved as their JSON rendering.
	data, err := json.Marshal(raw)
	if err != nil {
		return "unknown error", true
	}

	return string(data), true
}
