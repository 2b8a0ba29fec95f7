// Package hooks defines the hook input contract between Claude Code and
// ccnotify: event kinds, payload schema, and validation.
package hooks

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// Event is a hook event kind, matching both the CLI token and the
// payload's hook_event_name field.
type Event string

// Hook events ccnotify subscribes to.
const (
	EventPromptSubmit Event = "UserPromptSubmit"
	EventStop         Event = "Stop"
	EventNotification Event = "Notification"
)

// Events lists all recognized events in documentation order.
var Events = []Event{EventPromptSubmit, EventStop, EventNotification}

// ParseEvent maps a CLI token to an Event.
func ParseEvent(token string) (Event, error) {
	for _, e := range Events {
		if token == string(e) {
			return e, nil
		}
	}
	names := make([]string, len(Events))
	for i, e := range Events {
		names[i] = string(e)
	}
	return "", fmt.Errorf("invalid hook type: %s (valid: %s)", token, strings.Join(names, ", "))
}

// Payload is the JSON document delivered on stdin. Pointer fields
// distinguish absent from empty: validation requires presence, while an
// empty session_id is a business-level skip handled downstream.
type Payload struct {
	SessionID     *string `json:"session_id"`
	Prompt        *string `json:"prompt"`
	CWD           *string `json:"cwd"`
	Message       *string `json:"message"`
	HookEventName *string `json:"hook_event_name"`
}

// requiredFields mirrors the hook schema per event.
var requiredFields = map[Event][]string{
	EventPromptSubmit: {"session_id", "prompt", "cwd", "hook_event_name"},
	EventStop:         {"session_id", "hook_event_name"},
	EventNotification: {"session_id", "message", "hook_event_name"},
}

// Decode parses a payload document.
func Decode(data []byte) (*Payload, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	return &p, nil
}

// Validate checks the payload against the expected event's schema: the
// event-name field must equal expected and every required field must be
// present. Any violation fails the whole invocation before mutation.
func (p *Payload) Validate(expected Event) error {
	required, ok := requiredFields[expected]
	if !ok {
		return fmt.Errorf("unknown event type: %s", expected)
	}

	if p.HookEventName == nil || *p.HookEventName != string(expected) {
		got := "<missing>"
		if p.HookEventName != nil {
			got = *p.HookEventName
		}
		return fmt.Errorf("event name mismatch: expected %s, got %s", expected, got)
	}

	var missing []string
	for _, field := range required {
		if !p.has(field) {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields for %s: %s", expected, strings.Join(missing, ", "))
	}
	return nil
}

func (p *Payload) has(field string) bool {
	switch field {
	case "session_id":
		return p.SessionID != nil
	case "prompt":
		return p.Prompt != nil
	case "cwd":
		return p.CWD != nil
	case "message":
		return p.Message != nil
	case "hook_event_name":
		return p.HookEventName != nil
	}
	return false
}

// Str returns the value of an optional string field, or "".
func Str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Process exit codes for hook invocations.
const (
	ExitSuccess = 0
	ExitFailure = 1
)
