package hooks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEvent(t *testing.T) {
	for _, e := range Events {
		got, err := ParseEvent(string(e))
		require.NoError(t, err)
		assert.Equal(t, e, got)
	}

	_, err := ParseEvent("PostToolUse")
	assert.Error(t, err)
	_, err = ParseEvent("")
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	p, err := Decode([]byte(`{"session_id":"s1","prompt":"hi","cwd":"/tmp/proj","hook_event_name":"UserPromptSubmit"}`))
	require.NoError(t, err)
	assert.Equal(t, "s1", Str(p.SessionID))
	assert.Equal(t, "hi", Str(p.Prompt))
	assert.Equal(t, "/tmp/proj", Str(p.CWD))
	assert.Nil(t, p.Message)

	_, err = Decode([]byte(`{not json`))
	assert.Error(t, err)
}

func TestPayload_Validate(t *testing.T) {
	s := func(v string) *string { return &v }

	tests := []struct {
		name    string
		payload Payload
		event   Event
		wantErr string
	}{
		{
			name: "valid prompt submit",
			payload: Payload{
				SessionID: s("s1"), Prompt: s("hi"), CWD: s("/w"),
				HookEventName: s("UserPromptSubmit"),
			},
			event: EventPromptSubmit,
		},
		{
			name: "valid stop",
			payload: Payload{
				SessionID: s("s1"), HookEventName: s("Stop"),
			},
			event: EventStop,
		},
		{
			name: "valid notification",
			payload: Payload{
				SessionID: s("s1"), Message: s("waiting"), HookEventName: s("Notification"),
			},
			event: EventNotification,
		},
		{
			name: "empty strings are present",
			payload: Payload{
				SessionID: s(""), Prompt: s(""), CWD: s(""),
				HookEventName: s("UserPromptSubmit"),
			},
			event: EventPromptSubmit,
		},
		{
			name: "event name mismatch",
			payload: Payload{
				SessionID: s("s1"), HookEventName: s("UserPromptSubmit"),
			},
			event:   EventStop,
			wantErr: "event name mismatch",
		},
		{
			name: "missing event name",
			payload: Payload{
				SessionID: s("s1"),
			},
			event:   EventStop,
			wantErr: "event name mismatch",
		},
		{
			name: "missing fields listed",
			payload: Payload{
				HookEventName: s("UserPromptSubmit"),
			},
			event:   EventPromptSubmit,
			wantErr: "missing required fields for UserPromptSubmit",
		},
		{
			name: "notification requires message",
			payload: Payload{
				SessionID: s("s1"), HookEventName: s("Notification"),
			},
			event:   EventNotification,
			wantErr: "missing required fields for Notification: message",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.payload.Validate(tt.event)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
