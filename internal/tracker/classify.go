// Package tracker is the per-event entry point: it validates payloads,
// drives the prompt timeline, and triggers notification dispatch.
package tracker

import "strings"

// Kind classifies an incoming Notification event's message.
type Kind int

// Classification outcomes, in matching precedence order.
const (
	KindWaiting Kind = iota
	KindPermissionRequired
	KindActionRequired
	KindGeneric
)

// Classify buckets a message by case-insensitive substring match,
// first match wins. A message containing both "permission" and
// "waiting for input" is therefore Waiting.
func Classify(message string) Kind {
	m := strings.ToLower(message)
	switch {
	case strings.Contains(m, "waiting for your input") || strings.Contains(m, "waiting for input"):
		return KindWaiting
	case strings.Contains(m, "permission"):
		return KindPermissionRequired
	case strings.Contains(m, "approval") || strings.Contains(m, "choose an option"):
		return KindActionRequired
	default:
		return KindGeneric
	}
}

// SubtitleKey returns the catalog key for the kind's notification
// subtitle.
func (k Kind) SubtitleKey() string {
	switch k {
	case KindWaiting:
		return "notification.waiting_input"
	case KindPermissionRequired:
		return "notification.permission_required"
	case KindActionRequired:
		return "notification.action_required"
	default:
		return "notification.generic"
	}
}

// String returns the kind name for logs.
func (k Kind) String() string {
	switch k {
	case KindWaiting:
		return "waiting"
	case KindPermissionRequired:
		return "permission_required"
	case KindActionRequired:
		return "action_required"
	default:
		return "generic"
	}
}
