// Package notify delivers desktop notifications through per-platform
// strategies with ordered fallback and bounded retry.
package notify

import "context"

// Notification is one desktop notification to deliver.
type Notification struct {
	Title   string
	Message string
	// CWD, when set, becomes the click action: open the directory in
	// the resolved editor. Only the macOS strategy supports it.
	CWD string
}

// Sender is one concrete delivery mechanism. Implementations convert
// every failure into an error; they never panic past this boundary.
type Sender interface {
	Name() string
	Send(ctx context.Context, n Notification) error
}
