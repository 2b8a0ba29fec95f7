package notify

import (
	"context"
	"fmt"
	"time"
)

// DarwinSender delivers via terminal-notifier. When the notification
// carries a cwd and an editor was resolved, clicking the notification
// opens the directory in that editor.
type DarwinSender struct {
	editor  string
	timeout time.Duration
}

// NewDarwinSender creates the macOS native strategy.
func NewDarwinSender(editor string, timeout time.Duration) *DarwinSender {
	return &DarwinSender{editor: editor, timeout: timeout}
}

// Name implements Sender.
func (s *DarwinSender) Name() string { return "terminal-notifier" }

// Send implements Sender.
func (s *DarwinSender) Send(ctx context.Context, n Notification) error {
	args := []string{
		"-sound", "default",
		"-title", n.Title,
		"-message", n.Message,
	}
	if n.CWD != "" && s.editor != "" {
		args = append(args, "-execute", fmt.Sprintf("%s %q", s.editor, n.CWD))
	}
	return runNotifier(ctx, s.timeout, "terminal-notifier", args...)
}
