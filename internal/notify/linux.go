package notify

import (
	"context"
	"time"
)

// linuxDisplayTimeoutMS is how long notify-send keeps the notification
// on screen.
const linuxDisplayTimeoutMS = "10000"

// LinuxSender delivers via notify-send (libnotify).
type LinuxSender struct {
	timeout time.Duration
}

// NewLinuxSender creates the Linux native strategy.
func NewLinuxSender(timeout time.Duration) *LinuxSender {
	return &LinuxSender{timeout: timeout}
}

// Name implements Sender.
func (s *LinuxSender) Name() string { return "notify-send" }

// Send implements Sender.
func (s *LinuxSender) Send(ctx context.Context, n Notification) error {
	return runNotifier(ctx, s.timeout, "notify-send",
		n.Title, n.Message, "-u", "normal", "-t", linuxDisplayTimeoutMS)
}
