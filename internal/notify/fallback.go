package notify

import (
	"context"
	"fmt"

	"github.com/gen2brain/beeep"
)

// FallbackSender delivers through the cross-platform beeep library. It
// supports no click action. The library links statically, so unlike an
// optional runtime dependency its absence cannot be detected up front;
// a disabled sender stands in for that case.
type FallbackSender struct {
	enabled bool
}

// NewFallbackSender creates the library-backed strategy.
func NewFallbackSender() *FallbackSender {
	beeep.AppName = "CCNotify"
	return &FallbackSender{enabled: true}
}

// newDisabledFallback is used by tests to simulate a missing library.
func newDisabledFallback() *FallbackSender {
	return &FallbackSender{enabled: false}
}

// Name implements Sender.
func (s *FallbackSender) Name() string { return "beeep" }

// Send implements Sender.
func (s *FallbackSender) Send(ctx context.Context, n Notification) error {
	if !s.enabled {
		return fmt.Errorf("beeep unavailable")
	}
	if err := beeep.Notify(n.Title, n.Message, ""); err != nil {
		return fmt.Errorf("beeep: %w", err)
	}
	return nil
}
