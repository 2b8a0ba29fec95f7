package notify

import (
	"context"
	"runtime"
	"time"

	"github.com/rs/zerolog"
)

// maxAttempts is how many times one strategy is tried before the chain
// moves on: the first attempt plus two retries.
const maxAttempts = 3

// backoffDelays are the waits between attempts on one strategy.
var backoffDelays = [maxAttempts - 1]time.Duration{500 * time.Millisecond, time.Second}

// installHint is logged once when every strategy in the chain is
// exhausted.
const installHint = "macOS: 'brew install terminal-notifier', Linux: 'sudo apt install libnotify-bin'"

// Dispatcher tries the platform's strategies in order, retrying each
// with backoff, and stops at the first success. It never returns an
// error to its caller; a fully failed dispatch is a logged warning.
type Dispatcher struct {
	chain []Sender
	log   zerolog.Logger
	sleep func(time.Duration)
}

// Options configures dispatcher construction.
type Options struct {
	// Platform is a GOOS value; empty means runtime.GOOS.
	Platform string
	// Editor is the click-action binary for the macOS strategy.
	Editor string
	// Timeout bounds each external notifier invocation.
	Timeout time.Duration
	Logger  zerolog.Logger
}

// NewDispatcher builds the strategy chain for the platform:
// darwin and linux prefer their native notifier with the library as
// fallback; windows prefers the library (more reliable there) with the
// PowerShell toast as fallback; anything else gets the library only.
func NewDispatcher(opts Options) *Dispatcher {
	platform := opts.Platform
	if platform == "" {
		platform = runtime.GOOS
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	fallback := NewFallbackSender()

	var chain []Sender
	switch platform {
	case "darwin":
		chain = []Sender{NewDarwinSender(opts.Editor, timeout), fallback}
	case "linux":
		chain = []Sender{NewLinuxSender(timeout), fallback}
	case "windows":
		chain = []Sender{fallback, NewWindowsSender(timeout)}
	default:
		chain = []Sender{fallback}
	}

	return &Dispatcher{chain: chain, log: opts.Logger, sleep: time.Sleep}
}

// Send dispatches the notification through the chain. It returns true
// when some strategy delivered, false when the send was skipped for
// blank content or every strategy exhausted its retries.
func (d *Dispatcher) Send(ctx context.Context, n Notification) bool {
	if n.Title == "" || n.Message == "" {
		d.log.Warn().
			Str("title", n.Title).
			Str("message", n.Message).
			Msg("skipping notification with blank content")
		return false
	}

	for _, sender := range d.chain {
		if d.trySender(ctx, sender, n) {
			return true
		}
	}

	d.log.Warn().
		Str("title", n.Title).
		Str("message", n.Message).
		Str("hint", installHint).
		Msg("all notification methods failed")
	return false
}

// trySender attempts one strategy with retry and backoff, returning on
// the first success.
func (d *Dispatcher) trySender(ctx context.Context, sender Sender, n Notification) bool {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := d.send(ctx, sender, n)
		if err == nil {
			d.log.Info().
				Str("sender", sender.Name()).
				Str("title", n.Title).
				Msg("notification sent")
			return true
		}

		d.log.Warn().
			Err(err).
			Str("sender", sender.Name()).
			Int("attempt", attempt).
			Msg("notification attempt failed")

		if attempt < maxAttempts {
			d.sleep(backoffDelays[attempt-1])
		}
	}
	return false
}

// send invokes the strategy, converting a panic into a failed attempt so
// a misbehaving sender cannot take down the dispatch.
func (d *Dispatcher) send(ctx context.Context, sender Sender, n Notification) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &senderPanicError{sender: sender.Name(), value: r}
		}
	}()
	return sender.Send(ctx, n)
}

type senderPanicError struct {
	sender string
	value  interface{}
}

func (e *senderPanicError) Error() string {
	return "sender " + e.sender + " panicked"
}
