package tracker

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/thebtf/ccnotify/internal/db/sqlite"
	"github.com/thebtf/ccnotify/internal/duration"
	"github.com/thebtf/ccnotify/internal/i18n"
	"github.com/thebtf/ccnotify/internal/notify"
	"github.com/thebtf/ccnotify/pkg/hooks"
)

// Dispatcher is the notification side of the processor: Send reports
// delivery, never failing the invocation.
type Dispatcher interface {
	Send(ctx context.Context, n notify.Notification) bool
}

// Processor handles one hook event per process invocation.
type Processor struct {
	prompts    *sqlite.PromptStore
	dispatcher Dispatcher
	fmtr       *duration.Formatter
	tr         *i18n.Translator
	log        zerolog.Logger
	now        func() time.Time
}

// New creates a Processor. All collaborators are passed explicitly so
// tests can substitute fakes.
func New(prompts *sqlite.PromptStore, dispatcher Dispatcher, fmtr *duration.Formatter, tr *i18n.Translator, log zerolog.Logger) *Processor {
	return &Processor{
		prompts:    prompts,
		dispatcher: dispatcher,
		fmtr:       fmtr,
		tr:         tr,
		log:        log,
		now:        time.Now,
	}
}

// Handle validates the payload against the expected event's schema and
// routes it. Validation failure is the only error returned; storage and
// notification failures are logged and absorbed here.
func (p *Processor) Handle(ctx context.Context, event hooks.Event, payload *hooks.Payload) error {
	if err := payload.Validate(event); err != nil {
		return fmt.Errorf("validate %s: %w", event, err)
	}

	switch event {
	case hooks.EventPromptSubmit:
		p.handlePromptSubmit(ctx, payload)
	case hooks.EventStop:
		p.handleStop(ctx, payload)
	case hooks.EventNotification:
		p.handleNotification(ctx, payload)
	}
	return nil
}

// handlePromptSubmit records a new timeline entry. No notification.
func (p *Processor) handlePromptSubmit(ctx context.Context, payload *hooks.Payload) {
	sessionID := hooks.Str(payload.SessionID)

	err := p.prompts.RecordPromptSubmitted(ctx, sessionID, hooks.Str(payload.Prompt), hooks.Str(payload.CWD))
	switch {
	case err == sqlite.ErrNoSession:
		p.log.Warn().Msg("missing required field: session_id")
	case err != nil:
		p.log.Error().Err(err).Str("session_id", sessionID).Msg("failed to record prompt")
	default:
		p.log.Info().Str("session_id", sessionID).Msg("recorded prompt")
	}
}

// handleStop closes the session's most recent open record and announces
// completion. A session with no open record stays silent. A storage
// failure still notifies, with best-effort defaults.
func (p *Processor) handleStop(ctx context.Context, payload *hooks.Payload) {
	sessionID := hooks.Str(payload.SessionID)

	result, found, err := p.prompts.MarkStopped(ctx, sessionID)
	if err == sqlite.ErrNoSession {
		p.log.Warn().Msg("missing required field: session_id")
		return
	}
	if err != nil {
		p.log.Error().Err(err).Str("session_id", sessionID).Msg("failed to mark stopped")
		// Best effort: the task did finish even if the timeline write
		// was lost.
		p.notify(ctx, "", p.subtitleTaskComplete(1, p.fmtr.Unknown()))
		return
	}
	if !found {
		p.log.Debug().Str("session_id", sessionID).Msg("no open record for session")
		return
	}

	formatted := p.fmtr.Unknown()
	if result.HasElapsed {
		formatted = p.fmtr.Format(result.Elapsed)
	}
	p.notify(ctx, result.CWD, p.subtitleTaskComplete(result.Seq, formatted))
	p.log.Info().
		Str("session_id", sessionID).
		Int("seq", result.Seq).
		Str("duration", formatted).
		Msg("task completed")
}

// handleNotification classifies the message, stamps the waiting marker
// when applicable, and always notifies unless the message is empty.
func (p *Processor) handleNotification(ctx context.Context, payload *hooks.Payload) {
	sessionID := hooks.Str(payload.SessionID)
	message := hooks.Str(payload.Message)

	p.log.Info().Str("session_id", sessionID).Str("message", message).Msg("notification event")

	if message == "" {
		p.log.Warn().Str("session_id", sessionID).Msg("skipping notification with empty message")
		return
	}

	kind := Classify(message)
	if kind == KindWaiting {
		err := p.prompts.MarkWaitingForInput(ctx, sessionID)
		switch {
		case err == sqlite.ErrNoSession:
			p.log.Warn().Msg("missing required field: session_id")
		case err != nil:
			p.log.Error().Err(err).Str("session_id", sessionID).Msg("failed to update wait marker")
		default:
			p.log.Info().Str("session_id", sessionID).Msg("updated last_wait_user_at")
		}
	}

	subtitle := p.tr.T(kind.SubtitleKey(), nil)
	p.notify(ctx, hooks.Str(payload.CWD), subtitle)
	p.log.Info().
		Str("session_id", sessionID).
		Stringer("kind", kind).
		Msg("notification dispatched")
}

// notify composes the notification (title from the working directory's
// basename, body with a localized timestamp line) and hands it to the
// dispatcher.
func (p *Processor) notify(ctx context.Context, cwd, subtitle string) {
	title := p.tr.T("notification.default_title", nil)
	if cwd != "" {
		title = filepath.Base(cwd)
	}

	body := subtitle + "\n" + p.now().Format(p.tr.T("time.layout", nil))
	p.dispatcher.Send(ctx, notify.Notification{Title: title, Message: body, CWD: cwd})
}

func (p *Processor) subtitleTaskComplete(seq int, formatted string) string {
	return p.tr.T("notification.task_complete", map[string]string{
		"seq":      strconv.Itoa(seq),
		"duration": formatted,
	})
}
