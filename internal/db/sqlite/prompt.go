package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/thebtf/ccnotify/pkg/models"
)

// ErrNoSession is returned when a mutation arrives without a session ID.
var ErrNoSession = errors.New("missing session_id")

// ErrUnavailable is returned when the backing store could not be opened.
// Callers treat it like any other storage failure: log and move on.
var ErrUnavailable = errors.New("store unavailable")

// PromptStore owns the prompt timeline: one row per submitted prompt,
// sequenced per session.
type PromptStore struct {
	store *Store
}

// NewPromptStore creates a new prompt store.
func NewPromptStore(store *Store) *PromptStore {
	return &PromptStore{store: store}
}

// StopResult describes the record closed by MarkStopped.
type StopResult struct {
	Seq        int
	CWD        string
	Elapsed    time.Duration
	HasElapsed bool
}

// RecordPromptSubmitted inserts a new timeline record. The seq ordinal is
// computed and committed in one transaction so two invocations racing on
// the same session cannot be assigned the same value. The original
// implementation did this with an AFTER INSERT trigger; an explicit
// transaction keeps the invariant visible and testable.
func (s *PromptStore) RecordPromptSubmitted(ctx context.Context, sessionID, prompt, cwd string) error {
	if s == nil || s.store == nil {
		return ErrUnavailable
	}
	if sessionID == "" {
		return ErrNoSession
	}

	return s.store.RetryBusy(ctx, func() error {
		tx, err := s.store.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		var seq int
		const seqQuery = `SELECT COALESCE(MAX(seq), 0) + 1 FROM prompt WHERE session_id = ?`
		if err := tx.QueryRowContext(ctx, seqQuery, sessionID).Scan(&seq); err != nil {
			return err
		}

		now := time.Now()
		const insertQuery = `
			INSERT INTO prompt (session_id, created_at, created_at_epoch, prompt, cwd, seq)
			VALUES (?, ?, ?, ?, ?, ?)
		`
		if _, err := tx.ExecContext(ctx, insertQuery,
			sessionID, now.Format(time.RFC3339), now.UnixMilli(), prompt, cwd, seq,
		); err != nil {
			return err
		}

		return tx.Commit()
	})
}

// MarkStopped closes the most recently created open record for the
// session and reports its seq, cwd, and elapsed time. Sessions with no
// open record return found=false and mutate nothing; older open records,
// if any, stay open. A stopped_at already set is never overwritten.
func (s *PromptStore) MarkStopped(ctx context.Context, sessionID string) (StopResult, bool, error) {
	if s == nil || s.store == nil {
		return StopResult{}, false, ErrUnavailable
	}
	if sessionID == "" {
		return StopResult{}, false, ErrNoSession
	}

	var result StopResult
	found := false

	err := s.store.RetryBusy(ctx, func() error {
		tx, err := s.store.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer tx.Rollback()

		const selectQuery = `
			SELECT id, seq, cwd, created_at_epoch
			FROM prompt
			WHERE session_id = ? AND stopped_at IS NULL
			ORDER BY created_at_epoch DESC, id DESC
			LIMIT 1
		`
		var (
			id           int64
			seq          int
			cwd          sql.NullString
			createdEpoch int64
		)
		err = tx.QueryRowContext(ctx, selectQuery, sessionID).Scan(&id, &seq, &cwd, &createdEpoch)
		if err == sql.ErrNoRows {
			return tx.Commit()
		}
		if err != nil {
			return err
		}

		now := time.Now()
		const updateQuery = `UPDATE prompt SET stopped_at = ? WHERE id = ? AND stopped_at IS NULL`
		if _, err := tx.ExecContext(ctx, updateQuery, now.Format(time.RFC3339), id); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return err
		}

		result = StopResult{
			Seq:        seq,
			CWD:        cwd.String,
			Elapsed:    now.Sub(time.UnixMilli(createdEpoch)),
			HasElapsed: true,
		}
		found = true
		return nil
	})

	return result, found, err
}

// MarkWaitingForInput stamps last_wait_user_at on the most recently
// created record for the session, open or closed. No-op when the
// session has no records.
func (s *PromptStore) MarkWaitingForInput(ctx context.Context, sessionID string) error {
	if s == nil || s.store == nil {
		return ErrUnavailable
	}
	if sessionID == "" {
		return ErrNoSession
	}

	return s.store.RetryBusy(ctx, func() error {
		const query = `
			UPDATE prompt
			SET last_wait_user_at = ?
			WHERE id = (
				SELECT id FROM prompt
				WHERE session_id = ?
				ORDER BY created_at_epoch DESC, id DESC
				LIMIT 1
			)
		`
		_, err := s.store.ExecContext(ctx, query, time.Now().Format(time.RFC3339), sessionID)
		return err
	})
}

// Elapsed returns the time a record ran, or ok=false when the record is
// missing, still open, or has an unparseable stop timestamp.
func (s *PromptStore) Elapsed(ctx context.Context, id int64) (time.Duration, bool, error) {
	if s == nil || s.store == nil {
		return 0, false, ErrUnavailable
	}
	const query = `SELECT created_at_epoch, stopped_at FROM prompt WHERE id = ?`

	var (
		createdEpoch int64
		stoppedAt    sql.NullString
	)
	err := s.store.QueryRowContext(ctx, query, id).Scan(&createdEpoch, &stoppedAt)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	if !stoppedAt.Valid {
		return 0, false, nil
	}

	stopped, err := time.Parse(time.RFC3339, stoppedAt.String)
	if err != nil {
		return 0, false, nil
	}
	return stopped.Sub(time.UnixMilli(createdEpoch)), true, nil
}

// GetBySession returns all records for a session ordered by seq.
func (s *PromptStore) GetBySession(ctx context.Context, sessionID string) ([]*models.PromptRecord, error) {
	const query = `
		SELECT id, session_id, created_at, created_at_epoch, prompt, cwd, seq,
		       stopped_at, last_wait_user_at
		FROM prompt
		WHERE session_id = ?
		ORDER BY seq ASC
	`

	rows, err := s.store.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.PromptRecord
	for rows.Next() {
		var (
			rec    models.PromptRecord
			prompt sql.NullString
			cwd    sql.NullString
		)
		if err := rows.Scan(
			&rec.ID, &rec.SessionID, &rec.CreatedAt, &rec.CreatedAtEpoch,
			&prompt, &cwd, &rec.Seq, &rec.StoppedAt, &rec.LastWaitUserAt,
		); err != nil {
			return nil, err
		}
		rec.Prompt = prompt.String
		rec.CWD = cwd.String
		records = append(records, &rec)
	}
	return records, rows.Err()
}
