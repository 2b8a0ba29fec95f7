// Package models contains domain models for ccnotify.
package models

import "database/sql"

// PromptRecord is one tracked unit of work within a session, spanning
// prompt submission to completion.
type PromptRecord struct {
	SessionID      string         `db:"session_id" json:"session_id"`
	Prompt         string         `db:"prompt" json:"prompt"`
	CWD            string         `db:"cwd" json:"cwd"`
	CreatedAt      string         `db:"created_at" json:"created_at"`
	StoppedAt      sql.NullString `db:"stopped_at" json:"stopped_at"`
	LastWaitUserAt sql.NullString `db:"last_wait_user_at" json:"last_wait_user_at"`
	ID             int64          `db:"id" json:"id"`
	Seq            int            `db:"seq" json:"seq"`
	CreatedAtEpoch int64          `db:"created_at_epoch" json:"created_at_epoch"`
}

// Open reports whether the record has not yet been stopped.
func (r *PromptRecord) Open() bool {
	return !r.StoppedAt.Valid
}
