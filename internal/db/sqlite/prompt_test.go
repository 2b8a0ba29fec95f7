package sqlite

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPromptStore(t *testing.T) (*PromptStore, *Store) {
	t.Helper()

	store := testStore(t)
	return NewPromptStore(store), store
}

func TestPromptStore_RecordPromptSubmitted(t *testing.T) {
	prompts, store := testPromptStore(t)
	ctx := context.Background()

	err := prompts.RecordPromptSubmitted(ctx, "s1", "fix the bug", "/tmp/proj")
	require.NoError(t, err)

	records, err := prompts.GetBySession(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].Seq)
	assert.Equal(t, "fix the bug", records[0].Prompt)
	assert.Equal(t, "/tmp/proj", records[0].CWD)
	assert.True(t, records[0].Open())

	var count int
	err = store.QueryRowContext(ctx, `SELECT COUNT(*) FROM prompt`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPromptStore_RecordPromptSubmitted_EmptySession(t *testing.T) {
	prompts, store := testPromptStore(t)
	ctx := context.Background()

	err := prompts.RecordPromptSubmitted(ctx, "", "text", "/tmp")
	assert.ErrorIs(t, err, ErrNoSession)

	var count int
	require.NoError(t, store.QueryRowContext(ctx, `SELECT COUNT(*) FROM prompt`).Scan(&count))
	assert.Equal(t, 0, count)
}

// TestPromptStore_SeqPerSession: N submissions per session yield exactly
// {1..N} regardless of interleaving with other sessions.
func TestPromptStore_SeqPerSession(t *testing.T) {
	prompts, _ := testPromptStore(t)
	ctx := context.Background()

	order := []string{"a", "b", "a", "c", "b", "a", "c", "a"}
	for _, session := range order {
		require.NoError(t, prompts.RecordPromptSubmitted(ctx, session, "p", ""))
	}

	wantCounts := map[string]int{"a": 4, "b": 2, "c": 2}
	for session, n := range wantCounts {
		records, err := prompts.GetBySession(ctx, session)
		require.NoError(t, err)
		require.Len(t, records, n)
		for i, rec := range records {
			assert.Equal(t, i+1, rec.Seq, "session %s", session)
		}
	}
}

// TestPromptStore_SeqConcurrent races writers on one session; the
// transaction around max-lookup and insert must keep seq values dense
// and unique.
func TestPromptStore_SeqConcurrent(t *testing.T) {
	prompts, _ := testPromptStore(t)
	ctx := context.Background()

	const writers = 10
	var wg sync.WaitGroup
	errs := make(chan error, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- prompts.RecordPromptSubmitted(ctx, "hot", "p", "")
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	records, err := prompts.GetBySession(ctx, "hot")
	require.NoError(t, err)
	require.Len(t, records, writers)

	seen := make(map[int]bool)
	for _, rec := range records {
		assert.False(t, seen[rec.Seq], "duplicate seq %d", rec.Seq)
		seen[rec.Seq] = true
		assert.GreaterOrEqual(t, rec.Seq, 1)
		assert.LessOrEqual(t, rec.Seq, writers)
	}
}

func TestPromptStore_MarkStopped(t *testing.T) {
	prompts, _ := testPromptStore(t)
	ctx := context.Background()

	require.NoError(t, prompts.RecordPromptSubmitted(ctx, "s1", "hi", "/tmp/proj"))

	result, found, err := prompts.MarkStopped(ctx, "s1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 1, result.Seq)
	assert.Equal(t, "/tmp/proj", result.CWD)
	assert.True(t, result.HasElapsed)
	assert.GreaterOrEqual(t, result.Elapsed, time.Duration(0))

	records, err := prompts.GetBySession(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, records[0].Open())
}

// TestPromptStore_MarkStopped_Idempotent: a second stop for a session
// whose only record is closed performs no mutation and reports found=false.
func TestPromptStore_MarkStopped_Idempotent(t *testing.T) {
	prompts, _ := testPromptStore(t)
	ctx := context.Background()

	require.NoError(t, prompts.RecordPromptSubmitted(ctx, "s1", "hi", ""))

	_, found, err := prompts.MarkStopped(ctx, "s1")
	require.NoError(t, err)
	require.True(t, found)

	records, err := prompts.GetBySession(ctx, "s1")
	require.NoError(t, err)
	stoppedAt := records[0].StoppedAt.String

	_, found, err = prompts.MarkStopped(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, found)

	records, err = prompts.GetBySession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, stoppedAt, records[0].StoppedAt.String, "stopped_at must never be overwritten")
}

// TestPromptStore_MarkStopped_ClosesMostRecentOpen: with two open
// records, only the newest is closed; the older stays open.
func TestPromptStore_MarkStopped_ClosesMostRecentOpen(t *testing.T) {
	prompts, store := testPromptStore(t)
	ctx := context.Background()

	// Insert directly to control creation order deterministically.
	insert := func(seq int, epoch int64) {
		_, err := store.ExecContext(ctx,
			`INSERT INTO prompt (session_id, created_at, created_at_epoch, prompt, cwd, seq)
			 VALUES ('s1', ?, ?, 'p', '/w', ?)`,
			time.UnixMilli(epoch).Format(time.RFC3339), epoch, seq)
		require.NoError(t, err)
	}
	base := time.Now().UnixMilli()
	insert(1, base-10_000)
	insert(2, base-1_000)

	result, found, err := prompts.MarkStopped(ctx, "s1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, 2, result.Seq)

	records, err := prompts.GetBySession(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, records[0].Open(), "older open record stays open")
	assert.False(t, records[1].Open())
}

func TestPromptStore_MarkStopped_NoRecords(t *testing.T) {
	prompts, _ := testPromptStore(t)

	_, found, err := prompts.MarkStopped(context.Background(), "ghost")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestPromptStore_MarkWaitingForInput(t *testing.T) {
	prompts, _ := testPromptStore(t)
	ctx := context.Background()

	require.NoError(t, prompts.RecordPromptSubmitted(ctx, "s1", "hi", ""))
	require.NoError(t, prompts.MarkWaitingForInput(ctx, "s1"))

	records, err := prompts.GetBySession(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, records[0].LastWaitUserAt.Valid)
}

// TestPromptStore_MarkWaitingForInput_ClosedRecord: the wait marker
// lands on the most recent record even when it is already stopped.
func TestPromptStore_MarkWaitingForInput_ClosedRecord(t *testing.T) {
	prompts, _ := testPromptStore(t)
	ctx := context.Background()

	require.NoError(t, prompts.RecordPromptSubmitted(ctx, "s1", "hi", ""))
	_, _, err := prompts.MarkStopped(ctx, "s1")
	require.NoError(t, err)

	require.NoError(t, prompts.MarkWaitingForInput(ctx, "s1"))

	records, err := prompts.GetBySession(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, records[0].LastWaitUserAt.Valid)
}

func TestPromptStore_MarkWaitingForInput_NoRecords(t *testing.T) {
	prompts, _ := testPromptStore(t)

	// No rows for the session is a silent no-op.
	require.NoError(t, prompts.MarkWaitingForInput(context.Background(), "ghost"))
}

func TestPromptStore_Elapsed(t *testing.T) {
	prompts, _ := testPromptStore(t)
	ctx := context.Background()

	require.NoError(t, prompts.RecordPromptSubmitted(ctx, "s1", "hi", ""))
	records, err := prompts.GetBySession(ctx, "s1")
	require.NoError(t, err)
	id := records[0].ID

	// Still open.
	_, ok, err := prompts.Elapsed(ctx, id)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = prompts.MarkStopped(ctx, "s1")
	require.NoError(t, err)

	elapsed, ok, err := prompts.Elapsed(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.GreaterOrEqual(t, elapsed, time.Duration(0))

	// Unknown record.
	_, ok, err = prompts.Elapsed(ctx, 99999)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPromptStore_NilReceiver(t *testing.T) {
	var prompts *PromptStore
	ctx := context.Background()

	assert.ErrorIs(t, prompts.RecordPromptSubmitted(ctx, "s1", "", ""), ErrUnavailable)
	_, _, err := prompts.MarkStopped(ctx, "s1")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, prompts.MarkWaitingForInput(ctx, "s1"), ErrUnavailable)
}
