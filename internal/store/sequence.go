package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// sequenceCounter hands out one monotonic sequence shared by every event
// table, so events of different kinds can be ordered against each other
// and against a snapshot's sequence.
//
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic in the database.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next returns the next sequence number and advances the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// Current returns the last sequence handed out, or 0 if none.
func (sc *sequenceCounter) Current(ctx context.Context) (int64, error) {
	var next int64
	err := sc.db.QueryRowContext(ctx, `SELECT next_val FROM global_sequence WHERE id = 1`).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("read sequence: %w", err)
	}
	return next - 1, nil
}
