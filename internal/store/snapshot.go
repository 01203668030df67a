package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// snapshotRepo implements SnapshotRepo over the snapshots table.
type snapshotRepo struct {
	db *sql.DB
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}

	query, args := builder().Insert(tableSnapshots).
		Columns(colSequence, colTimestamp, "data").
		Values(snap.Sequence, snap.Timestamp.UTC(), string(data)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	b := builder()
	query, args := b.Select(colID, colSequence, colTimestamp, "data").
		From(b.Table(tableSnapshots)).
		OrderBy(entsql.Desc(colTimestamp), entsql.Desc(colID)).
		Limit(1).
		Query()

	var (
		snap Snapshot
		raw  string
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&snap.ID, &snap.Sequence, &snap.Timestamp, &raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &snap.Data); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot data: %w", err)
	}
	return &snap, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, keep int) error {
	b := builder()
	newest := b.Select(colID).
		From(b.Table(tableSnapshots)).
		OrderBy(entsql.Desc(colTimestamp), entsql.Desc(colID)).
		Limit(keep)

	query, args := b.Delete(tableSnapshots).Where(entsql.NotIn(colID, newest)).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
