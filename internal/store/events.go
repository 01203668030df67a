package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo on top of the SQL builder and the global
// sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

// insert assigns the next sequence and current time to a new row in table.
func (r *eventRepo) insert(ctx context.Context, table string, cols []string, vals []any, opts ...entsql.ConflictOption) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ins := builder().Insert(table).
		Columns(append([]string{colSequence, colTimestamp}, cols...)...).
		Values(append([]any{seqNum, time.Now().UTC()}, vals...)...)
	if len(opts) > 0 {
		ins = ins.OnConflict(opts...)
	}

	query, args := ins.Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return nil
}

// selectEvents builds a newest-first select over table honoring opts.
func selectEvents(table string, opts QueryOpts, cols ...string) *entsql.Selector {
	b := builder()
	sel := b.Select(append([]string{colSequence, colTimestamp}, cols...)...).
		From(b.Table(table)).
		OrderBy(entsql.Desc(colSequence))

	if opts.After > 0 {
		sel = sel.Where(entsql.GT(colSequence, opts.After))
	}
	if opts.Before > 0 {
		sel = sel.Where(entsql.LT(colSequence, opts.Before))
	}
	if !opts.From.IsZero() {
		sel = sel.Where(entsql.GTE(colTimestamp, opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		sel = sel.Where(entsql.LTE(colTimestamp, opts.To.UTC()))
	}
	if opts.Limit > 0 {
		sel = sel.Limit(opts.Limit)
	}
	return sel
}

func (r *eventRepo) query(ctx context.Context, sel *entsql.Selector) (*sql.Rows, error) {
	query, args := sel.Query()
	return r.db.QueryContext(ctx, query, args...)
}

func (r *eventRepo) LastSequence(ctx context.Context) (int64, error) {
	return r.seq.Current(ctx)
}

func (r *eventRepo) AppendPointsEvent(ctx context.Context, data PointsEventData) error {
	err := r.insert(ctx, tablePoints,
		[]string{"amount", "reason", "points_after", "level_after"},
		[]any{data.Amount, data.Reason, data.PointsAfter, data.LevelAfter},
	)
	if err != nil {
		return fmt.Errorf("save points event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryPointsEvents(ctx context.Context, opts QueryOpts) ([]PointsEventRecord, error) {
	rows, err := r.query(ctx, selectEvents(tablePoints, opts,
		"amount", "reason", "points_after", "level_after"))
	if err != nil {
		return nil, fmt.Errorf("query points events: %w", err)
	}
	defer rows.Close()

	var records []PointsEventRecord
	for rows.Next() {
		var rec PointsEventRecord
		if err := rows.Scan(&rec.Sequence, &rec.Timestamp,
			&rec.Amount, &rec.Reason, &rec.PointsAfter, &rec.LevelAfter); err != nil {
			return nil, fmt.Errorf("scan points event: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	err := r.insert(ctx, tableAnswers,
		[]string{"session_id", "operand_a", "operand_b", "answer", "submitted", "correct", "time_ms"},
		[]any{data.SessionID, data.A, data.B, data.Answer, data.Submitted, data.Correct, data.TimeMs},
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) AnswerStats(ctx context.Context) (AnswerStatsRecord, error) {
	var stats AnswerStatsRecord
	b := builder()

	query, args := b.Select(entsql.Count("*")).From(b.Table(tableAnswers)).Query()
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&stats.Attempts); err != nil {
		return stats, fmt.Errorf("count answers: %w", err)
	}

	query, args = b.Select(entsql.Count("*")).From(b.Table(tableAnswers)).
		Where(entsql.EQ("correct", true)).Query()
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&stats.Correct); err != nil {
		return stats, fmt.Errorf("count correct answers: %w", err)
	}
	return stats, nil
}

func (r *eventRepo) AppendAchievementEvent(ctx context.Context, data AchievementEventData) error {
	err := r.insert(ctx, tableAchievement,
		[]string{"achievement_id", "title", "session_id"},
		[]any{data.AchievementID, data.Title, data.SessionID},
		entsql.ConflictColumns("achievement_id"),
		entsql.DoNothing(),
	)
	if err != nil {
		return fmt.Errorf("save achievement event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAchievementEvents(ctx context.Context, opts QueryOpts) ([]AchievementEventRecord, error) {
	rows, err := r.query(ctx, selectEvents(tableAchievement, opts,
		"achievement_id", "title", "session_id"))
	if err != nil {
		return nil, fmt.Errorf("query achievement events: %w", err)
	}
	defer rows.Close()

	var records []AchievementEventRecord
	for rows.Next() {
		var rec AchievementEventRecord
		if err := rows.Scan(&rec.Sequence, &rec.Timestamp,
			&rec.AchievementID, &rec.Title, &rec.SessionID); err != nil {
			return nil, fmt.Errorf("scan achievement event: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
