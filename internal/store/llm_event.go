package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var llmColumns = []string{
	"provider", "model", "purpose", "input_tokens", "output_tokens",
	"latency_ms", "success", "error_message", "request_body", "response_body",
	"session_id", "question", "answer", "submitted",
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	var session, question, answer, submitted any
	if data.SessionID != "" {
		session = data.SessionID
	}
	if data.Question != "" {
		question, answer, submitted = data.Question, data.Answer, data.Submitted
	}

	err := r.insert(ctx, tableLLM, llmColumns, []any{
		data.Provider,
		data.Model,
		data.Purpose,
		data.InputTokens,
		data.OutputTokens,
		data.LatencyMs,
		data.Success,
		data.ErrorMessage,
		data.RequestBody,
		data.ResponseBody,
		session,
		question,
		answer,
		submitted,
	})
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func selectLLM(opts QueryOpts) *entsql.Selector {
	return selectEvents(tableLLM, opts, append([]string{colID}, llmColumns...)...)
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts, filter LLMFilter) ([]LLMEventRecord, error) {
	sel := selectLLM(opts)
	if filter.Purpose != "" {
		sel = sel.Where(entsql.EQ("purpose", filter.Purpose))
	}
	if filter.SessionID != "" {
		sel = sel.Where(entsql.EQ("session_id", filter.SessionID))
	}

	rows, err := r.query(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	defer rows.Close()

	var records []LLMEventRecord
	for rows.Next() {
		rec, err := scanLLMEvent(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error) {
	query, args := selectLLM(QueryOpts{}).Where(entsql.EQ(colID, id)).Query()

	rec, err := scanLLMEvent(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return rec, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLLMEvent(row rowScanner) (*LLMEventRecord, error) {
	var (
		rec                       LLMEventRecord
		errMsg, reqBody, respBody sql.NullString
		session, question         sql.NullString
		answer, submitted         sql.NullInt64
	)
	err := row.Scan(&rec.Sequence, &rec.Timestamp, &rec.ID,
		&rec.Provider, &rec.Model, &rec.Purpose, &rec.InputTokens, &rec.OutputTokens,
		&rec.LatencyMs, &rec.Success, &errMsg, &reqBody, &respBody,
		&session, &question, &answer, &submitted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan LLM event: %w", err)
	}
	rec.ErrorMessage = errMsg.String
	rec.RequestBody = reqBody.String
	rec.ResponseBody = respBody.String
	rec.SessionID = session.String
	rec.Question = question.String
	rec.Answer = int(answer.Int64)
	rec.Submitted = int(submitted.Int64)
	return &rec, nil
}

func (r *eventRepo) LLMUsageBySession(ctx context.Context) ([]LLMUsageRecord, error) {
	return r.llmUsage(ctx, "session_id", entsql.Desc(entsql.Max(colSequence)))
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMUsageRecord, error) {
	return r.llmUsage(ctx, "model", "model")
}

// llmUsage aggregates LLM events grouped by column.
func (r *eventRepo) llmUsage(ctx context.Context, column, order string) ([]LLMUsageRecord, error) {
	b := builder()
	query, args := b.Select(
		column,
		entsql.Count("*"),
		entsql.Sum("input_tokens"),
		entsql.Sum("output_tokens"),
		entsql.Avg("latency_ms"),
	).
		AppendSelectExpr(entsql.Expr("SUM(CASE WHEN success THEN 0 ELSE 1 END)")).
		From(b.Table(tableLLM)).
		GroupBy(column).
		OrderBy(order).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query LLM usage by %s: %w", column, err)
	}
	defer rows.Close()

	var records []LLMUsageRecord
	for rows.Next() {
		var (
			rec      LLMUsageRecord
			key      sql.NullString
			avgLat   float64
			inToks   int64
			outToks  int64
			failures int64
		)
		if err := rows.Scan(&key, &rec.Calls, &inToks, &outToks, &avgLat, &failures); err != nil {
			return nil, fmt.Errorf("scan LLM usage: %w", err)
		}
		if column == "session_id" {
			rec.SessionID = key.String
		} else {
			rec.Model = key.String
		}
		rec.InputTokens = int(inToks)
		rec.OutputTokens = int(outToks)
		rec.AvgLatencyMs = int64(avgLat)
		rec.Failures = int(failures)
		records = append(records, rec)
	}
	return records, rows.Err()
}
