package store

import (
	"context"
	"database/sql"
	"fmt"
)

// EventRepo is the append/query surface for run telemetry.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMEventData) error
	AppendOutcome(ctx context.Context, data OutcomeData) error

	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)
	GetLLMEvent(ctx context.Context, id int64) (*LLMEvent, error)
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	Outcomes(ctx context.Context, runID string) ([]OutcomeEvent, error)
}

type eventRepo struct {
	db *sql.DB
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMEventData) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO llm_events
			(provider, model, purpose, reasoning, input_tokens, output_tokens,
			 latency_ms, success, request_body, response_body, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		data.Provider, data.Model, data.Purpose, boolInt(data.Reasoning),
		data.InputTokens, data.OutputTokens, data.LatencyMs,
		boolInt(data.Success), data.RequestBody, data.ResponseBody,
		data.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("append llm event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendOutcome(ctx context.Context, data OutcomeData) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO outcome_events
			(run_id, question_id, question_type, status, attempts, detail)
		VALUES (?, ?, ?, ?, ?, ?)`,
		data.RunID, data.QuestionID, data.QuestionType, data.Status,
		data.Attempts, data.Detail,
	)
	if err != nil {
		return fmt.Errorf("append outcome event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, ts, provider, model, purpose, reasoning, input_tokens,
		       output_tokens, latency_ms, success, request_body,
		       response_body, error_message
		FROM llm_events
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query llm events: %w", err)
	}
	defer rows.Close()

	var events []LLMEvent
	for rows.Next() {
		e, err := scanLLMEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int64) (*LLMEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, ts, provider, model, purpose, reasoning, input_tokens,
		       output_tokens, latency_ms, success, request_body,
		       response_body, error_message
		FROM llm_events
		WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("get llm event: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanLLMEvent(rows)
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT purpose, COUNT(*), SUM(input_tokens), SUM(output_tokens),
		       CAST(AVG(latency_ms) AS INTEGER)
		FROM llm_events
		GROUP BY purpose
		ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("usage by purpose: %w", err)
	}
	defer rows.Close()

	var stats []PurposeUsage
	for rows.Next() {
		var u PurposeUsage
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens,
			&u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan purpose usage: %w", err)
		}
		stats = append(stats, u)
	}
	return stats, rows.Err()
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT model, COUNT(*), SUM(input_tokens), SUM(output_tokens)
		FROM llm_events
		GROUP BY model
		ORDER BY COUNT(*) DESC`)
	if err != nil {
		return nil, fmt.Errorf("usage by model: %w", err)
	}
	defer rows.Close()

	var stats []ModelUsage
	for rows.Next() {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens); err != nil {
			return nil, fmt.Errorf("scan model usage: %w", err)
		}
		stats = append(stats, u)
	}
	return stats, rows.Err()
}

func (r *eventRepo) Outcomes(ctx context.Context, runID string) ([]OutcomeEvent, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, ts, run_id, question_id, question_type, status, attempts, detail
		FROM outcome_events
		WHERE run_id = ?
		ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	var events []OutcomeEvent
	for rows.Next() {
		var e OutcomeEvent
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.RunID, &e.QuestionID,
			&e.QuestionType, &e.Status, &e.Attempts, &e.Detail); err != nil {
			return nil, fmt.Errorf("scan outcome event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func scanLLMEvent(rows *sql.Rows) (*LLMEvent, error) {
	var e LLMEvent
	var reasoning, success int
	if err := rows.Scan(&e.ID, &e.Timestamp, &e.Provider, &e.Model,
		&e.Purpose, &reasoning, &e.InputTokens, &e.OutputTokens,
		&e.LatencyMs, &success, &e.RequestBody, &e.ResponseBody,
		&e.ErrorMessage); err != nil {
		return nil, fmt.Errorf("scan llm event: %w", err)
	}
	e.Reasoning = reasoning != 0
	e.Success = success != 0
	return &e, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
