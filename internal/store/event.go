package store

import "time"

// LLMEventData is the payload appended for each LLM request.
type LLMEventData struct {
	Provider     string
	Model        string
	Purpose      string
	Reasoning    bool
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	RequestBody  string
	ResponseBody string
	ErrorMessage string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int64
	Timestamp time.Time
	LLMEventData
}

// OutcomeData is the payload appended for each question's terminal
// injection outcome.
type OutcomeData struct {
	RunID        string
	QuestionID   string
	QuestionType string
	Status       string
	Attempts     int
	Detail       string
}

// OutcomeEvent is a stored outcome event.
type OutcomeEvent struct {
	ID        int64
	Timestamp time.Time
	OutcomeData
}

// QueryOpts bounds event queries.
type QueryOpts struct {
	Limit int
}

// PurposeUsage aggregates LLM usage per purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM usage per served model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}
