package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Analysis is the AI-derived pattern summary over a fixed batch of
// records. Immutable once created.
type Analysis struct {
	ID        uuid.UUID      `json:"id" db:"id"`
	UserID    uuid.UUID      `json:"user_id" db:"user_id"`
	Pattern   string         `json:"pattern" db:"pattern"`
	Workflow  string         `json:"workflow" db:"workflow"`
	Keywords  pq.StringArray `json:"keywords" db:"keywords"`
	Insight   string         `json:"insight" db:"insight"`
	RecordIDs []uuid.UUID    `json:"record_ids" db:"-"`
	ProjectID *uuid.UUID     `json:"project_id,omitempty" db:"project_id"`
	CreatedAt time.Time      `json:"created_at" db:"created_at"`
}

// PatternResult is the structured output of a pattern analysis call.
type PatternResult struct {
	Pattern  string   `json:"pattern"`
	Workflow string   `json:"workflow"`
	Keywords []string `json:"keywords"`
	Insight  string   `json:"insight"`
}

// DailyResult is the structured output of a daily analysis call.
// The provider defines the shape; we pass it through.
type DailyResult struct {
	Summary      string   `json:"summary"`
	Achievements []string `json:"achievements"`
	Suggestions  []string `json:"suggestions"`
}

// PreviewItem is one guest-preview translation of a raw work-log line
// into portfolio language.
type PreviewItem struct {
	Original      string `json:"original"`
	Skill         string `json:"skill"`
	PortfolioTerm string `json:"portfolioTerm"`
}

// PreviewResult wraps the instant-preview items.
type PreviewResult struct {
	Items []PreviewItem `json:"items"`
}

// TaskInput is one task submitted for suggestion generation.
type TaskInput struct {
	Project string `json:"project"`
	Content string `json:"content"`
}

// SuggestionResult is the provider-defined task suggestion output,
// returned to the client as-is.
type SuggestionResult struct {
	Suggestions []struct {
		Task     string `json:"task"`
		Reason   string `json:"reason"`
		Project  string `json:"project,omitempty"`
		Priority string `json:"priority,omitempty"`
	} `json:"suggestions"`
}

// RecordBatchEntry is the {date, contents} tuple handed to the pattern
// analyzer, in log-date order.
type RecordBatchEntry struct {
	Date     time.Time
	Contents []string
}
