package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// AnalysisBatchSize is the exact number of unanalyzed records consumed
// by one pattern analysis.
const AnalysisBatchSize = 5

// Record represents one day's free-text work log
type Record struct {
	ID         uuid.UUID      `json:"id" db:"id"`
	UserID     uuid.UUID      `json:"user_id" db:"user_id"`
	LogDate    time.Time      `json:"log_date" db:"log_date"`
	Contents   pq.StringArray `json:"contents" db:"contents"`
	Keywords   pq.StringArray `json:"keywords,omitempty" db:"keywords"`
	AnalysisID *uuid.UUID     `json:"analysis_id,omitempty" db:"analysis_id"`
	ProjectID  *uuid.UUID     `json:"project_id,omitempty" db:"project_id"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at" db:"updated_at"`
}

// Analyzed reports whether this record has already been consumed by an
// analysis. Consumed records are never selected again.
func (r *Record) Analyzed() bool {
	return r.AnalysisID != nil
}
