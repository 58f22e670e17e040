package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ProjectAnalysisCount is the number of analyses folded into one
// portfolio card (20 underlying records).
const ProjectAnalysisCount = 4

// Project is a portfolio card aggregating multiple analyses and their
// underlying records into a narrative artifact.
type Project struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	UserID      uuid.UUID      `json:"user_id" db:"user_id"`
	Title       string         `json:"title" db:"title"`
	Tasks       pq.StringArray `json:"tasks" db:"tasks"`
	Results     pq.StringArray `json:"results" db:"results"`
	Summary     string         `json:"summary" db:"summary"`
	AnalysisIDs []uuid.UUID    `json:"analysis_ids" db:"-"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
}

// ProjectResult is the structured output of a portfolio generation
// call.
type ProjectResult struct {
	Title   string   `json:"title"`
	Tasks   []string `json:"tasks"`
	Results []string `json:"results"`
	Summary string   `json:"summary"`
}

// WorklogStats summarizes a user's logging activity.
type WorklogStats struct {
	TotalRecords      int       `json:"total_records"`
	AnalyzedRecords   int       `json:"analyzed_records"`
	MeanTasksPerDay   float64   `json:"mean_tasks_per_day"`
	MedianTasksPerDay float64   `json:"median_tasks_per_day"`
	TasksStdDev       float64   `json:"tasks_std_dev"`
	TopKeywords       []string  `json:"top_keywords"`
	GeneratedAt       time.Time `json:"generated_at"`
}
