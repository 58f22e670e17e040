package ports

import (
	"context"

	"ilmakase/models"
)

// Analyzer is the boundary to the generative-text provider. Errors are
// tagged: UPSTREAM_RATE_LIMITED when the provider signals throttling,
// UPSTREAM_ERROR for any other provider failure. No retries happen at
// this layer.
type Analyzer interface {
	// AnalyzePattern derives a work pattern summary from an ordered
	// batch of {date, contents} tuples.
	AnalyzePattern(ctx context.Context, batch []models.RecordBatchEntry) (*models.PatternResult, error)

	// AnalyzeDaily summarizes a single day's free-text work log.
	AnalyzeDaily(ctx context.Context, workLogs string) (*models.DailyResult, error)

	// SuggestTasks proposes next tasks from {project, content} tuples
	// plus optional project context.
	SuggestTasks(ctx context.Context, tasks []models.TaskInput, projectContext string) (*models.SuggestionResult, error)

	// PreviewContents translates raw work-log lines into portfolio
	// language without any persistence.
	PreviewContents(ctx context.Context, contents []string) (*models.PreviewResult, error)

	// SummarizeProject folds a set of analyses into a portfolio card
	// narrative.
	SummarizeProject(ctx context.Context, analyses []*models.Analysis) (*models.ProjectResult, error)
}
