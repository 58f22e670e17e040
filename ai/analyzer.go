package ai

import (
	"context"

	"ilmakase/models"
	"ilmakase/ports"
)

// OpenAIAnalyzer implements the Analyzer boundary over the structured
// provider client.
type OpenAIAnalyzer struct {
	client *Client
}

// NewAnalyzer creates an Analyzer backed by the given provider client
func NewAnalyzer(client *Client) ports.Analyzer {
	return &OpenAIAnalyzer{client: client}
}

// AnalyzePattern derives a work pattern summary from an ordered record
// batch
func (a *OpenAIAnalyzer) AnalyzePattern(ctx context.Context, batch []models.RecordBatchEntry) (*models.PatternResult, error) {
	return completeJSON[models.PatternResult](ctx, a.client, patternSystemMessage, buildPatternPrompt(batch))
}

// AnalyzeDaily summarizes a single day's work log
func (a *OpenAIAnalyzer) AnalyzeDaily(ctx context.Context, workLogs string) (*models.DailyResult, error) {
	return completeJSON[models.DailyResult](ctx, a.client, dailySystemMessage, buildDailyPrompt(workLogs))
}

// SuggestTasks proposes next tasks from the current task list
func (a *OpenAIAnalyzer) SuggestTasks(ctx context.Context, tasks []models.TaskInput, projectContext string) (*models.SuggestionResult, error) {
	return completeJSON[models.SuggestionResult](ctx, a.client, suggestionSystemMessage, buildSuggestionPrompt(tasks, projectContext))
}

// PreviewContents translates raw work-log lines into portfolio language
func (a *OpenAIAnalyzer) PreviewContents(ctx context.Context, contents []string) (*models.PreviewResult, error) {
	return completeJSON[models.PreviewResult](ctx, a.client, previewSystemMessage, buildPreviewPrompt(contents))
}

// SummarizeProject folds analyses into a portfolio card narrative
func (a *OpenAIAnalyzer) SummarizeProject(ctx context.Context, analyses []*models.Analysis) (*models.ProjectResult, error) {
	return completeJSON[models.ProjectResult](ctx, a.client, projectSystemMessage, buildProjectPrompt(analyses))
}
