package app

import (
	"context"
	"fmt"
	"strings"

	"ilmakase/internal/errors"
	"ilmakase/models"
	"ilmakase/ports"
)

// SuggestionService proposes next tasks from the user's current task
// list. The provider's result shape is passed through unchanged.
type SuggestionService struct {
	analyzer ports.Analyzer
}

// NewSuggestionService creates the task suggestion service
func NewSuggestionService(analyzer ports.Analyzer) *SuggestionService {
	return &SuggestionService{analyzer: analyzer}
}

// Suggest validates the task list and asks the provider for
// suggestions
func (s *SuggestionService) Suggest(ctx context.Context, tasks []models.TaskInput, projectContext string) (*models.SuggestionResult, error) {
	if len(tasks) == 0 {
		return nil, errors.ValidationError("tasks must contain at least one item")
	}
	for i, task := range tasks {
		if strings.TrimSpace(task.Content) == "" {
			return nil, errors.ValidationError(fmt.Sprintf("tasks[%d].content must not be empty", i))
		}
	}
	return s.analyzer.SuggestTasks(ctx, tasks, projectContext)
}
