package app

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"ilmakase/internal/errors"
	"ilmakase/models"
	"ilmakase/ports"
)

const (
	// PreviewMinLength and PreviewMaxLength bound each trimmed content
	// item, in characters.
	PreviewMinLength = 10
	PreviewMaxLength = 500
)

// PreviewService is the guest preview path: stateless, unauthenticated,
// nothing persisted.
type PreviewService struct {
	analyzer ports.Analyzer
}

// NewPreviewService creates the guest preview service
func NewPreviewService(analyzer ports.Analyzer) *PreviewService {
	return &PreviewService{analyzer: analyzer}
}

// Preview validates the submitted work-log lines and returns their
// portfolio translation. Validation failures name the offending field.
func (s *PreviewService) Preview(ctx context.Context, contents []string) (*models.PreviewResult, error) {
	if len(contents) == 0 {
		return nil, errors.ValidationError("contents must contain at least one item")
	}

	trimmed := make([]string, len(contents))
	for i, content := range contents {
		item := strings.TrimSpace(content)
		if item == "" {
			return nil, errors.ValidationError(fmt.Sprintf("contents[%d] is empty", i))
		}
		length := utf8.RuneCountInString(item)
		if length < PreviewMinLength {
			return nil, errors.ValidationError(fmt.Sprintf("contents[%d] is too short (minimum %d characters)", i, PreviewMinLength))
		}
		if length > PreviewMaxLength {
			return nil, errors.ValidationError(fmt.Sprintf("contents[%d] is too long (maximum %d characters)", i, PreviewMaxLength))
		}
		trimmed[i] = item
	}

	return s.analyzer.PreviewContents(ctx, trimmed)
}
