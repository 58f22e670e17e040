package app

import (
	"context"

	"ilmakase/internal/errors"
	"ilmakase/models"
	"ilmakase/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AnalysisService runs the record-to-artifact pipeline: aggregate a
// batch of unanalyzed records, derive a pattern with the AI provider
// and persist the result with its record links.
type AnalysisService struct {
	records  ports.RecordRepository
	analyses ports.AnalysisRepository
	analyzer ports.Analyzer
}

// NewAnalysisService creates the pattern analysis pipeline
func NewAnalysisService(records ports.RecordRepository, analyses ports.AnalysisRepository, analyzer ports.Analyzer) *AnalysisService {
	return &AnalysisService{
		records:  records,
		analyses: analyses,
		analyzer: analyzer,
	}
}

// RunPatternAnalysis analyzes the user's oldest unanalyzed batch of
// records. The AI provider is only invoked once a full batch exists.
func (s *AnalysisService) RunPatternAnalysis(ctx context.Context, userID uuid.UUID) (*models.Analysis, error) {
	records, err := s.records.ListUnanalyzed(ctx, userID, models.AnalysisBatchSize)
	if err != nil {
		return nil, err
	}
	if len(records) < models.AnalysisBatchSize {
		return nil, errors.InsufficientRecords("not enough unanalyzed records for a pattern analysis")
	}

	batch := make([]models.RecordBatchEntry, 0, len(records))
	recordIDs := make([]uuid.UUID, 0, len(records))
	for _, record := range records {
		batch = append(batch, models.RecordBatchEntry{
			Date:     record.LogDate,
			Contents: record.Contents,
		})
		recordIDs = append(recordIDs, record.ID)
	}

	result, err := s.analyzer.AnalyzePattern(ctx, batch)
	if err != nil {
		return nil, err
	}

	analysis := &models.Analysis{
		ID:        uuid.New(),
		UserID:    userID,
		Pattern:   result.Pattern,
		Workflow:  result.Workflow,
		Keywords:  result.Keywords,
		Insight:   result.Insight,
		RecordIDs: recordIDs,
	}

	if err := s.analyses.CreateWithRecords(ctx, analysis); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", userID.String()).Str("analysis_id", analysis.ID.String()).
		Int("records", len(recordIDs)).Msg("Pattern analysis created")
	return analysis, nil
}
