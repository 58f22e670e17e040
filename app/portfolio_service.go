package app

import (
	"context"

	"ilmakase/internal/errors"
	"ilmakase/models"
	"ilmakase/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// PortfolioService folds completed analyses into portfolio cards, the
// downstream consumer of the analysis pipeline.
type PortfolioService struct {
	analyses ports.AnalysisRepository
	projects ports.ProjectRepository
	records  ports.RecordRepository
	analyzer ports.Analyzer
}

// NewPortfolioService creates the portfolio card service
func NewPortfolioService(analyses ports.AnalysisRepository, projects ports.ProjectRepository, records ports.RecordRepository, analyzer ports.Analyzer) *PortfolioService {
	return &PortfolioService{
		analyses: analyses,
		projects: projects,
		records:  records,
		analyzer: analyzer,
	}
}

// Generate builds one portfolio card from the user's oldest unassigned
// analyses. A full set of analyses must exist before the AI provider is
// invoked.
func (s *PortfolioService) Generate(ctx context.Context, userID uuid.UUID) (*models.Project, error) {
	analyses, err := s.analyses.ListUnassigned(ctx, userID, models.ProjectAnalysisCount)
	if err != nil {
		return nil, err
	}
	if len(analyses) < models.ProjectAnalysisCount {
		return nil, errors.InsufficientRecords("not enough completed analyses for a portfolio card")
	}

	result, err := s.analyzer.SummarizeProject(ctx, analyses)
	if err != nil {
		return nil, err
	}

	analysisIDs := make([]uuid.UUID, 0, len(analyses))
	for _, a := range analyses {
		analysisIDs = append(analysisIDs, a.ID)
	}

	project := &models.Project{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       result.Title,
		Tasks:       result.Tasks,
		Results:     result.Results,
		Summary:     result.Summary,
		AnalysisIDs: analysisIDs,
	}

	if err := s.projects.CreateWithAnalyses(ctx, project); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", userID.String()).Str("project_id", project.ID.String()).
		Int("analyses", len(analysisIDs)).Msg("Portfolio card created")
	return project, nil
}

// List returns the user's portfolio cards
func (s *PortfolioService) List(ctx context.Context, userID uuid.UUID) ([]*models.Project, error) {
	return s.projects.ListByUser(ctx, userID)
}

// Export collects a card with its analyses and records for export
func (s *PortfolioService) Export(ctx context.Context, userID, projectID uuid.UUID) (*models.Project, []*models.Analysis, []*models.Record, error) {
	project, err := s.projects.GetByID(ctx, userID, projectID)
	if err != nil {
		return nil, nil, nil, err
	}
	analyses, err := s.analyses.ListByProject(ctx, userID, projectID)
	if err != nil {
		return nil, nil, nil, err
	}
	records, err := s.records.ListByProject(ctx, userID, projectID)
	if err != nil {
		return nil, nil, nil, err
	}
	return project, analyses, records, nil
}
