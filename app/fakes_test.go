package app

import (
	"context"
	"time"

	"ilmakase/internal/errors"
	"ilmakase/models"

	"github.com/google/uuid"
)

// fakeAnalyzer records calls and returns canned results.
type fakeAnalyzer struct {
	patternCalls    int
	dailyCalls      int
	previewCalls    int
	suggestionCalls int
	projectCalls    int

	lastBatch    []models.RecordBatchEntry
	lastContents []string

	patternResult *models.PatternResult
	dailyResult   *models.DailyResult
	previewResult *models.PreviewResult
	projectResult *models.ProjectResult

	err error
}

func (f *fakeAnalyzer) AnalyzePattern(_ context.Context, batch []models.RecordBatchEntry) (*models.PatternResult, error) {
	f.patternCalls++
	f.lastBatch = batch
	if f.err != nil {
		return nil, f.err
	}
	if f.patternResult != nil {
		return f.patternResult, nil
	}
	return &models.PatternResult{Pattern: "p", Workflow: "w", Keywords: []string{"go"}, Insight: "i"}, nil
}

func (f *fakeAnalyzer) AnalyzeDaily(_ context.Context, _ string) (*models.DailyResult, error) {
	f.dailyCalls++
	if f.err != nil {
		return nil, f.err
	}
	if f.dailyResult != nil {
		return f.dailyResult, nil
	}
	return &models.DailyResult{Summary: "done"}, nil
}

func (f *fakeAnalyzer) SuggestTasks(_ context.Context, _ []models.TaskInput, _ string) (*models.SuggestionResult, error) {
	f.suggestionCalls++
	if f.err != nil {
		return nil, f.err
	}
	return &models.SuggestionResult{}, nil
}

func (f *fakeAnalyzer) PreviewContents(_ context.Context, contents []string) (*models.PreviewResult, error) {
	f.previewCalls++
	f.lastContents = contents
	if f.err != nil {
		return nil, f.err
	}
	if f.previewResult != nil {
		return f.previewResult, nil
	}
	items := make([]models.PreviewItem, len(contents))
	for i, content := range contents {
		items[i] = models.PreviewItem{Original: content, Skill: "skill", PortfolioTerm: "term"}
	}
	return &models.PreviewResult{Items: items}, nil
}

func (f *fakeAnalyzer) SummarizeProject(_ context.Context, _ []*models.Analysis) (*models.ProjectResult, error) {
	f.projectCalls++
	if f.err != nil {
		return nil, f.err
	}
	if f.projectResult != nil {
		return f.projectResult, nil
	}
	return &models.ProjectResult{Title: "t", Summary: "s"}, nil
}

// fakeUserRepo implements the credit counter contract in memory.
type fakeUserRepo struct {
	user        *models.User
	refundCalls int
}

func (f *fakeUserRepo) GetByID(_ context.Context, userID uuid.UUID) (*models.User, error) {
	if f.user == nil || f.user.ID != userID {
		return nil, errors.NotFound("user")
	}
	copied := *f.user
	return &copied, nil
}

func (f *fakeUserRepo) GetOrCreateByEmail(_ context.Context, email, username string) (*models.User, bool, error) {
	if f.user != nil && f.user.Email == email {
		copied := *f.user
		return &copied, false, nil
	}
	f.user = &models.User{ID: uuid.New(), Email: email, Username: username, Plan: models.PlanFree, IsActive: true}
	copied := *f.user
	return &copied, true, nil
}

func (f *fakeUserRepo) ConsumeCredit(_ context.Context, userID uuid.UUID, limit int, now time.Time) (int, error) {
	if f.user == nil || f.user.ID != userID {
		return 0, errors.NotFound("user")
	}
	if f.user.CreditsResetAt == nil || !models.SameCalendarMonth(*f.user.CreditsResetAt, now) {
		f.user.CreditsUsed = 1
		reset := now
		f.user.CreditsResetAt = &reset
		return 1, nil
	}
	if f.user.CreditsUsed >= limit {
		return 0, errors.QuotaExceeded("monthly AI credit limit reached")
	}
	f.user.CreditsUsed++
	return f.user.CreditsUsed, nil
}

func (f *fakeUserRepo) RefundCredit(_ context.Context, userID uuid.UUID) error {
	f.refundCalls++
	if f.user != nil && f.user.ID == userID && f.user.CreditsUsed > 0 {
		f.user.CreditsUsed--
	}
	return nil
}

// fakeRecordRepo holds records in memory.
type fakeRecordRepo struct {
	records    []*models.Record
	createErr  error
	createdIDs []uuid.UUID
}

func (f *fakeRecordRepo) Create(_ context.Context, record *models.Record) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.records = append(f.records, record)
	f.createdIDs = append(f.createdIDs, record.ID)
	return nil
}

func (f *fakeRecordRepo) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]*models.Record, error) {
	var out []*models.Record
	for _, r := range f.records {
		if r.UserID == userID {
			out = append(out, r)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeRecordRepo) ListUnanalyzed(_ context.Context, userID uuid.UUID, limit int) ([]*models.Record, error) {
	var out []*models.Record
	for _, r := range f.records {
		if r.UserID == userID && !r.Analyzed() {
			out = append(out, r)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeRecordRepo) ListByProject(_ context.Context, userID, projectID uuid.UUID) ([]*models.Record, error) {
	var out []*models.Record
	for _, r := range f.records {
		if r.UserID == userID && r.ProjectID != nil && *r.ProjectID == projectID {
			out = append(out, r)
		}
	}
	return out, nil
}

// fakeAnalysisRepo links records on create, mirroring the transactional
// claim.
type fakeAnalysisRepo struct {
	records  *fakeRecordRepo
	analyses []*models.Analysis
	created  int
}

func (f *fakeAnalysisRepo) CreateWithRecords(_ context.Context, analysis *models.Analysis) error {
	for _, id := range analysis.RecordIDs {
		for _, r := range f.records.records {
			if r.ID == id {
				if r.Analyzed() {
					return errors.InsufficientRecords("records were claimed by a concurrent analysis")
				}
				linked := analysis.ID
				r.AnalysisID = &linked
				r.Keywords = analysis.Keywords
			}
		}
	}
	f.analyses = append(f.analyses, analysis)
	f.created++
	return nil
}

func (f *fakeAnalysisRepo) GetByID(_ context.Context, userID, analysisID uuid.UUID) (*models.Analysis, error) {
	for _, a := range f.analyses {
		if a.UserID == userID && a.ID == analysisID {
			return a, nil
		}
	}
	return nil, errors.NotFound("analysis")
}

func (f *fakeAnalysisRepo) ListUnassigned(_ context.Context, userID uuid.UUID, limit int) ([]*models.Analysis, error) {
	var out []*models.Analysis
	for _, a := range f.analyses {
		if a.UserID == userID && a.ProjectID == nil {
			out = append(out, a)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeAnalysisRepo) ListByProject(_ context.Context, userID, projectID uuid.UUID) ([]*models.Analysis, error) {
	var out []*models.Analysis
	for _, a := range f.analyses {
		if a.UserID == userID && a.ProjectID != nil && *a.ProjectID == projectID {
			out = append(out, a)
		}
	}
	return out, nil
}

// fakeProjectRepo links analyses on create.
type fakeProjectRepo struct {
	analyses *fakeAnalysisRepo
	projects []*models.Project
}

func (f *fakeProjectRepo) CreateWithAnalyses(_ context.Context, project *models.Project) error {
	for _, id := range project.AnalysisIDs {
		for _, a := range f.analyses.analyses {
			if a.ID == id {
				linked := project.ID
				a.ProjectID = &linked
			}
		}
	}
	f.projects = append(f.projects, project)
	return nil
}

func (f *fakeProjectRepo) GetByID(_ context.Context, userID, projectID uuid.UUID) (*models.Project, error) {
	for _, p := range f.projects {
		if p.UserID == userID && p.ID == projectID {
			return p, nil
		}
	}
	return nil, errors.NotFound("project")
}

func (f *fakeProjectRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*models.Project, error) {
	var out []*models.Project
	for _, p := range f.projects {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}
