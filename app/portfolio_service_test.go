package app

import (
	"context"
	"testing"

	"ilmakase/internal/errors"
	"ilmakase/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func seedAnalyses(analyses *fakeAnalysisRepo, userID uuid.UUID, n int) {
	for i := 0; i < n; i++ {
		analyses.analyses = append(analyses.analyses, &models.Analysis{
			ID:       uuid.New(),
			UserID:   userID,
			Pattern:  "패턴",
			Workflow: "워크플로",
			Keywords: []string{"Go"},
			Insight:  "인사이트",
		})
	}
}

func TestPortfolioGenerate_RequiresFullSet(t *testing.T) {
	userID := uuid.New()
	records := &fakeRecordRepo{}
	analyses := &fakeAnalysisRepo{records: records}
	projects := &fakeProjectRepo{analyses: analyses}
	analyzer := &fakeAnalyzer{}
	svc := NewPortfolioService(analyses, projects, records, analyzer)

	seedAnalyses(analyses, userID, models.ProjectAnalysisCount-1)

	_, err := svc.Generate(context.Background(), userID)
	if !errors.HasCode(err, errors.CodeInsufficientRecords) {
		t.Fatalf("expected INSUFFICIENT_RECORDS, got %v", err)
	}
	if analyzer.projectCalls != 0 {
		t.Errorf("AI provider must not be invoked below the analysis count")
	}
}

func TestPortfolioGenerate_LinksAnalyses(t *testing.T) {
	userID := uuid.New()
	records := &fakeRecordRepo{}
	analyses := &fakeAnalysisRepo{records: records}
	projects := &fakeProjectRepo{analyses: analyses}
	analyzer := &fakeAnalyzer{projectResult: &models.ProjectResult{
		Title:   "사내 백오피스 개선",
		Tasks:   []string{"API 설계", "배포 자동화"},
		Results: []string{"배포 시간 70% 단축"},
		Summary: "## 성과\n배포 파이프라인을 재구축했다.",
	}}
	svc := NewPortfolioService(analyses, projects, records, analyzer)

	seedAnalyses(analyses, userID, models.ProjectAnalysisCount)

	project, err := svc.Generate(context.Background(), userID)
	assert.NoError(t, err)
	assert.Equal(t, "사내 백오피스 개선", project.Title)
	assert.Len(t, project.AnalysisIDs, models.ProjectAnalysisCount)

	for _, a := range analyses.analyses {
		if a.ProjectID == nil || *a.ProjectID != project.ID {
			t.Errorf("analysis %s not linked to the new card", a.ID)
		}
	}

	// The analyses are now assigned; a second generation finds none.
	_, err = svc.Generate(context.Background(), userID)
	if !errors.HasCode(err, errors.CodeInsufficientRecords) {
		t.Fatalf("expected INSUFFICIENT_RECORDS on second run, got %v", err)
	}
}

func TestPortfolioExport_CollectsCardData(t *testing.T) {
	userID := uuid.New()
	records := &fakeRecordRepo{}
	analyses := &fakeAnalysisRepo{records: records}
	projects := &fakeProjectRepo{analyses: analyses}
	svc := NewPortfolioService(analyses, projects, records, &fakeAnalyzer{})

	seedAnalyses(analyses, userID, models.ProjectAnalysisCount)
	project, err := svc.Generate(context.Background(), userID)
	assert.NoError(t, err)

	got, gotAnalyses, _, err := svc.Export(context.Background(), userID, project.ID)
	assert.NoError(t, err)
	assert.Equal(t, project.ID, got.ID)
	assert.Len(t, gotAnalyses, models.ProjectAnalysisCount)

	// Another user cannot export the card.
	_, _, _, err = svc.Export(context.Background(), uuid.New(), project.ID)
	if !errors.HasCode(err, errors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND for foreign user, got %v", err)
	}
}
