package app

import (
	"context"
	"testing"
	"time"

	"ilmakase/internal/errors"
	"ilmakase/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func seedRecords(records *fakeRecordRepo, userID uuid.UUID, n int) {
	base := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		records.records = append(records.records, &models.Record{
			ID:       uuid.New(),
			UserID:   userID,
			LogDate:  base.AddDate(0, 0, i),
			Contents: []string{"작업 내용"},
		})
	}
}

func TestPatternAnalysis_RequiresFullBatch(t *testing.T) {
	userID := uuid.New()
	records := &fakeRecordRepo{}
	analyses := &fakeAnalysisRepo{records: records}
	analyzer := &fakeAnalyzer{}
	svc := NewAnalysisService(records, analyses, analyzer)

	seedRecords(records, userID, models.AnalysisBatchSize-1)

	_, err := svc.RunPatternAnalysis(context.Background(), userID)
	if !errors.HasCode(err, errors.CodeInsufficientRecords) {
		t.Fatalf("expected INSUFFICIENT_RECORDS, got %v", err)
	}
	if analyzer.patternCalls != 0 {
		t.Errorf("AI provider must not be invoked below the batch size")
	}
	if analyses.created != 0 {
		t.Errorf("no analysis row may be created below the batch size")
	}
}

func TestPatternAnalysis_ConsumesExactBatch(t *testing.T) {
	userID := uuid.New()
	records := &fakeRecordRepo{}
	analyses := &fakeAnalysisRepo{records: records}
	analyzer := &fakeAnalyzer{patternResult: &models.PatternResult{
		Pattern:  "백엔드 집중 패턴",
		Workflow: "설계-구현-테스트",
		Keywords: []string{"Go", "PostgreSQL"},
		Insight:  "테스트 비중이 늘고 있다",
	}}
	svc := NewAnalysisService(records, analyses, analyzer)

	// Seed more than one batch; only the oldest five are consumed.
	seedRecords(records, userID, models.AnalysisBatchSize+2)

	analysis, err := svc.RunPatternAnalysis(context.Background(), userID)
	assert.NoError(t, err)
	assert.Len(t, analysis.RecordIDs, models.AnalysisBatchSize)
	assert.Len(t, analyzer.lastBatch, models.AnalysisBatchSize)
	assert.Equal(t, "백엔드 집중 패턴", analysis.Pattern)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, []string(analysis.Keywords))

	// Batch entries arrive oldest first.
	for i := 1; i < len(analyzer.lastBatch); i++ {
		if analyzer.lastBatch[i].Date.Before(analyzer.lastBatch[i-1].Date) {
			t.Errorf("batch entries out of order at %d", i)
		}
	}

	analyzed := 0
	for _, r := range records.records {
		if r.Analyzed() {
			analyzed++
			assert.Equal(t, analysis.ID, *r.AnalysisID)
		}
	}
	assert.Equal(t, models.AnalysisBatchSize, analyzed)

	// Consumed records are never re-selected: only two remain unanalyzed,
	// so a second run falls short of the batch.
	_, err = svc.RunPatternAnalysis(context.Background(), userID)
	if !errors.HasCode(err, errors.CodeInsufficientRecords) {
		t.Fatalf("expected INSUFFICIENT_RECORDS on second run, got %v", err)
	}
	assert.Equal(t, 1, analyses.created)
}

func TestPatternAnalysis_AIFailureLeavesRecordsUnclaimed(t *testing.T) {
	userID := uuid.New()
	records := &fakeRecordRepo{}
	analyses := &fakeAnalysisRepo{records: records}
	analyzer := &fakeAnalyzer{err: errors.UpstreamError(context.DeadlineExceeded)}
	svc := NewAnalysisService(records, analyses, analyzer)

	seedRecords(records, userID, models.AnalysisBatchSize)

	_, err := svc.RunPatternAnalysis(context.Background(), userID)
	if !errors.HasCode(err, errors.CodeUpstreamError) {
		t.Fatalf("expected UPSTREAM_ERROR, got %v", err)
	}
	for _, r := range records.records {
		if r.Analyzed() {
			t.Errorf("record %s must stay unclaimed after an AI failure", r.ID)
		}
	}
}
