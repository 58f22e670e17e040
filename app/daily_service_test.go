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

func newDailyFixture(plan models.Plan) (*DailyAnalysisService, *fakeUserRepo, *fakeAnalyzer, uuid.UUID) {
	userID := uuid.New()
	users := &fakeUserRepo{user: &models.User{
		ID:       userID,
		Email:    "dev@example.com",
		Username: "dev",
		Plan:     plan,
		IsActive: true,
	}}
	analyzer := &fakeAnalyzer{}
	svc := NewDailyAnalysisService(users, analyzer)
	return svc, users, analyzer, userID
}

func TestDailyAnalysis_EmptyWorkLogs(t *testing.T) {
	svc, _, analyzer, userID := newDailyFixture(models.PlanFree)

	_, _, err := svc.Analyze(context.Background(), userID, "   \n  ")
	if !errors.HasCode(err, errors.CodeValidationError) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	if analyzer.dailyCalls != 0 {
		t.Errorf("AI provider must not be invoked for empty input")
	}
}

func TestDailyAnalysis_FreePlanConsumesCredits(t *testing.T) {
	svc, users, _, userID := newDailyFixture(models.PlanFree)
	svc.now = func() time.Time { return time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC) }

	for i := 0; i < models.FreeMonthlyCredits; i++ {
		result, remaining, err := svc.Analyze(context.Background(), userID, "로그인 기능 구현")
		assert.NoError(t, err)
		assert.NotNil(t, result)
		assert.Equal(t, models.FreeMonthlyCredits-(i+1), remaining)
	}

	// Fourth attempt in the same month is rejected without consuming.
	_, _, err := svc.Analyze(context.Background(), userID, "또 다른 작업")
	if !errors.HasCode(err, errors.CodeQuotaExceeded) {
		t.Fatalf("expected QUOTA_EXCEEDED, got %v", err)
	}
	assert.Equal(t, models.FreeMonthlyCredits, users.user.CreditsUsed)
}

func TestDailyAnalysis_MonthRolloverResetsQuota(t *testing.T) {
	svc, users, _, userID := newDailyFixture(models.PlanFree)
	march := time.Date(2026, time.March, 31, 23, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return march }

	for i := 0; i < models.FreeMonthlyCredits; i++ {
		_, _, err := svc.Analyze(context.Background(), userID, "3월의 작업 일지")
		assert.NoError(t, err)
	}

	// A new calendar month starts the counter over at one.
	svc.now = func() time.Time { return march.Add(2 * time.Hour) }
	_, remaining, err := svc.Analyze(context.Background(), userID, "4월의 작업 일지")
	assert.NoError(t, err)
	assert.Equal(t, models.FreeMonthlyCredits-1, remaining)
	assert.Equal(t, 1, users.user.CreditsUsed)
}

func TestDailyAnalysis_UnlimitedPlanSkipsQuota(t *testing.T) {
	svc, users, analyzer, userID := newDailyFixture(models.PlanPro)

	for i := 0; i < 10; i++ {
		_, remaining, err := svc.Analyze(context.Background(), userID, "프로 플랜 작업 일지")
		assert.NoError(t, err)
		assert.Equal(t, models.UnlimitedCredits, remaining)
	}
	assert.Equal(t, 10, analyzer.dailyCalls)
	assert.Equal(t, 0, users.user.CreditsUsed)
}

func TestDailyAnalysis_RefundsCreditOnAIFailure(t *testing.T) {
	svc, users, analyzer, userID := newDailyFixture(models.PlanFree)
	analyzer.err = errors.UpstreamRateLimited("AI provider rate limited")

	_, _, err := svc.Analyze(context.Background(), userID, "요금제 한도 테스트")
	if !errors.HasCode(err, errors.CodeUpstreamRateLimited) {
		t.Fatalf("expected UPSTREAM_RATE_LIMITED, got %v", err)
	}
	assert.Equal(t, 1, users.refundCalls)
	assert.Equal(t, 0, users.user.CreditsUsed)
}

func TestDailyAnalysis_UnknownUser(t *testing.T) {
	svc, _, _, _ := newDailyFixture(models.PlanFree)

	_, _, err := svc.Analyze(context.Background(), uuid.New(), "존재하지 않는 사용자")
	if !errors.HasCode(err, errors.CodeNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}
