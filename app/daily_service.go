package app

import (
	"context"
	"strings"
	"time"

	"ilmakase/internal/errors"
	"ilmakase/models"
	"ilmakase/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DailyAnalysisService gates daily analyses behind the monthly credit
// quota and reports credits remaining.
type DailyAnalysisService struct {
	users    ports.UserRepository
	analyzer ports.Analyzer
	now      func() time.Time
}

// NewDailyAnalysisService creates the quota-gated daily analysis
// service
func NewDailyAnalysisService(users ports.UserRepository, analyzer ports.Analyzer) *DailyAnalysisService {
	return &DailyAnalysisService{
		users:    users,
		analyzer: analyzer,
		now:      time.Now,
	}
}

// Analyze summarizes one day's work log. Free-plan users consume one
// credit per successful analysis; the credit is returned when the AI
// call fails. The returned int is the creditsRemaining value for the
// client (-1 for unlimited plans).
func (s *DailyAnalysisService) Analyze(ctx context.Context, userID uuid.UUID, workLogs string) (*models.DailyResult, int, error) {
	if strings.TrimSpace(workLogs) == "" {
		return nil, 0, errors.ValidationError("workLogs must not be empty")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	if user.Unlimited() {
		result, err := s.analyzer.AnalyzeDaily(ctx, workLogs)
		if err != nil {
			return nil, 0, err
		}
		return result, models.UnlimitedCredits, nil
	}

	creditsUsed, err := s.users.ConsumeCredit(ctx, userID, models.FreeMonthlyCredits, s.now())
	if err != nil {
		return nil, 0, err
	}

	result, err := s.analyzer.AnalyzeDaily(ctx, workLogs)
	if err != nil {
		// The analysis never happened; hand the credit back.
		if refundErr := s.users.RefundCredit(ctx, userID); refundErr != nil {
			log.Error().Err(refundErr).Str("user_id", userID.String()).Msg("Failed to refund credit after AI failure")
		}
		return nil, 0, err
	}

	return result, models.RemainingCredits(user.Plan, creditsUsed), nil
}
