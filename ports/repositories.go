package ports

import (
	"context"
	"time"

	"ilmakase/models"

	"github.com/google/uuid"
)

// UserRepository provides access to user rows and the credit counter
type UserRepository interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error)

	// GetOrCreateByEmail returns the user for the given email, creating
	// the profile row if absent. The bool reports whether a row was
	// created.
	GetOrCreateByEmail(ctx context.Context, email, username string) (*models.User, bool, error)

	// ConsumeCredit atomically resets the monthly counter when the
	// calendar month has rolled over and increments it, bounded by
	// limit, in a single conditional update. It returns the counter
	// value after the increment, or a QUOTA_EXCEEDED error without
	// consuming a credit when the limit is already reached.
	ConsumeCredit(ctx context.Context, userID uuid.UUID, limit int, now time.Time) (int, error)

	// RefundCredit returns one credit after a failed AI invocation so
	// that upstream failures never count against the monthly limit.
	RefundCredit(ctx context.Context, userID uuid.UUID) error
}

// RecordRepository provides access to daily work-log records
type RecordRepository interface {
	Create(ctx context.Context, record *models.Record) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Record, error)

	// ListUnanalyzed returns up to limit records with no analysis link,
	// oldest log date first.
	ListUnanalyzed(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Record, error)

	ListByProject(ctx context.Context, userID, projectID uuid.UUID) ([]*models.Record, error)
}

// AnalysisRepository provides access to analysis artifacts
type AnalysisRepository interface {
	// CreateWithRecords inserts the analysis and links every record in
	// analysis.RecordIDs to it inside one transaction. The link is
	// conditional on the record being unclaimed; if any record was
	// already consumed the whole transaction is rolled back.
	CreateWithRecords(ctx context.Context, analysis *models.Analysis) error

	GetByID(ctx context.Context, userID, analysisID uuid.UUID) (*models.Analysis, error)

	// ListUnassigned returns up to limit analyses not yet folded into a
	// portfolio card, oldest first.
	ListUnassigned(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Analysis, error)

	ListByProject(ctx context.Context, userID, projectID uuid.UUID) ([]*models.Analysis, error)
}

// ProjectRepository provides access to portfolio cards
type ProjectRepository interface {
	// CreateWithAnalyses inserts the project and links every analysis in
	// project.AnalysisIDs (and their records) to it inside one
	// transaction.
	CreateWithAnalyses(ctx context.Context, project *models.Project) error

	GetByID(ctx context.Context, userID, projectID uuid.UUID) (*models.Project, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Project, error)
}
