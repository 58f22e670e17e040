package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"

	"ilmakase/internal/errors"
	"ilmakase/models"
	"ilmakase/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// AnalysisRepositoryImpl implements AnalysisRepository for PostgreSQL
type AnalysisRepositoryImpl struct {
	db *sqlx.DB
}

// NewAnalysisRepository creates a new PostgreSQL analysis repository
func NewAnalysisRepository(db *sqlx.DB) ports.AnalysisRepository {
	return &AnalysisRepositoryImpl{db: db}
}

// CreateWithRecords inserts the analysis and claims its source records
// in one transaction. The record update is conditional on the record
// being unclaimed; unless every record in the batch is claimed the
// transaction is rolled back, so an analysis and its record links are
// all-or-nothing and a record is consumed exactly once.
func (r *AnalysisRepositoryImpl) CreateWithRecords(ctx context.Context, analysis *models.Analysis) error {
	if analysis.ID == uuid.Nil {
		analysis.ID = uuid.New()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO analyses (id, user_id, pattern, workflow, keywords, insight, record_ids, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`, analysis.ID, analysis.UserID, analysis.Pattern, analysis.Workflow,
		analysis.Keywords, analysis.Insight, pq.Array(analysis.RecordIDs))
	if err != nil {
		return errors.Wrap(err, "failed to insert analysis")
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE records SET
			analysis_id = $1,
			keywords = $2,
			updated_at = NOW()
		WHERE user_id = $3 AND id = ANY($4) AND analysis_id IS NULL
	`, analysis.ID, analysis.Keywords, analysis.UserID, pq.Array(analysis.RecordIDs))
	if err != nil {
		return errors.Wrap(err, "failed to link records")
	}

	claimed, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to count linked records")
	}
	if claimed != int64(len(analysis.RecordIDs)) {
		// A concurrent analysis consumed part of the batch.
		return errors.InsufficientRecords("records were claimed by a concurrent analysis")
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit analysis")
	}
	return nil
}

// GetByID retrieves one analysis scoped to its owner
func (r *AnalysisRepositoryImpl) GetByID(ctx context.Context, userID, analysisID uuid.UUID) (*models.Analysis, error) {
	row := r.db.QueryRowxContext(ctx, `
		SELECT id, user_id, pattern, workflow, keywords, insight, record_ids, project_id, created_at
		FROM analyses
		WHERE user_id = $1 AND id = $2
	`, userID, analysisID)
	analysis, err := scanAnalysis(row)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("analysis")
		}
		return nil, errors.Wrap(err, "failed to load analysis")
	}
	return analysis, nil
}

// ListUnassigned returns analyses not yet folded into a portfolio card,
// oldest first
func (r *AnalysisRepositoryImpl) ListUnassigned(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Analysis, error) {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT id, user_id, pattern, workflow, keywords, insight, record_ids, project_id, created_at
		FROM analyses
		WHERE user_id = $1 AND project_id IS NULL
		ORDER BY created_at ASC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list unassigned analyses")
	}
	defer rows.Close()
	return collectAnalyses(rows)
}

// ListByProject returns the analyses folded into a portfolio card
func (r *AnalysisRepositoryImpl) ListByProject(ctx context.Context, userID, projectID uuid.UUID) ([]*models.Analysis, error) {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT id, user_id, pattern, workflow, keywords, insight, record_ids, project_id, created_at
		FROM analyses
		WHERE user_id = $1 AND project_id = $2
		ORDER BY created_at ASC
	`, userID, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list project analyses")
	}
	defer rows.Close()
	return collectAnalyses(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAnalysis(row rowScanner) (*models.Analysis, error) {
	var a models.Analysis
	err := row.Scan(&a.ID, &a.UserID, &a.Pattern, &a.Workflow, &a.Keywords,
		&a.Insight, pq.Array(&a.RecordIDs), &a.ProjectID, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func collectAnalyses(rows *sqlx.Rows) ([]*models.Analysis, error) {
	var analyses []*models.Analysis
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan analysis")
		}
		analyses = append(analyses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate analyses")
	}
	return analyses, nil
}
