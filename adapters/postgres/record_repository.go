package postgres

import (
	"context"

	"ilmakase/internal/errors"
	"ilmakase/models"
	"ilmakase/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// RecordRepositoryImpl implements RecordRepository for PostgreSQL
type RecordRepositoryImpl struct {
	db *sqlx.DB
}

// NewRecordRepository creates a new PostgreSQL record repository
func NewRecordRepository(db *sqlx.DB) ports.RecordRepository {
	return &RecordRepositoryImpl{db: db}
}

// Create inserts a new daily work-log record
func (r *RecordRepositoryImpl) Create(ctx context.Context, record *models.Record) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO records (id, user_id, log_date, contents, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`, record.ID, record.UserID, record.LogDate, record.Contents)
	if err != nil {
		return errors.Wrap(err, "failed to create record")
	}
	return nil
}

// ListByUser returns the user's records, newest log date first
func (r *RecordRepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Record, error) {
	var records []*models.Record
	err := r.db.SelectContext(ctx, &records, `
		SELECT id, user_id, log_date, contents, keywords, analysis_id, project_id, created_at, updated_at
		FROM records
		WHERE user_id = $1
		ORDER BY log_date DESC, created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list records")
	}
	return records, nil
}

// ListUnanalyzed returns up to limit unconsumed records, oldest log
// date first, so analyses progress chronologically.
func (r *RecordRepositoryImpl) ListUnanalyzed(ctx context.Context, userID uuid.UUID, limit int) ([]*models.Record, error) {
	var records []*models.Record
	err := r.db.SelectContext(ctx, &records, `
		SELECT id, user_id, log_date, contents, keywords, analysis_id, project_id, created_at, updated_at
		FROM records
		WHERE user_id = $1 AND analysis_id IS NULL
		ORDER BY log_date ASC, created_at ASC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list unanalyzed records")
	}
	return records, nil
}

// ListByProject returns the records folded into a portfolio card
func (r *RecordRepositoryImpl) ListByProject(ctx context.Context, userID, projectID uuid.UUID) ([]*models.Record, error) {
	var records []*models.Record
	err := r.db.SelectContext(ctx, &records, `
		SELECT id, user_id, log_date, contents, keywords, analysis_id, project_id, created_at, updated_at
		FROM records
		WHERE user_id = $1 AND project_id = $2
		ORDER BY log_date ASC
	`, userID, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list project records")
	}
	return records, nil
}
