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

// ProjectRepositoryImpl implements ProjectRepository for PostgreSQL
type ProjectRepositoryImpl struct {
	db *sqlx.DB
}

// NewProjectRepository creates a new PostgreSQL project repository
func NewProjectRepository(db *sqlx.DB) ports.ProjectRepository {
	return &ProjectRepositoryImpl{db: db}
}

// CreateWithAnalyses inserts the portfolio card and claims its source
// analyses (and their records) in one transaction, mirroring the
// analysis/record linkage.
func (r *ProjectRepositoryImpl) CreateWithAnalyses(ctx context.Context, project *models.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO projects (id, user_id, title, tasks, results, summary, analysis_ids, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`, project.ID, project.UserID, project.Title, project.Tasks,
		project.Results, project.Summary, pq.Array(project.AnalysisIDs))
	if err != nil {
		return errors.Wrap(err, "failed to insert project")
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE analyses SET project_id = $1
		WHERE user_id = $2 AND id = ANY($3) AND project_id IS NULL
	`, project.ID, project.UserID, pq.Array(project.AnalysisIDs))
	if err != nil {
		return errors.Wrap(err, "failed to link analyses")
	}

	claimed, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "failed to count linked analyses")
	}
	if claimed != int64(len(project.AnalysisIDs)) {
		return errors.InsufficientRecords("analyses were claimed by a concurrent portfolio build")
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE records SET project_id = $1, updated_at = NOW()
		WHERE user_id = $2 AND analysis_id = ANY($3)
	`, project.ID, project.UserID, pq.Array(project.AnalysisIDs))
	if err != nil {
		return errors.Wrap(err, "failed to link records to project")
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit project")
	}
	return nil
}

// GetByID retrieves one portfolio card scoped to its owner
func (r *ProjectRepositoryImpl) GetByID(ctx context.Context, userID, projectID uuid.UUID) (*models.Project, error) {
	row := r.db.QueryRowxContext(ctx, `
		SELECT id, user_id, title, tasks, results, summary, analysis_ids, created_at
		FROM projects
		WHERE user_id = $1 AND id = $2
	`, userID, projectID)
	project, err := scanProject(row)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("project")
		}
		return nil, errors.Wrap(err, "failed to load project")
	}
	return project, nil
}

// ListByUser returns all the user's portfolio cards, newest first
func (r *ProjectRepositoryImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Project, error) {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT id, user_id, title, tasks, results, summary, analysis_ids, created_at
		FROM projects
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list projects")
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan project")
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate projects")
	}
	return projects, nil
}

func scanProject(row rowScanner) (*models.Project, error) {
	var p models.Project
	err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.Tasks, &p.Results,
		&p.Summary, pq.Array(&p.AnalysisIDs), &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
