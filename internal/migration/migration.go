package migration

import (
	"context"

	"ilmakase/internal/errors"

	"github.com/jmoiron/sqlx"
)

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{version: "1.0.0"}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createUsersTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create users table")
	}
	if err := r.createAnalysesTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create analyses table")
	}
	if err := r.createProjectsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create projects table")
	}
	if err := r.createRecordsTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create records table")
	}
	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}
	return nil
}

func (r *MigrationRunner) createUsersTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			email VARCHAR(255) UNIQUE NOT NULL,
			username VARCHAR(100),
			plan VARCHAR(20) NOT NULL DEFAULT 'free',
			credits_used INTEGER NOT NULL DEFAULT 0,
			credits_reset_at TIMESTAMP WITH TIME ZONE,
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createAnalysesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS analyses (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			pattern TEXT NOT NULL,
			workflow TEXT NOT NULL,
			keywords TEXT[] NOT NULL DEFAULT '{}',
			insight TEXT NOT NULL,
			record_ids UUID[] NOT NULL,
			project_id UUID,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createProjectsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS projects (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			tasks TEXT[] NOT NULL DEFAULT '{}',
			results TEXT[] NOT NULL DEFAULT '{}',
			summary TEXT NOT NULL DEFAULT '',
			analysis_ids UUID[] NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createRecordsTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS records (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			log_date DATE NOT NULL,
			contents TEXT[] NOT NULL,
			keywords TEXT[],
			analysis_id UUID REFERENCES analyses(id),
			project_id UUID REFERENCES projects(id),
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_records_user_unanalyzed
			ON records (user_id, log_date) WHERE analysis_id IS NULL;
		CREATE INDEX IF NOT EXISTS idx_records_user_date ON records (user_id, log_date DESC);
		CREATE INDEX IF NOT EXISTS idx_analyses_user_unassigned
			ON analyses (user_id, created_at) WHERE project_id IS NULL;
		CREATE INDEX IF NOT EXISTS idx_projects_user ON projects (user_id, created_at DESC);
	`)
	return err
}
