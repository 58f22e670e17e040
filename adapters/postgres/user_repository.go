package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"time"

	"ilmakase/internal/errors"
	"ilmakase/models"
	"ilmakase/ports"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// UserRepositoryImpl implements UserRepository for PostgreSQL
type UserRepositoryImpl struct {
	db *sqlx.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sqlx.DB) ports.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// GetByID retrieves a user by their ID
func (r *UserRepositoryImpl) GetByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `
		SELECT id, email, username, plan, credits_used, credits_reset_at, is_active, created_at, updated_at
		FROM users
		WHERE id = $1
	`, userID)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("user")
		}
		return nil, errors.Wrap(err, "failed to load user")
	}
	return &user, nil
}

// GetOrCreateByEmail returns the user for an email, creating the
// profile row on first sign-in.
func (r *UserRepositoryImpl) GetOrCreateByEmail(ctx context.Context, email, username string) (*models.User, bool, error) {
	user, err := r.getByEmail(ctx, email)
	if err == nil {
		return user, false, nil
	}
	if !errors.HasCode(err, errors.CodeNotFound) {
		return nil, false, err
	}

	created := models.User{
		ID:       uuid.New(),
		Email:    email,
		Username: username,
		Plan:     models.PlanFree,
		IsActive: true,
	}

	_, err = r.db.NamedExecContext(ctx, `
		INSERT INTO users (id, email, username, plan, credits_used, is_active, created_at, updated_at)
		VALUES (:id, :email, :username, :plan, 0, :is_active, NOW(), NOW())
	`, created)
	if err != nil {
		// Unique violation: the row appeared between the select and the
		// insert. Treat it as the existing profile.
		var pqErr *pq.Error
		if stderrors.As(err, &pqErr) && pqErr.Code == "23505" {
			user, err := r.getByEmail(ctx, email)
			return user, false, err
		}
		return nil, false, errors.Wrap(err, "failed to create user profile")
	}

	user, err = r.getByEmail(ctx, email)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

func (r *UserRepositoryImpl) getByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.GetContext(ctx, &user, `
		SELECT id, email, username, plan, credits_used, credits_reset_at, is_active, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)
	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return nil, errors.NotFound("user")
		}
		return nil, errors.Wrap(err, "failed to load user by email")
	}
	return &user, nil
}

// ConsumeCredit performs the monthly reset and the bounded increment in
// one conditional UPDATE so that concurrent requests can never exceed
// the limit or double-reset the counter.
func (r *UserRepositoryImpl) ConsumeCredit(ctx context.Context, userID uuid.UUID, limit int, now time.Time) (int, error) {
	var creditsUsed int
	err := r.db.QueryRowxContext(ctx, `
		UPDATE users SET
			credits_used = CASE
				WHEN credits_reset_at IS NULL
				  OR date_trunc('month', credits_reset_at) <> date_trunc('month', $2::timestamptz)
				THEN 1
				ELSE credits_used + 1
			END,
			credits_reset_at = CASE
				WHEN credits_reset_at IS NULL
				  OR date_trunc('month', credits_reset_at) <> date_trunc('month', $2::timestamptz)
				THEN $2::timestamptz
				ELSE credits_reset_at
			END,
			updated_at = NOW()
		WHERE id = $1
		  AND (
			credits_reset_at IS NULL
			OR date_trunc('month', credits_reset_at) <> date_trunc('month', $2::timestamptz)
			OR credits_used < $3
		  )
		RETURNING credits_used
	`, userID, now, limit).Scan(&creditsUsed)

	if err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			// Either the user does not exist or the limit was reached.
			if _, getErr := r.GetByID(ctx, userID); getErr != nil {
				return 0, getErr
			}
			return 0, errors.QuotaExceeded("monthly AI credit limit reached")
		}
		return 0, errors.Wrap(err, "failed to consume credit")
	}
	return creditsUsed, nil
}

// RefundCredit returns one credit after a failed AI invocation.
func (r *UserRepositoryImpl) RefundCredit(ctx context.Context, userID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE users SET
			credits_used = GREATEST(credits_used - 1, 0),
			updated_at = NOW()
		WHERE id = $1
	`, userID)
	if err != nil {
		return errors.Wrap(err, "failed to refund credit")
	}
	return nil
}
