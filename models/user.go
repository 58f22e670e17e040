package models

import (
	"time"

	"github.com/google/uuid"
)

// Plan represents a user's subscription tier
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

const (
	// FreeMonthlyCredits is the number of AI analyses a free-plan user
	// gets per calendar month.
	FreeMonthlyCredits = 3

	// UnlimitedCredits is the creditsRemaining sentinel reported for
	// unlimited plans.
	UnlimitedCredits = -1
)

// User represents a system user
type User struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	Email          string     `json:"email" db:"email"`
	Username       string     `json:"username" db:"username"`
	Plan           Plan       `json:"plan" db:"plan"`
	CreditsUsed    int        `json:"credits_used" db:"credits_used"`
	CreditsResetAt *time.Time `json:"credits_reset_at,omitempty" db:"credits_reset_at"`
	IsActive       bool       `json:"is_active" db:"is_active"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`
}

// Unlimited reports whether the user's plan has no monthly credit limit.
// Unknown plan values are treated as free.
func (u *User) Unlimited() bool {
	return u.Plan == PlanPro
}

// SameCalendarMonth reports whether two instants fall in the same
// calendar month of the same year.
func SameCalendarMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// RemainingCredits computes the creditsRemaining value reported to
// clients after a successful analysis: limit minus credits used,
// clamped at zero. Unlimited plans always report the sentinel.
func RemainingCredits(plan Plan, creditsUsed int) int {
	if plan == PlanPro {
		return UnlimitedCredits
	}
	remaining := FreeMonthlyCredits - creditsUsed
	if remaining < 0 {
		return 0
	}
	return remaining
}
