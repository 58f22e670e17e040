package models

import (
	"testing"
	"time"
)

func TestSameCalendarMonth(t *testing.T) {
	tests := []struct {
		name string
		a    time.Time
		b    time.Time
		want bool
	}{
		{
			name: "same month",
			a:    time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2026, time.March, 31, 23, 59, 59, 0, time.UTC),
			want: true,
		},
		{
			name: "month boundary",
			a:    time.Date(2026, time.March, 31, 23, 59, 59, 0, time.UTC),
			b:    time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC),
			want: false,
		},
		{
			name: "same month different year",
			a:    time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC),
			b:    time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SameCalendarMonth(tt.a, tt.b); got != tt.want {
				t.Errorf("SameCalendarMonth(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRemainingCredits(t *testing.T) {
	tests := []struct {
		name        string
		plan        Plan
		creditsUsed int
		want        int
	}{
		{name: "free untouched", plan: PlanFree, creditsUsed: 0, want: 3},
		{name: "free partially used", plan: PlanFree, creditsUsed: 2, want: 1},
		{name: "free exhausted", plan: PlanFree, creditsUsed: 3, want: 0},
		{name: "free over limit clamps to zero", plan: PlanFree, creditsUsed: 5, want: 0},
		{name: "pro reports sentinel", plan: PlanPro, creditsUsed: 0, want: UnlimitedCredits},
		{name: "pro ignores usage", plan: PlanPro, creditsUsed: 100, want: UnlimitedCredits},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemainingCredits(tt.plan, tt.creditsUsed); got != tt.want {
				t.Errorf("RemainingCredits(%s, %d) = %d, want %d", tt.plan, tt.creditsUsed, got, tt.want)
			}
		})
	}
}

func TestUserUnlimited(t *testing.T) {
	pro := &User{Plan: PlanPro}
	if !pro.Unlimited() {
		t.Error("pro plan should be unlimited")
	}
	free := &User{Plan: PlanFree}
	if free.Unlimited() {
		t.Error("free plan should not be unlimited")
	}
	unknown := &User{Plan: Plan("enterprise")}
	if unknown.Unlimited() {
		t.Error("unknown plans are treated as free")
	}
}
