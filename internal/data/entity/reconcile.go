package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReconcileResult summarises one expiry cleanup pass.
type ReconcileResult struct {
	RunID        uuid.UUID
	DeletedCount int
	// ExpiredCount counts every candidate flagged expired in this pass,
	// including ones already expired and ones flagged after a failed cascade.
	ExpiredCount int
	Failures     []ReconcileFailure
	// Skipped is set when another process was already running a pass.
	Skipped  bool
	Duration time.Duration
}

// ReconcileFailure keeps the cause for logs and operators. Reason is the
// fixed text safe to hand to API clients.
type ReconcileFailure struct {
	MovieID int64
	Reason  string
	Err     error
}
