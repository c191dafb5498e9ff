package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// RosterRunStatus tracks the async lifecycle of a submitted roster run,
// independent of the roster engine's own optimal/feasible/infeasible
// terminal status.
type RosterRunStatus string

const (
	RosterRunStatusQueued  RosterRunStatus = "queued"
	RosterRunStatusRunning RosterRunStatus = "running"
	RosterRunStatusDone    RosterRunStatus = "done"
	RosterRunStatusFailed  RosterRunStatus = "failed"
)

// RosterRun persists one submitted roster-solving request and, once it
// completes, its result. ConfigJSON and PreAssignmentsJSON are the inputs
// exactly as submitted; ResultJSON and ErrorMessage are mutually exclusive
// outcomes.
type RosterRun struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Status             RosterRunStatus `gorm:"type:varchar(20);not null;default:'queued'" json:"status"`
	Year               int             `gorm:"not null" json:"year"`
	StartDay           int             `gorm:"not null" json:"start_day"`
	EndDay             int             `gorm:"not null" json:"end_day"`
	IdempotencyKey     string          `gorm:"type:varchar(255);uniqueIndex" json:"idempotency_key,omitempty"`
	ConfigJSON         datatypes.JSON  `gorm:"type:jsonb;not null" json:"config"`
	PreAssignmentsJSON datatypes.JSON  `gorm:"type:jsonb;default:'{}'" json:"pre_assignments"`
	ResultJSON         datatypes.JSON  `gorm:"type:jsonb" json:"result,omitempty"`
	SolverStatus       string          `gorm:"type:varchar(20)" json:"solver_status,omitempty"`
	Warnings           pq.StringArray  `gorm:"type:text[]" json:"warnings,omitempty"`
	ErrorMessage       *string         `gorm:"type:text" json:"error_message,omitempty"`
	StartedAt          *time.Time      `gorm:"type:timestamptz" json:"started_at,omitempty"`
	CompletedAt        *time.Time      `gorm:"type:timestamptz" json:"completed_at,omitempty"`
	CreatedAt          time.Time       `gorm:"type:timestamptz;default:now()" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"type:timestamptz;default:now()" json:"updated_at"`
}

// TableName returns the database table name.
func (RosterRun) TableName() string { return "roster_runs" }

// IsTerminal reports whether the run has finished, successfully or not.
func (r *RosterRun) IsTerminal() bool {
	return r.Status == RosterRunStatusDone || r.Status == RosterRunStatusFailed
}
