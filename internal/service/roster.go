// Package service wires the roster engine to persistence: submitting a
// run, running the solver in the background, and recording the outcome.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/tolga/atcroster/internal/model"
	"github.com/tolga/atcroster/internal/roster"
)

// Service errors.
var (
	ErrRosterRunNotFound = errors.New("roster run not found")
	ErrInvalidRequest    = errors.New("invalid roster run request")
)

// rosterRunRepositoryForService defines the data access this service needs.
type rosterRunRepositoryForService interface {
	Create(ctx context.Context, run *model.RosterRun) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.RosterRun, error)
	GetByIdempotencyKey(ctx context.Context, key string) (*model.RosterRun, error)
	Update(ctx context.Context, run *model.RosterRun) error
}

// RosterService orchestrates roster run submission and solving.
type RosterService struct {
	repo rosterRunRepositoryForService
}

// NewRosterService creates a new RosterService instance.
func NewRosterService(repo rosterRunRepositoryForService) *RosterService {
	return &RosterService{repo: repo}
}

// SubmitInput is the caller-supplied request to solve one roster horizon.
type SubmitInput struct {
	Year           int
	StartDay       int
	EndDay         int
	Config         roster.RosterConfig
	PreAssignments roster.PreAssignments
	IdempotencyKey string
}

// Submit records a new roster run in the queued state and starts solving it
// in the background, bounded by cfg.Contract.SolverTimeLimitSeconds. If
// IdempotencyKey is set and a prior run with the same key exists, that run
// is returned unchanged instead of starting a second solve.
func (s *RosterService) Submit(ctx context.Context, input SubmitInput) (*model.RosterRun, error) {
	if input.StartDay <= 0 || input.EndDay < input.StartDay {
		return nil, fmt.Errorf("%w: start_day/end_day out of order", ErrInvalidRequest)
	}

	if existing, err := s.repo.GetByIdempotencyKey(ctx, input.IdempotencyKey); err != nil {
		return nil, fmt.Errorf("failed to check idempotency key: %w", err)
	} else if existing != nil {
		return existing, nil
	}

	configJSON, err := json.Marshal(input.Config)
	if err != nil {
		return nil, fmt.Errorf("%w: config: %s", ErrInvalidRequest, err)
	}
	preAssignmentsJSON, err := json.Marshal(input.PreAssignments)
	if err != nil {
		return nil, fmt.Errorf("%w: pre_assignments: %s", ErrInvalidRequest, err)
	}

	run := &model.RosterRun{
		Status:             model.RosterRunStatusQueued,
		Year:               input.Year,
		StartDay:           input.StartDay,
		EndDay:             input.EndDay,
		IdempotencyKey:     input.IdempotencyKey,
		ConfigJSON:         configJSON,
		PreAssignmentsJSON: preAssignmentsJSON,
	}
	if err := s.repo.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to create roster run: %w", err)
	}

	go s.runAndRecord(run.ID, input)

	return run, nil
}

// runAndRecord runs the solver to completion (or until its own deadline)
// and persists whatever Solve returns. It uses a fresh background context
// so the solve isn't cancelled when the originating HTTP request returns.
func (s *RosterService) runAndRecord(id uuid.UUID, input SubmitInput) {
	ctx := context.Background()

	run, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("roster_run_id", id.String()).Msg("failed to reload roster run before solving")
		return
	}

	now := time.Now().UTC()
	run.Status = model.RosterRunStatusRunning
	run.StartedAt = &now
	if err := s.repo.Update(ctx, run); err != nil {
		log.Error().Err(err).Str("roster_run_id", id.String()).Msg("failed to mark roster run running")
	}

	timeLimit := time.Duration(input.Config.ApplyDefaults().Contract.SolverTimeLimitSeconds) * time.Second
	solveCtx, cancel := context.WithTimeout(ctx, timeLimit+5*time.Second)
	defer cancel()

	horizon := roster.Horizon{Year: input.Year, StartDay: input.StartDay, EndDay: input.EndDay}
	result, solveErr := roster.Solve(solveCtx, input.Config, input.PreAssignments, horizon)

	completed := time.Now().UTC()
	run.CompletedAt = &completed

	if solveErr != nil {
		run.Status = model.RosterRunStatusFailed
		msg := solveErr.Error()
		run.ErrorMessage = &msg
	} else {
		resultJSON, err := json.Marshal(result.Table)
		if err != nil {
			run.Status = model.RosterRunStatusFailed
			msg := fmt.Sprintf("failed to marshal result: %s", err)
			run.ErrorMessage = &msg
		} else {
			run.Status = model.RosterRunStatusDone
			run.ResultJSON = resultJSON
			run.SolverStatus = result.Status
			run.Warnings = result.Warnings
		}
	}

	if err := s.repo.Update(ctx, run); err != nil {
		log.Error().Err(err).Str("roster_run_id", id.String()).Msg("failed to persist roster run outcome")
	}
}

// GetByID retrieves a roster run by ID.
func (s *RosterService) GetByID(ctx context.Context, id uuid.UUID) (*model.RosterRun, error) {
	run, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, ErrRosterRunNotFound
	}
	return run, nil
}
