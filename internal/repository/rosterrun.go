package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tolga/atcroster/internal/model"
)

// ErrRosterRunNotFound indicates no roster run exists with the given ID.
var ErrRosterRunNotFound = errors.New("roster run not found")

// RosterRunRepository handles roster_runs data access.
type RosterRunRepository struct {
	db *DB
}

// NewRosterRunRepository creates a new roster run repository.
func NewRosterRunRepository(db *DB) *RosterRunRepository {
	return &RosterRunRepository{db: db}
}

// Create inserts a new roster run in the queued state.
func (r *RosterRunRepository) Create(ctx context.Context, run *model.RosterRun) error {
	return r.db.GORM.WithContext(ctx).Create(run).Error
}

// GetByID retrieves a roster run by ID.
func (r *RosterRunRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.RosterRun, error) {
	var run model.RosterRun
	err := r.db.GORM.WithContext(ctx).First(&run, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRosterRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get roster run: %w", err)
	}
	return &run, nil
}

// GetByIdempotencyKey retrieves a previously submitted run by its caller-
// supplied idempotency key. Returns nil, nil if no such run exists.
func (r *RosterRunRepository) GetByIdempotencyKey(ctx context.Context, key string) (*model.RosterRun, error) {
	if key == "" {
		return nil, nil
	}
	var run model.RosterRun
	err := r.db.GORM.WithContext(ctx).
		Where("idempotency_key = ?", key).
		First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get roster run by idempotency key: %w", err)
	}
	return &run, nil
}

// Update saves the full state of an existing roster run.
func (r *RosterRunRepository) Update(ctx context.Context, run *model.RosterRun) error {
	return r.db.GORM.WithContext(ctx).Save(run).Error
}
