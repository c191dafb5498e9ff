package roster_test

import (
	"context"
	"testing"

	"github.com/nextmv-io/sdk/mip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tolga/atcroster/internal/roster"
)

// The first two tests exercise the constraint builder directly against a
// live mip.Model, without going through Solve; the office-bound test below
// checks its constraint through Solve.

func TestBuildConstraintsNilPreAssignments(t *testing.T) {
	cfg := baseConfig().ApplyDefaults()
	catalog, err := roster.NewCatalog(cfg)
	require.NoError(t, err)

	m := mip.NewModel()
	vars := roster.NewVariables(m, cfg, catalog, -cfg.Contract.BufferDays, 31+cfg.Contract.BufferDays)
	horizon := roster.Horizon{Year: 2026, StartDay: 1, EndDay: 31}

	err = roster.BuildConstraints(m, cfg, catalog, vars, nil, horizon, -cfg.Contract.BufferDays, 31+cfg.Contract.BufferDays)
	require.NoError(t, err)

	assert.NotNil(t, m)
}

func TestBuildConstraintsRejectsNothingForEmptyPreAssignments(t *testing.T) {
	cfg := baseConfig().ApplyDefaults()
	catalog, err := roster.NewCatalog(cfg)
	require.NoError(t, err)

	extendedStart := 1 - cfg.Contract.BufferDays
	extendedEnd := 31 + cfg.Contract.BufferDays
	m := mip.NewModel()
	vars := roster.NewVariables(m, cfg, catalog, extendedStart, extendedEnd)
	horizon := roster.Horizon{Year: 2026, StartDay: 1, EndDay: 31}

	err = roster.BuildConstraints(m, cfg, catalog, vars, roster.PreAssignments{}, horizon, extendedStart, extendedEnd)
	assert.NoError(t, err)
}

// TestBuildConstraintsDailyRestSkipsOfficeBoundControllers exercises C4's
// office-bound exemption at the solver level: dailyRest must not be wired
// for a controller marked office-bound, so two shifts with a rest gap far
// below the contractual minimum are still accepted back to back.
func TestBuildConstraintsDailyRestSkipsOfficeBoundControllers(t *testing.T) {
	cfg := roster.RosterConfig{
		Year:        2026,
		Controllers: []string{"alice"},
		OfficeBound: map[string]bool{"alice": true},
		Shifts: map[string]roster.ShiftInput{
			"M": {Start: 6, End: 14},
			"A": {Start: 14, End: 22},
		},
	}
	horizon := roster.Horizon{Year: 2026, StartDay: 1, EndDay: 2}
	pre := roster.PreAssignments{
		"alice": {
			1: {Kind: roster.PreAssignmentForced, Shift: "A"},
			2: {Kind: roster.PreAssignmentForced, Shift: "M"},
		},
	}

	result, err := roster.Solve(context.Background(), cfg, pre, horizon)
	require.NoError(t, err)
	assert.Equal(t, "A", result.Table["alice"][1])
	assert.Equal(t, "M", result.Table["alice"][2])
}
