package roster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tolga/atcroster/internal/roster"
)

func TestValidatePreAssignments(t *testing.T) {
	cfg := baseConfig()
	catalog, err := roster.NewCatalog(cfg)
	require.NoError(t, err)
	horizon := roster.Horizon{Year: 2026, StartDay: 1, EndDay: 31}

	t.Run("accepts a forced operational shift within the horizon", func(t *testing.T) {
		pre := roster.PreAssignments{
			"alice": {10: {Kind: roster.PreAssignmentForced, Shift: "M"}},
		}
		assert.NoError(t, roster.ValidatePreAssignments(pre, cfg, catalog, horizon))
	})

	t.Run("accepts a leave marker", func(t *testing.T) {
		pre := roster.PreAssignments{
			"bob": {5: {Kind: roster.PreAssignmentLeave}},
		}
		assert.NoError(t, roster.ValidatePreAssignments(pre, cfg, catalog, horizon))
	})

	t.Run("rejects an unknown controller", func(t *testing.T) {
		pre := roster.PreAssignments{
			"carol": {1: {Kind: roster.PreAssignmentLeave}},
		}
		err := roster.ValidatePreAssignments(pre, cfg, catalog, horizon)
		assert.ErrorIs(t, err, roster.ErrConfigError)
	})

	t.Run("rejects a day outside the horizon", func(t *testing.T) {
		pre := roster.PreAssignments{
			"alice": {100: {Kind: roster.PreAssignmentLeave}},
		}
		err := roster.ValidatePreAssignments(pre, cfg, catalog, horizon)
		assert.ErrorIs(t, err, roster.ErrInvalidDay)
	})

	t.Run("rejects a forced shift code that isn't in the catalog", func(t *testing.T) {
		pre := roster.PreAssignments{
			"alice": {10: {Kind: roster.PreAssignmentForced, Shift: "GHOST"}},
		}
		err := roster.ValidatePreAssignments(pre, cfg, catalog, horizon)
		assert.ErrorIs(t, err, roster.ErrConfigError)
	})
}
