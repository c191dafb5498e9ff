package roster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tolga/atcroster/internal/roster"
)

func baseConfig() roster.RosterConfig {
	return roster.RosterConfig{
		Year:        2026,
		Controllers: []string{"alice", "bob"},
		Shifts: map[string]roster.ShiftInput{
			"M": {Start: 6, End: 14},
			"E": {Start: 14, End: 22},
			"N": {Start: 22, End: 6},
		},
	}
}

func TestNewCatalog(t *testing.T) {
	t.Run("normalizes whole-hour shifts", func(t *testing.T) {
		cat, err := roster.NewCatalog(baseConfig())
		require.NoError(t, err)

		m, ok := cat.Shift("M")
		require.True(t, ok)
		assert.Equal(t, 600, m.Start)
		assert.Equal(t, 1400, m.End)
		assert.Equal(t, 800, m.DurationCenti)
		assert.False(t, m.WrapsMidnight())
	})

	t.Run("wraps midnight correctly", func(t *testing.T) {
		cat, err := roster.NewCatalog(baseConfig())
		require.NoError(t, err)

		n, ok := cat.Shift("N")
		require.True(t, ok)
		assert.True(t, n.WrapsMidnight())
		assert.Equal(t, 800, n.DurationCenti)
	})

	t.Run("normalizes fractional hours without float drift", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Shifts["D"] = roster.ShiftInput{Start: 7.5, End: 15.75}
		cat, err := roster.NewCatalog(cfg)
		require.NoError(t, err)

		d, ok := cat.Shift("D")
		require.True(t, ok)
		assert.Equal(t, 750, d.Start)
		assert.Equal(t, 1575, d.End)
	})

	t.Run("rejects an empty shift map", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Shifts = nil
		_, err := roster.NewCatalog(cfg)
		assert.ErrorIs(t, err, roster.ErrConfigError)
	})

	t.Run("rejects an out-of-range time", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Shifts["X"] = roster.ShiftInput{Start: 25, End: 26}
		_, err := roster.NewCatalog(cfg)
		assert.ErrorIs(t, err, roster.ErrConfigError)
	})

	t.Run("rejects a zero-duration shift", func(t *testing.T) {
		cfg := baseConfig()
		cfg.Shifts["Z"] = roster.ShiftInput{Start: 8, End: 8}
		_, err := roster.NewCatalog(cfg)
		assert.ErrorIs(t, err, roster.ErrConfigError)
	})

	t.Run("includes pseudo shifts among codes but not operational codes", func(t *testing.T) {
		cfg := baseConfig()
		cfg.PseudoShifts = map[string]roster.PseudoShiftInput{
			"TRN": {Duration: 6, CountedMonthly: true},
		}
		cat, err := roster.NewCatalog(cfg)
		require.NoError(t, err)

		assert.Contains(t, cat.Codes(), "TRN")
		assert.NotContains(t, cat.OperationalCodes(), "TRN")

		trn, ok := cat.Shift("TRN")
		require.True(t, ok)
		assert.Equal(t, roster.ShiftKindPseudo, trn.Kind)
		assert.Equal(t, 600, trn.DurationCenti)
	})

	t.Run("rejects a pseudo code colliding with an operational code", func(t *testing.T) {
		cfg := baseConfig()
		cfg.PseudoShifts = map[string]roster.PseudoShiftInput{"M": {Duration: 4}}
		_, err := roster.NewCatalog(cfg)
		assert.ErrorIs(t, err, roster.ErrConfigError)
	})
}
