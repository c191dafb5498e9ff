package roster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tolga/atcroster/internal/roster"
)

func TestApplyDefaults(t *testing.T) {
	t.Run("fills in every omitted recognised field", func(t *testing.T) {
		cfg := roster.RosterConfig{Controllers: []string{"alice"}}
		cfg = cfg.ApplyDefaults()

		assert.Equal(t, 11, cfg.Contract.MinRestHours)
		assert.Equal(t, 4, cfg.Contract.MaxConsecutiveShifts)
		assert.Equal(t, 36, cfg.Contract.MaxHoursCalendarWeek)
		assert.Equal(t, 44, cfg.Contract.MaxHoursRolling7)
		assert.Equal(t, 4, cfg.Contract.BufferDays)
		assert.Equal(t, 10, cfg.Contract.SolverTimeLimitSeconds)
		assert.True(t, cfg.Contract.Require2ConsecutiveRestDays)
		assert.Equal(t, 100, cfg.Weights.Balance)
		assert.Equal(t, 30000, cfg.Weights.SoftCoverPenalty)
		assert.Equal(t, 10, cfg.Weights.PreferenceReward)
	})

	t.Run("preserves an explicit override", func(t *testing.T) {
		cfg := roster.RosterConfig{
			Controllers: []string{"alice"},
			Contract:    roster.Contract{MinRestHours: 12, BufferDays: 2},
		}
		cfg = cfg.ApplyDefaults()
		assert.Equal(t, 12, cfg.Contract.MinRestHours)
		assert.Equal(t, 2, cfg.Contract.BufferDays)
		// Require2ConsecutiveRestDays stays false: the caller already set a
		// field on Contract, so it is no longer indistinguishable from the
		// zero value.
		assert.False(t, cfg.Contract.Require2ConsecutiveRestDays)
	})
}

func TestValidateConfig(t *testing.T) {
	valid := func() roster.RosterConfig {
		cfg := baseConfig()
		return cfg.ApplyDefaults()
	}

	t.Run("accepts a well-formed configuration", func(t *testing.T) {
		assert.NoError(t, roster.ValidateConfig(valid()))
	})

	t.Run("rejects an empty controller list", func(t *testing.T) {
		cfg := valid()
		cfg.Controllers = nil
		assert.ErrorIs(t, roster.ValidateConfig(cfg), roster.ErrConfigError)
	})

	t.Run("rejects a negative buffer", func(t *testing.T) {
		cfg := valid()
		cfg.Contract.BufferDays = -1
		assert.ErrorIs(t, roster.ValidateConfig(cfg), roster.ErrConfigError)
	})

	t.Run("rejects a duplicate controller", func(t *testing.T) {
		cfg := valid()
		cfg.Controllers = []string{"alice", "alice"}
		assert.ErrorIs(t, roster.ValidateConfig(cfg), roster.ErrConfigError)
	})

	t.Run("rejects a shift that is both critical and soft-covered", func(t *testing.T) {
		cfg := valid()
		cfg.SoftCoveredShift = "M"
		cfg.CriticalShifts = []string{"M"}
		assert.ErrorIs(t, roster.ValidateConfig(cfg), roster.ErrConfigError)
	})

	t.Run("rejects an unknown controller in OfficeBound", func(t *testing.T) {
		cfg := valid()
		cfg.OfficeBound = map[string]bool{"carol": true}
		assert.ErrorIs(t, roster.ValidateConfig(cfg), roster.ErrConfigError)
	})

	t.Run("rejects a calendar ban with an out-of-range weekday", func(t *testing.T) {
		cfg := valid()
		cfg.CalendarBans = []roster.CalendarBan{{Controller: "alice", Weekday: 9}}
		assert.ErrorIs(t, roster.ValidateConfig(cfg), roster.ErrConfigError)
	})

	t.Run("rejects a strict pair policy with no pair list", func(t *testing.T) {
		cfg := valid()
		cfg.PerController = map[string]roster.PerControllerConfig{
			"alice": {PairPolicy: roster.PairPolicyStrict},
		}
		assert.ErrorIs(t, roster.ValidateConfig(cfg), roster.ErrConfigError)
	})

	t.Run("rejects a preference set that doesn't intersect any known shift", func(t *testing.T) {
		cfg := valid()
		cfg.PerController = map[string]roster.PerControllerConfig{
			"alice": {Preferences: &roster.PreferenceSet{Weekday: []string{"GHOST"}}},
		}
		assert.ErrorIs(t, roster.ValidateConfig(cfg), roster.ErrConfigError)
	})

	t.Run("rejects a no-overlap peer that is the controller itself", func(t *testing.T) {
		cfg := valid()
		cfg.PerController = map[string]roster.PerControllerConfig{
			"alice": {NoOverlapWith: "alice"},
		}
		assert.ErrorIs(t, roster.ValidateConfig(cfg), roster.ErrConfigError)
	})

	t.Run("rejects a negative monthly pseudo cap", func(t *testing.T) {
		cfg := valid()
		cfg.MonthlyPseudoCap = map[string]int{"alice": -1}
		assert.ErrorIs(t, roster.ValidateConfig(cfg), roster.ErrConfigError)
	})
}
