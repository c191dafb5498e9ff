package roster

import (
	"github.com/nextmv-io/sdk/mip"

	"github.com/tolga/atcroster/internal/calendar"
)

// BuildObjective wires the four weighted terms from §4.3 into m's
// objective: minimize load-imbalance (via the maximum per-controller
// assignment count), minimize unmet soft coverage, and reward matched
// weekday/weekend preferences and matched preferred shift-pairs. The
// objective is a single minimization; rewards enter as negative-weight
// terms.
func BuildObjective(m mip.Model, cfg RosterConfig, catalog *Catalog, vars *Variables, horizon Horizon) error {
	obj := m.Objective()
	obj.SetMinimize()

	addBalanceTerms(m, obj, cfg, catalog, vars, horizon)
	addSoftCoverPenalty(m, obj, cfg, vars, horizon)
	addPreferenceRewards(obj, cfg, vars, horizon)
	addPreferredPairRewards(m, obj, cfg, vars, horizon)

	return nil
}

// addBalanceTerms implements the min-max fairness proxy from §4.3: a shared
// auxiliary maxShifts bounded above every controller's total assignment
// count over the horizon (shifts, not hours), penalized by Weights.Balance.
func addBalanceTerms(m mip.Model, obj mip.Objective, cfg RosterConfig, catalog *Catalog, vars *Variables, horizon Horizon) {
	maxShifts := m.NewFloat(0, float64(horizon.EndDay-horizon.StartDay+1))
	codes := catalog.Codes()

	for _, controller := range cfg.Controllers {
		bound := m.NewConstraint(mip.LessThanOrEqual, 0.0)
		bound.NewTerm(-1.0, maxShifts)
		for day := horizon.StartDay; day <= horizon.EndDay; day++ {
			for _, code := range codes {
				bound.NewTerm(1.0, vars.X(controller, code, day))
			}
		}
	}

	obj.NewTerm(float64(cfg.Weights.Balance), maxShifts)
}

// addSoftCoverPenalty penalizes every day the soft-covered shift goes
// unfilled. unmet[d] = 1 - Σ_c x[c, softCovered, d], modeled directly as a
// shortfall term so the solver only pays the penalty when coverage is
// actually missed.
func addSoftCoverPenalty(m mip.Model, obj mip.Objective, cfg RosterConfig, vars *Variables, horizon Horizon) {
	if cfg.SoftCoveredShift == "" {
		return
	}
	for day := horizon.StartDay; day <= horizon.EndDay; day++ {
		shortfall := m.NewFloat(0, 1)
		c := m.NewConstraint(mip.GreaterThanOrEqual, 1.0)
		c.NewTerm(1.0, shortfall)
		for _, controller := range cfg.Controllers {
			c.NewTerm(1.0, vars.X(controller, cfg.SoftCoveredShift, day))
		}
		obj.NewTerm(float64(cfg.Weights.SoftCoverPenalty), shortfall)
	}
}

// addPreferenceRewards credits a negative (reward) weight for every
// assignment that matches a controller's weekday/weekend preference set, so
// the solver is pulled toward honoring preferences without being forced to.
func addPreferenceRewards(obj mip.Objective, cfg RosterConfig, vars *Variables, horizon Horizon) {
	for controller, pcc := range cfg.PerController {
		if pcc.Preferences == nil {
			continue
		}
		reward := pcc.PreferredShiftReward
		if reward == 0 {
			reward = cfg.Weights.PreferenceReward
		}
		weekdaySet := toSet(pcc.Preferences.Weekday)
		weekendSet := toSet(pcc.Preferences.Weekend)

		for day := horizon.StartDay; day <= horizon.EndDay; day++ {
			date, err := calendar.DateOf(cfg.Year, day)
			if err != nil {
				continue
			}
			set := weekdaySet
			if calendar.IsWeekend(date) {
				set = weekendSet
			}
			for code := range set {
				obj.NewTerm(-float64(reward), vars.X(controller, code, day))
			}
		}
	}
}

// addPreferredPairRewards credits PreferredPairReward for every matched
// (previous-day, next-day) shift-code pair under a soft-preferred template.
// Matching is modeled with a reified auxiliary z per (controller, pair, day),
// the same upper-bound half of the AND-reification linkRestPairs uses for
// C8: z <= x[previous,day] and z <= x[next,day+1]. z only ever carries a
// negative (reward) coefficient in a minimization objective, so the
// solver's own pressure already pushes z up to min(x[previous,day],
// x[next,day+1]) without needing the lower-bound half restPair also needs.
func addPreferredPairRewards(m mip.Model, obj mip.Objective, cfg RosterConfig, vars *Variables, horizon Horizon) {
	for controller, pcc := range cfg.PerController {
		if pcc.PairPolicy != PairPolicySoftPreferred {
			continue
		}
		for day := horizon.StartDay; day < horizon.EndDay; day++ {
			for _, pair := range pcc.PreferredPairList {
				v := vars.X(controller, pair.Previous, day)
				w := vars.X(controller, pair.Next, day+1)

				z := m.NewFloat(0, 1)

				upperV := m.NewConstraint(mip.LessThanOrEqual, 0.0)
				upperV.NewTerm(1.0, z)
				upperV.NewTerm(-1.0, v)

				upperW := m.NewConstraint(mip.LessThanOrEqual, 0.0)
				upperW.NewTerm(1.0, z)
				upperW.NewTerm(-1.0, w)

				obj.NewTerm(-float64(pcc.PreferredPairReward), z)
			}
		}
	}
}
