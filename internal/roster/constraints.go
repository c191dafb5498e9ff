package roster

import (
	"github.com/nextmv-io/sdk/mip"

	"github.com/tolga/atcroster/internal/calendar"
)

// BuildConstraints adds every hard constraint (C1-C13) to m, wiring the
// decision variables vars built over [extendedStart, extendedEnd] against
// cfg, catalog, preAssignments, and the caller-visible horizon. Constraints
// that only make sense over the caller-visible window (hard coverage, the
// calendar-week hours cap) are restricted to horizon; constraints that need
// lookahead past the horizon's end (rest, consecutive-day, rolling-7,
// rest-pair) run over the full extended range.
func BuildConstraints(m mip.Model, cfg RosterConfig, catalog *Catalog, vars *Variables, preAssignments PreAssignments, horizon Horizon, extendedStart, extendedEnd int) error {
	atMostOneShift(m, cfg, catalog, vars, extendedStart, extendedEnd)
	applyPreAssignments(m, cfg, catalog, vars, preAssignments, extendedStart, extendedEnd)
	hardCoverage(m, cfg, vars, horizon)
	dailyRest(m, cfg, catalog, vars, extendedStart, extendedEnd)
	maxConsecutiveDays(m, cfg, vars, extendedStart, extendedEnd)
	if err := weeklyHoursCap(m, cfg, catalog, vars, horizon); err != nil {
		return err
	}
	rolling7HoursCap(m, cfg, catalog, vars, extendedStart, extendedEnd)
	requiredRestPairs(m, cfg, vars, extendedStart, extendedEnd)
	shiftPairTemplates(m, cfg, catalog, vars, extendedStart, extendedEnd)
	weekdayWeekendPreferences(m, cfg, catalog, vars, extendedStart, extendedEnd)
	noOverlapWithPeer(m, cfg, vars, extendedStart, extendedEnd)
	calendarBans(m, cfg, catalog, vars, extendedStart, extendedEnd)
	monthlyPseudoCaps(m, cfg, catalog, vars, horizon)

	return nil
}

// C1: on any day, a controller works at most one shift (operational or
// pseudo). A day where the sum is 0 is an OFF day.
func atMostOneShift(m mip.Model, cfg RosterConfig, catalog *Catalog, vars *Variables, extendedStart, extendedEnd int) {
	codes := catalog.Codes()
	for _, controller := range cfg.Controllers {
		for day := extendedStart; day <= extendedEnd; day++ {
			c := m.NewConstraint(mip.LessThanOrEqual, 1.0)
			for _, code := range codes {
				c.NewTerm(1.0, vars.X(controller, code, day))
			}
		}
	}
}

// C2: a forced pre-assignment fixes its shift variable to 1; a leave
// pre-assignment fixes every shift variable for that day to 0.
func applyPreAssignments(m mip.Model, cfg RosterConfig, catalog *Catalog, vars *Variables, preAssignments PreAssignments, extendedStart, extendedEnd int) {
	codes := catalog.Codes()
	for _, controller := range cfg.Controllers {
		for day := extendedStart; day <= extendedEnd; day++ {
			if shift, ok := forcedShift(preAssignments, controller, day); ok {
				c := m.NewConstraint(mip.Equal, 1.0)
				c.NewTerm(1.0, vars.X(controller, shift, day))
				continue
			}
			if isOnLeave(preAssignments, controller, day) {
				c := m.NewConstraint(mip.Equal, 0.0)
				for _, code := range codes {
					c.NewTerm(1.0, vars.X(controller, code, day))
				}
			}
		}
	}
}

// C3: every critical shift code must be covered by at least one controller
// on every day of the caller-visible horizon.
func hardCoverage(m mip.Model, cfg RosterConfig, vars *Variables, horizon Horizon) {
	for day := horizon.StartDay; day <= horizon.EndDay; day++ {
		for _, code := range cfg.CriticalShifts {
			c := m.NewConstraint(mip.GreaterThanOrEqual, 1.0)
			for _, controller := range cfg.Controllers {
				c.NewTerm(1.0, vars.X(controller, code, day))
			}
		}
	}
}

// C4: a controller may not work shift w on day d+1 if the rest gap since
// the end of shift v on day d is shorter than Contract.MinRestHours. Office-
// bound controllers (cfg.OfficeBound) are exempt: they don't leave the
// facility between shifts, so the rest-gap rule doesn't apply to them.
func dailyRest(m mip.Model, cfg RosterConfig, catalog *Catalog, vars *Variables, extendedStart, extendedEnd int) {
	minRestCenti := cfg.Contract.MinRestHours * centiHoursPerHour
	operational := catalog.OperationalCodes()

	for _, controller := range cfg.Controllers {
		if cfg.OfficeBound[controller] {
			continue
		}
		for day := extendedStart; day < extendedEnd; day++ {
			for _, vCode := range operational {
				v, _ := catalog.Shift(vCode)
				endAbs := v.Start + v.DurationCenti
				for _, wCode := range operational {
					w, _ := catalog.Shift(wCode)
					startAbs := maxCentiHours + w.Start
					gap := startAbs - endAbs
					if gap >= minRestCenti {
						continue
					}
					c := m.NewConstraint(mip.LessThanOrEqual, 1.0)
					c.NewTerm(1.0, vars.X(controller, vCode, day))
					c.NewTerm(1.0, vars.X(controller, wCode, day+1))
				}
			}
		}
	}
}

// C5: no more than Contract.MaxConsecutiveShifts worked days in any window
// of MaxConsecutiveShifts+1 consecutive days.
func maxConsecutiveDays(m mip.Model, cfg RosterConfig, vars *Variables, extendedStart, extendedEnd int) {
	windows := calendar.ConsecutiveWindows(extendedStart, extendedEnd, cfg.Contract.MaxConsecutiveShifts)
	for _, controller := range cfg.Controllers {
		for _, window := range windows {
			c := m.NewConstraint(mip.LessThanOrEqual, float64(cfg.Contract.MaxConsecutiveShifts))
			for _, day := range window {
				c.NewTerm(1.0, vars.Worked(controller, day))
			}
		}
	}
}

// C6: total worked hours within any ISO calendar week of the caller-visible
// horizon must not exceed Contract.MaxHoursCalendarWeek.
func weeklyHoursCap(m mip.Model, cfg RosterConfig, catalog *Catalog, vars *Variables, horizon Horizon) error {
	groups, err := calendar.WeekGroups(horizon.Year, horizon.StartDay, horizon.EndDay)
	if err != nil {
		return err
	}
	capCenti := float64(cfg.Contract.MaxHoursCalendarWeek * centiHoursPerHour)
	operational := catalog.OperationalCodes()

	for _, controller := range cfg.Controllers {
		for _, days := range groups {
			c := m.NewConstraint(mip.LessThanOrEqual, capCenti)
			for _, day := range days {
				for _, code := range operational {
					shift, _ := catalog.Shift(code)
					c.NewTerm(float64(shift.DurationCenti), vars.X(controller, code, day))
				}
			}
		}
	}
	return nil
}

// C7: total worked hours within any rolling 7-day window of the extended
// horizon must not exceed Contract.MaxHoursRolling7.
func rolling7HoursCap(m mip.Model, cfg RosterConfig, catalog *Catalog, vars *Variables, extendedStart, extendedEnd int) {
	windows := calendar.RollingWindows(extendedStart, extendedEnd, 7)
	capCenti := float64(cfg.Contract.MaxHoursRolling7 * centiHoursPerHour)
	operational := catalog.OperationalCodes()

	for _, controller := range cfg.Controllers {
		for _, window := range windows {
			c := m.NewConstraint(mip.LessThanOrEqual, capCenti)
			for _, day := range window {
				for _, code := range operational {
					shift, _ := catalog.Shift(code)
					c.NewTerm(float64(shift.DurationCenti), vars.X(controller, code, day))
				}
			}
		}
	}
}

// C8: when Contract.Require2ConsecutiveRestDays is set, every rolling 7-day
// window of the extended horizon must contain a restPair starting within
// the window's first 6 days (the 7th day is excluded since a restPair
// starting there would need an 8th day to complete).
func requiredRestPairs(m mip.Model, cfg RosterConfig, vars *Variables, extendedStart, extendedEnd int) {
	if !cfg.Contract.Require2ConsecutiveRestDays {
		return
	}
	windows := calendar.RollingWindows(extendedStart, extendedEnd, 7)
	for _, controller := range cfg.Controllers {
		for _, window := range windows {
			c := m.NewConstraint(mip.GreaterThanOrEqual, 1.0)
			for _, day := range window[:6] {
				c.NewTerm(1.0, vars.RestPair(controller, day))
			}
		}
	}
}

// C9: a controller under a strict shift-pair template may only work (v, w)
// consecutive-day combinations that appear in PairList; every other
// combination of two operational shifts on adjacent days is disallowed.
func shiftPairTemplates(m mip.Model, cfg RosterConfig, catalog *Catalog, vars *Variables, extendedStart, extendedEnd int) {
	operational := catalog.OperationalCodes()

	for controller, pcc := range cfg.PerController {
		if pcc.PairPolicy != PairPolicyStrict {
			continue
		}
		allowed := make(map[ShiftPair]bool, len(pcc.PairList))
		for _, pair := range pcc.PairList {
			allowed[pair] = true
		}

		for day := extendedStart; day < extendedEnd; day++ {
			for _, v := range operational {
				for _, w := range operational {
					if allowed[ShiftPair{Previous: v, Next: w}] {
						continue
					}
					c := m.NewConstraint(mip.LessThanOrEqual, 1.0)
					c.NewTerm(1.0, vars.X(controller, v, day))
					c.NewTerm(1.0, vars.X(controller, w, day+1))
				}
			}
		}
	}
}

// C10: when a controller carries a PreferenceSet, only the listed
// operational shift codes may be worked on the matching day kind (weekday
// vs. weekend); a nil field for that day kind leaves it unrestricted.
func weekdayWeekendPreferences(m mip.Model, cfg RosterConfig, catalog *Catalog, vars *Variables, extendedStart, extendedEnd int) {
	operational := catalog.OperationalCodes()

	for controller, pcc := range cfg.PerController {
		if pcc.Preferences == nil {
			continue
		}
		weekdayAllowed := toSet(pcc.Preferences.Weekday)
		weekendAllowed := toSet(pcc.Preferences.Weekend)

		for day := extendedStart; day <= extendedEnd; day++ {
			date, err := calendar.DateOf(cfg.Year, day)
			if err != nil {
				continue // outside the real calendar year; buffer days past C6's scope
			}
			var allowed map[string]bool
			if calendar.IsWeekend(date) {
				if pcc.Preferences.Weekend == nil {
					continue
				}
				allowed = weekendAllowed
			} else {
				if pcc.Preferences.Weekday == nil {
					continue
				}
				allowed = weekdayAllowed
			}
			forbidUnlisted(m, vars, controller, day, operational, allowed)
		}
	}
}

func forbidUnlisted(m mip.Model, vars *Variables, controller string, day int, codes []string, allowed map[string]bool) {
	for _, code := range codes {
		if allowed[code] {
			continue
		}
		c := m.NewConstraint(mip.LessThanOrEqual, 0.0)
		c.NewTerm(1.0, vars.X(controller, code, day))
	}
}

func toSet(codes []string) map[string]bool {
	set := make(map[string]bool, len(codes))
	for _, code := range codes {
		set[code] = true
	}
	return set
}

// C11: two controllers configured as a no-overlap pair never both work on
// the same day: worked[c,d] + worked[p,d] <= 1.
func noOverlapWithPeer(m mip.Model, cfg RosterConfig, vars *Variables, extendedStart, extendedEnd int) {
	seen := make(map[[2]string]bool)

	for controller, pcc := range cfg.PerController {
		if pcc.NoOverlapWith == "" {
			continue
		}
		peer := pcc.NoOverlapWith
		key := [2]string{controller, peer}
		reverseKey := [2]string{peer, controller}
		if seen[key] || seen[reverseKey] {
			continue
		}
		seen[key] = true

		for day := extendedStart; day <= extendedEnd; day++ {
			c := m.NewConstraint(mip.LessThanOrEqual, 1.0)
			c.NewTerm(1.0, vars.Worked(controller, day))
			c.NewTerm(1.0, vars.Worked(peer, day))
		}
	}
}

// C12: a controller with a calendar ban never works an operational shift on
// the banned weekday.
func calendarBans(m mip.Model, cfg RosterConfig, catalog *Catalog, vars *Variables, extendedStart, extendedEnd int) {
	operational := catalog.OperationalCodes()
	for _, ban := range cfg.CalendarBans {
		for day := extendedStart; day <= extendedEnd; day++ {
			date, err := calendar.DateOf(cfg.Year, day)
			if err != nil {
				continue
			}
			if int(date.Weekday()) != ban.Weekday {
				continue
			}
			for _, code := range operational {
				c := m.NewConstraint(mip.LessThanOrEqual, 0.0)
				c.NewTerm(1.0, vars.X(ban.Controller, code, day))
			}
		}
	}
}

// C13: a controller's total count of monthly-counted pseudo-shift days over
// the caller-visible horizon must not exceed MonthlyPseudoCap.
func monthlyPseudoCaps(m mip.Model, cfg RosterConfig, catalog *Catalog, vars *Variables, horizon Horizon) {
	var monthlyCodes []string
	for _, code := range catalog.Codes() {
		shift, _ := catalog.Shift(code)
		if shift.Kind == ShiftKindPseudo && shift.CountedMonthly {
			monthlyCodes = append(monthlyCodes, code)
		}
	}
	if len(monthlyCodes) == 0 {
		return
	}

	for controller, cap := range cfg.MonthlyPseudoCap {
		c := m.NewConstraint(mip.LessThanOrEqual, float64(cap))
		for day := horizon.StartDay; day <= horizon.EndDay; day++ {
			for _, code := range monthlyCodes {
				c.NewTerm(1.0, vars.X(controller, code, day))
			}
		}
	}
}
