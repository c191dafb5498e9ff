package roster

import "fmt"

// ValidatePreAssignments checks that every entry names a known controller
// and day within the horizon, and that every forced shift is a known
// catalog code (operational or pseudo). It never mutates preAssignments.
func ValidatePreAssignments(preAssignments PreAssignments, cfg RosterConfig, catalog *Catalog, horizon Horizon) error {
	controllers := make(map[string]bool, len(cfg.Controllers))
	for _, c := range cfg.Controllers {
		controllers[c] = true
	}

	for controller, byDay := range preAssignments {
		if !controllers[controller] {
			return &ConfigError{Field: "preAssignments", Reason: fmt.Sprintf("unknown controller %q", controller)}
		}
		for day, pa := range byDay {
			if day < horizon.StartDay || day > horizon.EndDay {
				return &InvalidDayError{Year: horizon.Year, DayOfYear: day}
			}
			if pa.Kind == PreAssignmentForced {
				if _, ok := catalog.Shift(pa.Shift); !ok {
					return &ConfigError{
						Field:  "preAssignments",
						Reason: fmt.Sprintf("controller %q day %d forces unknown shift %q", controller, day, pa.Shift),
					}
				}
			}
		}
	}
	return nil
}

// forcedShift returns the forced shift code for (controller, day), if any.
func forcedShift(preAssignments PreAssignments, controller string, day int) (string, bool) {
	byDay, ok := preAssignments[controller]
	if !ok {
		return "", false
	}
	pa, ok := byDay[day]
	if !ok || pa.Kind != PreAssignmentForced {
		return "", false
	}
	return pa.Shift, true
}

// isOnLeave reports whether (controller, day) is pre-assigned as leave.
func isOnLeave(preAssignments PreAssignments, controller string, day int) bool {
	byDay, ok := preAssignments[controller]
	if !ok {
		return false
	}
	pa, ok := byDay[day]
	return ok && pa.Kind == PreAssignmentLeave
}
