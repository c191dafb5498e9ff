package roster

import "fmt"

// defaults mirrors the recognised field defaults from §6 of the spec; a
// zero-value Contract or Weights is filled in by ApplyDefaults before
// validation, so callers may omit any field they don't want to override.
func (c Contract) applyDefaults() Contract {
	if c.MinRestHours == 0 {
		c.MinRestHours = 11
	}
	if c.MaxConsecutiveShifts == 0 {
		c.MaxConsecutiveShifts = 4
	}
	if c.MaxHoursCalendarWeek == 0 {
		c.MaxHoursCalendarWeek = 36
	}
	if c.MaxHoursRolling7 == 0 {
		c.MaxHoursRolling7 = 44
	}
	if c.BufferDays == 0 {
		c.BufferDays = 4
	}
	if c.SolverTimeLimitSeconds == 0 {
		c.SolverTimeLimitSeconds = 10
	}
	return c
}

func (w Weights) applyDefaults() Weights {
	if w.Balance == 0 {
		w.Balance = 100
	}
	if w.SoftCoverPenalty == 0 {
		w.SoftCoverPenalty = 30000
	}
	if w.PreferenceReward == 0 {
		w.PreferenceReward = 10
	}
	return w
}

// ApplyDefaults returns a copy of cfg with every omitted recognised field
// (§6) filled in with its documented default. Require2ConsecutiveRestDays
// defaults to true and cannot be distinguished from an explicit false by a
// zero Go bool, so callers that want it off must set it via
// RosterConfig.Contract.Require2ConsecutiveRestDays directly — ApplyDefaults
// only flips it on when the whole Contract is still the zero value.
func (cfg RosterConfig) ApplyDefaults() RosterConfig {
	zeroContract := Contract{}
	if cfg.Contract == zeroContract {
		cfg.Contract.Require2ConsecutiveRestDays = true
	}
	cfg.Contract = cfg.Contract.applyDefaults()
	cfg.Weights = cfg.Weights.applyDefaults()
	return cfg
}

// ValidateConfig checks cfg for the ConfigError conditions in spec.md §7:
// unknown shift codes referenced outside the shift map, an empty controller
// list, a negative buffer, and per-controller preference sets that don't
// intersect any known shift. It does not inspect pre-assignments; use
// ValidatePreAssignments for those once a Catalog is built.
func ValidateConfig(cfg RosterConfig) error {
	if len(cfg.Controllers) == 0 {
		return &ConfigError{Field: "controllers", Reason: "controller list must not be empty"}
	}
	if cfg.Contract.BufferDays < 0 {
		return &ConfigError{Field: "contract.bufferDays", Reason: "buffer must not be negative"}
	}

	controllers := make(map[string]bool, len(cfg.Controllers))
	for _, c := range cfg.Controllers {
		if controllers[c] {
			return &ConfigError{Field: "controllers", Reason: fmt.Sprintf("duplicate controller %q", c)}
		}
		controllers[c] = true
	}

	catalog, err := NewCatalog(cfg)
	if err != nil {
		return err
	}

	knownOperational := make(map[string]bool)
	for _, code := range catalog.OperationalCodes() {
		knownOperational[code] = true
	}

	if cfg.SoftCoveredShift != "" && !knownOperational[cfg.SoftCoveredShift] {
		return &ConfigError{Field: "softCoveredShift", Reason: fmt.Sprintf("unknown shift code %q", cfg.SoftCoveredShift)}
	}
	for _, code := range cfg.CriticalShifts {
		if !knownOperational[code] {
			return &ConfigError{Field: "criticalShifts", Reason: fmt.Sprintf("unknown shift code %q", code)}
		}
		if code == cfg.SoftCoveredShift {
			return &ConfigError{Field: "criticalShifts", Reason: fmt.Sprintf("%q is both critical and soft-covered", code)}
		}
	}

	for controller := range cfg.OfficeBound {
		if !controllers[controller] {
			return &ConfigError{Field: "officeBound", Reason: fmt.Sprintf("unknown controller %q", controller)}
		}
	}

	for controller, pcc := range cfg.PerController {
		if !controllers[controller] {
			return &ConfigError{Field: "perController", Reason: fmt.Sprintf("unknown controller %q", controller)}
		}
		if err := validatePerControllerConfig(controller, pcc, knownOperational, controllers); err != nil {
			return err
		}
	}

	for _, ban := range cfg.CalendarBans {
		if !controllers[ban.Controller] {
			return &ConfigError{Field: "calendarBans", Reason: fmt.Sprintf("unknown controller %q", ban.Controller)}
		}
		if ban.Weekday < 0 || ban.Weekday > 6 {
			return &ConfigError{Field: "calendarBans", Reason: fmt.Sprintf("weekday %d out of range [0,6]", ban.Weekday)}
		}
	}

	for controller, cap := range cfg.MonthlyPseudoCap {
		if !controllers[controller] {
			return &ConfigError{Field: "monthlyPseudoCap", Reason: fmt.Sprintf("unknown controller %q", controller)}
		}
		if cap < 0 {
			return &ConfigError{Field: "monthlyPseudoCap", Reason: fmt.Sprintf("controller %q has a negative cap", controller)}
		}
	}

	return nil
}

func validatePerControllerConfig(controller string, pcc PerControllerConfig, knownOperational, controllers map[string]bool) error {
	switch pcc.PairPolicy {
	case PairPolicyStrict:
		if len(pcc.PairList) == 0 {
			return &ConfigError{Field: "perController." + controller, Reason: "strict pair policy requires a non-empty pair list"}
		}
		for _, pair := range pcc.PairList {
			if !knownOperational[pair.Previous] || !knownOperational[pair.Next] {
				return &ConfigError{Field: "perController." + controller, Reason: "pair list references an unknown shift"}
			}
		}
	case PairPolicySoftPreferred:
		if len(pcc.PreferredPairList) == 0 {
			return &ConfigError{Field: "perController." + controller, Reason: "soft-preferred pair policy requires a non-empty preferred list"}
		}
		for _, pair := range pcc.PreferredPairList {
			if !knownOperational[pair.Previous] || !knownOperational[pair.Next] {
				return &ConfigError{Field: "perController." + controller, Reason: "preferred pair list references an unknown shift"}
			}
		}
	}

	if pcc.Preferences != nil {
		allowed := make(map[string]bool)
		for code := range knownOperational {
			allowed[code] = true
		}
		if !setIntersects(pcc.Preferences.Weekday, allowed) && pcc.Preferences.Weekday != nil {
			return &ConfigError{Field: "perController." + controller + ".preferences.weekday", Reason: "preference set does not intersect any known shift"}
		}
		if !setIntersects(pcc.Preferences.Weekend, allowed) && pcc.Preferences.Weekend != nil {
			return &ConfigError{Field: "perController." + controller + ".preferences.weekend", Reason: "preference set does not intersect any known shift"}
		}
		for _, code := range pcc.Preferences.Weekday {
			if !knownOperational[code] {
				return &ConfigError{Field: "perController." + controller + ".preferences.weekday", Reason: fmt.Sprintf("unknown shift code %q", code)}
			}
		}
		for _, code := range pcc.Preferences.Weekend {
			if !knownOperational[code] {
				return &ConfigError{Field: "perController." + controller + ".preferences.weekend", Reason: fmt.Sprintf("unknown shift code %q", code)}
			}
		}
	}

	if pcc.NoOverlapWith != "" {
		if !controllers[pcc.NoOverlapWith] {
			return &ConfigError{Field: "perController." + controller + ".noOverlapWith", Reason: fmt.Sprintf("unknown peer %q", pcc.NoOverlapWith)}
		}
		if pcc.NoOverlapWith == controller {
			return &ConfigError{Field: "perController." + controller + ".noOverlapWith", Reason: "controller cannot be its own peer"}
		}
	}

	return nil
}

func setIntersects(codes []string, allowed map[string]bool) bool {
	if len(codes) == 0 {
		return false
	}
	for _, code := range codes {
		if allowed[code] {
			return true
		}
	}
	return false
}
