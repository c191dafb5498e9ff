package roster

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// centiHoursPerHour is the fixed-point scale applied once, at load time, to
// every fractional-hour value the configuration provides. No floating point
// appears in any constraint or objective coefficient past this file.
const centiHoursPerHour = 100

// maxCentiHours is the inclusive upper bound for a time-of-day value
// expressed in centi-hours (24:00 is accepted), and the length of one day
// used for wrap-around arithmetic.
const maxCentiHours = 2400

// Shift is a catalog-normalized operational or pseudo shift definition.
type Shift struct {
	Code           string
	Kind           ShiftKind
	Start          int // centi-hours since local midnight, operational only
	End            int // centi-hours since local midnight, operational only
	DurationCenti  int // centi-hours
	CountedMonthly bool
}

// WrapsMidnight reports whether the shift's end falls on the calendar day
// after its start.
func (s Shift) WrapsMidnight() bool {
	return s.Kind == ShiftKindOperational && s.End < s.Start
}

// Catalog holds every normalized shift definition, plus the codes ordered
// deterministically (for stable iteration when building the model).
type Catalog struct {
	shifts map[string]Shift
	codes  []string // operational + pseudo, sorted
}

// Shift returns the normalized definition for code, or false if unknown.
func (c *Catalog) Shift(code string) (Shift, bool) {
	s, ok := c.shifts[code]
	return s, ok
}

// Codes returns every catalog shift code, sorted, for deterministic
// iteration.
func (c *Catalog) Codes() []string {
	return c.codes
}

// OperationalCodes returns only the operational shift codes, sorted.
func (c *Catalog) OperationalCodes() []string {
	out := make([]string, 0, len(c.codes))
	for _, code := range c.codes {
		if c.shifts[code].Kind == ShiftKindOperational {
			out = append(out, code)
		}
	}
	return out
}

// NewCatalog normalizes cfg's fractional-hour shift and pseudo-shift maps
// into integer centi-hour arithmetic, failing fast with ConfigError on any
// out-of-range or malformed definition.
func NewCatalog(cfg RosterConfig) (*Catalog, error) {
	if len(cfg.Shifts) == 0 {
		return nil, &ConfigError{Field: "shifts", Reason: "at least one operational shift is required"}
	}

	shifts := make(map[string]Shift, len(cfg.Shifts)+len(cfg.PseudoShifts))
	codes := make([]string, 0, len(cfg.Shifts)+len(cfg.PseudoShifts))

	for code, def := range cfg.Shifts {
		start, err := toCentiHours(def.Start)
		if err != nil {
			return nil, &ConfigError{Field: "shifts." + code + ".start", Reason: err.Error()}
		}
		end, err := toCentiHours(def.End)
		if err != nil {
			return nil, &ConfigError{Field: "shifts." + code + ".end", Reason: err.Error()}
		}

		duration := end - start
		if end < start {
			duration = (maxCentiHours - start) + end
		}
		if duration <= 0 {
			return nil, &ConfigError{Field: "shifts." + code, Reason: "shift duration must be positive"}
		}

		shifts[code] = Shift{
			Code:          code,
			Kind:          ShiftKindOperational,
			Start:         start,
			End:           end,
			DurationCenti: duration,
		}
		codes = append(codes, code)
	}

	for code, def := range cfg.PseudoShifts {
		if _, exists := shifts[code]; exists {
			return nil, &ConfigError{Field: "pseudoShifts." + code, Reason: "code collides with an operational shift"}
		}
		durationCenti, err := toCentiHours(def.Duration)
		if err != nil {
			return nil, &ConfigError{Field: "pseudoShifts." + code + ".duration", Reason: err.Error()}
		}
		if durationCenti <= 0 {
			return nil, &ConfigError{Field: "pseudoShifts." + code, Reason: "pseudo-shift duration must be positive"}
		}
		shifts[code] = Shift{
			Code:           code,
			Kind:           ShiftKindPseudo,
			DurationCenti:  durationCenti,
			CountedMonthly: def.CountedMonthly,
		}
		codes = append(codes, code)
	}

	sort.Strings(codes)

	return &Catalog{shifts: shifts, codes: codes}, nil
}

// toCentiHours converts a fractional-hour value to an integer centi-hour
// value via decimal.Decimal, avoiding any binary-floating-point rounding of
// values like 7.5 or 22.75 before the fixed ×100 scale is applied. Valid
// range is [0, 2400].
func toCentiHours(hours float64) (int, error) {
	d := decimal.NewFromFloat(hours).Mul(decimal.NewFromInt(centiHoursPerHour))
	value := d.Round(0).IntPart()
	if value < 0 || value > maxCentiHours {
		return 0, fmt.Errorf("time %.2f is out of range [0, 24]", hours)
	}
	return int(value), nil
}
