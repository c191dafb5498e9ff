package roster

import "errors"

// Sentinel error kinds for the roster engine. Each wraps a more specific
// message via fmt.Errorf("%w: ...", ErrXxx); callers branch with errors.Is.
var (
	// ErrConfigError indicates an unknown shift code, an out-of-range start
	// or end time, an empty controller list, a contradictory per-controller
	// rule, or a negative buffer — detected before any decision variable is
	// created.
	ErrConfigError = errors.New("roster: invalid configuration")

	// ErrInvalidDay indicates a day-of-year outside the requested horizon,
	// surfaced while validating a pre-assignment.
	ErrInvalidDay = errors.New("roster: invalid day")

	// ErrInfeasibleModel indicates the solver concluded, well inside its time
	// budget, that no legal roster exists for this configuration and
	// horizon.
	ErrInfeasibleModel = errors.New("roster: infeasible model")

	// ErrDeadlineExpired indicates time ran out: either the caller's context
	// ended before the solver returned (any solution the solver may hold is
	// discarded), or the solver used up its own
	// Contract.SolverTimeLimitSeconds budget without finding a feasible
	// solution.
	ErrDeadlineExpired = errors.New("roster: deadline expired without a feasible solution")

	// ErrInternalSolverError indicates the CP engine reported a status this
	// driver does not know how to interpret.
	ErrInternalSolverError = errors.New("roster: internal solver error")
)

// ConfigError wraps ErrConfigError with a field-specific reason.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "roster: invalid configuration: " + e.Field + ": " + e.Reason
}

func (e *ConfigError) Unwrap() error {
	return ErrConfigError
}

// InvalidDayError wraps ErrInvalidDay with the offending (year, day).
type InvalidDayError struct {
	Year      int
	DayOfYear int
}

func (e *InvalidDayError) Error() string {
	return "roster: invalid day: day-of-year out of range for the target year"
}

func (e *InvalidDayError) Unwrap() error {
	return ErrInvalidDay
}
