package roster

// LeaveCode is the sentinel shift code that marks a controller on leave /
// administratively non-working for a given day.
const LeaveCode = "C"

// OffCode marks a day with no assignment and no leave.
const OffCode = "OFF"

// ShiftKind distinguishes operational shifts (which have clock times and
// participate in rest/coverage constraints) from pseudo-shifts
// (administrative or training blocks that only count toward monthly caps).
type ShiftKind int

const (
	ShiftKindOperational ShiftKind = iota
	ShiftKindPseudo
)

// ShiftInput is the raw, fractional-hour shift definition as it appears in
// a RosterConfig, before catalog normalization.
type ShiftInput struct {
	Start float64 // fractional hours, e.g. 6.5 == 06:30
	End   float64 // fractional hours
}

// PseudoShiftInput is the raw, fractional-hour pseudo-shift definition.
type PseudoShiftInput struct {
	Duration       float64
	CountedMonthly bool
}

// PairPolicyKind tags how a controller's shift-pair template is enforced
// (C9). This is a closed tagged variant, not attribute polymorphism: every
// PerControllerConfig carries exactly one of these.
type PairPolicyKind int

const (
	// PairPolicyNone means no shift-pair template applies.
	PairPolicyNone PairPolicyKind = iota
	// PairPolicyStrict means every worked (day, day+1) pair of shift codes
	// must belong to PairList, or the days are disallowed together.
	PairPolicyStrict
	// PairPolicySoftPreferred means PreferredPairList matches earn
	// PreferredPairReward in the objective but are never required.
	PairPolicySoftPreferred
)

// ShiftPair is an ordered (previous-day, next-day) shift code pair.
type ShiftPair struct {
	Previous string
	Next     string
}

// PreferenceSet lists the shift codes a controller is allowed to work on
// weekdays vs. weekends (C10). A nil slice means "no restriction"; a
// non-nil, empty slice is rejected by ValidateConfig as a set that
// intersects no known shift.
type PreferenceSet struct {
	Weekday []string
	Weekend []string
}

// PerControllerConfig is the optional, per-controller rule bundle (C9–C11).
// Per the spec's resolved open question, a controller omitted from
// RosterConfig.PerController has no template and earns no preference
// reward — never an implicit default.
type PerControllerConfig struct {
	PairPolicy          PairPolicyKind
	PairList            []ShiftPair // required list, when PairPolicy == PairPolicyStrict
	PreferredPairList    []ShiftPair // reward-only list, when PairPolicy == PairPolicySoftPreferred
	PreferredPairReward  int
	Preferences          *PreferenceSet
	PreferredShiftReward int // weight applied per matched preference-set shift (defaults to Weights.PreferenceReward when zero)
	NoOverlapWith        string // peer controller ID (C11), "" if none
}

// CalendarBan forces a controller to never work on a given weekday (C12).
// Weekday uses time.Weekday numbering (0 == Sunday through 6 == Saturday);
// ISO numbering (Sunday == 7) is not accepted.
type CalendarBan struct {
	Controller string
	Weekday    int
}

// Weights holds the objective's term weights (§4.3).
type Weights struct {
	Balance           int // default 100
	SoftCoverPenalty  int // default 30000
	PreferenceReward  int // default 10
}

// Contract holds the labour-rule parameters recognised by the model (§6).
type Contract struct {
	MinRestHours                int  // default 11
	MaxConsecutiveShifts        int  // default 4
	MaxHoursCalendarWeek        int  // default 36
	MaxHoursRolling7            int  // default 44
	Require2ConsecutiveRestDays bool // default true
	BufferDays                  int  // default 4
	SolverTimeLimitSeconds      int  // default 10
}

// RosterConfig is the full, recognised external configuration (§6). It is
// immutable for the duration of one Solve call.
type RosterConfig struct {
	Year             int
	Controllers      []string
	OfficeBound      map[string]bool
	Shifts           map[string]ShiftInput
	PseudoShifts     map[string]PseudoShiftInput
	Contract         Contract
	PerController    map[string]PerControllerConfig
	Weights          Weights
	SoftCoveredShift string
	CriticalShifts   []string // operational shift codes requiring C3 hard coverage
	CalendarBans     []CalendarBan
	MonthlyPseudoCap map[string]int // controller -> max monthly-counted pseudo-shift days over the horizon (C13)
}

// PreAssignmentKind tags a pre-assignment as a forced shift or a leave
// marker. Per the design notes, this is a typed tagged variant, not a
// sentinel string compared at each call site.
type PreAssignmentKind int

const (
	PreAssignmentForced PreAssignmentKind = iota
	PreAssignmentLeave
)

// PreAssignment is a single forced or leave entry for (controller, day).
type PreAssignment struct {
	Kind  PreAssignmentKind
	Shift string // set when Kind == PreAssignmentForced
}

// PreAssignments maps controller -> day-of-year -> PreAssignment.
type PreAssignments map[string]map[int]PreAssignment

// Horizon identifies the requested planning window. The solver internally
// extends it by Contract.BufferDays; Horizon itself always names the
// caller-visible range.
type Horizon struct {
	Year     int
	StartDay int
	EndDay   int
}

// Status values returned in Result.
const (
	StatusOptimal  = "optimal"
	StatusFeasible = "feasible"
)

// Result is the solved planning table, or the zero value alongside an error
// when no table could be produced.
type Result struct {
	// Table[controller][day] is a shift code, LeaveCode, or OffCode.
	Table  map[string]map[int]string
	Status string
	// Warnings lists non-fatal notices about the solution, e.g. a day the
	// soft-covered shift went unfilled. Empty when nothing is notable.
	Warnings []string
}
