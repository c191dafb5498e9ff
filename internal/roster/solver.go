package roster

import (
	"context"
	"fmt"
	"time"

	"github.com/nextmv-io/sdk/mip"
)

// solutionValueThreshold is the cutoff above which a solved binary variable
// counts as set. Mixed-integer solvers return values that are numerically
// close to, but not always bit-identical to, 0 or 1.
const solutionValueThreshold = 0.9

// Solve builds and solves one roster instance: it validates cfg and
// preAssignments, extends horizon by Contract.BufferDays past EndDay for
// constraint correctness, builds the decision variables, the hard
// constraints (C1-C13), and the weighted objective, then invokes the MIP
// solver under Contract.SolverTimeLimitSeconds or ctx's deadline, whichever
// is shorter. The returned Result's Table only ever covers horizon, never
// the buffer days used internally.
func Solve(ctx context.Context, cfg RosterConfig, preAssignments PreAssignments, horizon Horizon) (Result, error) {
	cfg = cfg.ApplyDefaults()

	if err := ValidateConfig(cfg); err != nil {
		return Result{}, err
	}

	catalog, err := NewCatalog(cfg)
	if err != nil {
		return Result{}, err
	}

	if err := ValidatePreAssignments(preAssignments, cfg, catalog, horizon); err != nil {
		return Result{}, err
	}

	extendedStart := horizon.StartDay
	extendedEnd := horizon.EndDay + cfg.Contract.BufferDays

	m := mip.NewModel()
	vars := NewVariables(m, cfg, catalog, extendedStart, extendedEnd)

	if err := BuildConstraints(m, cfg, catalog, vars, preAssignments, horizon, extendedStart, extendedEnd); err != nil {
		return Result{}, fmt.Errorf("%w: %s", ErrInternalSolverError, err)
	}
	if err := BuildObjective(m, cfg, catalog, vars, horizon); err != nil {
		return Result{}, fmt.Errorf("%w: %s", ErrInternalSolverError, err)
	}

	solver, err := mip.NewSolver(mip.Highs, m)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %s", ErrInternalSolverError, err)
	}

	timeLimit := time.Duration(cfg.Contract.SolverTimeLimitSeconds) * time.Second
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeLimit {
			timeLimit = remaining
		}
	}

	opts := mip.NewSolveOptions()
	if err := opts.SetMaximumDuration(timeLimit); err != nil {
		return Result{}, fmt.Errorf("%w: %s", ErrInternalSolverError, err)
	}

	type outcome struct {
		solution mip.Solution
		err      error
	}
	done := make(chan outcome, 1)
	started := time.Now()
	go func() {
		solution, err := solver.Solve(opts)
		done <- outcome{solution: solution, err: err}
	}()

	select {
	case <-ctx.Done():
		return Result{}, ErrDeadlineExpired
	case out := <-done:
		if out.err != nil {
			return Result{}, fmt.Errorf("%w: %s", ErrInternalSolverError, out.err)
		}
		elapsed := time.Since(started)
		return interpretSolution(out.solution, cfg, catalog, vars, preAssignments, horizon, elapsed, timeLimit)
	}
}

// hitSolverBudgetFraction is the share of timeLimit that, once elapsed, marks
// a non-optimal/non-suboptimal outcome as the solver running out of time
// rather than proving infeasibility. mip.Solution doesn't expose a distinct
// infeasible-vs-timed-out status in the version this driver targets, so the
// two are told apart by how long the solve actually ran: proving a model
// infeasible normally finishes well before the budget is exhausted, while a
// model the solver can't resolve either way runs to (or past) the limit.
const hitSolverBudgetFraction = 0.9

func interpretSolution(solution mip.Solution, cfg RosterConfig, catalog *Catalog, vars *Variables, preAssignments PreAssignments, horizon Horizon, elapsed, timeLimit time.Duration) (Result, error) {
	if !solution.IsOptimal() && !solution.IsSubOptimal() {
		if timeLimit > 0 && elapsed >= time.Duration(float64(timeLimit)*hitSolverBudgetFraction) {
			return Result{}, ErrDeadlineExpired
		}
		return Result{}, ErrInfeasibleModel
	}

	status := StatusFeasible
	if solution.IsOptimal() {
		status = StatusOptimal
	}

	table := make(map[string]map[int]string, len(cfg.Controllers))
	codes := catalog.Codes()
	for _, controller := range cfg.Controllers {
		byDay := make(map[int]string, horizon.EndDay-horizon.StartDay+1)
		for day := horizon.StartDay; day <= horizon.EndDay; day++ {
			if isOnLeave(preAssignments, controller, day) {
				byDay[day] = LeaveCode
				continue
			}
			assigned := OffCode
			for _, code := range codes {
				if solution.Value(vars.X(controller, code, day)) >= solutionValueThreshold {
					assigned = code
					break
				}
			}
			byDay[day] = assigned
		}
		table[controller] = byDay
	}

	return Result{Table: table, Status: status, Warnings: softCoverWarnings(solution, cfg, vars, horizon)}, nil
}

// softCoverWarnings reports each day the soft-covered shift went unfilled,
// recomputed directly from the solved assignment rather than threading the
// objective's internal shortfall variable out of BuildObjective.
func softCoverWarnings(solution mip.Solution, cfg RosterConfig, vars *Variables, horizon Horizon) []string {
	if cfg.SoftCoveredShift == "" {
		return nil
	}
	var warnings []string
	for day := horizon.StartDay; day <= horizon.EndDay; day++ {
		covered := false
		for _, controller := range cfg.Controllers {
			if solution.Value(vars.X(controller, cfg.SoftCoveredShift, day)) >= solutionValueThreshold {
				covered = true
				break
			}
		}
		if !covered {
			warnings = append(warnings, fmt.Sprintf("day %d: soft-covered shift %q unfilled", day, cfg.SoftCoveredShift))
		}
	}
	return warnings
}
