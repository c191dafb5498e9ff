package roster

import (
	"github.com/nextmv-io/sdk/mip"
)

// Variables holds every decision variable the constraint and objective
// builders reference: x[c,v,d] for every (controller, shift, day) in the
// extended horizon, the derived worked[c,d], and the reified restPair[c,d]
// auxiliary used by C8.
type Variables struct {
	x        map[string]map[string]map[int]mip.Bool
	worked   map[string]map[int]mip.Bool
	restPair map[string]map[int]mip.Bool
}

// X returns the decision variable for controller working shift on day. If
// the triple was never built it returns the zero mip.Bool (nil) — callers
// only ever look up triples they themselves asked NewVariables to create.
func (v *Variables) X(controller, shift string, day int) mip.Bool {
	return v.x[controller][shift][day]
}

// Worked returns the derived "is working" variable for (controller, day).
func (v *Variables) Worked(controller string, day int) mip.Bool {
	return v.worked[controller][day]
}

// RestPair returns the reified "rest day then rest day" variable for
// (controller, day), true when neither day nor day+1 is worked.
func (v *Variables) RestPair(controller string, day int) mip.Bool {
	return v.restPair[controller][day]
}

// NewVariables creates one boolean per (controller, shift, day) in
// [extendedStart, extendedEnd], the derived worked[c,d] booleans, and the
// restPair[c,d] auxiliaries for every day that has a following day in the
// extended horizon, then links worked and restPair with the reified
// equalities from §3 and C8.
func NewVariables(m mip.Model, cfg RosterConfig, catalog *Catalog, extendedStart, extendedEnd int) *Variables {
	vars := &Variables{
		x:        make(map[string]map[string]map[int]mip.Bool, len(cfg.Controllers)),
		worked:   make(map[string]map[int]mip.Bool, len(cfg.Controllers)),
		restPair: make(map[string]map[int]mip.Bool, len(cfg.Controllers)),
	}

	codes := catalog.Codes()
	operational := catalog.OperationalCodes()

	for _, controller := range cfg.Controllers {
		vars.x[controller] = make(map[string]map[int]mip.Bool, len(codes))
		for _, code := range codes {
			byDay := make(map[int]mip.Bool, extendedEnd-extendedStart+1)
			for day := extendedStart; day <= extendedEnd; day++ {
				byDay[day] = m.NewBool()
			}
			vars.x[controller][code] = byDay
		}

		workedByDay := make(map[int]mip.Bool, extendedEnd-extendedStart+1)
		for day := extendedStart; day <= extendedEnd; day++ {
			worked := m.NewBool()
			workedByDay[day] = worked

			// worked[c,d] = Σ_v x[c,v,d] over operational shifts only.
			link := m.NewConstraint(mip.Equal, 0.0)
			link.NewTerm(-1.0, worked)
			for _, code := range operational {
				link.NewTerm(1.0, vars.x[controller][code][day])
			}
		}
		vars.worked[controller] = workedByDay

		restByDay := make(map[int]mip.Bool, extendedEnd-extendedStart)
		for day := extendedStart; day < extendedEnd; day++ {
			restByDay[day] = m.NewBool()
		}
		vars.restPair[controller] = restByDay
	}

	linkRestPairs(m, vars, cfg.Controllers, extendedStart, extendedEnd)

	return vars
}

// linkRestPairs reifies restPair[c,d] = 1 <=> worked[c,d] = 0 AND
// worked[c,d+1] = 0, using the standard AND-reification in two directions:
//
//	restPair <= 1 - worked[d]
//	restPair <= 1 - worked[d+1]
//	restPair >= 1 - worked[d] - worked[d+1]
func linkRestPairs(m mip.Model, vars *Variables, controllers []string, extendedStart, extendedEnd int) {
	for _, controller := range controllers {
		for day := extendedStart; day < extendedEnd; day++ {
			rest := vars.RestPair(controller, day)
			wd := vars.Worked(controller, day)
			wd1 := vars.Worked(controller, day+1)

			upper1 := m.NewConstraint(mip.LessThanOrEqual, 1.0)
			upper1.NewTerm(1.0, rest)
			upper1.NewTerm(1.0, wd)

			upper2 := m.NewConstraint(mip.LessThanOrEqual, 1.0)
			upper2.NewTerm(1.0, rest)
			upper2.NewTerm(1.0, wd1)

			lower := m.NewConstraint(mip.GreaterThanOrEqual, 1.0)
			lower.NewTerm(1.0, rest)
			lower.NewTerm(1.0, wd)
			lower.NewTerm(1.0, wd1)
		}
	}
}
