// Package roster builds and solves the constraint-programming model behind
// the air-traffic-control shift roster.
//
// This package has no HTTP or database dependency — it operates purely on a
// RosterConfig, a pre-assignment map, and a requested horizon, and produces
// a Result. It has no global mutable state: every Solve call builds its own
// model and owns it for the duration of that call.
//
// # Data flow
//
// Input:
//   - RosterConfig: controllers, shift catalog, labour rules, per-controller
//     templates, objective weights.
//   - PreAssignments: forced shifts and leave markers per (controller, day).
//
// Output:
//   - Result: a {controller -> day -> shift code} table plus a status.
//
// # Time representation
//
// All shift start/end times are centi-hours since local midnight, integers
// in [0, 2400]. Durations are centi-hours too. Shift times are parsed once,
// at catalog-construction time, from the configuration's fractional-hour
// values; no floating point appears anywhere past that point.
package roster
