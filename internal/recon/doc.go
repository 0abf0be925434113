// Package recon implements the configuration reconciliation engine.
//
// The engine decides whether a unit's intended configuration (loaded from
// the project database) matches its actual configuration (decoded from the
// device over the network). The two representations use different field
// names, different validity conventions, and different key systems, so the
// engine normalises both sides before producing a deterministic,
// human-readable difference report.
//
// # Architecture
//
//	FindMatches ──▶ Engine.Compare ──▶ nine domain comparators ──▶ primitives
//
//   - FindMatches pairs database units with network units by exact identity.
//   - Engine.Compare runs every domain comparator for one matched pair,
//     prefixes and concatenates their differences, folds in the unit-level
//     scalar comparison, and returns a Summary.
//   - Domain comparators are pure functions over Record trees; they perform
//     no I/O and retain no state. Given the same inputs they always return
//     an identical Report, so independent unit pairs may be compared
//     concurrently without coordination.
//
// # Key strategies
//
// Three ways of pairing a database record with a network record occur:
//
//   - Address key: the device-visible address (curtains, KNX points,
//     scenes, multi-scenes, sequences).
//   - Slot key: the 0-based position in the containing list (RS485
//     channels, inputs, outputs).
//   - Derived key: schedules parse the index out of the database-side name
//     and read it directly from the network-side record.
//
// Per-domain validity filters run on each side independently before any
// matching; placeholder records never contribute differences, even when
// they disagree with each other.
//
// The difference message convention is load-bearing: downstream consumers
// group messages by their stable prefixes. See the Report documentation.
package recon
