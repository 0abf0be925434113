package recon

import "github.com/meokisama/toolkit-core/internal/unit"

// MatchType describes how a unit pair was matched. Only exact identity
// matching exists today; the type is kept so a future fuzzy strategy
// (same board, moved IP) extends the result without breaking callers.
type MatchType string

// MatchExact pairs units whose identity triples are identical.
const MatchExact MatchType = "exact"

// UnitMatch pairs one database unit with one network unit.
type UnitMatch struct {
	Database unit.Unit `json:"database_unit"`
	Network  unit.Unit `json:"network_unit"`
	Type     MatchType `json:"match_type"`
}

// FindMatches pairs database units with network units by exact identity
// (board type, CAN id, IP address). For each database unit the first
// unclaimed network unit with the same identity wins; every unit appears
// in at most one match. Unmatched units are simply absent from the
// result — how to surface them is the caller's decision.
//
// The scan is O(n·m), which is fine at installation scale (tens of
// units), and the function is pure: no memoisation across calls.
func FindMatches(dbUnits, netUnits []unit.Unit) []UnitMatch {
	matches := make([]UnitMatch, 0, len(dbUnits))
	claimed := make(map[int]bool, len(netUnits))

	for _, dbUnit := range dbUnits {
		for i, netUnit := range netUnits {
			if claimed[i] || !dbUnit.SameIdentity(netUnit) {
				continue
			}
			claimed[i] = true
			matches = append(matches, UnitMatch{
				Database: dbUnit,
				Network:  netUnit,
				Type:     MatchExact,
			})
			break
		}
	}

	return matches
}
