package recon

import (
	"encoding/json"
	"fmt"

	"github.com/meokisama/toolkit-core/internal/unit"
)

// Kind classifies a single difference.
type Kind string

// Difference kinds.
const (
	// KindField is a field whose value disagrees between the two sides.
	KindField Kind = "field"

	// KindPresence is a record that exists on one side only.
	KindPresence Kind = "presence"

	// KindCount is a mismatch in the number of valid records or child
	// entries.
	KindCount Kind = "count"

	// KindFailure is an unexpected comparator failure, reported as a
	// single entry so the remaining domains still produce results.
	KindFailure Kind = "failure"
)

// Difference is one detected inequality.
//
// Message follows a fixed convention so consumers can group differences
// without parsing structure:
//
//	"<Entity> <key> <label>: DB=<value>, Network=<value>"
//	"<Entity> <key>: Only exists in <side> unit"
//	"Valid <Entity> count: DB=<n>, Network=<m>"
//
// Domain is empty inside a single-domain Report; the orchestrator fills
// it in when aggregating.
type Difference struct {
	Kind    Kind   `json:"kind"`
	Domain  string `json:"domain,omitempty"`
	Message string `json:"message"`
}

// Report is the result of comparing one domain tree (or one unit pair).
//
// Equality is derived from the difference list, so the invariant
// IsEqual == (len(differences) == 0) holds by construction for every
// input, including both-absent and one-absent trees.
type Report struct {
	Differences []Difference
}

// IsEqual reports whether the two compared trees are equivalent.
func (r Report) IsEqual() bool {
	return len(r.Differences) == 0
}

// Messages returns the ordered difference messages as plain strings.
// This is the legacy shape consumed by report exporters.
func (r Report) Messages() []string {
	msgs := make([]string, len(r.Differences))
	for i, d := range r.Differences {
		msgs[i] = d.Message
	}
	return msgs
}

// MarshalJSON emits the report with an explicit is_equal field alongside
// the difference list.
func (r Report) MarshalJSON() ([]byte, error) {
	diffs := r.Differences
	if diffs == nil {
		diffs = []Difference{}
	}
	return json.Marshal(struct {
		IsEqual     bool         `json:"is_equal"`
		Differences []Difference `json:"differences"`
	}{
		IsEqual:     r.IsEqual(),
		Differences: diffs,
	})
}

// UnmarshalJSON accepts the marshalled shape. is_equal is ignored on
// input; it is always derived from the difference list.
func (r *Report) UnmarshalJSON(data []byte) error {
	var raw struct {
		Differences []Difference `json:"differences"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Differences = raw.Differences
	return nil
}

// add appends a difference.
func (r *Report) add(kind Kind, message string) {
	r.Differences = append(r.Differences, Difference{Kind: kind, Message: message})
}

// addf appends a formatted difference.
func (r *Report) addf(kind Kind, format string, args ...any) {
	r.add(kind, fmt.Sprintf(format, args...))
}

// addFieldDiff appends a field mismatch in the standard message shape.
func (r *Report) addFieldDiff(entity, key, label string, dbVal, netVal any) {
	r.addf(KindField, "%s %s %s: DB=%s, Network=%s",
		entity, key, label, formatValue(dbVal), formatValue(netVal))
}

// addPresence appends a presence-only mismatch. side is "DB" or "Network".
func (r *Report) addPresence(entity, key, side string) {
	r.addf(KindPresence, "%s %s: Only exists in %s unit", entity, key, side)
}

// addValidCount appends the valid-record count mismatch for a domain.
func (r *Report) addValidCount(entity string, dbCount, netCount int) {
	if dbCount != netCount {
		r.addf(KindCount, "Valid %s count: DB=%d, Network=%d", entity, dbCount, netCount)
	}
}

// Summary is the orchestrator's aggregate result for one matched unit pair.
//
// Aggregate holds every difference with its domain prefix applied; Unit
// holds the unit-level scalar differences; Domains maps each domain name
// to that domain's own report. Aggregate equality is therefore the AND of
// the unit result and every domain result.
type Summary struct {
	DatabaseUnit unit.Unit         `json:"database_unit"`
	NetworkUnit  unit.Unit         `json:"network_unit"`
	Aggregate    Report            `json:"aggregate"`
	Unit         Report            `json:"unit"`
	Domains      map[string]Report `json:"domains"`
}

// IsEqual reports whether the unit pair is fully equivalent.
func (s Summary) IsEqual() bool {
	return s.Aggregate.IsEqual()
}
