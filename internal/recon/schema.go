package recon

import (
	"sort"
	"strconv"
)

// valueKind selects the equivalence rule for one field.
type valueKind int

const (
	// kindNumber compares values numerically after coercion; a string
	// encoding of the same quantity is equal to its number.
	kindNumber valueKind = iota

	// kindFlag compares values through the boolean/int duality: 0 and
	// false are equal, anything else is "true".
	kindFlag

	// kindRef compares optional references with unset equivalence:
	// null, absent, "" and "null" are all one value.
	kindRef

	// kindText compares values as plain strings.
	kindText
)

// fieldSpec declares one logical field: its human label for difference
// messages, its name on each side, and its equivalence rule. Every
// cross-side field-name remapping in the engine is declared in exactly
// one of these tables.
type fieldSpec struct {
	Label string
	DB    string
	Net   string
	Kind  valueKind
}

// compareFields compares one field set between a database record and a
// network record, appending one difference per mismatching field. entity
// and key identify the record in messages ("Curtain 5", "Output 3", ...).
func compareFields(rep *Report, entity, key string, specs []fieldSpec, db, net Record) {
	for _, spec := range specs {
		dbVal := db.Val(spec.DB)
		netVal := net.Val(spec.Net)

		var equal bool
		switch spec.Kind {
		case kindFlag:
			equal = truthy(dbVal) == truthy(netVal)
		case kindRef:
			equal = refEqual(dbVal, netVal)
		case kindText:
			equal = db.Str(spec.DB) == net.Str(spec.Net)
		default: // kindNumber
			equal = numericOrZero(dbVal) == numericOrZero(netVal)
		}

		if !equal {
			rep.addFieldDiff(entity, key, spec.Label, dbVal, netVal)
		}
	}
}

// filterValid returns the records for which the validity predicate holds.
// Each side is filtered independently; excluded placeholders never
// produce difference output.
func filterValid(recs []Record, valid func(Record) bool) []Record {
	out := make([]Record, 0, len(recs))
	for _, r := range recs {
		if valid(r) {
			out = append(out, r)
		}
	}
	return out
}

// indexByAddress builds an address → record map. When the same address
// occurs twice the first record wins, matching editor behaviour.
func indexByAddress(recs []Record, key string) map[int]Record {
	m := make(map[int]Record, len(recs))
	for _, r := range recs {
		addr := r.Int(key)
		if _, exists := m[addr]; !exists {
			m[addr] = r
		}
	}
	return m
}

// unionAddresses returns the union of the two maps' keys in ascending
// order, giving every address-keyed comparator a deterministic walk.
func unionAddresses(db, net map[int]Record) []int {
	seen := make(map[int]struct{}, len(db)+len(net))
	for k := range db {
		seen[k] = struct{}{}
	}
	for k := range net {
		seen[k] = struct{}{}
	}
	keys := make([]int, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// compareByAddress is the shared walk for address-keyed domains: count
// check, ascending union iteration, presence-only differences, then the
// per-key body for records present on both sides.
func compareByAddress(rep *Report, entity string, db, net map[int]Record, body func(key string, dbRec, netRec Record)) {
	rep.addValidCount(entity, len(db), len(net))

	for _, addr := range unionAddresses(db, net) {
		key := strconv.Itoa(addr)
		dbRec, inDB := db[addr]
		netRec, inNet := net[addr]

		switch {
		case !inNet:
			rep.addPresence(entity, key, "DB")
		case !inDB:
			rep.addPresence(entity, key, "Network")
		default:
			body(key, dbRec, netRec)
		}
	}
}
