package recon

// Record is a single domain record: one curtain, one KNX point, one scene,
// one input slot, and so on. Both the project store and the network
// snapshot decoder produce this shape, keeping only their own side's
// field names.
//
// Accessors are tolerant by design: a missing field, a nil value, or a
// value of an unexpected type yields the zero result rather than a panic,
// so comparators never fail on malformed nested data.
type Record map[string]any

// Has reports whether the field is present, even if nil.
func (r Record) Has(key string) bool {
	if r == nil {
		return false
	}
	_, ok := r[key]
	return ok
}

// Val returns the raw field value, or nil when absent.
func (r Record) Val(key string) any {
	if r == nil {
		return nil
	}
	return r[key]
}

// Str returns the field as a string, or "" when absent or not a string.
func (r Record) Str(key string) string {
	s, _ := r.Val(key).(string)
	return s
}

// Num returns the field coerced to a number. Strings are parsed; anything
// unparsable yields 0.
func (r Record) Num(key string) float64 {
	return numericOrZero(r.Val(key))
}

// Int returns the field coerced to an int.
func (r Record) Int(key string) int {
	return int(r.Num(key))
}

// List returns the field as a list of Records. Missing lists and entries
// that are not objects are skipped, so the result is always safe to range
// over.
func (r Record) List(key string) []Record {
	switch raw := r.Val(key).(type) {
	case []Record:
		return raw
	case []any:
		out := make([]Record, 0, len(raw))
		for _, item := range raw {
			switch v := item.(type) {
			case map[string]any:
				out = append(out, Record(v))
			case Record:
				out = append(out, v)
			}
		}
		return out
	default:
		return nil
	}
}

// Nums returns the field as a list of numbers, coercing each element.
// Non-list values yield an empty slice.
func (r Record) Nums(key string) []float64 {
	raw, ok := r.Val(key).([]any)
	if !ok {
		return nil
	}
	out := make([]float64, len(raw))
	for i, v := range raw {
		out[i] = numericOrZero(v)
	}
	return out
}

// Ints returns the field as a list of ints.
func (r Record) Ints(key string) []int {
	nums := r.Nums(key)
	out := make([]int, len(nums))
	for i, n := range nums {
		out[i] = int(n)
	}
	return out
}

// Strs returns the field as a list of strings, skipping non-string
// elements.
func (r Record) Strs(key string) []string {
	raw, ok := r.Val(key).([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Bools returns the field as a list of booleans, coercing each element
// through the boolean/int duality rule.
func (r Record) Bools(key string) []bool {
	raw, ok := r.Val(key).([]any)
	if !ok {
		return nil
	}
	out := make([]bool, len(raw))
	for i, v := range raw {
		out[i] = truthy(v)
	}
	return out
}

// Child returns a nested object field as a Record. Missing objects yield
// an empty Record so field access on the result is always safe.
func (r Record) Child(key string) Record {
	switch v := r.Val(key).(type) {
	case map[string]any:
		return Record(v)
	case Record:
		return v
	default:
		return Record{}
	}
}
