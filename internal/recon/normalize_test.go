package recon

import "testing"

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want bool
	}{
		{"nil", nil, false},
		{"zero int", 0, false},
		{"zero float", 0.0, false},
		{"false", false, false},
		{"empty string", "", false},
		{"string zero", "0", false},
		{"string false", "false", false},
		{"one", 1, true},
		{"true", true, true},
		{"negative", -1, true},
		{"string one", "1", true},
		{"arbitrary string", "enabled", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truthy(tt.in); got != tt.want {
				t.Errorf("truthy(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRefUnsetEquivalence(t *testing.T) {
	// null, "", "null" and absent are pairwise equal to each other and
	// to nothing else.
	unset := []any{nil, "", "null", "NULL", " null "}
	set := []any{0, 1, "12", 12.0, "1/2/3"}

	for _, a := range unset {
		for _, b := range unset {
			if !refEqual(a, b) {
				t.Errorf("refEqual(%#v, %#v) = false, want true", a, b)
			}
		}
		for _, b := range set {
			if refEqual(a, b) {
				t.Errorf("refEqual(%#v, %#v) = true, want false", a, b)
			}
		}
	}
}

func TestRefEqualSetValues(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		want bool
	}{
		{"number vs string number", 12, "12", true},
		{"zero is a real reference", 0, 0, true},
		{"zero vs unset differs", 0, nil, false},
		{"different numbers", 3, 4, false},
		{"same group address string", "1/2/3", "1/2/3", true},
		{"different group address", "1/2/3", "1/2/4", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := refEqual(tt.a, tt.b); got != tt.want {
				t.Errorf("refEqual(%#v, %#v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestNumericCoercion(t *testing.T) {
	tests := []struct {
		name   string
		in     any
		want   float64
		wantOK bool
	}{
		{"int", 42, 42, true},
		{"float", 42.5, 42.5, true},
		{"string int", "42", 42, true},
		{"string float", " 42.5 ", 42.5, true},
		{"bool true", true, 1, true},
		{"bool false", false, 0, true},
		{"garbage", "not-a-number", 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := numeric(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("numeric(%#v) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "null"},
		{"empty string", "", "null"},
		{"integral float", 10.0, "10"},
		{"fractional float", 10.5, "10.5"},
		{"int", 7, "7"},
		{"bool", true, "true"},
		{"string", "07:30", "07:30"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatValue(tt.in); got != tt.want {
				t.Errorf("formatValue(%#v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
