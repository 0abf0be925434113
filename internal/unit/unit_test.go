package unit

import "testing"

func TestSameIdentity(t *testing.T) {
	base := Unit{BoardType: "RLC-310", CANID: "1.10", IPAddress: "192.168.1.10"}

	tests := []struct {
		name  string
		other Unit
		want  bool
	}{
		{"identical", Unit{BoardType: "RLC-310", CANID: "1.10", IPAddress: "192.168.1.10"}, true},
		{"different board", Unit{BoardType: "RLC-520", CANID: "1.10", IPAddress: "192.168.1.10"}, false},
		{"different can id", Unit{BoardType: "RLC-310", CANID: "1.11", IPAddress: "192.168.1.10"}, false},
		{"different ip", Unit{BoardType: "RLC-310", CANID: "1.10", IPAddress: "192.168.1.11"}, false},
		{"mode ignored", Unit{BoardType: "RLC-310", CANID: "1.10", IPAddress: "192.168.1.10", Mode: "slave"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.SameIdentity(tt.other); got != tt.want {
				t.Errorf("SameIdentity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKey(t *testing.T) {
	u := Unit{BoardType: "RLC-310", CANID: "1.10", IPAddress: "192.168.1.10"}
	want := "RLC-310 1.10 @ 192.168.1.10"
	if u.Key() != want {
		t.Errorf("Key = %q, want %q", u.Key(), want)
	}
}
