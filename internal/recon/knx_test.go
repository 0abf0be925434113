package recon

import "testing"

func TestCompareKNXGroupRemapping(t *testing.T) {
	db := []Record{{
		"address":           10,
		"type":              2,
		"knx_group":         "1/2/3",
		"rcu_group":         nil,
		"knx_switch_group":  "",
		"knx_dimming_group": 7,
	}}
	net := []Record{{
		"address":         10,
		"type":            2,
		"knxGroup":        "1/2/3",
		"knxSwitchGroup":  "null",
		"knxDimmingGroup": "7",
	}}

	// rcuGroup absent on the network side, nil on the DB side: unset on
	// both, so equal. Same for ""/"null" on the switch group.
	rep := CompareKNX(db, net)
	if !rep.IsEqual() {
		t.Errorf("expected equality, got %v", rep.Messages())
	}
}

func TestCompareKNXUnsetVsSet(t *testing.T) {
	db := []Record{{"address": 10, "type": 2, "rcu_group": nil}}
	net := []Record{{"address": 10, "type": 2, "rcuGroup": 4}}

	rep := CompareKNX(db, net)
	if len(rep.Differences) != 1 {
		t.Fatalf("expected one difference, got %v", rep.Messages())
	}
	want := "KNX 10 RCU Group: DB=null, Network=4"
	if rep.Differences[0].Message != want {
		t.Errorf("message = %q, want %q", rep.Differences[0].Message, want)
	}
}

func TestCompareKNXDisabledSentinel(t *testing.T) {
	db := []Record{{"address": 1, "type": 0, "factor": 5}}
	net := []Record{{"address": 1, "type": 3, "factor": 1}}

	// The DB record is disabled, the network one is not: the network
	// record is present alone among valid records.
	rep := CompareKNX(db, net)
	want := []string{
		"Valid KNX count: DB=0, Network=1",
		"KNX 1: Only exists in Network unit",
	}
	got := rep.Messages()
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("messages = %v, want %v", got, want)
	}
}
