package recon

import "testing"

func TestCompareInputsUnusedSlotSkipped(t *testing.T) {
	// Slot unused on both sides: detailed fields are skipped even when
	// they hold stale divergent values.
	db := []Record{{"function_value": 0, "ramp": 4, "preset": 80}}
	net := []Record{{"inputType": 0, "ramp": 1, "preset": 10}}

	rep := CompareInputs(db, net)
	if !rep.IsEqual() {
		t.Errorf("unused slots must be inert, got %v", rep.Messages())
	}
}

func TestCompareInputsFunctionDiff(t *testing.T) {
	db := []Record{{"function_value": 2, "ramp": 4}}
	net := []Record{{"inputType": 3, "ramp": 4}}

	rep := CompareInputs(db, net)
	want := "Input 1 Function: DB=2, Network=3"
	if len(rep.Differences) != 1 || rep.Differences[0].Message != want {
		t.Errorf("messages = %v, want [%q]", rep.Messages(), want)
	}
}

func TestCompareInputsSlotPresence(t *testing.T) {
	db := []Record{
		{"function_value": 1},
		{"function_value": 1},
	}
	net := []Record{{"inputType": 1}}

	rep := CompareInputs(db, net)
	want := "Input 2: Only exists in DB unit"
	if len(rep.Differences) != 1 || rep.Differences[0].Message != want {
		t.Errorf("messages = %v, want [%q]", rep.Messages(), want)
	}
}

func TestCompareInputGroupsSetSemantics(t *testing.T) {
	// Multi-group assignment order is not meaningful; placeholders
	// (groupId <= 0) are dropped before the sorted comparison.
	db := []Record{{
		"function_value": 5,
		"multi_group_config": []any{
			Record{"groupId": 12, "presetBrightness": 80},
			Record{"groupId": 0, "presetBrightness": 1},
			Record{"groupId": 3, "presetBrightness": 100},
		},
	}}
	net := []Record{{
		"inputType": 5,
		"multiGroupConfig": []any{
			Record{"groupId": 3, "presetBrightness": 100},
			Record{"groupId": 12, "presetBrightness": 80},
		},
	}}

	rep := CompareInputs(db, net)
	if !rep.IsEqual() {
		t.Errorf("expected equality, got %v", rep.Messages())
	}
}

func TestCompareInputGroupsBrightnessDiff(t *testing.T) {
	db := []Record{{
		"function_value":     5,
		"multi_group_config": []any{Record{"groupId": 12, "presetBrightness": 80}},
	}}
	net := []Record{{
		"inputType":        5,
		"multiGroupConfig": []any{Record{"groupId": 12, "presetBrightness": 100}},
	}}

	rep := CompareInputs(db, net)
	want := "Input 1 Group 12 Preset Brightness: DB=80, Network=100"
	if len(rep.Differences) != 1 || rep.Differences[0].Message != want {
		t.Errorf("messages = %v, want [%q]", rep.Messages(), want)
	}
}

func TestCompareInputGroupsCountDiff(t *testing.T) {
	db := []Record{{
		"function_value":     5,
		"multi_group_config": []any{Record{"groupId": 12}},
	}}
	net := []Record{{"inputType": 5}}

	rep := CompareInputs(db, net)
	want := "Input 1 Group count: DB=1, Network=0"
	if len(rep.Differences) != 1 || rep.Differences[0].Message != want {
		t.Errorf("messages = %v, want [%q]", rep.Messages(), want)
	}
}
