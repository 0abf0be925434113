package recon

import "testing"

func TestCompareRS485ChannelFields(t *testing.T) {
	db := []Record{{"config_type": 1, "baud_rate": 9600, "parity": 0, "stop_bit": 1}}
	net := []Record{{"configType": 1, "baudRate": 19200, "parity": 0, "stopBit": 1}}

	rep := CompareRS485(db, net)
	want := "RS485 1 Baud Rate: DB=9600, Network=19200"
	if len(rep.Differences) != 1 || rep.Differences[0].Message != want {
		t.Errorf("messages = %v, want [%q]", rep.Messages(), want)
	}
}

func TestCompareRS485UnusedChannelSkipped(t *testing.T) {
	db := []Record{{"config_type": 0, "baud_rate": 9600}}
	net := []Record{{"configType": 0, "baudRate": 4800}}

	if rep := CompareRS485(db, net); !rep.IsEqual() {
		t.Errorf("unused channels must be inert, got %v", rep.Messages())
	}
}

func TestCompareRS485SlaveFiltering(t *testing.T) {
	// Unconfigured slaves (slave id <= 0) are dropped before the
	// positional comparison, so padding rows do not misalign the pairs.
	db := []Record{{
		"config_type": 1,
		"slave_cfg": []any{
			Record{"slave_id": 0},
			Record{"slave_id": 5, "slave_group": 2, "num_indoors": 0},
		},
	}}
	net := []Record{{
		"configType": 1,
		"slaves": []any{
			Record{"slaveId": 5, "slaveGroup": 2, "numIndoors": 0},
		},
	}}

	if rep := CompareRS485(db, net); !rep.IsEqual() {
		t.Errorf("expected equality, got %v", rep.Messages())
	}
}

func TestCompareRS485SlaveCountShortCircuits(t *testing.T) {
	db := []Record{{
		"config_type": 1,
		"slave_cfg":   []any{Record{"slave_id": 5}, Record{"slave_id": 6}},
	}}
	net := []Record{{
		"configType": 1,
		"slaves":     []any{Record{"slaveId": 5}},
	}}

	rep := CompareRS485(db, net)
	want := "RS485 1 Slave count: DB=2, Network=1"
	if len(rep.Differences) != 1 || rep.Differences[0].Message != want {
		t.Errorf("messages = %v, want [%q]", rep.Messages(), want)
	}
}

func TestCompareRS485IndoorGroupTruncation(t *testing.T) {
	// Entries past the declared indoor count are stale device memory;
	// only the declared prefix is compared.
	db := []Record{{
		"config_type": 1,
		"slave_cfg": []any{Record{
			"slave_id":     5,
			"num_indoors":  2,
			"indoor_group": []any{1, 2, 99},
		}},
	}}
	net := []Record{{
		"configType": 1,
		"slaves": []any{Record{
			"slaveId":      5,
			"numIndoors":   2,
			"indoorGroups": []any{1, 2, 42},
		}},
	}}

	if rep := CompareRS485(db, net); !rep.IsEqual() {
		t.Errorf("stale entries must be ignored, got %v", rep.Messages())
	}
}

func TestCompareRS485IndoorGroupDiff(t *testing.T) {
	db := []Record{{
		"config_type": 1,
		"slave_cfg": []any{Record{
			"slave_id":     5,
			"num_indoors":  2,
			"indoor_group": []any{1, 2},
		}},
	}}
	net := []Record{{
		"configType": 1,
		"slaves": []any{Record{
			"slaveId":      5,
			"numIndoors":   2,
			"indoorGroups": []any{1, 7},
		}},
	}}

	rep := CompareRS485(db, net)
	want := "RS485 1 Slave 1 Indoor Group 2: DB=2, Network=7"
	if len(rep.Differences) != 1 || rep.Differences[0].Message != want {
		t.Errorf("messages = %v, want [%q]", rep.Messages(), want)
	}
}
