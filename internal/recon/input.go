package recon

import (
	"sort"
	"strconv"
)

// Input slot comparison.
//
// Inputs are slot-keyed: identity is the 0-based position, not an
// address. Slots whose function is 0 on both sides are inert and skipped
// entirely; a typical unit carries dozens of such slots and reporting
// their stale detail fields would flood the report. Message keys are
// 1-based to match the editor's slot numbering.

var inputFields = []fieldSpec{
	{Label: "Function", DB: "function_value", Net: "inputType", Kind: kindNumber},
	{Label: "Ramp", DB: "ramp", Net: "ramp", Kind: kindNumber},
	{Label: "Preset", DB: "preset", Net: "preset", Kind: kindNumber},
	{Label: "LED Status", DB: "led_status", Net: "ledStatus", Kind: kindFlag},
	{Label: "Auto Mode", DB: "auto_mode", Net: "autoMode", Kind: kindFlag},
	{Label: "Delay Off", DB: "delay_off", Net: "delayOff", Kind: kindNumber},
}

// CompareInputs compares the input slot configuration of one unit pair.
func CompareInputs(db, net []Record) Report {
	var rep Report

	n := len(db)
	if len(net) > n {
		n = len(net)
	}

	for i := 0; i < n; i++ {
		key := strconv.Itoa(i + 1)

		switch {
		case i >= len(net):
			rep.addPresence("Input", key, "DB")
		case i >= len(db):
			rep.addPresence("Input", key, "Network")
		default:
			dbRec, netRec := db[i], net[i]
			if dbRec.Int("function_value") == 0 && netRec.Int("inputType") == 0 {
				continue // unused on both sides
			}
			compareFields(&rep, "Input", key, inputFields, dbRec, netRec)
			compareInputGroups(&rep, key, dbRec, netRec)
		}
	}

	return rep
}

// compareInputGroups compares a slot's multi-group assignments. Order is
// not semantically meaningful for this list, so both sides are filtered
// of placeholder entries (group id <= 0) and sorted by group id before a
// positional comparison. The database stores this list in the
// network-native shape, so the inner field names match.
func compareInputGroups(rep *Report, key string, dbRec, netRec Record) {
	dbGroups := sortedGroups(dbRec.List("multi_group_config"))
	netGroups := sortedGroups(netRec.List("multiGroupConfig"))

	if len(dbGroups) != len(netGroups) {
		rep.addf(KindCount, "Input %s Group count: DB=%d, Network=%d",
			key, len(dbGroups), len(netGroups))
		return
	}

	for i := range dbGroups {
		dbID := dbGroups[i].Int("groupId")
		netID := netGroups[i].Int("groupId")
		if dbID != netID {
			rep.addFieldDiff("Input", key, "Group "+strconv.Itoa(i+1), dbID, netID)
			continue
		}
		if dbGroups[i].Num("presetBrightness") != netGroups[i].Num("presetBrightness") {
			rep.addFieldDiff("Input", key, "Group "+strconv.Itoa(dbID)+" Preset Brightness",
				dbGroups[i].Val("presetBrightness"), netGroups[i].Val("presetBrightness"))
		}
	}
}

// sortedGroups filters placeholder entries and sorts by group id.
func sortedGroups(groups []Record) []Record {
	valid := filterValid(groups, func(r Record) bool { return r.Int("groupId") > 0 })
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].Int("groupId") < valid[j].Int("groupId")
	})
	return valid
}
