package recon

// KNX bridge entry comparison.
//
// KNX points are address-keyed with the same 0-means-disabled sentinel as
// curtains, but on both sides under the same "type" name. The group
// reference fields are the classic cross-naming case: snake_case in the
// project database, mixed case on the wire, with null/""/"null"/absent
// all meaning "no group assigned".

var knxFields = []fieldSpec{
	{Label: "Type", DB: "type", Net: "type", Kind: kindNumber},
	{Label: "Factor", DB: "factor", Net: "factor", Kind: kindNumber},
	{Label: "Feedback", DB: "feedback", Net: "feedback", Kind: kindNumber},
	{Label: "KNX Group", DB: "knx_group", Net: "knxGroup", Kind: kindRef},
	{Label: "RCU Group", DB: "rcu_group", Net: "rcuGroup", Kind: kindRef},
	{Label: "KNX Switch Group", DB: "knx_switch_group", Net: "knxSwitchGroup", Kind: kindRef},
	{Label: "KNX Dimming Group", DB: "knx_dimming_group", Net: "knxDimmingGroup", Kind: kindRef},
}

// CompareKNX compares the KNX bridge configuration of one unit pair.
func CompareKNX(db, net []Record) Report {
	var rep Report

	validDB := filterValid(db, func(r Record) bool { return r.Int("type") != 0 })
	validNet := filterValid(net, func(r Record) bool { return r.Int("type") != 0 })

	dbByAddr := indexByAddress(validDB, "address")
	netByAddr := indexByAddress(validNet, "address")

	compareByAddress(&rep, "KNX", dbByAddr, netByAddr, func(key string, dbRec, netRec Record) {
		compareFields(&rep, "KNX", key, knxFields, dbRec, netRec)
	})

	return rep
}
