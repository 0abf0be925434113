package recon

// Curtain comparison.
//
// Curtains are address-keyed. A record whose type field is 0 is the
// "disabled" placeholder the editor shows greyed out; both sides filter
// those independently before matching.

// curtainFields is the curtain field table. The database stores the type
// under "type"; the wire decoder exposes it as "curtainType".
var curtainFields = []fieldSpec{
	{Label: "Type", DB: "type", Net: "curtainType", Kind: kindNumber},
	{Label: "Runtime", DB: "runtime", Net: "runtime", Kind: kindNumber},
	{Label: "Open Group", DB: "open_group", Net: "openGroup", Kind: kindRef},
	{Label: "Close Group", DB: "close_group", Net: "closeGroup", Kind: kindRef},
	{Label: "Stop Group", DB: "stop_group", Net: "stopGroup", Kind: kindRef},
	{Label: "Pause Period", DB: "pause_period", Net: "pausePeriod", Kind: kindNumber},
	{Label: "Reversal Delay", DB: "reversal_delay", Net: "reversalDelay", Kind: kindNumber},
}

// CompareCurtains compares the curtain configuration of one unit pair.
func CompareCurtains(db, net []Record) Report {
	var rep Report

	validDB := filterValid(db, func(r Record) bool { return r.Int("type") != 0 })
	validNet := filterValid(net, func(r Record) bool { return r.Int("curtainType") != 0 })

	dbByAddr := indexByAddress(validDB, "address")
	netByAddr := indexByAddress(validNet, "address")

	compareByAddress(&rep, "Curtain", dbByAddr, netByAddr, func(key string, dbRec, netRec Record) {
		compareFields(&rep, "Curtain", key, curtainFields, dbRec, netRec)
	})

	return rep
}
