package recon

import "strconv"

// RS485 channel comparison.
//
// Channels are slot-keyed (a unit has a small fixed number of them).
// Each channel carries serial parameters plus a slave table; slaves are
// filtered to configured entries (positive slave id) and then compared
// positionally among the filtered set. Each slave's indoor-group list is
// truncated to its own declared count before the element-by-element
// comparison — entries past the declared count are stale memory on the
// device and must not be reported.

var rs485Fields = []fieldSpec{
	{Label: "Config Type", DB: "config_type", Net: "configType", Kind: kindNumber},
	{Label: "Baud Rate", DB: "baud_rate", Net: "baudRate", Kind: kindNumber},
	{Label: "Parity", DB: "parity", Net: "parity", Kind: kindNumber},
	{Label: "Stop Bit", DB: "stop_bit", Net: "stopBit", Kind: kindNumber},
}

var rs485SlaveFields = []fieldSpec{
	{Label: "Slave ID", DB: "slave_id", Net: "slaveId", Kind: kindNumber},
	{Label: "Slave Group", DB: "slave_group", Net: "slaveGroup", Kind: kindNumber},
	{Label: "Indoor Count", DB: "num_indoors", Net: "numIndoors", Kind: kindNumber},
}

// CompareRS485 compares the RS485 channel configuration of one unit pair.
func CompareRS485(db, net []Record) Report {
	var rep Report

	n := len(db)
	if len(net) > n {
		n = len(net)
	}

	for i := 0; i < n; i++ {
		key := strconv.Itoa(i + 1)

		switch {
		case i >= len(net):
			rep.addPresence("RS485", key, "DB")
		case i >= len(db):
			rep.addPresence("RS485", key, "Network")
		default:
			dbRec, netRec := db[i], net[i]
			if dbRec.Int("config_type") == 0 && netRec.Int("configType") == 0 {
				continue // channel unused on both sides
			}
			compareFields(&rep, "RS485", key, rs485Fields, dbRec, netRec)
			compareRS485Slaves(&rep, key, dbRec.List("slave_cfg"), netRec.List("slaves"))
		}
	}

	return rep
}

// compareRS485Slaves compares one channel's configured slaves.
func compareRS485Slaves(rep *Report, channelKey string, dbSlaves, netSlaves []Record) {
	validDB := filterValid(dbSlaves, func(r Record) bool { return r.Int("slave_id") > 0 })
	validNet := filterValid(netSlaves, func(r Record) bool { return r.Int("slaveId") > 0 })

	if len(validDB) != len(validNet) {
		rep.addf(KindCount, "RS485 %s Slave count: DB=%d, Network=%d",
			channelKey, len(validDB), len(validNet))
		return
	}

	for i := range validDB {
		slaveKey := channelKey + " Slave " + strconv.Itoa(i+1)
		dbSlave, netSlave := validDB[i], validNet[i]

		compareFields(rep, "RS485", slaveKey, rs485SlaveFields, dbSlave, netSlave)
		compareIndoorGroups(rep, slaveKey, dbSlave, netSlave)
	}
}

// compareIndoorGroups compares a slave's indoor-group list, truncated on
// each side to that side's declared count.
func compareIndoorGroups(rep *Report, slaveKey string, dbSlave, netSlave Record) {
	dbGroups := truncate(dbSlave.Ints("indoor_group"), dbSlave.Int("num_indoors"))
	netGroups := truncate(netSlave.Ints("indoorGroups"), netSlave.Int("numIndoors"))

	// A count divergence is already reported through the Indoor Count
	// field; compare the overlapping positions only.
	n := len(dbGroups)
	if len(netGroups) < n {
		n = len(netGroups)
	}
	for i := 0; i < n; i++ {
		if dbGroups[i] != netGroups[i] {
			rep.addFieldDiff("RS485", slaveKey, "Indoor Group "+strconv.Itoa(i+1),
				dbGroups[i], netGroups[i])
		}
	}
}

// truncate limits a list to the declared count, tolerating counts longer
// than the stored list.
func truncate(list []int, count int) []int {
	if count < 0 {
		count = 0
	}
	if count > len(list) {
		count = len(list)
	}
	return list[:count]
}
