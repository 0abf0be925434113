package recon

import "fmt"

// Multi-scene and sequence comparison.
//
// Both domains are address-keyed parents whose child reference list is
// order-significant: the device executes the references in stored order,
// so the lists are compared index-by-index, never as sets. The database
// side stores the references as child rows ordered by a sort column (the
// store preserves that order); the network side exposes a plain ordered
// address array.

// CompareMultiScenes compares the multi-scene configuration of one unit
// pair. A multi-scene with no scene references is a placeholder.
func CompareMultiScenes(db, net []Record) Report {
	var rep Report

	validDB := filterValid(db, func(r Record) bool { return len(r.List("scenes")) > 0 })
	validNet := filterValid(net, func(r Record) bool { return len(r.Nums("sceneAddresses")) > 0 })

	dbByAddr := indexByAddress(validDB, "address")
	netByAddr := indexByAddress(validNet, "address")

	compareByAddress(&rep, "Multi-Scene", dbByAddr, netByAddr, func(key string, dbRec, netRec Record) {
		compareFields(&rep, "Multi-Scene", key, []fieldSpec{
			{Label: "Type", DB: "type", Net: "type", Kind: kindNumber},
		}, dbRec, netRec)

		dbRefs := memberAddresses(dbRec.List("scenes"), "scene_address")
		netRefs := intSlice(netRec.Nums("sceneAddresses"))
		compareOrderedRefs(&rep, "Multi-Scene", key, "Scene", dbRefs, netRefs)
	})

	return rep
}

// CompareSequences compares the sequence configuration of one unit pair.
// Sequences reference multi-scenes rather than scenes; the shape is
// otherwise identical.
func CompareSequences(db, net []Record) Report {
	var rep Report

	validDB := filterValid(db, func(r Record) bool { return len(r.List("multi_scenes")) > 0 })
	validNet := filterValid(net, func(r Record) bool { return len(r.Nums("multiSceneAddresses")) > 0 })

	dbByAddr := indexByAddress(validDB, "address")
	netByAddr := indexByAddress(validNet, "address")

	compareByAddress(&rep, "Sequence", dbByAddr, netByAddr, func(key string, dbRec, netRec Record) {
		dbRefs := memberAddresses(dbRec.List("multi_scenes"), "multi_scene_address")
		netRefs := intSlice(netRec.Nums("multiSceneAddresses"))
		compareOrderedRefs(&rep, "Sequence", key, "Multi-Scene", dbRefs, netRefs)
	})

	return rep
}

// compareOrderedRefs compares two child reference lists position by
// position. A length mismatch short-circuits to a single count message
// for this parent; equal lengths produce one difference per mismatching
// position (1-based in messages, matching the editor's step numbering).
func compareOrderedRefs(rep *Report, entity, key, childLabel string, dbRefs, netRefs []int) {
	if len(dbRefs) != len(netRefs) {
		rep.addf(KindCount, "%s %s %s count: DB=%d, Network=%d",
			entity, key, childLabel, len(dbRefs), len(netRefs))
		return
	}
	for i := range dbRefs {
		if dbRefs[i] != netRefs[i] {
			label := fmt.Sprintf("%s %d", childLabel, i+1)
			rep.addFieldDiff(entity, key, label, dbRefs[i], netRefs[i])
		}
	}
}

// memberAddresses extracts one address field from each child row,
// preserving order.
func memberAddresses(members []Record, key string) []int {
	out := make([]int, len(members))
	for i, m := range members {
		out[i] = m.Int(key)
	}
	return out
}

// intSlice converts coerced numbers to ints, preserving order.
func intSlice(nums []float64) []int {
	out := make([]int, len(nums))
	for i, n := range nums {
		out[i] = int(n)
	}
	return out
}
