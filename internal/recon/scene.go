package recon

import (
	"fmt"
	"sort"
)

// Scene comparison.
//
// Scenes are address-keyed; a scene with no items is a placeholder slot
// and is filtered on both sides. Scene items carry no stable storage
// order on the device, so they are matched by the composite key
// (object value, item address) instead of position.

// sceneItemKey is the composite identity of one scene item.
type sceneItemKey struct {
	objectValue int
	itemAddress int
}

func (k sceneItemKey) String() string {
	return fmt.Sprintf("%d/%d", k.objectValue, k.itemAddress)
}

// CompareScenes compares the scene configuration of one unit pair.
func CompareScenes(db, net []Record) Report {
	var rep Report

	validDB := filterValid(db, func(r Record) bool { return len(r.List("items")) > 0 })
	validNet := filterValid(net, func(r Record) bool { return len(r.List("items")) > 0 })

	dbByAddr := indexByAddress(validDB, "address")
	netByAddr := indexByAddress(validNet, "address")

	compareByAddress(&rep, "Scene", dbByAddr, netByAddr, func(key string, dbRec, netRec Record) {
		compareSceneItems(&rep, key, dbRec.List("items"), netRec.List("items"))
	})

	return rep
}

// compareSceneItems compares the item lists of one matched scene.
func compareSceneItems(rep *Report, sceneKey string, dbItems, netItems []Record) {
	entity := "Scene " + sceneKey

	if len(dbItems) != len(netItems) {
		rep.addf(KindCount, "%s Item count: DB=%d, Network=%d", entity, len(dbItems), len(netItems))
	}

	dbByKey := indexSceneItems(dbItems, dbSceneItemKey)
	netByKey := indexSceneItems(netItems, netSceneItemKey)

	for _, key := range unionSceneItemKeys(dbByKey, netByKey) {
		dbItem, inDB := dbByKey[key]
		netItem, inNet := netByKey[key]

		switch {
		case !inNet:
			rep.addPresence(entity+" item", key.String(), "DB")
		case !inDB:
			rep.addPresence(entity+" item", key.String(), "Network")
		default:
			// Item values may be string-encoded on the database side;
			// a missing delay means zero on either side.
			if dbItem.Num("item_value") != netItem.Num("itemValue") {
				rep.addFieldDiff(entity+" item", key.String(), "Value",
					dbItem.Val("item_value"), netItem.Val("itemValue"))
			}
			if dbItem.Num("delay") != netItem.Num("delay") {
				rep.addFieldDiff(entity+" item", key.String(), "Delay",
					dbItem.Val("delay"), netItem.Val("delay"))
			}
		}
	}
}

// dbSceneItemKey extracts the composite key from a database-side item.
// Older project databases store the item address under "object_address";
// newer ones use "item_address".
func dbSceneItemKey(item Record) sceneItemKey {
	addr := item.Int("item_address")
	if !item.Has("item_address") {
		addr = item.Int("object_address")
	}
	return sceneItemKey{
		objectValue: item.Int("object_value"),
		itemAddress: addr,
	}
}

// netSceneItemKey extracts the composite key from a network-side item.
func netSceneItemKey(item Record) sceneItemKey {
	return sceneItemKey{
		objectValue: item.Int("objectValue"),
		itemAddress: item.Int("itemAddress"),
	}
}

func indexSceneItems(items []Record, keyOf func(Record) sceneItemKey) map[sceneItemKey]Record {
	m := make(map[sceneItemKey]Record, len(items))
	for _, item := range items {
		k := keyOf(item)
		if _, exists := m[k]; !exists {
			m[k] = item
		}
	}
	return m
}

func unionSceneItemKeys(db, net map[sceneItemKey]Record) []sceneItemKey {
	seen := make(map[sceneItemKey]struct{}, len(db)+len(net))
	for k := range db {
		seen[k] = struct{}{}
	}
	for k := range net {
		seen[k] = struct{}{}
	}
	keys := make([]sceneItemKey, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].objectValue != keys[j].objectValue {
			return keys[i].objectValue < keys[j].objectValue
		}
		return keys[i].itemAddress < keys[j].itemAddress
	})
	return keys
}
