package recon

import "testing"

func sceneDB(addr int, items ...Record) Record {
	return Record{"address": addr, "items": toAnyList(items)}
}

func sceneNet(addr int, items ...Record) Record {
	return Record{"address": addr, "items": toAnyList(items)}
}

func toAnyList(items []Record) []any {
	out := make([]any, len(items))
	for i, r := range items {
		out[i] = r
	}
	return out
}

func TestCompareScenesItemOrderInsensitive(t *testing.T) {
	// Item storage order is not guaranteed on the device; the composite
	// key (object value, item address) pairs them.
	db := []Record{sceneDB(1,
		Record{"object_value": 2, "item_address": 13, "item_value": "80", "delay": 0},
		Record{"object_value": 1, "item_address": 7, "item_value": 100},
	)}
	net := []Record{sceneNet(1,
		Record{"objectValue": 1, "itemAddress": 7, "itemValue": 100, "delay": 0},
		Record{"objectValue": 2, "itemAddress": 13, "itemValue": 80},
	)}

	rep := CompareScenes(db, net)
	if !rep.IsEqual() {
		t.Errorf("expected equality, got %v", rep.Messages())
	}
}

func TestCompareScenesItemValueAndDelay(t *testing.T) {
	db := []Record{sceneDB(5,
		Record{"object_value": 2, "item_address": 13, "item_value": 80, "delay": 2},
	)}
	net := []Record{sceneNet(5,
		Record{"objectValue": 2, "itemAddress": 13, "itemValue": 60},
	)}

	rep := CompareScenes(db, net)
	want := []string{
		"Scene 5 item 2/13 Value: DB=80, Network=60",
		"Scene 5 item 2/13 Delay: DB=2, Network=null",
	}
	got := rep.Messages()
	if len(got) != len(want) {
		t.Fatalf("messages = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("message[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCompareScenesItemPresence(t *testing.T) {
	db := []Record{sceneDB(5,
		Record{"object_value": 1, "item_address": 7, "item_value": 1},
		Record{"object_value": 2, "item_address": 9, "item_value": 1},
	)}
	net := []Record{sceneNet(5,
		Record{"objectValue": 1, "itemAddress": 7, "itemValue": 1},
	)}

	rep := CompareScenes(db, net)
	want := []string{
		"Scene 5 Item count: DB=2, Network=1",
		"Scene 5 item 2/9: Only exists in DB unit",
	}
	got := rep.Messages()
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("messages = %v, want %v", got, want)
	}
}

func TestCompareScenesEmptyIsPlaceholder(t *testing.T) {
	// A scene with no items is a placeholder slot on either side.
	db := []Record{{"address": 3, "items": []any{}}}
	net := []Record{{"address": 4}}

	rep := CompareScenes(db, net)
	if !rep.IsEqual() {
		t.Errorf("placeholder scenes must be inert, got %v", rep.Messages())
	}
}

func TestCompareScenesLegacyObjectAddress(t *testing.T) {
	// Older project databases use object_address for the item address.
	db := []Record{sceneDB(2,
		Record{"object_value": 1, "object_address": 4, "item_value": 50},
	)}
	net := []Record{sceneNet(2,
		Record{"objectValue": 1, "itemAddress": 4, "itemValue": 50},
	)}

	rep := CompareScenes(db, net)
	if !rep.IsEqual() {
		t.Errorf("expected equality, got %v", rep.Messages())
	}
}
