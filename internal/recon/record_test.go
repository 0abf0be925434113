package recon

import "testing"

func TestRecordTolerantAccess(t *testing.T) {
	var nilRec Record

	// Nil and missing-field access must never panic and must yield
	// zero values.
	if nilRec.Str("x") != "" || nilRec.Num("x") != 0 || nilRec.Has("x") {
		t.Error("nil record should yield zero values")
	}
	if got := nilRec.List("x"); len(got) != 0 {
		t.Errorf("nil record List = %v, want empty", got)
	}
	if got := nilRec.Child("x"); len(got) != 0 {
		t.Errorf("nil record Child = %v, want empty", got)
	}

	rec := Record{
		"name":    "Schedule 3",
		"count":   "12",
		"items":   []any{map[string]any{"a": 1}, "not-an-object", Record{"a": 2}},
		"nums":    []any{1, "2", 3.0},
		"nested":  map[string]any{"address": 9},
		"badlist": 42,
	}

	if rec.Str("name") != "Schedule 3" {
		t.Errorf("Str = %q", rec.Str("name"))
	}
	if rec.Int("count") != 12 {
		t.Errorf("Int coercion from string = %d, want 12", rec.Int("count"))
	}
	if items := rec.List("items"); len(items) != 2 {
		t.Errorf("List skipped non-objects wrongly: got %d entries", len(items))
	}
	if nums := rec.Ints("nums"); len(nums) != 3 || nums[1] != 2 {
		t.Errorf("Ints = %v", nums)
	}
	if rec.Child("nested").Int("address") != 9 {
		t.Error("Child access failed")
	}
	if got := rec.List("badlist"); got != nil {
		t.Errorf("List on scalar = %v, want nil", got)
	}

	// []Record container shape, as produced by the project store.
	rec2 := Record{"scenes": []Record{{"scene_address": 10}}}
	if got := rec2.List("scenes"); len(got) != 1 || got[0].Int("scene_address") != 10 {
		t.Errorf("List on []Record = %v", got)
	}
}
