// ABOUTME: Tests for the personal-best tracker.
// ABOUTME: Covers monotonicity, case folding, and zero coercion.
package records

import "testing"

func TestUpdateFirstResultSetsRecord(t *testing.T) {
	tr := NewTracker()

	if !tr.Update("Жим лёжа", "60", "8") {
		t.Fatal("first result should set a record")
	}

	r, ok := tr.Get("жим лёжа")
	if !ok {
		t.Fatal("record should be retrievable by case-folded name")
	}
	if r.Weight != 60 || r.Reps != 8 {
		t.Errorf("record = %v x %d, want 60 x 8", r.Weight, r.Reps)
	}
}

func TestUpdateMonotonic(t *testing.T) {
	tr := NewTracker()
	tr.Update("присед", "100", "5")

	cases := []struct {
		weight, reps string
		changed      bool
	}{
		{"90", "12", false},  // less weight never wins
		{"100", "5", false},  // identical pair is not an improvement
		{"100", "4", false},  // same weight, fewer reps
		{"100", "6", true},   // same weight, more reps
		{"105", "1", true},   // more weight always wins
		{"105", "1", false},  // resubmitting the record changes nothing
	}
	for _, tc := range cases {
		if got := tr.Update("присед", tc.weight, tc.reps); got != tc.changed {
			t.Errorf("Update(%s, %s) = %v, want %v", tc.weight, tc.reps, got, tc.changed)
		}
	}

	r, _ := tr.Get("Присед")
	if r.Weight != 105 || r.Reps != 1 {
		t.Errorf("final record = %v x %d, want 105 x 1", r.Weight, r.Reps)
	}
}

func TestUpdateCoercesMalformedInput(t *testing.T) {
	tr := NewTracker()

	// Malformed numerics coerce to zero instead of failing; the very first
	// submission still establishes a (0, 0) baseline.
	if !tr.Update("планка", "долго", "много") {
		t.Error("first submission should establish a record even at zero")
	}
	r, _ := tr.Get("планка")
	if r.Weight != 0 || r.Reps != 0 {
		t.Errorf("record = %v x %d, want 0 x 0", r.Weight, r.Reps)
	}

	if !tr.Update("планка", "0", "1") {
		t.Error("0x1 should improve on 0x0")
	}
}

func TestUpdateValuesTakesResolvedNumbers(t *testing.T) {
	tr := NewTracker()

	if !tr.UpdateValues("Жим лёжа", 50, 8) {
		t.Fatal("first result should set a record")
	}
	r, _ := tr.Get("жим лёжа")
	if r.Weight != 50 || r.Reps != 8 {
		t.Errorf("record = %v x %d, want 50 x 8", r.Weight, r.Reps)
	}

	if tr.UpdateValues("Жим лёжа", 45, 12) {
		t.Error("less weight should not replace the record")
	}
}

func TestUpdateEmptyNameIgnored(t *testing.T) {
	tr := NewTracker()
	if tr.Update("", "100", "5") {
		t.Error("empty exercise name should be ignored")
	}
}

func TestLoadAndSnapshotRoundTrip(t *testing.T) {
	tr := NewTracker()
	tr.Update("тяга", "120", "3")

	other := NewTracker()
	other.Load(tr.Snapshot())

	r, ok := other.Get("Тяга")
	if !ok || r.Weight != 120 {
		t.Errorf("loaded record = %+v (ok=%v), want 120 x 3", r, ok)
	}
}
