// ABOUTME: Tests for program wire normalization and merge-by-id.
// ABOUTME: Covers legacy field names, author shapes, and price coercion.
package models

import (
	"encoding/json"
	"testing"
)

func TestProgramUnmarshalLegacyWorkoutsField(t *testing.T) {
	data := []byte(`{"id": 42, "title": "База", "workouts": [{"name": "Присед", "sets": 5, "reps": 5, "weight": 100}]}`)

	var p Program
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if p.ID != "42" {
		t.Errorf("ID = %q, want 42", p.ID)
	}
	if len(p.Exercises) != 1 {
		t.Fatalf("Exercises len = %d, want 1", len(p.Exercises))
	}
	ex := p.Exercises[0]
	if ex.Name != "Присед" || ex.Sets != 5 || ex.Reps != "5" || ex.Weight != "100" {
		t.Errorf("exercise = %+v, want Присед 5x5@100", ex)
	}
}

func TestProgramUnmarshalAuthorObject(t *testing.T) {
	data := []byte(`{"id": "p1", "title": "Сплит", "exercises": [],
		"author": {"id": 7, "name": "Иван"}, "price": "9.99", "isPersonal": false}`)

	var p Program
	if err := json.Unmarshal(data, &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if p.AuthorID != 7 {
		t.Errorf("AuthorID = %d, want 7", p.AuthorID)
	}
	if p.Author != "Иван" {
		t.Errorf("Author = %q, want Иван", p.Author)
	}
	if p.Price != 9.99 {
		t.Errorf("Price = %v, want 9.99", p.Price)
	}
	if p.Personal() {
		t.Error("expected published program")
	}
}

func TestProgramPersonalDefaultsTrue(t *testing.T) {
	var p Program
	if err := json.Unmarshal([]byte(`{"id": "p2", "title": "x"}`), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !p.Personal() {
		t.Error("program without isPersonal should be personal")
	}
}

func TestMergeByID(t *testing.T) {
	a1 := Program{ID: "a", Title: "old a"}
	b := Program{ID: "b", Title: "b"}
	a2 := Program{ID: "a", Title: "new a"}

	merged := MergeByID([]Program{a1, b, a2})

	if len(merged) != 2 {
		t.Fatalf("len = %d, want 2", len(merged))
	}
	if merged[0].ID != "a" || merged[0].Title != "new a" {
		t.Errorf("merged[0] = %+v, want latest value of a in first position", merged[0])
	}
	if merged[1].ID != "b" {
		t.Errorf("merged[1].ID = %q, want b", merged[1].ID)
	}
}

func TestMergeByIDSkipsEmptyIDs(t *testing.T) {
	merged := MergeByID([]Program{{ID: ""}, {ID: "a"}})
	if len(merged) != 1 || merged[0].ID != "a" {
		t.Errorf("merged = %+v, want just a", merged)
	}
}
