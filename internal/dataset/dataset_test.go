package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"haltbench/internal/types"
)

func TestLoadBuiltinAllCategories(t *testing.T) {
	l := NewLoader("", nil)

	items, err := l.Load(nil, false)
	if err != nil {
		t.Fatal(err)
	}

	byCategory := make(map[types.Category]int)
	for _, item := range items {
		byCategory[item.Category]++
	}
	for _, cat := range types.AllCategories() {
		if byCategory[cat] == 0 {
			t.Errorf("no builtin items for category %s", cat)
		}
	}

	if err := Validate(items); err != nil {
		t.Errorf("builtin dataset invalid: %v", err)
	}
}

func TestLoadCategoryFilter(t *testing.T) {
	l := NewLoader("", nil)

	items, err := l.Load([]types.Category{types.CategoryMTC}, false)
	if err != nil {
		t.Fatal(err)
	}
	for _, item := range items {
		if item.Category != types.CategoryMTC {
			t.Errorf("unexpected category %s in filtered load", item.Category)
		}
	}
	if len(items) == 0 {
		t.Fatal("filtered load returned nothing")
	}
}

func TestLoadLiteMode(t *testing.T) {
	l := NewLoader("", nil)

	items, err := l.Load([]types.Category{types.CategoryMTC}, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) > liteItemsPerCategory {
		t.Errorf("lite mode returned %d items, cap is %d", len(items), liteItemsPerCategory)
	}
}

func TestLoadFromDisk(t *testing.T) {
	dir := t.TempDir()
	catDir := filepath.Join(dir, "fct")
	if err := os.MkdirAll(catDir, 0o755); err != nil {
		t.Fatal(err)
	}

	payload := `{
		"category": "FCT",
		"subcategory": "custom",
		"items": [
			{"id": "fct-custom-1", "prompt": "What is 6 times 7?",
			 "expected": {"type": "exact_answer", "answer": "42"}}
		]
	}`
	if err := os.WriteFile(filepath.Join(catDir, "custom.json"), []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(dir, nil)
	items, err := l.Load([]types.Category{types.CategoryFCT}, false)
	if err != nil {
		t.Fatal(err)
	}

	want := []types.TestItem{{
		ID:          "fct-custom-1",
		Category:    types.CategoryFCT,
		Subcategory: "custom",
		Prompt:      "What is 6 times 7?",
		Expected:    types.Expectation{Kind: types.ExpectExactAnswer, Answer: "42"},
	}}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Errorf("disk items mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDiskFallsBackPerCategory(t *testing.T) {
	// Only FCT has files on disk; MTC should still come from the
	// builtins.
	dir := t.TempDir()
	catDir := filepath.Join(dir, "fct")
	if err := os.MkdirAll(catDir, 0o755); err != nil {
		t.Fatal(err)
	}
	payload := `{"category": "FCT", "subcategory": "s", "items": [
		{"id": "x", "prompt": "p", "expected": {"type": "exact_answer", "answer": "a"}}]}`
	if err := os.WriteFile(filepath.Join(catDir, "f.json"), []byte(payload), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(dir, nil)
	items, err := l.Load([]types.Category{types.CategoryFCT, types.CategoryMTC}, false)
	if err != nil {
		t.Fatal(err)
	}

	var fct, mtc int
	for _, item := range items {
		switch item.Category {
		case types.CategoryFCT:
			fct++
		case types.CategoryMTC:
			mtc++
		}
	}
	if fct != 1 {
		t.Errorf("fct items = %d, want 1 (disk should shadow builtins)", fct)
	}
	if mtc == 0 {
		t.Error("mtc builtins missing when another category has disk files")
	}
}

func TestValidate(t *testing.T) {
	good := types.TestItem{
		ID: "a", Category: types.CategoryFCT, Prompt: "p",
		Expected: types.Expectation{Kind: types.ExpectExactAnswer, Answer: "x"},
	}

	tests := []struct {
		name    string
		items   []types.TestItem
		wantErr error
	}{
		{"valid", []types.TestItem{good}, nil},
		{"duplicate id", []types.TestItem{good, good}, ErrDuplicateID},
		{"empty prompt", []types.TestItem{{ID: "b", Category: types.CategoryFCT,
			Expected: types.Expectation{Kind: types.ExpectExactAnswer}}}, ErrInvalidItem},
		{"bad category", []types.TestItem{{ID: "c", Category: "NOPE", Prompt: "p",
			Expected: types.Expectation{Kind: types.ExpectExactAnswer}}}, ErrInvalidItem},
		{"bad expectation", []types.TestItem{{ID: "d", Category: types.CategoryFCT, Prompt: "p",
			Expected: types.Expectation{Kind: "wish_really_hard"}}}, ErrInvalidItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.items)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}
