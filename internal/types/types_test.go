package types

import (
	"math"
	"testing"
)

func TestCategoryWeightsSumToOne(t *testing.T) {
	var sum float64
	for _, c := range AllCategories() {
		sum += c.Weight()
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("category weights sum to %f, want 1.0", sum)
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		in      string
		want    Category
		wantErr bool
	}{
		{"mtc", CategoryMTC, false},
		{" CCT ", CategoryCCT, false},
		{"frontier", CategoryFrontier, false},
		{"bogus", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseCategory(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseCategory(%q): expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCategory(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCategory(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseCategoryList(t *testing.T) {
	got, err := ParseCategoryList("CCT,api,Mtc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Category{CategoryCCT, CategoryAPI, CategoryMTC}
	if len(got) != len(want) {
		t.Fatalf("got %d categories, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}

	empty, err := ParseCategoryList("  ")
	if err != nil || empty != nil {
		t.Errorf("blank list: got (%v, %v), want (nil, nil)", empty, err)
	}

	if _, err := ParseCategoryList("CCT,nope"); err == nil {
		t.Error("expected error for unknown category in list")
	}
}

func TestScoreToGrade(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{95.0, "A+"},
		{90.0, "A+"},
		{85.0, "A"},
		{70.0, "B"},
		{50.0, "C"},
		{49.9, "F"},
		{0, "F"},
	}

	for _, tt := range tests {
		if got := ScoreToGrade(tt.score); got != tt.want {
			t.Errorf("ScoreToGrade(%.1f) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestFinalScoreWeighted(t *testing.T) {
	categories := map[Category]CategoryResult{
		CategoryCCT: {Category: CategoryCCT, Score: 100},
		CategoryMTC: {Category: CategoryMTC, Score: 50},
	}
	// 0.15*100 + 0.05*50
	want := 17.5
	if got := FinalScore(categories); math.Abs(got-want) > 1e-9 {
		t.Errorf("FinalScore = %f, want %f", got, want)
	}
}

func TestParseModeAndFormat(t *testing.T) {
	if _, err := ParseMode("adversarial"); err == nil {
		t.Error("expected error for unknown mode")
	}
	m, err := ParseMode("Compare")
	if err != nil || m != ModeCompare {
		t.Errorf("ParseMode(Compare) = (%v, %v)", m, err)
	}

	f, err := ParseOutputFormat("md")
	if err != nil || f != FormatMarkdown {
		t.Errorf("ParseOutputFormat(md) = (%v, %v)", f, err)
	}
	if _, err := ParseOutputFormat("pdf"); err == nil {
		t.Error("expected error for unknown format")
	}
}
