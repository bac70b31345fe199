package tools

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSubstituteIdentityWithoutTokens(t *testing.T) {
	ctx := NewContext()
	ctx.Set("city", "Paris")

	in := map[string]any{
		"query":  "no placeholders here",
		"amount": 12.5,
		"flag":   true,
		"nested": map[string]any{"list": []any{"a", 1.0, nil}},
	}

	got := ctx.Substitute(in)
	if diff := cmp.Diff(in, got); diff != "" {
		t.Errorf("substitution changed a token-free value (-want +got):\n%s", diff)
	}
}

func TestSubstituteStringValue(t *testing.T) {
	ctx := NewContext()
	ctx.Set("name", "Ada")

	got := ctx.Substitute("hello {{name}}, again {{name}}")
	if got != "hello Ada, again Ada" {
		t.Errorf("got %q", got)
	}
}

func TestSubstituteStructuredValueSerialized(t *testing.T) {
	ctx := NewContext()
	ctx.Set("weather", map[string]any{"condition": "overcast", "temperature_c": 15.0})

	got := ctx.Substitute("forecast: {{weather}}").(string)
	want := `forecast: {"condition":"overcast","temperature_c":15}`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSubstituteNested(t *testing.T) {
	ctx := NewContext()
	ctx.Set("user_id", "usr_abc")

	in := map[string]any{
		"to":   "{{user_id}}@example.com",
		"meta": []any{"id={{user_id}}", 7.0},
	}
	want := map[string]any{
		"to":   "usr_abc@example.com",
		"meta": []any{"id=usr_abc", 7.0},
	}

	got := ctx.Substitute(in)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("nested substitution mismatch (-want +got):\n%s", diff)
	}
}

// Dotted field paths are not resolved: {{weather.condition}} must stay
// literal text even when "weather" is bound.
func TestSubstituteDottedPathUnsupported(t *testing.T) {
	ctx := NewContext()
	ctx.Set("weather", map[string]any{"condition": "overcast"})

	got := ctx.Substitute("it is {{weather.condition}} today").(string)
	if got != "it is {{weather.condition}} today" {
		t.Errorf("dotted path was substituted: %q", got)
	}
}

func TestSubstituteUnknownKeyLeftAlone(t *testing.T) {
	ctx := NewContext()

	got := ctx.Substitute("value: {{missing}}").(string)
	if got != "value: {{missing}}" {
		t.Errorf("unknown key was rewritten: %q", got)
	}
}
