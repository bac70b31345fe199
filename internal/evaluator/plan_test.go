package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPlanOrder(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "json fence wins",
			text: "Here is the plan:\n```json\n[{\"tool\": \"calculator\"}]\n```\nand [ignored]",
			want: "\n[{\"tool\": \"calculator\"}]\n",
		},
		{
			name: "plain fence",
			text: "```\n[1, 2]\n```",
			want: "\n[1, 2]\n",
		},
		{
			name: "unclosed fence runs to end",
			text: "```json\n[1]",
			want: "\n[1]",
		},
		{
			name: "bracket span",
			text: "The steps are [a, b, c] as shown.",
			want: "[a, b, c]",
		},
		{
			name: "whole text when no markers",
			text: "no plan here at all",
			want: "no plan here at all",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractPlan(tt.text))
		})
	}
}

func TestParseSteps(t *testing.T) {
	steps, err := ParseSteps(`[
		{"tool": "calculator", "params": {"operation": "add", "a": 1, "b": 2}, "output_key": "sum"},
		{"tool": "web_search", "params": {"query": "{{sum}}"}}
	]`)
	require.NoError(t, err)
	require.Len(t, steps, 2)
	assert.Equal(t, "calculator", steps[0].Tool)
	assert.Equal(t, "sum", steps[0].OutputKey)
	assert.Equal(t, "", steps[1].OutputKey)
}

func TestParseStepsParametersAlias(t *testing.T) {
	steps, err := ParseSteps(`[{"tool": "get_weather", "parameters": {"city": "Paris"}}]`)
	require.NoError(t, err)
	require.Len(t, steps, 1)

	params, ok := steps[0].Params.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Paris", params["city"])
}

func TestParseStepsNarrowingRetry(t *testing.T) {
	// Leading prose breaks the first parse; the bracket span inside
	// the candidate still parses.
	candidate := `Sure! [{"tool": "calculator", "params": {"operation": "add", "a": 1, "b": 2}}] Done.`
	steps, err := ParseSteps(candidate)
	require.NoError(t, err)
	assert.Len(t, steps, 1)
}

func TestParseStepsFailures(t *testing.T) {
	_, err := ParseSteps("no array anywhere")
	assert.ErrorIs(t, err, ErrNoPlanFound)

	_, err = ParseSteps(`[{"tool": broken json}]`)
	assert.ErrorIs(t, err, ErrPlanParse)
}
