package evaluator

import (
	"errors"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"haltbench/internal/tools"
)

var (
	// ErrNoPlanFound means the response text contains no array-like
	// span at all. Routes to fallback scoring, not to the caller.
	ErrNoPlanFound = errors.New("no tool plan found")

	// ErrPlanParse means an array-like span was found but did not
	// deserialize, even after the narrowing retry. Also routes to
	// fallback scoring.
	ErrPlanParse = errors.New("tool plan parse failed")
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ExtractPlan narrows raw response text to the substring most likely
// to hold a JSON step array. Search order, first match wins: a fenced
// block tagged json, any fenced block, the span from the first '[' to
// the last ']', the whole text. No validation happens here.
func ExtractPlan(text string) string {
	if fenced, ok := fencedBlock(text, "```json"); ok {
		return fenced
	}
	if fenced, ok := fencedBlock(text, "```"); ok {
		return fenced
	}
	if span, ok := bracketSpan(text); ok {
		return span
	}
	return text
}

func fencedBlock(text, opener string) (string, bool) {
	start := strings.Index(text, opener)
	if start < 0 {
		return "", false
	}
	rest := text[start+len(opener):]
	if end := strings.Index(rest, "```"); end >= 0 {
		return rest[:end], true
	}
	return rest, true
}

func bracketSpan(text string) (string, bool) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

// wireStep tolerates the "parameters" alias some models use for the
// params field.
type wireStep struct {
	Tool       string `json:"tool"`
	Params     any    `json:"params"`
	Parameters any    `json:"parameters"`
	OutputKey  string `json:"output_key"`
}

func (w wireStep) step() tools.Step {
	params := w.Params
	if params == nil {
		params = w.Parameters
	}
	return tools.Step{Tool: w.Tool, Params: params, OutputKey: w.OutputKey}
}

// ParseSteps deserializes a candidate substring into an ordered step
// list. On failure it retries once against the bracket span inside
// the candidate itself, then gives up with ErrPlanParse so the caller
// can fall back to text scoring.
func ParseSteps(candidate string) ([]tools.Step, error) {
	clean := strings.TrimSpace(candidate)

	steps, err := parseWire(clean)
	if err == nil {
		return steps, nil
	}

	span, ok := bracketSpan(clean)
	if !ok {
		return nil, ErrNoPlanFound
	}
	if steps, retryErr := parseWire(span); retryErr == nil {
		return steps, nil
	}
	return nil, ErrPlanParse
}

func parseWire(s string) ([]tools.Step, error) {
	var wire []wireStep
	if err := json.UnmarshalFromString(s, &wire); err != nil {
		return nil, err
	}
	steps := make([]tools.Step, len(wire))
	for i, w := range wire {
		steps[i] = w.step()
	}
	return steps, nil
}
