package tools

import (
	"errors"
	"math"
	"testing"
)

func TestExecuteChainThreadsContext(t *testing.T) {
	reg := NewMockRegistry()

	steps := []Step{
		{
			Tool:      "create_user",
			Params:    map[string]any{"name": "Ada", "email": "ada@example.com"},
			OutputKey: "new_user",
		},
		{
			Tool: "send_email",
			Params: map[string]any{
				"to":      "ada@example.com",
				"subject": "welcome",
				"body":    "your account: {{new_user}}",
			},
		},
	}

	result, err := reg.ExecuteChain(steps)
	if err != nil {
		t.Fatalf("chain failed: %v", err)
	}
	if !result.Succeeded() {
		t.Fatal("chain reported failure")
	}
	if len(result.Steps) != 2 {
		t.Fatalf("got %d step results, want 2", len(result.Steps))
	}

	// The email body should carry the serialized user record, proving
	// the context value reached the later step.
	sent := result.Steps[1].Output
	bodyLen := sent["body_length"].(int)
	if bodyLen <= len("your account: ") {
		t.Errorf("context output not substituted into body (length %d)", bodyLen)
	}

	if _, ok := result.FinalContext["new_user"]; !ok {
		t.Error("output_key binding missing from final context")
	}
}

// The compound-interest style chain from the dataset: multiply, then
// convert the result. The converted amount must be identical on every
// run with the fixed rate table.
func TestExecuteChainInterestConversionDeterministic(t *testing.T) {
	reg := NewMockRegistry()

	steps := []Step{
		{
			Tool:      "calculator",
			Params:    map[string]any{"operation": "multiply", "a": 1000.0, "b": 1.1576},
			OutputKey: "raw_interest",
		},
		{
			Tool:   "convert_currency",
			Params: map[string]any{"amount": 1157.6, "from": "USD", "to": "EUR"},
		},
	}

	want := math.Round(1157.6/1.10*100) / 100

	for run := 0; run < 3; run++ {
		result, err := reg.ExecuteChain(steps)
		if err != nil {
			t.Fatalf("run %d: chain failed: %v", run, err)
		}
		got := result.Steps[1].Output["converted"].(float64)
		if got != want {
			t.Errorf("run %d: converted = %v, want %v", run, got, want)
		}
	}
}

// Dotted template paths are unsupported: the search query must keep
// the literal placeholder, not the string "overcast".
func TestExecuteChainDottedPathStaysLiteral(t *testing.T) {
	reg := NewMockRegistry()

	steps := []Step{
		{
			Tool:      "get_weather",
			Params:    map[string]any{"city": "Paris"},
			OutputKey: "weather",
		},
		{
			Tool:   "web_search",
			Params: map[string]any{"query": "things to do in {{weather.condition}} weather"},
		},
	}

	result, err := reg.ExecuteChain(steps)
	if err != nil {
		t.Fatalf("chain failed: %v", err)
	}

	query := result.Steps[1].Output["query"].(string)
	if query != "things to do in {{weather.condition}} weather" {
		t.Errorf("dotted path was resolved: %q", query)
	}
}

func TestExecuteChainNormalizesNamesAndKeys(t *testing.T) {
	reg := NewMockRegistry()

	steps := []Step{
		{
			Tool:   "Check-Weather",
			Params: map[string]any{"location": "Tokyo"},
		},
	}

	result, err := reg.ExecuteChain(steps)
	if err != nil {
		t.Fatalf("chain failed: %v", err)
	}
	if result.Steps[0].ResolvedTool != "get_weather" {
		t.Errorf("resolved tool = %q", result.Steps[0].ResolvedTool)
	}
	if result.Steps[0].Output["temperature_c"] != 22.0 {
		t.Errorf("location alias not folded to city: %v", result.Steps[0].Output)
	}
}

func TestExecuteChainToolNotFoundRecordsAndAborts(t *testing.T) {
	reg := NewMockRegistry()

	steps := []Step{
		{Tool: "get_weather", Params: map[string]any{"city": "London"}, OutputKey: "w"},
		{Tool: "quantum_flux", Params: map[string]any{}},
		{Tool: "web_search", Params: map[string]any{"query": "never runs"}},
	}

	result, err := reg.ExecuteChain(steps)
	if !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("want ErrToolNotFound, got %v", err)
	}

	// The failing step is recorded with success=false; the remaining
	// step is not executed.
	if len(result.Steps) != 2 {
		t.Fatalf("got %d step results, want 2", len(result.Steps))
	}
	if !result.Steps[0].Success || result.Steps[1].Success {
		t.Errorf("success flags wrong: %+v", result.Steps)
	}
	if result.Succeeded() {
		t.Error("Succeeded() should be false")
	}
	if got := result.CompletedFraction(len(steps)); math.Abs(got-1.0/3.0) > 1e-9 {
		t.Errorf("CompletedFraction = %v, want 1/3", got)
	}
}

func TestExecuteChainExecutionErrorRecordsAndAborts(t *testing.T) {
	reg := NewMockRegistry()

	steps := []Step{
		{Tool: "calculator", Params: map[string]any{"operation": "divide", "a": 1.0, "b": 0.0}},
		{Tool: "web_search", Params: map[string]any{"query": "never runs"}},
	}

	result, err := reg.ExecuteChain(steps)
	if !errors.Is(err, ErrToolExecution) {
		t.Fatalf("want ErrToolExecution, got %v", err)
	}
	if len(result.Steps) != 1 {
		t.Fatalf("got %d step results, want 1", len(result.Steps))
	}
	if result.Steps[0].Success {
		t.Error("failing step recorded as success")
	}
	if result.Steps[0].Error == "" {
		t.Error("failing step missing error text")
	}
}

func TestExecuteChainNonObjectParams(t *testing.T) {
	reg := NewMockRegistry()

	// A bare string params value is tolerated; the tool reports its
	// own missing fields.
	result, err := reg.ExecuteChain([]Step{{Tool: "web_search", Params: "just a string"}})
	if !errors.Is(err, ErrToolExecution) {
		t.Fatalf("want ErrToolExecution, got %v", err)
	}
	if len(result.Steps) != 1 || result.Steps[0].Success {
		t.Errorf("unexpected step trace: %+v", result.Steps)
	}
}

func TestExecuteChainFreshContextPerChain(t *testing.T) {
	reg := NewMockRegistry()

	steps := []Step{{Tool: "get_weather", Params: map[string]any{"city": "London"}, OutputKey: "w"}}

	first, err := reg.ExecuteChain(steps)
	if err != nil {
		t.Fatal(err)
	}
	second, err := reg.ExecuteChain([]Step{{Tool: "web_search", Params: map[string]any{"query": "{{w}}"}}})
	if err != nil {
		t.Fatal(err)
	}

	// The second chain starts empty: its template must stay literal.
	query := second.Steps[0].Output["query"].(string)
	if query != "{{w}}" {
		t.Errorf("context leaked across chains: %q", query)
	}
	if len(first.FinalContext) != 1 {
		t.Errorf("first chain context unexpected: %v", first.FinalContext)
	}
}
