package tools

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func mustExecute(t *testing.T, tool *Tool, params map[string]any) map[string]any {
	t.Helper()
	out, err := tool.Execute(params)
	if err != nil {
		t.Fatalf("%s failed: %v", tool.Name, err)
	}
	return out
}

func TestCalculatorOperations(t *testing.T) {
	calc := newCalculatorTool()

	tests := []struct {
		op   string
		a, b float64
		want float64
	}{
		{"add", 2, 3, 5},
		{"subtract", 10, 4, 6},
		{"multiply", 7, 8, 56},
		{"divide", 9, 2, 4.5},
	}

	for _, tt := range tests {
		out := mustExecute(t, calc, map[string]any{"operation": tt.op, "a": tt.a, "b": tt.b})
		if got := out["result"].(float64); got != tt.want {
			t.Errorf("%s(%v, %v) = %v, want %v", tt.op, tt.a, tt.b, got, tt.want)
		}
	}
}

func TestCalculatorDivisionByZero(t *testing.T) {
	calc := newCalculatorTool()

	out, err := calc.Execute(map[string]any{"operation": "divide", "a": 1.0, "b": 0.0})
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("want ErrDivisionByZero, got (%v, %v)", out, err)
	}
	if out != nil {
		// Never a NaN/Inf result map.
		t.Errorf("expected nil output on division by zero, got %v", out)
	}
}

func TestCalculatorErrors(t *testing.T) {
	calc := newCalculatorTool()

	if _, err := calc.Execute(map[string]any{"operation": "modulo", "a": 1.0, "b": 2.0}); !errors.Is(err, ErrUnknownOperation) {
		t.Errorf("unknown op: got %v", err)
	}
	if _, err := calc.Execute(map[string]any{"operation": "add", "a": 1.0}); !errors.Is(err, ErrMissingParam) {
		t.Errorf("missing b: got %v", err)
	}
	if _, err := calc.Execute(map[string]any{"operation": "add", "a": "one", "b": 2.0}); !errors.Is(err, ErrInvalidParam) {
		t.Errorf("non-numeric a: got %v", err)
	}
}

func TestCalculatorCoercesStringNumbers(t *testing.T) {
	calc := newCalculatorTool()

	out := mustExecute(t, calc, map[string]any{"operation": "multiply", "a": "1000", "b": "1.1576"})
	if got := out["result"].(float64); math.Abs(got-1157.6) > 1e-9 {
		t.Errorf("got %v, want 1157.6", got)
	}
}

func TestWeatherKnownCities(t *testing.T) {
	weather := newWeatherTool()

	tests := []struct {
		city      string
		tempC     float64
		condition string
	}{
		{"London", 12.0, "cloudy"},
		{"tokyo", 22.0, "sunny"},
		{"New York", 18.0, "partly cloudy"},
		{"NYC", 18.0, "partly cloudy"},
		{"Paris", 15.0, "overcast"},
		{"sydney", 25.0, "sunny"},
		{"Moscow", -5.0, "snowing"},
	}

	for _, tt := range tests {
		out := mustExecute(t, weather, map[string]any{"city": tt.city})
		if out["temperature_c"] != tt.tempC {
			t.Errorf("%s: temperature_c = %v, want %v", tt.city, out["temperature_c"], tt.tempC)
		}
		if out["condition"] != tt.condition {
			t.Errorf("%s: condition = %v, want %v", tt.city, out["condition"], tt.condition)
		}
		wantF := tt.tempC*9.0/5.0 + 32.0
		if out["temperature_f"] != wantF {
			t.Errorf("%s: temperature_f = %v, want %v", tt.city, out["temperature_f"], wantF)
		}
	}
}

func TestWeatherUnknownCityDefault(t *testing.T) {
	weather := newWeatherTool()

	out := mustExecute(t, weather, map[string]any{"city": "Atlantis"})
	if out["temperature_c"] != 20.0 || out["condition"] != "unknown" {
		t.Errorf("unknown city default mismatch: %v", out)
	}
}

func TestCurrencyConversion(t *testing.T) {
	currency := newCurrencyTool()

	out := mustExecute(t, currency, map[string]any{"amount": 1157.6, "from": "USD", "to": "EUR"})
	// 1157.6 * 1.0 / 1.10, rounded to 2 decimals.
	want := math.Round(1157.6/1.10*100) / 100
	if got := out["converted"].(float64); got != want {
		t.Errorf("converted = %v, want %v", got, want)
	}
	if out["from"] != "USD" || out["to"] != "EUR" {
		t.Errorf("codes not upper-cased: %v", out)
	}
}

func TestCurrencyLowercaseCodes(t *testing.T) {
	currency := newCurrencyTool()

	out := mustExecute(t, currency, map[string]any{"amount": 100.0, "from": "gbp", "to": "jpy"})
	if out["from"] != "GBP" || out["to"] != "JPY" {
		t.Errorf("codes not normalized: %v", out)
	}
}

func TestCurrencyUnknownCode(t *testing.T) {
	currency := newCurrencyTool()

	if _, err := currency.Execute(map[string]any{"amount": 1.0, "from": "USD", "to": "XYZ"}); !errors.Is(err, ErrUnknownCurrency) {
		t.Errorf("want ErrUnknownCurrency, got %v", err)
	}
}

func TestWebSearchEchoesQuery(t *testing.T) {
	search := newWebSearchTool()

	out := mustExecute(t, search, map[string]any{"query": "overcast activities"})
	if out["query"] != "overcast activities" {
		t.Errorf("query not echoed: %v", out)
	}
	results := out["results"].([]any)
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	first := results[0].(map[string]any)
	if !strings.Contains(first["title"].(string), "overcast activities") {
		t.Errorf("result title does not echo query: %v", first)
	}
}

func TestDateFormatterStub(t *testing.T) {
	formatter := newDateFormatterTool()

	tests := []struct {
		format string
		want   string
	}{
		{"YYYY-MM-DD", "2025-12-16"},
		{"MM/DD/YYYY", "12/16/2025"},
		{"anything else", "2025-12-16"},
		{"", "2025-12-16"},
	}

	for _, tt := range tests {
		params := map[string]any{"date": "March 5th"}
		if tt.format != "" {
			params["format"] = tt.format
		}
		out := mustExecute(t, formatter, params)
		if out["formatted"] != tt.want {
			t.Errorf("format %q: got %v, want %q", tt.format, out["formatted"], tt.want)
		}
	}

	// Stub contract: input date content does not change the output.
	a := mustExecute(t, formatter, map[string]any{"date": "2020-01-01"})
	b := mustExecute(t, formatter, map[string]any{"date": "yesterday"})
	if a["formatted"] != b["formatted"] {
		t.Errorf("formatted output varies with input date: %v vs %v", a, b)
	}
}

func TestUserCreatorDeterministicID(t *testing.T) {
	creator := newUserCreatorTool()

	params := map[string]any{"name": "Ada", "email": "ada@example.com"}
	first := mustExecute(t, creator, params)
	second := mustExecute(t, creator, params)
	if first["user_id"] != second["user_id"] {
		t.Errorf("user_id not deterministic: %v vs %v", first["user_id"], second["user_id"])
	}
	if !strings.HasPrefix(first["user_id"].(string), "usr_") {
		t.Errorf("unexpected id shape: %v", first["user_id"])
	}
}

func TestUserCreatorMissingFields(t *testing.T) {
	creator := newUserCreatorTool()

	if _, err := creator.Execute(map[string]any{"name": "Ada"}); !errors.Is(err, ErrMissingParam) {
		t.Errorf("missing email: got %v", err)
	}
	if _, err := creator.Execute(map[string]any{"email": "a@b.c"}); !errors.Is(err, ErrMissingParam) {
		t.Errorf("missing name: got %v", err)
	}
}

func TestEmailSenderAcknowledgment(t *testing.T) {
	sender := newEmailSenderTool()

	out := mustExecute(t, sender, map[string]any{
		"to":      "ada@example.com",
		"subject": "hello",
		"body":    "short note",
	})
	if out["sent"] != true || out["to"] != "ada@example.com" {
		t.Errorf("acknowledgment mismatch: %v", out)
	}
	if out["body_length"] != len("short note") {
		t.Errorf("body_length = %v", out["body_length"])
	}
	// message_id is wall-clock derived; only check the shape.
	if !strings.HasPrefix(out["message_id"].(string), "msg_") {
		t.Errorf("unexpected message_id shape: %v", out["message_id"])
	}
}
