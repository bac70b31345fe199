package tools

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// The mock tools below are the fixed execution surface for graded
// chains. Each one validates its own parameters, is a pure function of
// them, and returns a structured map. Models emit numbers as JSON
// numbers, quoted strings, or whole expressions, so numeric fields go
// through cast rather than direct type assertions.

// requireString extracts a required string parameter.
func requireString(params map[string]any, key string) (string, error) {
	raw, ok := params[key]
	if !ok || raw == nil {
		return "", fmt.Errorf("%w: %s", ErrMissingParam, key)
	}
	s, err := cast.ToStringE(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidParam, key, err)
	}
	return s, nil
}

// requireFloat extracts a required numeric parameter, coercing
// string-typed numbers.
func requireFloat(params map[string]any, key string) (float64, error) {
	raw, ok := params[key]
	if !ok || raw == nil {
		return 0, fmt.Errorf("%w: %s", ErrMissingParam, key)
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrInvalidParam, key, err)
	}
	return f, nil
}

type calculatorRequest struct {
	Operation string
	A         float64
	B         float64
}

func parseCalculatorRequest(params map[string]any) (calculatorRequest, error) {
	var req calculatorRequest
	var err error
	if req.Operation, err = requireString(params, "operation"); err != nil {
		return req, err
	}
	if req.A, err = requireFloat(params, "a"); err != nil {
		return req, err
	}
	if req.B, err = requireFloat(params, "b"); err != nil {
		return req, err
	}
	return req, nil
}

func newCalculatorTool() *Tool {
	return &Tool{
		Name:        "calculator",
		Description: "Perform mathematical calculations: add, subtract, multiply, divide",
		Schema: Schema{
			Required: []string{"operation", "a", "b"},
			Properties: map[string]Property{
				"operation": {Type: "string", Description: "Arithmetic operation", Enum: []any{"add", "subtract", "multiply", "divide"}},
				"a":         {Type: "number", Description: "First operand"},
				"b":         {Type: "number", Description: "Second operand"},
			},
		},
		Execute: func(params map[string]any) (map[string]any, error) {
			req, err := parseCalculatorRequest(params)
			if err != nil {
				return nil, err
			}

			var result float64
			switch strings.ToLower(req.Operation) {
			case "add":
				result = req.A + req.B
			case "subtract":
				result = req.A - req.B
			case "multiply":
				result = req.A * req.B
			case "divide":
				// Explicit failure, never NaN or Inf.
				if req.B == 0 {
					return nil, ErrDivisionByZero
				}
				result = req.A / req.B
			default:
				return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, req.Operation)
			}

			return map[string]any{"result": result}, nil
		},
	}
}

// cityWeather is the fixed conditions table keyed by lower-cased city.
var cityWeather = map[string]struct {
	tempC     float64
	condition string
}{
	"london":   {12.0, "cloudy"},
	"tokyo":    {22.0, "sunny"},
	"new york": {18.0, "partly cloudy"},
	"nyc":      {18.0, "partly cloudy"},
	"paris":    {15.0, "overcast"},
	"sydney":   {25.0, "sunny"},
	"moscow":   {-5.0, "snowing"},
}

func newWeatherTool() *Tool {
	return &Tool{
		Name:        "get_weather",
		Description: "Get current weather for a city",
		Schema: Schema{
			Required: []string{"city"},
			Properties: map[string]Property{
				"city": {Type: "string", Description: "City name"},
			},
		},
		Execute: func(params map[string]any) (map[string]any, error) {
			city, err := requireString(params, "city")
			if err != nil {
				return nil, err
			}

			w, ok := cityWeather[strings.ToLower(city)]
			if !ok {
				// Unknown cities get a fixed default rather than an
				// error, so plausible chains keep executing.
				w.tempC, w.condition = 20.0, "unknown"
			}

			return map[string]any{
				"city":          city,
				"temperature_c": w.tempC,
				"temperature_f": w.tempC*9.0/5.0 + 32.0,
				"condition":     w.condition,
			}, nil
		},
	}
}

// usdRates are the mock cross rates to USD. Conversion pivots through
// USD so any supported pair works.
var usdRates = map[string]float64{
	"USD": 1.0,
	"EUR": 1.10,
	"GBP": 1.27,
	"JPY": 0.0067,
	"CNY": 0.14,
	"AUD": 0.65,
	"CAD": 0.74,
	"CHF": 1.13,
}

type currencyRequest struct {
	Amount float64
	From   string
	To     string
}

func parseCurrencyRequest(params map[string]any) (currencyRequest, error) {
	var req currencyRequest
	var err error
	if req.Amount, err = requireFloat(params, "amount"); err != nil {
		return req, err
	}
	if req.From, err = requireString(params, "from"); err != nil {
		return req, err
	}
	if req.To, err = requireString(params, "to"); err != nil {
		return req, err
	}
	req.From = strings.ToUpper(req.From)
	req.To = strings.ToUpper(req.To)
	return req, nil
}

func newCurrencyTool() *Tool {
	return &Tool{
		Name:        "convert_currency",
		Description: "Convert between currencies using mock exchange rates",
		Schema: Schema{
			Required: []string{"amount", "from", "to"},
			Properties: map[string]Property{
				"amount": {Type: "number", Description: "Amount to convert"},
				"from":   {Type: "string", Description: "Source currency code"},
				"to":     {Type: "string", Description: "Target currency code"},
			},
		},
		Execute: func(params map[string]any) (map[string]any, error) {
			req, err := parseCurrencyRequest(params)
			if err != nil {
				return nil, err
			}

			fromRate, ok := usdRates[req.From]
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownCurrency, req.From)
			}
			toRate, ok := usdRates[req.To]
			if !ok {
				return nil, fmt.Errorf("%w: %s", ErrUnknownCurrency, req.To)
			}

			converted := req.Amount * fromRate / toRate

			return map[string]any{
				"original":  req.Amount,
				"from":      req.From,
				"converted": math.Round(converted*100) / 100,
				"to":        req.To,
				"rate":      fromRate / toRate,
			}, nil
		},
	}
}

func newWebSearchTool() *Tool {
	return &Tool{
		Name:        "web_search",
		Description: "Search the web and return results",
		Schema: Schema{
			Required: []string{"query"},
			Properties: map[string]Property{
				"query": {Type: "string", Description: "Search query"},
			},
		},
		Execute: func(params map[string]any) (map[string]any, error) {
			query, err := requireString(params, "query")
			if err != nil {
				return nil, err
			}

			// Synthetic results that echo the query; no network.
			return map[string]any{
				"query": query,
				"results": []any{
					map[string]any{"title": fmt.Sprintf("Result 1 for: %s", query), "url": "https://example.com/1"},
					map[string]any{"title": fmt.Sprintf("Result 2 for: %s", query), "url": "https://example.com/2"},
				},
			}, nil
		},
	}
}

func newDateFormatterTool() *Tool {
	return &Tool{
		Name:        "format_date",
		Description: "Parse and format dates",
		Schema: Schema{
			Required: []string{"date"},
			Properties: map[string]Property{
				"date":   {Type: "string", Description: "Date to format"},
				"format": {Type: "string", Description: "Target format"},
			},
		},
		Execute: func(params map[string]any) (map[string]any, error) {
			date, err := requireString(params, "date")
			if err != nil {
				return nil, err
			}
			format, _ := params["format"].(string)
			if format == "" {
				format = "YYYY-MM-DD"
			}

			// Stub behavior: the output is keyed by the requested
			// format only; the input date does not affect it.
			formatted := "2025-12-16"
			if format == "MM/DD/YYYY" {
				formatted = "12/16/2025"
			}

			return map[string]any{
				"input":     date,
				"formatted": formatted,
				"format":    format,
			}, nil
		},
	}
}

func newUserCreatorTool() *Tool {
	return &Tool{
		Name:        "create_user",
		Description: "Create a new user account",
		Schema: Schema{
			Required: []string{"name", "email"},
			Properties: map[string]Property{
				"name":  {Type: "string", Description: "Display name"},
				"email": {Type: "string", Description: "Email address"},
			},
		},
		Execute: func(params map[string]any) (map[string]any, error) {
			name, err := requireString(params, "name")
			if err != nil {
				return nil, err
			}
			email, err := requireString(params, "email")
			if err != nil {
				return nil, err
			}

			// Deterministic id: a wrapping byte fold over the email.
			var sum uint32
			for _, b := range []byte(email) {
				sum += uint32(b)
			}

			return map[string]any{
				"user_id": fmt.Sprintf("usr_%x", sum),
				"name":    name,
				"email":   email,
				"created": true,
			}, nil
		},
	}
}

func newEmailSenderTool() *Tool {
	return &Tool{
		Name:        "send_email",
		Description: "Send an email to specified recipient",
		Schema: Schema{
			Required: []string{"to", "subject", "body"},
			Properties: map[string]Property{
				"to":      {Type: "string", Description: "Recipient address"},
				"subject": {Type: "string", Description: "Subject line"},
				"body":    {Type: "string", Description: "Message body"},
			},
		},
		Execute: func(params map[string]any) (map[string]any, error) {
			to, err := requireString(params, "to")
			if err != nil {
				return nil, err
			}
			subject, err := requireString(params, "subject")
			if err != nil {
				return nil, err
			}
			body, err := requireString(params, "body")
			if err != nil {
				return nil, err
			}

			return map[string]any{
				"sent":        true,
				"to":          to,
				"subject":     subject,
				"body_length": len(body),
				// message_id is the one intentionally nondeterministic
				// field in the whole mock set: it carries the send
				// timestamp. Never compare it for exact equality.
				"message_id": fmt.Sprintf("msg_%d", time.Now().Unix()),
			}, nil
		},
	}
}
