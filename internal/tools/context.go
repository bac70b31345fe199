package tools

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Context threads step outputs into later steps' parameters. Keys are
// written by output_key bindings; a chain gets a fresh Context and it
// is discarded after scoring.
type Context map[string]any

// NewContext returns an empty context.
func NewContext() Context {
	return make(Context)
}

// Set binds a step output under key. Later steps may overwrite.
func (c Context) Set(key string, value any) {
	c[key] = value
}

// textForm renders a context value for template substitution: strings
// are used verbatim, everything else gets its canonical JSON form.
func textForm(value any) string {
	if s, ok := value.(string); ok {
		return s
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(data)
}

// Substitute walks a parameter value and replaces every occurrence of
// the literal token {{key}} in string leaves with the textual form of
// the bound context value. Objects and arrays are rewritten
// member-by-member; numbers, booleans, and nulls pass through.
//
// Only exact single-level keys are recognized: dotted field paths such
// as {{weather.condition}} stay as literal text.
func (c Context) Substitute(params any) any {
	switch v := params.(type) {
	case string:
		result := v
		for key, value := range c {
			placeholder := "{{" + key + "}}"
			if strings.Contains(result, placeholder) {
				result = strings.ReplaceAll(result, placeholder, textForm(value))
			}
		}
		return result
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			out[key] = c.Substitute(val)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, val := range v {
			out[i] = c.Substitute(val)
		}
		return out
	default:
		return params
	}
}
