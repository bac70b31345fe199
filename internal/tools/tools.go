// Package tools provides the deterministic mock-tool execution engine
// used to grade multi-step tool chains.
//
// A chain is an ordered list of steps recovered from a model response.
// Each step names a tool, carries loosely-shaped parameters, and may
// bind its output to a context key that later steps reference through
// {{key}} templates.
//
// Pipeline per step:
//
//	Substitute({{key}} → context value) → NormalizeParams → Registry lookup → Execute
//
// Every tool is a pure function of its parameters, so a chain scores
// identically on every run. The one exception is the email tool's
// message id, which is derived from wall-clock time.
package tools

// Property describes a single parameter in a tool's advisory schema.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Enum        []any  `json:"enum,omitempty"`
}

// Schema declares a tool's expected arguments. It is advisory only:
// tools validate what they need at execution time, and chains are
// never rejected up front for shape mismatches.
type Schema struct {
	Required   []string            `json:"required"`
	Properties map[string]Property `json:"properties"`
}

// ExecuteFunc runs a tool against normalized parameters and returns a
// structured result.
type ExecuteFunc func(params map[string]any) (map[string]any, error)

// Tool is a deterministic mock tool addressable by canonical name.
type Tool struct {
	// Name is the canonical registry name.
	Name string

	// Description explains what the tool simulates.
	Description string

	// Schema is the advisory parameter schema.
	Schema Schema

	// Execute runs the tool.
	Execute ExecuteFunc
}

// Validate checks that the tool definition is usable.
func (t *Tool) Validate() error {
	if t.Name == "" {
		return ErrToolNameEmpty
	}
	if t.Execute == nil {
		return ErrToolExecuteNil
	}
	return nil
}
