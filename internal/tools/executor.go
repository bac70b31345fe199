package tools

import "fmt"

// Step is one parsed entry of a tool chain. Immutable once parsed.
type Step struct {
	// Tool is the free-form tool name as the model wrote it.
	Tool string `json:"tool"`

	// Params carries the arbitrary structured parameter value.
	Params any `json:"params"`

	// OutputKey, when set, binds the step result into the chain
	// context under that key.
	OutputKey string `json:"output_key,omitempty"`
}

// StepResult records the outcome of one executed step.
type StepResult struct {
	// Index is the step's position in the chain.
	Index int `json:"index"`

	// ResolvedTool is the canonical tool name after normalization.
	ResolvedTool string `json:"resolved_tool_name"`

	// Output is the tool's structured result; nil on failure.
	Output map[string]any `json:"output,omitempty"`

	// Success is false for the step that failed the chain.
	Success bool `json:"success"`

	// Error describes the failure for diagnostics.
	Error string `json:"error,omitempty"`
}

// ChainResult is the ordered step trace plus the final context
// snapshot.
type ChainResult struct {
	Steps        []StepResult `json:"steps"`
	FinalContext Context      `json:"final_context"`
}

// Succeeded reports whether every recorded step executed cleanly.
func (r *ChainResult) Succeeded() bool {
	for _, s := range r.Steps {
		if !s.Success {
			return false
		}
	}
	return true
}

// CompletedFraction returns the fraction of chain steps that executed
// successfully, for partial-credit scoring.
func (r *ChainResult) CompletedFraction(totalSteps int) float64 {
	if totalSteps <= 0 {
		return 0
	}
	completed := 0
	for _, s := range r.Steps {
		if s.Success {
			completed++
		}
	}
	return float64(completed) / float64(totalSteps)
}

// ExecuteChain runs the steps in order against a fresh context.
//
// Per step: substitute {{key}} templates from the context, normalize
// parameter keys, resolve the tool through the registry, execute, and
// bind the output under output_key if present.
//
// Error policy is record-then-abort: a failed step is appended with
// Success=false and the remaining steps are skipped. The accumulated
// ChainResult is always returned; the error is non-nil if any step
// failed and wraps ErrToolNotFound or ErrToolExecution.
//
// Step order is the only valid evaluation order: a step may reference
// any output_key written by a strictly earlier step, never its own or
// a later one.
func (r *Registry) ExecuteChain(steps []Step) (*ChainResult, error) {
	ctx := NewContext()
	result := &ChainResult{
		Steps:        make([]StepResult, 0, len(steps)),
		FinalContext: ctx,
	}

	for i, step := range steps {
		params := ctx.Substitute(step.Params)
		params = NormalizeParams(params)

		tool, canonical, err := r.Resolve(step.Tool)
		if err != nil {
			result.Steps = append(result.Steps, StepResult{
				Index:        i,
				ResolvedTool: canonical,
				Success:      false,
				Error:        err.Error(),
			})
			return result, err
		}

		paramMap, ok := params.(map[string]any)
		if !ok {
			// Tolerate nil and non-object params: tools report
			// their own missing fields.
			paramMap = map[string]any{}
		}

		output, err := tool.Execute(paramMap)
		if err != nil {
			wrapped := fmt.Errorf("%w: %s: %v", ErrToolExecution, canonical, err)
			result.Steps = append(result.Steps, StepResult{
				Index:        i,
				ResolvedTool: canonical,
				Success:      false,
				Error:        wrapped.Error(),
			})
			return result, wrapped
		}

		if step.OutputKey != "" {
			ctx.Set(step.OutputKey, output)
		}

		result.Steps = append(result.Steps, StepResult{
			Index:        i,
			ResolvedTool: canonical,
			Output:       output,
			Success:      true,
		})
	}

	return result, nil
}
