package tools

import (
	"fmt"
	"sort"
)

// Registry maps canonical names to mock tools. Lookup goes through the
// name normalizer, so "Check-Weather" resolves to "get_weather".
//
// Build one at the composition root and pass it into every chain
// evaluation. The registry holds no per-chain state, so one instance
// can serve concurrent evaluations.
type Registry struct {
	tools map[string]*Tool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*Tool)}
}

// NewMockRegistry creates a registry populated with the full set of
// deterministic mock tools.
func NewMockRegistry() *Registry {
	r := NewRegistry()
	for _, tool := range []*Tool{
		newCalculatorTool(),
		newWeatherTool(),
		newCurrencyTool(),
		newWebSearchTool(),
		newDateFormatterTool(),
		newUserCreatorTool(),
		newEmailSenderTool(),
	} {
		r.MustRegister(tool)
	}
	return r
}

// Register adds a tool under its canonical name.
func (r *Registry) Register(tool *Tool) error {
	if err := tool.Validate(); err != nil {
		return fmt.Errorf("invalid tool: %w", err)
	}
	if _, exists := r.tools[tool.Name]; exists {
		return fmt.Errorf("%w: %s", ErrToolAlreadyRegistered, tool.Name)
	}
	r.tools[tool.Name] = tool
	return nil
}

// MustRegister registers a tool and panics on error. Use for the
// static mock set built at startup.
func (r *Registry) MustRegister(tool *Tool) {
	if err := r.Register(tool); err != nil {
		panic(fmt.Sprintf("failed to register tool %s: %v", tool.Name, err))
	}
}

// Resolve normalizes a free-form name and returns the matching tool
// along with the canonical name it resolved to.
func (r *Registry) Resolve(name string) (*Tool, string, error) {
	canonical := NormalizeToolName(name)
	tool, ok := r.tools[canonical]
	if !ok {
		return nil, canonical, fmt.Errorf("%w: %q", ErrToolNotFound, name)
	}
	return tool, canonical, nil
}

// Get returns a tool by exact canonical name, or nil.
func (r *Registry) Get(name string) *Tool {
	return r.tools[name]
}

// Names returns the canonical tool names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	return len(r.tools)
}
