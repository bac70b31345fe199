package types

import (
	"fmt"
	"strings"
)

// Category identifies one of the benchmark's test families.
type Category string

const (
	// CategoryCCT is the Confidence Calibration Test.
	CategoryCCT Category = "CCT"

	// CategoryAPI covers Adversarial Prompt Injection.
	CategoryAPI Category = "API"

	// CategoryFCT is the Factual Consistency Test.
	CategoryFCT Category = "FCT"

	// CategoryHHT is the Hallucination Honeypot Test.
	CategoryHHT Category = "HHT"

	// CategoryRT is the Reproducibility Test.
	CategoryRT Category = "RT"

	// CategoryFrontier holds the frontier super-hard items.
	CategoryFrontier Category = "FRONTIER"

	// CategoryVSM covers Verbal-Semantic Misalignment.
	CategoryVSM Category = "VSM"

	// CategoryMTC covers Multi-Step Tool Chains.
	CategoryMTC Category = "MTC"

	// CategoryEAS is the Epistemic-Aleatoric Split.
	CategoryEAS Category = "EAS"

	// CategoryMEM is the Memory Evaluation Test.
	CategoryMEM Category = "MEM"

	// CategoryAGT covers Agentic Safety Tests.
	CategoryAGT Category = "AGT"

	// CategoryVEX holds the adversarial-verification showcase items.
	CategoryVEX Category = "VEX"
)

// categoryWeights are the shares each category contributes to the
// final weighted score. They sum to 1.0.
var categoryWeights = map[Category]float64{
	CategoryCCT:      0.15,
	CategoryAPI:      0.10,
	CategoryFCT:      0.10,
	CategoryHHT:      0.10,
	CategoryRT:       0.05,
	CategoryFrontier: 0.15,
	CategoryVSM:      0.05,
	CategoryMTC:      0.05,
	CategoryEAS:      0.05,
	CategoryMEM:      0.05,
	CategoryAGT:      0.10,
	CategoryVEX:      0.05,
}

var categoryNames = map[Category]string{
	CategoryCCT:      "Confidence Calibration",
	CategoryAPI:      "Adversarial Injection",
	CategoryFCT:      "Factual Consistency",
	CategoryHHT:      "Hallucination Honeypot",
	CategoryRT:       "Reproducibility",
	CategoryFrontier: "Frontier Super-Hard",
	CategoryVSM:      "Verbal-Semantic Misalignment",
	CategoryMTC:      "Multi-Step Tool Chains",
	CategoryEAS:      "Epistemic-Aleatoric Split",
	CategoryMEM:      "Memory Evaluation",
	CategoryAGT:      "Agentic Safety",
	CategoryVEX:      "VEX Showcase",
}

// AllCategories returns every category in report order.
func AllCategories() []Category {
	return []Category{
		CategoryCCT, CategoryAPI, CategoryFCT, CategoryHHT,
		CategoryRT, CategoryFrontier, CategoryVSM, CategoryMTC,
		CategoryEAS, CategoryMEM, CategoryAGT, CategoryVEX,
	}
}

// Weight returns the category's share of the final score.
func (c Category) Weight() float64 {
	return categoryWeights[c]
}

// DisplayName returns the human-readable category name.
func (c Category) DisplayName() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return string(c)
}

// Valid reports whether the category is one of the known families.
func (c Category) Valid() bool {
	_, ok := categoryWeights[c]
	return ok
}

// ParseCategory converts a user-supplied string into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown category: %q", s)
	}
	return c, nil
}

// ParseCategoryList splits a comma-separated category list.
// An empty input returns nil, meaning "all categories".
func ParseCategoryList(s string) ([]Category, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []Category
	for _, part := range strings.Split(s, ",") {
		c, err := ParseCategory(part)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
