// Package types holds the shared data model for the haltbench
// benchmark: test items, expectations, per-test and per-category
// results, and the final weighted score.
package types

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects how the benchmark runs.
type Mode string

const (
	// ModeBaseline runs the provider once per item.
	ModeBaseline Mode = "baseline"

	// ModeCompare runs two passes and reports the delta.
	ModeCompare Mode = "compare"
)

// ParseMode validates a user-supplied mode string.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "baseline":
		return ModeBaseline, nil
	case "compare":
		return ModeCompare, nil
	default:
		return "", fmt.Errorf("invalid mode: %q (use 'baseline' or 'compare')", s)
	}
}

// OutputFormat selects the report renderer.
type OutputFormat string

const (
	FormatConsole  OutputFormat = "console"
	FormatJSON     OutputFormat = "json"
	FormatMarkdown OutputFormat = "markdown"
	FormatHTML     OutputFormat = "html"
)

// ParseOutputFormat validates a user-supplied format string.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "console":
		return FormatConsole, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("invalid format: %q (use 'console', 'json', 'markdown', or 'html')", s)
	}
}

// ExpectationKind tags what a test item expects from the model.
type ExpectationKind string

const (
	// ExpectExactAnswer requires an exact (or contained) match.
	ExpectExactAnswer ExpectationKind = "exact_answer"

	// ExpectContainsAnswer requires the answer as a substring.
	ExpectContainsAnswer ExpectationKind = "contains_answer"

	// ExpectSemanticAnswer is judged by keyword overlap.
	ExpectSemanticAnswer ExpectationKind = "semantic_answer"

	// ExpectRefusal requires the model to decline or abstain.
	ExpectRefusal ExpectationKind = "should_refuse"

	// ExpectDetection requires the model to flag the embedded issue.
	ExpectDetection ExpectationKind = "should_detect"

	// ExpectUncertainty requires an expression of uncertainty.
	ExpectUncertainty ExpectationKind = "should_express_uncertainty"

	// ExpectReproducible requires byte-identical output across runs.
	ExpectReproducible ExpectationKind = "should_be_reproducible"

	// ExpectCatchFlaw requires the model to catch a planted flaw.
	ExpectCatchFlaw ExpectationKind = "should_catch_flaw"
)

// Expectation describes the pass condition for one test item.
// Only the fields relevant to Kind are populated.
type Expectation struct {
	Kind ExpectationKind `json:"type"`

	// Answer is the expected text for the answer-matching kinds.
	Answer string `json:"answer,omitempty"`

	// Reason explains why refusal is expected (ExpectRefusal).
	Reason string `json:"reason,omitempty"`

	// IssueType names the planted issue (ExpectDetection).
	IssueType string `json:"issue_type,omitempty"`

	// FlawType names the planted flaw (ExpectCatchFlaw).
	FlawType string `json:"flaw_type,omitempty"`

	// ExpectedHash is the reference hash for reproducibility checks.
	// Empty on a first run.
	ExpectedHash string `json:"expected_hash,omitempty"`
}

// TestItem is a single prompt to evaluate.
type TestItem struct {
	ID          string         `json:"id"`
	Category    Category       `json:"category"`
	Subcategory string         `json:"subcategory"`
	Prompt      string         `json:"prompt"`
	Expected    Expectation    `json:"expected"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// TokenUsage aggregates token counts for one provider call.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// TestResult records the outcome of evaluating one item.
type TestResult struct {
	TestID          string         `json:"test_id"`
	Category        Category       `json:"category"`
	Subcategory     string         `json:"subcategory"`
	Passed          bool           `json:"passed"`
	Score           float64        `json:"score"`
	Confidence      *float64       `json:"confidence,omitempty"`
	Response        string         `json:"response"`
	Expected        Expectation    `json:"expected"`
	ExecutionTimeMs int64          `json:"execution_time_ms"`
	Hash            string         `json:"hash"`
	TokenUsage      *TokenUsage    `json:"token_usage,omitempty"`
	Metadata        map[string]any `json:"metadata,omitempty"`
}

// CategoryMetrics holds the category-specific diagnostics. Nil
// pointers mean the metric does not apply to the category.
type CategoryMetrics struct {
	ECE                  *float64 `json:"ece,omitempty"`
	OverconfidenceRate   *float64 `json:"overconfidence_rate,omitempty"`
	AbstentionRate       *float64 `json:"abstention_rate,omitempty"`
	DetectionRate        *float64 `json:"detection_rate,omitempty"`
	FalsePositiveRate    *float64 `json:"false_positive_rate,omitempty"`
	ContradictionRate    *float64 `json:"contradiction_detection_rate,omitempty"`
	HashVerification     *float64 `json:"hash_verification_success,omitempty"`
	FabricationRate      *float64 `json:"fabrication_rate,omitempty"`
	RefusalRate          *float64 `json:"refusal_rate,omitempty"`
	TraceReproducibility *float64 `json:"trace_reproducibility,omitempty"`
	TamperingDetection   *float64 `json:"tampering_detection_rate,omitempty"`
}

// CategoryResult aggregates all item results within one category.
type CategoryResult struct {
	Category    Category        `json:"category"`
	TotalTests  int             `json:"total_tests"`
	Passed      int             `json:"passed"`
	Failed      int             `json:"failed"`
	Score       float64         `json:"score"`
	Metrics     CategoryMetrics `json:"metrics"`
	TestResults []TestResult    `json:"test_results"`
}

// PerformanceMetrics describes wall-clock behavior of a run.
type PerformanceMetrics struct {
	TotalQueries    int     `json:"total_queries"`
	ThroughputQPS   float64 `json:"throughput_qps"`
	LatencyP50Ms    float64 `json:"latency_p50_ms"`
	LatencyP95Ms    float64 `json:"latency_p95_ms"`
	LatencyP99Ms    float64 `json:"latency_p99_ms"`
	AuditOverheadMs float64 `json:"audit_overhead_ms"`
}

// BenchmarkResults is the complete output of one benchmark run.
type BenchmarkResults struct {
	RunID         string                      `json:"run_id"`
	Timestamp     time.Time                   `json:"timestamp"`
	Mode          string                      `json:"mode"`
	Provider      string                      `json:"provider"`
	NumRuns       int                         `json:"num_runs"`
	Categories    map[Category]CategoryResult `json:"categories"`
	FinalScore    float64                     `json:"final_score"`
	Grade         string                      `json:"grade"`
	Performance   PerformanceMetrics          `json:"performance"`
	MerkleRoot    string                      `json:"merkle_root"`
	BaselineScore *float64                    `json:"baseline_score,omitempty"`
	SecondScore   *float64                    `json:"second_score,omitempty"`
	Improvement   *float64                    `json:"improvement,omitempty"`
}

// FinalScore computes the weighted 0-100 score across categories.
func FinalScore(categories map[Category]CategoryResult) float64 {
	var score float64
	for cat, result := range categories {
		score += cat.Weight() * result.Score
	}
	return score
}

// ScoreToGrade maps a 0-100 score to a letter grade.
func ScoreToGrade(score float64) string {
	switch {
	case score >= 90.0:
		return "A+"
	case score >= 80.0:
		return "A"
	case score >= 70.0:
		return "B"
	case score >= 50.0:
		return "C"
	default:
		return "F"
	}
}

// GradeInterpretation returns the one-line reading of a grade.
func GradeInterpretation(grade string) string {
	switch grade {
	case "A+":
		return "Verification-Ready: Enterprise-grade trust"
	case "A":
		return "Production-Ready: Suitable for high-stakes applications"
	case "B":
		return "Production-Cautious: Requires human oversight"
	case "C":
		return "Experimental: Not for critical decisions"
	default:
		return "Unreliable: High hallucination risk"
	}
}
