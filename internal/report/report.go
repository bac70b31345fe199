// Package report renders benchmark results for the terminal and for
// JSON, markdown, and HTML files.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"haltbench/internal/types"
)

const ruleWidth = 64

// Renderer produces human-readable views of a benchmark run.
type Renderer struct {
	styles Styles
}

// NewRenderer returns a renderer with the default palette.
func NewRenderer() *Renderer {
	return &Renderer{styles: DefaultStyles()}
}

// Console renders the full terminal report for a run. Compare-mode
// runs get an extra baseline vs. second-pass section.
func (r *Renderer) Console(res *types.BenchmarkResults) string {
	var b strings.Builder

	rule := r.styles.Rule.Render(strings.Repeat("═", ruleWidth))
	b.WriteString("\n" + rule + "\n")
	b.WriteString(r.styles.Title.Render(fmt.Sprintf("▶ HALTBENCH — %s MODE", strings.ToUpper(res.Mode))))
	b.WriteString("\n")
	b.WriteString(r.styles.Muted.Render(fmt.Sprintf("  provider=%s  run=%s  %s",
		res.Provider, res.RunID, res.Timestamp.Format("2006-01-02 15:04"))))
	b.WriteString("\n" + rule + "\n\n")

	b.WriteString(r.styles.Header.Render("Results by Category") + "\n\n")
	for _, cat := range types.AllCategories() {
		cr, ok := res.Categories[cat]
		if !ok {
			continue
		}
		grade := types.ScoreToGrade(cr.Score)
		b.WriteString(fmt.Sprintf("  %s %-29s │ %s │ %5.1f │ %s\n",
			r.styles.gradeStyle(grade).Render(gradeIcon(grade)),
			cat.DisplayName(),
			r.scoreBar(cr.Score),
			cr.Score,
			r.styles.gradeStyle(grade).Render(grade),
		))
	}

	b.WriteString("\n" + r.styles.Muted.Render(strings.Repeat("─", ruleWidth)) + "\n")
	b.WriteString(fmt.Sprintf("  %s %-29s │ %s │ %5.1f │ %s\n",
		r.styles.Warning.Render("★"),
		r.styles.Bold.Render("FINAL SCORE"),
		r.scoreBar(res.FinalScore),
		res.FinalScore,
		r.styles.gradeStyle(res.Grade).Render(res.Grade),
	))

	if res.Mode == "compare" && res.BaselineScore != nil && res.SecondScore != nil {
		b.WriteString("\n" + r.renderComparison(res))
	}

	b.WriteString("\n" + r.renderPerformance(res))
	b.WriteString("\n" + r.renderCost(res))

	b.WriteString(fmt.Sprintf("\n  %s %s %s\n",
		r.styles.Accent.Render("Merkle Root:"),
		r.styles.Accent.Render(shortRoot(res.MerkleRoot)),
		r.styles.Muted.Render("(cryptographically verified)"),
	))

	b.WriteString("\n" + r.styles.Bold.Render("INTERPRETATION:") + " " +
		types.GradeInterpretation(res.Grade) + "\n")

	return b.String()
}

func (r *Renderer) renderComparison(res *types.BenchmarkResults) string {
	baseline := *res.BaselineScore
	second := *res.SecondScore
	improvement := 0.0
	if res.Improvement != nil {
		improvement = *res.Improvement
	}

	deltaStyle := r.styles.Success
	deltaSign := "+"
	if improvement < 0 {
		deltaStyle = r.styles.Error
		deltaSign = ""
	}

	var b strings.Builder
	b.WriteString(r.styles.Header.Render("Baseline vs. Second Pass") + "\n")
	b.WriteString(fmt.Sprintf("  baseline %5.1f → second %5.1f  %s\n",
		baseline, second,
		deltaStyle.Render(fmt.Sprintf("%s%.1f", deltaSign, improvement))))
	return b.String()
}

func (r *Renderer) renderPerformance(res *types.BenchmarkResults) string {
	p := res.Performance
	var b strings.Builder
	b.WriteString(r.styles.Header.Render("Performance") + "\n")
	b.WriteString(fmt.Sprintf("  %d queries  │  %.1f qps  │  p50 %.0f ms  p95 %.0f ms  p99 %.0f ms  │  audit %.1f ms\n",
		p.TotalQueries, p.ThroughputQPS,
		p.LatencyP50Ms, p.LatencyP95Ms, p.LatencyP99Ms,
		p.AuditOverheadMs))
	return b.String()
}

func (r *Renderer) renderCost(res *types.BenchmarkResults) string {
	prompt, completion := totalTokens(res)
	cost := estimateCost(prompt, completion)
	return fmt.Sprintf("  %s $%.4f %s\n",
		r.styles.Warning.Render("Est. Cost:"),
		cost,
		r.styles.Muted.Render(fmt.Sprintf("(%d tokens: %d in / %d out)",
			prompt+completion, prompt, completion)))
}

// scoreBar draws a 20-cell bar for a 0-100 score.
func (r *Renderer) scoreBar(score float64) string {
	filled := int(score/5.0 + 0.5)
	if filled < 0 {
		filled = 0
	}
	if filled > 20 {
		filled = 20
	}

	var style lipgloss.Style
	switch {
	case score >= 80.0:
		style = r.styles.BarHigh
	case score >= 60.0:
		style = r.styles.BarMid
	default:
		style = r.styles.BarLow
	}
	return style.Render(strings.Repeat("█", filled)) +
		r.styles.BarEmpty.Render(strings.Repeat("░", 20-filled))
}

// shortRoot abbreviates a merkle root to its end segments.
func shortRoot(root string) string {
	if len(root) <= 16 {
		return root
	}
	return root[:8] + "..." + root[len(root)-8:]
}

// totalTokens sums token usage across every test result.
func totalTokens(res *types.BenchmarkResults) (prompt, completion int) {
	for _, cr := range res.Categories {
		for _, tr := range cr.TestResults {
			if tr.TokenUsage == nil {
				continue
			}
			prompt += tr.TokenUsage.PromptTokens
			completion += tr.TokenUsage.CompletionTokens
		}
	}
	return prompt, completion
}

// estimateCost prices tokens at roughly frontier-model list rates,
// $2 per million in and $6 per million out.
func estimateCost(prompt, completion int) float64 {
	return float64(prompt)/1_000_000*2.0 + float64(completion)/1_000_000*6.0
}
