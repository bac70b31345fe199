package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	jsoniter "github.com/json-iterator/go"

	"haltbench/internal/types"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Render produces the report in the requested format.
func (r *Renderer) Render(res *types.BenchmarkResults, format types.OutputFormat) (string, error) {
	switch format {
	case types.FormatConsole:
		return r.Console(res), nil
	case types.FormatJSON:
		return JSON(res)
	case types.FormatMarkdown:
		return Markdown(res), nil
	case types.FormatHTML:
		return HTML(res), nil
	default:
		return "", fmt.Errorf("unknown output format: %q", format)
	}
}

// WriteFile renders the report and writes it to path. An empty path
// writes to stdout.
func (r *Renderer) WriteFile(res *types.BenchmarkResults, format types.OutputFormat, path string) error {
	out, err := r.Render(res, format)
	if err != nil {
		return err
	}
	if path == "" {
		_, err = fmt.Println(out)
		return err
	}
	return os.WriteFile(path, []byte(out), 0644)
}

// JSON serializes the full results structure.
func JSON(res *types.BenchmarkResults) (string, error) {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal results: %w", err)
	}
	return string(data), nil
}

// Markdown renders the results as a markdown document.
func Markdown(res *types.BenchmarkResults) string {
	var b strings.Builder

	b.WriteString("# HALTBENCH Results\n\n")
	fmt.Fprintf(&b, "**Date:** %s  \n", res.Timestamp.Format("2006-01-02 15:04 MST"))
	fmt.Fprintf(&b, "**Provider:** %s  \n", res.Provider)
	fmt.Fprintf(&b, "**Mode:** %s  \n", res.Mode)
	fmt.Fprintf(&b, "**Run:** %s  \n\n", res.RunID)

	b.WriteString("## Results by Category\n\n")
	b.WriteString("| Category | Score | Grade | Passed/Total |\n")
	b.WriteString("|----------|-------|-------|--------------|\n")
	for _, cat := range types.AllCategories() {
		cr, ok := res.Categories[cat]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "| %s | %.1f | %s | %d/%d |\n",
			cat.DisplayName(), cr.Score, types.ScoreToGrade(cr.Score),
			cr.Passed, cr.TotalTests)
	}

	fmt.Fprintf(&b, "\n**Final Score:** %.1f (%s)\n\n", res.FinalScore, res.Grade)
	if res.Improvement != nil {
		fmt.Fprintf(&b, "**Improvement over baseline:** %.1f\n\n", *res.Improvement)
	}

	b.WriteString("## Performance\n\n")
	fmt.Fprintf(&b, "- **Throughput:** %.1f qps\n", res.Performance.ThroughputQPS)
	fmt.Fprintf(&b, "- **Latency (p50):** %.0f ms\n", res.Performance.LatencyP50Ms)
	fmt.Fprintf(&b, "- **Latency (p95):** %.0f ms\n", res.Performance.LatencyP95Ms)
	fmt.Fprintf(&b, "- **Latency (p99):** %.0f ms\n", res.Performance.LatencyP99Ms)
	fmt.Fprintf(&b, "- **Audit Overhead:** %.1f ms\n", res.Performance.AuditOverheadMs)

	fmt.Fprintf(&b, "\n**Merkle Root:** `%s`\n", res.MerkleRoot)

	return b.String()
}

// Preview renders markdown for the terminal.
func Preview(markdown string) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", fmt.Errorf("create renderer: %w", err)
	}
	return renderer.Render(markdown)
}

func gradeHex(grade string) string {
	switch grade {
	case "A+", "A":
		return "#3fb950"
	case "B":
		return "#58a6ff"
	case "C":
		return "#d29922"
	default:
		return "#f85149"
	}
}

// HTML renders a self-contained dark-theme report page.
func HTML(res *types.BenchmarkResults) string {
	var rows strings.Builder
	totalItems := 0
	for _, cat := range types.AllCategories() {
		cr, ok := res.Categories[cat]
		if !ok {
			continue
		}
		totalItems += cr.TotalTests
		grade := types.ScoreToGrade(cr.Score)
		color := gradeHex(grade)
		width := int(cr.Score)
		if width < 0 {
			width = 0
		}
		if width > 100 {
			width = 100
		}
		fmt.Fprintf(&rows, `
        <div class="category-row">
            <div class="category-name">%s</div>
            <div class="score-bar"><div class="score-fill" style="width: %d%%; background: %s"></div></div>
            <div class="score-value" style="color: %s">%.1f</div>
            <div class="grade" style="color: %s">%s</div>
        </div>`,
			cat.DisplayName(), width, color, color, cr.Score, color, grade)
	}

	improvement := ""
	if res.Improvement != nil {
		improvement = fmt.Sprintf(`<div class="improvement">+%.1f improvement over baseline</div>`, *res.Improvement)
	}

	finalColor := gradeHex(res.Grade)

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>HALTBENCH Report</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Helvetica, Arial, sans-serif;
            line-height: 1.6;
            color: #c9d1d9;
            background: #0d1117;
            padding: 2rem;
            max-width: 1000px;
            margin: 0 auto;
        }
        .container { background: #161b22; border-radius: 16px; padding: 2rem; border: 1px solid #30363d; }
        .header { text-align: center; margin-bottom: 3rem; border-bottom: 1px solid #21262d; padding-bottom: 2rem; }
        .title { font-size: 2.5rem; font-weight: 800; color: #58a6ff; margin: 0; }
        .subtitle { color: #8b949e; font-size: 1.1rem; margin-top: 0.5rem; }
        .final-score { text-align: center; margin-bottom: 3rem; }
        .score-big { font-size: 6rem; font-weight: 800; line-height: 1; color: %s; }
        .grade-big { font-size: 2rem; font-weight: 700; color: %s; }
        .improvement { color: #3fb950; margin-top: 0.5rem; }
        .categories { background: rgba(22, 27, 34, 0.8); border-radius: 16px; padding: 1.5rem; margin-bottom: 2rem; border: 1px solid #30363d; }
        .categories h2 { color: #58a6ff; margin-bottom: 1.5rem; font-size: 1.25rem; }
        .category-row { display: grid; grid-template-columns: 240px 1fr 60px 40px; gap: 1rem; align-items: center; padding: 0.75rem 0; border-bottom: 1px solid #21262d; }
        .category-row:last-child { border-bottom: none; }
        .category-name { color: #c9d1d9; font-weight: 500; }
        .score-bar { height: 8px; background: #21262d; border-radius: 4px; overflow: hidden; }
        .score-fill { height: 100%%; border-radius: 4px; }
        .score-value { text-align: right; font-weight: 600; }
        .grade { text-align: center; font-weight: 700; }
        .metrics { display: grid; grid-template-columns: repeat(auto-fit, minmax(200px, 1fr)); gap: 1rem; margin-bottom: 2rem; }
        .metric-card { background: rgba(22, 27, 34, 0.8); border-radius: 12px; padding: 1.5rem; text-align: center; border: 1px solid #30363d; }
        .metric-value { font-size: 2rem; font-weight: 600; color: #58a6ff; }
        .metric-label { color: #8b949e; margin-top: 0.5rem; font-size: 0.875rem; }
        .footer { text-align: center; margin-top: 2rem; color: #8b949e; font-size: 0.875rem; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <div class="title">HALTBENCH Report</div>
            <div class="subtitle">%s &bull; %s mode &bull; %s</div>
        </div>
        <div class="final-score">
            <div class="score-big">%.1f</div>
            <div class="grade-big">%s</div>
            %s
        </div>
        <div class="categories">
            <h2>Results by Category</h2>%s
        </div>
        <div class="metrics">
            <div class="metric-card"><div class="metric-value">%.1f</div><div class="metric-label">Queries/Second</div></div>
            <div class="metric-card"><div class="metric-value">%.0fms</div><div class="metric-label">Latency (p50)</div></div>
            <div class="metric-card"><div class="metric-value">%d</div><div class="metric-label">Total Items</div></div>
            <div class="metric-card"><div class="metric-value">%.1fms</div><div class="metric-label">Audit Overhead</div></div>
        </div>
        <div class="footer">Merkle root %s</div>
    </div>
</body>
</html>`,
		finalColor, finalColor,
		res.Provider, res.Mode, res.Timestamp.Format("2006-01-02 15:04 MST"),
		res.FinalScore, res.Grade,
		improvement,
		rows.String(),
		res.Performance.ThroughputQPS,
		res.Performance.LatencyP50Ms,
		totalItems,
		res.Performance.AuditOverheadMs,
		res.MerkleRoot)
}
