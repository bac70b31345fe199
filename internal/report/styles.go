package report

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used by the console renderer.
type Styles struct {
	Title    lipgloss.Style
	Header   lipgloss.Style
	Rule     lipgloss.Style
	Muted    lipgloss.Style
	Bold     lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Accent   lipgloss.Style
	BarHigh  lipgloss.Style
	BarMid   lipgloss.Style
	BarLow   lipgloss.Style
	BarEmpty lipgloss.Style
}

// DefaultStyles returns the standard report palette.
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")).
			Bold(true),

		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Bold(true),

		Rule: lipgloss.NewStyle().
			Foreground(lipgloss.Color("14")),

		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),

		Bold: lipgloss.NewStyle().
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true),

		Warning: lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Bold(true),

		Accent: lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")),

		BarHigh: lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")),

		BarMid: lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")),

		BarLow: lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")),

		BarEmpty: lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")),
	}
}

// gradeStyle picks the style for a letter grade.
func (s Styles) gradeStyle(grade string) lipgloss.Style {
	switch grade {
	case "A+", "A":
		return s.Success
	case "B":
		return s.Warning
	case "C":
		return s.Warning
	default:
		return s.Error
	}
}

func gradeIcon(grade string) string {
	switch grade {
	case "A+", "A":
		return "✓"
	case "B":
		return "●"
	case "C":
		return "○"
	default:
		return "✗"
	}
}
