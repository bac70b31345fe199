package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"haltbench/internal/runner"
	"haltbench/internal/types"
)

type progressMsg struct {
	done  int
	total int
}

type runDoneMsg struct {
	results *types.BenchmarkResults
	err     error
}

type runProgressModel struct {
	spin    spinner.Model
	bar     progress.Model
	done    int
	total   int
	results *types.BenchmarkResults
	err     error
	aborted bool
}

func newRunModel() runProgressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	return runProgressModel{
		spin: s,
		bar:  progress.New(progress.WithDefaultGradient()),
	}
}

func (m runProgressModel) Init() tea.Cmd {
	return m.spin.Tick
}

func (m runProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			m.aborted = true
			return m, tea.Quit
		}
		return m, nil

	case progressMsg:
		m.done, m.total = msg.done, msg.total
		return m, nil

	case runDoneMsg:
		m.results, m.err = msg.results, msg.err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m runProgressModel) View() string {
	if m.results != nil || m.err != nil {
		return ""
	}

	frac := 0.0
	if m.total > 0 {
		frac = float64(m.done) / float64(m.total)
	}
	return fmt.Sprintf("\n  %s Running benchmark  %s  %d/%d\n",
		m.spin.View(), m.bar.ViewAs(frac), m.done, m.total)
}

// runWithProgress drives the runner under a bubbletea progress UI.
func runWithProgress(ctx context.Context, r *runner.Runner) (*types.BenchmarkResults, error) {
	p := tea.NewProgram(newRunModel(), tea.WithContext(ctx))

	r.SetProgress(func(done, total int) {
		p.Send(progressMsg{done: done, total: total})
	})
	go func() {
		res, err := r.Run(ctx)
		p.Send(runDoneMsg{results: res, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return nil, err
	}

	m := final.(runProgressModel)
	if m.err != nil {
		return nil, m.err
	}
	if m.aborted || m.results == nil {
		return nil, fmt.Errorf("run aborted")
	}
	return m.results, nil
}
