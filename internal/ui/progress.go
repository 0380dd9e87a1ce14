// Package ui provides an optional interactive progress view for
// cmd/millet check --watch, grounded on the teacher's own
// internal/ui.NewProgressModel + cmd/surge/ui_runner.go goroutine/channel
// wiring, scaled down to a single spinner since internal/driver's
// Analysis.GetMany runs as one synchronous call rather than streaming
// per-file events.
package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type doneMsg struct{ err error }

type spinnerModel struct {
	label   string
	spinner spinner.Model
	done    bool
	err     error
}

func newSpinnerModel(label string) *spinnerModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	return &spinnerModel{label: label, spinner: sp}
}

func (m *spinnerModel) Init() tea.Cmd { return m.spinner.Tick }

func (m *spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.label + "\n"
}

// RunWithSpinner runs work on a goroutine while a spinner renders to the
// terminal, returning work's error (or the UI's own error, if the
// terminal program itself failed to run).
func RunWithSpinner(label string, work func() error) error {
	m := newSpinnerModel(label)
	program := tea.NewProgram(m)

	resultCh := make(chan error, 1)
	go func() {
		err := work()
		resultCh <- err
		program.Send(doneMsg{err: err})
	}()

	if _, err := program.Run(); err != nil {
		<-resultCh
		return err
	}
	return <-resultCh
}
