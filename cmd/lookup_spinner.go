package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// showElapsedAfter is how long a lookup runs before the spinner starts counting seconds.
const showElapsedAfter = time.Second

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("69"))
	elapsedStyle = lipgloss.NewStyle().Faint(true)
)

type lookupDoneMsg[T any] struct {
	value T
	err   error
}

// lookupSpinner keeps a spinner on screen while one bot command runs upstream.
type lookupSpinner[T any] struct {
	spinner spinner.Model
	label   string
	started time.Time
	now     func() time.Time
	run     tea.Cmd
	result  lookupDoneMsg[T]
	done    bool
}

func newLookupSpinner[T any](label string, now func() time.Time, run tea.Cmd) lookupSpinner[T] {
	return lookupSpinner[T]{
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(spinnerStyle)),
		label:   label,
		started: now(),
		now:     now,
		run:     run,
	}
}

func (m lookupSpinner[T]) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m lookupSpinner[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case lookupDoneMsg[T]:
		m.done = true
		m.result = msg
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m lookupSpinner[T]) View() string {
	if m.done {
		return ""
	}

	line := m.spinner.View() + " " + m.label
	if elapsed := m.now().Sub(m.started); elapsed >= showElapsedAfter {
		line += elapsedStyle.Render(fmt.Sprintf(" %ds", int(elapsed/time.Second)))
	}
	return line
}

// runLookup shows label on output until fetch returns, then hands back what fetch produced.
func runLookup[T any](ctx context.Context, output io.Writer, label string, now func() time.Time, fetch func(context.Context) (T, error)) (T, error) {
	run := func() tea.Msg {
		value, err := fetch(ctx)
		return lookupDoneMsg[T]{value: value, err: err}
	}

	p := tea.NewProgram(
		newLookupSpinner[T](label, now, run),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	var zero T
	final, err := p.Run()
	if err != nil {
		return zero, err
	}

	model, ok := final.(lookupSpinner[T])
	if !ok {
		return zero, fmt.Errorf("unexpected final spinner model type %T", final)
	}

	return model.result.value, model.result.err
}
