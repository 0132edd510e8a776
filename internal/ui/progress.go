package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")) // Cyan
	checkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // Green
)

// Messages sent from the pipeline into the running program
type (
	phaseMsg  string   // show or update the spinner message
	finishMsg string   // persist a checkmark line and go idle
	warnMsg   string   // persist a warning line, spinner untouched
	clearMsg  struct{} // go idle without persisting anything
	quitMsg   struct{}
)

type progressModel struct {
	spinner spinner.Model
	message string
	active  bool
}

func newProgressModel() progressModel {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		FPS:    80 * time.Millisecond,
	}
	s.Style = spinnerStyle
	return progressModel{spinner: s}
}

func (m progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case phaseMsg:
		m.message = string(msg)
		m.active = true
		return m, nil
	case finishMsg:
		m.message = ""
		m.active = false
		return m, tea.Println(checkStyle.Render("✔") + " " + string(msg))
	case warnMsg:
		return m, tea.Println(string(msg))
	case clearMsg:
		m.message = ""
		m.active = false
		return m, nil
	case quitMsg:
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m progressModel) View() string {
	if !m.active {
		return ""
	}
	return m.spinner.View() + " " + m.message
}

// Progress reports the fetch-and-convert workflow on stderr.
//
// With enabled=false every method is a no-op, keeping quiet mode trivially
// safe for callers.
type Progress struct {
	enabled bool
	program *tea.Program
	done    chan struct{}
}

// New creates a progress reporter. When enabled it starts rendering
// immediately; call Close before exiting.
func New(enabled bool) *Progress {
	p := &Progress{enabled: enabled}
	if !enabled {
		return p
	}

	p.program = tea.NewProgram(
		newProgressModel(),
		tea.WithOutput(os.Stderr),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	p.done = make(chan struct{})
	go func() {
		_, _ = p.program.Run()
		close(p.done)
	}()
	return p
}

// Spinner shows a spinner with a message
func (p *Progress) Spinner(message string) {
	p.send(phaseMsg(message))
}

// SetMessage updates the message on the current spinner
func (p *Progress) SetMessage(message string) {
	p.send(phaseMsg(message))
}

// Finish ends the current phase, leaving a checkmarked line behind
func (p *Progress) Finish(message string) {
	p.send(finishMsg(message))
}

// FinishAndClear ends the current phase without leaving a line behind
func (p *Progress) FinishAndClear() {
	p.send(clearMsg{})
}

// Complete prints the final completion line with a green checkmark
func (p *Progress) Complete(message string) {
	p.send(finishMsg(message))
}

// Warn prints a warning. It goes through the renderer while the spinner is
// running so the two never interleave; in quiet mode it still reaches stderr.
func (p *Progress) Warn(message string) {
	if !p.enabled {
		fmt.Fprintln(os.Stderr, message)
		return
	}
	p.send(warnMsg(message))
}

// Close stops the renderer and waits for it to flush.
func (p *Progress) Close() {
	if !p.enabled {
		return
	}
	p.send(quitMsg{})
	<-p.done
}

func (p *Progress) send(msg tea.Msg) {
	if !p.enabled {
		return
	}
	p.program.Send(msg)
}
