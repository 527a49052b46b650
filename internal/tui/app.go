// Package tui is the terminal UI for a backup run: interactive path
// entry when paths are unresolved, live progress during the walk, and
// a styled summary when the run completes.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/backup-files/internal/config"
	"github.com/joe/backup-files/internal/mirror"
)

type phase int

const (
	phaseInput phase = iota
	phaseRunning
	phaseDone
)

// engineReadyMsg carries the connected engine into the model.
type engineReadyMsg struct {
	engine *mirror.Engine
}

// engineFailedMsg reports a fatal setup failure.
type engineFailedMsg struct {
	err error
}

// Model is the single top-level bubbletea model for the whole run.
type Model struct {
	cfg    *config.Config
	bridge *EventBridge
	engine *mirror.Engine
	phase  phase

	sourceInput textinput.Model
	destInput   textinput.Model
	focusDest   bool

	spin    spinner.Model
	bar     progress.Model
	total   int
	checked int
	copied  int
	current string

	summary *mirror.Summary
	err     error
}

// NewModel creates the app model. When the config already has both
// paths the input phase is skipped and the run starts immediately.
func NewModel(cfg *config.Config) *Model {
	sourceInput := textinput.New()
	sourceInput.Placeholder = "source directory or sftp:// endpoint"
	sourceInput.SetValue(cfg.SourcePath)
	sourceInput.Focus()

	destInput := textinput.New()
	destInput.Placeholder = "backup destination"
	destInput.SetValue(cfg.DestPath)

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = titleStyle()

	startPhase := phaseInput
	if !cfg.InteractiveMode {
		startPhase = phaseRunning
	}

	return &Model{
		cfg:         cfg,
		bridge:      NewEventBridge(),
		phase:       startPhase,
		sourceInput: sourceInput,
		destInput:   destInput,
		spin:        spin,
		bar:         progress.New(progress.WithDefaultGradient(), progress.WithWidth(progressBarWidth)),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.phase == phaseRunning {
		return tea.Batch(m.spin.Tick, m.startRun())
	}

	return textinput.Blink
}

// startRun connects the engine and kicks off the walk on its own
// goroutine; progress arrives through the event bridge.
func (m *Model) startRun() tea.Cmd {
	return func() tea.Msg {
		engine, err := mirror.NewEngine(mirror.Options{
			Source:    m.cfg.SourcePath,
			Dest:      m.cfg.DestPath,
			LogDir:    m.cfg.LogDir,
			Pattern:   m.cfg.Pattern,
			Threshold: m.cfg.Threshold(),
			Workers:   m.cfg.Workers,
			MaxPath:   m.cfg.MaxPath,
		})
		if err != nil {
			return engineFailedMsg{err: err}
		}

		engine.SetEventEmitter(m.bridge)

		go func() {
			_, _ = engine.Estimate()
			_, _ = engine.Run()
			_ = engine.Close()
			m.bridge.Close()
		}()

		return engineReadyMsg{engine: engine}
	}
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case engineReadyMsg:
		m.engine = msg.engine

		return m, m.bridge.ListenCmd()

	case engineFailedMsg:
		m.err = msg.err
		m.phase = phaseDone

		return m, tea.Quit

	case EngineEventMsg:
		m.handleEvent(msg.Event)

		if m.phase == phaseDone {
			return m, nil
		}

		return m, m.bridge.ListenCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)

		return m, cmd
	}

	return m.updateInputs(msg)
}

// handleKey routes key presses per phase.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "tab", "shift+tab":
		if m.phase == phaseInput {
			m.toggleFocus()
		}

		return m, nil

	case "enter":
		return m.handleEnter()

	case "q":
		if m.phase == phaseDone {
			return m, tea.Quit
		}
	}

	return m.updateInputs(msg)
}

// handleEnter advances the input phase: first field to second field,
// second field to the run. On the done screen it quits.
func (m *Model) handleEnter() (tea.Model, tea.Cmd) {
	switch m.phase {
	case phaseInput:
		if !m.focusDest {
			m.toggleFocus()

			return m, nil
		}

		m.cfg.SourcePath = strings.TrimSpace(m.sourceInput.Value())
		m.cfg.DestPath = strings.TrimSpace(m.destInput.Value())

		if err := m.cfg.ValidatePaths(); err != nil {
			m.err = err

			return m, nil
		}

		m.err = nil
		m.phase = phaseRunning

		return m, tea.Batch(m.spin.Tick, m.startRun())

	case phaseDone:
		return m, tea.Quit
	}

	return m, nil
}

func (m *Model) toggleFocus() {
	m.focusDest = !m.focusDest

	if m.focusDest {
		m.sourceInput.Blur()
		m.destInput.Focus()
	} else {
		m.destInput.Blur()
		m.sourceInput.Focus()
	}
}

// handleEvent folds an engine event into the display state.
func (m *Model) handleEvent(event mirror.Event) {
	switch event := event.(type) {
	case mirror.EstimateProgress:
		m.current = event.Path

	case mirror.EstimateComplete:
		m.total = event.Files

	case mirror.FileChecked:
		m.checked++
		m.current = event.Path

	case mirror.FileCopied:
		m.copied++

	case mirror.WalkComplete:
		m.summary = event.Summary
		m.phase = phaseDone
	}
}

func (m *Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	var cmd tea.Cmd

	m.sourceInput, cmd = m.sourceInput.Update(msg)
	cmds = append(cmds, cmd)

	m.destInput, cmd = m.destInput.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m *Model) View() string {
	switch m.phase {
	case phaseInput:
		return m.viewInput()
	case phaseRunning:
		return m.viewRunning()
	default:
		return m.viewDone()
	}
}

func (m *Model) viewInput() string {
	var b strings.Builder

	b.WriteString(titleStyle().Render("backup-files") + "\n\n")
	b.WriteString("Source:\n" + m.sourceInput.View() + "\n\n")
	b.WriteString("Destination:\n" + m.destInput.View() + "\n\n")

	if m.err != nil {
		b.WriteString(errorStyle().Render(m.err.Error()) + "\n\n")
	}

	b.WriteString(dimStyle().Render("tab: switch field • enter: continue • ctrl+c: quit"))

	return b.String()
}

func (m *Model) viewRunning() string {
	var b strings.Builder

	b.WriteString(m.spin.View() + titleStyle().Render("Backing up...") + "\n\n")

	if m.total > 0 {
		percent := float64(m.checked) / float64(m.total)
		b.WriteString(m.bar.ViewAs(percent) + "\n")
		b.WriteString(fmt.Sprintf("%d of %d files checked, %d copied\n", m.checked, m.total, m.copied))
	} else {
		b.WriteString(fmt.Sprintf("Estimating... %d files checked\n", m.checked))
	}

	if m.current != "" {
		b.WriteString(dimStyle().Render(m.current) + "\n")
	}

	return b.String()
}

func (m *Model) viewDone() string {
	if m.err != nil {
		return errorStyle().Render("Backup failed: "+m.err.Error()) + "\n"
	}

	if m.summary == nil {
		return ""
	}

	body := successStyle().Render("Done") + "\n\n" + m.summary.Render()

	if m.engine != nil {
		body += "\n" + dimStyle().Render("log: "+m.engine.LogPath())
	}

	return boxStyle().Render(body) + "\n" + dimStyle().Render("press q or enter to exit") + "\n"
}
