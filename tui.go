package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
)

// tuiPhase tracks what the viewer is currently showing.
type tuiPhase int

const (
	phaseRunning tuiPhase = iota
	phaseDone
	phaseFailed
)

// benchmarkDoneMsg delivers the finished report (or the error) to the model.
type benchmarkDoneMsg struct {
	report *Report
	err    error
}

// Model is the TUI application state: a spinner while the benchmark runs,
// then the report with switchable circuit diagrams.
type Model struct {
	cfg     Config
	log     zerolog.Logger
	phase   tuiPhase
	spin    spinner.Model
	report  *Report
	err     error
	variant int // 0 = standard, 1 = egs
	width   int
}

func initialModel(cfg Config, log zerolog.Logger) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = titleStyle
	return Model{
		cfg:   cfg,
		log:   log,
		phase: phaseRunning,
		spin:  sp,
	}
}

func (m Model) runBenchmark() tea.Msg {
	report, err := NewRunner(m.cfg, m.log).Run(m.cfg.Qubits, m.cfg.Layers)
	return benchmarkDoneMsg{report: report, err: err}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.runBenchmark)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case benchmarkDoneMsg:
		if msg.err != nil {
			m.phase = phaseFailed
			m.err = msg.err
			return m, nil
		}
		m.phase = phaseDone
		m.report = msg.report
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab", "left", "right":
			if m.phase == phaseDone {
				m.variant = 1 - m.variant
			}
			return m, nil
		}
	}
	return m, nil
}

func (m Model) View() string {
	switch m.phase {
	case phaseRunning:
		return fmt.Sprintf("\n %s running EGS benchmark (%d qubits, %d layers, %d shots)...\n",
			m.spin.View(), m.cfg.Qubits, m.cfg.Layers, m.cfg.Shots)

	case phaseFailed:
		return lossStyle.Render("benchmark failed: "+m.err.Error()) + "\n" +
			helpStyle.Render("press q to quit") + "\n"
	}

	variant := m.report.Standard
	label := "Standard (interleaved)"
	if m.variant == 1 {
		variant = m.report.EGS
		label = "EGS (layered, deferred entanglement)"
	}

	diagram := RenderCircuit(variant.Compiled, label+" — compiled")
	help := helpStyle.Render("tab: switch variant • q: quit")
	return lipgloss.JoinVertical(lipgloss.Left, RenderReport(m.report), diagram, help)
}

// runTUI starts the interactive viewer.
func runTUI(cfg Config, log zerolog.Logger) error {
	_, err := tea.NewProgram(initialModel(cfg, log), tea.WithAltScreen()).Run()
	return err
}
