// Package tui provides the Bubble Tea race interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/verte-zerg/typeracer/internal/generator"
	"github.com/verte-zerg/typeracer/internal/model"
	"github.com/verte-zerg/typeracer/internal/scoring"
	"github.com/verte-zerg/typeracer/internal/session"
	statsPkg "github.com/verte-zerg/typeracer/internal/stats"
	"github.com/verte-zerg/typeracer/internal/store"
)

type phase int

const (
	phaseRacing phase = iota
	phaseResult
)

const (
	resultPlotHeight = 6
	progressBarWidth = 40
)

// Model implements the Bubble Tea race UI.
type Model struct {
	config     model.Config
	store      *store.Store
	gen        *generator.Generator
	paragraphs []string
	playerID   *uuid.UUID
	now        func() time.Time

	width  int
	height int

	phase    phase
	recorder *session.Recorder
	bar      progress.Model

	result   *model.SessionResult
	resultID string
	saveErr  error

	lastWPM float64
	lastAcc float64
	hasLast bool
	bestWPM float64
}

var (
	correctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	pendingStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	cursorStyle      = pendingStyle.Underline(true)
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
)

// NewModel constructs a race model. A nil store skips persistence and a nil
// playerID records races as a guest.
func NewModel(cfg model.Config, st *store.Store, gen *generator.Generator, paragraphs []string, playerID *uuid.UUID) *Model {
	m := &Model{
		config:     cfg,
		store:      st,
		gen:        gen,
		paragraphs: paragraphs,
		playerID:   playerID,
		now:        time.Now,
		bar: progress.New(
			progress.WithSolidFill("#C89A3A"),
			progress.WithWidth(progressBarWidth),
			progress.WithoutPercentage(),
		),
	}
	m.newRace()
	m.loadFooterStats()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.phase == phaseResult {
			return m.updateResult(msg)
		}
		return m.updateRacing(msg)
	default:
		return m, nil
	}
}

func (m *Model) updateRacing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyBackspace, tea.KeyDelete:
		m.recorder.Backspace()
	case tea.KeySpace:
		m.handleRunes([]rune{' '})
	case tea.KeyRunes:
		m.handleRunes(msg.Runes)
	}
	return m, nil
}

func (m *Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter:
		m.newRace()
	case tea.KeyRunes:
		if string(msg.Runes) == "q" {
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.phase == phaseResult {
		return m.resultView()
	}
	target := m.recorder.Target()
	if len(target) == 0 {
		return ""
	}
	input := m.recorder.Input()
	cursorIndex := -1
	if len(input) < len(target) {
		cursorIndex = len(input)
	}
	styledRunes := buildStyledRunes(target, input, cursorIndex)
	if m.width == 0 || m.height == 0 {
		return renderStyledRunes(styledRunes)
	}
	contentWidth := max(1, int(float64(m.width)*0.70))
	wrapped := wrapStyledRunes(styledRunes, contentWidth)
	bar := m.bar.ViewAs(float64(m.recorder.Progress()) / 100)
	content := lipgloss.NewStyle().Width(contentWidth).Render(wrapped + "\n\n" + bar)
	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) resultView() string {
	if m.result == nil {
		return ""
	}
	var b strings.Builder
	width := m.width
	if width > 0 {
		width = max(1, int(float64(width)*0.80))
	}
	if err := statsPkg.RenderResult(&b, *m.result, width, resultPlotHeight, true); err != nil {
		logErrf("failed to render result: %v\n", err)
	}
	switch {
	case m.saveErr != nil:
		b.WriteString(incorrectStyle.Render(fmt.Sprintf("Not saved: %v", m.saveErr)))
		b.WriteString("\n")
	case m.resultID != "":
		b.WriteString(footerStyle.Render("Saved as " + m.resultID))
		b.WriteString("\n")
	}
	b.WriteString(footerStyle.Render("enter: next race · q/esc: quit"))
	content := titleStyle.Render("Race finished") + "\n\n" + b.String()
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) handleRunes(runes []rune) {
	for _, r := range runes {
		m.recorder.Type(r)
		if m.recorder.Done() {
			m.finishRace()
			return
		}
	}
}

func (m *Model) newRace() {
	text := m.gen.Text(m.paragraphs, m.config.Mode)
	m.recorder = session.NewRecorder(text, m.now)
	m.phase = phaseRacing
	m.result = nil
	m.resultID = ""
	m.saveErr = nil
}

func (m *Model) finishRace() {
	raw := m.recorder.Stats(m.config.Mode)
	res := scoring.AssembleWindow(raw, m.config.Window)
	m.result = &res
	m.phase = phaseResult

	m.lastWPM = res.WPM
	m.lastAcc = res.Accuracy
	m.hasLast = true
	if res.WPM > m.bestWPM {
		m.bestWPM = res.WPM
	}

	if m.store == nil {
		return
	}
	id, err := m.store.SaveResult(context.Background(), m.playerID, res)
	if err != nil {
		m.saveErr = err
		logErrf("failed to save session: %v\n", err)
		return
	}
	m.resultID = id.String()
}

func (m *Model) loadFooterStats() {
	if m.store == nil {
		return
	}
	mode := m.config.Mode
	cfg := model.StatsConfig{Mode: &mode}
	if !m.config.Guest {
		cfg.Player = m.config.Player
	}
	sessions, err := m.store.ListSessions(context.Background(), cfg)
	if err != nil {
		logErrf("failed to load session stats: %v\n", err)
		return
	}
	if len(sessions) == 0 {
		return
	}
	last := sessions[len(sessions)-1]
	m.lastWPM = last.WPM
	m.lastAcc = last.Accuracy
	m.hasLast = true
	m.bestWPM = statsPkg.Summarize(sessions).BestWPM
}

func (m *Model) playerLabel() string {
	if m.config.Guest || m.config.Player == "" {
		return "guest"
	}
	return m.config.Player
}

func (m *Model) renderFooter() string {
	if m.recorder == nil || len(m.recorder.Target()) == 0 {
		return ""
	}
	segments := []string{
		fmt.Sprintf("%s · %s", m.playerLabel(), m.config.Mode),
		fmt.Sprintf("Progress %d%%", m.recorder.Progress()),
	}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %.1f WPM · %.1f%%", m.lastWPM, m.lastAcc))
	}
	if m.bestWPM > 0 {
		segments = append(segments, fmt.Sprintf("Best %.1f WPM", m.bestWPM))
	}
	return footerStyle.Render(strings.Join(segments, "  "))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
