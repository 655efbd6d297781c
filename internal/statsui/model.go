// Package statsui provides the Bubble Tea stats interface.
package statsui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typeracer/internal/model"
	"github.com/verte-zerg/typeracer/internal/stats"
	"github.com/verte-zerg/typeracer/internal/store"
)

const (
	tabOverview = iota
	tabLeaderboard
	tabLastRace
)

var tabNames = []string{"Overview", "Leaderboard", "Last Race"}

// Model implements the Bubble Tea stats UI.
type Model struct {
	store *store.Store
	cfg   model.StatsConfig
	by    store.LeaderboardMetric

	report stats.Report
	errMsg string

	activeTab   int
	viewports   []viewport.Model
	board       table.Model
	boardLayout tableLayout
	filter      filterForm

	width  int
	height int
}

type tableLayout struct {
	width  int
	height int
}

// NewModel constructs a stats UI model. An empty metric ranks by WPM.
func NewModel(st *store.Store, cfg model.StatsConfig, by store.LeaderboardMetric) *Model {
	if by == "" {
		by = store.ByWPM
	}
	m := &Model{
		store:     st,
		cfg:       cfg,
		by:        by,
		viewports: make([]viewport.Model, len(tabNames)),
		filter:    newFilterForm(),
		board: table.New(
			table.WithColumns(leaderboardColumns()),
			table.WithHeight(1),
			table.WithStyles(boardStyles()),
		),
	}
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
	m.refreshReport()
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
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.filter.active {
			return m, m.updateFilter(msg)
		}
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		return tea.Quit
	case "left", "h":
		m.moveTab(-1)
		return tea.ClearScreen
	case "right", "l":
		m.moveTab(1)
		return tea.ClearScreen
	case "=":
		m.cfg.CurveWindow = nextCurveWindow(m.cfg.CurveWindow)
		m.renderTabContents()
	case "-":
		m.cfg.CurveWindow = prevCurveWindow(m.cfg.CurveWindow)
		m.renderTabContents()
	case "b":
		m.by = toggleMetric(m.by)
		m.refreshReport()
	case "/":
		return m.filter.open(m.cfg)
	case "g", "home":
		if m.activeTab == tabLeaderboard {
			m.board.GotoTop()
		} else {
			m.viewports[m.activeTab].GotoTop()
		}
	case "G", "end":
		if m.activeTab == tabLeaderboard {
			m.board.GotoBottom()
		} else {
			m.viewports[m.activeTab].GotoBottom()
		}
	default:
		var cmd tea.Cmd
		if m.activeTab == tabLeaderboard {
			m.board, cmd = m.board.Update(msg)
		} else {
			m.viewports[m.activeTab], cmd = m.viewports[m.activeTab].Update(msg)
		}
		return cmd
	}
	return nil
}

func (m *Model) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.filter.close()
		return nil
	case tea.KeyEnter:
		cfg, err := m.filter.parse(m.cfg)
		if err != nil {
			m.filter.err = err.Error()
			return nil
		}
		m.cfg = cfg
		m.filter.close()
		m.refreshReport()
		m.updateLayout()
		return nil
	case tea.KeyTab:
		return m.filter.focus(m.filter.index + 1)
	case tea.KeyShiftTab:
		return m.filter.focus(m.filter.index - 1)
	}
	return m.filter.update(msg)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	return strings.Join([]string{
		fitLines(m.renderHeader(), m.width, headerHeight),
		fitLines(m.renderBody(), m.width, bodyHeight),
		fitLines(m.renderFooter(), m.width, footerHeight),
	}, "\n")
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = lipgloss.Height(activeTabStyle.Render("X")) + 1
	footerHeight = 1
	if !m.filter.active && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = max(1, m.height-headerHeight-footerHeight)
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = bodyHeight
	}
	m.setBoardSize(m.width, bodyHeight)
	m.filter.resize(m.width)
}

func (m *Model) moveTab(delta int) {
	m.activeTab = (m.activeTab + delta + len(tabNames)) % len(tabNames)
	if m.activeTab == tabLeaderboard {
		m.board.Focus()
	} else {
		m.board.Blur()
	}
}

func (m *Model) renderHeader() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if i == m.activeTab {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = inactiveTabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n" + m.renderFilterSummary()
}

func (m *Model) renderFilterSummary() string {
	mode, player, since, last := "any", "any", "any", "all"
	if m.cfg.Mode != nil {
		mode = m.cfg.Mode.String()
	}
	if m.cfg.Player != "" {
		player = m.cfg.Player
	}
	if m.cfg.Since != nil {
		since = m.cfg.Since.Format(dateLayout)
	}
	if m.cfg.Last > 0 {
		last = strconv.Itoa(m.cfg.Last)
	}
	summary := fmt.Sprintf("Settings: mode=%s  player=%s  since=%s  last=%s  window=%d  rank=%s",
		mode, player, since, last, m.cfg.CurveWindow, m.by)
	return hintStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderFooter() string {
	if m.filter.active {
		return hintStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel")
	}
	help := hintStyle.Render("Nav: left/right  Scroll: up/down/pgup/pgdn  Window: -/=  Rank: b  Settings: /  Quit: q")
	if m.errMsg != "" {
		return help + "\n" + errorStyle.Render(m.errMsg)
	}
	return help
}

func (m *Model) renderBody() string {
	switch {
	case m.filter.active:
		return m.filter.view()
	case m.activeTab != tabLeaderboard:
		return m.viewports[m.activeTab].View()
	case len(m.report.Leaderboard) == 0:
		return "No ranked sessions yet."
	default:
		return tableStyle.Render(m.board.View())
	}
}

func (m *Model) refreshReport() {
	report, err := stats.BuildReport(context.Background(), m.store, m.cfg, m.by)
	if err != nil {
		m.errMsg = err.Error()
		for i := range m.viewports {
			m.viewports[i].SetContent("Failed to load stats.")
		}
		return
	}
	m.errMsg = ""
	m.report = report
	m.board.SetRows(leaderboardRows(report.Leaderboard))
	m.board.GotoTop()
	m.renderTabContents()
}

func (m *Model) renderTabContents() {
	if m.errMsg != "" {
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.report, m.cfg.CurveWindow, width))
	m.viewports[tabLastRace].SetContent(renderLastRace(m.report, width))
}

func toggleMetric(by store.LeaderboardMetric) store.LeaderboardMetric {
	if by == store.ByAccuracy {
		return store.ByWPM
	}
	return store.ByAccuracy
}

func nextCurveWindow(n int) int {
	if n < 5 {
		return 5
	}
	return (n/5 + 1) * 5
}

func prevCurveWindow(n int) int {
	switch {
	case n <= 5:
		return 1
	case n%5 == 0:
		return n - 5
	default:
		return n / 5 * 5
	}
}
