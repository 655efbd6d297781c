package statsui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typeracer/internal/model"
	"github.com/verte-zerg/typeracer/internal/stats"
)

var boardColumnWidths = []int{4, 16, 9, 8, 9, 8, 17, 9}

func leaderboardColumns() []table.Column {
	columns := make([]table.Column, len(stats.LeaderboardHeaders))
	for i, title := range stats.LeaderboardHeaders {
		columns[i] = table.Column{Title: title, Width: boardColumnWidths[i]}
	}
	return columns
}

func leaderboardRows(entries []model.LeaderboardEntry) []table.Row {
	rows := make([]table.Row, 0, len(entries))
	for _, cells := range stats.LeaderboardRows(entries) {
		rows = append(rows, table.Row(cells))
	}
	return rows
}

func boardStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(colors.Border).
		Foreground(colors.TextSoft).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(colors.Text).
		Bold(true)
	return styles
}

func (m *Model) setBoardSize(width, height int) {
	viewportHeight := max(1, height-1)
	if m.boardLayout.width == width && m.boardLayout.height == viewportHeight {
		return
	}
	m.boardLayout.width = width
	m.boardLayout.height = viewportHeight
	m.board.SetWidth(width)
	m.board.SetHeight(viewportHeight)
	if adjusted := m.adjustBoardHeight(height); adjusted != viewportHeight {
		m.boardLayout.height = adjusted
		m.board.SetHeight(adjusted)
	}
}

// adjustBoardHeight corrects the table height so its rendered view, header
// border included, fills exactly bodyHeight rows.
func (m *Model) adjustBoardHeight(bodyHeight int) int {
	target := max(1, bodyHeight)
	height := m.board.Height()
	for range 2 {
		viewHeight := lipgloss.Height(m.board.View())
		if viewHeight == target {
			return height
		}
		height = max(1, height+target-viewHeight)
		m.board.SetHeight(height)
	}
	return height
}
