package statsui

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typeracer/internal/model"
	"github.com/verte-zerg/typeracer/internal/stats"
)

const plotHeight = 10

func renderOverview(report stats.Report, window, width int) string {
	if len(report.Sessions) == 0 {
		return "No sessions found."
	}
	var curves bytes.Buffer
	if err := stats.RenderCurvesWithSize(&curves, report.Sessions, window, width, plotHeight, true); err != nil {
		return fmt.Sprintf("Failed to render curves: %v", err)
	}
	parts := []string{
		renderSummaryCards(report.Sessions, width),
		strings.TrimRight(curves.String(), "\n"),
	}
	if racers := renderTopRacers(report.TopRacers); racers != "" {
		parts = append(parts, racers)
	}
	return strings.Join(parts, "\n\n")
}

func renderSummaryCards(sessions []model.SessionSummary, width int) string {
	sum := stats.Summarize(sessions)
	typed := time.Duration(sum.TotalSeconds * float64(time.Second)).Round(time.Second)
	cards := []string{
		metricCard("Races", fmt.Sprintf("%d", sum.Sessions)),
		metricCard("Avg WPM", fmt.Sprintf("%.1f", sum.AvgWPM)),
		metricCard("Best WPM", fmt.Sprintf("%.1f", sum.BestWPM)),
		metricCard("Avg Acc", fmt.Sprintf("%.1f%%", sum.AvgAccuracy)),
		metricCard("Time Typed", typed.String()),
	}
	if width < 80 {
		return strings.Join(cards, "\n")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, cards[:3]...),
		lipgloss.JoinHorizontal(lipgloss.Top, cards[3:]...),
	)
}

func metricCard(label, value string) string {
	return cardStyle.Render(labelStyle.Render(label) + "\n" + valueStyle.Render(value))
}

func renderTopRacers(racers []stats.PlayerBest) string {
	if len(racers) == 0 {
		return ""
	}
	lines := []string{valueStyle.Render("Top Racers")}
	for i, r := range racers {
		lines = append(lines, fmt.Sprintf("%d. %-16s %6.1f WPM  %5.1f%%  (%d races)",
			i+1, truncateLine(r.Player, 16), r.BestWPM, r.Accuracy, r.Sessions))
	}
	return strings.Join(lines, "\n")
}

func renderLastRace(report stats.Report, width int) string {
	if report.Latest == nil {
		return "No sessions found."
	}
	var buf bytes.Buffer
	if err := stats.RenderResult(&buf, *report.Latest, width, plotHeight, true); err != nil {
		return fmt.Sprintf("Failed to render race: %v", err)
	}
	header := hintStyle.Render("Session " + report.LatestID)
	return strings.TrimRight(header+"\n"+buf.String(), "\n")
}
