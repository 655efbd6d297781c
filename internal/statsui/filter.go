package statsui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typeracer/internal/model"
)

const (
	fieldMode = iota
	fieldPlayer
	fieldSince
	fieldLast
	fieldWindow
)

const dateLayout = "2006-01-02"

// filterForm edits the history filters in place of the tab body.
type filterForm struct {
	active bool
	inputs []textinput.Model
	index  int
	err    string
}

func newFilterForm() filterForm {
	prompts := []string{"Mode: ", "Player: ", "Since (YYYY-MM-DD): ", "Last: ", "Curve window: "}
	inputs := make([]textinput.Model, len(prompts))
	for i, prompt := range prompts {
		input := textinput.New()
		input.Prompt = prompt
		input.CharLimit = 0
		input.Cursor.SetMode(cursor.CursorBlink)
		inputs[i] = input
	}
	inputs[fieldMode].Placeholder = "standard, short, hard"
	inputs[fieldPlayer].Placeholder = "any"
	return filterForm{inputs: inputs}
}

// open fills the inputs from cfg and focuses the first one.
func (f *filterForm) open(cfg model.StatsConfig) tea.Cmd {
	values := make([]string, len(f.inputs))
	if cfg.Mode != nil {
		values[fieldMode] = cfg.Mode.String()
	}
	values[fieldPlayer] = cfg.Player
	if cfg.Since != nil {
		values[fieldSince] = cfg.Since.Format(dateLayout)
	}
	if cfg.Last > 0 {
		values[fieldLast] = strconv.Itoa(cfg.Last)
	}
	values[fieldWindow] = strconv.Itoa(cfg.CurveWindow)
	for i, v := range values {
		f.inputs[i].SetValue(v)
	}
	f.active = true
	f.err = ""
	return f.focus(0)
}

func (f *filterForm) close() {
	f.active = false
	f.err = ""
}

func (f *filterForm) focus(idx int) tea.Cmd {
	count := len(f.inputs)
	f.index = (idx + count) % count
	var cmd tea.Cmd
	for i := range f.inputs {
		if i == f.index {
			cmd = f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
	return cmd
}

func (f *filterForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.index], cmd = f.inputs[f.index].Update(msg)
	return cmd
}

func (f *filterForm) resize(width int) {
	for i := range f.inputs {
		f.inputs[i].Width = max(10, width-lipgloss.Width(f.inputs[i].Prompt)-2)
	}
}

func (f *filterForm) value(field int) string {
	return strings.TrimSpace(f.inputs[field].Value())
}

// parse validates the inputs. An empty curve window keeps the current one.
func (f *filterForm) parse(current model.StatsConfig) (model.StatsConfig, error) {
	cfg := model.StatsConfig{
		Player:      f.value(fieldPlayer),
		CurveWindow: current.CurveWindow,
	}
	if v := f.value(fieldMode); v != "" {
		mode, err := model.ParseGameMode(v)
		if err != nil {
			return current, err
		}
		cfg.Mode = &mode
	}
	if v := f.value(fieldSince); v != "" {
		since, err := time.ParseInLocation(dateLayout, v, time.Local)
		if err != nil {
			return current, fmt.Errorf("invalid since date (expected YYYY-MM-DD)")
		}
		cfg.Since = &since
	}
	if v := f.value(fieldLast); v != "" {
		last, err := strconv.Atoi(v)
		if err != nil || last < 0 {
			return current, fmt.Errorf("invalid last value (use 0 or positive integer)")
		}
		cfg.Last = last
	}
	if v := f.value(fieldWindow); v != "" {
		window, err := strconv.Atoi(v)
		if err != nil || window < 1 {
			return current, fmt.Errorf("invalid curve window (use integer >= 1)")
		}
		cfg.CurveWindow = window
	}
	return cfg, nil
}

func (f *filterForm) view() string {
	lines := []string{"Settings (enter to apply, esc to cancel)"}
	for _, input := range f.inputs {
		lines = append(lines, input.View())
	}
	if f.err != "" {
		lines = append(lines, errorStyle.Render(f.err))
	}
	return strings.Join(lines, "\n")
}
