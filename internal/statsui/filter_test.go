package statsui

import (
	"testing"
	"time"

	"github.com/verte-zerg/typeracer/internal/model"
)

func TestFilterFormRoundTrip(t *testing.T) {
	mode := model.ModeShort
	since := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	cfg := model.StatsConfig{Mode: &mode, Player: "ana", Since: &since, Last: 15, CurveWindow: 4}

	f := newFilterForm()
	f.open(cfg)
	if !f.active || f.index != 0 {
		t.Fatalf("expected an active form focused on the first field")
	}
	got, err := f.parse(model.StatsConfig{CurveWindow: 9})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Mode == nil || *got.Mode != model.ModeShort || got.Player != "ana" || got.Last != 15 || got.CurveWindow != 4 {
		t.Fatalf("unexpected config: %+v", got)
	}
	if got.Since == nil || !got.Since.Equal(since) {
		t.Fatalf("unexpected since: %v", got.Since)
	}
}

func TestFilterFormEmptyFields(t *testing.T) {
	f := newFilterForm()
	f.open(model.StatsConfig{CurveWindow: 3})
	f.inputs[fieldWindow].SetValue("")
	got, err := f.parse(model.StatsConfig{CurveWindow: 3})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Mode != nil || got.Since != nil || got.Last != 0 || got.Player != "" {
		t.Fatalf("expected no filters, got %+v", got)
	}
	if got.CurveWindow != 3 {
		t.Fatalf("expected the current window to be kept, got %d", got.CurveWindow)
	}
}

func TestFilterFormRejectsBadDate(t *testing.T) {
	f := newFilterForm()
	f.open(model.StatsConfig{CurveWindow: 3})
	f.inputs[fieldSince].SetValue("06/01/2024")
	if _, err := f.parse(model.StatsConfig{}); err == nil {
		t.Fatalf("expected date error")
	}
	f.inputs[fieldSince].SetValue("")
	f.inputs[fieldLast].SetValue("-2")
	if _, err := f.parse(model.StatsConfig{}); err == nil {
		t.Fatalf("expected last error")
	}
}

func TestFilterFocusWraps(t *testing.T) {
	f := newFilterForm()
	f.focus(-1)
	if f.index != fieldWindow {
		t.Fatalf("expected last field, got %d", f.index)
	}
	f.focus(len(f.inputs))
	if f.index != fieldMode {
		t.Fatalf("expected first field, got %d", f.index)
	}
}
