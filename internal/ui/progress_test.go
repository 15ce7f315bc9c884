package ui

import (
	"strings"
	"testing"

	"rlint/internal/driver"
)

func TestApplyEventUpdatesStatus(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("linting", []string{"a.R", "b.R"}, events).(*progressModel)

	m.applyEvent(driver.Event{Path: "a.R", Working: true})
	if m.items[0].status != "linting" {
		t.Fatalf("expected linting status, got %q", m.items[0].status)
	}

	m.applyEvent(driver.Event{Path: "a.R", Findings: 3})
	if m.items[0].status != "3 findings" || !m.items[0].finished {
		t.Fatalf("unexpected item state %+v", m.items[0])
	}

	m.applyEvent(driver.Event{Path: "b.R"})
	if m.items[1].status != "clean" {
		t.Fatalf("expected clean status, got %q", m.items[1].status)
	}

	if m.applyEvent(driver.Event{Path: "unknown.R"}) != nil {
		t.Fatalf("unknown paths must be ignored")
	}
}

func TestViewListsFiles(t *testing.T) {
	events := make(chan driver.Event)
	m := NewProgressModel("linting", []string{"scripts/a.R"}, events).(*progressModel)
	view := m.View()
	if !strings.Contains(view, "scripts/a.R") || !strings.Contains(view, "queued") {
		t.Fatalf("view missing file row:\n%s", view)
	}
}

func TestTruncateKeepsShortPaths(t *testing.T) {
	if got := truncate("a.R", 20); got != "a.R" {
		t.Fatalf("unexpected truncation %q", got)
	}
	if got := truncate("a/very/long/path/to/script.R", 12); len(got) > 12 {
		t.Fatalf("truncate exceeded width: %q", got)
	}
}
