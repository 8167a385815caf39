package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func previewFixture() previewModel {
	var lines []string
	for i := 0; i < 50; i++ {
		lines = append(lines, "line")
	}
	return newPreviewModel(strings.Join(lines, "\n")+"\n", "##\n..\n")
}

func TestPreviewScroll(t *testing.T) {
	m := previewFixture()

	next, _ := m.Update(keyMsg("down"))
	m = next.(previewModel)
	if m.offset != 1 {
		t.Errorf("offset = %d after down, want 1", m.offset)
	}

	next, _ = m.Update(keyMsg("up"))
	m = next.(previewModel)
	if m.offset != 0 {
		t.Errorf("offset = %d after up, want 0", m.offset)
	}

	// Scrolling above the top clamps
	next, _ = m.Update(keyMsg("up"))
	m = next.(previewModel)
	if m.offset != 0 {
		t.Errorf("offset = %d, should clamp at 0", m.offset)
	}
}

func TestPreviewEnd(t *testing.T) {
	m := previewFixture()

	next, _ := m.Update(keyMsg("G"))
	m = next.(previewModel)
	if m.offset != m.maxOffset() {
		t.Errorf("offset = %d after G, want %d", m.offset, m.maxOffset())
	}

	next, _ = m.Update(keyMsg("g"))
	m = next.(previewModel)
	if m.offset != 0 {
		t.Errorf("offset = %d after g, want 0", m.offset)
	}
}

func TestPreviewPaneSwitch(t *testing.T) {
	m := previewFixture()

	next, _ := m.Update(keyMsg("G"))
	m = next.(previewModel)

	// Switching to the short art pane clamps the offset
	next, _ = m.Update(keyMsg("tab"))
	m = next.(previewModel)
	if m.pane != paneArt {
		t.Errorf("pane = %d after tab, want paneArt", m.pane)
	}
	if m.offset > m.maxOffset() {
		t.Errorf("offset = %d exceeds max %d after pane switch", m.offset, m.maxOffset())
	}

	view := m.View()
	if !strings.Contains(view, "Art Target") {
		t.Error("art pane view should carry the Art Target title")
	}
}

func TestPreviewQuit(t *testing.T) {
	m := previewFixture()
	for _, key := range []string{"q", "esc"} {
		_, cmd := m.Update(keyMsg(key))
		if cmd == nil {
			t.Errorf("key %q should quit", key)
		}
	}
}

func TestPreviewResize(t *testing.T) {
	m := previewFixture()

	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 12})
	m = next.(previewModel)
	if m.height != 7 {
		t.Errorf("height = %d after resize, want 7", m.height)
	}

	// Tiny windows keep a minimum body height
	next, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 3})
	m = next.(previewModel)
	if m.height != 5 {
		t.Errorf("height = %d, want floor of 5", m.height)
	}
}

func TestPreviewViewRange(t *testing.T) {
	m := previewFixture()
	view := m.View()
	if !strings.Contains(view, "[1-") {
		t.Error("view should show the visible line range")
	}
}

func TestSplitPreviewLines(t *testing.T) {
	if got := splitPreviewLines(""); got != nil {
		t.Errorf("empty input should yield nil, got %v", got)
	}
	if got := splitPreviewLines("a\nb\n"); len(got) != 2 {
		t.Errorf("got %d lines, want 2", len(got))
	}
}
