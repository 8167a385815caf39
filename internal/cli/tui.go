package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Preview panes.
const (
	paneOutput = iota
	paneArt
)

// =============================================================================
// previewModel - Interactive result preview
// =============================================================================

// previewModel is the bubbletea model behind convert --preview. It shows the
// reshaped output and the art target as two switchable scrollable panes, so
// the silhouette can be compared against the target without leaving the
// terminal.
type previewModel struct {
	output []string // reshaped source, one entry per line
	art    []string // art target, one entry per line
	pane   int
	offset int
	height int
}

// newPreviewModel builds a preview over the rendered output and art text.
func newPreviewModel(output, artText string) previewModel {
	return previewModel{
		output: splitPreviewLines(output),
		art:    splitPreviewLines(artText),
		height: 20,
	}
}

func splitPreviewLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func (m previewModel) lines() []string {
	if m.pane == paneArt {
		return m.art
	}
	return m.output
}

func (m previewModel) maxOffset() int {
	max := len(m.lines()) - m.height
	if max < 0 {
		return 0
	}
	return max
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.offset > 0 {
				m.offset--
			}
		case "down", "j":
			if m.offset < m.maxOffset() {
				m.offset++
			}
		case "pgup":
			m.offset -= m.height
			if m.offset < 0 {
				m.offset = 0
			}
		case "pgdown":
			m.offset += m.height
			if m.offset > m.maxOffset() {
				m.offset = m.maxOffset()
			}
		case "g", "home":
			m.offset = 0
		case "G", "end":
			m.offset = m.maxOffset()
		case "tab":
			if m.pane == paneOutput {
				m.pane = paneArt
			} else {
				m.pane = paneOutput
			}
			if m.offset > m.maxOffset() {
				m.offset = m.maxOffset()
			}
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - 5
		if m.height < 5 {
			m.height = 5
		}
		if m.offset > m.maxOffset() {
			m.offset = m.maxOffset()
		}
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	title := "Output"
	if m.pane == paneArt {
		title = "Art Target"
	}
	b.WriteString(StyleTitle.Render("Preview: " + title))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ scroll  tab switch pane  q quit"))
	b.WriteString("\n\n")

	lines := m.lines()
	end := m.offset + m.height
	if end > len(lines) {
		end = len(lines)
	}

	bodyStyle := lipgloss.NewStyle().Foreground(colorWhite)
	if m.pane == paneArt {
		bodyStyle = lipgloss.NewStyle().Foreground(colorGray)
	}
	for i := m.offset; i < end; i++ {
		b.WriteString(bodyStyle.Render(lines[i]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("  [%d-%d/%d]", m.offset+1, end, len(lines))))

	return b.String()
}
