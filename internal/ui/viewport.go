package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tpane/internal/theme"
)

// PageViewport wraps bubbles/viewport for one view.
type PageViewport struct {
	viewport   viewport.Model
	ready      bool
	totalLines int
	start      bool
}

// NewPageViewport creates a new viewport (dimensions set on first WindowSizeMsg).
func NewPageViewport() PageViewport {
	return PageViewport{}
}

// SetSize updates the viewport dimensions.
func (pv *PageViewport) SetSize(width, height int) {
	if !pv.ready {
		pv.viewport = viewport.New(width, height)
		pv.viewport.MouseWheelEnabled = true
		pv.viewport.MouseWheelDelta = 3
		pv.ready = true
		return
	}
	pv.viewport.Width = width
	pv.viewport.Height = height
}

// SetLines replaces the content, keeping the scroll offset where possible.
// With gutter set, lines are numbered.
func (pv *PageViewport) SetLines(lines []string, gutter bool) {
	if !pv.ready {
		return
	}
	pv.start = false
	content := strings.Join(lines, "\n")
	if gutter {
		numStyle := lipgloss.NewStyle().Foreground(theme.Current.TextDim)
		width := len(fmt.Sprint(len(lines)))
		var sb strings.Builder
		for i, l := range lines {
			if i > 0 {
				sb.WriteByte('\n')
			}
			sb.WriteString(numStyle.Render(fmt.Sprintf("%*d ", width, i+1)))
			sb.WriteString(l)
		}
		content = sb.String()
	}
	pv.viewport.SetContent(content)
	pv.totalLines = len(lines)
}

// ShowStartPage renders the start page instead of content.
func (pv *PageViewport) ShowStartPage() {
	pv.start = true
	pv.totalLines = 0
}

// Update forwards messages to the viewport.
func (pv *PageViewport) Update(msg tea.Msg) (*PageViewport, tea.Cmd) {
	if !pv.ready || pv.start {
		return pv, nil
	}
	var cmd tea.Cmd
	pv.viewport, cmd = pv.viewport.Update(msg)
	return pv, cmd
}

// View renders the viewport.
func (pv *PageViewport) View() string {
	if !pv.ready {
		return "\n  Initializing..."
	}
	if pv.start {
		return lipgloss.NewStyle().
			Width(pv.viewport.Width).
			Height(pv.viewport.Height).
			Render(renderStartPage())
	}
	return pv.viewport.View()
}

// GotoLine scrolls so line is the top visible line.
func (pv *PageViewport) GotoLine(line int) {
	if pv.ready {
		pv.viewport.SetYOffset(line)
	}
}

// TopLine returns the first visible line.
func (pv *PageViewport) TopLine() int {
	if !pv.ready {
		return 0
	}
	return pv.viewport.YOffset
}

// ScrollInfo returns "TOP", "BOT" or a percentage.
func (pv *PageViewport) ScrollInfo() string {
	if !pv.ready || pv.start {
		return "TOP"
	}
	pct := pv.viewport.ScrollPercent()
	switch {
	case pct <= 0:
		return "TOP"
	case pct >= 1:
		return "BOT"
	default:
		return fmt.Sprintf("%d%%", int(pct*100))
	}
}

// HalfPageDown scrolls down half a page.
func (pv *PageViewport) HalfPageDown() {
	if pv.ready {
		pv.viewport.HalfViewDown()
	}
}

// HalfPageUp scrolls up half a page.
func (pv *PageViewport) HalfPageUp() {
	if pv.ready {
		pv.viewport.HalfViewUp()
	}
}

// LineDown scrolls down n lines.
func (pv *PageViewport) LineDown(n int) {
	if pv.ready {
		pv.viewport.LineDown(n)
	}
}

// LineUp scrolls up n lines.
func (pv *PageViewport) LineUp(n int) {
	if pv.ready {
		pv.viewport.LineUp(n)
	}
}

// GotoTop scrolls to the top.
func (pv *PageViewport) GotoTop() {
	if pv.ready {
		pv.viewport.GotoTop()
	}
}

// GotoBottom scrolls to the bottom.
func (pv *PageViewport) GotoBottom() {
	if pv.ready {
		pv.viewport.GotoBottom()
	}
}

func renderStartPage() string {
	t := theme.Current

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Secondary)
	descStyle := lipgloss.NewStyle().Foreground(t.Text)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("\n  tpane"))
	sb.WriteString("\n")
	sb.WriteString(subtitleStyle.Render("  files, pages and scratch buffers in tabs"))
	sb.WriteString("\n\n")
	sb.WriteString(sectionStyle.Render("  Quick Start"))
	sb.WriteString("\n\n")

	for _, s := range []struct{ key, desc string }{
		{":open <path|url>", "Open a file or page in a new tab"},
		{":scratch", "Start a scratch buffer"},
		{"H / L", "Back / forward through locations"},
		{"Ctrl+h", "Recent locations"},
		{"u / U", "Reopen last closed tab / closed tabs"},
		{"Ctrl+w", "Close tab"},
		{"?", "All keybindings"},
		{"q", "Quit"},
	} {
		sb.WriteString(keyStyle.Render(fmt.Sprintf("    %-18s", s.key)))
		sb.WriteString(descStyle.Render(s.desc))
		sb.WriteString("\n")
	}
	return sb.String()
}
