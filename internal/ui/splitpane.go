package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vidyasagar/tpane/internal/theme"
)

// SplitDirection defines how two tab groups share the screen.
type SplitDirection int

const (
	SplitVertical   SplitDirection = iota // side by side
	SplitHorizontal                       // top and bottom
)

// SplitPane lays out one or two panes.
type SplitPane struct {
	Direction SplitDirection
	Ratio     float64 // proportion of the first pane
	width     int
	height    int
}

// NewSplitPane creates a vertical half/half split.
func NewSplitPane() SplitPane {
	return SplitPane{Direction: SplitVertical, Ratio: 0.5}
}

// SetSize updates the area the panes share.
func (sp *SplitPane) SetSize(w, h int) {
	sp.width = w
	sp.height = h
}

// Toggle flips between vertical and horizontal.
func (sp *SplitPane) Toggle() {
	if sp.Direction == SplitVertical {
		sp.Direction = SplitHorizontal
	} else {
		sp.Direction = SplitVertical
	}
}

// PaneSizes returns the size of each of n panes (1 or 2), one cell of the
// second pane going to the divider.
func (sp *SplitPane) PaneSizes(n int) [][2]int {
	if n < 2 {
		return [][2]int{{sp.width, sp.height}}
	}
	if sp.Direction == SplitVertical {
		w1 := int(float64(sp.width) * sp.Ratio)
		return [][2]int{{w1, sp.height}, {sp.width - w1 - 1, sp.height}}
	}
	h1 := int(float64(sp.height) * sp.Ratio)
	return [][2]int{{sp.width, h1}, {sp.width, sp.height - h1 - 1}}
}

// Render joins rendered panes with a divider.
func (sp *SplitPane) Render(panes ...string) string {
	if len(panes) < 2 {
		if len(panes) == 0 {
			return ""
		}
		return panes[0]
	}
	sizes := sp.PaneSizes(2)
	border := lipgloss.NewStyle().Foreground(theme.Current.Border)
	first := lipgloss.NewStyle().Width(sizes[0][0]).Height(sizes[0][1]).Render(panes[0])
	second := lipgloss.NewStyle().Width(sizes[1][0]).Height(sizes[1][1]).Render(panes[1])

	if sp.Direction == SplitVertical {
		divider := border.Render(strings.TrimSuffix(strings.Repeat("│\n", sp.height), "\n"))
		return lipgloss.JoinHorizontal(lipgloss.Top, first, divider, second)
	}
	divider := border.Render(strings.Repeat("─", sp.width))
	return lipgloss.JoinVertical(lipgloss.Left, first, divider, second)
}
