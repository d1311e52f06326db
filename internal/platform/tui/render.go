package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hnjm/2DTileMapLevelEditor/internal/core"
)

type cellColors struct {
	fg, bg core.Color
}

// styleFor returns the lipgloss style for a cell color pair.
func styleFor(fg, bg core.Color) lipgloss.Style {
	style := lipgloss.NewStyle()
	if code, ok := fg.Code(); ok {
		style = style.Foreground(lipgloss.Color(strconv.Itoa(int(code))))
	}
	if code, ok := bg.Code(); ok {
		style = style.Background(lipgloss.Color(strconv.Itoa(int(code))))
	}
	return style
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	styles := make(map[cellColors]lipgloss.Style)

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same colors
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			colors := cellColors{cell.Fg, cell.Bg}

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if (cellColors{cell.Fg, cell.Bg}) != colors {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if colors == (cellColors{}) {
				sb.WriteString(run.String())
				continue
			}
			style, ok := styles[colors]
			if !ok {
				style = styleFor(colors.fg, colors.bg)
				styles[colors] = style
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
