package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Rorical/iconx/ui/styles"
)

const minCellWidth = 18

// GridLayout is how many icon names fit per row and how wide each is.
func GridLayout(names []string, width int) (cols, cellWidth int) {
	cellWidth = minCellWidth
	for _, n := range names {
		if w := lipgloss.Width(n) + 2; w > cellWidth {
			cellWidth = w
		}
	}
	cols = width / cellWidth
	if cols < 1 {
		cols = 1
	}
	return cols, cellWidth
}

// RenderGrid lays names out in rows, scrolling so that selected stays in
// the visible rows.
func RenderGrid(names []string, selected, width, rows int) string {
	if len(names) == 0 {
		return styles.MutedStyle().Render("  no icons")
	}
	cols, cellWidth := GridLayout(names, width)
	if rows < 1 {
		rows = 1
	}

	selRow := selected / cols
	first := 0
	if selRow >= rows {
		first = selRow - rows + 1
	}

	var b strings.Builder
	for r := first; r < first+rows; r++ {
		start := r * cols
		if start >= len(names) {
			break
		}
		cells := make([]string, 0, cols)
		for i := start; i < start+cols && i < len(names); i++ {
			style := styles.CellStyle(cellWidth)
			if i == selected {
				style = styles.SelectedCellStyle(cellWidth)
			}
			cells = append(cells, style.Render(names[i]))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
		b.WriteString("\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}
