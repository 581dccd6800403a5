package components

import (
	"fmt"
	"strings"

	"github.com/Rorical/iconx/internal/export"
	"github.com/Rorical/iconx/internal/models"
	"github.com/Rorical/iconx/ui/styles"
)

// Placeholder stands in for icons the renderer cannot draw.
const Placeholder = "⌧"

// Preview is everything the side panel shows for the selection.
type Preview struct {
	Name     string
	Category string
	Markup   string // normalized SVG, "" when unavailable
	Missing  bool   // renderer has no artwork for Name
	Size     float64
	Stroke   float64
	Default  export.Format
	States   map[export.Format]models.CopyState
	Related  []string
	Spinner  string
}

var buttonKeys = map[export.Format]string{
	export.SVGMarkup:        "c",
	export.ComponentSnippet: "x",
	export.ImportStatement:  "i",
	export.DownloadFile:     "d",
}

func RenderPreview(p Preview, width, markupLines int) string {
	if p.Name == "" {
		return styles.PanelStyle(width).Render(styles.MutedStyle().Render("Nothing selected"))
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle().Render(p.Name))
	if p.Category != "" {
		b.WriteString(styles.MutedStyle().Render(" in " + p.Category))
	}
	b.WriteString("\n")
	b.WriteString(styles.MutedStyle().Render(fmt.Sprintf("size %gpx  stroke %g", p.Size, p.Stroke)))
	b.WriteString("\n\n")

	for _, f := range export.Formats() {
		b.WriteString(renderButton(f, p.States[f], f == p.Default, p.Spinner))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if p.Missing {
		b.WriteString(styles.ErrorStyle().Render(Placeholder + " not available in the icon library"))
	} else {
		b.WriteString(styles.CodeStyle().Render(clip(p.Markup, width-4, markupLines)))
	}

	if len(p.Related) > 0 {
		b.WriteString("\n\n")
		b.WriteString(styles.MutedStyle().Render("Related: " + strings.Join(p.Related, ", ")))
	}
	return styles.PanelStyle(width).Render(b.String())
}

func renderButton(f export.Format, s models.CopyState, isDefault bool, spinner string) string {
	label := fmt.Sprintf("[%s] %s", buttonKeys[f], f.Label())
	if isDefault {
		label += " *"
	}
	line := styles.ButtonStyle().Render(label)
	switch s.Phase {
	case models.InFlight:
		return line + styles.BusyStyle().Render(spinner)
	case models.Succeeded:
		return line + styles.SuccessStyle().Render("✓")
	case models.Failed:
		return line + styles.ErrorStyle().Render("✗ "+s.LastError)
	}
	return line
}

// clip wraps markup at width and keeps at most lines rows.
func clip(s string, width, lines int) string {
	if width < 8 {
		width = 8
	}
	var rows []string
	for len(s) > 0 && len(rows) < lines {
		n := width
		if n > len(s) {
			n = len(s)
		}
		rows = append(rows, s[:n])
		s = s[n:]
	}
	if len(s) > 0 && len(rows) > 0 {
		rows[len(rows)-1] = strings.TrimRight(rows[len(rows)-1], " ") + "…"
	}
	return strings.Join(rows, "\n")
}
