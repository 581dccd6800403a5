package styles

import "github.com/charmbracelet/lipgloss"

var (
	accent  = lipgloss.Color("62")
	muted   = lipgloss.Color("241")
	success = lipgloss.Color("42")
	danger  = lipgloss.Color("203")
	warn    = lipgloss.Color("214")
)

func InputStyle(width int) lipgloss.Style {
	w := width - 4
	if w < 10 {
		w = 10
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(0, 1).
		Width(w)
}

func StatusStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(muted).
		Background(lipgloss.Color("235")).
		Padding(0, 1).
		Width(width)
}

func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("141")).
		Bold(true).
		Padding(0, 1)
}

func MutedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(muted)
}

func CellStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1)
}

func SelectedCellStyle(width int) lipgloss.Style {
	return CellStyle(width).
		Foreground(lipgloss.Color("230")).
		Background(accent).
		Bold(true)
}

func PanelStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(muted).
		Padding(0, 1).
		Width(width)
}

func ButtonStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 1)
}

func SuccessStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(success).Bold(true)
}

func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(danger).Bold(true)
}

func BusyStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(warn)
}

func CodeStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")).
		Background(lipgloss.Color("236")).
		Padding(0, 1)
}

func HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent).
		Padding(1, 2)
}
