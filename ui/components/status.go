package components

import (
	"github.com/Rorical/iconx/ui/styles"
)

// RenderStatus draws the bottom bar; spinner is shown while an export runs.
func RenderStatus(status string, busy bool, spinner string, width int) string {
	statusStyle := styles.StatusStyle(width)

	statusContent := status
	if busy {
		statusContent = spinner + " " + statusContent
	}

	return statusStyle.Render(statusContent)
}
