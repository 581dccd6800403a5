package update

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/iconx/internal/catalog"
	"github.com/Rorical/iconx/internal/eventbus"
	"github.com/Rorical/iconx/internal/export"
	"github.com/Rorical/iconx/internal/models"
	"github.com/Rorical/iconx/internal/search"
)

const (
	SearchDebounce = 120 * time.Millisecond
	ResultLimit    = 200

	MinSize    = 8.0
	MaxSize    = 256.0
	SizeStep   = 4.0
	MinStroke  = 0.25
	MaxStroke  = 4.0
	StrokeStep = 0.25
)

// CoreEventMsg wraps core events for Bubble Tea
type CoreEventMsg struct {
	Event eventbus.CoreEvent
}

// SearchMsg fires after the debounce; only the latest Seq runs.
type SearchMsg struct {
	Seq int
}

// PrefsSavedMsg reports a preference write.
type PrefsSavedMsg struct {
	Err error
}

// SuggestMsg carries AI suggestions for the current query.
type SuggestMsg struct {
	Query string
	Names []string
	Err   error
}

// HandleCoreEvent processes events from the core
func HandleCoreEvent(appModel *models.AppModel, coreEventMsg CoreEventMsg) tea.Cmd {
	switch event := coreEventMsg.Event.(type) {
	case eventbus.CopyStateEvent:
		appModel.SetCopyState(event.Consumer, event.State)
		if status := StatusFor(event.State); status != "" {
			appModel.Status = status
		}
	}
	return nil
}

// StatusFor is the status bar line for a copy state, "" for Idle.
func StatusFor(s models.CopyState) string {
	switch s.Phase {
	case models.InFlight:
		if s.Format == export.DownloadFile {
			return fmt.Sprintf("Saving %s", export.Filename(s.IconName))
		}
		return fmt.Sprintf("Copying %s as %s", s.IconName, s.Format.Label())
	case models.Succeeded:
		if s.Location != "" {
			return "Saved to " + s.Location
		}
		return fmt.Sprintf("Copied %s as %s", s.IconName, s.Format.Label())
	case models.Failed:
		return s.LastError
	}
	return ""
}

func HandleWindowSizeMsg(appModel *models.AppModel, sizeMsg tea.WindowSizeMsg) {
	appModel.Width = sizeMsg.Width
	appModel.Height = sizeMsg.Height
}

// DebounceSearch schedules a SearchMsg for seq.
func DebounceSearch(seq int) tea.Cmd {
	return tea.Tick(SearchDebounce, func(time.Time) tea.Msg {
		return SearchMsg{Seq: seq}
	})
}

// RunSearch refreshes Results from the query and category filter. Free
// text ranks shorter names first; browsing keeps catalog order.
func RunSearch(appModel *models.AppModel, ix *search.Index) {
	var names []string
	switch {
	case appModel.Category != "":
		names = ix.BrowseCategory(appModel.Category, appModel.Query, ResultLimit)
	case appModel.Query == "":
		names = ix.Browse("", ResultLimit)
	default:
		names = ix.Search(appModel.Query, ResultLimit)
	}
	appModel.SetResults(names)

	switch {
	case len(names) == 0 && appModel.Query != "":
		appModel.Status = fmt.Sprintf("No icons match %q", appModel.Query)
	case appModel.Category != "":
		appModel.Status = fmt.Sprintf("%d icons in %s", len(names), appModel.Category)
	default:
		appModel.Status = fmt.Sprintf("%d icons", len(names))
	}
}

// MoveSelection moves by delta, clamped to the result list.
func MoveSelection(appModel *models.AppModel, delta int) {
	if len(appModel.Results) == 0 {
		appModel.Selected = 0
		return
	}
	next := appModel.Selected + delta
	if next < 0 {
		next = 0
	}
	if next >= len(appModel.Results) {
		next = len(appModel.Results) - 1
	}
	appModel.Selected = next
}

// CycleCategory steps the category filter through "all" and each category.
func CycleCategory(appModel *models.AppModel, cat *catalog.Catalog, dir int) {
	cats := cat.Categories()
	ids := make([]string, 0, len(cats)+1)
	ids = append(ids, "")
	for _, c := range cats {
		ids = append(ids, c.ID)
	}
	pos := 0
	for i, id := range ids {
		if id == appModel.Category {
			pos = i
			break
		}
	}
	pos = (pos + dir + len(ids)) % len(ids)
	appModel.Category = ids[pos]
	appModel.Selected = 0
}

// AdjustSize changes the export size and reports whether it moved.
func AdjustSize(appModel *models.AppModel, delta float64) bool {
	next := clamp(appModel.Params.Size+delta, MinSize, MaxSize)
	if next == appModel.Params.Size {
		return false
	}
	appModel.Params.Size = next
	appModel.Status = fmt.Sprintf("Size %gpx", next)
	return true
}

// AdjustStroke changes the stroke width and reports whether it moved.
func AdjustStroke(appModel *models.AppModel, delta float64) bool {
	next := clamp(appModel.Params.StrokeWidth+delta, MinStroke, MaxStroke)
	next = math.Round(next/StrokeStep) * StrokeStep
	if next == appModel.Params.StrokeWidth {
		return false
	}
	appModel.Params.StrokeWidth = next
	appModel.Status = fmt.Sprintf("Stroke %g", next)
	return true
}

// CycleFormat changes the default copy format.
func CycleFormat(appModel *models.AppModel) {
	formats := export.Formats()
	for i, f := range formats {
		if f == appModel.Format {
			appModel.Format = formats[(i+1)%len(formats)]
			break
		}
	}
	appModel.Status = "Default format: " + appModel.Format.Label()
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
