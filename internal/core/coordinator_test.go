package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Rorical/iconx/internal/export"
	"github.com/Rorical/iconx/internal/models"
	"github.com/Rorical/iconx/internal/render"
)

type fakeClipboard struct {
	mu     sync.Mutex
	writes []string
	err    error

	// gate, when set, blocks the first write until it is closed.
	gate    chan struct{}
	entered chan struct{}
	calls   int
}

func (f *fakeClipboard) Write(ctx context.Context, text string) error {
	f.mu.Lock()
	f.calls++
	first := f.calls == 1
	gate := f.gate
	f.mu.Unlock()

	if first && gate != nil {
		close(f.entered)
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.writes = append(f.writes, text)
	return nil
}

func (f *fakeClipboard) last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.writes) == 0 {
		return ""
	}
	return f.writes[len(f.writes)-1]
}

type fakeSaver struct {
	mu    sync.Mutex
	saved map[string][]byte
	err   error
}

func (f *fakeSaver) Save(ctx context.Context, filename, mimeType string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	if f.saved == nil {
		f.saved = make(map[string][]byte)
	}
	f.saved[filename] = data
	return "/downloads/" + filename, nil
}

type recorder struct {
	mu     sync.Mutex
	states []models.CopyState
}

func (r *recorder) notify(id string, s models.CopyState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *recorder) phases() []models.Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Phase, len(r.states))
	for i, s := range r.states {
		out[i] = s.Phase
	}
	return out
}

func testEmitter() *export.Emitter {
	reg := render.NewMapRegistry(map[string]string{
		"heart":      `<path d="M19 14c1.49-1.46 3-3.21 3-5.5"/>`,
		"arrow-up":   `<path d="m5 12 7-7 7 7"/><path d="M12 19V5"/>`,
		"building-2": `<path d="M6 22V4a2 2 0 0 1 2-2h8"/>`,
	})
	return export.NewEmitter(render.NewNormalizer(reg))
}

func newTestCoordinator(clip *fakeClipboard, saver *fakeSaver, opts ...CoordinatorOption) *Coordinator {
	if clip == nil {
		clip = &fakeClipboard{}
	}
	if saver == nil {
		saver = &fakeSaver{}
	}
	return NewCoordinator("grid", testEmitter(), clip, saver, opts...)
}

func waitForPhase(t *testing.T, c *Coordinator, want models.Phase) models.CopyState {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if s := c.State(); s.Phase == want {
			return s
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("state never reached %v, last %+v", want, c.State())
	return models.CopyState{}
}

func TestPerformCopySucceedsThenReverts(t *testing.T) {
	clip := &fakeClipboard{}
	c := newTestCoordinator(clip, nil, WithResetDelays(20*time.Millisecond, 40*time.Millisecond))

	if err := c.PerformCopy(context.Background(), "Heart", export.ImportStatement, render.DefaultParams()); err != nil {
		t.Fatalf("PerformCopy: %v", err)
	}

	s := c.State()
	if s.Phase != models.Succeeded || s.IconName != "Heart" || s.Format != export.ImportStatement {
		t.Fatalf("state = %+v", s)
	}
	if s.HasError() {
		t.Fatalf("succeeded state carries error %q", s.LastError)
	}
	if got, want := clip.last(), `import { Heart } from "lucide-react";`; got != want {
		t.Fatalf("clipboard = %q, want %q", got, want)
	}

	waitForPhase(t, c, models.Idle)
}

func TestPerformCopyUnknownIcon(t *testing.T) {
	clip := &fakeClipboard{}
	c := newTestCoordinator(clip, nil, WithResetDelays(time.Hour, time.Hour))

	err := c.PerformCopy(context.Background(), "Unicorn", export.SVGMarkup, render.DefaultParams())
	if !IsKind(err, KindEmit) {
		t.Fatalf("err = %v, want emit kind", err)
	}
	var nf *export.IconNotFoundError
	if !errors.As(err, &nf) || nf.Name != "Unicorn" {
		t.Fatalf("err = %v, want IconNotFoundError", err)
	}

	s := c.State()
	if s.Phase != models.Failed {
		t.Fatalf("phase = %v", s.Phase)
	}
	if want := "Unicorn is not available in the icon library"; s.LastError != want {
		t.Fatalf("LastError = %q, want %q", s.LastError, want)
	}
	if clip.last() != "" {
		t.Fatalf("clipboard written on failure")
	}
}

func TestPerformCopyClipboardFailure(t *testing.T) {
	clip := &fakeClipboard{err: errors.New("permission denied")}
	c := newTestCoordinator(clip, nil, WithResetDelays(time.Hour, 20*time.Millisecond))

	err := c.PerformCopy(context.Background(), "Heart", export.SVGMarkup, render.DefaultParams())
	if !IsKind(err, KindClipboardWrite) {
		t.Fatalf("err = %v", err)
	}
	s := c.State()
	if want := "Copy failed: permission denied"; s.Phase != models.Failed || s.LastError != want {
		t.Fatalf("state = %+v", s)
	}

	waitForPhase(t, c, models.Idle)
	if c.State().HasError() {
		t.Fatalf("idle state kept error")
	}
}

func TestPerformDownload(t *testing.T) {
	saver := &fakeSaver{}
	c := newTestCoordinator(nil, saver, WithResetDelays(time.Hour, time.Hour))

	if err := c.PerformDownload(context.Background(), "Building2", render.DefaultParams()); err != nil {
		t.Fatalf("PerformDownload: %v", err)
	}
	s := c.State()
	if s.Phase != models.Succeeded || s.Format != export.DownloadFile {
		t.Fatalf("state = %+v", s)
	}
	if s.Location != "/downloads/building-2.svg" {
		t.Fatalf("Location = %q", s.Location)
	}
	if len(saver.saved["building-2.svg"]) == 0 {
		t.Fatalf("nothing saved: %v", saver.saved)
	}
}

func TestPerformCopyWithDownloadFormatSaves(t *testing.T) {
	clip := &fakeClipboard{}
	saver := &fakeSaver{}
	c := newTestCoordinator(clip, saver, WithResetDelays(time.Hour, time.Hour))

	if err := c.PerformCopy(context.Background(), "Heart", export.DownloadFile, render.DefaultParams()); err != nil {
		t.Fatalf("PerformCopy: %v", err)
	}
	if _, ok := saver.saved["heart.svg"]; !ok {
		t.Fatalf("download format not saved: %v", saver.saved)
	}
	if clip.last() != "" {
		t.Fatalf("download format written to clipboard")
	}
}

func TestPerformDownloadSaveFailure(t *testing.T) {
	saver := &fakeSaver{err: errors.New("disk full")}
	c := newTestCoordinator(nil, saver, WithResetDelays(time.Hour, time.Hour))

	err := c.PerformDownload(context.Background(), "Heart", render.DefaultParams())
	if !IsKind(err, KindFileSave) {
		t.Fatalf("err = %v", err)
	}
	if want := "Download failed: disk full"; c.State().LastError != want {
		t.Fatalf("LastError = %q, want %q", c.State().LastError, want)
	}
}

func TestLatestOperationWins(t *testing.T) {
	clip := &fakeClipboard{gate: make(chan struct{}), entered: make(chan struct{})}
	c := newTestCoordinator(clip, nil, WithResetDelays(time.Hour, time.Hour))

	done := make(chan error, 1)
	go func() {
		done <- c.PerformCopy(context.Background(), "Heart", export.SVGMarkup, render.DefaultParams())
	}()
	<-clip.entered

	if err := c.PerformCopy(context.Background(), "ArrowUp", export.ComponentSnippet, render.DefaultParams()); err != nil {
		t.Fatalf("second copy: %v", err)
	}

	close(clip.gate)
	if err := <-done; err != nil {
		t.Fatalf("first copy: %v", err)
	}

	s := c.State()
	if s.IconName != "ArrowUp" || s.Format != export.ComponentSnippet || s.Phase != models.Succeeded {
		t.Fatalf("stale result overwrote state: %+v", s)
	}
}

func TestNewOperationCancelsPendingRevert(t *testing.T) {
	clip := &fakeClipboard{}
	c := newTestCoordinator(clip, nil, WithResetDelays(20*time.Millisecond, time.Hour))

	if err := c.PerformCopy(context.Background(), "Heart", export.SVGMarkup, render.DefaultParams()); err != nil {
		t.Fatalf("PerformCopy: %v", err)
	}
	_ = c.PerformCopy(context.Background(), "Missing", export.SVGMarkup, render.DefaultParams())

	time.Sleep(50 * time.Millisecond)
	if s := c.State(); s.Phase != models.Failed || s.IconName != "Missing" {
		t.Fatalf("earlier revert fired: %+v", s)
	}
}

func TestResetAbandonsInFlight(t *testing.T) {
	clip := &fakeClipboard{gate: make(chan struct{}), entered: make(chan struct{})}
	c := newTestCoordinator(clip, nil, WithResetDelays(time.Hour, time.Hour))

	done := make(chan error, 1)
	go func() {
		done <- c.PerformCopy(context.Background(), "Heart", export.SVGMarkup, render.DefaultParams())
	}()
	<-clip.entered

	c.Reset()
	if !c.State().IsIdle() {
		t.Fatalf("Reset did not return to idle")
	}
	close(clip.gate)
	<-done

	if s := c.State(); !s.IsIdle() {
		t.Fatalf("abandoned result landed: %+v", s)
	}
}

func TestResetCancelsRevertTimer(t *testing.T) {
	rec := &recorder{}
	c := newTestCoordinator(nil, nil, WithResetDelays(10*time.Millisecond, time.Hour), WithNotify(rec.notify))

	_ = c.PerformCopy(context.Background(), "Heart", export.SVGMarkup, render.DefaultParams())
	c.Reset()
	time.Sleep(30 * time.Millisecond)

	want := []models.Phase{models.InFlight, models.Succeeded, models.Idle}
	got := rec.phases()
	if len(got) != len(want) {
		t.Fatalf("phases = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("phases = %v, want %v", got, want)
		}
	}
}

func TestInFlightNeverCarriesError(t *testing.T) {
	rec := &recorder{}
	c := newTestCoordinator(&fakeClipboard{}, nil, WithResetDelays(time.Hour, time.Hour), WithNotify(rec.notify))

	_ = c.PerformCopy(context.Background(), "Missing", export.SVGMarkup, render.DefaultParams())
	_ = c.PerformCopy(context.Background(), "Heart", export.SVGMarkup, render.DefaultParams())

	rec.mu.Lock()
	defer rec.mu.Unlock()
	inFlight := 0
	for _, s := range rec.states {
		if s.Phase == models.InFlight {
			inFlight++
			if s.HasError() {
				t.Fatalf("in-flight state with error: %+v", s)
			}
		}
	}
	if inFlight != 2 {
		t.Fatalf("saw %d in-flight states, want 2", inFlight)
	}
}

func TestStartCopyOrdersBySubmission(t *testing.T) {
	clip := &fakeClipboard{gate: make(chan struct{}), entered: make(chan struct{})}
	c := newTestCoordinator(clip, nil, WithResetDelays(time.Hour, time.Hour))

	c.StartCopy(context.Background(), "Heart", export.SVGMarkup, render.DefaultParams())
	if !c.State().IsInFlight() {
		t.Fatalf("StartCopy returned before entering in-flight")
	}
	<-clip.entered
	c.StartCopy(context.Background(), "ArrowUp", export.ImportStatement, render.DefaultParams())

	s := waitForPhase(t, c, models.Succeeded)
	close(clip.gate)
	time.Sleep(10 * time.Millisecond)

	if s.IconName != "ArrowUp" || c.State().IconName != "ArrowUp" {
		t.Fatalf("state = %+v", c.State())
	}
}

func TestHubCoordinatorsAreIndependent(t *testing.T) {
	h := NewHub(testEmitter(), &fakeClipboard{}, &fakeSaver{}, WithResetDelays(time.Hour, time.Hour))

	grid := h.Get("grid")
	preview := h.Get("preview")
	if grid == preview {
		t.Fatalf("distinct ids share a coordinator")
	}
	if h.Get("grid") != grid {
		t.Fatalf("Get is not stable for the same id")
	}

	_ = grid.PerformCopy(context.Background(), "Missing", export.SVGMarkup, render.DefaultParams())
	if err := preview.PerformCopy(context.Background(), "Heart", export.SVGMarkup, render.DefaultParams()); err != nil {
		t.Fatalf("preview copy: %v", err)
	}

	if grid.State().Phase != models.Failed || preview.State().Phase != models.Succeeded {
		t.Fatalf("grid=%v preview=%v", grid.State().Phase, preview.State().Phase)
	}

	h.Release("grid")
	if !grid.State().IsIdle() {
		t.Fatalf("released coordinator not reset")
	}
	if h.Get("grid") == grid {
		t.Fatalf("released coordinator reused")
	}
	if preview.State().Phase != models.Succeeded {
		t.Fatalf("release touched another consumer")
	}

	h.ResetAll()
	if !preview.State().IsIdle() {
		t.Fatalf("ResetAll left preview at %v", preview.State().Phase)
	}
}
