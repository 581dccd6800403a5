package core

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/Rorical/iconx/internal/export"
	"github.com/Rorical/iconx/internal/models"
	"github.com/Rorical/iconx/internal/render"
)

const (
	DefaultSuccessReset = 2000 * time.Millisecond
	DefaultFailureReset = 3000 * time.Millisecond
)

// Emitter produces export payloads.
type Emitter interface {
	Emit(name string, format export.Format, params render.Params) (export.Result, error)
}

// ClipboardWriter puts text on the clipboard.
type ClipboardWriter interface {
	Write(ctx context.Context, text string) error
}

// FileSaver stores a download and returns where it landed.
type FileSaver interface {
	Save(ctx context.Context, filename, mimeType string, data []byte) (string, error)
}

// Coordinator runs copy and download operations for one consumer and
// tracks their feedback state. A new operation supersedes the previous
// one: its pending auto-revert is cancelled and a late result from the
// older operation is discarded.
type Coordinator struct {
	mu sync.Mutex

	id        string
	emitter   Emitter
	clipboard ClipboardWriter
	saver     FileSaver

	successReset time.Duration
	failureReset time.Duration
	notify       func(id string, s models.CopyState)
	log          *zerolog.Logger

	state models.CopyState
	seq   uint64
	timer *time.Timer
}

type CoordinatorOption func(*Coordinator)

// WithResetDelays overrides the auto-revert delays. Non-positive values
// keep the defaults.
func WithResetDelays(success, failure time.Duration) CoordinatorOption {
	return func(c *Coordinator) {
		if success > 0 {
			c.successReset = success
		}
		if failure > 0 {
			c.failureReset = failure
		}
	}
}

// WithNotify registers a callback invoked on every state change. It runs
// with the coordinator locked, so it must not block or call back into the
// coordinator.
func WithNotify(fn func(id string, s models.CopyState)) CoordinatorOption {
	return func(c *Coordinator) {
		c.notify = fn
	}
}

func WithLogger(l *zerolog.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		if l != nil {
			c.log = l
		}
	}
}

func NewCoordinator(id string, emitter Emitter, clipboard ClipboardWriter, saver FileSaver, opts ...CoordinatorOption) *Coordinator {
	nop := zerolog.Nop()
	c := &Coordinator{
		id:           id,
		emitter:      emitter,
		clipboard:    clipboard,
		saver:        saver,
		successReset: DefaultSuccessReset,
		failureReset: DefaultFailureReset,
		log:          &nop,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Coordinator) ID() string {
	return c.id
}

// State returns the current snapshot.
func (c *Coordinator) State() models.CopyState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// PerformCopy emits name in format and writes text payloads to the
// clipboard. A DownloadFile format is saved like PerformDownload. The
// returned error is this operation's outcome even if a newer operation
// has since replaced it in the state.
func (c *Coordinator) PerformCopy(ctx context.Context, name string, format export.Format, params render.Params) error {
	seq := c.begin(name, format)
	return c.runCopy(ctx, seq, name, format, params)
}

// PerformDownload emits name as a file and hands it to the file saver.
func (c *Coordinator) PerformDownload(ctx context.Context, name string, params render.Params) error {
	seq := c.begin(name, export.DownloadFile)
	return c.runDownload(ctx, seq, name, params)
}

// StartCopy enters InFlight before returning and finishes the copy in a
// goroutine, so operations started in sequence supersede each other in
// that order.
func (c *Coordinator) StartCopy(ctx context.Context, name string, format export.Format, params render.Params) {
	seq := c.begin(name, format)
	go func() { _ = c.runCopy(ctx, seq, name, format, params) }()
}

// StartDownload is the asynchronous form of PerformDownload.
func (c *Coordinator) StartDownload(ctx context.Context, name string, params render.Params) {
	seq := c.begin(name, export.DownloadFile)
	go func() { _ = c.runDownload(ctx, seq, name, params) }()
}

func (c *Coordinator) runCopy(ctx context.Context, seq uint64, name string, format export.Format, params render.Params) error {
	res, err := c.emitter.Emit(name, format, params)
	if err != nil {
		err = &OpError{Op: "copy", Kind: KindEmit, Icon: name, Err: err}
		c.finish(seq, "", err)
		return err
	}

	if res.File != nil {
		location, err := c.save(ctx, name, res.File)
		c.finish(seq, location, err)
		return err
	}

	if err := c.clipboard.Write(ctx, res.Text); err != nil {
		err = &OpError{Op: "copy", Kind: KindClipboardWrite, Icon: name, Err: err}
		c.finish(seq, "", err)
		return err
	}
	c.finish(seq, "", nil)
	return nil
}

func (c *Coordinator) runDownload(ctx context.Context, seq uint64, name string, params render.Params) error {
	res, err := c.emitter.Emit(name, export.DownloadFile, params)
	if err == nil && res.File == nil {
		err = &export.UnsupportedFormatError{Format: export.DownloadFile}
	}
	if err != nil {
		err = &OpError{Op: "download", Kind: KindEmit, Icon: name, Err: err}
		c.finish(seq, "", err)
		return err
	}

	location, err := c.save(ctx, name, res.File)
	c.finish(seq, location, err)
	return err
}

// Reset cancels any pending revert and returns to Idle immediately. An
// operation still in flight is abandoned; its result will be discarded.
func (c *Coordinator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopTimer()
	c.seq++
	c.setState(models.CopyState{Phase: models.Idle, Seq: c.seq})
}

func (c *Coordinator) save(ctx context.Context, name string, file *export.FilePayload) (string, error) {
	location, err := c.saver.Save(ctx, file.Filename, file.MimeType, file.Bytes)
	if err != nil {
		return "", &OpError{Op: "download", Kind: KindFileSave, Icon: name, Err: err}
	}
	return location, nil
}

func (c *Coordinator) begin(name string, format export.Format) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopTimer()
	c.seq++
	c.setState(models.CopyState{Phase: models.InFlight, IconName: name, Format: format, Seq: c.seq})
	c.log.Debug().Str("consumer", c.id).Str("icon", name).Str("format", format.String()).Uint64("seq", c.seq).Msg("copy.start")
	return c.seq
}

func (c *Coordinator) finish(seq uint64, location string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		c.log.Debug().Str("consumer", c.id).Uint64("seq", seq).Uint64("current", c.seq).Msg("copy.stale_result")
		return
	}

	next := c.state
	delay := c.successReset
	if err != nil {
		next.Phase = models.Failed
		next.LastError = Describe(err)
		delay = c.failureReset
		c.log.Warn().Str("consumer", c.id).Str("icon", next.IconName).Err(err).Msg("copy.failed")
	} else {
		next.Phase = models.Succeeded
		next.Location = location
		c.log.Info().Str("consumer", c.id).Str("icon", next.IconName).Str("format", next.Format.String()).Msg("copy.ok")
	}
	c.setState(next)

	c.timer = time.AfterFunc(delay, func() { c.revert(seq) })
}

func (c *Coordinator) revert(seq uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq || c.state.Phase == models.Idle {
		return
	}
	c.timer = nil
	c.setState(models.CopyState{Phase: models.Idle, Seq: seq})
}

func (c *Coordinator) stopTimer() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Coordinator) setState(s models.CopyState) {
	c.state = s
	if c.notify != nil {
		c.notify(c.id, s)
	}
}
