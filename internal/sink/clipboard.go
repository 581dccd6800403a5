// Package sink holds the side-effecting collaborators behind copy and
// download: the terminal clipboard and the download directory.
package sink

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"

	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// maxClipboardBytes bounds OSC 52 payloads; many terminals drop larger
// sequences silently.
const maxClipboardBytes = 100_000

var ErrClipboardTooLarge = errors.New("clipboard payload exceeds terminal limit")

// Clipboard writes text to the system clipboard through the OSC 52 escape
// sequence, which works over SSH and inside tmux/screen.
type Clipboard struct {
	mu  sync.Mutex
	out io.Writer
	env func(string) string
}

// NewClipboard writes escape sequences to out (normally os.Stderr, which
// shares the terminal with the TUI without racing its renderer).
func NewClipboard(out io.Writer) *Clipboard {
	return &Clipboard{out: out, env: os.Getenv}
}

func (c *Clipboard) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(text) > maxClipboardBytes {
		return ErrClipboardTooLarge
	}

	seq := osc52.New(text)
	switch {
	case c.env("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(c.env("TERM"), "screen"):
		seq = seq.Screen()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	_, err := seq.WriteTo(c.out)
	return err
}
