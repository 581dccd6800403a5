package sink

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestClipboardWritesOSC52(t *testing.T) {
	var buf bytes.Buffer
	c := NewClipboard(&buf)
	c.env = func(string) string { return "" }

	if err := c.Write(context.Background(), "<svg/>"); err != nil {
		t.Fatalf("write: %v", err)
	}
	encoded := base64.StdEncoding.EncodeToString([]byte("<svg/>"))
	if !strings.Contains(buf.String(), "\x1b]52;") || !strings.Contains(buf.String(), encoded) {
		t.Fatalf("unexpected sequence %q", buf.String())
	}
}

func TestClipboardWrapsForTmux(t *testing.T) {
	var buf bytes.Buffer
	c := NewClipboard(&buf)
	c.env = func(key string) string {
		if key == "TMUX" {
			return "/tmp/tmux-1000/default,1,0"
		}
		return ""
	}
	if err := c.Write(context.Background(), "x"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "\x1bPtmux;") {
		t.Fatalf("expected tmux passthrough, got %q", buf.String())
	}
}

func TestClipboardRejectsOversizedPayload(t *testing.T) {
	c := NewClipboard(&bytes.Buffer{})
	err := c.Write(context.Background(), strings.Repeat("a", maxClipboardBytes+1))
	if !errors.Is(err, ErrClipboardTooLarge) {
		t.Fatalf("expected ErrClipboardTooLarge, got %v", err)
	}
}

func TestClipboardHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewClipboard(&bytes.Buffer{}).Write(ctx, "x"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDirSaverNeverOverwrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "downloads")
	s := NewDirSaver(dir)

	first, err := s.Save(context.Background(), "heart.svg", "image/svg+xml", []byte("one"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	second, err := s.Save(context.Background(), "heart.svg", "image/svg+xml", []byte("two"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Base(first) != "heart.svg" || filepath.Base(second) != "heart-1.svg" {
		t.Fatalf("unexpected paths %s, %s", first, second)
	}
	data, _ := os.ReadFile(first)
	if string(data) != "one" {
		t.Fatalf("first file overwritten: %q", data)
	}
}

func TestDirSaverStripsDirectories(t *testing.T) {
	dir := t.TempDir()
	path, err := NewDirSaver(dir).Save(context.Background(), "../../escape.svg", "image/svg+xml", []byte("x"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Dir(path) != dir {
		t.Fatalf("expected file inside %s, got %s", dir, path)
	}
}

func TestDirSaverAddsExtensionFromMimeType(t *testing.T) {
	dir := t.TempDir()
	s := NewDirSaver(dir)

	path, err := s.Save(context.Background(), "heart", "image/svg+xml", []byte("<svg/>"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Base(path) != "heart.svg" {
		t.Fatalf("path = %s", path)
	}

	kept, err := s.Save(context.Background(), "notes.txt", "image/svg+xml", []byte("x"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Base(kept) != "notes.txt" {
		t.Fatalf("explicit extension replaced: %s", kept)
	}

	bare, err := s.Save(context.Background(), "blob", "", []byte("x"))
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if filepath.Base(bare) != "blob" {
		t.Fatalf("path = %s", bare)
	}
}
