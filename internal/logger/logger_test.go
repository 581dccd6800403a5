package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestSetupWritesToFile(t *testing.T) {
	root := t.TempDir()
	cleanup, err := Setup(Config{Root: root, Debug: true})
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := IsReady(); err != nil {
		t.Fatalf("expected logger ready: %v", err)
	}

	L().Info().Str("icon", "Heart").Msg("copy.ok")
	path := Path()
	if err := cleanup(); err != nil {
		t.Fatalf("cleanup: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	for _, want := range []string{"logger.initialized", "copy.ok", `"icon":"Heart"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("log missing %s:\n%s", want, data)
		}
	}
	if IsReady() == nil {
		t.Fatal("expected logger to be reset after cleanup")
	}
}

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).Warn().Msg("shortcut.conflict")
	if !strings.Contains(buf.String(), `"level":"warn"`) {
		t.Fatalf("unexpected output %s", buf.String())
	}
}
