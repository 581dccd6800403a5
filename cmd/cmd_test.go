package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSearchCommand(t *testing.T) {
	t.Setenv("ICONX_HOME", t.TempDir())
	out, err := run(t, "search", "heart", "--limit", "3")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 || lines[0] != "Heart" {
		t.Fatalf("output:\n%s", out)
	}
}

func TestCategoriesMarkdown(t *testing.T) {
	t.Setenv("ICONX_HOME", t.TempDir())
	out, err := run(t, "categories", "--markdown")
	if err != nil {
		t.Fatalf("categories: %v", err)
	}
	if !strings.HasPrefix(out, "# Icon Catalog") || !strings.Contains(out, "| Category |") {
		t.Fatalf("output:\n%s", out)
	}
}

func TestExportImportStatement(t *testing.T) {
	t.Setenv("ICONX_HOME", t.TempDir())
	out, err := run(t, "export", "heart-crack", "--format", "import")
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if strings.TrimSpace(out) != `import { HeartCrack } from "lucide-react";` {
		t.Fatalf("output = %q", out)
	}
}

func TestExportUnknownIconHints(t *testing.T) {
	t.Setenv("ICONX_HOME", t.TempDir())
	_, err := run(t, "export", "Hart", "--format", "svg")
	if err == nil || !strings.Contains(err.Error(), "did you mean") {
		t.Fatalf("err = %v", err)
	}
}

func TestDownloadCommand(t *testing.T) {
	t.Setenv("ICONX_HOME", t.TempDir())
	dir := t.TempDir()
	out, err := run(t, "download", "Heart", "--out", dir, "--size", "48")
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	path := filepath.Join(dir, "heart.svg")
	if !strings.Contains(out, "Saved to "+path) {
		t.Fatalf("output = %q", out)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Contains(data, []byte(`width="48"`)) {
		t.Fatalf("size not applied: %s", data)
	}
}

func TestPrefsSetAndShow(t *testing.T) {
	t.Setenv("ICONX_HOME", t.TempDir())
	if _, err := run(t, "prefs", "set", "default_format", "component"); err != nil {
		t.Fatalf("set: %v", err)
	}
	out, err := run(t, "prefs", "show")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if !strings.Contains(out, "default_format   component") {
		t.Fatalf("output:\n%s", out)
	}
	if _, err := run(t, "prefs", "set", "size", "0"); err == nil {
		t.Fatal("zero size accepted")
	}
}
