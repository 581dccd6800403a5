package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Rorical/iconx/internal/export"
)

func TestLoadConfigCreatesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("ICONX_HOME", home)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := filepath.Join(home, ".iconx", "config.json")
	if cfg.Path() != want {
		t.Fatalf("path = %s, want %s", cfg.Path(), want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected config file to be written: %v", err)
	}
	if cfg.Preferences.Size != 24 || cfg.Preferences.Format() != export.SVGMarkup {
		t.Fatalf("unexpected defaults %+v", cfg.Preferences)
	}
	if cfg.HasAIProfile() {
		t.Fatal("default profile has no api key")
	}
	if cfg.GetModel() != defaultModel {
		t.Fatalf("model = %s", cfg.GetModel())
	}
}

func TestPreferencesPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for k, v := range map[string]string{
		"size":           "32",
		"stroke_width":   "1.5",
		"default_format": "COMPONENT",
		"class_names":    "icon  shrink-0",
		"strip_ids":      "true",
		"copy_reset_ms":  "1500",
	} {
		if err := cfg.Preferences.Set(k, v); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}

	reloaded, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	p := reloaded.Preferences
	if p.Size != 32 || p.StrokeWidth != 1.5 || p.Format() != export.ComponentSnippet || !p.StripIDs {
		t.Fatalf("preferences not persisted: %+v", p)
	}
	if got, _ := p.Get("class_names"); got != "icon shrink-0" {
		t.Fatalf("class_names = %q", got)
	}
	if p.CopyReset() != 1500*time.Millisecond || p.ErrorReset() != 3*time.Second {
		t.Fatalf("unexpected reset durations %v %v", p.CopyReset(), p.ErrorReset())
	}

	params, err := p.Params()
	if err != nil {
		t.Fatalf("params: %v", err)
	}
	if params.Size != 32 || len(params.ClassNames) != 2 {
		t.Fatalf("unexpected params %+v", params)
	}
}

func TestPreferencesRejectInvalidValues(t *testing.T) {
	p := DefaultPreferences()
	cases := map[string]string{
		"size":           "0",
		"stroke_width":   "abc",
		"default_format": "png",
		"strip_ids":      "maybe",
		"library":        " ",
		"nope":           "1",
	}
	for k, v := range cases {
		if err := p.Set(k, v); err == nil {
			t.Errorf("expected error for %s=%q", k, v)
		}
	}
	for _, v := range []string{"NaN", "Inf", "+Inf", "-Inf"} {
		if err := p.Set("size", v); err == nil {
			t.Errorf("expected error for size=%q", v)
		}
		if err := p.Set("stroke_width", v); err == nil {
			t.Errorf("expected error for stroke_width=%q", v)
		}
	}
	if p.Size != 24 {
		t.Fatalf("invalid set must not change value, size=%v", p.Size)
	}
}

func TestMissingFieldsGetDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"profiles":{"work":{"api_key":"k","model":"m"}},"active_profile":"gone"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfigFrom(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ActiveProfile != "work" || !cfg.HasAIProfile() || cfg.GetModel() != "m" {
		t.Fatalf("expected fallback to work profile, got %s", cfg.ActiveProfile)
	}
	if cfg.Preferences.Library != export.DefaultLibrary || cfg.Preferences.ErrorResetMS != 3000 {
		t.Fatalf("expected defaults, got %+v", cfg.Preferences)
	}
}

func TestSwitchProfile(t *testing.T) {
	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.Profiles["alt"] = Profile{APIKey: "x", Model: "alt-model"}
	if err := cfg.SwitchProfile("alt"); err != nil {
		t.Fatalf("switch: %v", err)
	}
	if cfg.GetModel() != "alt-model" {
		t.Fatalf("model = %s", cfg.GetModel())
	}
	if err := cfg.SwitchProfile("missing"); err == nil {
		t.Fatal("expected error for missing profile")
	}
}

func TestAddAndDeleteProfile(t *testing.T) {
	cfg, err := LoadConfigFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := cfg.AddProfile("work", Profile{APIKey: "k", Model: "m"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := cfg.AddProfile("work", Profile{}); err == nil {
		t.Fatal("duplicate profile accepted")
	}
	if names := cfg.ProfileNames(); len(names) != 2 || names[0] != "default" || names[1] != "work" {
		t.Fatalf("names = %v", names)
	}

	if err := cfg.SwitchProfile("work"); err != nil {
		t.Fatalf("switch: %v", err)
	}
	if err := cfg.DeleteProfile("work"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if cfg.ActiveProfile != "default" || cfg.HasAIProfile() {
		t.Fatalf("active = %s", cfg.ActiveProfile)
	}

	if err := cfg.DeleteProfile("default"); err != nil {
		t.Fatalf("delete last: %v", err)
	}
	if cfg.ActiveProfile != "default" || len(cfg.Profiles) != 1 {
		t.Fatalf("expected recreated default, got %s %v", cfg.ActiveProfile, cfg.Profiles)
	}
	if err := cfg.DeleteProfile("missing"); err == nil {
		t.Fatal("expected error for missing profile")
	}
}
