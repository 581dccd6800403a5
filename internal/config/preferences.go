package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Rorical/iconx/internal/export"
	"github.com/Rorical/iconx/internal/render"
)

// Preferences are the persisted export defaults.
type Preferences struct {
	DefaultFormat string   `json:"default_format"`
	Size          float64  `json:"size"`
	StrokeWidth   float64  `json:"stroke_width"`
	Color         string   `json:"color,omitempty"`
	FillColor     string   `json:"fill_color,omitempty"`
	ClassNames    []string `json:"class_names,omitempty"`
	StripIDs      bool     `json:"strip_ids"`
	Library       string   `json:"library"`
	DownloadDir   string   `json:"download_dir,omitempty"`
	CopyResetMS   int      `json:"copy_reset_ms"`
	ErrorResetMS  int      `json:"error_reset_ms"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		DefaultFormat: export.SVGMarkup.String(),
		Size:          24,
		StrokeWidth:   2,
		Library:       export.DefaultLibrary,
		CopyResetMS:   2000,
		ErrorResetMS:  3000,
	}
}

func (p *Preferences) fillDefaults() {
	d := DefaultPreferences()
	if p.DefaultFormat == "" {
		p.DefaultFormat = d.DefaultFormat
	}
	if p.Size <= 0 {
		p.Size = d.Size
	}
	if p.StrokeWidth <= 0 {
		p.StrokeWidth = d.StrokeWidth
	}
	if p.Library == "" {
		p.Library = d.Library
	}
	if p.CopyResetMS <= 0 {
		p.CopyResetMS = d.CopyResetMS
	}
	if p.ErrorResetMS <= 0 {
		p.ErrorResetMS = d.ErrorResetMS
	}
}

// Params builds customization parameters from the stored defaults.
func (p Preferences) Params() (render.Params, error) {
	params := render.Params{
		Size:        p.Size,
		StrokeWidth: p.StrokeWidth,
		Color:       p.Color,
		FillColor:   p.FillColor,
		ClassNames:  append([]string(nil), p.ClassNames...),
		StripIDs:    p.StripIDs,
	}
	if err := params.Validate(); err != nil {
		return render.Params{}, err
	}
	return params, nil
}

func (p Preferences) Format() export.Format {
	f, err := export.ParseFormat(p.DefaultFormat)
	if err != nil {
		return export.SVGMarkup
	}
	return f
}

func (p Preferences) CopyReset() time.Duration {
	return time.Duration(p.CopyResetMS) * time.Millisecond
}

func (p Preferences) ErrorReset() time.Duration {
	return time.Duration(p.ErrorResetMS) * time.Millisecond
}

type prefField struct {
	get func(p *Preferences) string
	set func(p *Preferences, v string) error
}

var prefFields = map[string]prefField{
	"default_format": {
		get: func(p *Preferences) string { return p.DefaultFormat },
		set: func(p *Preferences, v string) error {
			f, err := export.ParseFormat(v)
			if err != nil {
				return err
			}
			p.DefaultFormat = f.String()
			return nil
		},
	},
	"size": {
		get: func(p *Preferences) string { return formatFloat(p.Size) },
		set: func(p *Preferences, v string) error { return setPositive(&p.Size, v) },
	},
	"stroke_width": {
		get: func(p *Preferences) string { return formatFloat(p.StrokeWidth) },
		set: func(p *Preferences, v string) error { return setPositive(&p.StrokeWidth, v) },
	},
	"color": {
		get: func(p *Preferences) string { return p.Color },
		set: func(p *Preferences, v string) error { p.Color = strings.TrimSpace(v); return nil },
	},
	"fill_color": {
		get: func(p *Preferences) string { return p.FillColor },
		set: func(p *Preferences, v string) error { p.FillColor = strings.TrimSpace(v); return nil },
	},
	"class_names": {
		get: func(p *Preferences) string { return strings.Join(p.ClassNames, " ") },
		set: func(p *Preferences, v string) error { p.ClassNames = strings.Fields(v); return nil },
	},
	"strip_ids": {
		get: func(p *Preferences) string { return strconv.FormatBool(p.StripIDs) },
		set: func(p *Preferences, v string) error {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("strip_ids: %w", err)
			}
			p.StripIDs = b
			return nil
		},
	},
	"library": {
		get: func(p *Preferences) string { return p.Library },
		set: func(p *Preferences, v string) error {
			if strings.TrimSpace(v) == "" {
				return fmt.Errorf("library must not be empty")
			}
			p.Library = strings.TrimSpace(v)
			return nil
		},
	},
	"download_dir": {
		get: func(p *Preferences) string { return p.DownloadDir },
		set: func(p *Preferences, v string) error { p.DownloadDir = strings.TrimSpace(v); return nil },
	},
	"copy_reset_ms": {
		get: func(p *Preferences) string { return strconv.Itoa(p.CopyResetMS) },
		set: func(p *Preferences, v string) error { return setPositiveInt(&p.CopyResetMS, v) },
	},
	"error_reset_ms": {
		get: func(p *Preferences) string { return strconv.Itoa(p.ErrorResetMS) },
		set: func(p *Preferences, v string) error { return setPositiveInt(&p.ErrorResetMS, v) },
	},
}

// PreferenceKeys lists the settable keys, sorted.
func PreferenceKeys() []string {
	keys := make([]string, 0, len(prefFields))
	for k := range prefFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the string form of a preference.
func (p *Preferences) Get(key string) (string, error) {
	field, ok := prefFields[key]
	if !ok {
		return "", fmt.Errorf("unknown preference %q", key)
	}
	return field.get(p), nil
}

// Set parses and stores a preference value.
func (p *Preferences) Set(key, value string) error {
	field, ok := prefFields[key]
	if !ok {
		return fmt.Errorf("unknown preference %q", key)
	}
	if err := field.set(p, value); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func setPositive(dst *float64, v string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return err
	}
	if !render.Positive(f) {
		return fmt.Errorf("must be a finite number greater than zero")
	}
	*dst = f
	return nil
}

func setPositiveInt(dst *int, v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return err
	}
	if n <= 0 {
		return fmt.Errorf("must be greater than zero")
	}
	*dst = n
	return nil
}
