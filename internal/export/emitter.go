package export

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Rorical/iconx/internal/naming"
	"github.com/Rorical/iconx/internal/render"
)

const (
	// DefaultLibrary is the package named by import statements.
	DefaultLibrary = "lucide-react"
	SVGMimeType    = "image/svg+xml"
)

// FilePayload is a downloadable export.
type FilePayload struct {
	Filename string
	MimeType string
	Bytes    []byte
}

// Result carries exactly one of Text or File.
type Result struct {
	Format Format
	Text   string
	File   *FilePayload
}

// Emitter serializes normalized icons into export formats.
type Emitter struct {
	normalizer *render.Normalizer
	library    string
}

type Option func(*Emitter)

// WithLibrary sets the package used in import statements.
func WithLibrary(library string) Option {
	return func(e *Emitter) {
		if strings.TrimSpace(library) != "" {
			e.library = strings.TrimSpace(library)
		}
	}
}

func NewEmitter(normalizer *render.Normalizer, opts ...Option) *Emitter {
	e := &Emitter{normalizer: normalizer, library: DefaultLibrary}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Library returns the configured import source.
func (e *Emitter) Library() string {
	return e.library
}

// Emit produces name in format. Every format normalizes first, so a name
// the registry cannot draw fails with *IconNotFoundError for all of them.
func (e *Emitter) Emit(name string, format Format, params render.Params) (Result, error) {
	if _, ok := formatNames[format]; !ok {
		return Result{}, &UnsupportedFormatError{Format: format}
	}
	markup, err := e.normalizer.Normalize(name, params)
	if err != nil {
		return Result{}, err
	}

	switch format {
	case SVGMarkup:
		return Result{Format: format, Text: markup}, nil
	case ComponentSnippet:
		return Result{Format: format, Text: e.snippet(name, params)}, nil
	case ImportStatement:
		return Result{Format: format, Text: e.importLine(name)}, nil
	case DownloadFile:
		return Result{Format: format, File: &FilePayload{
			Filename: Filename(name),
			MimeType: SVGMimeType,
			Bytes:    []byte(markup),
		}}, nil
	}
	return Result{}, &UnsupportedFormatError{Format: format}
}

// ComponentName is the PascalCase component for an icon name.
func ComponentName(name string) string {
	return naming.PascalCase(name)
}

// Filename is the lower-kebab download name for an icon.
func Filename(name string) string {
	return naming.KebabCase(name) + ".svg"
}

// snippet renders JSX usage, omitting attributes that match the
// component's own defaults.
func (e *Emitter) snippet(name string, p render.Params) string {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(ComponentName(name))
	fmt.Fprintf(&b, " size={%s}", strconv.FormatFloat(p.Size, 'f', -1, 64))
	if p.StrokeWidth != render.DefaultParams().StrokeWidth {
		fmt.Fprintf(&b, " strokeWidth={%s}", strconv.FormatFloat(p.StrokeWidth, 'f', -1, 64))
	}
	if p.Color != "" {
		fmt.Fprintf(&b, " color=%s", strconv.Quote(p.Color))
	}
	if p.FillColor != "" {
		fmt.Fprintf(&b, " fill=%s", strconv.Quote(p.FillColor))
	}
	if classes := classList(p.ClassNames); classes != "" {
		fmt.Fprintf(&b, " className=%s", strconv.Quote(classes))
	}
	b.WriteString(" />")
	return b.String()
}

func (e *Emitter) importLine(name string) string {
	return fmt.Sprintf("import { %s } from %s;", ComponentName(name), strconv.Quote(e.library))
}

func classList(names []string) string {
	seen := make(map[string]struct{}, len(names))
	var out []string
	for _, n := range names {
		for _, field := range strings.Fields(n) {
			if _, dup := seen[field]; dup {
				continue
			}
			seen[field] = struct{}{}
			out = append(out, field)
		}
	}
	return strings.Join(out, " ")
}
