package export

import (
	"fmt"
	"strings"
)

// Format is one of the closed set of export targets.
type Format int

const (
	SVGMarkup Format = iota
	ComponentSnippet
	ImportStatement
	DownloadFile
)

var formatNames = map[Format]string{
	SVGMarkup:        "svg",
	ComponentSnippet: "component",
	ImportStatement:  "import",
	DownloadFile:     "download",
}

// Formats lists every format in declaration order.
func Formats() []Format {
	return []Format{SVGMarkup, ComponentSnippet, ImportStatement, DownloadFile}
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// Label is the human-facing name used in status messages.
func (f Format) Label() string {
	switch f {
	case SVGMarkup:
		return "SVG"
	case ComponentSnippet:
		return "component"
	case ImportStatement:
		return "import"
	case DownloadFile:
		return "file"
	}
	return f.String()
}

// IsText reports whether the format produces clipboard text.
func (f Format) IsText() bool {
	return f == SVGMarkup || f == ComponentSnippet || f == ImportStatement
}

// ParseFormat accepts the names printed by String, case-insensitively.
func ParseFormat(s string) (Format, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for f, name := range formatNames {
		if name == needle {
			return f, nil
		}
	}
	return 0, &UnsupportedFormatError{Name: s}
}
