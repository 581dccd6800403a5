package export

import (
	"fmt"

	"github.com/Rorical/iconx/internal/render"
)

// IconNotFoundError is the registry miss surfaced unchanged by Emit.
type IconNotFoundError = render.IconNotFoundError

// UnsupportedFormatError reports a format outside the closed set.
type UnsupportedFormatError struct {
	Format Format
	Name   string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("unsupported export format %q", e.Name)
	}
	return fmt.Sprintf("unsupported export format %s", e.Format)
}
