package core

import (
	"errors"
	"fmt"

	"github.com/Rorical/iconx/internal/export"
)

// ErrorKind is a coarse-grained categorization for coordinator failures.
type ErrorKind string

const (
	KindEmit           ErrorKind = "emit"
	KindClipboardWrite ErrorKind = "clipboard_write"
	KindFileSave       ErrorKind = "file_save"
)

// OpError wraps a collaborator failure with the operation that hit it.
type OpError struct {
	Op   string
	Kind ErrorKind
	Icon string
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}
	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Icon != "" {
		base += fmt.Sprintf(" (icon=%s)", e.Icon)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err is an *OpError of kind.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// Describe turns a coordinator error into the short message shown to users.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var notFound *export.IconNotFoundError
	var unsupported *export.UnsupportedFormatError
	switch {
	case errors.As(err, &notFound):
		return fmt.Sprintf("%s is not available in the icon library", notFound.Name)
	case errors.As(err, &unsupported):
		return unsupported.Error()
	case IsKind(err, KindClipboardWrite):
		return "Copy failed: " + rootCause(err).Error()
	case IsKind(err, KindFileSave):
		return "Download failed: " + rootCause(err).Error()
	}
	return err.Error()
}

func rootCause(err error) error {
	var oe *OpError
	if errors.As(err, &oe) && oe.Err != nil {
		return oe.Err
	}
	return err
}
