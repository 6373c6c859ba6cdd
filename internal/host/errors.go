package host

import "errors"

var (
	// ErrDuplicateProcessor indicates an attempt to register a keyword twice.
	ErrDuplicateProcessor = errors.New("host: duplicate code block processor")
	// ErrInvalidKeyword occurs when a keyword is empty or the processor is nil.
	ErrInvalidKeyword = errors.New("host: invalid code block keyword")
	// ErrNoteNotFound is returned when the note to render does not resolve.
	ErrNoteNotFound = errors.New("host: note not found")
	// ErrUnsupportedFormat is returned for unknown output formats.
	ErrUnsupportedFormat = errors.New("host: unsupported output format")
)
