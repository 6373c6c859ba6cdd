package vault

import "errors"

var (
	// ErrRootRequired is returned when Open is called without a vault root.
	ErrRootRequired = errors.New("vault: root directory is required")
	// ErrRootNotDirectory is returned when the vault root is not a directory.
	ErrRootNotDirectory = errors.New("vault: root is not a directory")
	// ErrWatchUnsupported is returned when watching an index not opened from disk.
	ErrWatchUnsupported = errors.New("vault: watching requires an on-disk root")
)
