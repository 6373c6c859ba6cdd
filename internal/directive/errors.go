package directive

import "errors"

var (
	// ErrInvalidSort indicates a sort token outside the supported set.
	ErrInvalidSort = errors.New("directive: invalid sort option")
)
