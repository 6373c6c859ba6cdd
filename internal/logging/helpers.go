package logging

import "github.com/goliatone/go-dynamic-embed/pkg/interfaces"

// WithFields returns logger scoped to fields. Entries with an empty key or a
// nil value are dropped, so call sites can pass optional note attributes
// without guarding each one. Loggers without FieldsLogger support are
// returned unchanged.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil {
		return nil
	}
	scoped, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		return logger
	}

	kept := make(map[string]any, len(fields))
	for key, value := range fields {
		if key == "" || value == nil {
			continue
		}
		kept[key] = value
	}
	if len(kept) == 0 {
		return logger
	}
	return scoped.WithFields(kept)
}
