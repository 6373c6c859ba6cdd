package interfaces

import "time"

// EmbedMetrics records processor observations. Labels are directive kinds
// ("single_file", "prefix", "invalid") and failure kinds.
type EmbedMetrics interface {
	ObserveRenderDuration(directive string, duration time.Duration)
	IncrementFailure(kind string)
}
