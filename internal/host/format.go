package host

import (
	"fmt"
	"strings"
)

// Format selects how a rendered note is emitted.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatTerminal Format = "terminal"
)

// ParseFormat normalises a format name. An empty name selects html.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case "", FormatHTML:
		return FormatHTML, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatTerminal, "term":
		return FormatTerminal, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, value)
	}
}

// RendersHTML reports whether processors should attach HTML fragments rather
// than raw markdown text.
func (f Format) RendersHTML() bool {
	return f == FormatHTML
}

func (f Format) String() string {
	return string(f)
}
