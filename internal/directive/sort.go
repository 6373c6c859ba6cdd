package directive

import (
	"fmt"
	"regexp"
	"strings"
)

// SortKey selects the ordering applied to prefix embeds.
type SortKey string

const (
	SortName     SortKey = "name"
	SortCreated  SortKey = "created"
	SortModified SortKey = "modified"
	SortReverse  SortKey = "reverse"
)

var sortLinePattern = regexp.MustCompile(`^sort:\s*(\S+)`)

// ParseSortKey validates token. Unknown tokens are an error, never a fallback.
func ParseSortKey(token string) (SortKey, error) {
	switch key := SortKey(strings.ToLower(strings.TrimSpace(token))); key {
	case SortName, SortCreated, SortModified, SortReverse:
		return key, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidSort, token)
	}
}

// FindSortOverride returns the token of the first line matching
// "sort: <token>", lower-cased and trimmed.
func FindSortOverride(sectionText string) (string, bool) {
	for _, line := range strings.Split(sectionText, "\n") {
		if m := sortLinePattern.FindStringSubmatch(line); m != nil {
			return strings.ToLower(strings.TrimSpace(m[1])), true
		}
	}
	return "", false
}
