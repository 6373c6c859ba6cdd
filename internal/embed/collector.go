package embed

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/goliatone/go-dynamic-embed/internal/directive"
	"github.com/goliatone/go-dynamic-embed/pkg/interfaces"
)

// CollectPrefix aggregates every markdown note whose name starts with prefix.
// sectionText is scanned for a "sort:" override line.
func CollectPrefix(ctx context.Context, index interfaces.ContentIndex, prefix, sectionText string) (string, error) {
	token := string(directive.SortName)
	if override, ok := directive.FindSortOverride(sectionText); ok {
		token = override
	}

	files, err := index.Files(ctx)
	if err != nil {
		return "", fmt.Errorf("embed: enumerate files: %w", err)
	}

	matching := MatchPrefix(files, prefix)
	if len(matching) == 0 {
		return "", noMatches(prefix)
	}

	key, err := directive.ParseSortKey(token)
	if err != nil {
		return "", invalidSort(token)
	}
	SortFiles(matching, key)

	var b strings.Builder
	for _, file := range matching {
		content, err := index.CachedRead(ctx, file)
		if err != nil {
			return "", fmt.Errorf("embed: read %s: %w", file.Path, err)
		}
		writeSection(&b, file.Name, content)
	}
	return b.String(), nil
}

// MatchPrefix filters files down to markdown notes whose name starts with
// prefix, keeping the index order.
func MatchPrefix(files []interfaces.FileDescriptor, prefix string) []interfaces.FileDescriptor {
	var out []interfaces.FileDescriptor
	for _, file := range files {
		if strings.HasPrefix(file.Name, prefix) && file.IsMarkdown() {
			out = append(out, file)
		}
	}
	return out
}

// SortFiles orders files in place. SortReverse only reverses the incoming
// order and does not compose with the other keys.
func SortFiles(files []interfaces.FileDescriptor, key directive.SortKey) {
	switch key {
	case directive.SortName:
		collator := collate.New(language.Und)
		slices.SortStableFunc(files, func(a, b interfaces.FileDescriptor) int {
			return collator.CompareString(a.Name, b.Name)
		})
	case directive.SortCreated:
		slices.SortStableFunc(files, func(a, b interfaces.FileDescriptor) int {
			return compareTime(a.Created, b.Created)
		})
	case directive.SortModified:
		slices.SortStableFunc(files, func(a, b interfaces.FileDescriptor) int {
			return compareTime(a.Modified, b.Modified)
		})
	case directive.SortReverse:
		slices.Reverse(files)
	}
}

func compareTime(a, b time.Time) int {
	return a.Compare(b)
}

func writeSection(b *strings.Builder, name, content string) {
	b.WriteString("# ")
	b.WriteString(name)
	b.WriteString("\n\n")
	b.WriteString(content)
	b.WriteString("\n\n---\n\n")
}
