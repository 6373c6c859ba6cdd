package embed

import (
	"context"
	"fmt"

	"github.com/goliatone/go-dynamic-embed/pkg/interfaces"
)

// ResolveSingle resolves name against the whole vault and returns the raw
// content of the matching markdown note.
func ResolveSingle(ctx context.Context, index interfaces.ContentIndex, name string) (string, error) {
	file, ok, err := index.ResolveLink(ctx, name, "")
	if err != nil {
		return "", fmt.Errorf("embed: resolve %q: %w", name, err)
	}
	if !ok {
		return "", notFound(name)
	}
	if !file.IsMarkdown() {
		return "", wrongType(name)
	}

	content, err := index.CachedRead(ctx, file)
	if err != nil {
		return "", fmt.Errorf("embed: read %s: %w", file.Path, err)
	}
	return content, nil
}
