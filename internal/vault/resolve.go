package vault

import (
	"context"
	"path"
	"slices"
	"strings"

	"github.com/goliatone/go-dynamic-embed/pkg/interfaces"
)

// ResolveLink finds the first file matching link. Exact path matches win;
// otherwise files whose path ends with the link are ranked by proximity to
// sourcePath, then by path length and lexical order. Matching is case
// insensitive and ".md" is implied when the link has no extension.
func (i *Index) ResolveLink(ctx context.Context, link, sourcePath string) (interfaces.FileDescriptor, bool, error) {
	files, err := i.Files(ctx)
	if err != nil {
		return interfaces.FileDescriptor{}, false, err
	}

	target := NormalizeLink(link)
	if target == "" {
		return interfaces.FileDescriptor{}, false, nil
	}
	wants := linkCandidates(strings.ToLower(target))

	for _, want := range wants {
		for _, f := range files {
			if strings.ToLower(f.Path) == want {
				return f, true, nil
			}
		}
	}

	var matches []interfaces.FileDescriptor
	for _, want := range wants {
		suffix := "/" + want
		for _, f := range files {
			if strings.HasSuffix(strings.ToLower(f.Path), suffix) {
				matches = append(matches, f)
			}
		}
		if len(matches) > 0 {
			break
		}
	}
	if len(matches) == 0 {
		return interfaces.FileDescriptor{}, false, nil
	}

	sourceDir := strings.ToLower(path.Dir(sourcePath))
	slices.SortStableFunc(matches, func(a, b interfaces.FileDescriptor) int {
		if da, db := sharedDepth(sourceDir, a.Path), sharedDepth(sourceDir, b.Path); da != db {
			return db - da
		}
		if len(a.Path) != len(b.Path) {
			return len(a.Path) - len(b.Path)
		}
		return strings.Compare(a.Path, b.Path)
	})
	return matches[0], true, nil
}

// NormalizeLink strips the display alias and subpath from a link and removes
// leading "./" and "/" segments.
func NormalizeLink(link string) string {
	if idx := strings.Index(link, "|"); idx >= 0 {
		link = link[:idx]
	}
	if idx := strings.Index(link, "#"); idx >= 0 {
		link = link[:idx]
	}
	link = strings.TrimSpace(link)
	link = strings.TrimLeft(link, "/")
	for strings.HasPrefix(link, "./") {
		link = strings.TrimPrefix(link, "./")
	}
	return link
}

func linkCandidates(target string) []string {
	withExt := target + "." + interfaces.MarkdownExtension
	if path.Ext(target) == "" {
		return []string{withExt}
	}
	return []string{target, withExt}
}

// sharedDepth counts the leading directory segments p shares with dir.
func sharedDepth(dir, p string) int {
	if dir == "." || dir == "" {
		return 0
	}
	dirParts := strings.Split(dir, "/")
	pathParts := strings.Split(strings.ToLower(path.Dir(p)), "/")
	n := 0
	for n < len(dirParts) && n < len(pathParts) && dirParts[n] == pathParts[n] {
		n++
	}
	return n
}
