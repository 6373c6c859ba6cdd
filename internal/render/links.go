package render

import (
	"net/url"
	"path"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// linkRebaser rewrites relative link and image destinations against the
// directory of the source note, producing vault-root relative paths.
type linkRebaser struct {
	dir string
}

func newLinkRebaser(sourcePath string) *linkRebaser {
	dir := path.Dir(strings.TrimPrefix(sourcePath, "/"))
	if dir == "." {
		dir = ""
	}
	return &linkRebaser{dir: dir}
}

func (t *linkRebaser) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	if t.dir == "" {
		return
	}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			node.Destination = t.rebase(node.Destination)
		case *ast.Image:
			node.Destination = t.rebase(node.Destination)
		}
		return ast.WalkContinue, nil
	})
}

func (t *linkRebaser) rebase(dest []byte) []byte {
	raw := string(dest)
	if !isRelative(raw) {
		return dest
	}
	return []byte(path.Join(t.dir, raw))
}

// RebaseLink joins a relative destination onto the directory of sourcePath.
// Absolute URLs, fragments and rooted paths are returned unchanged.
func RebaseLink(sourcePath, dest string) string {
	t := newLinkRebaser(sourcePath)
	if t.dir == "" {
		return dest
	}
	return string(t.rebase([]byte(dest)))
}

func isRelative(dest string) bool {
	if dest == "" || strings.HasPrefix(dest, "#") || strings.HasPrefix(dest, "/") {
		return false
	}
	u, err := url.Parse(dest)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == ""
}
