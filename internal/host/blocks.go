package host

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/goliatone/go-dynamic-embed/pkg/dom"
)

// KindProcessedBlock is the AST kind of fenced blocks claimed by a processor.
var KindProcessedBlock = ast.NewNodeKind("ProcessedBlock")

// ProcessedBlock replaces a fenced code block whose language has a registered
// processor. Element holds the processor output.
type ProcessedBlock struct {
	ast.BaseBlock
	Keyword string
	Element *dom.Element
}

// Kind implements ast.Node.
func (n *ProcessedBlock) Kind() ast.NodeKind {
	return KindProcessedBlock
}

// Dump implements ast.Node.
func (n *ProcessedBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Keyword": n.Keyword}, nil)
}

// BlockResult describes one processed block of a rendered note.
type BlockResult struct {
	Keyword string
	// Source is the raw text between the fences.
	Source string
	// SectionText is the block including its fence lines.
	SectionText string
	// Start and End delimit SectionText within the note body.
	Start, End int
	Element    *dom.Element
	Err        error
	// Prefix holds the blockquote markers and indentation preceding the
	// opening fence.
	Prefix string

	node *ast.FencedCodeBlock
}

// collectBlocks walks doc and returns every fenced block with a registered
// processor, in document order.
func collectBlocks(doc ast.Node, source []byte, registry *Registry) []*BlockResult {
	var blocks []*BlockResult
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := n.(*ast.FencedCodeBlock)
		if !ok || fenced.Info == nil {
			return ast.WalkContinue, nil
		}
		keyword := string(fenced.Language(source))
		if _, ok := registry.Get(keyword); !ok {
			return ast.WalkSkipChildren, nil
		}

		start, end := sectionBounds(fenced, source)
		blocks = append(blocks, &BlockResult{
			Keyword:     normalizeKeyword(keyword),
			Source:      blockSource(fenced, source),
			SectionText: string(source[start:end]),
			Start:       start,
			End:         end,
			Prefix:      string(source[start : start+containerPrefixLen(source[start:end])]),
			node:        fenced,
		})
		return ast.WalkSkipChildren, nil
	})
	return blocks
}

// replaceBlocks swaps each collected fenced block for a ProcessedBlock
// carrying its element.
func replaceBlocks(blocks []*BlockResult) {
	for _, block := range blocks {
		parent := block.node.Parent()
		if parent == nil {
			continue
		}
		replacement := &ProcessedBlock{Keyword: block.Keyword, Element: block.Element}
		parent.ReplaceChild(parent, block.node, replacement)
	}
}

func blockSource(fenced *ast.FencedCodeBlock, source []byte) string {
	var buf bytes.Buffer
	lines := fenced.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		buf.Write(segment.Value(source))
	}
	return buf.String()
}

// sectionBounds returns the byte range of the block from the start of the
// opening fence line to the end of the closing fence line.
func sectionBounds(fenced *ast.FencedCodeBlock, source []byte) (int, int) {
	start := fenced.Info.Segment.Start
	for start > 0 && source[start-1] != '\n' {
		start--
	}

	end := fenced.Info.Segment.Stop
	if lines := fenced.Lines(); lines.Len() > 0 {
		end = lines.At(lines.Len() - 1).Stop
	} else {
		end = lineEnd(source, end)
	}

	if closing := lineEnd(source, end); isFenceLine(source[end:closing]) {
		end = closing
	}
	return start, end
}

// lineEnd returns the offset just past the newline terminating the line that
// contains pos, or len(source).
func lineEnd(source []byte, pos int) int {
	if pos >= len(source) {
		return len(source)
	}
	if idx := bytes.IndexByte(source[pos:], '\n'); idx >= 0 {
		return pos + idx + 1
	}
	return len(source)
}

// containerPrefixLen returns the length of the leading whitespace and
// blockquote markers of line.
func containerPrefixLen(line []byte) int {
	n := 0
	for n < len(line) && (line[n] == ' ' || line[n] == '\t' || line[n] == '>') {
		n++
	}
	return n
}

func isFenceLine(line []byte) bool {
	trimmed := bytes.TrimSpace(line[containerPrefixLen(line):])
	return bytes.HasPrefix(trimmed, []byte("```")) || bytes.HasPrefix(trimmed, []byte("~~~"))
}

type processedBlockRenderer struct{}

// RegisterFuncs implements renderer.NodeRenderer.
func (processedBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindProcessedBlock, renderProcessedBlock)
}

func renderProcessedBlock(w util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	block := n.(*ProcessedBlock)
	if block.Element == nil {
		return ast.WalkSkipChildren, nil
	}
	out, err := block.Element.OuterHTML()
	if err != nil {
		return ast.WalkStop, err
	}
	_, _ = w.WriteString(out)
	_ = w.WriteByte('\n')
	return ast.WalkSkipChildren, nil
}
