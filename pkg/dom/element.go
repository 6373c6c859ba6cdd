// Package dom provides the minimal element tree handed to code-block
// processors. Elements wrap golang.org/x/net/html nodes so rendered fragments
// can be attached and serialised without string splicing.
package dom

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element is a single node in the render tree.
type Element struct {
	node *html.Node
}

// Options configures elements created through CreateEl.
type Options struct {
	Text    string
	Classes []string
}

// NewElement constructs a detached element with the given tag and classes.
func NewElement(tag string, classes ...string) *Element {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		tag = "div"
	}
	node := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	el := &Element{node: node}
	el.AddClass(classes...)
	return el
}

// Node exposes the underlying html node.
func (e *Element) Node() *html.Node {
	return e.node
}

// Tag returns the element tag name.
func (e *Element) Tag() string {
	return e.node.Data
}

// CreateEl appends a new child element and returns it.
func (e *Element) CreateEl(tag string, opts Options) *Element {
	child := NewElement(tag, opts.Classes...)
	if opts.Text != "" {
		child.AppendText(opts.Text)
	}
	e.node.AppendChild(child.node)
	return child
}

// CreateDiv appends a new div with the supplied classes.
func (e *Element) CreateDiv(classes ...string) *Element {
	return e.CreateEl("div", Options{Classes: classes})
}

// AppendText appends a text node. The text is escaped on serialisation.
func (e *Element) AppendText(text string) {
	e.node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// AppendHTML parses fragment in the context of this element and appends the
// resulting nodes as children.
func (e *Element) AppendHTML(fragment string) error {
	nodes, err := html.ParseFragment(strings.NewReader(fragment), e.node)
	if err != nil {
		return fmt.Errorf("dom: parse fragment: %w", err)
	}
	for _, n := range nodes {
		e.node.AppendChild(n)
	}
	return nil
}

// Remove detaches the element from its parent, if any.
func (e *Element) Remove() {
	if parent := e.node.Parent; parent != nil {
		parent.RemoveChild(e.node)
	}
}

// AddClass appends classes not already present.
func (e *Element) AddClass(classes ...string) {
	current := e.Classes()
	for _, class := range classes {
		class = strings.TrimSpace(class)
		if class == "" || slices.Contains(current, class) {
			continue
		}
		current = append(current, class)
	}
	if len(current) == 0 {
		return
	}
	e.setAttr("class", strings.Join(current, " "))
}

// Classes returns the element class list in declaration order.
func (e *Element) Classes() []string {
	value, ok := e.Attr("class")
	if !ok {
		return nil
	}
	return strings.Fields(value)
}

// HasClass reports whether class is present on the element.
func (e *Element) HasClass(class string) bool {
	return slices.Contains(e.Classes(), class)
}

// Attr returns an attribute value.
func (e *Element) Attr(key string) (string, bool) {
	for _, attr := range e.node.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// SetAttr sets or replaces an attribute.
func (e *Element) SetAttr(key, value string) {
	e.setAttr(key, value)
}

func (e *Element) setAttr(key, value string) {
	for i, attr := range e.node.Attr {
		if attr.Namespace == "" && attr.Key == key {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: key, Val: value})
}

// Children returns the direct element children.
func (e *Element) Children() []*Element {
	var out []*Element
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, &Element{node: c})
		}
	}
	return out
}

// Text returns the concatenated text content of the element subtree.
func (e *Element) Text() string {
	var b strings.Builder
	collectText(e.node, &b)
	return b.String()
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// InnerHTML serialises the children of the element.
func (e *Element) InnerHTML() (string, error) {
	var buf bytes.Buffer
	for c := e.node.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", fmt.Errorf("dom: render: %w", err)
		}
	}
	return buf.String(), nil
}

// OuterHTML serialises the element including its own tag.
func (e *Element) OuterHTML() (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, e.node); err != nil {
		return "", fmt.Errorf("dom: render: %w", err)
	}
	return buf.String(), nil
}
