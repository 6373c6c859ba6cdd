package embed

import "github.com/goliatone/go-dynamic-embed/pkg/dom"

const (
	// ContainerClass marks every element produced by the processor.
	ContainerClass = "dynamic-embed"
	// ErrorClass marks error blocks.
	ErrorClass = "dynamic-embed-error"
	// ErrorLabel prefixes every displayed error message.
	ErrorLabel = "Dynamic Embed: Error: "
)

// DisplayError writes the error block that replaces normal rendering.
func DisplayError(parent *dom.Element, message string) *dom.Element {
	return parent.CreateEl("pre", dom.Options{
		Text:    ErrorLabel + message,
		Classes: []string{ContainerClass, ErrorClass},
	})
}

// NewContainer creates the fresh child that receives rendered markdown.
func NewContainer(parent *dom.Element) *dom.Element {
	return parent.CreateDiv(ContainerClass)
}
