package host

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-dynamic-embed/pkg/interfaces"
)

// Registry maps fenced code block keywords to processors. It is safe for
// concurrent use.
type Registry struct {
	mu         sync.RWMutex
	processors map[string]interfaces.CodeBlockProcessor
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		processors: make(map[string]interfaces.CodeBlockProcessor),
	}
}

// Register stores processor under keyword if the keyword is not taken.
func (r *Registry) Register(keyword string, processor interfaces.CodeBlockProcessor) error {
	key := normalizeKeyword(keyword)
	if key == "" || processor == nil {
		return ErrInvalidKeyword
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.processors[key]; exists {
		return ErrDuplicateProcessor
	}
	r.processors[key] = processor
	return nil
}

// Get returns the processor registered for keyword.
func (r *Registry) Get(keyword string) (interfaces.CodeBlockProcessor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	processor, ok := r.processors[normalizeKeyword(keyword)]
	return processor, ok
}

// Keywords returns the registered keywords in lexical order.
func (r *Registry) Keywords() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.processors))
	for key := range r.processors {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}

// Remove deletes the processor if it exists.
func (r *Registry) Remove(keyword string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.processors, normalizeKeyword(keyword))
}

func normalizeKeyword(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}
