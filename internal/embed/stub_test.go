package embed

import (
	"context"
	"errors"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-dynamic-embed/pkg/interfaces"
)

type stubIndex struct {
	mu       sync.Mutex
	files    []interfaces.FileDescriptor
	contents map[string]string
	reads    []string
	filesErr error
	readErr  error
}

func newStubIndex() *stubIndex {
	return &stubIndex{contents: map[string]string{}}
}

func (s *stubIndex) add(p, content string, created, modified time.Time) *stubIndex {
	name := path.Base(p)
	ext := strings.TrimPrefix(path.Ext(name), ".")
	s.files = append(s.files, interfaces.FileDescriptor{
		Path:      p,
		Name:      name,
		Basename:  strings.TrimSuffix(name, path.Ext(name)),
		Extension: ext,
		Created:   created,
		Modified:  modified,
		Size:      int64(len(content)),
	})
	s.contents[p] = content
	return s
}

func (s *stubIndex) ResolveLink(_ context.Context, link, _ string) (interfaces.FileDescriptor, bool, error) {
	for _, file := range s.files {
		if file.Path == link || file.Path == link+".md" || file.Basename == link || file.Name == link {
			return file, true, nil
		}
	}
	return interfaces.FileDescriptor{}, false, nil
}

func (s *stubIndex) Files(context.Context) ([]interfaces.FileDescriptor, error) {
	if s.filesErr != nil {
		return nil, s.filesErr
	}
	return append([]interfaces.FileDescriptor(nil), s.files...), nil
}

func (s *stubIndex) CachedRead(ctx context.Context, file interfaces.FileDescriptor) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s.readErr != nil {
		return "", s.readErr
	}
	s.mu.Lock()
	s.reads = append(s.reads, file.Path)
	s.mu.Unlock()
	content, ok := s.contents[file.Path]
	if !ok {
		return "", errors.New("missing content")
	}
	return content, nil
}

func (s *stubIndex) readCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reads)
}
