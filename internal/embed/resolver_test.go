package embed

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestResolveSingleReturnsContentVerbatim(t *testing.T) {
	content := "---\ntags: [a]\n---\n# Soup\n\n![[image.png]]\n  trailing  \n"
	index := newStubIndex().add("Recipes/Soup.md", content, time.Time{}, time.Time{})

	got, err := ResolveSingle(context.Background(), index, "Recipes/Soup")
	if err != nil {
		t.Fatalf("ResolveSingle: %v", err)
	}
	if got != content {
		t.Fatalf("expected verbatim content, got %q", got)
	}
}

func TestResolveSingleNotFound(t *testing.T) {
	_, err := ResolveSingle(context.Background(), newStubIndex(), "Recipes/Soup")

	failure, ok := AsFailure(err)
	if !ok {
		t.Fatalf("expected failure, got %v", err)
	}
	if failure.Kind != KindNotFound || failure.Message != "File 'Recipes/Soup' not found" {
		t.Fatalf("unexpected failure %#v", failure)
	}
}

func TestResolveSingleWrongType(t *testing.T) {
	index := newStubIndex().
		add("photo.png", "binary", time.Time{}, time.Time{}).
		add("Upper.MD", "shout", time.Time{}, time.Time{})

	for _, name := range []string{"photo.png", "Upper.MD"} {
		_, err := ResolveSingle(context.Background(), index, name)
		failure, ok := AsFailure(err)
		if !ok || failure.Kind != KindWrongType {
			t.Fatalf("%s: expected wrong type failure, got %v", name, err)
		}
		if failure.Message != "Invalid file extension for '"+name+"', expected markdown" {
			t.Fatalf("unexpected message %q", failure.Message)
		}
	}
	if index.readCount() != 0 {
		t.Fatalf("expected no reads for rejected files")
	}
}

func TestResolveSingleWrapsReadErrors(t *testing.T) {
	boom := errors.New("disk gone")
	index := newStubIndex().add("a.md", "a", time.Time{}, time.Time{})
	index.readErr = boom

	_, err := ResolveSingle(context.Background(), index, "a")
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped read error, got %v", err)
	}
	if _, ok := AsFailure(err); ok {
		t.Fatalf("read errors must not be reported as failures")
	}
}
