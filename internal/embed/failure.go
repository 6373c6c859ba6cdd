package embed

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-dynamic-embed/internal/directive"
)

// FailureKind enumerates the user-facing failure taxonomy.
type FailureKind string

const (
	KindInvalidDirective FailureKind = "invalid_directive"
	KindNotFound         FailureKind = "not_found"
	KindWrongType        FailureKind = "wrong_type"
	KindNoMatches        FailureKind = "no_matches"
	KindInvalidSort      FailureKind = "invalid_sort"
)

// Failure is a terminal, user-visible resolution failure for one directive.
type Failure struct {
	Kind    FailureKind
	Message string
}

func (f *Failure) Error() string {
	return "embed: " + f.Message
}

// Category maps the failure onto the go-errors taxonomy used by commands.
func (f *Failure) Category() goerrors.Category {
	switch f.Kind {
	case KindNotFound, KindNoMatches:
		return goerrors.CategoryNotFound
	case KindWrongType, KindInvalidSort:
		return goerrors.CategoryBadInput
	default:
		return goerrors.CategoryValidation
	}
}

// AsFailure extracts a Failure from err.
func AsFailure(err error) (*Failure, bool) {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure, true
	}
	return nil, false
}

func invalidDirective() *Failure {
	return &Failure{Kind: KindInvalidDirective, Message: directive.InvalidFormatMessage}
}

func notFound(name string) *Failure {
	return &Failure{Kind: KindNotFound, Message: fmt.Sprintf("File '%s' not found", name)}
}

func wrongType(name string) *Failure {
	return &Failure{Kind: KindWrongType, Message: fmt.Sprintf("Invalid file extension for '%s', expected markdown", name)}
}

func noMatches(prefix string) *Failure {
	return &Failure{Kind: KindNoMatches, Message: fmt.Sprintf("No markdown files found with prefix '%s'", prefix)}
}

func invalidSort(token string) *Failure {
	return &Failure{Kind: KindInvalidSort, Message: fmt.Sprintf("Invalid sort option: '%s'", token)}
}
