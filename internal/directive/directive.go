package directive

import (
	"regexp"
	"strings"
)

// Keyword is the fenced code block language handled by the embed processor.
const Keyword = "dynamic-embed"

// InvalidFormatMessage is displayed when the block matches no directive form.
const InvalidFormatMessage = "Invalid format. Use [[file]] or prefix:prefix_name"

var (
	linkPattern   = regexp.MustCompile(`\[\[([^\[\]]+?)\]\]`)
	prefixPattern = regexp.MustCompile(`^prefix:(.+)`)
)

// Kind classifies a directive.
type Kind int

const (
	KindInvalid Kind = iota
	KindSingleFile
	KindPrefix
)

// String renders the kind for logs.
func (k Kind) String() string {
	switch k {
	case KindSingleFile:
		return "single_file"
	case KindPrefix:
		return "prefix"
	default:
		return "invalid"
	}
}

// Token is the output of the first parsing stage.
type Token struct {
	Kind Kind
	// Param is the captured parameter: the link text for KindSingleFile and
	// the untrimmed remainder after "prefix:" for KindPrefix.
	Param string
}

// Tokenize classifies source. A [[link]] anywhere in the text wins over a
// prefix line.
func Tokenize(source string) Token {
	if m := linkPattern.FindStringSubmatch(source); m != nil {
		return Token{Kind: KindSingleFile, Param: m[1]}
	}
	if m := prefixPattern.FindStringSubmatch(strings.TrimSpace(source)); m != nil {
		return Token{Kind: KindPrefix, Param: m[1]}
	}
	return Token{Kind: KindInvalid}
}

// Directive is the parsed form of a code block. The concrete types are
// SingleFile, PrefixSet and Invalid.
type Directive interface {
	Kind() Kind
	directive()
}

// SingleFile embeds one note resolved by link.
type SingleFile struct {
	Name string
}

// PrefixSet embeds every markdown note whose name starts with Prefix.
type PrefixSet struct {
	Prefix string
	Sort   SortKey
}

// Invalid is returned when the block matches neither form.
type Invalid struct{}

func (SingleFile) Kind() Kind { return KindSingleFile }
func (PrefixSet) Kind() Kind  { return KindPrefix }
func (Invalid) Kind() Kind    { return KindInvalid }

func (SingleFile) directive() {}
func (PrefixSet) directive()  {}
func (Invalid) directive()    {}

// Parse runs both stages over source. PrefixSet values carry the default
// sort; callers apply FindSortOverride against the section text.
func Parse(source string) Directive {
	return FromToken(Tokenize(source))
}

// FromToken performs the second parsing stage.
func FromToken(tok Token) Directive {
	switch tok.Kind {
	case KindSingleFile:
		return SingleFile{Name: tok.Param}
	case KindPrefix:
		return PrefixSet{Prefix: strings.TrimSpace(tok.Param), Sort: SortName}
	default:
		return Invalid{}
	}
}
