package rdf

import (
	"strings"

	"github.com/knakk/rdf"
)

// Literal is a label value with an optional language tag. An empty Language means the
// literal is untagged.
type Literal struct {
	Text     string
	Language string
}

// Tagged reports whether the literal carries a language tag.
func (l Literal) Tagged() bool {
	return l.Language != ""
}

// PrimaryLanguage returns the primary subtag of the language tag, i.e. "en" for "en-GB".
func (l Literal) PrimaryLanguage() string {
	primary, _, _ := strings.Cut(l.Language, "-")
	return primary
}

func (l Literal) String() string {
	if l.Tagged() {
		return l.Text + "@" + l.Language
	}
	return l.Text
}

// AsLiteral converts a graph term into a Literal.
// It returns false when the term is not a literal.
func AsLiteral(term Term) (Literal, bool) {
	literal, ok := term.(rdf.Literal)
	if !ok {
		return Literal{}, false
	}
	// language tags are case-insensitive, keep them in their canonical lower-case form
	return Literal{Text: literal.String(), Language: strings.ToLower(literal.Lang())}, true
}
