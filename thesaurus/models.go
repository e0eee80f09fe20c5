package thesaurus

import (
	"github.com/google/uuid"
)

// Thesaurus is one loaded concept scheme.
type Thesaurus struct {
	ID          uuid.UUID `json:"id"`
	Identifier  string    `json:"identifier"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	About       string    `json:"about"`
	Date        string    `json:"date"`
}

// Keyword is a concept of a thesaurus. AltLabel is its label in the default language.
type Keyword struct {
	ID          uuid.UUID `json:"id"`
	ThesaurusID uuid.UUID `json:"thesaurusId"`
	About       string    `json:"about"`
	AltLabel    string    `json:"altLabel"`
}

// KeywordLabel is a keyword's label in one supported language.
type KeywordLabel struct {
	ID        uuid.UUID `json:"id"`
	KeywordID uuid.UUID `json:"keywordId"`
	Lang      string    `json:"lang"`
	Label     string    `json:"label"`
}

// LoadedKeyword is a keyword together with the labels stored for it.
type LoadedKeyword struct {
	Keyword
	Labels []KeywordLabel `json:"labels"`
}
