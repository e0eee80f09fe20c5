package thesaurus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeywordLabel(t *testing.T) {
	keyword := LoadedKeyword{
		Keyword: Keyword{About: "http://ex.org/c1", AltLabel: "Water"},
		Labels: []KeywordLabel{
			{Lang: "de", Label: "Wasser"},
			{Lang: "en", Label: "water"},
			{Lang: "fr", Label: "eau"},
		},
	}

	tests := []struct {
		name     string
		language string
		label    string
		lang     string
	}{
		{"exact", "de", "Wasser", "de"},
		{"primary subtag", "fr-CA", "eau", "fr"},
		{"fallback language", "it", "water", "en"},
		{"empty language uses fallback", "", "water", "en"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := keyword.Label(tt.language, "en")
			assert.Equal(t, tt.label, got.Label)
			assert.Equal(t, tt.lang, got.Lang)
			assert.Equal(t, "Water", got.AltLabel)
		})
	}

	onlyGerman := LoadedKeyword{
		Keyword: Keyword{About: "http://ex.org/c2", AltLabel: "soil"},
		Labels:  []KeywordLabel{{Lang: "de", Label: "Boden"}},
	}
	got := onlyGerman.Label("it", "en")
	assert.Equal(t, "soil", got.Label)
	assert.Empty(t, got.Lang)
}

func TestLabelsByAbout(t *testing.T) {
	keywords := []LoadedKeyword{
		{Keyword: Keyword{About: "a", AltLabel: "A"}, Labels: []KeywordLabel{{Lang: "de", Label: "A-de"}}},
		{Keyword: Keyword{About: "b", AltLabel: "B"}},
		{Keyword: Keyword{About: "a", AltLabel: "other thesaurus"}},
	}

	assert.Equal(t, map[string]string{"a": "A-de", "b": "B"}, LabelsByAbout(keywords, "de", "en"))
}
