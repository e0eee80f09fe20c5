package skos

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/rdf"
)

func TestValueForLanguage(t *testing.T) {
	tests := []struct {
		name      string
		available []rdf.Literal
		lang      string
		expected  string
	}{
		{
			name: "untagged literal wins over matching tag",
			available: []rdf.Literal{
				{Text: "Water", Language: "en"},
				{Text: "water"},
			},
			lang:     "en",
			expected: "water",
		},
		{
			name: "untagged literal wins regardless of target",
			available: []rdf.Literal{
				{Text: "Wasser", Language: "de"},
				{Text: "aqua"},
			},
			lang:     "it",
			expected: "aqua",
		},
		{
			name: "primary subtag matches",
			available: []rdf.Literal{
				{Text: "Wasser", Language: "de"},
				{Text: "Water", Language: "en-gb"},
			},
			lang:     "en",
			expected: "Water",
		},
		{
			name: "sorted order decides between matching subtags",
			available: []rdf.Literal{
				{Text: "Color", Language: "en-us"},
				{Text: "Colour", Language: "en-gb"},
			},
			lang:     "en",
			expected: "Colour",
		},
		{
			// sorted scan order would be de, fr; fallback must use the original order
			name: "fallback uses original order",
			available: []rdf.Literal{
				{Text: "Eau", Language: "fr"},
				{Text: "Wasser", Language: "de"},
			},
			lang:     "en",
			expected: "Eau",
		},
		{
			name: "exact tag required for full subtag",
			available: []rdf.Literal{
				{Text: "Eau", Language: "fr"},
				{Text: "Water", Language: "en"},
			},
			lang:     "en-gb",
			expected: "Eau",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, ok := ValueForLanguage(tt.available, tt.lang)
			require.True(t, ok)
			assert.Equal(t, tt.expected, value.Text)
		})
	}
}

func TestValueForLanguageDoesNotReorderInput(t *testing.T) {
	available := []rdf.Literal{{Text: "b", Language: "it"}, {Text: "a", Language: "de"}}
	ValueForLanguage(available, "en")
	assert.Equal(t, "b", available[0].Text)
}

func TestValueForLanguageEmpty(t *testing.T) {
	_, ok := ValueForLanguage(nil, "en")
	assert.False(t, ok)
}

func TestFilterSupported(t *testing.T) {
	literals := []rdf.Literal{
		{Text: "Water", Language: "en"},
		{Text: "Eau", Language: "fr"},
		{Text: "Wota", Language: "xx"},
		{Text: "untagged"},
		{Text: "Water", Language: "en"},
		{Text: "Agua", Language: "es"},
	}

	labels, dropped := FilterSupported(literals, false)
	assert.Equal(t, []Label{
		{Lang: "en", Label: "Water"},
		{Lang: "fr", Label: "Eau"},
		{Lang: "es", Label: "Agua"},
	}, labels)
	assert.Equal(t, 3, dropped)
}

func TestFilterSupportedLowerCase(t *testing.T) {
	literals := []rdf.Literal{
		{Text: "Water", Language: "EN"},
		{Text: "WATER", Language: "en"},
		{Text: "Wasser", Language: "De"},
	}

	labels, dropped := FilterSupported(literals, true)
	assert.Equal(t, []Label{
		{Lang: "en", Label: "water"},
		{Lang: "de", Label: "wasser"},
	}, labels)
	assert.Equal(t, 1, dropped)

	// without folding a mixed-case tag that did not pass through the graph adapter
	// is not whitelisted
	labels, _ = FilterSupported(literals[:1], false)
	assert.Empty(t, labels)
}

func TestLanguagePriorities(t *testing.T) {
	assert.Equal(t, []string{"de-at", "de", "en", ""}, LanguagePriorities("de-AT", "en"))
	assert.Equal(t, []string{"en", ""}, LanguagePriorities("en", "en"))
	assert.Equal(t, []string{"en", ""}, LanguagePriorities("", "en"))
}

func TestNormalizeLanguage(t *testing.T) {
	assert.Equal(t, "en", NormalizeLanguage(" EN "))
	assert.Equal(t, "de-at", NormalizeLanguage("de-AT"))
	assert.Equal(t, "", NormalizeLanguage("  "))
}
