package skos

import (
	"strings"

	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/rdf"
	"golang.org/x/exp/slices"
)

// SupportedLanguages restricts which labels are stored. Thesauri like AGROVOC carry
// labels in dozens of languages.
var SupportedLanguages = []string{"fr", "de", "en", "it", "es"}

// Label is a whitelisted label of a keyword.
type Label struct {
	Lang  string `json:"lang"`
	Label string `json:"label"`
}

// NormalizeLanguage trims and lower-cases a language code given by a user. Tags read
// from a graph are lower-case already.
func NormalizeLanguage(lang string) string {
	return strings.ToLower(strings.TrimSpace(lang))
}

// IsSupported reports whether a language tag is in SupportedLanguages.
func IsSupported(lang string) bool {
	return slices.Contains(SupportedLanguages, lang)
}

// ValueForLanguage picks the representative literal for a language. Untagged literals
// sort first and win; otherwise the first literal whose primary subtag matches lang.
// Without a match the first literal of the original order is returned.
// It returns false only for empty input.
func ValueForLanguage(available []rdf.Literal, lang string) (rdf.Literal, bool) {
	if len(available) == 0 {
		return rdf.Literal{}, false
	}
	sorted := slices.Clone(available)
	slices.SortStableFunc(sorted, func(a, b rdf.Literal) int {
		return strings.Compare(a.Language, b.Language)
	})
	for _, literal := range sorted {
		if !literal.Tagged() || literal.PrimaryLanguage() == lang {
			return literal, true
		}
	}
	return available[0], true
}

// FilterSupported folds and whitelists literals into labels. Exact duplicates are
// collapsed.
// It returns the kept labels and the number of dropped literals.
func FilterSupported(literals []rdf.Literal, lowerCase bool) (labels []Label, dropped int) {
	for _, literal := range literals {
		label := Label{
			Lang:  Fold(literal.Language, lowerCase),
			Label: Fold(literal.Text, lowerCase),
		}
		if !IsSupported(label.Lang) || slices.Contains(labels, label) {
			dropped++
			continue
		}
		labels = append(labels, label)
	}
	return
}

// Fold lower-cases value when lowerCase is set.
func Fold(value string, lowerCase bool) string {
	if lowerCase {
		return strings.ToLower(value)
	}
	return value
}

// LanguagePriorities lists the language tags to try, best first, when looking up a label
// in a requested language: the tag itself, its primary subtag, the fallback language and
// finally untagged values.
func LanguagePriorities(language string, fallback string) []string {
	language = strings.ToLower(language)
	if language == "" {
		language = fallback
	}
	priorities := []string{language}
	if primary, _, found := strings.Cut(language, "-"); found {
		priorities = append(priorities, primary)
	}
	if fallback != "" && !slices.Contains(priorities, fallback) {
		priorities = append(priorities, fallback)
	}
	return append(priorities, "")
}
