package thesaurus

import (
	"golang.org/x/exp/slices"

	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/skos"
)

// LabeledKeyword is a keyword with its label in one requested language.
type LabeledKeyword struct {
	About    string `json:"about"`
	AltLabel string `json:"altLabel"`
	Label    string `json:"label"`
	// Lang is the language of Label, empty when Label is the alt_label.
	Lang string `json:"lang,omitempty"`
}

// Label returns the keyword's label for language. Labels tagged with the language win
// over labels tagged with its primary subtag, then the fallback language. Without any of
// those the alt_label is returned.
func (k LoadedKeyword) Label(language string, fallback string) LabeledKeyword {
	result := LabeledKeyword{About: k.About, AltLabel: k.AltLabel, Label: k.AltLabel}
	priorities := skos.LanguagePriorities(language, fallback)
	best := -1
	for _, label := range k.Labels {
		priority := slices.Index(priorities, label.Lang)
		if priority > -1 && (best == -1 || priority < best) {
			result.Label = label.Label
			result.Lang = label.Lang
			best = priority
		}
	}
	return result
}

// LabelsByAbout maps every keyword's about to its label in language.
func LabelsByAbout(keywords []LoadedKeyword, language string, fallback string) map[string]string {
	result := make(map[string]string, len(keywords))
	for _, keyword := range keywords {
		if _, ok := result[keyword.About]; ok {
			continue
		}
		result[keyword.About] = keyword.Label(language, fallback).Label
	}
	return result
}
