package skos

import (
	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/rdf"
)

var labelProperties = []rdf.IRI{SKOS_PREF_LABEL, RDFS_LABEL}

// LangFilter selects literals by language tag.
type LangFilter struct {
	any  bool
	lang string
}

// AnyLanguage matches every literal.
func AnyLanguage() LangFilter {
	return LangFilter{any: true}
}

// NoLanguage matches untagged literals only.
func NoLanguage() LangFilter {
	return LangFilter{}
}

// Language matches literals tagged exactly with lang. An empty lang is NoLanguage.
func Language(lang string) LangFilter {
	return LangFilter{lang: lang}
}

func (f LangFilter) Match(literal rdf.Literal) bool {
	return f.any || literal.Language == f.lang
}

// PredicateLabel is a label together with the property it was found through.
type PredicateLabel struct {
	Predicate rdf.IRI
	Label     rdf.Literal
}

// PreferredLabel finds the preferred labels of subject. skos:prefLabel wins over
// rdfs:label as soon as the subject has at least one skos:prefLabel literal; the filter
// is applied to the winning property only, so a filtered-out prefLabel never falls back
// to rdfs:label.
func PreferredLabel(g *rdf.Graph, subject rdf.Term, filter LangFilter) []PredicateLabel {
	for _, property := range labelProperties {
		literals := g.Literals(subject, property)
		if len(literals) == 0 {
			continue
		}
		var result []PredicateLabel
		for _, literal := range literals {
			if filter.Match(literal) {
				result = append(result, PredicateLabel{Predicate: property, Label: literal})
			}
		}
		return result
	}
	return nil
}

// PlainResolver reads labels from skos:prefLabel, falling back to rdfs:label.
type PlainResolver struct{}

func (PlainResolver) CanonicalLabel(g *rdf.Graph, concept rdf.Term, lang string) (string, bool) {
	for _, label := range PreferredLabel(g, concept, Language(lang)) {
		if label.Label.Text != "" {
			return label.Label.Text, true
		}
	}
	return "", false
}

func (PlainResolver) Labels(g *rdf.Graph, concept rdf.Term) []rdf.Literal {
	var result []rdf.Literal
	for _, label := range PreferredLabel(g, concept, AnyLanguage()) {
		result = append(result, label.Label)
	}
	return result
}
