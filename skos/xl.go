package skos

import (
	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/rdf"
)

// LabelResolver extracts a concept's labels from a graph.
type LabelResolver interface {
	// CanonicalLabel returns the concept's single label in lang, or false.
	CanonicalLabel(g *rdf.Graph, concept rdf.Term, lang string) (string, bool)
	// Labels returns every label candidate of the concept, before whitelisting.
	Labels(g *rdf.Graph, concept rdf.Term) []rdf.Literal
}

// XLResolver reads labels through SKOS-XL label resources:
// concept skosxl:prefLabel ?label . ?label skosxl:literalForm "text"@lang .
type XLResolver struct{}

// CanonicalLabel returns the first non-empty literal form tagged exactly with lang.
func (XLResolver) CanonicalLabel(g *rdf.Graph, concept rdf.Term, lang string) (string, bool) {
	for _, literal := range literalForms(g, concept) {
		if literal.Language == lang && literal.Text != "" {
			return literal.Text, true
		}
	}
	return "", false
}

func (XLResolver) Labels(g *rdf.Graph, concept rdf.Term) []rdf.Literal {
	return literalForms(g, concept)
}

// literalForms follows every skosxl:prefLabel of the concept to its literal form.
// Label resources without a literal form are ignored.
func literalForms(g *rdf.Graph, concept rdf.Term) []rdf.Literal {
	var result []rdf.Literal
	for _, label := range g.Objects(concept, SKOSXL_PREF_LABEL) {
		if literal, ok := g.LiteralValue(label, SKOSXL_LITERAL_FORM); ok {
			result = append(result, literal)
		}
	}
	return result
}
