package thesaurus

import (
	"fmt"

	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/rdf"
	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/skos"
)

const (
	VariantAgrovoc = "agrovoc"
	VariantGemet   = "gemet"
)

// Variant bundles the per-vocabulary decisions of a load.
type Variant struct {
	Name     string
	Resolver skos.LabelResolver
	// Concepts enumerates the concepts to load, in graph order.
	Concepts func(g *rdf.Graph, scheme rdf.Term) []rdf.Term
	Date     skos.DatePolicy
}

// Agrovoc loads the concepts of one target scheme with SKOS-XL labels. The thesaurus date
// is the target scheme's dcterms:modified and is mandatory.
func Agrovoc(schemeIRI string) (Variant, error) {
	if schemeIRI == "" {
		schemeIRI = skos.AGROVOC_SCHEME
	}
	target, err := rdf.NewIRI(schemeIRI)
	if err != nil {
		return Variant{}, fmt.Errorf("invalid scheme IRI %q: %w", schemeIRI, err)
	}
	return Variant{
		Name:     VariantAgrovoc,
		Resolver: skos.XLResolver{},
		Concepts: func(g *rdf.Graph, _ rdf.Term) []rdf.Term {
			return g.Subjects(skos.SKOS_IN_SCHEME, target)
		},
		Date: skos.ModifiedDate{Subject: target},
	}, nil
}

// Gemet loads every skos:Concept with skos:prefLabel / rdfs:label labels.
func Gemet() Variant {
	return Variant{
		Name:     VariantGemet,
		Resolver: skos.PlainResolver{},
		Concepts: func(g *rdf.Graph, _ rdf.Term) []rdf.Term {
			return g.Subjects(skos.RDF_TYPE, skos.SKOS_CONCEPT)
		},
		Date: skos.IssuedDate{Default: skos.DefaultIssuedDate},
	}
}

// VariantByName returns the named variant. schemeIRI only applies to AGROVOC.
func VariantByName(name string, schemeIRI string) (Variant, error) {
	switch name {
	case VariantAgrovoc:
		return Agrovoc(schemeIRI)
	case VariantGemet, "":
		return Gemet(), nil
	default:
		return Variant{}, fmt.Errorf("unknown thesaurus variant %q", name)
	}
}
