package skos

import (
	"errors"
	"fmt"

	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/rdf"
)

var ErrNoConceptScheme = errors.New("ConceptScheme not found in file")
var ErrMultipleConceptSchemes = errors.New("more than one ConceptScheme found in file")

// FindConceptScheme returns the single subject typed skos:ConceptScheme.
func FindConceptScheme(g *rdf.Graph) (rdf.Term, error) {
	scheme, err := g.UniqueSubject(RDF_TYPE, SKOS_CONCEPT_SCHEME)
	switch {
	case errors.Is(err, rdf.ErrNoMatch):
		return nil, ErrNoConceptScheme
	case errors.Is(err, rdf.ErrAmbiguous):
		return nil, fmt.Errorf("%w (%v)", ErrMultipleConceptSchemes, err)
	case err != nil:
		return nil, err
	}
	return scheme, nil
}

// SchemeTitle selects the scheme's display title among all of its literals.
// It returns false when the scheme has no literal at all.
func SchemeTitle(g *rdf.Graph, scheme rdf.Term, lang string) (string, bool) {
	title, ok := ValueForLanguage(g.LiteralObjects(scheme), lang)
	return title.Text, ok
}

// SchemeDescription returns the scheme's dc:description, or its dcterms:description.
func SchemeDescription(g *rdf.Graph, scheme rdf.Term) (string, bool) {
	if description, ok := g.LiteralValue(scheme, DC_DESCRIPTION); ok {
		return description.Text, true
	}
	if description, ok := g.LiteralValue(scheme, DCTERMS_DESCRIPTION); ok {
		return description.Text, true
	}
	return "", false
}
