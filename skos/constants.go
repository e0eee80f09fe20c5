package skos

import (
	"fmt"

	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/rdf"
)

var prefixRDF = "http://www.w3.org/1999/02/22-rdf-syntax-ns#%s"
var prefixRDFS = "http://www.w3.org/2000/01/rdf-schema#%s"
var prefixSKOS = "http://www.w3.org/2004/02/skos/core#%s"
var prefixSKOSXL = "http://www.w3.org/2008/05/skos-xl#%s"
var prefixDC = "http://purl.org/dc/elements/1.1/%s"
var prefixDCTerms = "http://purl.org/dc/terms/%s"

var RDF_TYPE = rdf.MustIRI(fmt.Sprintf(prefixRDF, "type"))
var RDFS_LABEL = rdf.MustIRI(fmt.Sprintf(prefixRDFS, "label"))

var SKOS_CONCEPT = rdf.MustIRI(fmt.Sprintf(prefixSKOS, "Concept"))
var SKOS_CONCEPT_SCHEME = rdf.MustIRI(fmt.Sprintf(prefixSKOS, "ConceptScheme"))
var SKOS_IN_SCHEME = rdf.MustIRI(fmt.Sprintf(prefixSKOS, "inScheme"))
var SKOS_PREF_LABEL = rdf.MustIRI(fmt.Sprintf(prefixSKOS, "prefLabel"))

// SKOS-XL is not part of the core SKOS namespace
var SKOSXL_PREF_LABEL = rdf.MustIRI(fmt.Sprintf(prefixSKOSXL, "prefLabel"))
var SKOSXL_LITERAL_FORM = rdf.MustIRI(fmt.Sprintf(prefixSKOSXL, "literalForm"))

var DC_DESCRIPTION = rdf.MustIRI(fmt.Sprintf(prefixDC, "description"))
var DCTERMS_DESCRIPTION = rdf.MustIRI(fmt.Sprintf(prefixDCTerms, "description"))
var DCTERMS_MODIFIED = rdf.MustIRI(fmt.Sprintf(prefixDCTerms, "modified"))
var DCTERMS_ISSUED = rdf.MustIRI(fmt.Sprintf(prefixDCTerms, "issued"))

// AGROVOC_SCHEME is the AGROVOC core concept scheme.
var AGROVOC_SCHEME = "http://aims.fao.org/aos/agrovoc"
