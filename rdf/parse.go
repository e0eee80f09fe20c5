package rdf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/deiu/rdf2go"
	"github.com/knakk/rdf"
)

// Format names an RDF serialization.
type Format string

const (
	Turtle   Format = "turtle"
	NTriples Format = "nt"
	NQuads   Format = "nquads"
	RDFXML   Format = "xml"
	JSONLD   Format = "json-ld"
)

var ErrUnknownFormat = errors.New("unknown RDF format")
var ErrInvalidRDF = errors.New("invalid RDF")

var formatsByExtension = map[string]Format{
	".ttl":    Turtle,
	".turtle": Turtle,
	".n3":     Turtle,
	".nt":     NTriples,
	".nq":     NQuads,
	".rdf":    RDFXML,
	".xml":    RDFXML,
	".owl":    RDFXML,
	".jsonld": JSONLD,
	".json":   JSONLD,
}

var formatAliases = map[string]Format{
	"turtle":                Turtle,
	"ttl":                   Turtle,
	"text/turtle":           Turtle,
	"nt":                    NTriples,
	"ntriples":              NTriples,
	"n-triples":             NTriples,
	"application/n-triples": NTriples,
	"nquads":                NQuads,
	"nq":                    NQuads,
	"application/n-quads":   NQuads,
	"xml":                   RDFXML,
	"rdfxml":                RDFXML,
	"rdf/xml":               RDFXML,
	"application/rdf+xml":   RDFXML,
	"json-ld":               JSONLD,
	"jsonld":                JSONLD,
	"application/ld+json":   JSONLD,
}

// GuessFormat derives the serialization from a file name's extension.
func GuessFormat(name string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if format, ok := formatsByExtension[ext]; ok {
		return format, nil
	}
	return "", fmt.Errorf("%w: cannot guess format of %q", ErrUnknownFormat, name)
}

// ParseFormat resolves an explicit format name or MIME type.
func ParseFormat(name string) (Format, error) {
	if format, ok := formatAliases[strings.ToLower(strings.TrimSpace(name))]; ok {
		return format, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// ResolveFormat returns the explicit format if given, otherwise guesses from the name.
func ResolveFormat(explicit string, name string) (Format, error) {
	if explicit != "" {
		return ParseFormat(explicit)
	}
	return GuessFormat(name)
}

// ParseFile reads and parses an RDF file. An empty format is guessed from the extension.
func ParseFile(path string, format string) (*Graph, error) {
	resolved, err := ResolveFormat(format, path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, resolved)
}

// Parse decodes a serialized graph. Malformed input yields ErrInvalidRDF.
func Parse(reader io.Reader, format Format) (*Graph, error) {
	var graph *Graph
	var err error
	switch format {
	case Turtle:
		graph, err = decodeTriples(reader, rdf.Turtle)
	case NTriples:
		graph, err = decodeTriples(reader, rdf.NTriples)
	case RDFXML:
		graph, err = decodeTriples(reader, rdf.RDFXML)
	case NQuads:
		graph, err = decodeQuads(reader)
	case JSONLD:
		graph, err = parseJSONLD(reader)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRDF, err)
	}
	return graph, nil
}

func decodeTriples(reader io.Reader, format rdf.Format) (*Graph, error) {
	graph := NewGraph()
	dec := rdf.NewTripleDecoder(reader, format)
	for {
		triple, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed decoding triple %d: %w", graph.Len()+1, err)
		}
		graph.Add(triple)
	}
	return graph, nil
}

// decodeQuads reads N-Quads into a single graph, dropping the graph names.
func decodeQuads(reader io.Reader) (*Graph, error) {
	graph := NewGraph()
	dec := rdf.NewQuadDecoder(reader, rdf.NQuads)
	for {
		quad, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed decoding quad %d: %w", graph.Len()+1, err)
		}
		graph.Add(quad.Triple)
	}
	return graph, nil
}

// parseJSONLD parses with rdf2go and converts its terms. rdf2go keeps triples in a map,
// so the resulting order is not the document order.
func parseJSONLD(reader io.Reader) (*Graph, error) {
	source := rdf2go.NewGraph("")
	if err := source.Parse(reader, "application/ld+json"); err != nil {
		return nil, err
	}
	graph := NewGraph()
	for triple := range source.IterTriples() {
		s, err := convertTerm(triple.Subject)
		if err != nil {
			return nil, err
		}
		p, err := convertTerm(triple.Predicate)
		if err != nil {
			return nil, err
		}
		o, err := convertTerm(triple.Object)
		if err != nil {
			return nil, err
		}
		subject, okS := s.(rdf.Subject)
		predicate, okP := p.(rdf.Predicate)
		object, okO := o.(rdf.Object)
		if !okS || !okP || !okO {
			return nil, fmt.Errorf("invalid triple: %v", triple)
		}
		graph.Add(Triple{Subj: subject, Pred: predicate, Obj: object})
	}
	return graph, nil
}

func convertTerm(term rdf2go.Term) (Term, error) {
	switch t := term.(type) {
	case *rdf2go.Resource:
		return rdf.NewIRI(t.RawValue())
	case *rdf2go.BlankNode:
		return rdf.NewBlank(strings.TrimPrefix(t.RawValue(), "_:"))
	case *rdf2go.Literal:
		if t.Language != "" {
			return rdf.NewLangLiteral(t.Value, t.Language)
		}
		if t.Datatype != nil {
			datatype, err := rdf.NewIRI(t.Datatype.RawValue())
			if err != nil {
				return nil, err
			}
			return rdf.NewTypedLiteral(t.Value, datatype), nil
		}
		return rdf.NewLiteral(t.Value)
	default:
		return nil, fmt.Errorf("unsupported term: %v", term)
	}
}
