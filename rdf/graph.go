package rdf

import (
	"errors"
	"fmt"

	"github.com/knakk/rdf"
)

type Term = rdf.Term
type IRI = rdf.IRI
type Triple = rdf.Triple

var ErrNoMatch = errors.New("no matching subject")
var ErrAmbiguous = errors.New("more than one matching subject")

// NewIRI validates and creates an IRI term.
func NewIRI(iri string) (IRI, error) {
	return rdf.NewIRI(iri)
}

// MustIRI creates an IRI term and panics on invalid input. Intended for vocabulary
// declarations.
func MustIRI(iri string) IRI {
	term, err := rdf.NewIRI(iri)
	if err != nil {
		panic(fmt.Errorf("invalid IRI %q: %w", iri, err))
	}
	return term
}

// Graph is an in-memory set of triples. Triples keep the order in which they were added
// so that every query result is deterministic.
type Graph struct {
	triples   []Triple
	seen      map[string]struct{}
	bySubject map[string][]int
	byPredObj map[string][]int
}

func NewGraph() *Graph {
	return &Graph{
		seen:      make(map[string]struct{}),
		bySubject: make(map[string][]int),
		byPredObj: make(map[string][]int),
	}
}

// Key returns the N-Triples serialization of a term, which uniquely identifies it.
func Key(term Term) string {
	return term.Serialize(rdf.NTriples)
}

func predObjKey(p Term, o Term) string {
	return Key(p) + " " + Key(o)
}

// Add inserts a triple. Duplicate triples are ignored.
func (g *Graph) Add(t Triple) {
	key := Key(t.Subj) + " " + predObjKey(t.Pred, t.Obj)
	if _, ok := g.seen[key]; ok {
		return
	}
	g.seen[key] = struct{}{}
	idx := len(g.triples)
	g.triples = append(g.triples, t)
	g.bySubject[Key(t.Subj)] = append(g.bySubject[Key(t.Subj)], idx)
	g.byPredObj[predObjKey(t.Pred, t.Obj)] = append(g.byPredObj[predObjKey(t.Pred, t.Obj)], idx)
}

// Len returns the number of triples in the graph.
func (g *Graph) Len() int {
	return len(g.triples)
}

// Objects returns the objects of all triples with the given subject and predicate.
func (g *Graph) Objects(subject Term, predicate Term) []Term {
	var result []Term
	predicateKey := Key(predicate)
	for _, idx := range g.bySubject[Key(subject)] {
		if Key(g.triples[idx].Pred) == predicateKey {
			result = append(result, g.triples[idx].Obj)
		}
	}
	return result
}

// Literals returns the literal objects of the given subject and predicate.
// Non-literal objects are skipped.
func (g *Graph) Literals(subject Term, predicate Term) []Literal {
	var result []Literal
	for _, object := range g.Objects(subject, predicate) {
		if literal, ok := AsLiteral(object); ok {
			result = append(result, literal)
		}
	}
	return result
}

// LiteralObjects returns every literal attached to the subject, regardless of predicate.
func (g *Graph) LiteralObjects(subject Term) []Literal {
	var result []Literal
	for _, idx := range g.bySubject[Key(subject)] {
		if literal, ok := AsLiteral(g.triples[idx].Obj); ok {
			result = append(result, literal)
		}
	}
	return result
}

// Subjects returns the distinct subjects of triples with the given predicate and object.
func (g *Graph) Subjects(predicate Term, object Term) []Term {
	var result []Term
	for _, idx := range g.byPredObj[predObjKey(predicate, object)] {
		result = append(result, g.triples[idx].Subj)
	}
	return result
}

// Value returns the first object for subject and predicate.
// It returns false when there is none.
func (g *Graph) Value(subject Term, predicate Term) (Term, bool) {
	predicateKey := Key(predicate)
	for _, idx := range g.bySubject[Key(subject)] {
		if Key(g.triples[idx].Pred) == predicateKey {
			return g.triples[idx].Obj, true
		}
	}
	return nil, false
}

// LiteralValue returns the first literal object for subject and predicate.
func (g *Graph) LiteralValue(subject Term, predicate Term) (Literal, bool) {
	for _, object := range g.Objects(subject, predicate) {
		if literal, ok := AsLiteral(object); ok {
			return literal, true
		}
	}
	return Literal{}, false
}

// UniqueSubject finds the single subject of a predicate/object pair.
// It returns ErrNoMatch when there is none and ErrAmbiguous when there are several.
func (g *Graph) UniqueSubject(predicate Term, object Term) (Term, error) {
	subjects := g.Subjects(predicate, object)
	switch len(subjects) {
	case 0:
		return nil, ErrNoMatch
	case 1:
		return subjects[0], nil
	default:
		return nil, fmt.Errorf("%w: found %d", ErrAmbiguous, len(subjects))
	}
}
