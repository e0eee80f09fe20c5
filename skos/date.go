package skos

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/rdf"
)

var ErrNoDate = errors.New("thesaurus date not found")
var ErrInvalidDate = errors.New("invalid thesaurus date")

// DefaultIssuedDate is stored for schemes without dcterms:issued.
const DefaultIssuedDate = "2024-01-01"

// DatePolicy resolves the date stored with a thesaurus.
type DatePolicy interface {
	Resolve(g *rdf.Graph, scheme rdf.Term) (string, error)
}

// ModifiedDate reads dcterms:modified and normalizes it to an ISO-8601 date-time without
// offset. A missing or unparseable date is an error. Subject overrides the scheme the
// date is read from.
type ModifiedDate struct {
	Subject rdf.Term
}

func (p ModifiedDate) Resolve(g *rdf.Graph, scheme rdf.Term) (string, error) {
	subject := scheme
	if p.Subject != nil {
		subject = p.Subject
	}
	modified, ok := g.LiteralValue(subject, DCTERMS_MODIFIED)
	if !ok {
		return "", fmt.Errorf("%w: no %s on %s", ErrNoDate, DCTERMS_MODIFIED.String(), subject.String())
	}
	return NormalizeDateTime(modified.Text)
}

// IssuedDate uses the dcterms:issued literal as is, or Default.
type IssuedDate struct {
	Default string
}

func (p IssuedDate) Resolve(g *rdf.Graph, scheme rdf.Term) (string, error) {
	if issued, ok := g.LiteralValue(scheme, DCTERMS_ISSUED); ok {
		return issued.Text, nil
	}
	return p.Default, nil
}

var dateTimeLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02Z07:00",
	"2006-01-02",
}

// NormalizeDateTime parses an xsd:dateTime (or xsd:date) lexical value and formats it
// as YYYY-MM-DDTHH:MM:SS[.ffffff]. The timezone is dropped, keeping the local wall time.
func NormalizeDateTime(value string) (string, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateTimeLayouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		formatted := t.Format("2006-01-02T15:04:05")
		if micros := t.Nanosecond() / 1000; micros != 0 {
			formatted += fmt.Sprintf(".%06d", micros)
		}
		return formatted, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDate, value)
}
