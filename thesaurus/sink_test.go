package thesaurus

import (
	"context"
	"fmt"

	"golang.org/x/exp/slices"
)

// memoryRows mirrors the uniqueness constraints of the database schema.
type memoryRows struct {
	thesauri []Thesaurus
	keywords []Keyword
	labels   []KeywordLabel
}

func (r memoryRows) clone() memoryRows {
	return memoryRows{
		thesauri: slices.Clone(r.thesauri),
		keywords: slices.Clone(r.keywords),
		labels:   slices.Clone(r.labels),
	}
}

// memorySink is a Sink keeping committed rows in memory. failOn, if set, is called
// before every save and may return an error to inject.
type memorySink struct {
	rows   memoryRows
	failOn func(record any) error
	txs    int
}

func (s *memorySink) InTx(_ context.Context, fn func(Store) error) error {
	s.txs++
	working := s.rows.clone()
	if err := fn(&memoryStore{rows: &working, failOn: s.failOn}); err != nil {
		return err
	}
	s.rows = working
	return nil
}

type memoryStore struct {
	rows   *memoryRows
	failOn func(record any) error
}

func (s *memoryStore) inject(record any) error {
	if s.failOn == nil {
		return nil
	}
	return s.failOn(record)
}

func (s *memoryStore) SaveThesaurus(_ context.Context, t *Thesaurus) error {
	if err := s.inject(t); err != nil {
		return err
	}
	for _, existing := range s.rows.thesauri {
		if existing.Identifier == t.Identifier {
			return fmt.Errorf("%w: thesaurus identifier %q", ErrDuplicate, t.Identifier)
		}
	}
	s.rows.thesauri = append(s.rows.thesauri, *t)
	return nil
}

func (s *memoryStore) SaveKeyword(_ context.Context, k *Keyword) error {
	if err := s.inject(k); err != nil {
		return err
	}
	for _, existing := range s.rows.keywords {
		if existing.ThesaurusID == k.ThesaurusID && existing.AltLabel == k.AltLabel {
			return fmt.Errorf("%w: keyword alt_label %q", ErrDuplicate, k.AltLabel)
		}
	}
	s.rows.keywords = append(s.rows.keywords, *k)
	return nil
}

func (s *memoryStore) SaveKeywordLabel(_ context.Context, l *KeywordLabel) error {
	if err := s.inject(l); err != nil {
		return err
	}
	for _, existing := range s.rows.labels {
		if existing.KeywordID == l.KeywordID && existing.Lang == l.Lang {
			return fmt.Errorf("%w: label lang %q", ErrDuplicate, l.Lang)
		}
	}
	s.rows.labels = append(s.rows.labels, *l)
	return nil
}

func (s *memoryStore) Isolate(_ context.Context, fn func(Store) error) error {
	savepoint := s.rows.clone()
	if err := fn(s); err != nil {
		*s.rows = savepoint
		return err
	}
	return nil
}

type recordingIndexer struct {
	thesaurus *Thesaurus
	keywords  []LoadedKeyword
	err       error
}

func (i *recordingIndexer) IndexThesaurus(_ context.Context, t *Thesaurus, keywords []LoadedKeyword) error {
	i.thesaurus = t
	i.keywords = keywords
	return i.err
}
