package thesaurus

import (
	"context"
	"errors"
)

// ErrDuplicate is returned by a Store when a record violates a uniqueness or integrity
// constraint.
var ErrDuplicate = errors.New("duplicate record")

// Store saves thesaurus records.
type Store interface {
	SaveThesaurus(ctx context.Context, t *Thesaurus) error
	SaveKeyword(ctx context.Context, k *Keyword) error
	SaveKeywordLabel(ctx context.Context, l *KeywordLabel) error
	// Isolate runs fn in a nested failure boundary. When fn returns an error everything it
	// saved is discarded while earlier saves are kept.
	Isolate(ctx context.Context, fn func(Store) error) error
}

// Sink hands out a Store bound to one transaction. The transaction commits when fn
// returns nil and rolls back otherwise.
type Sink interface {
	InTx(ctx context.Context, fn func(Store) error) error
}

// Indexer receives the keywords of a committed load.
type Indexer interface {
	IndexThesaurus(ctx context.Context, t *Thesaurus, keywords []LoadedKeyword) error
}

// discardStore is used for dry runs.
type discardStore struct{}

func (discardStore) SaveThesaurus(context.Context, *Thesaurus) error       { return nil }
func (discardStore) SaveKeyword(context.Context, *Keyword) error           { return nil }
func (discardStore) SaveKeywordLabel(context.Context, *KeywordLabel) error { return nil }

func (s discardStore) Isolate(_ context.Context, fn func(Store) error) error {
	return fn(s)
}

type discardSink struct{}

func (discardSink) InTx(_ context.Context, fn func(Store) error) error {
	return fn(discardStore{})
}
