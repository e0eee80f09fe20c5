package search

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/thesaurus"
)

// KeywordSource reads loaded thesauri back for reindexing.
type KeywordSource interface {
	GetThesaurus(ctx context.Context, identifier string) (*thesaurus.Thesaurus, error)
	Keywords(ctx context.Context, identifier string) ([]thesaurus.LoadedKeyword, error)
}

// IndexThesaurus replaces the documents of a thesaurus with its keywords.
func (i *Index) IndexThesaurus(ctx context.Context, t *thesaurus.Thesaurus, keywords []thesaurus.LoadedKeyword) error {
	if err := i.DeindexThesaurus(ctx, t.Identifier); err != nil {
		return err
	}
	if len(keywords) == 0 {
		return nil
	}
	docs := make([]document, 0, len(keywords))
	for _, keyword := range keywords {
		docs = append(docs, keywordDocument(t, keyword))
	}
	if err := i.update(ctx, docs); err != nil {
		return fmt.Errorf("failed indexing thesaurus %s: %w", t.Identifier, err)
	}
	i.logger.Info("Indexed thesaurus", zap.String("identifier", t.Identifier), zap.Int("keywords", len(docs)))
	return nil
}

// DeindexThesaurus removes all documents of a thesaurus.
func (i *Index) DeindexThesaurus(ctx context.Context, identifier string) error {
	query := "thesaurus:" + strconv.Quote(identifier)
	if err := i.update(ctx, map[string]any{"delete": map[string]any{"query": query}}); err != nil {
		return fmt.Errorf("failed deindexing thesaurus %s: %w", identifier, err)
	}
	return nil
}

// Reindex rebuilds the documents of one thesaurus from source.
func (i *Index) Reindex(ctx context.Context, source KeywordSource, identifier string) error {
	i.logger.Info("Reindexing...", zap.String("identifier", identifier))
	start := time.Now()
	t, err := source.GetThesaurus(ctx, identifier)
	if err != nil {
		return err
	}
	keywords, err := source.Keywords(ctx, identifier)
	if err != nil {
		return err
	}
	if err := i.IndexThesaurus(ctx, t, keywords); err != nil {
		return err
	}
	i.logger.Info("Reindexing finished", zap.String("identifier", identifier), zap.Int("keywords", len(keywords)), zap.Duration("duration", time.Since(start)))
	return nil
}
