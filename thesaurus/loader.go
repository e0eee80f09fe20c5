package thesaurus

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/rdf"
	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/skos"
)

var (
	ErrMissingFile = errors.New("missing thesaurus rdf file path (--file)")
	ErrMissingName = errors.New("missing identifier name for the thesaurus (--name)")
	ErrNoTitle     = errors.New("concept scheme has no title literal")
	ErrNoSink      = errors.New("no persistence sink configured")
)

// Outcome is the result of loading one concept or label.
type Outcome int

const (
	OutcomeStored Outcome = iota
	OutcomeSkipped
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeStored:
		return "stored"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Options of a single load.
type Options struct {
	// Name is the unique thesaurus identifier in the store.
	Name        string
	DefaultLang string
	DryRun      bool
	LowerCase   bool
	// Title is only reported; the stored title is resolved from the graph.
	Title string
	// Description is used when the scheme has no description of its own.
	Description string
}

// Summary counts what a load did. In a dry run the counts describe what would have been
// stored.
type Summary struct {
	Identifier      string `json:"identifier"`
	Title           string `json:"title"`
	DryRun          bool   `json:"dryRun"`
	Concepts        int    `json:"concepts"`
	Keywords        int    `json:"keywords"`
	KeywordsSkipped int    `json:"keywordsSkipped"`
	KeywordsFailed  int    `json:"keywordsFailed"`
	Labels          int    `json:"labels"`
	LabelsDropped   int    `json:"labelsDropped"`
	LabelsFailed    int    `json:"labelsFailed"`
}

// Loader loads RDF thesauri into a Sink.
type Loader struct {
	variant Variant
	sink    Sink
	indexer Indexer
	metrics *Metrics
	logger  *zap.Logger
}

// NewLoader creates a loader. sink may be nil for loaders that only do dry runs,
// indexer and metrics are optional.
func NewLoader(variant Variant, sink Sink, indexer Indexer, metrics *Metrics, logger *zap.Logger) *Loader {
	return &Loader{
		variant: variant,
		sink:    sink,
		indexer: indexer,
		metrics: metrics,
		logger:  logger.With(zap.String("variant", variant.Name)),
	}
}

// LoadFile parses an RDF file and loads it. An empty format is guessed from the file
// extension.
func (l *Loader) LoadFile(ctx context.Context, path string, format string, opts Options) (*Summary, error) {
	if path == "" {
		return nil, ErrMissingFile
	}
	if opts.Name == "" {
		return nil, ErrMissingName
	}
	l.logger.Info("Starting to parse file", zap.String("file", path))
	g, err := rdf.ParseFile(path, format)
	if err != nil {
		return nil, fmt.Errorf("failed parsing %s: %w", path, err)
	}
	l.logger.Info("Successfully parsed file", zap.String("file", path), zap.Int("triples", g.Len()))
	return l.Load(ctx, g, opts)
}

// LoadReader parses serialized RDF and loads it. name is only used to guess the format
// when format is empty, e.g. the file name of an upload.
func (l *Loader) LoadReader(ctx context.Context, reader io.Reader, name string, format string, opts Options) (*Summary, error) {
	if opts.Name == "" {
		return nil, ErrMissingName
	}
	resolved, err := rdf.ResolveFormat(format, name)
	if err != nil {
		return nil, err
	}
	l.logger.Info("Starting to parse upload", zap.String("name", name), zap.String("format", string(resolved)))
	g, err := rdf.Parse(reader, resolved)
	if err != nil {
		return nil, fmt.Errorf("failed parsing %s: %w", name, err)
	}
	l.logger.Info("Successfully parsed upload", zap.String("name", name), zap.Int("triples", g.Len()))
	return l.Load(ctx, g, opts)
}

// Load resolves the thesaurus and its keywords from g and stores them in one
// transaction. Concepts without a label in the default language and records rejected as
// duplicates are logged and counted, everything else aborts the load.
func (l *Loader) Load(ctx context.Context, g *rdf.Graph, opts Options) (summary *Summary, err error) {
	defer func() {
		l.metrics.observeRun(l.variant.Name, summary, err)
	}()
	if opts.Name == "" {
		return nil, ErrMissingName
	}
	opts.DefaultLang = skos.NormalizeLanguage(opts.DefaultLang)
	l.logger.Info("Using default language", zap.String("defaultlang", opts.DefaultLang), zap.Bool("dry_run", opts.DryRun))

	thesaurus, scheme, err := l.resolveThesaurus(g, opts)
	if err != nil {
		return nil, err
	}

	sink := l.sink
	if opts.DryRun {
		sink = discardSink{}
	} else if sink == nil {
		return nil, ErrNoSink
	}

	summary = &Summary{Identifier: thesaurus.Identifier, Title: thesaurus.Title, DryRun: opts.DryRun}
	var loaded []LoadedKeyword
	err = sink.InTx(ctx, func(store Store) error {
		if err := store.SaveThesaurus(ctx, thesaurus); err != nil {
			return fmt.Errorf("failed saving thesaurus %q: %w", thesaurus.Identifier, err)
		}
		l.logger.Info("Thesaurus resolved",
			zap.String("identifier", thesaurus.Identifier),
			zap.String("title", thesaurus.Title),
			zap.String("description", thesaurus.Description),
			zap.String("date", thesaurus.Date))

		for _, concept := range l.variant.Concepts(g, scheme) {
			if err := ctx.Err(); err != nil {
				return err
			}
			keyword, err := l.loadConcept(ctx, store, g, thesaurus, concept, opts, summary)
			if err != nil {
				return err
			}
			if keyword != nil {
				loaded = append(loaded, *keyword)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !opts.DryRun && l.indexer != nil {
		if err := l.indexer.IndexThesaurus(ctx, thesaurus, loaded); err != nil {
			l.logger.Error("Failed indexing thesaurus", zap.String("identifier", thesaurus.Identifier), zap.Error(err))
		}
	}

	l.logger.Info("Thesaurus loaded",
		zap.String("identifier", summary.Identifier),
		zap.Int("concepts", summary.Concepts),
		zap.Int("keywords", summary.Keywords),
		zap.Int("keywords_skipped", summary.KeywordsSkipped),
		zap.Int("keywords_failed", summary.KeywordsFailed),
		zap.Int("labels", summary.Labels),
		zap.Int("labels_dropped", summary.LabelsDropped),
		zap.Int("labels_failed", summary.LabelsFailed))
	return summary, nil
}

// resolveThesaurus builds the thesaurus record from the graph's concept scheme.
func (l *Loader) resolveThesaurus(g *rdf.Graph, opts Options) (*Thesaurus, rdf.Term, error) {
	scheme, err := skos.FindConceptScheme(g)
	if err != nil {
		return nil, nil, err
	}
	title, ok := skos.SchemeTitle(g, scheme, opts.DefaultLang)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoTitle, scheme.String())
	}
	description, ok := skos.SchemeDescription(g, scheme)
	if !ok {
		description = title
		if opts.Description != "" {
			description = opts.Description
		}
	}
	date, err := l.variant.Date.Resolve(g, scheme)
	if err != nil {
		return nil, nil, err
	}
	if opts.Title != "" && opts.Title != title {
		l.logger.Info("Using title from concept scheme", zap.String("requested_title", opts.Title), zap.String("title", title))
	}
	return &Thesaurus{
		ID:          uuid.New(),
		Identifier:  opts.Name,
		Title:       title,
		Description: description,
		About:       scheme.String(),
		Date:        date,
	}, scheme, nil
}

// loadConcept stores one concept and its labels. The keyword and its labels share one
// failure boundary and every label has a nested one of its own.
// It returns the stored keyword, nil when the concept was skipped or rejected, and an
// error only for failures that must abort the load.
func (l *Loader) loadConcept(ctx context.Context, store Store, g *rdf.Graph, thesaurus *Thesaurus, concept rdf.Term, opts Options, summary *Summary) (*LoadedKeyword, error) {
	summary.Concepts++
	about := skos.Fold(concept.String(), opts.LowerCase)
	altLabel, ok := l.variant.Resolver.CanonicalLabel(g, concept, opts.DefaultLang)
	if !ok {
		summary.KeywordsSkipped++
		l.logger.Error("Could not find preflabel for concept in default language, skipping entry",
			zap.String("concept", concept.String()),
			zap.String("defaultlang", opts.DefaultLang))
		return nil, nil
	}
	altLabel = skos.Fold(altLabel, opts.LowerCase)
	l.logger.Info("Concept", zap.String("about", about), zap.String("alt_label", altLabel))

	labels, dropped := skos.FilterSupported(l.variant.Resolver.Labels(g, concept), opts.LowerCase)
	summary.LabelsDropped += dropped

	keyword := &LoadedKeyword{Keyword: Keyword{
		ID:          uuid.New(),
		ThesaurusID: thesaurus.ID,
		About:       about,
		AltLabel:    altLabel,
	}}
	labelsFailed := 0
	err := store.Isolate(ctx, func(store Store) error {
		if err := store.SaveKeyword(ctx, &keyword.Keyword); err != nil {
			return err
		}
		for _, label := range labels {
			keywordLabel := KeywordLabel{
				ID:        uuid.New(),
				KeywordID: keyword.ID,
				Lang:      label.Lang,
				Label:     label.Label,
			}
			err := store.Isolate(ctx, func(store Store) error {
				return store.SaveKeywordLabel(ctx, &keywordLabel)
			})
			if errors.Is(err, ErrDuplicate) {
				labelsFailed++
				l.logger.Error("Could not add label, skipping entry",
					zap.String("about", about),
					zap.String("label", label.Label),
					zap.String("lang", label.Lang),
					zap.Error(err))
				continue
			}
			if err != nil {
				return err
			}
			l.logger.Info("Label", zap.String("lang", label.Lang), zap.String("label", label.Label))
			keyword.Labels = append(keyword.Labels, keywordLabel)
		}
		return nil
	})
	if errors.Is(err, ErrDuplicate) {
		summary.KeywordsFailed++
		l.logger.Error("Could not save keyword, duplicate",
			zap.String("about", about),
			zap.String("alt_label", altLabel),
			zap.Error(err))
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed saving keyword %q: %w", about, err)
	}
	summary.Keywords++
	summary.Labels += len(keyword.Labels)
	summary.LabelsFailed += labelsFailed
	l.logger.Info("Set alt_label", zap.String("alt_label", altLabel), zap.Int("labels", len(keyword.Labels)))
	return keyword, nil
}
