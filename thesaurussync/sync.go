package thesaurussync

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/base"
	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/rdf"
	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/thesaurus"
)

// ErrAlreadyRunning is returned by Run while another synchronization holds the lock.
var ErrAlreadyRunning = errors.New("thesaurus synchronization already running")

// Catalog tells which thesauri are already stored.
type Catalog interface {
	ThesaurusExists(ctx context.Context, identifier string) (bool, error)
}

// Result lists what one synchronization did with the files of the sync directory.
type Result struct {
	Imported []string             `json:"imported"`
	Existing []string             `json:"existing"`
	Failed   map[string]string    `json:"failed"`
	Loaded   []*thesaurus.Summary `json:"-"`
}

// Syncer imports RDF files of a local directory under their base name.
type Syncer struct {
	dir         string
	defaultLang string
	lowerCase   bool
	catalog     Catalog
	loader      *thesaurus.Loader
	logger      *zap.Logger
	lock        sync.Mutex
}

func New(cfg base.SyncConfig, defaultLang string, catalog Catalog, sink thesaurus.Sink, indexer thesaurus.Indexer, metrics *thesaurus.Metrics, logger *zap.Logger) (*Syncer, error) {
	variant, err := thesaurus.VariantByName(cfg.Variant, cfg.Scheme)
	if err != nil {
		return nil, err
	}
	logger = logger.Named("sync")
	return &Syncer{
		dir:         cfg.Dir,
		defaultLang: defaultLang,
		lowerCase:   cfg.LowerCase,
		catalog:     catalog,
		loader:      thesaurus.NewLoader(variant, sink, indexer, metrics, logger),
		logger:      logger,
	}, nil
}

// Synchronize runs one synchronization and logs its outcome. It is meant for the cron
// scheduler and does nothing while another run is active.
func (s *Syncer) Synchronize() {
	result, err := s.Run(context.Background())
	switch {
	case errors.Is(err, ErrAlreadyRunning):
		s.logger.Warn("Skipping thesaurus synchronization: already running")
	case err != nil:
		s.logger.Error("Failed syncing thesauri", zap.Error(err))
	default:
		s.logger.Info("Synced thesauri",
			zap.Strings("imported", result.Imported),
			zap.Int("existing", len(result.Existing)),
			zap.Int("failed", len(result.Failed)))
	}
}

// Run imports every RDF file of the sync directory whose identifier is not yet stored.
// A file that fails to load is recorded in the result and does not stop the others.
func (s *Syncer) Run(ctx context.Context) (*Result, error) {
	if !s.lock.TryLock() {
		return nil, ErrAlreadyRunning
	}
	defer s.lock.Unlock()

	s.logger.Info("syncing thesauri...", zap.String("dir", s.dir))
	start := time.Now()
	files, err := s.candidates()
	if err != nil {
		return nil, err
	}
	result := &Result{Failed: make(map[string]string)}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		identifier := Identifier(file)
		exists, err := s.catalog.ThesaurusExists(ctx, identifier)
		if err != nil {
			return result, err
		}
		if exists {
			s.logger.Debug("thesaurus already stored", zap.String("identifier", identifier))
			result.Existing = append(result.Existing, identifier)
			continue
		}
		summary, err := s.loader.LoadFile(ctx, filepath.Join(s.dir, file), "", thesaurus.Options{
			Name:        identifier,
			DefaultLang: s.defaultLang,
			LowerCase:   s.lowerCase,
		})
		if err != nil {
			s.logger.Error("failed importing thesaurus file", zap.String("file", file), zap.Error(err))
			result.Failed[identifier] = err.Error()
			continue
		}
		result.Imported = append(result.Imported, identifier)
		result.Loaded = append(result.Loaded, summary)
	}
	s.logger.Info("finished syncing thesauri", zap.Duration("took", time.Since(start)))
	return result, nil
}

// candidates returns the names of the RDF files in the sync directory in name order.
// A missing directory has no candidates.
func (s *Syncer) candidates() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, os.ErrNotExist) {
		s.logger.Warn("sync directory does not exist", zap.String("dir", s.dir))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if _, err := rdf.GuessFormat(entry.Name()); err != nil {
			s.logger.Debug("ignoring non RDF file", zap.String("file", entry.Name()))
			continue
		}
		files = append(files, entry.Name())
	}
	return files, nil
}

// Identifier derives the thesaurus identifier from a file name, e.g. gemet.rdf -> gemet.
func Identifier(file string) string {
	name := filepath.Base(file)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
