package main

import (
	"context"
	"fmt"
	"log"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/api"
	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/base"
	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/search"
	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/store"
	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/thesaurus"
	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/thesaurussync"
)

func main() {
	config, err := base.Load()
	if err != nil {
		log.Fatal(err)
	}
	logger, err := base.NewLogger(config.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if err := run(context.Background(), config, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, config *base.Config, logger *zap.Logger) error {
	db, err := store.NewConnection(ctx, config.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := store.RunMigrations(config.Database.URL, logger); err != nil {
		return err
	}
	repository := store.NewThesaurusRepository(db)

	var indexer thesaurus.Indexer
	if config.Solr.Enabled() {
		index := search.NewIndex(config.Solr, logger)
		if err := index.Init(ctx, false); err != nil {
			return fmt.Errorf("failed initializing search index: %w", err)
		}
		indexer = index
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := thesaurus.NewMetrics()
	if err := metrics.Register(registry); err != nil {
		return err
	}

	syncer, err := thesaurussync.New(config.Sync, config.DefaultLang, repository, repository, indexer, metrics, logger)
	if err != nil {
		return err
	}
	scheduler, err := startSync(syncer, config.Sync.Schedule, logger)
	if err != nil {
		return err
	}
	if scheduler != nil {
		defer scheduler.Stop()
	}

	server := api.NewServer(api.Dependencies{
		Config:     config,
		Repository: repository,
		Sink:       repository,
		Indexer:    indexer,
		Metrics:    metrics,
		Gatherer:   registry,
		Logger:     logger,
	})
	logger.Info("starting server", zap.Int("port", config.Server.Port))
	return server.Router.Run(fmt.Sprintf(":%d", config.Server.Port))
}
