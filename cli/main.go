package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/base"
	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/search"
	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/store"
	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/thesaurus"
	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/thesaurussync"
)

var version = "0.1.0"

// main runs command-line utilities for loading thesauri and administration tasks.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "thesaurus",
		Short: "Load SKOS thesauri into the GeoNode keyword tables",
		Long: `Loads AGROVOC and GEMET thesauri from RDF files into the thesaurus,
keyword and keyword label tables used by GeoNode.

Configuration is read from the file named by CONFIG_FILE (default config.yaml)
and from environment variables:

` + base.Usage(),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(agrovocCmd())
	rootCmd.AddCommand(gemetCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(syncCmd())
	rootCmd.AddCommand(reindexCmd())
	return rootCmd
}

// env bundles what every command needs.
type env struct {
	config *base.Config
	logger *zap.Logger
}

func setup() (*env, error) {
	config, err := base.Load()
	if err != nil {
		return nil, fmt.Errorf("failed loading configuration: %w", err)
	}
	logger, err := base.NewLogger(config.LogLevel)
	if err != nil {
		return nil, err
	}
	return &env{config: config, logger: logger}, nil
}

func (e *env) connect(ctx context.Context) (*store.DB, error) {
	return store.NewConnection(ctx, e.config.Database)
}

// indexer returns the search index when Solr is configured and nil otherwise.
func (e *env) indexer(ctx context.Context) (*search.Index, error) {
	if !e.config.Solr.Enabled() {
		return nil, nil
	}
	index := search.NewIndex(e.config.Solr, e.logger)
	if err := index.Init(ctx, false); err != nil {
		return nil, err
	}
	return index, nil
}

func printJSON(w io.Writer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := setup()
			if err != nil {
				return err
			}
			defer env.logger.Sync()
			if env.config.Database.URL == "" {
				return store.ErrNoDatabaseURL
			}
			return store.RunMigrations(env.config.Database.URL, env.logger)
		},
	}
}

func syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Import the thesauri of the sync directory once",
		Long: `Imports every RDF file of the sync directory whose base name is not yet a
stored thesaurus identifier, e.g. local/thesauri/gemet.rdf is stored as "gemet".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")
			env, err := setup()
			if err != nil {
				return err
			}
			defer env.logger.Sync()
			if dir != "" {
				env.config.Sync.Dir = dir
			}

			ctx := cmd.Context()
			db, err := env.connect(ctx)
			if err != nil {
				return err
			}
			defer db.Close()
			repository := store.NewThesaurusRepository(db)
			var indexer thesaurus.Indexer
			if index, err := env.indexer(ctx); err != nil {
				return err
			} else if index != nil {
				indexer = index
			}

			syncer, err := thesaurussync.New(env.config.Sync, env.config.DefaultLang, repository, repository, indexer, nil, env.logger)
			if err != nil {
				return err
			}
			result, err := syncer.Run(ctx)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
	cmd.Flags().String("dir", "", "Directory to import from (default: sync.dir of the configuration)")
	return cmd
}

func reindexCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reindex [identifier]",
		Short: "Rebuild the search index from the stored thesauri",
		Long: `Pushes the keywords of a stored thesaurus into the Solr collection.
Without an identifier all stored thesauri are reindexed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			recreate, _ := cmd.Flags().GetBool("recreate")
			env, err := setup()
			if err != nil {
				return err
			}
			defer env.logger.Sync()
			if !env.config.Solr.Enabled() {
				return fmt.Errorf("search index is not configured (SOLR_ENDPOINT)")
			}

			ctx := cmd.Context()
			db, err := env.connect(ctx)
			if err != nil {
				return err
			}
			defer db.Close()
			repository := store.NewThesaurusRepository(db)
			index := search.NewIndex(env.config.Solr, env.logger)
			if err := index.Init(ctx, recreate); err != nil {
				return err
			}

			identifiers := args
			if len(identifiers) == 0 {
				thesauri, err := repository.ListThesauri(ctx)
				if err != nil {
					return err
				}
				for _, t := range thesauri {
					identifiers = append(identifiers, t.Identifier)
				}
			}
			for _, identifier := range identifiers {
				if err := index.Reindex(ctx, repository, identifier); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reindexed %d thesauri\n", len(identifiers))
			return nil
		},
	}
	cmd.Flags().Bool("recreate", false, "Delete and recreate the collection first")
	return cmd
}
