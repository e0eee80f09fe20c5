package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/skos"
	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/store"
	"github.com/GeoNodeUserGroup-DE/geonode-agrovoc-importer/thesaurus"
)

func agrovocCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agrovoc",
		Short: "Load an AGROVOC thesaurus",
		Long: `Loads the concepts of one AGROVOC concept scheme with their SKOS-XL labels.

Example:
  thesaurus agrovoc --file agrovoc_core.nt --name agrovoc
  thesaurus agrovoc --file agrovoc_core.nt --name agrovoc --dry-run --defaultlang de`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scheme, _ := cmd.Flags().GetString("scheme")
			variant, err := thesaurus.Agrovoc(scheme)
			if err != nil {
				return err
			}
			return runLoad(cmd, variant)
		},
	}
	addLoadFlags(cmd)
	cmd.Flags().String("title", "AGROVOC", "Title of the thesaurus, informational only")
	cmd.Flags().String("description", "", "Description used when the concept scheme has none")
	cmd.Flags().String("scheme", skos.AGROVOC_SCHEME, "IRI of the concept scheme to load")
	return cmd
}

func gemetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "gemet",
		Aliases: []string{"load"},
		Short:   "Load a GEMET style SKOS thesaurus",
		Long: `Loads every skos:Concept with its skos:prefLabel and rdfs:label labels.

Example:
  thesaurus gemet --file gemet.rdf --name gemet`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd, thesaurus.Gemet())
		},
	}
	addLoadFlags(cmd)
	return cmd
}

func addLoadFlags(cmd *cobra.Command) {
	cmd.Flags().String("file", "", "Path to the RDF file (required)")
	cmd.Flags().String("name", "", "Identifier of the thesaurus (required)")
	cmd.Flags().BoolP("dry-run", "d", false, "Resolve everything but store nothing")
	cmd.Flags().String("defaultlang", "", "Default language (default: THESAURUS_DEFAULT_LANG, else en)")
	cmd.Flags().Bool("force-lower-case", false, "Lower-case concept IRIs and labels")
	cmd.Flags().String("format", "", "RDF format, guessed from the file extension when empty")
}

// runLoad loads the file named by the command's flags and prints the summary.
func runLoad(cmd *cobra.Command, variant thesaurus.Variant) error {
	file, _ := cmd.Flags().GetString("file")
	name, _ := cmd.Flags().GetString("name")
	if file == "" {
		return thesaurus.ErrMissingFile
	}
	if name == "" {
		return thesaurus.ErrMissingName
	}
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	defaultLang, _ := cmd.Flags().GetString("defaultlang")
	lowerCase, _ := cmd.Flags().GetBool("force-lower-case")
	format, _ := cmd.Flags().GetString("format")
	opts := thesaurus.Options{
		Name:      name,
		DryRun:    dryRun,
		LowerCase: lowerCase,
	}
	if cmd.Flags().Lookup("title") != nil {
		opts.Title, _ = cmd.Flags().GetString("title")
		opts.Description, _ = cmd.Flags().GetString("description")
	}

	env, err := setup()
	if err != nil {
		return err
	}
	defer env.logger.Sync()
	opts.DefaultLang = env.config.DefaultLang
	if defaultLang != "" {
		opts.DefaultLang = defaultLang
	}

	ctx := cmd.Context()
	var sink thesaurus.Sink
	var indexer thesaurus.Indexer
	if !dryRun {
		db, err := env.connect(ctx)
		if err != nil {
			return err
		}
		defer db.Close()
		sink = store.NewThesaurusRepository(db)
		index, err := env.indexer(ctx)
		if err != nil {
			env.logger.Error("Search index unavailable, keywords are not indexed", zap.Error(err))
		} else if index != nil {
			indexer = index
		}
	}

	loader := thesaurus.NewLoader(variant, sink, indexer, nil, env.logger)
	summary, err := loader.LoadFile(ctx, file, format, opts)
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), summary)
}
