package main

import (
	"fmt"

	"pizzagraph/domain/pizza"
	"pizzagraph/infrastructure/persistence/ontology"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// globalOptions are the flags shared by every subcommand
type globalOptions struct {
	ontologyPath string
	formatHint   string
	namespace    string
	verbose      bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "ontoq",
		Short: "Query a pizza ontology",
		Long: `ontoq loads an OWL ontology (Turtle, N-Triples or RDF/XML) and runs
SPARQL SELECT queries against it with the same engine the API uses.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.ontologyPath, "ontology", "ontology/pizza.ttl", "Ontology file to load")
	flags.StringVar(&opts.formatHint, "format-hint", "", "Ontology syntax (rdfxml, turtle, ntriples); detected from the extension when empty")
	flags.StringVar(&opts.namespace, "namespace", pizza.DefaultNamespace, "Ontology namespace bound to the pizza: prefix")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log loading and query details to stderr")

	cmd.AddCommand(
		newQueryCmd(opts),
		newStatsCmd(opts),
		newLookupCmd(opts),
	)

	return cmd
}

func (o *globalOptions) logger() *zap.Logger {
	if !o.verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func (o *globalOptions) vocabulary() (pizza.Vocabulary, error) {
	vocab, err := pizza.NewVocabulary(o.namespace)
	if err != nil {
		return pizza.Vocabulary{}, fmt.Errorf("--namespace: %w", err)
	}
	return vocab, nil
}

// load reads the ontology named by the global flags
func (o *globalOptions) load(logger *zap.Logger) (*ontology.Store, pizza.Vocabulary, error) {
	vocab, err := o.vocabulary()
	if err != nil {
		return nil, pizza.Vocabulary{}, err
	}

	format, err := ontology.ParseFormat(o.formatHint)
	if err != nil {
		return nil, pizza.Vocabulary{}, fmt.Errorf("--format-hint: %w", err)
	}

	store, err := ontology.Load(o.ontologyPath, ontology.Options{
		Format:   format,
		Prefixes: vocab.Prefixes(),
		Logger:   logger,
	})
	if err != nil {
		return nil, pizza.Vocabulary{}, err
	}
	return store, vocab, nil
}
