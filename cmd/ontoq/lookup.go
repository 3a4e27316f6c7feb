package main

import (
	"encoding/json"
	"fmt"

	"pizzagraph/application/queries"
	querybus "pizzagraph/application/queries/bus"
	queryhandlers "pizzagraph/application/queries/handlers"
	"pizzagraph/domain/pizza"

	"github.com/spf13/cobra"
)

var catalogs = map[string]querybus.Query{
	"toppings":  queries.ListToppingsQuery{},
	"countries": queries.ListCountriesQuery{},
	"pizzas":    queries.ListPizzasQuery{},
}

func newLookupCmd(opts *globalOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:       "lookup <toppings|countries|pizzas>",
		Short:     "List the toppings, countries or pizzas of the ontology",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"toppings", "countries", "pizzas"},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := opts.logger()
			defer func() { _ = logger.Sync() }()

			store, vocab, err := opts.load(logger)
			if err != nil {
				return err
			}

			queryBus := querybus.NewQueryBus()
			handler := queryhandlers.NewOntologyHandler(store, vocab, logger)
			if err := queryhandlers.RegisterOntologyQueries(queryBus, handler); err != nil {
				return err
			}

			result, err := queryBus.Ask(cmd.Context(), catalogs[args[0]])
			if err != nil {
				return err
			}
			names, ok := result.(pizza.LocalNames)
			if !ok {
				return fmt.Errorf("unexpected result type %T", result)
			}

			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(names)
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the names as a JSON array")

	return cmd
}
