package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"pizzagraph/pkg/rdf"
	"pizzagraph/pkg/sparql"

	"github.com/spf13/cobra"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

func newQueryCmd(opts *globalOptions) *cobra.Command {
	var (
		binds  []string
		format string
	)

	cmd := &cobra.Command{
		Use:   "query <sparql>",
		Short: "Run a SPARQL SELECT query",
		Long: `Run a SPARQL SELECT query against the ontology. The rdf, rdfs, owl, xsd
and pizza prefixes are predeclared.

--bind seeds a variable before evaluation and accepts <iri>, prefix:local,
a quoted literal or a bare local name in the ontology namespace.`,
		Example: `  ontoq query 'SELECT ?pizza WHERE { ?pizza rdfs:subClassOf pizza:NamedPizza }'
  ontoq query 'SELECT ?t WHERE { ?t rdfs:subClassOf [ owl:someValuesFrom $s ] }' --bind s=Hot`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatTable && format != formatJSON {
				return fmt.Errorf("--format must be %s or %s", formatTable, formatJSON)
			}

			logger := opts.logger()
			defer func() { _ = logger.Sync() }()

			store, vocab, err := opts.load(logger)
			if err != nil {
				return err
			}

			bindings, err := parseBindings(binds, vocab)
			if err != nil {
				return err
			}

			res, err := store.Query(cmd.Context(), args[0], bindings)
			if err != nil {
				return err
			}

			if format == formatJSON {
				return writeResultsJSON(cmd.OutOrStdout(), res)
			}
			return writeResultsTable(cmd.OutOrStdout(), res, store.Prefixes())
		},
	}

	cmd.Flags().StringArrayVar(&binds, "bind", nil, "Bind a variable before evaluation (var=term, repeatable)")
	cmd.Flags().StringVarP(&format, "format", "f", formatTable, "Output format (table, json)")

	return cmd
}

func writeResultsTable(w io.Writer, res *sparql.Results, prefixes rdf.Prefixes) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(res.Variables, "\t"))

	cells := make([]string, len(res.Variables))
	for _, row := range res.Rows {
		for i, v := range res.Variables {
			term, ok := row[v]
			if !ok || term.IsZero() {
				cells[i] = ""
				continue
			}
			cells[i] = compactTerm(term, prefixes)
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "(%d rows)\n", res.Len())
	return err
}

type jsonResults struct {
	Variables []string            `json:"variables"`
	Rows      []map[string]string `json:"rows"`
}

func writeResultsJSON(w io.Writer, res *sparql.Results) error {
	out := jsonResults{
		Variables: res.Variables,
		Rows:      make([]map[string]string, 0, res.Len()),
	}
	for _, row := range res.Rows {
		r := make(map[string]string, len(res.Variables))
		for _, v := range res.Variables {
			if term, ok := row[v]; ok && !term.IsZero() {
				r[v] = term.String()
			}
		}
		out.Rows = append(out.Rows, r)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
