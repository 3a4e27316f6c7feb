package sparql

import (
	"strconv"
	"strings"

	"pizzagraph/pkg/rdf"
)

// Results holds the projected rows of a SELECT query
type Results struct {
	Variables []string
	Rows      []Solution
}

// Len returns the number of rows
func (r *Results) Len() int {
	return len(r.Rows)
}

// Column returns the terms bound to name, one per row. Rows where the
// variable is unbound contribute the zero term.
func (r *Results) Column(name string) []rdf.Term {
	out := make([]rdf.Term, 0, len(r.Rows))
	for _, row := range r.Rows {
		out = append(out, row[name])
	}
	return out
}

// compareTerms orders unbound < blank < IRI < literal; numeric literals
// compare by value
func compareTerms(a, b rdf.Term) int {
	if a.Kind != b.Kind {
		return kindRank(a.Kind) - kindRank(b.Kind)
	}
	if a.Kind == rdf.KindLiteral {
		af, aerr := strconv.ParseFloat(a.Value, 64)
		bf, berr := strconv.ParseFloat(b.Value, 64)
		if aerr == nil && berr == nil && isNumeric(a.Datatype) && isNumeric(b.Datatype) {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(a.Value, b.Value)
}

func kindRank(k rdf.TermKind) int {
	switch k {
	case rdf.KindBlank:
		return 1
	case rdf.KindIRI:
		return 2
	case rdf.KindLiteral:
		return 3
	default:
		return 0
	}
}

func isNumeric(datatype string) bool {
	switch datatype {
	case rdf.XSDInteger, rdf.XSDDecimal, rdf.XSDNamespace + "double", rdf.XSDNamespace + "float",
		rdf.XSDNamespace + "int", rdf.XSDNamespace + "long":
		return true
	}
	return false
}
