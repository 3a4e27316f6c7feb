// Package sparql parses and evaluates a SELECT subset of SPARQL 1.1 over an
// in-memory graph. Request values are supplied as Bindings and never
// spliced into query text.
package sparql

import (
	"fmt"
	"strings"

	"pizzagraph/pkg/rdf"
)

// Node is a pattern position: either a variable or a concrete term
type Node struct {
	Var  string
	Term rdf.Term
}

// IsVar reports whether the node is a variable
func (n Node) IsVar() bool {
	return n.Var != ""
}

func (n Node) String() string {
	if n.IsVar() {
		return "?" + n.Var
	}
	return n.Term.String()
}

// PathModifier marks a predicate as a transitive path
type PathModifier uint8

const (
	// PathNone matches a single edge
	PathNone PathModifier = iota
	// PathOneOrMore matches one or more edges (iri+)
	PathOneOrMore
	// PathZeroOrMore matches zero or more edges (iri*)
	PathZeroOrMore
)

// Predicate is the verb of a triple pattern
type Predicate struct {
	Node
	Modifier PathModifier
	Inverse  bool
}

func (p Predicate) String() string {
	s := p.Node.String()
	if p.Inverse {
		s = "^" + s
	}
	switch p.Modifier {
	case PathOneOrMore:
		s += "+"
	case PathZeroOrMore:
		s += "*"
	}
	return s
}

// Pattern is a triple pattern
type Pattern struct {
	Subject   Node
	Predicate Predicate
	Object    Node
}

func (p Pattern) String() string {
	return p.Subject.String() + " " + p.Predicate.String() + " " + p.Object.String()
}

// Filter is an equality constraint between two nodes
type Filter struct {
	Left    Node
	Right   Node
	Negated bool
}

func (f Filter) String() string {
	op := "="
	if f.Negated {
		op = "!="
	}
	return fmt.Sprintf("FILTER(%s %s %s)", f.Left, op, f.Right)
}

// OrderKey sorts solutions by one variable
type OrderKey struct {
	Var        string
	Descending bool
}

// Query is a parsed SELECT query. It is immutable after parsing and safe to
// evaluate concurrently.
type Query struct {
	Prefixes rdf.Prefixes
	Distinct bool
	// Variables is the projection; for SELECT * it lists every named
	// variable in order of first appearance.
	Variables []string
	Patterns  []Pattern
	Filters   []Filter
	OrderBy   []OrderKey
	// Limit is negative when absent
	Limit  int
	Offset int
}

// Mentions reports whether the variable appears anywhere in the query
func (q *Query) Mentions(name string) bool {
	for _, v := range q.allVariables() {
		if v == name {
			return true
		}
	}
	return false
}

// allVariables lists every variable in patterns and filters, including
// blank node variables, in order of first appearance
func (q *Query) allVariables() []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(n Node) {
		if !n.IsVar() {
			return
		}
		if _, ok := seen[n.Var]; ok {
			return
		}
		seen[n.Var] = struct{}{}
		out = append(out, n.Var)
	}
	for _, p := range q.Patterns {
		add(p.Subject)
		add(p.Predicate.Node)
		add(p.Object)
	}
	for _, f := range q.Filters {
		add(f.Left)
		add(f.Right)
	}
	return out
}

// String renders a normalised form of the query, mainly for logs
func (q *Query) String() string {
	var sb strings.Builder
	sb.WriteString("SELECT ")
	if q.Distinct {
		sb.WriteString("DISTINCT ")
	}
	for i, v := range q.Variables {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString("?" + v)
	}
	sb.WriteString(" WHERE { ")
	for _, p := range q.Patterns {
		sb.WriteString(p.String())
		sb.WriteString(" . ")
	}
	for _, f := range q.Filters {
		sb.WriteString(f.String())
		sb.WriteByte(' ')
	}
	sb.WriteString("}")
	for i, k := range q.OrderBy {
		if i == 0 {
			sb.WriteString(" ORDER BY")
		}
		if k.Descending {
			sb.WriteString(" DESC(?" + k.Var + ")")
		} else {
			sb.WriteString(" ?" + k.Var)
		}
	}
	if q.Limit >= 0 {
		fmt.Fprintf(&sb, " LIMIT %d", q.Limit)
	}
	if q.Offset > 0 {
		fmt.Fprintf(&sb, " OFFSET %d", q.Offset)
	}
	return sb.String()
}

// isInternal reports whether a variable was introduced for a blank node
func isInternal(name string) bool {
	return strings.HasPrefix(name, anonPrefix) || strings.HasPrefix(name, labelPrefix)
}

const (
	anonPrefix  = "#anon"
	labelPrefix = "_:"
)
