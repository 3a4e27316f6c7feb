package main

import (
	"fmt"
	"strconv"
	"strings"

	"pizzagraph/domain/pizza"
	"pizzagraph/pkg/rdf"
	"pizzagraph/pkg/sparql"
	"pizzagraph/pkg/utils"
)

// parseBindings turns repeated --bind var=term flags into query bindings
func parseBindings(values []string, vocab pizza.Vocabulary) (sparql.Bindings, error) {
	bindings := make(sparql.Bindings, len(values))
	for _, value := range values {
		name, term, ok := strings.Cut(value, "=")
		if !ok {
			return nil, fmt.Errorf("--bind %q: expected var=term", value)
		}
		name = strings.TrimLeft(strings.TrimSpace(name), "?$")
		if name == "" {
			return nil, fmt.Errorf("--bind %q: empty variable name", value)
		}

		t, err := parseTerm(strings.TrimSpace(term), vocab)
		if err != nil {
			return nil, fmt.Errorf("--bind %s: %w", name, err)
		}
		bindings[name] = t
	}
	return bindings, nil
}

// parseTerm accepts <iri>, a quoted literal, prefix:local for a known prefix
// or a bare local name in the ontology namespace
func parseTerm(s string, vocab pizza.Vocabulary) (rdf.Term, error) {
	switch {
	case s == "":
		return rdf.Term{}, fmt.Errorf("empty term")
	case strings.HasPrefix(s, "<"):
		if !strings.HasSuffix(s, ">") || len(s) < 3 {
			return rdf.Term{}, fmt.Errorf("unterminated IRI %s", s)
		}
		return rdf.NewIRI(s[1 : len(s)-1]), nil
	case strings.HasPrefix(s, `"`):
		value, err := strconv.Unquote(s)
		if err != nil {
			return rdf.Term{}, fmt.Errorf("bad literal %s: %w", s, err)
		}
		return rdf.NewLiteral(value), nil
	case strings.Contains(s, ":"):
		iri, ok := vocab.Prefixes().Expand(s)
		if !ok {
			return rdf.Term{}, fmt.Errorf("unknown prefix in %s", s)
		}
		return rdf.NewIRI(iri), nil
	case utils.IsLocalName(s):
		return vocab.Term(s), nil
	default:
		return rdf.Term{}, fmt.Errorf("%q is not a local name", s)
	}
}

// compactTerm renders IRIs with a known prefix as prefix:local
func compactTerm(t rdf.Term, prefixes rdf.Prefixes) string {
	if !t.IsIRI() {
		return t.String()
	}
	best := ""
	for label, ns := range prefixes {
		if !strings.HasPrefix(t.Value, ns) {
			continue
		}
		local := t.Value[len(ns):]
		if !utils.IsLocalName(local) || strings.ContainsAny(local, "/:") {
			continue
		}
		candidate := label + ":" + local
		if best == "" || len(candidate) < len(best) || (len(candidate) == len(best) && candidate < best) {
			best = candidate
		}
	}
	if best == "" {
		return t.String()
	}
	return best
}
