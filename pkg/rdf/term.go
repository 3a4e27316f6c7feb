// Package rdf holds the term and triple model shared by the ontology store
// and the query engine.
package rdf

import (
	"fmt"
	"strings"
)

// TermKind distinguishes IRIs, blank nodes and literals
type TermKind uint8

const (
	// KindIRI is an absolute IRI
	KindIRI TermKind = iota + 1
	// KindBlank is a blank node scoped to one parsed document
	KindBlank
	// KindLiteral is a lexical value with optional datatype or language
	KindLiteral
)

// String returns a readable kind name
func (k TermKind) String() string {
	switch k {
	case KindIRI:
		return "iri"
	case KindBlank:
		return "blank"
	case KindLiteral:
		return "literal"
	default:
		return "unbound"
	}
}

// Term is a node of the graph. The zero Term is unbound and acts as a
// wildcard when matching.
type Term struct {
	Kind     TermKind
	Value    string
	Datatype string
	Lang     string
}

// NewIRI creates an IRI term
func NewIRI(iri string) Term {
	return Term{Kind: KindIRI, Value: iri}
}

// NewBlank creates a blank node term
func NewBlank(id string) Term {
	return Term{Kind: KindBlank, Value: strings.TrimPrefix(id, "_:")}
}

// NewLiteral creates a plain string literal
func NewLiteral(value string) Term {
	return Term{Kind: KindLiteral, Value: value}
}

// NewTypedLiteral creates a literal with a datatype IRI
func NewTypedLiteral(value, datatype string) Term {
	if datatype == XSDString {
		datatype = ""
	}
	return Term{Kind: KindLiteral, Value: value, Datatype: datatype}
}

// NewLangLiteral creates a language-tagged literal
func NewLangLiteral(value, lang string) Term {
	return Term{Kind: KindLiteral, Value: value, Lang: strings.ToLower(lang)}
}

// IsZero reports whether the term is unbound
func (t Term) IsZero() bool {
	return t.Kind == 0
}

// IsIRI reports whether the term is an IRI
func (t Term) IsIRI() bool {
	return t.Kind == KindIRI
}

// IsBlank reports whether the term is a blank node
func (t Term) IsBlank() bool {
	return t.Kind == KindBlank
}

// LocalName returns the human readable part of an IRI. Other kinds return
// their raw value.
func (t Term) LocalName() string {
	if t.Kind != KindIRI {
		return t.Value
	}
	return LocalName(t.Value)
}

// String renders the term in N-Triples syntax
func (t Term) String() string {
	switch t.Kind {
	case KindIRI:
		return "<" + t.Value + ">"
	case KindBlank:
		return "_:" + t.Value
	case KindLiteral:
		s := fmt.Sprintf("%q", t.Value)
		if t.Lang != "" {
			return s + "@" + t.Lang
		}
		if t.Datatype != "" {
			return s + "^^<" + t.Datatype + ">"
		}
		return s
	default:
		return "UNBOUND"
	}
}

// LocalName strips the namespace from an IRI: the fragment after '#' when
// present, otherwise the last path segment.
func LocalName(iri string) string {
	if i := strings.LastIndexByte(iri, '#'); i >= 0 {
		return iri[i+1:]
	}
	if i := strings.LastIndexByte(iri, '/'); i >= 0 && i < len(iri)-1 {
		return iri[i+1:]
	}
	return iri
}

// Triple is a subject-predicate-object statement
type Triple struct {
	Subject   Term
	Predicate Term
	Object    Term
}

// String renders the triple as an N-Triples line
func (t Triple) String() string {
	return t.Subject.String() + " " + t.Predicate.String() + " " + t.Object.String() + " ."
}
