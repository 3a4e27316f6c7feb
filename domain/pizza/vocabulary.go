// Package pizza holds the pizza ontology vocabulary and the records the API
// returns.
package pizza

import (
	"errors"
	"strings"

	"pizzagraph/pkg/rdf"
)

// DefaultNamespace is the namespace of the co-ode pizza ontology
const DefaultNamespace = "http://www.co-ode.org/ontologies/pizza/pizza.owl#"

// PrefixLabel is the SPARQL prefix bound to the ontology namespace
const PrefixLabel = "pizza"

// Class and property local names the queries anchor on
const (
	ClassPizza        = "Pizza"
	ClassNamedPizza   = "NamedPizza"
	ClassPizzaTopping = "PizzaTopping"
	ClassCountry      = "Country"
	ClassSpiciness    = "Spiciness"

	PropertyHasTopping         = "hasTopping"
	PropertyHasSpiciness       = "hasSpiciness"
	PropertyHasCountryOfOrigin = "hasCountryOfOrigin"
)

// ErrInvalidNamespace is returned for a namespace that cannot prefix local names
var ErrInvalidNamespace = errors.New("namespace must be an absolute IRI ending in '#' or '/'")

// Vocabulary resolves local names against the ontology namespace
type Vocabulary struct {
	namespace string
}

// NewVocabulary creates a vocabulary for the given namespace
func NewVocabulary(namespace string) (Vocabulary, error) {
	if !strings.Contains(namespace, "://") {
		return Vocabulary{}, ErrInvalidNamespace
	}
	if !strings.HasSuffix(namespace, "#") && !strings.HasSuffix(namespace, "/") {
		return Vocabulary{}, ErrInvalidNamespace
	}
	return Vocabulary{namespace: namespace}, nil
}

// DefaultVocabulary returns the vocabulary of the co-ode pizza ontology
func DefaultVocabulary() Vocabulary {
	return Vocabulary{namespace: DefaultNamespace}
}

// Namespace returns the namespace IRI
func (v Vocabulary) Namespace() string {
	return v.namespace
}

// Term returns the IRI term for a local name
func (v Vocabulary) Term(localName string) rdf.Term {
	return rdf.NewIRI(v.namespace + localName)
}

// Prefixes returns the standard prefixes plus the pizza prefix
func (v Vocabulary) Prefixes() rdf.Prefixes {
	return rdf.StandardPrefixes().With(PrefixLabel, v.namespace)
}
