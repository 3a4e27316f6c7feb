// Package pizzatest builds a small pizza ontology graph for tests.
package pizzatest

import (
	"fmt"

	"pizzagraph/domain/pizza"
	"pizzagraph/pkg/rdf"
)

type builder struct {
	vocab   pizza.Vocabulary
	triples []rdf.Triple
	blank   int
}

func (b *builder) add(s, p, o rdf.Term) {
	b.triples = append(b.triples, rdf.Triple{Subject: s, Predicate: p, Object: o})
}

func (b *builder) class(name string, parents ...string) {
	b.add(b.vocab.Term(name), rdf.NewIRI(rdf.RDFType), rdf.NewIRI(rdf.OWLClass))
	for _, parent := range parents {
		b.add(b.vocab.Term(name), rdf.NewIRI(rdf.RDFSSubClassOf), b.vocab.Term(parent))
	}
}

func (b *builder) restriction(class, property, kind string, filler rdf.Term) {
	r := rdf.NewBlank(fmt.Sprintf("r%d", b.blank))
	b.blank++
	b.add(b.vocab.Term(class), rdf.NewIRI(rdf.RDFSSubClassOf), r)
	b.add(r, rdf.NewIRI(rdf.RDFType), rdf.NewIRI(rdf.OWLRestriction))
	b.add(r, rdf.NewIRI(rdf.OWLOnProperty), b.vocab.Term(property))
	b.add(r, rdf.NewIRI(kind), filler)
}

func (b *builder) some(class, property, filler string) {
	b.restriction(class, property, rdf.OWLSomeValuesFrom, b.vocab.Term(filler))
}

func (b *builder) value(class, property, individual string) {
	b.restriction(class, property, rdf.OWLHasValue, b.vocab.Term(individual))
}

func (b *builder) individual(name, class string) {
	b.add(b.vocab.Term(name), rdf.NewIRI(rdf.RDFType), rdf.NewIRI(rdf.OWLNamespace+"NamedIndividual"))
	b.add(b.vocab.Term(name), rdf.NewIRI(rdf.RDFType), b.vocab.Term(class))
}

// Triples returns the fixture ontology in the default pizza namespace.
//
// Pizzas: Margherita, American, AmericanHot, Veneziana.
// Toppings: CheeseTopping, MeatTopping, VegetableTopping, PepperTopping,
// MozzarellaTopping, TomatoTopping, PeperoniSausageTopping,
// JalapenoPepperTopping, OliveTopping, OnionTopping.
// Countries: America, England, France, Germany, Italy.
// Veneziana carries two identical country restrictions and MozzarellaTopping
// is itself restricted to Italy.
func Triples() []rdf.Triple {
	b := &builder{vocab: pizza.DefaultVocabulary()}

	b.class(pizza.ClassPizza)
	b.class(pizza.ClassNamedPizza, pizza.ClassPizza)
	b.class(pizza.ClassPizzaTopping)
	b.class(pizza.ClassSpiciness)
	b.class(pizza.ClassCountry)

	b.class("Hot", pizza.ClassSpiciness)
	b.class("Medium", pizza.ClassSpiciness)
	b.class("Mild", pizza.ClassSpiciness)

	b.class("CheeseTopping", pizza.ClassPizzaTopping)
	b.class("MeatTopping", pizza.ClassPizzaTopping)
	b.class("VegetableTopping", pizza.ClassPizzaTopping)
	b.class("PepperTopping", "VegetableTopping")

	b.class("MozzarellaTopping", "CheeseTopping")
	b.some("MozzarellaTopping", pizza.PropertyHasSpiciness, "Mild")
	b.value("MozzarellaTopping", pizza.PropertyHasCountryOfOrigin, "Italy")

	b.class("TomatoTopping", "VegetableTopping")
	b.some("TomatoTopping", pizza.PropertyHasSpiciness, "Mild")

	b.class("PeperoniSausageTopping", "MeatTopping")
	b.some("PeperoniSausageTopping", pizza.PropertyHasSpiciness, "Medium")

	b.class("JalapenoPepperTopping", "PepperTopping")
	b.some("JalapenoPepperTopping", pizza.PropertyHasSpiciness, "Hot")

	b.class("OliveTopping", "VegetableTopping")
	b.some("OliveTopping", pizza.PropertyHasSpiciness, "Mild")

	b.class("OnionTopping", "VegetableTopping")
	b.some("OnionTopping", pizza.PropertyHasSpiciness, "Medium")

	b.class("Margherita", pizza.ClassNamedPizza)
	b.some("Margherita", pizza.PropertyHasTopping, "MozzarellaTopping")
	b.some("Margherita", pizza.PropertyHasTopping, "TomatoTopping")
	b.value("Margherita", pizza.PropertyHasCountryOfOrigin, "Italy")

	b.class("American", pizza.ClassNamedPizza)
	b.some("American", pizza.PropertyHasTopping, "MozzarellaTopping")
	b.some("American", pizza.PropertyHasTopping, "PeperoniSausageTopping")
	b.some("American", pizza.PropertyHasTopping, "TomatoTopping")
	b.value("American", pizza.PropertyHasCountryOfOrigin, "America")

	b.class("AmericanHot", pizza.ClassNamedPizza)
	b.some("AmericanHot", pizza.PropertyHasTopping, "MozzarellaTopping")
	b.some("AmericanHot", pizza.PropertyHasTopping, "PeperoniSausageTopping")
	b.some("AmericanHot", pizza.PropertyHasTopping, "JalapenoPepperTopping")
	b.some("AmericanHot", pizza.PropertyHasTopping, "TomatoTopping")
	b.value("AmericanHot", pizza.PropertyHasCountryOfOrigin, "America")

	b.class("Veneziana", pizza.ClassNamedPizza)
	b.some("Veneziana", pizza.PropertyHasTopping, "MozzarellaTopping")
	b.some("Veneziana", pizza.PropertyHasTopping, "OliveTopping")
	b.some("Veneziana", pizza.PropertyHasTopping, "OnionTopping")
	b.some("Veneziana", pizza.PropertyHasTopping, "TomatoTopping")
	b.value("Veneziana", pizza.PropertyHasCountryOfOrigin, "Italy")
	b.value("Veneziana", pizza.PropertyHasCountryOfOrigin, "Italy")

	for _, country := range []string{"America", "England", "France", "Germany", "Italy"} {
		b.individual(country, pizza.ClassCountry)
	}

	return b.triples
}

// Graph returns the fixture ontology as an indexed graph
func Graph() *rdf.Graph {
	return rdf.NewGraph(Triples())
}
