package queries

import (
	"pizzagraph/domain/pizza"
	"pizzagraph/pkg/sparql"
)

// Variables the lookup templates expect to be bound
const (
	VarPizza     = "pizza"
	VarTopping   = "topping"
	VarCountry   = "country"
	VarSpiciness = "spiciness"
	VarName      = "name"
	VarSpice     = "spice"
)

const (
	toppingsText = `
SELECT ?topping WHERE {
  ?topping rdfs:subClassOf+ pizza:PizzaTopping
}`

	countriesText = `
SELECT ?country WHERE {
  ?country rdf:type pizza:Country
}`

	pizzasText = `
SELECT ?pizza WHERE {
  ?pizza rdfs:subClassOf+ pizza:NamedPizza
}`

	toppingsByPizzaText = `
SELECT ?name ?topping ?spice WHERE {
  ?name rdfs:subClassOf pizza:NamedPizza ;
        rdfs:subClassOf ?details .
  ?details owl:someValuesFrom ?topping .
  ?topping rdfs:subClassOf ?prop .
  ?prop owl:someValuesFrom ?spice .
}`

	pizzasByToppingText = `
SELECT ?pizza WHERE {
  ?pizza rdfs:subClassOf+ pizza:Pizza .
  ?pizza rdfs:subClassOf [
    a owl:Restriction ;
    owl:onProperty pizza:hasTopping ;
    owl:someValuesFrom $topping
  ] .
}`

	pizzasByCountryText = `
SELECT DISTINCT ?pizza WHERE {
  ?pizza rdfs:subClassOf ?restriction .
  ?restriction owl:hasValue $country .
}`

	toppingsBySpicinessText = `
SELECT DISTINCT ?topping WHERE {
  ?topping rdfs:subClassOf ?restriction .
  ?restriction owl:onProperty pizza:hasSpiciness .
  ?restriction owl:someValuesFrom $spiciness .
}`
)

// Templates holds the parsed query for every endpoint. User input never
// reaches the query text: lookups bind it through sparql.Bindings.
type Templates struct {
	Toppings            *sparql.Query
	Countries           *sparql.Query
	Pizzas              *sparql.Query
	ToppingsByPizza     *sparql.Query
	PizzasByTopping     *sparql.Query
	PizzasByCountry     *sparql.Query
	ToppingsBySpiciness *sparql.Query
}

// NewTemplates parses the templates against the vocabulary namespace. It
// panics on a malformed template since they are compiled into the binary.
func NewTemplates(vocab pizza.Vocabulary) Templates {
	prefixes := vocab.Prefixes()
	return Templates{
		Toppings:            sparql.MustParse(toppingsText, prefixes),
		Countries:           sparql.MustParse(countriesText, prefixes),
		Pizzas:              sparql.MustParse(pizzasText, prefixes),
		ToppingsByPizza:     sparql.MustParse(toppingsByPizzaText, prefixes),
		PizzasByTopping:     sparql.MustParse(pizzasByToppingText, prefixes),
		PizzasByCountry:     sparql.MustParse(pizzasByCountryText, prefixes),
		ToppingsBySpiciness: sparql.MustParse(toppingsBySpicinessText, prefixes),
	}
}
