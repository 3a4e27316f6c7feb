package handlers

import (
	"pizzagraph/application/queries"
	"pizzagraph/application/queries/bus"
)

// RegisterOntologyQueries registers every ontology query with the bus
func RegisterOntologyQueries(queryBus *bus.QueryBus, h *OntologyHandler) error {
	registrations := []struct {
		query   bus.Query
		handler bus.QueryHandler
	}{
		{queries.ListToppingsQuery{}, bus.Handler(h.ListToppings)},
		{queries.ListCountriesQuery{}, bus.Handler(h.ListCountries)},
		{queries.ListPizzasQuery{}, bus.Handler(h.ListPizzas)},
		{queries.ToppingsByPizzaQuery{}, bus.Handler(h.ToppingsByPizza)},
		{queries.PizzasByToppingQuery{}, bus.Handler(h.PizzasByTopping)},
		{queries.PizzasByCountryQuery{}, bus.Handler(h.PizzasByCountry)},
		{queries.ToppingsBySpicinessQuery{}, bus.Handler(h.ToppingsBySpiciness)},
	}

	for _, reg := range registrations {
		if err := queryBus.Register(reg.query, reg.handler); err != nil {
			return err
		}
	}
	return nil
}
