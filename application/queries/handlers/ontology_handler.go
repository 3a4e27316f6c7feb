package handlers

import (
	"context"
	"time"

	"pizzagraph/application/ports"
	"pizzagraph/application/queries"
	"pizzagraph/domain/pizza"
	apperrors "pizzagraph/pkg/errors"
	"pizzagraph/pkg/sparql"

	"go.uber.org/zap"
)

// OntologyHandler answers the pizza queries against the ontology store
type OntologyHandler struct {
	store     ports.OntologyStore
	vocab     pizza.Vocabulary
	templates queries.Templates
	logger    *zap.Logger
}

// NewOntologyHandler creates a new ontology query handler
func NewOntologyHandler(store ports.OntologyStore, vocab pizza.Vocabulary, logger *zap.Logger) *OntologyHandler {
	return &OntologyHandler{
		store:     store,
		vocab:     vocab,
		templates: queries.NewTemplates(vocab),
		logger:    logger,
	}
}

// ListToppings returns every topping class
func (h *OntologyHandler) ListToppings(ctx context.Context, _ queries.ListToppingsQuery) (pizza.LocalNames, error) {
	return h.names(ctx, "toppings", h.templates.Toppings, nil, queries.VarTopping)
}

// ListCountries returns every country individual
func (h *OntologyHandler) ListCountries(ctx context.Context, _ queries.ListCountriesQuery) (pizza.LocalNames, error) {
	return h.names(ctx, "countries", h.templates.Countries, nil, queries.VarCountry)
}

// ListPizzas returns every named pizza class
func (h *OntologyHandler) ListPizzas(ctx context.Context, _ queries.ListPizzasQuery) (pizza.LocalNames, error) {
	return h.names(ctx, "pizzas", h.templates.Pizzas, nil, queries.VarPizza)
}

// ToppingsByPizza returns one record per topping and spiciness of the pizza.
// An unknown pizza yields an empty list.
func (h *OntologyHandler) ToppingsByPizza(ctx context.Context, q queries.ToppingsByPizzaQuery) (pizza.ToppingDetails, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	res, err := h.execute(ctx, "toppings-by-pizza", h.templates.ToppingsByPizza,
		sparql.Bindings{queries.VarName: h.vocab.Term(q.Name)})
	if err != nil {
		return nil, err
	}

	details := make(pizza.ToppingDetails, 0, res.Len())
	for _, row := range res.Rows {
		name, topping, spice := row[queries.VarName], row[queries.VarTopping], row[queries.VarSpice]
		if !name.IsIRI() || !topping.IsIRI() || !spice.IsIRI() {
			continue
		}
		// ?name is bound, but in a slash namespace "a/b" comes back as "b"
		if name.LocalName() != q.Name {
			continue
		}
		details = append(details, pizza.ToppingDetail{
			Name:    name.LocalName(),
			Topping: topping.LocalName(),
			Spice:   spice.LocalName(),
		})
	}
	return details, nil
}

// PizzasByTopping returns the pizzas restricted to have the topping
func (h *OntologyHandler) PizzasByTopping(ctx context.Context, q queries.PizzasByToppingQuery) (pizza.LocalNames, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return h.names(ctx, "pizzas-by-topping", h.templates.PizzasByTopping,
		sparql.Bindings{queries.VarTopping: h.vocab.Term(q.Name)}, queries.VarPizza)
}

// PizzasByCountry returns the distinct classes whose country of origin is
// the country
func (h *OntologyHandler) PizzasByCountry(ctx context.Context, q queries.PizzasByCountryQuery) (pizza.LocalNames, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return h.names(ctx, "pizzas-by-country", h.templates.PizzasByCountry,
		sparql.Bindings{queries.VarCountry: h.vocab.Term(q.Name)}, queries.VarPizza)
}

// ToppingsBySpiciness returns the distinct toppings with the spiciness level
func (h *OntologyHandler) ToppingsBySpiciness(ctx context.Context, q queries.ToppingsBySpicinessQuery) (pizza.LocalNames, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return h.names(ctx, "toppings-by-spiciness", h.templates.ToppingsBySpiciness,
		sparql.Bindings{queries.VarSpiciness: h.vocab.Term(q.Name)}, queries.VarTopping)
}

func (h *OntologyHandler) names(ctx context.Context, op string, q *sparql.Query, bindings sparql.Bindings, variable string) (pizza.LocalNames, error) {
	res, err := h.execute(ctx, op, q, bindings)
	if err != nil {
		return nil, err
	}

	names := make(pizza.LocalNames, 0, res.Len())
	for _, term := range res.Column(variable) {
		if !term.IsIRI() {
			continue
		}
		names = append(names, term.LocalName())
	}
	return names, nil
}

func (h *OntologyHandler) execute(ctx context.Context, op string, q *sparql.Query, bindings sparql.Bindings) (*sparql.Results, error) {
	start := time.Now()
	res, err := h.store.Execute(ctx, q, bindings)
	if err != nil {
		if ctxErr := apperrors.FromContext(op, err); ctxErr != nil {
			return nil, ctxErr
		}
		h.logger.Error("Ontology query failed",
			zap.String("operation", op),
			zap.Error(err),
		)
		return nil, apperrors.NewQueryError(op, err)
	}

	h.logger.Debug("Ontology query completed",
		zap.String("operation", op),
		zap.Int("rows", res.Len()),
		zap.Duration("duration", time.Since(start)),
	)
	return res, nil
}
