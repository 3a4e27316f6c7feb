package handlers

import (
	"errors"
	"net/http"

	"pizzagraph/application/queries"
	querybus "pizzagraph/application/queries/bus"
	"pizzagraph/pkg/common"
	apperrors "pizzagraph/pkg/errors"

	"go.uber.org/zap"
)

// PythonTestPayload is the fixed payload of GET /python
const PythonTestPayload = "Python Test"

// OntologyHandler handles the pizza ontology endpoints
type OntologyHandler struct {
	queryBus     *querybus.QueryBus
	errorHandler *apperrors.ErrorHandler
	logger       *zap.Logger
	maxBodyBytes int64
}

// NewOntologyHandler creates a new ontology handler
func NewOntologyHandler(queryBus *querybus.QueryBus, errorHandler *apperrors.ErrorHandler, logger *zap.Logger, maxBodyBytes int64) *OntologyHandler {
	return &OntologyHandler{
		queryBus:     queryBus,
		errorHandler: errorHandler,
		logger:       logger,
		maxBodyBytes: maxBodyBytes,
	}
}

// PythonTest handles GET /python
func (h *OntologyHandler) PythonTest(w http.ResponseWriter, r *http.Request) {
	common.RespondJSON(w, http.StatusOK, PythonTestPayload)
}

// ListToppings handles GET /toppings
func (h *OntologyHandler) ListToppings(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.ListToppingsQuery{})
}

// ListCountries handles GET /countries
func (h *OntologyHandler) ListCountries(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.ListCountriesQuery{})
}

// ListPizzas handles GET /pizzas
func (h *OntologyHandler) ListPizzas(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.ListPizzasQuery{})
}

// ToppingsByPizza handles POST /toppings-by-pizza
func (h *OntologyHandler) ToppingsByPizza(w http.ResponseWriter, r *http.Request) {
	h.lookup(w, r, func(req queries.NameRequest) querybus.Query {
		return queries.ToppingsByPizzaQuery{NameRequest: req}
	})
}

// PizzasByTopping handles POST /pizzas-by-topping
func (h *OntologyHandler) PizzasByTopping(w http.ResponseWriter, r *http.Request) {
	h.lookup(w, r, func(req queries.NameRequest) querybus.Query {
		return queries.PizzasByToppingQuery{NameRequest: req}
	})
}

// PizzasByCountry handles POST /pizzas-by-country
func (h *OntologyHandler) PizzasByCountry(w http.ResponseWriter, r *http.Request) {
	h.lookup(w, r, func(req queries.NameRequest) querybus.Query {
		return queries.PizzasByCountryQuery{NameRequest: req}
	})
}

// ToppingsBySpiciness handles POST /toppings-by-spiciness
func (h *OntologyHandler) ToppingsBySpiciness(w http.ResponseWriter, r *http.Request) {
	h.lookup(w, r, func(req queries.NameRequest) querybus.Query {
		return queries.ToppingsBySpicinessQuery{NameRequest: req}
	})
}

func (h *OntologyHandler) lookup(w http.ResponseWriter, r *http.Request, build func(queries.NameRequest) querybus.Query) {
	var req queries.NameRequest
	if err := common.ParseJSONBody(w, r, &req, h.maxBodyBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.errorHandler.HandleStatus(w, r, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		h.errorHandler.Handle(w, r, apperrors.NewValidationError("Invalid request body").
			WithCode("MALFORMED_JSON").
			WithCause(err))
		return
	}

	h.ask(w, r, build(req))
}

func (h *OntologyHandler) ask(w http.ResponseWriter, r *http.Request, query querybus.Query) {
	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}
