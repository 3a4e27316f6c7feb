package queries

import (
	apperrors "pizzagraph/pkg/errors"
	"pizzagraph/pkg/utils"
)

// NameRequest is the body of every lookup endpoint. Names are at most 256
// characters and must be valid as the tail of an IRI.
type NameRequest struct {
	Name string `json:"name" validate:"required,max=256,localname"`
}

// Validate checks that the name can be turned into an ontology IRI
func (r NameRequest) Validate() error {
	if err := utils.ValidateStruct(r); err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	return nil
}

// ToppingsByPizzaQuery finds the toppings of a named pizza and their spiciness
type ToppingsByPizzaQuery struct {
	NameRequest
}

// PizzasByToppingQuery finds the pizzas restricted to have a topping
type PizzasByToppingQuery struct {
	NameRequest
}

// PizzasByCountryQuery finds the classes whose country of origin is a country
type PizzasByCountryQuery struct {
	NameRequest
}

// ToppingsBySpicinessQuery finds the toppings with a spiciness level
type ToppingsBySpicinessQuery struct {
	NameRequest
}
