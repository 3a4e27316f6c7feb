package handlers

import (
	"context"
	"testing"

	"pizzagraph/application/queries"
	"pizzagraph/application/queries/bus"
	"pizzagraph/domain/pizza"
	apperrors "pizzagraph/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterOntologyQueries(t *testing.T) {
	queryBus := bus.NewQueryBus()
	require.NoError(t, RegisterOntologyQueries(queryBus, newTestHandler(t)))

	ctx := context.Background()

	result, err := queryBus.Ask(ctx, queries.ListCountriesQuery{})
	require.NoError(t, err)
	require.IsType(t, pizza.LocalNames{}, result)
	assert.ElementsMatch(t, []string{"America", "England", "France", "Germany", "Italy"}, []string(result.(pizza.LocalNames)))

	result, err = queryBus.Ask(ctx, queries.PizzasByToppingQuery{NameRequest: named("JalapenoPepperTopping")})
	require.NoError(t, err)
	assert.Equal(t, pizza.LocalNames{"AmericanHot"}, result)

	_, err = queryBus.Ask(ctx, queries.ToppingsByPizzaQuery{NameRequest: named("")})
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}

func TestRegisterOntologyQueries_Twice(t *testing.T) {
	queryBus := bus.NewQueryBus()
	h := newTestHandler(t)
	require.NoError(t, RegisterOntologyQueries(queryBus, h))
	assert.Error(t, RegisterOntologyQueries(queryBus, h))
}
