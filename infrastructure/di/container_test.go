package di

import (
	"encoding/json"
	"net/http"
	"strings"
	"net/http/httptest"
	"testing"

	"pizzagraph/infrastructure/config"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := config.Defaults()
	cfg.OntologyPath = "../../ontology/pizza.ttl"
	cfg.LogLevel = "error"
	return cfg
}

func TestInitializeContainer(t *testing.T) {
	container, err := InitializeContainer(testConfig())
	require.NoError(t, err)
	defer container.Close()

	require.NotNil(t, container.Collector)
	assert.Positive(t, container.Store.Stats().Triples)
	assert.Equal(t, float64(container.Store.Stats().Triples), testutil.ToFloat64(container.Collector.OntologyTriples))

	rec := httptest.NewRecorder()
	container.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pizzas", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool     `json:"success"`
		Payload []string `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Contains(t, body.Payload, "Margherita")
	assert.Contains(t, body.Payload, "AmericanHot")

	assert.Equal(t, 1.0, testutil.ToFloat64(container.Collector.Queries.WithLabelValues("ListPizzasQuery", "success")))
}

func postLookup(t *testing.T, h http.Handler, path, name string, payload any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(`{"name":"`+name+`"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := struct {
		Success bool `json:"success"`
		Payload any  `json:"payload"`
	}{Payload: payload}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.True(t, body.Success)
}

func TestInitializeContainer_Lookups(t *testing.T) {
	container, err := InitializeContainer(testConfig())
	require.NoError(t, err)
	defer container.Close()
	h := container.Handler()

	t.Run("toppings by pizza", func(t *testing.T) {
		type detail struct {
			Name    string `json:"name"`
			Topping string `json:"topping"`
			Spice   string `json:"spice"`
		}
		var details []detail
		postLookup(t, h, "/toppings-by-pizza", "Margherita", &details)
		assert.ElementsMatch(t, []detail{
			{Name: "Margherita", Topping: "MozzarellaTopping", Spice: "Mild"},
			{Name: "Margherita", Topping: "TomatoTopping", Spice: "Mild"},
		}, details)
	})

	lookups := []struct {
		path string
		name string
		want string
	}{
		{"/pizzas-by-topping", "MozzarellaTopping", "Margherita"},
		{"/pizzas-by-country", "Italy", "Margherita"},
		{"/toppings-by-spiciness", "Hot", "JalapenoPepperTopping"},
	}
	for _, tt := range lookups {
		t.Run(tt.path, func(t *testing.T) {
			var names []string
			postLookup(t, h, tt.path, tt.name, &names)
			require.NotEmpty(t, names)
			assert.Contains(t, names, tt.want)

			seen := make(map[string]bool, len(names))
			for _, n := range names {
				assert.False(t, seen[n], "duplicate %s", n)
				seen[n] = true
			}
		})
	}
}

func TestInitializeContainer_MissingOntology(t *testing.T) {
	cfg := testConfig()
	cfg.OntologyPath = "does/not/exist.owl"

	_, err := InitializeContainer(cfg)
	assert.Error(t, err)
}

func TestInitializeContainer_MetricsDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.EnableMetrics = false
	cfg.RateLimit = 100

	container, err := InitializeContainer(cfg)
	require.NoError(t, err)
	assert.Nil(t, container.Collector)

	rec := httptest.NewRecorder()
	container.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestMetricsNamespace(t *testing.T) {
	assert.Equal(t, "pizza_graph_api", metricsNamespace("pizza-graph.api"))
	assert.Equal(t, "pizzagraph", metricsNamespace("pizzagraph"))
}
