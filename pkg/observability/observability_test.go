package observability

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Observe(t *testing.T) {
	c := NewCollector("pizzagraph")

	c.ObserveHTTP(http.MethodGet, "/pizzas", http.StatusOK, 3*time.Millisecond)
	c.ObserveHTTP(http.MethodGet, "/pizzas", http.StatusOK, 5*time.Millisecond)
	c.CountQuery("ListPizzasQuery", "count")
	c.ObserveQuery("ListPizzasQuery", time.Millisecond)
	c.OntologyTriples.Set(42)
	c.RateLimited.Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(c.HTTPRequests.WithLabelValues("GET", "/pizzas", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Queries.WithLabelValues("ListPizzasQuery", "count")))
	assert.Equal(t, 42.0, testutil.ToFloat64(c.OntologyTriples))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.RateLimited))
}

func TestCollector_IndependentRegistries(t *testing.T) {
	a := NewCollector("pizzagraph")
	b := NewCollector("pizzagraph")

	a.CountQuery("q", "count")
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Queries.WithLabelValues("q", "count")))
}

func TestCollector_Handler(t *testing.T) {
	c := NewCollector("pizzagraph")
	c.OntologyTriples.Set(7)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "pizzagraph_ontology_triples 7")
}

func TestTracer_Disabled(t *testing.T) {
	tr := NewTracer("pizzagraph", false)
	ctx := context.Background()

	spanCtx, end := tr.StartSpan(ctx, "query.ListPizzasQuery")
	assert.Equal(t, ctx, spanCtx)
	end(errors.New("ignored"))

	next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})
	assert.NotNil(t, tr.Middleware(next))

	assert.NotPanics(t, func() { tr.AddAnnotation(ctx, "query", "ListPizzasQuery") })
}

func TestTracer_EnabledWithoutSegment(t *testing.T) {
	tr := NewTracer("pizzagraph", true)
	ctx := context.Background()

	_, seg := tr.StartSubsegment(ctx, "orphan")
	assert.Nil(t, seg)

	spanCtx, end := tr.StartSpan(ctx, "orphan")
	assert.Equal(t, ctx, spanCtx)
	tr.AddAnnotation(spanCtx, "query", "ListPizzasQuery")
	end(nil)
}
