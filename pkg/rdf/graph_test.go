package rdf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ex = "http://example.org/onto#"

func TestLocalName(t *testing.T) {
	tests := []struct {
		name string
		iri  string
		want string
	}{
		{"fragment", "http://www.co-ode.org/ontologies/pizza/pizza.owl#Margherita", "Margherita"},
		{"last fragment wins", "http://example.org/a#b#Italy", "Italy"},
		{"path segment", "http://example.org/toppings/Mushroom", "Mushroom"},
		{"trailing slash", "http://example.org/", "http://example.org/"},
		{"no separator", "Margherita", "Margherita"},
		{"empty fragment", "http://example.org/onto#", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LocalName(tt.iri))
		})
	}
}

func TestTermLocalName(t *testing.T) {
	assert.Equal(t, "Pizza", NewIRI(ex+"Pizza").LocalName())
	assert.Equal(t, "b0", NewBlank("_:b0").LocalName())
	assert.Equal(t, "hot", NewLiteral("hot").LocalName())
}

func TestTermString(t *testing.T) {
	assert.Equal(t, "<"+ex+"Pizza>", NewIRI(ex+"Pizza").String())
	assert.Equal(t, "_:b1", NewBlank("b1").String())
	assert.Equal(t, `"Alpha"@en`, NewLangLiteral("Alpha", "EN").String())
	assert.Equal(t, `"2"^^<`+XSDInteger+`>`, NewTypedLiteral("2", XSDInteger).String())
	assert.Equal(t, NewLiteral("x"), NewTypedLiteral("x", XSDString))
	assert.Equal(t, "UNBOUND", Term{}.String())
}

func TestNewGraph_DropsDuplicatesAndUnbound(t *testing.T) {
	a, b := NewIRI(ex+"A"), NewIRI(ex+"B")
	sub := NewIRI(RDFSSubClassOf)

	g := NewGraph([]Triple{
		{a, sub, b},
		{a, sub, b},
		{a, Term{}, b},
		{b, sub, NewIRI(ex + "C")},
	})

	assert.Equal(t, 2, g.Len())
	assert.Equal(t, 2, g.SubjectCount())
	assert.Equal(t, 1, g.PredicateCount())
	assert.True(t, g.Contains(a, sub, b))
	assert.False(t, g.Contains(b, sub, a))
}

func TestGraph_Match(t *testing.T) {
	a, b, c := NewIRI(ex+"A"), NewIRI(ex+"B"), NewIRI(ex+"C")
	sub := NewIRI(RDFSSubClassOf)
	typ := NewIRI(RDFType)
	class := NewIRI(OWLClass)

	g := NewGraph([]Triple{
		{a, sub, b},
		{b, sub, c},
		{a, typ, class},
		{b, typ, class},
	})

	collect := func(s, p, o Term) []Triple {
		var out []Triple
		g.Match(s, p, o, func(t Triple) bool {
			out = append(out, t)
			return true
		})
		return out
	}

	t.Run("wildcard returns all in insertion order", func(t *testing.T) {
		got := collect(Term{}, Term{}, Term{})
		require.Len(t, got, 4)
		assert.Equal(t, Triple{a, sub, b}, got[0])
		assert.Equal(t, Triple{b, typ, class}, got[3])
	})

	t.Run("bound subject and predicate", func(t *testing.T) {
		got := collect(a, sub, Term{})
		require.Len(t, got, 1)
		assert.Equal(t, b, got[0].Object)
	})

	t.Run("bound object", func(t *testing.T) {
		got := collect(Term{}, typ, class)
		require.Len(t, got, 2)
		assert.Equal(t, a, got[0].Subject)
		assert.Equal(t, b, got[1].Subject)
	})

	t.Run("early stop", func(t *testing.T) {
		calls := 0
		g.Match(Term{}, Term{}, Term{}, func(Triple) bool {
			calls++
			return false
		})
		assert.Equal(t, 1, calls)
	})

	t.Run("unknown term", func(t *testing.T) {
		assert.Empty(t, collect(NewIRI(ex+"Missing"), Term{}, Term{}))
	})
}

func TestGraph_Nodes(t *testing.T) {
	a, b := NewIRI(ex+"A"), NewIRI(ex+"B")
	sub := NewIRI(RDFSSubClassOf)
	g := NewGraph([]Triple{{a, sub, b}, {b, sub, a}})

	var nodes []Term
	g.Nodes(func(n Term) bool {
		nodes = append(nodes, n)
		return true
	})
	assert.Equal(t, []Term{a, b}, nodes)
}

func TestPrefixes_Expand(t *testing.T) {
	p := StandardPrefixes().With("pizza", "http://www.co-ode.org/ontologies/pizza/pizza.owl#")

	iri, ok := p.Expand("pizza:Margherita")
	require.True(t, ok)
	assert.Equal(t, "http://www.co-ode.org/ontologies/pizza/pizza.owl#Margherita", iri)

	iri, ok = p.Expand("owl:Restriction")
	require.True(t, ok)
	assert.Equal(t, OWLRestriction, iri)

	_, ok = p.Expand("nope:Thing")
	assert.False(t, ok)
	_, ok = p.Expand("Margherita")
	assert.False(t, ok)

	_, ok = StandardPrefixes().Expand("pizza:Margherita")
	assert.False(t, ok, "With must not mutate the receiver")
}
