package sparql

import (
	"context"
	"errors"
	"testing"

	"pizzagraph/pkg/rdf"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ex = "http://example.org/onto#"

func iri(local string) rdf.Term {
	return rdf.NewIRI(ex + local)
}

func testGraph() *rdf.Graph {
	sub := rdf.NewIRI(rdf.RDFSSubClassOf)
	typ := rdf.NewIRI(rdf.RDFType)
	restriction := rdf.NewIRI(rdf.OWLRestriction)
	onProperty := rdf.NewIRI(rdf.OWLOnProperty)
	some := rdf.NewIRI(rdf.OWLSomeValuesFrom)
	r1, r2 := rdf.NewBlank("r1"), rdf.NewBlank("r2")

	return rdf.NewGraph([]rdf.Triple{
		{Subject: iri("A"), Predicate: sub, Object: iri("B")},
		{Subject: iri("B"), Predicate: sub, Object: iri("C")},
		{Subject: iri("D"), Predicate: sub, Object: iri("C")},
		{Subject: iri("A"), Predicate: sub, Object: r1},
		{Subject: r1, Predicate: typ, Object: restriction},
		{Subject: r1, Predicate: onProperty, Object: iri("has")},
		{Subject: r1, Predicate: some, Object: iri("T1")},
		{Subject: iri("D"), Predicate: sub, Object: r2},
		{Subject: r2, Predicate: typ, Object: restriction},
		{Subject: r2, Predicate: onProperty, Object: iri("has")},
		{Subject: r2, Predicate: some, Object: iri("T2")},
		{Subject: iri("A"), Predicate: rdf.NewIRI(rdf.RDFSLabel), Object: rdf.NewLangLiteral("Alpha", "en")},
		{Subject: iri("A"), Predicate: iri("rank"), Object: rdf.NewTypedLiteral("2", rdf.XSDInteger)},
		{Subject: iri("B"), Predicate: iri("rank"), Object: rdf.NewTypedLiteral("10", rdf.XSDInteger)},
	})
}

var testPrefixes = rdf.Prefixes{"ex": ex}

func run(t *testing.T, text string, bindings Bindings) *Results {
	t.Helper()
	q, err := ParseWithPrefixes(text, testPrefixes)
	require.NoError(t, err)
	res, err := Evaluate(context.Background(), testGraph(), q, bindings)
	require.NoError(t, err)
	return res
}

func localNames(res *Results, variable string) []string {
	out := make([]string, 0, res.Len())
	for _, term := range res.Column(variable) {
		out = append(out, term.LocalName())
	}
	return out
}

func TestParse_Select(t *testing.T) {
	q, err := Parse(`
		PREFIX ex: <http://example.org/onto#>
		# comment with a # inside
		SELECT DISTINCT ?x ?y ?x WHERE {
			?x rdfs:subClassOf+ ex:C ;
			   a ?y .
		}
		ORDER BY DESC(?x) ?y LIMIT 5 OFFSET 1`)
	require.NoError(t, err)

	assert.True(t, q.Distinct)
	assert.Equal(t, []string{"x", "y"}, q.Variables)
	require.Len(t, q.Patterns, 2)
	assert.Equal(t, PathOneOrMore, q.Patterns[0].Predicate.Modifier)
	assert.Equal(t, ex+"C", q.Patterns[0].Object.Term.Value)
	assert.Equal(t, rdf.RDFType, q.Patterns[1].Predicate.Term.Value)
	assert.Equal(t, []OrderKey{{Var: "x", Descending: true}, {Var: "y"}}, q.OrderBy)
	assert.Equal(t, 5, q.Limit)
	assert.Equal(t, 1, q.Offset)
}

func TestParse_TrailingDotAfterPrefixedName(t *testing.T) {
	q, err := ParseWithPrefixes(`SELECT ?x WHERE { ?x a ex:C.}`, testPrefixes)
	require.NoError(t, err)
	require.Len(t, q.Patterns, 1)
	assert.Equal(t, ex+"C", q.Patterns[0].Object.Term.Value)
}

func TestParse_StarExcludesBlankNodeVariables(t *testing.T) {
	q, err := ParseWithPrefixes(`SELECT * WHERE { ?x rdfs:subClassOf [ owl:onProperty ?p ] . _:b ex:q ?x }`, testPrefixes)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "p"}, q.Variables)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{"missing predicate", `SELECT ?x WHERE { ?x }`},
		{"undeclared prefix", `SELECT ?x WHERE { ?x a nope:Thing }`},
		{"unterminated group", `SELECT ?x WHERE { ?x a ex:C`},
		{"unterminated iri", `SELECT ?x WHERE { ?x a <http://example.org }`},
		{"projection not used", `SELECT ?y WHERE { ?x a ex:C }`},
		{"no projection", `SELECT WHERE { ?x a ex:C }`},
		{"literal subject", `SELECT ?x WHERE { "lit" a ?x }`},
		{"injected text", `SELECT ?x WHERE { ?x a ex:C } } ?y`},
		{"base unsupported", `BASE <http://example.org/> SELECT ?x WHERE { ?x a ?y }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseWithPrefixes(tt.query, testPrefixes)
			require.Error(t, err)
			var syntaxErr *SyntaxError
			assert.True(t, errors.As(err, &syntaxErr), "got %T", err)
		})
	}
}

func TestEvaluate_TransitiveSubclass(t *testing.T) {
	res := run(t, `SELECT ?x WHERE { ?x rdfs:subClassOf+ ex:C }`, nil)
	assert.Equal(t, []string{"B", "D", "A"}, localNames(res, "x"))
}

func TestEvaluate_ZeroOrMoreIncludesStart(t *testing.T) {
	res := run(t, `SELECT ?y WHERE { ex:A rdfs:subClassOf* ?y }`, nil)
	names := localNames(res, "y")
	assert.Len(t, names, 4)
	assert.Equal(t, "A", names[0])
	assert.Contains(t, names, "C")
}

func TestEvaluate_InversePath(t *testing.T) {
	res := run(t, `SELECT ?y WHERE { ex:C ^rdfs:subClassOf ?y }`, nil)
	assert.Equal(t, []string{"B", "D"}, localNames(res, "y"))
}

func TestEvaluate_BlankNodePropertyListWithBinding(t *testing.T) {
	query := `SELECT ?x WHERE {
		?x rdfs:subClassOf [ a owl:Restriction ; owl:onProperty ex:has ; owl:someValuesFrom $filler ]
	}`

	res := run(t, query, Bindings{"filler": iri("T1")})
	assert.Equal(t, []string{"A"}, localNames(res, "x"))

	res = run(t, query, Bindings{"filler": iri("T2")})
	assert.Equal(t, []string{"D"}, localNames(res, "x"))
}

func TestEvaluate_BindingIsNeverReparsed(t *testing.T) {
	query := `SELECT ?x WHERE { ?x rdfs:subClassOf [ owl:someValuesFrom ?filler ] }`
	res := run(t, query, Bindings{"filler": rdf.NewIRI(ex + "T1 } ?x ?p ?o . {")})
	assert.Equal(t, 0, res.Len())
}

func TestEvaluate_BindingErrors(t *testing.T) {
	q, err := ParseWithPrefixes(`SELECT ?x WHERE { ?x a ?y }`, testPrefixes)
	require.NoError(t, err)

	_, err = Evaluate(context.Background(), testGraph(), q, Bindings{"z": iri("A")})
	assert.ErrorIs(t, err, ErrUnknownVariable)

	_, err = Evaluate(context.Background(), testGraph(), q, Bindings{"y": {}})
	assert.ErrorIs(t, err, ErrUnboundValue)
}

func TestEvaluate_PathOverVariableRejected(t *testing.T) {
	q := &Query{
		Variables: []string{"x"},
		Limit:     -1,
		Patterns: []Pattern{{
			Subject:   Node{Var: "x"},
			Predicate: Predicate{Node: Node{Var: "p"}, Modifier: PathOneOrMore},
			Object:    Node{Term: iri("C")},
		}},
	}
	_, err := Evaluate(context.Background(), testGraph(), q, nil)
	assert.ErrorIs(t, err, ErrUnsupportedPath)
}

func TestEvaluate_Distinct(t *testing.T) {
	all := run(t, `SELECT ?x WHERE { ?x rdfs:subClassOf ?y }`, nil)
	assert.Equal(t, 5, all.Len())

	distinct := run(t, `SELECT DISTINCT ?x WHERE { ?x rdfs:subClassOf ?y }`, nil)
	assert.Equal(t, []string{"A", "B", "D"}, localNames(distinct, "x"))
}

func TestEvaluate_Filter(t *testing.T) {
	res := run(t, `SELECT ?x WHERE { ?x rdfs:subClassOf ex:C . FILTER(?x != ex:B) }`, nil)
	assert.Equal(t, []string{"D"}, localNames(res, "x"))

	res = run(t, `SELECT ?x WHERE { ?x rdfs:subClassOf ex:C FILTER (?x = ex:B) }`, nil)
	assert.Equal(t, []string{"B"}, localNames(res, "x"))
}

func TestEvaluate_Literals(t *testing.T) {
	res := run(t, `SELECT ?s WHERE { ?s rdfs:label "Alpha"@en }`, nil)
	assert.Equal(t, []string{"A"}, localNames(res, "s"))

	res = run(t, `SELECT ?s WHERE { ?s ex:rank 10 }`, nil)
	assert.Equal(t, []string{"B"}, localNames(res, "s"))

	res = run(t, `SELECT ?s WHERE { ?s rdfs:label "Alpha" }`, nil)
	assert.Equal(t, 0, res.Len(), "plain literal must not match a language-tagged one")
}

func TestEvaluate_OrderLimitOffset(t *testing.T) {
	res := run(t, `SELECT ?s ?r WHERE { ?s ex:rank ?r } ORDER BY DESC(?r)`, nil)
	assert.Equal(t, []string{"B", "A"}, localNames(res, "s"))

	res = run(t, `SELECT ?s ?r WHERE { ?s ex:rank ?r } ORDER BY ?r`, nil)
	assert.Equal(t, []string{"A", "B"}, localNames(res, "s"))

	res = run(t, `SELECT ?x WHERE { ?x rdfs:subClassOf+ ex:C } LIMIT 2`, nil)
	assert.Equal(t, []string{"B", "D"}, localNames(res, "x"))

	res = run(t, `SELECT ?x WHERE { ?x rdfs:subClassOf+ ex:C } OFFSET 2`, nil)
	assert.Equal(t, []string{"A"}, localNames(res, "x"))

	res = run(t, `SELECT ?x WHERE { ?x rdfs:subClassOf+ ex:C } OFFSET 9`, nil)
	assert.Equal(t, 0, res.Len())
}

func TestEvaluate_Join(t *testing.T) {
	res := run(t, `SELECT ?x ?filler WHERE {
		?x rdfs:subClassOf ex:C ;
		   rdfs:subClassOf ?r .
		?r owl:someValuesFrom ?filler .
	}`, nil)

	require.Equal(t, 1, res.Len())
	assert.Equal(t, "D", res.Rows[0]["x"].LocalName())
	assert.Equal(t, "T2", res.Rows[0]["filler"].LocalName())
	_, hasR := res.Rows[0]["r"]
	assert.False(t, hasR, "only projected variables appear in rows")
}

func TestEvaluate_Idempotent(t *testing.T) {
	query := `SELECT ?x ?y WHERE { ?x rdfs:subClassOf ?y }`
	first := run(t, query, nil)
	second := run(t, query, nil)
	assert.Equal(t, first.Rows, second.Rows)
}

func TestEvaluate_CancelledContext(t *testing.T) {
	sub := rdf.NewIRI(rdf.RDFSSubClassOf)
	triples := make([]rdf.Triple, 0, 600)
	for i := 0; i < 600; i++ {
		triples = append(triples, rdf.Triple{Subject: rdf.NewIRI(ex + string(rune('a'+i%26)) + string(rune('0'+i/26))), Predicate: sub, Object: iri("Root")})
	}
	g := rdf.NewGraph(triples)

	q, err := ParseWithPrefixes(`SELECT ?x WHERE { ?x rdfs:subClassOf ex:Root }`, testPrefixes)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Evaluate(ctx, g, q, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
