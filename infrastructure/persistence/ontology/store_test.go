package ontology

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"pizzagraph/domain/pizza"
	"pizzagraph/domain/pizza/pizzatest"
	"pizzagraph/pkg/rdf"
	"pizzagraph/pkg/sparql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testdata(name string) string {
	return filepath.Join("testdata", name)
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"ontology/pizza.ttl", FormatTurtle, false},
		{"a.owl", FormatRDFXML, false},
		{"a.RDF", FormatRDFXML, false},
		{"a.ttl", FormatTurtle, false},
		{"a.nt", FormatNTriples, false},
		{"a.json", FormatAuto, true},
		{"noext", FormatAuto, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" Turtle ")
	require.NoError(t, err)
	assert.Equal(t, FormatTurtle, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatAuto, f)

	_, err = ParseFormat("jsonld")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestLoad_NTriples(t *testing.T) {
	store, err := Load(testdata("mini.nt"), Options{Logger: zap.NewNop()})
	require.NoError(t, err)

	stats := store.Stats()
	assert.Equal(t, 8, stats.Triples, "duplicate triple collapses")
	assert.Equal(t, 4, stats.Subjects)
	assert.Equal(t, testdata("mini.nt"), stats.Source)
	assert.False(t, stats.LoadedAt.IsZero())

	vocab := pizza.DefaultVocabulary()
	g := store.Graph()
	assert.True(t, g.Contains(vocab.Term("Italy"), rdf.NewIRI(rdf.RDFType), vocab.Term("Country")))
	assert.True(t, g.Contains(vocab.Term("Margherita"), rdf.NewIRI(rdf.RDFSLabel), rdf.NewLangLiteral("Margherita", "pt")))

	var restriction rdf.Term
	g.Match(rdf.Term{}, rdf.NewIRI(rdf.OWLHasValue), vocab.Term("Italy"), func(tr rdf.Triple) bool {
		restriction = tr.Subject
		return false
	})
	assert.True(t, restriction.IsBlank())
}

func TestLoad_Turtle(t *testing.T) {
	store, err := Load(testdata("mini.ttl"), Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, store.Stats().Triples)
}

func TestLoad_TurtleRestrictions(t *testing.T) {
	store, err := Load(testdata("restrictions.ttl"), Options{})
	require.NoError(t, err)
	assert.Equal(t, 17, store.Stats().Triples)

	vocab := pizza.DefaultVocabulary()
	ctx := context.Background()

	res, err := store.Query(ctx, `SELECT ?topping ?spice WHERE {
  $pizza rdfs:subClassOf ?details .
  ?details owl:onProperty pizza:hasTopping ;
           owl:someValuesFrom ?topping .
  ?topping rdfs:subClassOf ?prop .
  ?prop owl:someValuesFrom ?spice .
}`, sparql.Bindings{"pizza": vocab.Term("Margherita")})
	require.NoError(t, err)
	require.Equal(t, 1, res.Len())
	assert.Equal(t, "MozzarellaTopping", res.Rows[0]["topping"].LocalName())
	assert.Equal(t, "Mild", res.Rows[0]["spice"].LocalName())

	res, err = store.Query(ctx, `SELECT ?pizza ?r WHERE { ?pizza rdfs:subClassOf ?r . ?r owl:hasValue $country }`,
		sparql.Bindings{"country": vocab.Term("Italy")})
	require.NoError(t, err)
	require.Equal(t, 1, res.Len())
	assert.Equal(t, "Margherita", res.Rows[0]["pizza"].LocalName())
	restriction := res.Rows[0]["r"]
	assert.True(t, restriction.IsBlank())
	assert.True(t, store.Graph().Contains(restriction, rdf.NewIRI(rdf.RDFType), rdf.NewIRI(rdf.OWLRestriction)))
	assert.True(t, store.Graph().Contains(restriction, rdf.NewIRI(rdf.OWLOnProperty), vocab.Term("hasCountryOfOrigin")))
}

func TestLoad_RDFXML(t *testing.T) {
	store, err := Load(testdata("mini.owl"), Options{})
	require.NoError(t, err)

	vocab := pizza.DefaultVocabulary()
	assert.True(t, store.Graph().Contains(vocab.Term("Margherita"), rdf.NewIRI(rdf.RDFSSubClassOf), vocab.Term("NamedPizza")))
	assert.True(t, store.Graph().Contains(vocab.Term("NamedPizza"), rdf.NewIRI(rdf.RDFType), rdf.NewIRI(rdf.OWLClass)))
}

func TestLoad_FormatOverride(t *testing.T) {
	_, err := Load(testdata("mini.nt"), Options{Format: FormatNTriples})
	require.NoError(t, err)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(testdata("absent.owl"), Options{})
		assert.Error(t, err)
	})

	t.Run("unknown extension", func(t *testing.T) {
		_, err := Load(testdata("mini.json"), Options{})
		assert.ErrorIs(t, err, ErrUnknownFormat)
	})

	t.Run("malformed document", func(t *testing.T) {
		_, err := Load(testdata("broken.nt"), Options{})
		assert.Error(t, err)
	})
}

func TestDecode_Reader(t *testing.T) {
	src := `<http://example.org/a> <http://example.org/p> "1"^^<http://www.w3.org/2001/XMLSchema#integer> .` + "\n"
	triples, err := Decode(strings.NewReader(src), FormatNTriples)
	require.NoError(t, err)
	require.Len(t, triples, 1)
	assert.Equal(t, rdf.NewTypedLiteral("1", rdf.XSDInteger), triples[0].Object)
}

func TestStore_Query(t *testing.T) {
	vocab := pizza.DefaultVocabulary()
	store := NewStore(pizzatest.Graph(), "fixture", vocab.Prefixes(), zap.NewNop())

	res, err := store.Query(context.Background(),
		`SELECT ?pizza WHERE { ?pizza rdfs:subClassOf+ pizza:NamedPizza }`, nil)
	require.NoError(t, err)

	var names []string
	for _, term := range res.Column("pizza") {
		names = append(names, term.LocalName())
	}
	assert.ElementsMatch(t, []string{"Margherita", "American", "AmericanHot", "Veneziana"}, names)
}

func TestStore_QueryWithBindings(t *testing.T) {
	vocab := pizza.DefaultVocabulary()
	store := NewStore(pizzatest.Graph(), "fixture", vocab.Prefixes(), nil)

	res, err := store.Query(context.Background(),
		`SELECT DISTINCT ?topping WHERE { ?topping rdfs:subClassOf ?r . ?r owl:someValuesFrom ?spice }`,
		sparql.Bindings{"spice": vocab.Term("Hot")})
	require.NoError(t, err)
	require.Equal(t, 1, res.Len())
	assert.Equal(t, "JalapenoPepperTopping", res.Rows[0]["topping"].LocalName())
}

func TestStore_QuerySyntaxError(t *testing.T) {
	store := NewStore(pizzatest.Graph(), "fixture", nil, nil)

	_, err := store.Query(context.Background(), `SELECT ?x WHERE { ?x pizza:unknown ?y }`, nil)
	var syntaxErr *sparql.SyntaxError
	assert.ErrorAs(t, err, &syntaxErr)
}

func TestStore_PrefixesIsCopy(t *testing.T) {
	store := NewStore(pizzatest.Graph(), "fixture", pizza.DefaultVocabulary().Prefixes(), nil)

	p := store.Prefixes()
	p["pizza"] = "http://example.org/"

	assert.Equal(t, pizza.DefaultNamespace, store.Prefixes()["pizza"])
}
