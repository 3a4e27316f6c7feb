package rdf

// Graph is an indexed, insertion-ordered set of triples. It is built once
// through NewGraph and never changes afterwards, so concurrent readers need
// no locking.
type Graph struct {
	triples     []Triple
	bySubject   map[Term][]int
	byPredicate map[Term][]int
	byObject    map[Term][]int
}

// NewGraph indexes the given triples. Duplicates and triples with unbound
// positions are dropped; the first occurrence keeps its position.
func NewGraph(triples []Triple) *Graph {
	g := &Graph{
		triples:     make([]Triple, 0, len(triples)),
		bySubject:   make(map[Term][]int),
		byPredicate: make(map[Term][]int),
		byObject:    make(map[Term][]int),
	}

	seen := make(map[Triple]struct{}, len(triples))
	for _, t := range triples {
		if t.Subject.IsZero() || t.Predicate.IsZero() || t.Object.IsZero() {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}

		idx := len(g.triples)
		g.triples = append(g.triples, t)
		g.bySubject[t.Subject] = append(g.bySubject[t.Subject], idx)
		g.byPredicate[t.Predicate] = append(g.byPredicate[t.Predicate], idx)
		g.byObject[t.Object] = append(g.byObject[t.Object], idx)
	}

	return g
}

// Len returns the number of distinct triples
func (g *Graph) Len() int {
	return len(g.triples)
}

// SubjectCount returns the number of distinct subjects
func (g *Graph) SubjectCount() int {
	return len(g.bySubject)
}

// PredicateCount returns the number of distinct predicates
func (g *Graph) PredicateCount() int {
	return len(g.byPredicate)
}

// Triples returns a copy of all triples in insertion order
func (g *Graph) Triples() []Triple {
	out := make([]Triple, len(g.triples))
	copy(out, g.triples)
	return out
}

// Contains reports whether the exact triple is present
func (g *Graph) Contains(s, p, o Term) bool {
	found := false
	g.Match(s, p, o, func(Triple) bool {
		found = true
		return false
	})
	return found
}

// Match calls fn for every triple matching the pattern in insertion order.
// Zero terms match anything. Iteration stops when fn returns false.
func (g *Graph) Match(s, p, o Term, fn func(Triple) bool) {
	candidates, all := g.candidates(s, p, o)
	if all {
		for _, t := range g.triples {
			if !fn(t) {
				return
			}
		}
		return
	}

	for _, idx := range candidates {
		t := g.triples[idx]
		if !s.IsZero() && t.Subject != s {
			continue
		}
		if !p.IsZero() && t.Predicate != p {
			continue
		}
		if !o.IsZero() && t.Object != o {
			continue
		}
		if !fn(t) {
			return
		}
	}
}

// candidates picks the smallest index for the bound positions
func (g *Graph) candidates(s, p, o Term) ([]int, bool) {
	var best []int
	picked := false

	consider := func(index map[Term][]int, key Term) {
		if key.IsZero() {
			return
		}
		list := index[key]
		if !picked || len(list) < len(best) {
			best = list
			picked = true
		}
	}

	consider(g.bySubject, s)
	consider(g.byObject, o)
	consider(g.byPredicate, p)

	return best, !picked
}

// Nodes calls fn for every distinct term appearing as subject or object in
// order of first appearance.
func (g *Graph) Nodes(fn func(Term) bool) {
	seen := make(map[Term]struct{}, len(g.bySubject)+len(g.byObject))
	for _, t := range g.triples {
		for _, n := range [2]Term{t.Subject, t.Object} {
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			if !fn(n) {
				return
			}
		}
	}
}
