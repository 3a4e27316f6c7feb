package sparql

import (
	"context"
	"fmt"
	"sort"

	"pizzagraph/pkg/rdf"
)

// Graph is the read interface the engine evaluates against
type Graph interface {
	// Match calls fn for each triple matching the pattern; zero terms are
	// wildcards and iteration stops when fn returns false
	Match(s, p, o rdf.Term, fn func(rdf.Triple) bool)
	// Nodes calls fn for every distinct subject or object term
	Nodes(fn func(rdf.Term) bool)
}

// Bindings pre-assigns query variables before evaluation
type Bindings map[string]rdf.Term

// Solution maps variable names to bound terms
type Solution map[string]rdf.Term

// cancellation is checked every cancelCheckInterval join steps
const cancelCheckInterval = 256

// Evaluate runs the query against g. Every solution starts from the given
// bindings, so a bound variable behaves exactly like a constant in the
// query text.
func Evaluate(ctx context.Context, g Graph, q *Query, bindings Bindings) (*Results, error) {
	start := make(Solution, len(bindings))
	for name, term := range bindings {
		if !q.Mentions(name) {
			return nil, fmt.Errorf("%w: ?%s", ErrUnknownVariable, name)
		}
		if term.IsZero() {
			return nil, fmt.Errorf("%w: ?%s", ErrUnboundValue, name)
		}
		start[name] = term
	}
	for _, pat := range q.Patterns {
		if pat.Predicate.Modifier != PathNone && pat.Predicate.IsVar() {
			return nil, fmt.Errorf("%w: %s", ErrUnsupportedPath, pat)
		}
	}

	ev := &evaluator{ctx: ctx, graph: g, query: q}
	remaining := make([]int, len(q.Patterns))
	for i := range remaining {
		remaining[i] = i
	}
	if err := ev.join(start, remaining); err != nil {
		return nil, err
	}

	return ev.finish(), nil
}

type evaluator struct {
	ctx       context.Context
	graph     Graph
	query     *Query
	steps     int
	solutions []Solution
}

func (ev *evaluator) checkContext() error {
	ev.steps++
	if ev.steps%cancelCheckInterval == 0 {
		return ev.ctx.Err()
	}
	return nil
}

// join extends sol with each remaining pattern, choosing the most
// constrained pattern first
func (ev *evaluator) join(sol Solution, remaining []int) error {
	if err := ev.checkContext(); err != nil {
		return err
	}
	if !ev.filtersHold(sol, len(remaining) == 0) {
		return nil
	}
	if len(remaining) == 0 {
		ev.solutions = append(ev.solutions, sol)
		return nil
	}

	best := 0
	bestScore := -1
	for i, idx := range remaining {
		if score := boundScore(ev.query.Patterns[idx], sol); score > bestScore {
			best, bestScore = i, score
		}
	}
	pattern := ev.query.Patterns[remaining[best]]
	rest := make([]int, 0, len(remaining)-1)
	rest = append(rest, remaining[:best]...)
	rest = append(rest, remaining[best+1:]...)

	var joinErr error
	ev.matchPattern(pattern, sol, func(next Solution) bool {
		if err := ev.join(next, rest); err != nil {
			joinErr = err
			return false
		}
		return true
	})
	return joinErr
}

// boundScore ranks patterns: constant or bound positions count, paths are
// penalised because they expand to closures
func boundScore(p Pattern, sol Solution) int {
	score := 0
	if isBound(p.Subject, sol) {
		score += 4
	}
	if isBound(p.Object, sol) {
		score += 4
	}
	if isBound(p.Predicate.Node, sol) {
		score++
	}
	if p.Predicate.Modifier != PathNone {
		score -= 2
	}
	return score
}

func isBound(n Node, sol Solution) bool {
	if !n.IsVar() {
		return true
	}
	_, ok := sol[n.Var]
	return ok
}

func resolve(n Node, sol Solution) rdf.Term {
	if !n.IsVar() {
		return n.Term
	}
	return sol[n.Var]
}

// extend returns sol with each node unified against its term, or false when
// a node is already bound to a different term
func extend(sol Solution, nodes []Node, terms []rdf.Term) (Solution, bool) {
	var out Solution
	for i, n := range nodes {
		if !n.IsVar() {
			if n.Term != terms[i] {
				return nil, false
			}
			continue
		}
		current, ok := sol[n.Var]
		if !ok && out != nil {
			current, ok = out[n.Var]
		}
		if ok {
			if current != terms[i] {
				return nil, false
			}
			continue
		}
		if out == nil {
			out = make(Solution, len(sol)+len(nodes))
			for k, v := range sol {
				out[k] = v
			}
		}
		out[n.Var] = terms[i]
	}
	if out == nil {
		return sol, true
	}
	return out, true
}

func (ev *evaluator) matchPattern(p Pattern, sol Solution, emit func(Solution) bool) {
	subject, object := p.Subject, p.Object
	if p.Predicate.Inverse {
		subject, object = object, subject
	}

	if p.Predicate.Modifier != PathNone {
		ev.matchPath(subject, p.Predicate, object, sol, emit)
		return
	}

	s := resolve(subject, sol)
	pr := resolve(p.Predicate.Node, sol)
	o := resolve(object, sol)
	nodes := []Node{subject, p.Predicate.Node, object}

	ev.graph.Match(s, pr, o, func(t rdf.Triple) bool {
		next, ok := extend(sol, nodes, []rdf.Term{t.Subject, t.Predicate, t.Object})
		if !ok {
			return true
		}
		return emit(next)
	})
}

// matchPath evaluates subject pred+ object or subject pred* object
func (ev *evaluator) matchPath(subject Node, pred Predicate, object Node, sol Solution, emit func(Solution) bool) {
	predicate := pred.Term
	reflexive := pred.Modifier == PathZeroOrMore
	s := resolve(subject, sol)
	o := resolve(object, sol)
	nodes := []Node{subject, object}

	switch {
	case !s.IsZero():
		for _, n := range ev.closure(s, predicate, reflexive, false) {
			next, ok := extend(sol, nodes, []rdf.Term{s, n})
			if ok && !emit(next) {
				return
			}
		}
	case !o.IsZero():
		for _, n := range ev.closure(o, predicate, reflexive, true) {
			next, ok := extend(sol, nodes, []rdf.Term{n, o})
			if ok && !emit(next) {
				return
			}
		}
	default:
		for _, start := range ev.pathStarts(predicate, reflexive) {
			for _, n := range ev.closure(start, predicate, reflexive, false) {
				next, ok := extend(sol, nodes, []rdf.Term{start, n})
				if ok && !emit(next) {
					return
				}
			}
		}
	}
}

// closure returns every node reachable from start over predicate in
// breadth-first order. Backward follows edges from object to subject.
func (ev *evaluator) closure(start, predicate rdf.Term, reflexive, backward bool) []rdf.Term {
	var out []rdf.Term
	visited := map[rdf.Term]bool{}
	if reflexive {
		out = append(out, start)
		visited[start] = true
	}

	queue := []rdf.Term{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		visit := func(t rdf.Triple) bool {
			n := t.Object
			if backward {
				n = t.Subject
			}
			if !visited[n] {
				visited[n] = true
				out = append(out, n)
				queue = append(queue, n)
			}
			return true
		}
		if backward {
			ev.graph.Match(rdf.Term{}, predicate, current, visit)
		} else {
			ev.graph.Match(current, predicate, rdf.Term{}, visit)
		}
	}
	return out
}

// pathStarts lists candidate subjects when neither end of a path is bound
func (ev *evaluator) pathStarts(predicate rdf.Term, reflexive bool) []rdf.Term {
	var out []rdf.Term
	if reflexive {
		ev.graph.Nodes(func(n rdf.Term) bool {
			out = append(out, n)
			return true
		})
		return out
	}

	seen := map[rdf.Term]bool{}
	ev.graph.Match(rdf.Term{}, predicate, rdf.Term{}, func(t rdf.Triple) bool {
		if !seen[t.Subject] {
			seen[t.Subject] = true
			out = append(out, t.Subject)
		}
		return true
	})
	return out
}

// filtersHold checks every filter whose variables are bound. At the end of
// a join all filters must hold and an unbound variable fails the filter.
func (ev *evaluator) filtersHold(sol Solution, final bool) bool {
	for _, f := range ev.query.Filters {
		if !isBound(f.Left, sol) || !isBound(f.Right, sol) {
			if final {
				return false
			}
			continue
		}
		equal := resolve(f.Left, sol) == resolve(f.Right, sol)
		if equal == f.Negated {
			return false
		}
	}
	return true
}

// finish applies ORDER BY, projection, DISTINCT, OFFSET and LIMIT
func (ev *evaluator) finish() *Results {
	q := ev.query
	solutions := ev.solutions

	if len(q.OrderBy) > 0 {
		sort.SliceStable(solutions, func(i, j int) bool {
			for _, key := range q.OrderBy {
				c := compareTerms(solutions[i][key.Var], solutions[j][key.Var])
				if c == 0 {
					continue
				}
				if key.Descending {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}

	rows := make([]Solution, 0, len(solutions))
	var seen map[string]struct{}
	if q.Distinct {
		seen = make(map[string]struct{}, len(solutions))
	}
	for _, sol := range solutions {
		row := make(Solution, len(q.Variables))
		for _, v := range q.Variables {
			if t, ok := sol[v]; ok {
				row[v] = t
			}
		}
		if q.Distinct {
			key := rowKey(row, q.Variables)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
		}
		rows = append(rows, row)
	}

	if q.Offset > 0 {
		if q.Offset >= len(rows) {
			rows = rows[:0]
		} else {
			rows = rows[q.Offset:]
		}
	}
	if q.Limit >= 0 && q.Limit < len(rows) {
		rows = rows[:q.Limit]
	}

	vars := make([]string, len(q.Variables))
	copy(vars, q.Variables)
	return &Results{Variables: vars, Rows: rows}
}

func rowKey(row Solution, vars []string) string {
	key := ""
	for _, v := range vars {
		key += row[v].String() + "\x00"
	}
	return key
}
