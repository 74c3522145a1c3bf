package analyzer

import (
	"slices"
	"sort"

	"loci-hq/lrol/pkg/lrol/ast"
	"loci-hq/lrol/pkg/lrol/expr"
)

// Graph maps an evaluation name to the names it depends on, in declaration
// order: operands first, then @references in left, then in string right.
// Evaluations without dependencies have no entry.
type Graph map[string][]string

// BuildGraph derives the dependency graph of model. When a name is declared
// more than once, the last declaration wins.
func BuildGraph(model *ast.Model) Graph {
	g := make(Graph)
	for _, eval := range model.Evaluations {
		if deps := Dependencies(eval); len(deps) > 0 {
			g[eval.Name] = deps
		}
	}
	return g
}

// Dependencies returns the names eval depends on.
func Dependencies(eval *ast.Evaluation) []string {
	var deps []string
	deps = append(deps, eval.Operands...)
	for _, f := range eval.TextFields() {
		deps = append(deps, expr.ExtractReferences(f.Text)...)
	}
	return deps
}

// Nodes returns the names that have dependencies, sorted.
func (g Graph) Nodes() []string {
	nodes := make([]string, 0, len(g))
	for name := range g {
		nodes = append(nodes, name)
	}
	sort.Strings(nodes)
	return nodes
}

// EdgeCount returns the total number of dependency edges.
func (g Graph) EdgeCount() int {
	n := 0
	for _, deps := range g {
		n += len(deps)
	}
	return n
}

// FindCycle looks for a dependency cycle with a depth-first search started
// from each node in sorted order. It returns the start node of the search
// that found the cycle and the cycle itself, from the first repeated node
// through the last node visited before the repetition.
func (g Graph) FindCycle() (start string, chain []string, found bool) {
	visited := make(map[string]bool)
	var path []string

	for _, node := range g.Nodes() {
		if visited[node] {
			continue
		}
		if cycle := g.detectCycle(node, visited, &path); cycle != nil {
			return node, cycle, true
		}
	}
	return "", nil, false
}

func (g Graph) detectCycle(node string, visited map[string]bool, path *[]string) []string {
	if i := slices.Index(*path, node); i >= 0 {
		return slices.Clone((*path)[i:])
	}
	if visited[node] {
		return nil
	}

	visited[node] = true
	*path = append(*path, node)

	for _, dep := range g[node] {
		if cycle := g.detectCycle(dep, visited, path); cycle != nil {
			return cycle
		}
	}

	*path = (*path)[:len(*path)-1]
	return nil
}

// LongestChain returns the longest dependency path in the graph, starting
// from the alphabetically first node among equals. A path never revisits a
// node, so cycles are cut where they close.
func (g Graph) LongestChain() []string {
	var best []string
	onPath := make(map[string]bool)

	var walk func(node string) []string
	memo := make(map[string][]string)
	walk = func(node string) []string {
		if chain, ok := memo[node]; ok {
			return chain
		}
		onPath[node] = true
		var longest []string
		for _, dep := range g[node] {
			if onPath[dep] {
				continue
			}
			if sub := walk(dep); len(sub) > len(longest) {
				longest = sub
			}
		}
		onPath[node] = false

		chain := append([]string{node}, longest...)
		memo[node] = chain
		return chain
	}

	for _, node := range g.Nodes() {
		if chain := walk(node); len(chain) > len(best) {
			best = chain
		}
	}
	return best
}
