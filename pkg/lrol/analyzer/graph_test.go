package analyzer

import (
	"reflect"
	"testing"

	"loci-hq/lrol/pkg/lrol/ast"
)

func TestBuildGraph(t *testing.T) {
	m := &ast.Model{Evaluations: []*ast.Evaluation{
		comparison("a", "amount", ">", str("1")),
		comparison("b", "@a plus @c", ">", str("@d")),
		logical("c", "AND", "a", "b"),
	}}

	g := BuildGraph(m)
	want := Graph{
		"b": {"a", "c", "d"},
		"c": {"a", "b"},
	}
	if !reflect.DeepEqual(g, want) {
		t.Errorf("BuildGraph() = %v, want %v", g, want)
	}
	if _, ok := g["a"]; ok {
		t.Error("evaluation without dependencies must not be a node")
	}
	if g.EdgeCount() != 5 {
		t.Errorf("EdgeCount() = %d, want 5", g.EdgeCount())
	}
}

func TestGraph_FindCycle(t *testing.T) {
	tests := []struct {
		name      string
		graph     Graph
		wantFound bool
		wantStart string
		wantChain []string
	}{
		{"empty", Graph{}, false, "", nil},
		{"acyclic", Graph{"a": {"b"}, "b": {"c"}}, false, "", nil},
		{"diamond", Graph{"a": {"b", "c"}, "b": {"d"}, "c": {"d"}}, false, "", nil},
		{"self loop", Graph{"a": {"a"}}, true, "a", []string{"a"}},
		{"two cycle", Graph{"x": {"y"}, "y": {"x"}}, true, "x", []string{"x", "y"}},
		{"tail into cycle", Graph{"a": {"b"}, "b": {"c"}, "c": {"b"}}, true, "a", []string{"b", "c"}},
		{"cycle reached late", Graph{"a": {"z"}, "m": {"n"}, "n": {"o"}, "o": {"m"}}, true, "m", []string{"m", "n", "o"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, chain, found := tt.graph.FindCycle()
			if found != tt.wantFound || start != tt.wantStart || !reflect.DeepEqual(chain, tt.wantChain) {
				t.Errorf("FindCycle() = (%q, %v, %v), want (%q, %v, %v)",
					start, chain, found, tt.wantStart, tt.wantChain, tt.wantFound)
			}
		})
	}
}

// Every reported chain must be a real cycle: consecutive edges exist and the
// last node links back to the first.
func TestGraph_FindCycle_ChainIsCycle(t *testing.T) {
	g := Graph{
		"a": {"b", "e"},
		"b": {"c"},
		"c": {"d"},
		"d": {"b", "a"},
		"e": {"a"},
	}
	_, chain, found := g.FindCycle()
	if !found {
		t.Fatal("expected a cycle")
	}

	hasEdge := func(from, to string) bool {
		for _, d := range g[from] {
			if d == to {
				return true
			}
		}
		return false
	}
	for i := range chain {
		next := chain[(i+1)%len(chain)]
		if !hasEdge(chain[i], next) {
			t.Errorf("chain %v: no edge %s -> %s", chain, chain[i], next)
		}
	}
}

func TestGraph_LongestChain(t *testing.T) {
	tests := []struct {
		name  string
		graph Graph
		want  []string
	}{
		{"empty", Graph{}, nil},
		{"single edge", Graph{"a": {"b"}}, []string{"a", "b"}},
		{"chain", Graph{"d": {"c"}, "c": {"b"}, "b": {"a"}}, []string{"d", "c", "b", "a"}},
		{"cycle cut", Graph{"x": {"y"}, "y": {"x"}}, []string{"x", "y"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.graph.LongestChain(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("LongestChain() = %v, want %v", got, tt.want)
			}
		})
	}
}
