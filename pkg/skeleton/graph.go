package skeleton

import (
	"sort"

	"github.com/chazu/medial/pkg/geom"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Graph is the medial axis as an undirected graph. Edge endpoints that are
// bit-identical become the same node; node i has gonum ID i. Repeated
// edges collapse into one link and zero-length edges add no link.
type Graph struct {
	Nodes []geom.Point

	g     *simple.UndirectedGraph
	index map[geom.PointKey]int
}

// BuildGraph collapses edges into a Graph.
func BuildGraph(edges []geom.Edge) *Graph {
	g := &Graph{
		g:     simple.NewUndirectedGraph(),
		index: make(map[geom.PointKey]int),
	}
	for _, e := range edges {
		a, b := g.node(e.P1), g.node(e.P2)
		if a == b {
			continue
		}
		g.g.SetEdge(simple.Edge{F: simple.Node(a), T: simple.Node(b)})
	}
	return g
}

func (g *Graph) node(p geom.Point) int {
	k := p.Key()
	if i, ok := g.index[k]; ok {
		return i
	}
	i := len(g.Nodes)
	g.index[k] = i
	g.Nodes = append(g.Nodes, p)
	g.g.AddNode(simple.Node(i))
	return i
}

// Degree returns the number of distinct neighbours of node i.
func (g *Graph) Degree(i int) int {
	return g.g.From(int64(i)).Len()
}

// LinkCount returns the number of distinct links.
func (g *Graph) LinkCount() int {
	return g.g.Edges().Len()
}

// Links returns every link as a node index pair with the smaller index
// first, sorted.
func (g *Graph) Links() [][2]int {
	var out [][2]int
	for i := range g.Nodes {
		for it := g.g.From(int64(i)); it.Next(); {
			if j := int(it.Node().ID()); j > i {
				out = append(out, [2]int{i, j})
			}
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a][0] != out[b][0] {
			return out[a][0] < out[b][0]
		}
		return out[a][1] < out[b][1]
	})
	return out
}

// Length returns the summed length of every link.
func (g *Graph) Length() float64 {
	var sum float64
	for _, l := range g.Links() {
		sum += geom.NewEdge(g.Nodes[l[0]], g.Nodes[l[1]]).Length()
	}
	return sum
}

// Endpoints returns the nodes of degree one.
func (g *Graph) Endpoints() []int {
	return g.byDegree(func(d int) bool { return d == 1 })
}

// Branches returns the nodes of degree three or more.
func (g *Graph) Branches() []int {
	return g.byDegree(func(d int) bool { return d >= 3 })
}

func (g *Graph) byDegree(keep func(int) bool) []int {
	var out []int
	for i := range g.Nodes {
		if keep(g.Degree(i)) {
			out = append(out, i)
		}
	}
	return out
}

// Components returns the number of connected components.
func (g *Graph) Components() int {
	return len(topo.ConnectedComponents(g.g))
}
