// Package graph holds the undirected graph that label propagation runs over.
//
// Nodes live in one contiguous slice and adjacency is stored as indices into
// it. Topology is fixed once a constructor returns; only labels change after
// that, and callers coordinate label access themselves.
package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidNode is returned for node ids outside [0, Len())
	ErrInvalidNode = errors.New("invalid node id")
	// ErrSelfLoop is returned for an edge from a node to itself
	ErrSelfLoop = errors.New("self loop")
	// ErrDuplicateEdge is returned when the same undirected edge is added twice
	ErrDuplicateEdge = errors.New("duplicate edge")
)

// Node is a vertex with its current label and neighbor indices
type Node struct {
	ID        int
	Label     int
	Neighbors []int
}

// Edge is an undirected edge, stored with From < To
type Edge struct {
	From int `json:"from" yaml:"from"`
	To   int `json:"to" yaml:"to"`
}

func (e Edge) String() string {
	return fmt.Sprintf("%d <-> %d", e.From, e.To)
}

// Graph owns the node array
type Graph struct {
	nodes []Node
	edges int
}

// New creates a graph of n isolated nodes, each labelled with its own id
func New(n int) (*Graph, error) {
	if n < 0 {
		return nil, fmt.Errorf("node count %d: must be non-negative", n)
	}

	g := &Graph{nodes: make([]Node, n)}
	for i := range g.nodes {
		g.nodes[i] = Node{ID: i, Label: i}
	}
	return g, nil
}

// Len returns the number of nodes
func (g *Graph) Len() int {
	return len(g.nodes)
}

// EdgeCount returns the number of undirected edges
func (g *Graph) EdgeCount() int {
	return g.edges
}

// Label returns the current label of node id
func (g *Graph) Label(id int) int {
	return g.nodes[id].Label
}

// SetLabel overwrites the label of node id
func (g *Graph) SetLabel(id, label int) {
	g.nodes[id].Label = label
}

// Neighbors returns the adjacency of node id. The slice must not be modified.
func (g *Graph) Neighbors(id int) []int {
	return g.nodes[id].Neighbors
}

// Degree returns the number of neighbors of node id
func (g *Graph) Degree(id int) int {
	return len(g.nodes[id].Neighbors)
}

// Labels returns a copy of every node's label, indexed by node id
func (g *Graph) Labels() []int {
	out := make([]int, len(g.nodes))
	for i := range g.nodes {
		out[i] = g.nodes[i].Label
	}
	return out
}

// ResetLabels restores the initial labelling (label = id)
func (g *Graph) ResetLabels() {
	for i := range g.nodes {
		g.nodes[i].Label = i
	}
}

// Edges lists every undirected edge once, ordered by (From, To)
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, g.edges)
	for i := range g.nodes {
		for _, j := range g.nodes[i].Neighbors {
			if i < j {
				out = append(out, Edge{From: i, To: j})
			}
		}
	}
	sortEdges(out)
	return out
}

func (g *Graph) valid(id int) bool {
	return id >= 0 && id < len(g.nodes)
}

// link appends the symmetric adjacency entries without checks
func (g *Graph) link(i, j int) {
	g.nodes[i].Neighbors = append(g.nodes[i].Neighbors, j)
	g.nodes[j].Neighbors = append(g.nodes[j].Neighbors, i)
	g.edges++
}

func (g *Graph) addEdge(i, j int) error {
	if !g.valid(i) || !g.valid(j) {
		return fmt.Errorf("edge (%d, %d): %w", i, j, ErrInvalidNode)
	}
	if i == j {
		return fmt.Errorf("edge (%d, %d): %w", i, j, ErrSelfLoop)
	}

	// scan the shorter list
	a, b := i, j
	if len(g.nodes[b].Neighbors) < len(g.nodes[a].Neighbors) {
		a, b = b, a
	}
	for _, n := range g.nodes[a].Neighbors {
		if n == b {
			return fmt.Errorf("edge (%d, %d): %w", i, j, ErrDuplicateEdge)
		}
	}

	g.link(i, j)
	return nil
}
