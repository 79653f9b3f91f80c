// Package journey records visited locations and purchases as a directed
// graph rooted at the traveler's origin node.
package journey

import (
	"fmt"
	"time"
)

// Node identifiers and styling for the rendered graph. Colors follow the
// vis-network palette the UI renders with.
const (
	originID    = "Me"
	originColor = "#FF5733"
	originSize  = 25

	locationColor = "#DAF7A6"
	itemColor     = "#97C2FC"

	edgeVisited   = "Visited"
	edgePurchased = "Purchased"
)

// now is swapped out in tests for deterministic item node keys.
var now = time.Now

// Node is one vertex of the journey graph.
type Node struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Title string `json:"title"`
	Color string `json:"color"`
	Size  int    `json:"size,omitempty"`
}

// Edge is one directed edge of the journey graph.
type Edge struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Label string `json:"label"`
}

// Graph is an append-only directed graph of locations and purchases. It is
// not safe for concurrent use; callers serialize access per session.
type Graph struct {
	nodes []Node
	edges []Edge
	index map[string]int
}

// New creates a graph holding only the origin node.
func New() *Graph {
	g := &Graph{index: make(map[string]int)}
	g.addNode(Node{
		ID:    originID,
		Label: originID,
		Title: "Starting Point",
		Color: originColor,
		Size:  originSize,
	})
	return g
}

func (g *Graph) addNode(n Node) {
	g.index[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, n)
}

func (g *Graph) hasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// RecordPurchase appends one purchase: a uniquely keyed item node, the
// location node if it is new, a Visited edge from the origin (duplicates
// allowed) and a Purchased edge from the location to the item.
func (g *Graph) RecordPurchase(item, location string, price float64, currency string) {
	itemID := fmt.Sprintf("%s_%d", item, now().UnixNano())
	g.addNode(Node{
		ID:    itemID,
		Label: item,
		Title: fmt.Sprintf("%v %s", price, currency),
		Color: itemColor,
	})

	if !g.hasNode(location) {
		g.addNode(Node{
			ID:    location,
			Label: location,
			Title: "Location",
			Color: locationColor,
		})
	}

	g.edges = append(g.edges,
		Edge{From: originID, To: location, Label: edgeVisited},
		Edge{From: location, To: itemID, Label: edgePurchased},
	)
}

// Document is the renderable snapshot of the graph.
type Document struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Export snapshots the graph for rendering. The returned slices are copies;
// mutating them does not affect the graph.
func (g *Graph) Export() Document {
	doc := Document{
		Nodes: make([]Node, len(g.nodes)),
		Edges: make([]Edge, len(g.edges)),
	}
	copy(doc.Nodes, g.nodes)
	copy(doc.Edges, g.edges)
	return doc
}

// Len returns the number of nodes, the origin included.
func (g *Graph) Len() int {
	return len(g.nodes)
}
