package network

import (
	"fmt"
	"sort"
)

// Direction selects which incident edges of a node to consider.
type Direction int

const (
	Outgoing Direction = iota // edges leaving the node
	Incoming                  // edges arriving at the node
)

func (d Direction) String() string {
	switch d {
	case Outgoing:
		return "out"
	case Incoming:
		return "in"
	default:
		return "unknown"
	}
}

// DuplicateEdgeError reports an attempt to insert a second edge between the
// same ordered node pair.
type DuplicateEdgeError struct {
	FromNodeID int64
	ToNodeID   int64
}

func (e *DuplicateEdgeError) Error() string {
	return fmt.Sprintf("Edges have to be unique, but edge with from_node_id %d to_node_id %d already exists.", e.FromNodeID, e.ToNodeID)
}

func (e *DuplicateEdgeError) Unwrap() error { return ErrDuplicateEdge }

// IncompatibleTypesError reports an edge between a node type pair the
// connectivity matrix does not permit.
type IncompatibleTypesError struct {
	FromType NodeType
	ToType   NodeType
	EdgeType EdgeType
}

func (e *IncompatibleTypesError) Error() string {
	return fmt.Sprintf("Node of type %s cannot be upstream of node of type %s", e.FromType, e.ToType)
}

func (e *IncompatibleTypesError) Unwrap() error { return ErrIncompatibleNodeTypes }

// EdgeSet owns edge identity. Edges reference nodes by ID; the registry
// passed at construction is the authority on which IDs exist.
type EdgeSet struct {
	registry *Registry
	edges    []*Edge
	byPair   map[[2]int64]int64 // ordered (from, to) pair -> edge ID
	outgoing map[int64][]int64  // node ID -> edge IDs, insertion order
	incoming map[int64][]int64
	nextID   int64
}

// NewEdgeSet creates an empty edge set backed by the given registry.
func NewEdgeSet(registry *Registry) *EdgeSet {
	return &EdgeSet{
		registry: registry,
		byPair:   make(map[[2]int64]int64),
		outgoing: make(map[int64][]int64),
		incoming: make(map[int64][]int64),
		nextID:   1,
	}
}

// Connect inserts a directed edge between two registered nodes and returns
// it. Both endpoints must exist, the ordered pair must be new regardless of
// edge type, and the type pair must be permitted by the connectivity matrix.
// The edge ID is sequential, 1-based, in insertion order.
func (es *EdgeSet) Connect(fromNodeID, toNodeID int64, edgeType EdgeType, name string) (*Edge, error) {
	if !edgeType.Known() {
		return nil, edgeError("connect", string(edgeType), ErrUnknownEdgeType)
	}
	from, err := es.registry.Lookup(fromNodeID)
	if err != nil {
		return nil, nodeError("connect", fromNodeID, ErrUnknownNode)
	}
	to, err := es.registry.Lookup(toNodeID)
	if err != nil {
		return nil, nodeError("connect", toNodeID, ErrUnknownNode)
	}
	pair := [2]int64{fromNodeID, toNodeID}
	if _, exists := es.byPair[pair]; exists {
		return nil, &DuplicateEdgeError{FromNodeID: fromNodeID, ToNodeID: toNodeID}
	}
	if !CanConnect(edgeType, from.Type, to.Type) {
		return nil, &IncompatibleTypesError{FromType: from.Type, ToType: to.Type, EdgeType: edgeType}
	}

	edge := &Edge{
		ID:         es.nextID,
		FromNodeID: fromNodeID,
		ToNodeID:   toNodeID,
		Type:       edgeType,
		Name:       name,
		Geometry:   [2]Point{from.Location, to.Location},
	}
	es.nextID++
	es.edges = append(es.edges, edge)
	es.byPair[pair] = edge.ID
	es.outgoing[fromNodeID] = append(es.outgoing[fromNodeID], edge.ID)
	es.incoming[toNodeID] = append(es.incoming[toNodeID], edge.ID)
	return edge.Clone(), nil
}

// Restore inserts an edge loaded from a persisted bundle, keeping its
// original ID. Uniqueness of the ordered pair still holds.
func (es *EdgeSet) Restore(edge Edge) error {
	pair := [2]int64{edge.FromNodeID, edge.ToNodeID}
	if _, exists := es.byPair[pair]; exists {
		return &DuplicateEdgeError{FromNodeID: edge.FromNodeID, ToNodeID: edge.ToNodeID}
	}
	e := edge
	es.edges = append(es.edges, &e)
	es.byPair[pair] = e.ID
	es.outgoing[e.FromNodeID] = append(es.outgoing[e.FromNodeID], e.ID)
	es.incoming[e.ToNodeID] = append(es.incoming[e.ToNodeID], e.ID)
	if e.ID >= es.nextID {
		es.nextID = e.ID + 1
	}
	return nil
}

// Disconnect removes the edge between the given ordered node pair.
func (es *EdgeSet) Disconnect(fromNodeID, toNodeID int64) error {
	pair := [2]int64{fromNodeID, toNodeID}
	edgeID, exists := es.byPair[pair]
	if !exists {
		return edgeError("disconnect", fmt.Sprintf("from %d to %d", fromNodeID, toNodeID), ErrEdgeNotFound)
	}
	delete(es.byPair, pair)
	es.outgoing[fromNodeID] = removeID(es.outgoing[fromNodeID], edgeID)
	es.incoming[toNodeID] = removeID(es.incoming[toNodeID], edgeID)
	for i, e := range es.edges {
		if e.ID == edgeID {
			es.edges = append(es.edges[:i], es.edges[i+1:]...)
			break
		}
	}
	return nil
}

// RemoveIncident deletes every edge that references the node, in either
// direction, and returns the number removed.
func (es *EdgeSet) RemoveIncident(nodeID int64) int {
	removed := 0
	kept := es.edges[:0]
	for _, e := range es.edges {
		if e.FromNodeID != nodeID && e.ToNodeID != nodeID {
			kept = append(kept, e)
			continue
		}
		removed++
		delete(es.byPair, [2]int64{e.FromNodeID, e.ToNodeID})
		es.outgoing[e.FromNodeID] = removeID(es.outgoing[e.FromNodeID], e.ID)
		es.incoming[e.ToNodeID] = removeID(es.incoming[e.ToNodeID], e.ID)
	}
	es.edges = kept
	return removed
}

// Neighbors returns the IDs of nodes connected to the given node by edges of
// the given type in the given direction, deduplicated and ascending.
func (es *EdgeSet) Neighbors(nodeID int64, edgeType EdgeType, direction Direction) []int64 {
	var incident []int64
	if direction == Outgoing {
		incident = es.outgoing[nodeID]
	} else {
		incident = es.incoming[nodeID]
	}
	seen := make(map[int64]struct{})
	for _, edgeID := range incident {
		edge := es.lookup(edgeID)
		if edge == nil || edge.Type != edgeType {
			continue
		}
		if direction == Outgoing {
			seen[edge.ToNodeID] = struct{}{}
		} else {
			seen[edge.FromNodeID] = struct{}{}
		}
	}
	out := make([]int64, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Degree counts edges of the given type incident to the node in the given
// direction.
func (es *EdgeSet) Degree(nodeID int64, edgeType EdgeType, direction Direction) int {
	var incident []int64
	if direction == Outgoing {
		incident = es.outgoing[nodeID]
	} else {
		incident = es.incoming[nodeID]
	}
	count := 0
	for _, edgeID := range incident {
		if edge := es.lookup(edgeID); edge != nil && edge.Type == edgeType {
			count++
		}
	}
	return count
}

// HasIncident reports whether any edge references the node.
func (es *EdgeSet) HasIncident(nodeID int64) bool {
	return len(es.outgoing[nodeID]) > 0 || len(es.incoming[nodeID]) > 0
}

// All returns every edge in insertion order.
func (es *EdgeSet) All() []*Edge {
	out := make([]*Edge, len(es.edges))
	for i, e := range es.edges {
		out[i] = e.Clone()
	}
	return out
}

// Len returns the number of edges.
func (es *EdgeSet) Len() int {
	return len(es.edges)
}

func (es *EdgeSet) lookup(edgeID int64) *Edge {
	for _, e := range es.edges {
		if e.ID == edgeID {
			return e
		}
	}
	return nil
}

func removeID(ids []int64, id int64) []int64 {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
