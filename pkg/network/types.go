// Package network owns the in-memory representation of a hydraulic network:
// typed nodes, directed flow and control edges, and the static connectivity
// matrix describing which node types may be linked. Structural rules (unique
// positive node IDs, unique ordered edge pairs, permitted type pairs) are
// enforced at insertion time; whole-network consistency lives in the
// constraints package.
package network

// NodeType tags a node with its hydraulic role. The set is a static registry,
// not discovered at runtime; KnownNodeTypes lists every member.
type NodeType string

const (
	Basin                NodeType = "Basin"
	FractionalFlow       NodeType = "FractionalFlow"
	LevelBoundary        NodeType = "LevelBoundary"
	FlowBoundary         NodeType = "FlowBoundary"
	LinearResistance     NodeType = "LinearResistance"
	ManningResistance    NodeType = "ManningResistance"
	TabulatedRatingCurve NodeType = "TabulatedRatingCurve"
	Pump                 NodeType = "Pump"
	Outlet               NodeType = "Outlet"
	Terminal             NodeType = "Terminal"
	PidControl           NodeType = "PidControl"
	DiscreteControl      NodeType = "DiscreteControl"
	User                 NodeType = "User"
)

// KnownNodeTypes is the fixed enumeration of valid node types, in the
// canonical order used for deterministic reporting.
var KnownNodeTypes = []NodeType{
	Basin,
	FractionalFlow,
	LevelBoundary,
	FlowBoundary,
	LinearResistance,
	ManningResistance,
	TabulatedRatingCurve,
	Pump,
	Outlet,
	Terminal,
	PidControl,
	DiscreteControl,
	User,
}

var knownNodeTypes = func() map[NodeType]struct{} {
	m := make(map[NodeType]struct{}, len(KnownNodeTypes))
	for _, nt := range KnownNodeTypes {
		m[nt] = struct{}{}
	}
	return m
}()

// Known reports whether nt is a member of the fixed node type enumeration.
func (nt NodeType) Known() bool {
	_, ok := knownNodeTypes[nt]
	return ok
}

// EdgeType distinguishes water-carrying edges from control signal edges.
type EdgeType string

const (
	FlowEdge    EdgeType = "flow"
	ControlEdge EdgeType = "control"
)

// EdgeTypes lists both edge types in reporting order.
var EdgeTypes = []EdgeType{FlowEdge, ControlEdge}

// Known reports whether et is "flow" or "control".
func (et EdgeType) Known() bool {
	return et == FlowEdge || et == ControlEdge
}

// Point is a 2D node location. It is carried for geometry only and is not
// load-bearing for any validation rule.
type Point struct {
	X float64
	Y float64
}

// Node is a typed, uniquely identified point in the network. Identity is
// immutable once registered.
type Node struct {
	ID           int64
	Type         NodeType
	Name         string
	SubnetworkID int64 // 0 means no subnetwork assignment
	Location     Point
}

// Edge is a directed connection between two registered nodes. The ID is
// assigned sequentially from 1 in insertion order. Geometry is derived from
// the endpoint locations at connect time.
type Edge struct {
	ID           int64
	FromNodeID   int64
	ToNodeID     int64
	Type         EdgeType
	Name         string
	SubnetworkID int64
	Geometry     [2]Point
}

// Clone returns a copy of the edge.
func (e *Edge) Clone() *Edge {
	c := *e
	return &c
}
