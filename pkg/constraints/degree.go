package constraints

import (
	"fmt"
	"math"

	"github.com/hkroes/aquanet/pkg/network"
)

// Unbounded marks a degree bound with no upper limit.
const Unbounded = math.MaxInt

// Bounds is an inclusive (min, max) pair on the in- and out-degree of a node
// for one edge type.
type Bounds struct {
	MinIn  int
	MaxIn  int
	MinOut int
	MaxOut int
}

// DegreeTable maps node type and edge type to the permitted degree bounds.
// It is static configuration, never mutated by a running model.
type DegreeTable map[network.NodeType]map[network.EdgeType]Bounds

// Lookup returns the bounds for the given node and edge type. Types absent
// from the table permit no edges of that edge type at all.
func (t DegreeTable) Lookup(nt network.NodeType, et network.EdgeType) Bounds {
	if byEdge, ok := t[nt]; ok {
		if b, ok := byEdge[et]; ok {
			return b
		}
	}
	return Bounds{MinIn: 0, MaxIn: 0, MinOut: 0, MaxOut: 0}
}

// DefaultDegreeTable returns the shipped per-type degree rule set.
func DefaultDegreeTable() DegreeTable {
	return DegreeTable{
		network.Basin: {
			network.FlowEdge: {MinIn: 0, MaxIn: Unbounded, MinOut: 0, MaxOut: Unbounded},
		},
		network.FractionalFlow: {
			network.FlowEdge:    {MinIn: 1, MaxIn: 1, MinOut: 1, MaxOut: 1},
			network.ControlEdge: {MinIn: 0, MaxIn: 1, MinOut: 0, MaxOut: 0},
		},
		network.LevelBoundary: {
			network.FlowEdge: {MinIn: 0, MaxIn: Unbounded, MinOut: 0, MaxOut: Unbounded},
		},
		network.FlowBoundary: {
			network.FlowEdge: {MinIn: 0, MaxIn: 0, MinOut: 1, MaxOut: Unbounded},
		},
		network.LinearResistance: {
			network.FlowEdge:    {MinIn: 1, MaxIn: 1, MinOut: 1, MaxOut: 1},
			network.ControlEdge: {MinIn: 0, MaxIn: 1, MinOut: 0, MaxOut: 0},
		},
		network.ManningResistance: {
			network.FlowEdge:    {MinIn: 1, MaxIn: 1, MinOut: 1, MaxOut: 1},
			network.ControlEdge: {MinIn: 0, MaxIn: 1, MinOut: 0, MaxOut: 0},
		},
		network.TabulatedRatingCurve: {
			network.FlowEdge:    {MinIn: 1, MaxIn: 1, MinOut: 1, MaxOut: Unbounded},
			network.ControlEdge: {MinIn: 0, MaxIn: 1, MinOut: 0, MaxOut: 0},
		},
		network.Pump: {
			network.FlowEdge:    {MinIn: 1, MaxIn: 1, MinOut: 1, MaxOut: 1},
			network.ControlEdge: {MinIn: 0, MaxIn: 1, MinOut: 0, MaxOut: 0},
		},
		network.Outlet: {
			network.FlowEdge:    {MinIn: 1, MaxIn: 1, MinOut: 1, MaxOut: 1},
			network.ControlEdge: {MinIn: 0, MaxIn: 1, MinOut: 0, MaxOut: 0},
		},
		network.Terminal: {
			network.FlowEdge: {MinIn: 1, MaxIn: Unbounded, MinOut: 0, MaxOut: 0},
		},
		network.PidControl: {
			network.ControlEdge: {MinIn: 0, MaxIn: 1, MinOut: 1, MaxOut: 1},
		},
		network.DiscreteControl: {
			network.ControlEdge: {MinIn: 0, MaxIn: 0, MinOut: 1, MaxOut: Unbounded},
		},
		network.User: {
			network.FlowEdge: {MinIn: 1, MaxIn: 1, MinOut: 1, MaxOut: 1},
		},
	}
}

// DegreeConstraint validates the in- and out-degree of every node against the
// degree table entry for its type.
type DegreeConstraint struct {
	Table DegreeTable
}

// Name returns the constraint name.
func (dc *DegreeConstraint) Name() string {
	return "DegreeConstraint"
}

// Validate compares observed degrees against the bounds for every node, in
// ascending node ID order, then edge type order, then in before out.
func (dc *DegreeConstraint) Validate(net NetworkReader) []Violation {
	violations := make([]Violation, 0)
	for _, node := range net.Nodes() {
		if !node.Type.Known() {
			// Reported by the node type pass; no bounds exist for it.
			continue
		}
		for _, et := range network.EdgeTypes {
			bounds := dc.Table.Lookup(node.Type, et)
			in := net.Degree(node.ID, et, network.Incoming)
			out := net.Degree(node.ID, et, network.Outgoing)
			violations = dc.check(violations, node, et, network.Incoming, in, bounds.MinIn, bounds.MaxIn)
			violations = dc.check(violations, node, et, network.Outgoing, out, bounds.MinOut, bounds.MaxOut)
		}
	}
	return violations
}

func (dc *DegreeConstraint) check(violations []Violation, node *network.Node, et network.EdgeType, dir network.Direction, got, min, max int) []Violation {
	side := "inneighbor"
	if dir == network.Outgoing {
		side = "outneighbor"
	}
	if got < min {
		nodeID := node.ID
		violations = append(violations, Violation{
			Kind:       DegreeConstraintViolation,
			NodeID:     &nodeID,
			Constraint: dc.Name(),
			Message:    fmt.Sprintf("Node %d must have at least %d %s edge %s(s) (got %d)", node.ID, min, et, side, got),
			Details:    degreeDetails(node, et, dir, got, min, "min"),
		})
	}
	if max != Unbounded && got > max {
		nodeID := node.ID
		violations = append(violations, Violation{
			Kind:       DegreeConstraintViolation,
			NodeID:     &nodeID,
			Constraint: dc.Name(),
			Message:    fmt.Sprintf("Node %d can have at most %d %s edge %s(s) (got %d)", node.ID, max, et, side, got),
			Details:    degreeDetails(node, et, dir, got, max, "max"),
		})
	}
	return violations
}

func degreeDetails(node *network.Node, et network.EdgeType, dir network.Direction, got, bound int, kind string) map[string]any {
	return map[string]any{
		"node_type": string(node.Type),
		"edge_type": string(et),
		"direction": dir.String(),
		"count":     got,
		kind:        bound,
	}
}
