// Package constraints implements the whole-network consistency pass: node
// type validity, table node-ID validity, cross-reference checks between the
// node registry and the per-type tables, and per-type degree bounds. All
// violations from all passes are accumulated so a single validation run
// surfaces the complete punch list.
package constraints

import (
	"github.com/hkroes/aquanet/pkg/network"
)

// NetworkReader is the read-only view of an assembled model needed for
// validation. It decouples the constraints from the model implementation and
// makes them testable against small fixtures.
type NetworkReader interface {
	// NodeCount returns the number of registered nodes.
	NodeCount() int
	// Nodes returns every registered node ordered by ascending ID.
	Nodes() []*network.Node
	// NodesOfType returns the registered nodes of one type, ascending by ID.
	NodesOfType(nt network.NodeType) []*network.Node
	// TableNodeIDs returns, per node type, the node IDs referenced by that
	// type's parameter tables, in table order and including duplicates and
	// invalid values.
	TableNodeIDs() map[network.NodeType][]int64
	// Degree counts edges of the given type incident to a node in the given
	// direction.
	Degree(nodeID int64, et network.EdgeType, dir network.Direction) int
}

// ViolationKind categorizes a validation violation.
type ViolationKind int

const (
	InvalidNodeTypes ViolationKind = iota
	NonPositiveNodeIDs
	DuplicateNodeIDAcrossTypes
	MissingNodeIDs
	UnexpectedNodeIDs
	NodeIDMismatch
	DegreeConstraintViolation
)

func (k ViolationKind) String() string {
	switch k {
	case InvalidNodeTypes:
		return "InvalidNodeTypes"
	case NonPositiveNodeIDs:
		return "NonPositiveNodeIDs"
	case DuplicateNodeIDAcrossTypes:
		return "DuplicateNodeIDAcrossTypes"
	case MissingNodeIDs:
		return "MissingNodeIDs"
	case UnexpectedNodeIDs:
		return "UnexpectedNodeIDs"
	case NodeIDMismatch:
		return "NodeIDMismatch"
	case DegreeConstraintViolation:
		return "DegreeConstraintViolation"
	default:
		return "Unknown"
	}
}

// Violation reports one validation failure. NodeID is nil for violations that
// concern a set of IDs rather than a single node.
type Violation struct {
	Kind       ViolationKind
	NodeID     *int64
	Constraint string
	Message    string
	Details    map[string]any
}

// Constraint is one validation pass over the network.
type Constraint interface {
	// Validate checks the constraint and returns all violations found, in
	// ascending node ID order where a node is identifiable.
	Validate(net NetworkReader) []Violation

	// Name returns a human-readable name for the constraint.
	Name() string
}
