package constraints

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hkroes/aquanet/pkg/network"
)

// NodeTypeConstraint checks that every registered node carries a recognized
// node type. Unknown types can only enter through a loaded bundle; in-memory
// additions reject them at insertion.
type NodeTypeConstraint struct{}

// Name returns the constraint name.
func (c *NodeTypeConstraint) Name() string {
	return "NodeTypeConstraint"
}

// Validate reports one violation listing the full set of unrecognized types.
func (c *NodeTypeConstraint) Validate(net NetworkReader) []Violation {
	invalid := make(map[network.NodeType]struct{})
	for _, node := range net.Nodes() {
		if !node.Type.Known() {
			invalid[node.Type] = struct{}{}
		}
	}
	if len(invalid) == 0 {
		return nil
	}

	names := make([]string, 0, len(invalid))
	for nt := range invalid {
		names = append(names, string(nt))
	}
	sort.Strings(names)

	valid := make([]string, len(network.KnownNodeTypes))
	for i, nt := range network.KnownNodeTypes {
		valid[i] = string(nt)
	}

	return []Violation{{
		Kind:       InvalidNodeTypes,
		Constraint: c.Name(),
		Message: fmt.Sprintf("Invalid node types detected: [%s]. Choose from: %s.",
			strings.Join(names, ", "), strings.Join(valid, ", ")),
		Details: map[string]any{"invalid_types": names},
	}}
}
