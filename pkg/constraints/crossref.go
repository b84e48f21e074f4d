package constraints

import (
	"fmt"

	"github.com/hkroes/aquanet/pkg/network"
)

// CrossRefConstraint checks, per node type, that the set of registered node
// IDs of that type equals the set of node IDs in that type's own tables.
type CrossRefConstraint struct{}

// Name returns the constraint name.
func (c *CrossRefConstraint) Name() string {
	return "CrossRefConstraint"
}

// Validate reports one violation per mismatched node type, in canonical node
// type order, listing both sides of the mismatch.
func (c *CrossRefConstraint) Validate(net NetworkReader) []Violation {
	tableIDs := net.TableNodeIDs()

	violations := make([]Violation, 0)
	for _, nt := range network.KnownNodeTypes {
		registered := make(map[int64]struct{})
		for _, node := range net.NodesOfType(nt) {
			registered[node.ID] = struct{}{}
		}
		inTables := make(map[int64]struct{})
		for _, id := range tableIDs[nt] {
			inTables[id] = struct{}{}
		}
		if setsEqual(registered, inTables) {
			continue
		}

		regIDs := setToSorted(registered)
		tblIDs := setToSorted(inTables)
		violations = append(violations, Violation{
			Kind:       NodeIDMismatch,
			Constraint: c.Name(),
			Message: fmt.Sprintf("The node IDs in the %s tables %v do not correspond with the node IDs registered as %s %v.",
				nt, tblIDs, nt, regIDs),
			Details: map[string]any{
				"node_type":    string(nt),
				"table_ids":    tblIDs,
				"registry_ids": regIDs,
			},
		})
	}
	return violations
}

func setsEqual(a, b map[int64]struct{}) bool {
	if len(a) != len(b) {
		return false
	}
	for id := range a {
		if _, ok := b[id]; !ok {
			return false
		}
	}
	return true
}

func setToSorted(set map[int64]struct{}) []int64 {
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return sortedUnique(ids)
}
