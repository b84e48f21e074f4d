package constraints

import (
	"fmt"
	"sort"

	"github.com/hkroes/aquanet/pkg/network"
)

// TableIDConstraint checks the node_id values referenced across all per-type
// parameter tables, merged: every value must be a positive integer, no value
// may appear in the tables of more than one node type, and the merged set
// must equal the registered node ID set exactly.
type TableIDConstraint struct{}

// Name returns the constraint name.
func (c *TableIDConstraint) Name() string {
	return "TableIDConstraint"
}

// Validate reports, in order: non-positive IDs, IDs claimed by multiple node
// types, registered IDs missing from the tables, and table IDs that resolve
// to no registered node. Each violation lists the offending IDs by value.
func (c *TableIDConstraint) Validate(net NetworkReader) []Violation {
	tableIDs := net.TableNodeIDs()

	var nonPositive []int64
	typesPerID := make(map[int64]map[network.NodeType]struct{})
	merged := make(map[int64]struct{})
	for nt, ids := range tableIDs {
		for _, id := range ids {
			if id <= 0 {
				nonPositive = append(nonPositive, id)
				continue
			}
			merged[id] = struct{}{}
			if typesPerID[id] == nil {
				typesPerID[id] = make(map[network.NodeType]struct{})
			}
			typesPerID[id][nt] = struct{}{}
		}
	}

	violations := make([]Violation, 0)

	if len(nonPositive) > 0 {
		ids := sortedUnique(nonPositive)
		violations = append(violations, Violation{
			Kind:       NonPositiveNodeIDs,
			Constraint: c.Name(),
			Message:    fmt.Sprintf("Node IDs must be positive integers, got %v.", ids),
			Details:    map[string]any{"node_ids": ids},
		})
	}

	var duplicated []int64
	for id, types := range typesPerID {
		if len(types) > 1 {
			duplicated = append(duplicated, id)
		}
	}
	if len(duplicated) > 0 {
		ids := sortedUnique(duplicated)
		violations = append(violations, Violation{
			Kind:       DuplicateNodeIDAcrossTypes,
			Constraint: c.Name(),
			Message:    fmt.Sprintf("These node IDs were assigned to multiple node types: %v.", ids),
			Details:    map[string]any{"node_ids": ids},
		})
	}

	registered := make(map[int64]struct{}, net.NodeCount())
	for _, node := range net.Nodes() {
		registered[node.ID] = struct{}{}
	}

	var missing []int64
	for id := range registered {
		if _, ok := merged[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		ids := sortedUnique(missing)
		violations = append(violations, Violation{
			Kind:       MissingNodeIDs,
			Constraint: c.Name(),
			Message:    fmt.Sprintf("Expected node IDs for all %d registered nodes, but these node IDs are missing from the tables: %v.", net.NodeCount(), ids),
			Details:    map[string]any{"node_ids": ids},
		})
	}

	var unexpected []int64
	for id := range merged {
		if _, ok := registered[id]; !ok {
			unexpected = append(unexpected, id)
		}
	}
	if len(unexpected) > 0 {
		ids := sortedUnique(unexpected)
		violations = append(violations, Violation{
			Kind:       UnexpectedNodeIDs,
			Constraint: c.Name(),
			Message:    fmt.Sprintf("These node IDs appear in the tables but are not registered: %v.", ids),
			Details:    map[string]any{"node_ids": ids},
		})
	}

	return violations
}

func sortedUnique(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
