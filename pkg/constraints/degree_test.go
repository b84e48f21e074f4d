package constraints

import (
	"strings"
	"testing"

	"github.com/hkroes/aquanet/pkg/network"
)

func TestDegreeTable_Lookup(t *testing.T) {
	table := DefaultDegreeTable()

	b := table.Lookup(network.Pump, network.FlowEdge)
	if b != (Bounds{MinIn: 1, MaxIn: 1, MinOut: 1, MaxOut: 1}) {
		t.Errorf("Pump flow bounds: got %+v", b)
	}

	b = table.Lookup(network.Basin, network.ControlEdge)
	if b != (Bounds{}) {
		t.Errorf("Absent entry must permit no edges, got %+v", b)
	}

	b = table.Lookup(network.FlowBoundary, network.FlowEdge)
	if b.MaxOut != Unbounded {
		t.Errorf("FlowBoundary flow out must be unbounded, got %d", b.MaxOut)
	}
}

func TestDegreeConstraint_MaxViolation(t *testing.T) {
	// A pump with two upstream flow edges exceeds its max in-degree of 1.
	nodes := []*network.Node{{ID: 2, Type: network.Pump}}
	net := &fakeNetwork{
		nodes:    nodes,
		tableIDs: consistentTables(nodes),
		degrees: map[degreeKey]int{
			{2, network.FlowEdge, network.Incoming}: 2,
			{2, network.FlowEdge, network.Outgoing}: 1,
		},
	}

	dc := &DegreeConstraint{Table: DefaultDegreeTable()}
	violations := dc.Validate(net)
	if len(violations) != 1 {
		t.Fatalf("Expected 1 violation, got %d", len(violations))
	}
	v := violations[0]
	if v.Kind != DegreeConstraintViolation {
		t.Errorf("Expected DegreeConstraintViolation, got %s", v.Kind)
	}
	if v.NodeID == nil || *v.NodeID != 2 {
		t.Errorf("Expected NodeID 2, got %v", v.NodeID)
	}
	want := "Node 2 can have at most 1 flow edge inneighbor(s) (got 2)"
	if v.Message != want {
		t.Errorf("Unexpected message:\n got: %s\nwant: %s", v.Message, want)
	}
	if v.Details["count"] != 2 || v.Details["max"] != 1 {
		t.Errorf("Unexpected details: %v", v.Details)
	}
}

func TestDegreeConstraint_MinViolation(t *testing.T) {
	nodes := []*network.Node{{ID: 7, Type: network.Terminal}}
	net := &fakeNetwork{
		nodes:    nodes,
		tableIDs: consistentTables(nodes),
		degrees:  map[degreeKey]int{},
	}

	dc := &DegreeConstraint{Table: DefaultDegreeTable()}
	violations := dc.Validate(net)
	if len(violations) != 1 {
		t.Fatalf("Expected 1 violation, got %d", len(violations))
	}
	want := "Node 7 must have at least 1 flow edge inneighbor(s) (got 0)"
	if violations[0].Message != want {
		t.Errorf("Unexpected message:\n got: %s\nwant: %s", violations[0].Message, want)
	}
}

func TestDegreeConstraint_UnboundedMax(t *testing.T) {
	// A basin with many edges on either side never violates a max.
	nodes := []*network.Node{{ID: 1, Type: network.Basin}}
	net := &fakeNetwork{
		nodes:    nodes,
		tableIDs: consistentTables(nodes),
		degrees: map[degreeKey]int{
			{1, network.FlowEdge, network.Incoming}: 50,
			{1, network.FlowEdge, network.Outgoing}: 50,
		},
	}

	dc := &DegreeConstraint{Table: DefaultDegreeTable()}
	if violations := dc.Validate(net); len(violations) != 0 {
		t.Errorf("Expected 0 violations, got %d", len(violations))
	}
}

func TestDegreeConstraint_ControlBounds(t *testing.T) {
	// A pump under two controllers exceeds its control in-degree of 1.
	nodes := []*network.Node{{ID: 3, Type: network.Pump}}
	net := &fakeNetwork{
		nodes:    nodes,
		tableIDs: consistentTables(nodes),
		degrees: map[degreeKey]int{
			{3, network.FlowEdge, network.Incoming}:    1,
			{3, network.FlowEdge, network.Outgoing}:    1,
			{3, network.ControlEdge, network.Incoming}: 2,
		},
	}

	dc := &DegreeConstraint{Table: DefaultDegreeTable()}
	violations := dc.Validate(net)
	if len(violations) != 1 {
		t.Fatalf("Expected 1 violation, got %d", len(violations))
	}
	if !strings.Contains(violations[0].Message, "control edge inneighbor") {
		t.Errorf("Expected a control in-degree message, got: %s", violations[0].Message)
	}
}

func TestDegreeConstraint_OrderedOutput(t *testing.T) {
	// Violations come out ascending by node ID, in before out per node.
	nodes := []*network.Node{
		{ID: 5, Type: network.Pump},
		{ID: 2, Type: network.Outlet},
	}
	net := &fakeNetwork{
		nodes:    nodes,
		tableIDs: consistentTables(nodes),
		degrees:  map[degreeKey]int{},
	}

	dc := &DegreeConstraint{Table: DefaultDegreeTable()}
	violations := dc.Validate(net)
	if len(violations) != 4 {
		t.Fatalf("Expected 4 violations, got %d", len(violations))
	}
	wantIDs := []int64{2, 2, 5, 5}
	wantSides := []string{"in", "out", "in", "out"}
	for i, v := range violations {
		if *v.NodeID != wantIDs[i] {
			t.Errorf("Violation %d: expected node %d, got %d", i, wantIDs[i], *v.NodeID)
		}
		if v.Details["direction"] != wantSides[i] {
			t.Errorf("Violation %d: expected direction %s, got %v", i, wantSides[i], v.Details["direction"])
		}
	}
}
