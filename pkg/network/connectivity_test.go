package network

import "testing"

func TestCanConnect_FlowEdges(t *testing.T) {
	allowed := []struct{ from, to NodeType }{
		{Basin, Pump},
		{Basin, Outlet},
		{Basin, LinearResistance},
		{Basin, ManningResistance},
		{Basin, TabulatedRatingCurve},
		{Pump, Basin},
		{Pump, Terminal},
		{Pump, FractionalFlow},
		{Outlet, Basin},
		{LinearResistance, Basin},
		{FlowBoundary, Basin},
		{FlowBoundary, Terminal},
		{LevelBoundary, LinearResistance},
		{TabulatedRatingCurve, Basin},
		{FractionalFlow, Basin},
		{FractionalFlow, Terminal},
		{User, Basin},
		{Basin, User},
	}
	for _, pair := range allowed {
		if !CanConnect(FlowEdge, pair.from, pair.to) {
			t.Errorf("Expected %s -> %s to be a valid flow edge", pair.from, pair.to)
		}
	}

	forbidden := []struct{ from, to NodeType }{
		{Basin, Basin},
		{Basin, Terminal},
		{Basin, LevelBoundary},
		{Terminal, Basin},
		{Pump, Pump},
		{LevelBoundary, Basin},
		{PidControl, Basin},
		{DiscreteControl, Pump},
	}
	for _, pair := range forbidden {
		if CanConnect(FlowEdge, pair.from, pair.to) {
			t.Errorf("Expected %s -> %s to be rejected as a flow edge", pair.from, pair.to)
		}
	}
}

func TestCanConnect_ControlEdges(t *testing.T) {
	allowed := []struct{ from, to NodeType }{
		{PidControl, Pump},
		{PidControl, Outlet},
		{DiscreteControl, Pump},
		{DiscreteControl, Outlet},
		{DiscreteControl, TabulatedRatingCurve},
		{DiscreteControl, LinearResistance},
		{DiscreteControl, ManningResistance},
		{DiscreteControl, FractionalFlow},
		{DiscreteControl, PidControl},
	}
	for _, pair := range allowed {
		if !CanConnect(ControlEdge, pair.from, pair.to) {
			t.Errorf("Expected %s -> %s to be a valid control edge", pair.from, pair.to)
		}
	}

	forbidden := []struct{ from, to NodeType }{
		{PidControl, Basin},
		{PidControl, TabulatedRatingCurve},
		{DiscreteControl, Basin},
		{Basin, Pump},
		{Pump, PidControl},
	}
	for _, pair := range forbidden {
		if CanConnect(ControlEdge, pair.from, pair.to) {
			t.Errorf("Expected %s -> %s to be rejected as a control edge", pair.from, pair.to)
		}
	}
}

func TestCanConnect_UnknownTypes(t *testing.T) {
	if CanConnect(FlowEdge, NodeType("Reservoir"), Basin) {
		t.Error("Unknown source type must not connect")
	}
	if CanConnect(EdgeType("teleport"), Basin, Pump) {
		t.Error("Unknown edge type must not connect")
	}
}

func TestDownstreamTypes(t *testing.T) {
	types := DownstreamTypes(ControlEdge, PidControl)
	if len(types) != 2 {
		t.Fatalf("Expected 2 downstream types for PidControl control edges, got %v", types)
	}
	if got := DownstreamTypes(FlowEdge, Terminal); len(got) != 0 {
		t.Errorf("Terminal must have no downstream flow types, got %v", got)
	}
}
