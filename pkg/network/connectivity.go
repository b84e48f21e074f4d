package network

// neighborTypes is the static connectivity matrix: for each edge type, the
// node types a given upstream type may connect to. A from-type absent from
// the matrix for an edge type cannot originate edges of that type at all.
var neighborTypes = map[EdgeType]map[NodeType][]NodeType{
	FlowEdge: {
		Basin:                {LinearResistance, ManningResistance, TabulatedRatingCurve, Pump, Outlet, User},
		FractionalFlow:       {Basin, Terminal, LevelBoundary},
		LevelBoundary:        {LinearResistance, TabulatedRatingCurve, Pump, Outlet},
		FlowBoundary:         {Basin, FractionalFlow, Terminal, LevelBoundary},
		LinearResistance:     {Basin, LevelBoundary},
		ManningResistance:    {Basin},
		TabulatedRatingCurve: {Basin, FractionalFlow, Terminal, LevelBoundary},
		Pump:                 {Basin, FractionalFlow, Terminal, LevelBoundary},
		Outlet:               {Basin, FractionalFlow, Terminal, LevelBoundary},
		User:                 {Basin, FractionalFlow, Terminal, LevelBoundary},
	},
	ControlEdge: {
		PidControl:      {Pump, Outlet},
		DiscreteControl: {Pump, Outlet, TabulatedRatingCurve, LinearResistance, ManningResistance, FractionalFlow, PidControl},
	},
}

// CanConnect reports whether an edge of the given type is permitted from a
// node of type from to a node of type to.
func CanConnect(edgeType EdgeType, from, to NodeType) bool {
	allowed, ok := neighborTypes[edgeType][from]
	if !ok {
		return false
	}
	for _, nt := range allowed {
		if nt == to {
			return true
		}
	}
	return false
}

// DownstreamTypes returns the node types permitted downstream of the given
// type for the given edge type, in matrix order. The result is a copy.
func DownstreamTypes(edgeType EdgeType, from NodeType) []NodeType {
	allowed := neighborTypes[edgeType][from]
	out := make([]NodeType, len(allowed))
	copy(out, allowed)
	return out
}
