package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hkroes/aquanet/pkg/constraints"
	"github.com/hkroes/aquanet/pkg/network"
)

func testConfig() Config {
	return Config{
		Starttime: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		Endtime:   time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// basinPumpBasin builds the smallest valid flow chain.
func basinPumpBasin(t *testing.T) *Model {
	t.Helper()
	m := New("test", testConfig())

	require.NoError(t, m.Add(
		network.Node{ID: 1, Type: network.Basin, Location: network.Point{X: 0, Y: 0}},
		BasinProfile{NodeID: 1, Area: 100, Level: 0},
		BasinProfile{NodeID: 1, Area: 1000, Level: 1},
		BasinState{NodeID: 1, Level: 0.5},
		BasinStatic{NodeID: 1},
	))
	require.NoError(t, m.Add(
		network.Node{ID: 2, Type: network.Pump, Location: network.Point{X: 1, Y: 0}},
		PumpStatic{NodeID: 2, FlowRate: 0.5},
	))
	require.NoError(t, m.Add(
		network.Node{ID: 3, Type: network.Basin, Location: network.Point{X: 2, Y: 0}},
		BasinProfile{NodeID: 3, Area: 100, Level: 0},
		BasinProfile{NodeID: 3, Area: 1000, Level: 1},
		BasinState{NodeID: 3, Level: 0.5},
		BasinStatic{NodeID: 3},
	))

	_, err := m.Connect(1, 2, network.FlowEdge, "")
	require.NoError(t, err)
	_, err = m.Connect(2, 3, network.FlowEdge, "")
	require.NoError(t, err)
	return m
}

func TestModel_ValidChain(t *testing.T) {
	m := basinPumpBasin(t)

	result := m.Validate()
	assert.True(t, result.Valid, "violations:\n%s", result.Messages())
	assert.Equal(t, 3, m.NodeCount())
	assert.Equal(t, 2, m.EdgeCount())
}

func TestModel_AddAtomicOnBadRow(t *testing.T) {
	m := New("test", testConfig())

	// Row referencing a different node ID.
	err := m.Add(
		network.Node{ID: 1, Type: network.Basin},
		BasinState{NodeID: 2, Level: 0.5},
	)
	require.Error(t, err)
	assert.Equal(t, 0, m.NodeCount(), "failed add must not register the node")
	assert.Equal(t, 0, m.Basin.State.Len(), "failed add must not append rows")

	// Row belonging to another type's tables.
	err = m.Add(
		network.Node{ID: 1, Type: network.Basin},
		PumpStatic{NodeID: 1, FlowRate: 1},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Pump tables")
	assert.Equal(t, 0, m.NodeCount())
	assert.Equal(t, 0, m.Pump.Static.Len())
}

func TestModel_RemoveNodeRefusedWhileConnected(t *testing.T) {
	m := basinPumpBasin(t)

	err := m.RemoveNode(2)
	require.ErrorIs(t, err, network.ErrNodeInUse)
	assert.Equal(t, 3, m.NodeCount())
	assert.Equal(t, 1, m.Pump.Static.Len(), "refused removal must keep the rows")

	require.NoError(t, m.Disconnect(1, 2))
	require.NoError(t, m.Disconnect(2, 3))
	require.NoError(t, m.RemoveNode(2))

	assert.Equal(t, 2, m.NodeCount())
	assert.Equal(t, 0, m.Pump.Static.Len(), "removal must cascade to the rows")
	_, err = m.Lookup(2)
	assert.ErrorIs(t, err, network.ErrUnknownNode)
}

func TestModel_ValidateReportsAllViolations(t *testing.T) {
	m := New("test", testConfig())

	// A pump with table rows but no edges, and a basin with no rows.
	require.NoError(t, m.Add(
		network.Node{ID: 1, Type: network.Pump},
		PumpStatic{NodeID: 1, FlowRate: 1},
	))
	require.NoError(t, m.Add(network.Node{ID: 2, Type: network.Basin}))

	result := m.Validate()
	require.False(t, result.Valid)

	assert.Len(t, result.ByKind(constraints.MissingNodeIDs), 1)
	assert.Len(t, result.ByKind(constraints.NodeIDMismatch), 1)
	assert.Len(t, result.ByKind(constraints.DegreeConstraintViolation), 2,
		"isolated pump misses flow in and out minimums")
}

func TestModel_DegreeViolationViaEdges(t *testing.T) {
	m := basinPumpBasin(t)
	require.NoError(t, m.Add(
		network.Node{ID: 4, Type: network.Basin},
		BasinProfile{NodeID: 4, Area: 100, Level: 0},
		BasinState{NodeID: 4, Level: 0},
		BasinStatic{NodeID: 4},
	))
	_, err := m.Connect(4, 2, network.FlowEdge, "")
	require.NoError(t, err, "structural insertion allows the edge; degree bounds are a validation concern")

	result := m.Validate()
	require.False(t, result.Valid)
	degree := result.ByKind(constraints.DegreeConstraintViolation)
	require.Len(t, degree, 1)
	assert.Equal(t, "Node 2 can have at most 1 flow edge inneighbor(s) (got 2)", degree[0].Message)
}

func TestModel_CustomDegreeTable(t *testing.T) {
	m := basinPumpBasin(t)
	require.NoError(t, m.Add(
		network.Node{ID: 4, Type: network.LinearResistance},
		LinearResistanceStatic{NodeID: 4, Resistance: 100},
	))
	_, err := m.Connect(1, 4, network.FlowEdge, "")
	require.NoError(t, err)
	_, err = m.Connect(4, 3, network.FlowEdge, "")
	require.NoError(t, err)

	require.True(t, m.Validate().Valid, "default table allows multiple basin outflows")

	// Cap basin flow out-degree at 1; basin 1 now feeds both the pump and
	// the resistance.
	table := constraints.DefaultDegreeTable()
	table[network.Basin][network.FlowEdge] = constraints.Bounds{
		MinIn: 0, MaxIn: constraints.Unbounded, MinOut: 0, MaxOut: 1,
	}
	m.SetDegreeTable(table)

	result := m.Validate()
	require.False(t, result.Valid)
	degree := result.ByKind(constraints.DegreeConstraintViolation)
	require.Len(t, degree, 1)
	assert.Equal(t, "Node 1 can have at most 1 flow edge outneighbor(s) (got 2)", degree[0].Message)
}

func TestModel_SortCanonicalizesRows(t *testing.T) {
	m := New("test", testConfig())
	require.NoError(t, m.Add(
		network.Node{ID: 2, Type: network.Basin},
		BasinProfile{NodeID: 2, Area: 1000, Level: 5},
		BasinProfile{NodeID: 2, Area: 100, Level: 1},
	))
	require.NoError(t, m.Add(
		network.Node{ID: 1, Type: network.Basin},
		BasinProfile{NodeID: 1, Area: 50, Level: 0},
	))

	m.Sort()

	rows := m.Basin.Profile.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, BasinProfile{NodeID: 1, Area: 50, Level: 0}, rows[0])
	assert.Equal(t, BasinProfile{NodeID: 2, Area: 100, Level: 1}, rows[1])
	assert.Equal(t, BasinProfile{NodeID: 2, Area: 1000, Level: 5}, rows[2])
}

func TestModel_Tables(t *testing.T) {
	m := basinPumpBasin(t)

	byName := make(map[string]int)
	for _, info := range m.Tables() {
		byName[info.Name] = info.Rows
	}
	assert.Equal(t, 4, byName["Basin / profile"])
	assert.Equal(t, 1, byName["Pump / static"])
	assert.Equal(t, 0, byName["Terminal / static"])
}

func TestModel_Neighbors(t *testing.T) {
	m := basinPumpBasin(t)

	assert.Equal(t, []int64{2}, m.Neighbors(1, network.FlowEdge, network.Outgoing))
	assert.Equal(t, []int64{2}, m.Neighbors(3, network.FlowEdge, network.Incoming))
	assert.Empty(t, m.Neighbors(2, network.ControlEdge, network.Incoming))
}
