// Package model assembles a full hydraulic network schematisation: the node
// registry, the edge set, and one parameter table set per node type, under a
// single node ID namespace. It validates the assembled network and persists
// it as a bundle (TOML configuration plus an SQLite table container).
package model

import (
	"fmt"

	"github.com/hkroes/aquanet/pkg/constraints"
	"github.com/hkroes/aquanet/pkg/logging"
	"github.com/hkroes/aquanet/pkg/network"
)

// Model is a complete in-memory schematisation. It is built by one caller,
// validated, and written once; it is not designed for concurrent mutation.
type Model struct {
	Name   string
	Config Config

	nodes   *network.Registry
	edges   *network.EdgeSet
	degrees constraints.DegreeTable
	logger  logging.Logger

	Basin                BasinTables
	Pump                 PumpTables
	Outlet               OutletTables
	LevelBoundary        LevelBoundaryTables
	FlowBoundary         FlowBoundaryTables
	LinearResistance     LinearResistanceTables
	ManningResistance    ManningResistanceTables
	TabulatedRatingCurve TabulatedRatingCurveTables
	FractionalFlow       FractionalFlowTables
	Terminal             TerminalTables
	PidControl           PidControlTables
	DiscreteControl      DiscreteControlTables
	User                 UserTables
}

// New creates an empty model with the shipped degree rule set.
func New(name string, config Config) *Model {
	m := &Model{
		Name:    name,
		Config:  config,
		nodes:   network.NewRegistry(),
		degrees: constraints.DefaultDegreeTable(),
		logger:  logging.DefaultLogger().With(logging.String("model", name)),
	}
	m.edges = network.NewEdgeSet(m.nodes)
	m.initTables()
	return m
}

func (m *Model) initTables() {
	m.Basin.Profile = newTable(basinProfileSchema, lessBasinProfile)
	m.Basin.State = newTable(basinStateSchema, lessByNodeID[BasinState])
	m.Basin.Static = newTable(basinStaticSchema, lessByNodeID[BasinStatic])
	m.Pump.Static = newTable(pumpStaticSchema, lessByNodeID[PumpStatic])
	m.Outlet.Static = newTable(outletStaticSchema, lessByNodeID[OutletStatic])
	m.LevelBoundary.Static = newTable(levelBoundaryStaticSchema, lessByNodeID[LevelBoundaryStatic])
	m.FlowBoundary.Static = newTable(flowBoundaryStaticSchema, lessByNodeID[FlowBoundaryStatic])
	m.LinearResistance.Static = newTable(linearResistanceStaticSchema, lessByNodeID[LinearResistanceStatic])
	m.ManningResistance.Static = newTable(manningResistanceStaticSchema, lessByNodeID[ManningResistanceStatic])
	m.TabulatedRatingCurve.Static = newTable(tabulatedRatingCurveStaticSchema, lessTabulatedRatingCurveStatic)
	m.FractionalFlow.Static = newTable(fractionalFlowStaticSchema, lessByNodeID[FractionalFlowStatic])
	m.Terminal.Static = newTable(terminalStaticSchema, lessByNodeID[TerminalStatic])
	m.PidControl.Static = newTable(pidControlStaticSchema, lessByNodeID[PidControlStatic])
	m.DiscreteControl.Condition = newTable(discreteControlConditionSchema, lessDiscreteControlCondition)
	m.DiscreteControl.Logic = newTable(discreteControlLogicSchema, lessDiscreteControlLogic)
	m.User.Static = newTable(userStaticSchema, lessUserStatic)
	m.User.Time = newTable(userTimeSchema, lessUserTime)
}

// tableViews returns every table in canonical node type order.
func (m *Model) tableViews() []tableView {
	return []tableView{
		&m.Basin.Profile,
		&m.Basin.State,
		&m.Basin.Static,
		&m.FractionalFlow.Static,
		&m.LevelBoundary.Static,
		&m.FlowBoundary.Static,
		&m.LinearResistance.Static,
		&m.ManningResistance.Static,
		&m.TabulatedRatingCurve.Static,
		&m.Pump.Static,
		&m.Outlet.Static,
		&m.Terminal.Static,
		&m.PidControl.Static,
		&m.DiscreteControl.Condition,
		&m.DiscreteControl.Logic,
		&m.User.Static,
		&m.User.Time,
	}
}

// Add registers a node and appends its parameter rows in one atomic step: if
// the node is rejected or any row does not belong to it, nothing changes.
func (m *Model) Add(node network.Node, rows ...Row) error {
	for _, row := range rows {
		if row.NodeRef() != node.ID {
			return fmt.Errorf("add node %d: row references node_id %d", node.ID, row.NodeRef())
		}
		schema, err := m.schemaFor(row)
		if err != nil {
			return fmt.Errorf("add node %d: %w", node.ID, err)
		}
		if schema.NodeType != node.Type {
			return fmt.Errorf("add node %d: row belongs to %s tables, node has type %s", node.ID, schema.NodeType, node.Type)
		}
	}
	if err := m.nodes.Add(node); err != nil {
		return err
	}
	for _, row := range rows {
		m.appendRow(row)
	}
	m.logger.Debug("node added", logging.NodeID(node.ID), logging.String("node_type", string(node.Type)))
	return nil
}

func (m *Model) schemaFor(row Row) (Schema, error) {
	switch row.(type) {
	case BasinProfile:
		return basinProfileSchema, nil
	case BasinState:
		return basinStateSchema, nil
	case BasinStatic:
		return basinStaticSchema, nil
	case PumpStatic:
		return pumpStaticSchema, nil
	case OutletStatic:
		return outletStaticSchema, nil
	case LevelBoundaryStatic:
		return levelBoundaryStaticSchema, nil
	case FlowBoundaryStatic:
		return flowBoundaryStaticSchema, nil
	case LinearResistanceStatic:
		return linearResistanceStaticSchema, nil
	case ManningResistanceStatic:
		return manningResistanceStaticSchema, nil
	case TabulatedRatingCurveStatic:
		return tabulatedRatingCurveStaticSchema, nil
	case FractionalFlowStatic:
		return fractionalFlowStaticSchema, nil
	case TerminalStatic:
		return terminalStaticSchema, nil
	case PidControlStatic:
		return pidControlStaticSchema, nil
	case DiscreteControlCondition:
		return discreteControlConditionSchema, nil
	case DiscreteControlLogic:
		return discreteControlLogicSchema, nil
	case UserStatic:
		return userStaticSchema, nil
	case UserTime:
		return userTimeSchema, nil
	default:
		return Schema{}, fmt.Errorf("unknown row type %T", row)
	}
}

func (m *Model) appendRow(row Row) {
	switch r := row.(type) {
	case BasinProfile:
		m.Basin.Profile.Append(r)
	case BasinState:
		m.Basin.State.Append(r)
	case BasinStatic:
		m.Basin.Static.Append(r)
	case PumpStatic:
		m.Pump.Static.Append(r)
	case OutletStatic:
		m.Outlet.Static.Append(r)
	case LevelBoundaryStatic:
		m.LevelBoundary.Static.Append(r)
	case FlowBoundaryStatic:
		m.FlowBoundary.Static.Append(r)
	case LinearResistanceStatic:
		m.LinearResistance.Static.Append(r)
	case ManningResistanceStatic:
		m.ManningResistance.Static.Append(r)
	case TabulatedRatingCurveStatic:
		m.TabulatedRatingCurve.Static.Append(r)
	case FractionalFlowStatic:
		m.FractionalFlow.Static.Append(r)
	case TerminalStatic:
		m.Terminal.Static.Append(r)
	case PidControlStatic:
		m.PidControl.Static.Append(r)
	case DiscreteControlCondition:
		m.DiscreteControl.Condition.Append(r)
	case DiscreteControlLogic:
		m.DiscreteControl.Logic.Append(r)
	case UserStatic:
		m.User.Static.Append(r)
	case UserTime:
		m.User.Time.Append(r)
	}
}

// Connect inserts a directed edge between two registered nodes.
func (m *Model) Connect(fromNodeID, toNodeID int64, edgeType network.EdgeType, name string) (*network.Edge, error) {
	edge, err := m.edges.Connect(fromNodeID, toNodeID, edgeType, name)
	if err != nil {
		return nil, err
	}
	m.logger.Debug("edge added", logging.EdgeID(edge.ID),
		logging.Int64("from_node_id", fromNodeID), logging.Int64("to_node_id", toNodeID))
	return edge, nil
}

// Disconnect removes the edge between the given ordered node pair.
func (m *Model) Disconnect(fromNodeID, toNodeID int64) error {
	return m.edges.Disconnect(fromNodeID, toNodeID)
}

// RemoveNode deletes a node and cascades to its parameter rows. It is
// refused while any edge still references the node.
func (m *Model) RemoveNode(id int64) error {
	if m.edges.HasIncident(id) {
		return &network.Error{Op: "remove", Entity: "node", ID: id, Cause: network.ErrNodeInUse}
	}
	if err := m.nodes.Remove(id); err != nil {
		return err
	}
	for _, t := range m.tableViews() {
		t.removeNodeRows(id)
	}
	return nil
}

// Lookup returns the node with the given ID.
func (m *Model) Lookup(id int64) (*network.Node, error) {
	return m.nodes.Lookup(id)
}

// Edges returns every edge in insertion order.
func (m *Model) Edges() []*network.Edge {
	return m.edges.All()
}

// Neighbors returns the neighbor node IDs of the given node for one edge
// type and direction.
func (m *Model) Neighbors(nodeID int64, edgeType network.EdgeType, direction network.Direction) []int64 {
	return m.edges.Neighbors(nodeID, edgeType, direction)
}

// Nodes returns every registered node ordered by ascending ID.
func (m *Model) Nodes() []*network.Node {
	return m.nodes.All()
}

// NodeCount returns the number of registered nodes.
func (m *Model) NodeCount() int {
	return m.nodes.Len()
}

// EdgeCount returns the number of edges.
func (m *Model) EdgeCount() int {
	return m.edges.Len()
}

// TableInfo summarizes one parameter table.
type TableInfo struct {
	Name string
	Rows int
}

// Tables lists every parameter table with its row count, in canonical order.
func (m *Model) Tables() []TableInfo {
	views := m.tableViews()
	out := make([]TableInfo, len(views))
	for i, t := range views {
		out[i] = TableInfo{Name: t.Schema().Name(), Rows: t.Len()}
	}
	return out
}

// DegreeTable returns the degree rule set in force for this model.
func (m *Model) DegreeTable() constraints.DegreeTable {
	return m.degrees
}

// SetDegreeTable replaces the degree rule set. Intended for fixtures; the
// shipped table is authoritative for real schematisations.
func (m *Model) SetDegreeTable(table constraints.DegreeTable) {
	m.degrees = table
}

// Sort canonicalizes row order in every table. Required before persistence
// so the written bundle is deterministic and diff-stable.
func (m *Model) Sort() {
	for _, t := range m.tableViews() {
		t.Sort()
	}
}

// Validate runs the full topology validation pass and returns every
// violation found.
func (m *Model) Validate() *constraints.ValidationResult {
	validator := constraints.NewTopologyValidator(m.degrees)
	result := validator.Validate(m.reader())
	if !result.Valid {
		m.logger.Warn("validation failed", logging.Int("violations", len(result.Violations)))
	}
	return result
}

func (m *Model) reader() constraints.NetworkReader {
	return &modelReader{m: m}
}

// modelReader adapts the model to the read-only view the constraints
// package validates against.
type modelReader struct {
	m *Model
}

func (r *modelReader) NodeCount() int {
	return r.m.nodes.Len()
}

func (r *modelReader) Nodes() []*network.Node {
	return r.m.nodes.All()
}

func (r *modelReader) NodesOfType(nt network.NodeType) []*network.Node {
	return r.m.nodes.AllOfType(nt)
}

func (r *modelReader) TableNodeIDs() map[network.NodeType][]int64 {
	out := make(map[network.NodeType][]int64)
	for _, t := range r.m.tableViews() {
		nt := t.Schema().NodeType
		out[nt] = append(out[nt], t.NodeIDs()...)
	}
	return out
}

func (r *modelReader) Degree(nodeID int64, et network.EdgeType, dir network.Direction) int {
	return r.m.edges.Degree(nodeID, et, dir)
}
