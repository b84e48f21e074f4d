package model

import (
	"sort"
	"time"
)

// Row is one record of a per-node-type parameter table. Every row carries the
// node ID it belongs to.
type Row interface {
	NodeRef() int64
}

// Table holds the rows of one parameter table together with its schema
// descriptor and canonical sort order.
type Table[T Row] struct {
	schema Schema
	less   func(a, b T) bool
	rows   []T
}

func newTable[T Row](schema Schema, less func(a, b T) bool) Table[T] {
	return Table[T]{schema: schema, less: less}
}

// Append adds rows to the table.
func (t *Table[T]) Append(rows ...T) {
	t.rows = append(t.rows, rows...)
}

// Rows returns a copy of the table's rows in current order.
func (t *Table[T]) Rows() []T {
	out := make([]T, len(t.rows))
	copy(out, t.rows)
	return out
}

// Len returns the number of rows.
func (t *Table[T]) Len() int {
	return len(t.rows)
}

// Schema returns the table's schema descriptor.
func (t *Table[T]) Schema() Schema {
	return t.schema
}

// Sort orders the rows canonically: primarily by node ID, then by the
// table-specific secondary keys. Sorting is stable so equal keys keep their
// insertion order.
func (t *Table[T]) Sort() {
	sort.SliceStable(t.rows, func(i, j int) bool { return t.less(t.rows[i], t.rows[j]) })
}

// NodeIDs returns the node ID of every row in row order, duplicates included.
func (t *Table[T]) NodeIDs() []int64 {
	ids := make([]int64, len(t.rows))
	for i, r := range t.rows {
		ids[i] = r.NodeRef()
	}
	return ids
}

func (t *Table[T]) removeNode(id int64) {
	kept := t.rows[:0]
	for _, r := range t.rows {
		if r.NodeRef() != id {
			kept = append(kept, r)
		}
	}
	t.rows = kept
}

// tableView is the type-erased view of a Table used for iteration across the
// whole table set.
type tableView interface {
	Schema() Schema
	Sort()
	NodeIDs() []int64
	Len() int
	removeNodeRows(id int64)
	encodeRows() [][]any
	decodeRow(record []any) error
}

func (t *Table[T]) removeNodeRows(id int64) { t.removeNode(id) }

func (t *Table[T]) encodeRows() [][]any {
	out := make([][]any, len(t.rows))
	for i, r := range t.rows {
		out[i] = t.schema.Encode(r)
	}
	return out
}

func (t *Table[T]) decodeRow(record []any) error {
	row, err := t.schema.Decode(record)
	if err != nil {
		return err
	}
	t.rows = append(t.rows, row.(T))
	return nil
}

// Row types. One plain record type per table schema; field order matches the
// schema descriptor's column order.

type BasinProfile struct {
	NodeID int64
	Area   float64
	Level  float64
}

func (r BasinProfile) NodeRef() int64 { return r.NodeID }

type BasinState struct {
	NodeID int64
	Level  float64
}

func (r BasinState) NodeRef() int64 { return r.NodeID }

type BasinStatic struct {
	NodeID               int64
	Drainage             float64
	PotentialEvaporation float64
	Infiltration         float64
	Precipitation        float64
}

func (r BasinStatic) NodeRef() int64 { return r.NodeID }

type PumpStatic struct {
	NodeID   int64
	FlowRate float64
}

func (r PumpStatic) NodeRef() int64 { return r.NodeID }

type OutletStatic struct {
	NodeID        int64
	FlowRate      float64
	MinCrestLevel *float64
}

func (r OutletStatic) NodeRef() int64 { return r.NodeID }

type LevelBoundaryStatic struct {
	NodeID int64
	Level  float64
}

func (r LevelBoundaryStatic) NodeRef() int64 { return r.NodeID }

type FlowBoundaryStatic struct {
	NodeID   int64
	FlowRate float64
}

func (r FlowBoundaryStatic) NodeRef() int64 { return r.NodeID }

type LinearResistanceStatic struct {
	NodeID     int64
	Resistance float64
}

func (r LinearResistanceStatic) NodeRef() int64 { return r.NodeID }

type ManningResistanceStatic struct {
	NodeID       int64
	Length       float64
	ManningN     float64
	ProfileWidth float64
	ProfileSlope float64
}

func (r ManningResistanceStatic) NodeRef() int64 { return r.NodeID }

type TabulatedRatingCurveStatic struct {
	NodeID   int64
	Level    float64
	FlowRate float64
}

func (r TabulatedRatingCurveStatic) NodeRef() int64 { return r.NodeID }

type FractionalFlowStatic struct {
	NodeID   int64
	Fraction float64
}

func (r FractionalFlowStatic) NodeRef() int64 { return r.NodeID }

type TerminalStatic struct {
	NodeID int64
}

func (r TerminalStatic) NodeRef() int64 { return r.NodeID }

type PidControlStatic struct {
	NodeID       int64
	ListenNodeID int64
	Target       float64
	Proportional float64
	Integral     float64
	Derivative   float64
}

func (r PidControlStatic) NodeRef() int64 { return r.NodeID }

type DiscreteControlCondition struct {
	NodeID       int64
	ListenNodeID int64
	Variable     string
	GreaterThan  float64
}

func (r DiscreteControlCondition) NodeRef() int64 { return r.NodeID }

type DiscreteControlLogic struct {
	NodeID       int64
	TruthState   string
	ControlState string
}

func (r DiscreteControlLogic) NodeRef() int64 { return r.NodeID }

type UserStatic struct {
	NodeID       int64
	Demand       float64
	ReturnFactor float64
	MinLevel     float64
	Priority     int64
}

func (r UserStatic) NodeRef() int64 { return r.NodeID }

type UserTime struct {
	NodeID       int64
	Time         time.Time
	Demand       float64
	ReturnFactor float64
	MinLevel     float64
	Priority     int64
}

func (r UserTime) NodeRef() int64 { return r.NodeID }

// Per-node-type table groups.

type BasinTables struct {
	Profile Table[BasinProfile]
	State   Table[BasinState]
	Static  Table[BasinStatic]
}

type PumpTables struct {
	Static Table[PumpStatic]
}

type OutletTables struct {
	Static Table[OutletStatic]
}

type LevelBoundaryTables struct {
	Static Table[LevelBoundaryStatic]
}

type FlowBoundaryTables struct {
	Static Table[FlowBoundaryStatic]
}

type LinearResistanceTables struct {
	Static Table[LinearResistanceStatic]
}

type ManningResistanceTables struct {
	Static Table[ManningResistanceStatic]
}

type TabulatedRatingCurveTables struct {
	Static Table[TabulatedRatingCurveStatic]
}

type FractionalFlowTables struct {
	Static Table[FractionalFlowStatic]
}

type TerminalTables struct {
	Static Table[TerminalStatic]
}

type PidControlTables struct {
	Static Table[PidControlStatic]
}

type DiscreteControlTables struct {
	Condition Table[DiscreteControlCondition]
	Logic     Table[DiscreteControlLogic]
}

type UserTables struct {
	Static Table[UserStatic]
	Time   Table[UserTime]
}

// Canonical sort orders beyond the primary node_id key.

func lessByNodeID[T Row](a, b T) bool {
	return a.NodeRef() < b.NodeRef()
}

func lessBasinProfile(a, b BasinProfile) bool {
	if a.NodeID != b.NodeID {
		return a.NodeID < b.NodeID
	}
	return a.Level < b.Level
}

func lessTabulatedRatingCurveStatic(a, b TabulatedRatingCurveStatic) bool {
	if a.NodeID != b.NodeID {
		return a.NodeID < b.NodeID
	}
	return a.Level < b.Level
}

func lessDiscreteControlCondition(a, b DiscreteControlCondition) bool {
	if a.NodeID != b.NodeID {
		return a.NodeID < b.NodeID
	}
	if a.ListenNodeID != b.ListenNodeID {
		return a.ListenNodeID < b.ListenNodeID
	}
	if a.Variable != b.Variable {
		return a.Variable < b.Variable
	}
	return a.GreaterThan < b.GreaterThan
}

func lessDiscreteControlLogic(a, b DiscreteControlLogic) bool {
	if a.NodeID != b.NodeID {
		return a.NodeID < b.NodeID
	}
	return a.TruthState < b.TruthState
}

func lessUserStatic(a, b UserStatic) bool {
	if a.NodeID != b.NodeID {
		return a.NodeID < b.NodeID
	}
	return a.Priority < b.Priority
}

func lessUserTime(a, b UserTime) bool {
	if a.NodeID != b.NodeID {
		return a.NodeID < b.NodeID
	}
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	return a.Time.Before(b.Time)
}
