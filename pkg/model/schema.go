package model

import (
	"fmt"
	"time"

	"github.com/hkroes/aquanet/pkg/network"
)

// Kind is the declared value kind of a table column.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindText
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindTime:
		return "time"
	default:
		return "unknown"
	}
}

// Column describes one field of a table schema.
type Column struct {
	Name     string
	Kind     Kind
	Nullable bool
}

// Schema is the descriptor of one per-node-type table: which node type it
// belongs to, its table name, its declared columns, and the codec between
// row values and flat records in column order. Tables are identified in the
// persisted bundle by the "NodeType / tablename" convention.
type Schema struct {
	NodeType network.NodeType
	Table    string
	Columns  []Column
	encode   func(Row) []any
	decode   func([]any) (Row, error)
}

// Name returns the bundle table name, e.g. "Basin / profile".
func (s Schema) Name() string {
	return fmt.Sprintf("%s / %s", s.NodeType, s.Table)
}

// Encode flattens a row into a record in column order.
func (s Schema) Encode(row Row) []any {
	return s.encode(row)
}

// Decode rebuilds a row from a record in column order.
func (s Schema) Decode(record []any) (Row, error) {
	if len(record) != len(s.Columns) {
		return nil, fmt.Errorf("table %q: record has %d values, schema declares %d columns", s.Name(), len(record), len(s.Columns))
	}
	if err := s.Check(record); err != nil {
		return nil, err
	}
	return s.decode(record)
}

// Check verifies that a flat record conforms to the declared column kinds.
// This is the single generic conformance routine shared by every table.
func (s Schema) Check(record []any) error {
	if len(record) != len(s.Columns) {
		return fmt.Errorf("table %q: record has %d values, schema declares %d columns", s.Name(), len(record), len(s.Columns))
	}
	for i, col := range s.Columns {
		v := record[i]
		if v == nil {
			if col.Nullable {
				continue
			}
			return fmt.Errorf("table %q: column %q must not be null", s.Name(), col.Name)
		}
		ok := false
		switch col.Kind {
		case KindInt:
			_, ok = v.(int64)
		case KindFloat:
			_, ok = v.(float64)
		case KindText:
			_, ok = v.(string)
		case KindTime:
			_, ok = v.(time.Time)
		}
		if !ok {
			return fmt.Errorf("table %q: column %q expects %s, got %T", s.Name(), col.Name, col.Kind, v)
		}
	}
	return nil
}

func nodeIDColumn() Column {
	return Column{Name: "node_id", Kind: KindInt}
}

// Typed record accessors used by the decoders. Check has already verified the
// kinds, so these only guard against codec bugs.

func recInt(record []any, i int) int64      { return record[i].(int64) }
func recFloat(record []any, i int) float64  { return record[i].(float64) }
func recText(record []any, i int) string    { return record[i].(string) }
func recTime(record []any, i int) time.Time { return record[i].(time.Time) }

func recFloatPtr(record []any, i int) *float64 {
	if record[i] == nil {
		return nil
	}
	f := record[i].(float64)
	return &f
}

func floatPtrValue(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

// Schema descriptors, one per table.

var basinProfileSchema = Schema{
	NodeType: network.Basin,
	Table:    "profile",
	Columns: []Column{
		nodeIDColumn(),
		{Name: "area", Kind: KindFloat},
		{Name: "level", Kind: KindFloat},
	},
	encode: func(r Row) []any {
		row := r.(BasinProfile)
		return []any{row.NodeID, row.Area, row.Level}
	},
	decode: func(rec []any) (Row, error) {
		return BasinProfile{NodeID: recInt(rec, 0), Area: recFloat(rec, 1), Level: recFloat(rec, 2)}, nil
	},
}

var basinStateSchema = Schema{
	NodeType: network.Basin,
	Table:    "state",
	Columns: []Column{
		nodeIDColumn(),
		{Name: "level", Kind: KindFloat},
	},
	encode: func(r Row) []any {
		row := r.(BasinState)
		return []any{row.NodeID, row.Level}
	},
	decode: func(rec []any) (Row, error) {
		return BasinState{NodeID: recInt(rec, 0), Level: recFloat(rec, 1)}, nil
	},
}

var basinStaticSchema = Schema{
	NodeType: network.Basin,
	Table:    "static",
	Columns: []Column{
		nodeIDColumn(),
		{Name: "drainage", Kind: KindFloat},
		{Name: "potential_evaporation", Kind: KindFloat},
		{Name: "infiltration", Kind: KindFloat},
		{Name: "precipitation", Kind: KindFloat},
	},
	encode: func(r Row) []any {
		row := r.(BasinStatic)
		return []any{row.NodeID, row.Drainage, row.PotentialEvaporation, row.Infiltration, row.Precipitation}
	},
	decode: func(rec []any) (Row, error) {
		return BasinStatic{
			NodeID:               recInt(rec, 0),
			Drainage:             recFloat(rec, 1),
			PotentialEvaporation: recFloat(rec, 2),
			Infiltration:         recFloat(rec, 3),
			Precipitation:        recFloat(rec, 4),
		}, nil
	},
}

var pumpStaticSchema = Schema{
	NodeType: network.Pump,
	Table:    "static",
	Columns: []Column{
		nodeIDColumn(),
		{Name: "flow_rate", Kind: KindFloat},
	},
	encode: func(r Row) []any {
		row := r.(PumpStatic)
		return []any{row.NodeID, row.FlowRate}
	},
	decode: func(rec []any) (Row, error) {
		return PumpStatic{NodeID: recInt(rec, 0), FlowRate: recFloat(rec, 1)}, nil
	},
}

var outletStaticSchema = Schema{
	NodeType: network.Outlet,
	Table:    "static",
	Columns: []Column{
		nodeIDColumn(),
		{Name: "flow_rate", Kind: KindFloat},
		{Name: "min_crest_level", Kind: KindFloat, Nullable: true},
	},
	encode: func(r Row) []any {
		row := r.(OutletStatic)
		return []any{row.NodeID, row.FlowRate, floatPtrValue(row.MinCrestLevel)}
	},
	decode: func(rec []any) (Row, error) {
		return OutletStatic{NodeID: recInt(rec, 0), FlowRate: recFloat(rec, 1), MinCrestLevel: recFloatPtr(rec, 2)}, nil
	},
}

var levelBoundaryStaticSchema = Schema{
	NodeType: network.LevelBoundary,
	Table:    "static",
	Columns: []Column{
		nodeIDColumn(),
		{Name: "level", Kind: KindFloat},
	},
	encode: func(r Row) []any {
		row := r.(LevelBoundaryStatic)
		return []any{row.NodeID, row.Level}
	},
	decode: func(rec []any) (Row, error) {
		return LevelBoundaryStatic{NodeID: recInt(rec, 0), Level: recFloat(rec, 1)}, nil
	},
}

var flowBoundaryStaticSchema = Schema{
	NodeType: network.FlowBoundary,
	Table:    "static",
	Columns: []Column{
		nodeIDColumn(),
		{Name: "flow_rate", Kind: KindFloat},
	},
	encode: func(r Row) []any {
		row := r.(FlowBoundaryStatic)
		return []any{row.NodeID, row.FlowRate}
	},
	decode: func(rec []any) (Row, error) {
		return FlowBoundaryStatic{NodeID: recInt(rec, 0), FlowRate: recFloat(rec, 1)}, nil
	},
}

var linearResistanceStaticSchema = Schema{
	NodeType: network.LinearResistance,
	Table:    "static",
	Columns: []Column{
		nodeIDColumn(),
		{Name: "resistance", Kind: KindFloat},
	},
	encode: func(r Row) []any {
		row := r.(LinearResistanceStatic)
		return []any{row.NodeID, row.Resistance}
	},
	decode: func(rec []any) (Row, error) {
		return LinearResistanceStatic{NodeID: recInt(rec, 0), Resistance: recFloat(rec, 1)}, nil
	},
}

var manningResistanceStaticSchema = Schema{
	NodeType: network.ManningResistance,
	Table:    "static",
	Columns: []Column{
		nodeIDColumn(),
		{Name: "length", Kind: KindFloat},
		{Name: "manning_n", Kind: KindFloat},
		{Name: "profile_width", Kind: KindFloat},
		{Name: "profile_slope", Kind: KindFloat},
	},
	encode: func(r Row) []any {
		row := r.(ManningResistanceStatic)
		return []any{row.NodeID, row.Length, row.ManningN, row.ProfileWidth, row.ProfileSlope}
	},
	decode: func(rec []any) (Row, error) {
		return ManningResistanceStatic{
			NodeID:       recInt(rec, 0),
			Length:       recFloat(rec, 1),
			ManningN:     recFloat(rec, 2),
			ProfileWidth: recFloat(rec, 3),
			ProfileSlope: recFloat(rec, 4),
		}, nil
	},
}

var tabulatedRatingCurveStaticSchema = Schema{
	NodeType: network.TabulatedRatingCurve,
	Table:    "static",
	Columns: []Column{
		nodeIDColumn(),
		{Name: "level", Kind: KindFloat},
		{Name: "flow_rate", Kind: KindFloat},
	},
	encode: func(r Row) []any {
		row := r.(TabulatedRatingCurveStatic)
		return []any{row.NodeID, row.Level, row.FlowRate}
	},
	decode: func(rec []any) (Row, error) {
		return TabulatedRatingCurveStatic{NodeID: recInt(rec, 0), Level: recFloat(rec, 1), FlowRate: recFloat(rec, 2)}, nil
	},
}

var fractionalFlowStaticSchema = Schema{
	NodeType: network.FractionalFlow,
	Table:    "static",
	Columns: []Column{
		nodeIDColumn(),
		{Name: "fraction", Kind: KindFloat},
	},
	encode: func(r Row) []any {
		row := r.(FractionalFlowStatic)
		return []any{row.NodeID, row.Fraction}
	},
	decode: func(rec []any) (Row, error) {
		return FractionalFlowStatic{NodeID: recInt(rec, 0), Fraction: recFloat(rec, 1)}, nil
	},
}

var terminalStaticSchema = Schema{
	NodeType: network.Terminal,
	Table:    "static",
	Columns: []Column{
		nodeIDColumn(),
	},
	encode: func(r Row) []any {
		row := r.(TerminalStatic)
		return []any{row.NodeID}
	},
	decode: func(rec []any) (Row, error) {
		return TerminalStatic{NodeID: recInt(rec, 0)}, nil
	},
}

var pidControlStaticSchema = Schema{
	NodeType: network.PidControl,
	Table:    "static",
	Columns: []Column{
		nodeIDColumn(),
		{Name: "listen_node_id", Kind: KindInt},
		{Name: "target", Kind: KindFloat},
		{Name: "proportional", Kind: KindFloat},
		{Name: "integral", Kind: KindFloat},
		{Name: "derivative", Kind: KindFloat},
	},
	encode: func(r Row) []any {
		row := r.(PidControlStatic)
		return []any{row.NodeID, row.ListenNodeID, row.Target, row.Proportional, row.Integral, row.Derivative}
	},
	decode: func(rec []any) (Row, error) {
		return PidControlStatic{
			NodeID:       recInt(rec, 0),
			ListenNodeID: recInt(rec, 1),
			Target:       recFloat(rec, 2),
			Proportional: recFloat(rec, 3),
			Integral:     recFloat(rec, 4),
			Derivative:   recFloat(rec, 5),
		}, nil
	},
}

var discreteControlConditionSchema = Schema{
	NodeType: network.DiscreteControl,
	Table:    "condition",
	Columns: []Column{
		nodeIDColumn(),
		{Name: "listen_node_id", Kind: KindInt},
		{Name: "variable", Kind: KindText},
		{Name: "greater_than", Kind: KindFloat},
	},
	encode: func(r Row) []any {
		row := r.(DiscreteControlCondition)
		return []any{row.NodeID, row.ListenNodeID, row.Variable, row.GreaterThan}
	},
	decode: func(rec []any) (Row, error) {
		return DiscreteControlCondition{
			NodeID:       recInt(rec, 0),
			ListenNodeID: recInt(rec, 1),
			Variable:     recText(rec, 2),
			GreaterThan:  recFloat(rec, 3),
		}, nil
	},
}

var discreteControlLogicSchema = Schema{
	NodeType: network.DiscreteControl,
	Table:    "logic",
	Columns: []Column{
		nodeIDColumn(),
		{Name: "truth_state", Kind: KindText},
		{Name: "control_state", Kind: KindText},
	},
	encode: func(r Row) []any {
		row := r.(DiscreteControlLogic)
		return []any{row.NodeID, row.TruthState, row.ControlState}
	},
	decode: func(rec []any) (Row, error) {
		return DiscreteControlLogic{NodeID: recInt(rec, 0), TruthState: recText(rec, 1), ControlState: recText(rec, 2)}, nil
	},
}

var userStaticSchema = Schema{
	NodeType: network.User,
	Table:    "static",
	Columns: []Column{
		nodeIDColumn(),
		{Name: "demand", Kind: KindFloat},
		{Name: "return_factor", Kind: KindFloat},
		{Name: "min_level", Kind: KindFloat},
		{Name: "priority", Kind: KindInt},
	},
	encode: func(r Row) []any {
		row := r.(UserStatic)
		return []any{row.NodeID, row.Demand, row.ReturnFactor, row.MinLevel, row.Priority}
	},
	decode: func(rec []any) (Row, error) {
		return UserStatic{
			NodeID:       recInt(rec, 0),
			Demand:       recFloat(rec, 1),
			ReturnFactor: recFloat(rec, 2),
			MinLevel:     recFloat(rec, 3),
			Priority:     recInt(rec, 4),
		}, nil
	},
}

var userTimeSchema = Schema{
	NodeType: network.User,
	Table:    "time",
	Columns: []Column{
		nodeIDColumn(),
		{Name: "time", Kind: KindTime},
		{Name: "demand", Kind: KindFloat},
		{Name: "return_factor", Kind: KindFloat},
		{Name: "min_level", Kind: KindFloat},
		{Name: "priority", Kind: KindInt},
	},
	encode: func(r Row) []any {
		row := r.(UserTime)
		return []any{row.NodeID, row.Time, row.Demand, row.ReturnFactor, row.MinLevel, row.Priority}
	},
	decode: func(rec []any) (Row, error) {
		return UserTime{
			NodeID:       recInt(rec, 0),
			Time:         recTime(rec, 1),
			Demand:       recFloat(rec, 2),
			ReturnFactor: recFloat(rec, 3),
			MinLevel:     recFloat(rec, 4),
			Priority:     recInt(rec, 5),
		}, nil
	},
}
