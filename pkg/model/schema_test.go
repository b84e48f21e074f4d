package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_Check(t *testing.T) {
	s := outletStaticSchema

	require.NoError(t, s.Check([]any{int64(1), 2.5, nil}))
	require.NoError(t, s.Check([]any{int64(1), 2.5, 0.8}))

	err := s.Check([]any{int64(1), 2.5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 columns")

	err = s.Check([]any{int64(1), "fast", nil})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `column "flow_rate" expects float`)

	err = s.Check([]any{nil, 2.5, nil})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `column "node_id" must not be null`)
}

func TestSchema_EncodeDecode(t *testing.T) {
	crest := 1.25
	row := OutletStatic{NodeID: 7, FlowRate: 3, MinCrestLevel: &crest}

	record := outletStaticSchema.Encode(row)
	assert.Equal(t, []any{int64(7), 3.0, 1.25}, record)

	decoded, err := outletStaticSchema.Decode(record)
	require.NoError(t, err)
	assert.Equal(t, row, decoded)

	record = outletStaticSchema.Encode(OutletStatic{NodeID: 7, FlowRate: 3})
	assert.Nil(t, record[2])
}

func TestSchema_DecodeTime(t *testing.T) {
	ts := time.Date(2020, 3, 1, 6, 0, 0, 0, time.UTC)
	row := UserTime{NodeID: 3, Time: ts, Demand: 1, ReturnFactor: 0.4, MinLevel: 0, Priority: 2}

	decoded, err := userTimeSchema.Decode(userTimeSchema.Encode(row))
	require.NoError(t, err)
	assert.Equal(t, row, decoded)
}

func TestSchema_Names(t *testing.T) {
	assert.Equal(t, "Basin / profile", basinProfileSchema.Name())
	assert.Equal(t, "DiscreteControl / condition", discreteControlConditionSchema.Name())
	assert.Equal(t, "User / time", userTimeSchema.Name())
}

func TestTable_SortStable(t *testing.T) {
	table := newTable(basinStateSchema, lessByNodeID[BasinState])
	table.Append(
		BasinState{NodeID: 2, Level: 9},
		BasinState{NodeID: 1, Level: 1},
		BasinState{NodeID: 2, Level: 3},
	)
	table.Sort()

	rows := table.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, int64(1), rows[0].NodeID)
	// Equal keys keep insertion order.
	assert.Equal(t, 9.0, rows[1].Level)
	assert.Equal(t, 3.0, rows[2].Level)
}
