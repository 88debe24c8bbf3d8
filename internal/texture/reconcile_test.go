package texture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTable(t *testing.T, schema Schema) *Table {
	t.Helper()
	table, err := NewTable(schema)
	require.NoError(t, err)
	table.Logf = t.Logf
	return table
}

func singleClassSchema() Schema {
	return Schema{Classes: []string{"PC"}}
}

func TestAddWellsAssignsDenseIDs(t *testing.T) {
	table := newTestTable(t, singleClassSchema())

	frame := &Frame{
		Columns: []string{"Name", "X", "Y", "Zland", "Depth", "PC"},
		Records: [][]string{
			{"W-B", "10", "20", "100", "5", "0.5"},
			{"W-A", "30", "40", "101", "5", "0.6"},
			{"W-B", "10", "20", "100", "10", "0.7"},
			{"W-C", "50", "60", "102", "5", "0.8"},
		},
	}

	err := table.AddWells(frame, ColumnMap{Name: "Name", X: "X", Y: "Y", Zland: "Zland", Depth: "Depth"}, true)
	require.NoError(t, err)

	// First-encountered order: W-B=1, W-A=2, W-C=3.
	byLocation := map[string]int{}
	for _, r := range table.Rows() {
		byLocation[r.Location] = r.WellID
	}
	assert.Equal(t, map[string]int{"W-B": 1, "W-A": 2, "W-C": 3}, byLocation)
	assert.Equal(t, 3, table.MaxID())
}

func TestAddWellsSameNameDifferentCoords(t *testing.T) {
	table := newTestTable(t, singleClassSchema())

	frame := &Frame{
		Columns: []string{"Name", "X", "Y", "Zland", "Depth", "PC"},
		Records: [][]string{
			{"W-1", "10", "20", "100", "5", "0.5"},
			{"W-1", "11", "20", "100", "5", "0.5"},
		},
	}

	err := table.AddWells(frame, ColumnMap{Name: "Name", X: "X", Y: "Y", Zland: "Zland", Depth: "Depth"}, true)
	require.NoError(t, err)

	// Distinct (name, x, y) tuples get distinct IDs.
	assert.Equal(t, 2, table.MaxID())
}

func TestAddWellsMergeOffsetsByMaxID(t *testing.T) {
	table := newTestTable(t, singleClassSchema())
	table.Restore([]Row{{Location: "OLD", WellID: 10, Point: 1, Depth: 5, Classes: []float64{0.1}}})
	require.Equal(t, 10, table.MaxID())

	frame := &Frame{
		Columns: []string{"Name", "X", "Y", "Zland", "Depth", "PC"},
		Records: [][]string{
			{"N-1", "1", "1", "10", "5", "0.1"},
			{"N-2", "2", "2", "10", "5", "0.2"},
			{"N-3", "3", "3", "10", "5", "0.3"},
		},
	}
	err := table.AddWells(frame, ColumnMap{Name: "Name", X: "X", Y: "Y", Zland: "Zland", Depth: "Depth"}, true)
	require.NoError(t, err)

	assert.Equal(t, 13, table.MaxID())

	coords := table.WellCoords()
	require.Len(t, coords, 4)
	assert.Equal(t, []WellCoord{
		{WellID: 10, X: 0, Y: 0},
		{WellID: 11, X: 1, Y: 1},
		{WellID: 12, X: 2, Y: 2},
		{WellID: 13, X: 3, Y: 3},
	}, coords)
}

func TestAddWellsPointIndicesAscendByDepth(t *testing.T) {
	table := newTestTable(t, singleClassSchema())

	// Rows deliberately out of depth order.
	frame := &Frame{
		Columns: []string{"Name", "X", "Y", "Zland", "Depth", "PC"},
		Records: [][]string{
			{"W", "0", "0", "10", "12", "0.3"},
			{"W", "0", "0", "10", "5", "0.1"},
			{"W", "0", "0", "10", "8", "0.2"},
		},
	}
	err := table.AddWells(frame, ColumnMap{Name: "Name", X: "X", Y: "Y", Zland: "Zland", Depth: "Depth"}, true)
	require.NoError(t, err)

	rows := table.Rows()
	require.Len(t, rows, 3)
	for i, want := range []float64{5, 8, 12} {
		assert.Equal(t, i+1, rows[i].Point)
		assert.Equal(t, want, rows[i].Depth)
	}
}

func TestAddWellsExplicitPointColumn(t *testing.T) {
	table := newTestTable(t, singleClassSchema())

	frame := &Frame{
		Columns: []string{"Name", "X", "Y", "Zland", "Depth", "n", "PC"},
		Records: [][]string{
			{"W", "0", "0", "10", "12", "3", "0.3"},
			{"W", "0", "0", "10", "5", "1", "0.1"},
		},
	}
	err := table.AddWells(frame, ColumnMap{Name: "Name", X: "X", Y: "Y", Zland: "Zland", Depth: "Depth", Point: "n"}, false)
	require.NoError(t, err)

	// Caller-supplied indices survive, record order preserved.
	rows := table.Rows()
	assert.Equal(t, 3, rows[0].Point)
	assert.Equal(t, 1, rows[1].Point)
}

func TestAddWellsFillsIntervalGap(t *testing.T) {
	table := newTestTable(t, singleClassSchema())

	// Intervals (0,5) and (8,12): the span (5,8) is uncovered.
	frame := &Frame{
		Columns: []string{"Name", "X", "Y", "Zland", "Top", "Depth", "PC"},
		Records: [][]string{
			{"W", "0", "0", "10", "0", "5", "0.4"},
			{"W", "0", "0", "10", "8", "12", "0.6"},
		},
	}
	err := table.AddWells(frame, ColumnMap{
		Name: "Name", X: "X", Y: "Y", Zland: "Zland", Depth: "Depth", DepthTop: "Top",
	}, true)
	require.NoError(t, err)

	rows := table.Rows()
	require.Len(t, rows, 3)
	for i, want := range []float64{5, 8, 12} {
		assert.Equal(t, i+1, rows[i].Point)
		assert.Equal(t, want, rows[i].Depth)
	}
	// The synthetic (5,8) row carries missing classification values and
	// copies the non-depth fields.
	assert.True(t, IsMissing(rows[1].Classes[0]))
	assert.Equal(t, "W", rows[1].Location)
	assert.Equal(t, 10.0, rows[1].Zland)
	assert.Equal(t, 0.4, rows[0].Classes[0])
	assert.Equal(t, 0.6, rows[2].Classes[0])
}

func TestAddWellsGapFillIdempotent(t *testing.T) {
	// Already gap-free, sorted input produces no synthetic rows.
	table := newTestTable(t, singleClassSchema())

	frame := &Frame{
		Columns: []string{"Name", "X", "Y", "Zland", "Top", "Depth", "PC"},
		Records: [][]string{
			{"W", "0", "0", "10", "0", "5", "0.4"},
			{"W", "0", "0", "10", "5", "8", "0.5"},
			{"W", "0", "0", "10", "8", "12", "0.6"},
		},
	}
	err := table.AddWells(frame, ColumnMap{
		Name: "Name", X: "X", Y: "Y", Zland: "Zland", Depth: "Depth", DepthTop: "Top",
	}, true)
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())
}

func TestAddWellsGapAtSurface(t *testing.T) {
	// First interval starts below ground surface: a (0, top) filler is
	// synthesized.
	table := newTestTable(t, singleClassSchema())

	frame := &Frame{
		Columns: []string{"Name", "X", "Y", "Zland", "Top", "Depth", "PC"},
		Records: [][]string{
			{"W", "0", "0", "10", "3", "7", "0.4"},
		},
	}
	err := table.AddWells(frame, ColumnMap{
		Name: "Name", X: "X", Y: "Y", Zland: "Zland", Depth: "Depth", DepthTop: "Top",
	}, true)
	require.NoError(t, err)

	rows := table.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, 3.0, rows[0].Depth)
	assert.True(t, IsMissing(rows[0].Classes[0]))
	assert.Equal(t, 7.0, rows[1].Depth)
}

func TestAddWellsNoFillWithoutTopColumn(t *testing.T) {
	table := newTestTable(t, singleClassSchema())

	frame := &Frame{
		Columns: []string{"Name", "X", "Y", "Zland", "Depth", "PC"},
		Records: [][]string{
			{"W", "0", "0", "10", "5", "0.4"},
			{"W", "0", "0", "10", "12", "0.6"},
		},
	}
	err := table.AddWells(frame, ColumnMap{Name: "Name", X: "X", Y: "Y", Zland: "Zland", Depth: "Depth"}, true)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
}

func TestAddWellsValidation(t *testing.T) {
	t.Run("missing required column", func(t *testing.T) {
		table := newTestTable(t, singleClassSchema())
		frame := &Frame{
			Columns: []string{"Name", "X", "Y", "Depth", "PC"},
			Records: [][]string{{"W", "0", "0", "5", "0.4"}},
		}
		err := table.AddWells(frame, ColumnMap{Name: "Name", X: "X", Y: "Y", Zland: "Zland", Depth: "Depth"}, true)
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, 0, table.Len())
	})

	t.Run("unknown class", func(t *testing.T) {
		table := newTestTable(t, singleClassSchema())
		frame := &Frame{
			Columns: []string{"Name", "X", "Y", "Zland", "Depth", "PC"},
			Records: [][]string{{"W", "0", "0", "10", "5", "0.4"}},
		}
		err := table.AddWells(frame, ColumnMap{
			Name: "Name", X: "X", Y: "Y", Zland: "Zland", Depth: "Depth",
			Classes: map[string]string{"Sand": "PC"},
		}, true)
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
	})

	t.Run("missing class backing column", func(t *testing.T) {
		table := newTestTable(t, singleClassSchema())
		frame := &Frame{
			Columns: []string{"Name", "X", "Y", "Zland", "Depth"},
			Records: [][]string{{"W", "0", "0", "10", "5"}},
		}
		err := table.AddWells(frame, ColumnMap{Name: "Name", X: "X", Y: "Y", Zland: "Zland", Depth: "Depth"}, true)
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
	})

	t.Run("missing variance backing column", func(t *testing.T) {
		table := newTestTable(t, Schema{Classes: []string{"PC"}, Variance: true})
		frame := &Frame{
			Columns: []string{"Name", "X", "Y", "Zland", "Depth", "PC"},
			Records: [][]string{{"W", "0", "0", "10", "5", "0.4"}},
		}
		err := table.AddWells(frame, ColumnMap{Name: "Name", X: "X", Y: "Y", Zland: "Zland", Depth: "Depth"}, true)
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
	})

	t.Run("missing zone column", func(t *testing.T) {
		table := newTestTable(t, Schema{Classes: []string{"PC"}, Layers: 2})
		frame := &Frame{
			Columns: []string{"Name", "X", "Y", "Zland", "Depth", "PC", "hsu_1"},
			Records: [][]string{{"W", "0", "0", "10", "5", "0.4", "1"}},
		}
		err := table.AddWells(frame, ColumnMap{Name: "Name", X: "X", Y: "Y", Zland: "Zland", Depth: "Depth"}, true)
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, 0, table.Len())
	})
}

func TestAddWellsVarianceAndZones(t *testing.T) {
	table := newTestTable(t, Schema{Classes: []string{"PC"}, Variance: true, Layers: 2})

	frame := &Frame{
		Columns: []string{"Name", "X", "Y", "Zland", "Top", "Depth", "PC", "PC_var", "hsu_1", "hsu_2"},
		Records: [][]string{
			{"W", "0", "0", "10", "0", "5", "0.4", "0.01", "1", "2"},
			{"W", "0", "0", "10", "8", "12", "0.6", "0.02", "1", "2"},
		},
	}
	err := table.AddWells(frame, ColumnMap{
		Name: "Name", X: "X", Y: "Y", Zland: "Zland", Depth: "Depth", DepthTop: "Top",
	}, true)
	require.NoError(t, err)

	rows := table.Rows()
	require.Len(t, rows, 3)
	// Synthetic row: missing class and variance, zones copied.
	assert.True(t, IsMissing(rows[1].Classes[0]))
	assert.True(t, IsMissing(rows[1].Variance[0]))
	assert.Equal(t, []int{1, 2}, rows[1].Zones)
	assert.Equal(t, 0.01, rows[0].Variance[0])
}

func TestAddWellsMissingMarkersParse(t *testing.T) {
	table := newTestTable(t, singleClassSchema())

	frame := &Frame{
		Columns: []string{"Name", "X", "Y", "Zland", "Depth", "PC"},
		Records: [][]string{
			{"W", "0", "0", "10", "5", "-999"},
			{"W", "0", "0", "10", "8", "-99"},
		},
	}
	err := table.AddWells(frame, ColumnMap{Name: "Name", X: "X", Y: "Y", Zland: "Zland", Depth: "Depth"}, true)
	require.NoError(t, err)
	assert.True(t, IsMissing(table.Rows()[0].Classes[0]))
	assert.True(t, IsMissing(table.Rows()[1].Classes[0]))
}
