package texture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTableValidatesSchema(t *testing.T) {
	_, err := NewTable(Schema{})
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)

	_, err = NewTable(Schema{Classes: []string{"PC", "PC"}})
	require.ErrorAs(t, err, &schemaErr)

	_, err = NewTable(Schema{Classes: []string{"PC"}, Layers: -1})
	require.ErrorAs(t, err, &schemaErr)
}

func TestSchemaColumns(t *testing.T) {
	s := Schema{Classes: []string{"PC", "Clay"}, Variance: true, Layers: 2}
	assert.Equal(t, []string{
		"Location", "ID", "n", "X", "Y", "Zland", "Depth",
		"PC", "Clay", "PC_var", "Clay_var", "hsu_1", "hsu_2",
	}, s.Columns())
}

func TestAddWell(t *testing.T) {
	table := newTestTable(t, singleClassSchema())

	err := table.AddWell("W-1", 10, 20, 100,
		map[string][]float64{"PC": {0.1, 0.2, 0.3}},
		[]float64{5, 10, 15}, nil)
	require.NoError(t, err)

	require.Equal(t, 3, table.Len())
	assert.Equal(t, 1, table.MaxID())
	for i, r := range table.Rows() {
		assert.Equal(t, i+1, r.Point)
		assert.Equal(t, "W-1", r.Location)
	}

	// Next well continues the ID sequence.
	err = table.AddWell("W-2", 11, 21, 101,
		map[string][]float64{"PC": {0.4}}, []float64{5}, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, table.MaxID())
}

func TestAddWellShapeError(t *testing.T) {
	table := newTestTable(t, singleClassSchema())

	err := table.AddWell("W-1", 10, 20, 100,
		map[string][]float64{"PC": {0.1, 0.2}},
		[]float64{5}, nil)
	var shapeErr *ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, 0, table.Len())
}

func TestAddWellZoneValidation(t *testing.T) {
	table := newTestTable(t, Schema{Classes: []string{"PC"}, Layers: 2})

	err := table.AddWell("W-1", 10, 20, 100,
		map[string][]float64{"PC": {0.1}}, []float64{5}, nil)
	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)

	err = table.AddWell("W-1", 10, 20, 100,
		map[string][]float64{"PC": {0.1}}, []float64{5}, []int{1})
	var shapeErr *ShapeError
	require.ErrorAs(t, err, &shapeErr)

	err = table.AddWell("W-1", 10, 20, 100,
		map[string][]float64{"PC": {0.1}}, []float64{5}, []int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, table.Rows()[0].Zones)
}

func TestWellCoordsDeduplicates(t *testing.T) {
	table := newTestTable(t, singleClassSchema())
	table.Restore([]Row{
		{Location: "A", WellID: 1, Point: 1, X: 10, Y: 20, Depth: 5, Classes: []float64{0.1}},
		{Location: "A", WellID: 1, Point: 2, X: 10, Y: 20, Depth: 10, Classes: []float64{0.2}},
		{Location: "B", WellID: 2, Point: 1, X: 30, Y: 40, Depth: 5, Classes: []float64{0.3}},
	})

	assert.Equal(t, []WellCoord{
		{WellID: 1, X: 10, Y: 20},
		{WellID: 2, X: 30, Y: 40},
	}, table.WellCoords())
}

func TestSummary(t *testing.T) {
	table := newTestTable(t, singleClassSchema())
	table.Restore([]Row{
		{WellID: 1, Point: 1, Depth: 5, Classes: []float64{10}},
		{WellID: 1, Point: 2, Depth: 10, Classes: []float64{20}},
		{WellID: 1, Point: 3, Depth: 15, Classes: []float64{30}},
		{WellID: 1, Point: 4, Depth: 20, Classes: []float64{Missing}},
	})

	summaries := table.Summary()
	require.Len(t, summaries, 1)
	s := summaries[0]
	assert.Equal(t, "PC", s.Class)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 1, s.Missing)
	assert.InDelta(t, 20.0, s.Mean, 1e-12)
	assert.InDelta(t, 10.0, s.StdDev, 1e-12)
}
