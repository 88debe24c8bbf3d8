package texture

import (
	"log"
)

// Row is one depth interval belonging to one well. Depth is the interval
// bottom; the interval top is implied by the previous row of the same well
// (ground surface for the first). Classes and Variances are aligned with
// Schema.Classes; Zones is aligned with the schema's layers.
type Row struct {
	Location string
	WellID   int
	Point    int
	X        float64
	Y        float64
	Zland    float64
	Depth    float64
	Classes  []float64
	Variance []float64 // nil unless the schema carries variance columns
	Zones    []int     // nil unless the schema carries zone columns
}

// WellCoord is a distinct (well ID, X, Y) triple.
type WellCoord struct {
	WellID int
	X, Y   float64
}

// Table is the append-only well-log dataset: rows in insertion order plus
// the running maximum well ID. MaxID always equals the greatest well ID
// present (0 when empty); every merge assigns new IDs starting at MaxID+1
// so IDs stay globally unique across repeated merges.
type Table struct {
	schema Schema
	rows   []Row
	maxID  int

	// Logf receives human-readable progress messages (row counts, well
	// counts). Defaults to log.Printf; tests replace it to run silently.
	Logf func(format string, args ...interface{})
}

// NewTable creates an empty table for the given schema.
func NewTable(schema Schema) (*Table, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	return &Table{schema: schema, Logf: log.Printf}, nil
}

// Schema returns the table's column schema.
func (t *Table) Schema() Schema { return t.schema }

// Rows returns the backing row slice in insertion order. Callers must not
// mutate it.
func (t *Table) Rows() []Row { return t.rows }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// MaxID returns the greatest well ID present, 0 when empty.
func (t *Table) MaxID() int { return t.maxID }

// WellCoords returns the distinct (well ID, X, Y) triples in first-seen
// order.
func (t *Table) WellCoords() []WellCoord {
	seen := make(map[WellCoord]bool)
	var coords []WellCoord
	for _, r := range t.rows {
		c := WellCoord{WellID: r.WellID, X: r.X, Y: r.Y}
		if !seen[c] {
			seen[c] = true
			coords = append(coords, c)
		}
	}
	return coords
}

// AddWell appends a single well given parallel per-point value and depth
// slices. values maps each schema classification to its per-point values;
// every slice must have the same length as depths. zones, when the schema
// carries zone columns, holds one code per layer and is applied to every
// point of the well.
func (t *Table) AddWell(name string, x, y, zland float64, values map[string][]float64, depths []float64, zones []int) error {
	for _, class := range t.schema.Classes {
		v, ok := values[class]
		if !ok {
			return schemaErrorf("missing values for class %q", class)
		}
		if len(v) != len(depths) {
			return shapeErrorf("class %q has %d values but %d depths", class, len(v), len(depths))
		}
	}
	for class := range values {
		if t.schema.classIndex(class) < 0 {
			return schemaErrorf("invalid class %q", class)
		}
	}
	if t.schema.Layers > 0 {
		if zones == nil {
			return schemaErrorf("schema has %d zone layers, zones must be supplied", t.schema.Layers)
		}
		if len(zones) != t.schema.Layers {
			return shapeErrorf("got %d zone codes for %d layers", len(zones), t.schema.Layers)
		}
	}

	id := t.maxID + 1
	for i, depth := range depths {
		row := Row{
			Location: name,
			WellID:   id,
			Point:    i + 1,
			X:        x,
			Y:        y,
			Zland:    zland,
			Depth:    depth,
			Classes:  make([]float64, len(t.schema.Classes)),
		}
		for j, class := range t.schema.Classes {
			row.Classes[j] = values[class][i]
		}
		if t.schema.Variance {
			row.Variance = make([]float64, len(t.schema.Classes))
			for j := range row.Variance {
				row.Variance[j] = Missing
			}
		}
		if t.schema.Layers > 0 {
			row.Zones = append([]int(nil), zones...)
		}
		t.rows = append(t.rows, row)
	}
	t.maxID = id
	return nil
}

// Restore appends rows that are already canonical (dense IDs, ordered
// point indices), advancing MaxID. Used to rehydrate a persisted table.
func (t *Table) Restore(rows []Row) {
	t.append(rows)
}

// append adds canonical rows whose IDs are already globally unique and
// advances maxID.
func (t *Table) append(rows []Row) {
	t.rows = append(t.rows, rows...)
	for _, r := range rows {
		if r.WellID > t.maxID {
			t.maxID = r.WellID
		}
	}
}
