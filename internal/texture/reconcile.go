package texture

import (
	"sort"
)

// ColumnMap names the raw-table columns the reconciler reads. Name, X, Y,
// Zland and Depth are required. DepthTop enables gap filling. Point maps an
// explicit per-well point index; when empty, indices are assigned by depth
// order. Classes maps each schema classification to its raw column; nil
// maps every classification to a column of the same name. Variance columns,
// when the schema carries them, are expected at "<raw class column>_var".
type ColumnMap struct {
	Name     string
	X        string
	Y        string
	Zland    string
	Depth    string
	DepthTop string
	Point    string
	Classes  map[string]string
}

// rawRow is a parsed input row mid-reconciliation. top is only meaningful
// while gap filling.
type rawRow struct {
	location string
	id       int
	point    int
	x, y     float64
	zland    float64
	top      float64
	depth    float64
	classes  []float64
	variance []float64
	zones    []int
}

// AddWells reconciles a raw table of well-log rows and merges them into the
// table: assigns dense well IDs per distinct (name, X, Y) in
// first-encountered order offset by the current MaxID, numbers points
// ascending by interval bottom depth, and, when a top-depth column is
// mapped and fillMissing is set, inserts missing-valued synthetic intervals
// over any uncovered vertical span. Ground surface (depth 0) is the
// implicit top of the first interval.
//
// Intervals per well must be non-overlapping; overlapping input produces no
// synthetic row and no correction. All validation and parsing happens
// before any mutation, so a failed call leaves the table unchanged.
func (t *Table) AddWells(frame *Frame, cols ColumnMap, fillMissing bool) error {
	classCols := cols.Classes
	if classCols == nil {
		classCols = make(map[string]string, len(t.schema.Classes))
		for _, c := range t.schema.Classes {
			classCols[c] = c
		}
	}

	if err := t.validateColumns(frame, cols, classCols); err != nil {
		return err
	}

	rows, err := t.parseRows(frame, cols, classCols)
	if err != nil {
		return err
	}

	// Dense IDs per distinct (name, x, y), first-encountered order.
	type wellKey struct {
		name string
		x, y float64
	}
	ids := make(map[wellKey]int)
	names := make(map[string]bool)
	for i := range rows {
		k := wellKey{rows[i].location, rows[i].x, rows[i].y}
		id, ok := ids[k]
		if !ok {
			id = len(ids) + 1
			ids[k] = id
		}
		rows[i].id = id
		names[rows[i].location] = true
	}

	if cols.Point == "" {
		sortAndNumber(rows)
	}

	t.Logf("Adding %d entries from %d wells (%d unique names)", len(rows), len(ids), len(names))

	if cols.DepthTop != "" && fillMissing {
		t.Logf("Filling interval gaps...")
		rows = append(rows, t.fillGaps(rows)...)
		sortAndNumber(rows)
	}

	canonical := make([]Row, len(rows))
	offset := t.maxID
	for i, r := range rows {
		canonical[i] = Row{
			Location: r.location,
			WellID:   offset + r.id,
			Point:    r.point,
			X:        r.x,
			Y:        r.y,
			Zland:    r.zland,
			Depth:    r.depth,
			Classes:  r.classes,
			Variance: r.variance,
			Zones:    r.zones,
		}
	}
	t.append(canonical)
	return nil
}

func (t *Table) validateColumns(frame *Frame, cols ColumnMap, classCols map[string]string) error {
	for _, c := range []string{cols.Name, cols.X, cols.Y, cols.Zland, cols.Depth} {
		if c == "" {
			return schemaErrorf("name, x, y, zland and depth columns must all be mapped")
		}
		if !frame.Has(c) {
			return schemaErrorf("missing necessary column %q in raw table", c)
		}
	}
	for class, col := range classCols {
		if t.schema.classIndex(class) < 0 {
			return schemaErrorf("invalid class %q", class)
		}
		if !frame.Has(col) {
			return schemaErrorf("missing column %q for class %q", col, class)
		}
		if t.schema.Variance && !frame.Has(col+"_var") {
			return schemaErrorf("missing variance column %q for class %q", col+"_var", class)
		}
	}
	for i := 1; i <= t.schema.Layers; i++ {
		if !frame.Has(zoneColumn(i)) {
			return schemaErrorf("missing column %q", zoneColumn(i))
		}
	}
	if cols.DepthTop != "" && !frame.Has(cols.DepthTop) {
		return schemaErrorf("missing top-depth column %q in raw table", cols.DepthTop)
	}
	if cols.Point != "" && !frame.Has(cols.Point) {
		return schemaErrorf("missing point-index column %q in raw table", cols.Point)
	}
	return nil
}

func (t *Table) parseRows(frame *Frame, cols ColumnMap, classCols map[string]string) ([]rawRow, error) {
	nameIdx := frame.Index(cols.Name)
	xIdx := frame.Index(cols.X)
	yIdx := frame.Index(cols.Y)
	zlandIdx := frame.Index(cols.Zland)
	depthIdx := frame.Index(cols.Depth)

	rows := make([]rawRow, 0, len(frame.Records))
	for _, rec := range frame.Records {
		r := rawRow{location: rec[nameIdx]}
		var err error
		if r.x, err = frame.Float(rec, xIdx); err != nil {
			return nil, err
		}
		if r.y, err = frame.Float(rec, yIdx); err != nil {
			return nil, err
		}
		if r.zland, err = frame.Float(rec, zlandIdx); err != nil {
			return nil, err
		}
		if r.depth, err = frame.Float(rec, depthIdx); err != nil {
			return nil, err
		}
		if cols.DepthTop != "" {
			if r.top, err = frame.Float(rec, frame.Index(cols.DepthTop)); err != nil {
				return nil, err
			}
		}
		if cols.Point != "" {
			if r.point, err = frame.Int(rec, frame.Index(cols.Point)); err != nil {
				return nil, err
			}
		}
		r.classes = make([]float64, len(t.schema.Classes))
		if t.schema.Variance {
			r.variance = make([]float64, len(t.schema.Classes))
		}
		for i, class := range t.schema.Classes {
			col := classCols[class]
			if r.classes[i], err = frame.Float(rec, frame.Index(col)); err != nil {
				return nil, err
			}
			if t.schema.Variance {
				if r.variance[i], err = frame.Float(rec, frame.Index(col+"_var")); err != nil {
					return nil, err
				}
			}
		}
		if t.schema.Layers > 0 {
			r.zones = make([]int, t.schema.Layers)
			for i := 1; i <= t.schema.Layers; i++ {
				if r.zones[i-1], err = frame.Int(rec, frame.Index(zoneColumn(i))); err != nil {
					return nil, err
				}
			}
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// fillGaps scans each well in ascending bottom-depth order and returns a
// synthetic missing-valued row for every span the input intervals leave
// uncovered. The previous bottom always advances to the original interval's
// bottom, never to a synthesized one.
func (t *Table) fillGaps(rows []rawRow) []rawRow {
	byWell := make(map[int][]rawRow)
	var order []int
	for _, r := range rows {
		if _, ok := byWell[r.id]; !ok {
			order = append(order, r.id)
		}
		byWell[r.id] = append(byWell[r.id], r)
	}
	sort.Ints(order)

	var synthetic []rawRow
	for _, id := range order {
		group := byWell[id]
		sort.SliceStable(group, func(i, j int) bool { return group[i].depth < group[j].depth })
		previous := 0.0 // ground surface
		for _, r := range group {
			if r.top > previous {
				filler := r
				filler.depth = r.top
				filler.top = previous
				filler.classes = make([]float64, len(r.classes))
				for i := range filler.classes {
					filler.classes[i] = Missing
				}
				if r.variance != nil {
					filler.variance = make([]float64, len(r.variance))
					for i := range filler.variance {
						filler.variance[i] = Missing
					}
				}
				if r.zones != nil {
					filler.zones = append([]int(nil), r.zones...)
				}
				synthetic = append(synthetic, filler)
			}
			previous = r.depth
		}
	}
	if len(synthetic) > 0 {
		t.Logf("Inserted %d synthetic interval rows", len(synthetic))
	}
	return synthetic
}

// sortAndNumber orders rows by (well ID, bottom depth) ascending and
// assigns point indices 1..k per well in that order.
func sortAndNumber(rows []rawRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].id != rows[j].id {
			return rows[i].id < rows[j].id
		}
		return rows[i].depth < rows[j].depth
	})
	n := 0
	lastID := 0
	for i := range rows {
		if rows[i].id != lastID {
			lastID = rows[i].id
			n = 0
		}
		n++
		rows[i].point = n
	}
}
