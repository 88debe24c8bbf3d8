// Package texture holds the well-log dataset model used to feed the
// Texture2Par interpolator: a fixed-schema table of depth intervals per
// well, the reconciler that assigns well IDs and fills vertical gaps, and
// the delimited file format the interpolator reads.
package texture

import (
	"fmt"
	"math"
)

// Schema fixes the column layout of a dataset table. The serialized column
// order is: Location, ID, n, X, Y, Zland, Depth, one column per
// classification, one variance column per classification when Variance is
// set, and one zone column per layer when Layers > 0.
type Schema struct {
	// Classes are the classification column names (e.g. "PC" for percent
	// coarse), in output order.
	Classes []string

	// Variance carries a per-classification measurement-error column
	// alongside each classification column.
	Variance bool

	// Layers is the number of model layers with hydrostratigraphic-unit
	// zone codes. Zero disables zone columns.
	Layers int
}

// Validate checks the schema is usable. A schema with zone columns must
// name at least one layer.
func (s Schema) Validate() error {
	if len(s.Classes) == 0 {
		return schemaErrorf("schema must declare at least one classification column")
	}
	if s.Layers < 0 {
		return schemaErrorf("layer count must be non-negative, got %d", s.Layers)
	}
	seen := make(map[string]bool, len(s.Classes))
	for _, c := range s.Classes {
		if c == "" {
			return schemaErrorf("classification column name must not be empty")
		}
		if seen[c] {
			return schemaErrorf("duplicate classification column %q", c)
		}
		seen[c] = true
	}
	return nil
}

// Columns returns the full serialized column list, with internal names for
// the zone columns (zone headers are rendered as bare layer numbers only at
// write time).
func (s Schema) Columns() []string {
	cols := []string{"Location", "ID", "n", "X", "Y", "Zland", "Depth"}
	cols = append(cols, s.Classes...)
	if s.Variance {
		for _, c := range s.Classes {
			cols = append(cols, c+"_var")
		}
	}
	for i := 1; i <= s.Layers; i++ {
		cols = append(cols, zoneColumn(i))
	}
	return cols
}

// classIndex returns the position of class name in s.Classes, or -1.
func (s Schema) classIndex(name string) int {
	for i, c := range s.Classes {
		if c == name {
			return i
		}
	}
	return -1
}

func zoneColumn(layer int) string {
	return fmt.Sprintf("hsu_%d", layer)
}

// Missing is the in-memory marker for an absent classification or variance
// value. On disk it is rendered as the configured missing marker.
var Missing = math.NaN()

// IsMissing reports whether v is the missing-value marker.
func IsMissing(v float64) bool { return math.IsNaN(v) }
