package texture

import (
	"gonum.org/v1/gonum/stat"
)

// ClassSummary describes the non-missing values of one classification
// column across the whole table.
type ClassSummary struct {
	Class   string
	Count   int
	Missing int
	Mean    float64
	StdDev  float64
}

// Summary computes per-classification statistics over the table, ignoring
// missing values. Used for the ingest status report.
func (t *Table) Summary() []ClassSummary {
	summaries := make([]ClassSummary, len(t.schema.Classes))
	for i, class := range t.schema.Classes {
		var values []float64
		missing := 0
		for _, r := range t.rows {
			if IsMissing(r.Classes[i]) {
				missing++
				continue
			}
			values = append(values, r.Classes[i])
		}
		s := ClassSummary{Class: class, Count: len(values), Missing: missing}
		if len(values) > 0 {
			s.Mean, s.StdDev = stat.MeanStdDev(values, nil)
		}
		summaries[i] = s
	}
	return summaries
}
