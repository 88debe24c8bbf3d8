package texture

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// WriteOptions controls dataset file serialization.
type WriteOptions struct {
	Delim       string // field delimiter, tab when empty
	Missing     string // missing-value marker, "-999" when empty
	FloatFormat string // float verb, "%.5f" when empty
}

func (o WriteOptions) delim() string {
	if o.Delim == "" {
		return "\t"
	}
	return o.Delim
}

func (o WriteOptions) missing() string {
	if o.Missing == "" {
		return "-999"
	}
	return o.Missing
}

func (o WriteOptions) floatFormat() string {
	if o.FloatFormat == "" {
		return "%.5f"
	}
	return o.FloatFormat
}

// ReadOptions controls dataset file parsing.
type ReadOptions struct {
	Delim         string   // field delimiter, tab when empty
	MissingValues []string // missing tokens, DefaultMissingValues when nil
}

func (o ReadOptions) delim() string {
	if o.Delim == "" {
		return "\t"
	}
	return o.Delim
}

func (o ReadOptions) missingValues() []string {
	if o.MissingValues != nil {
		return o.MissingValues
	}
	return DefaultMissingValues
}

// WriteFile serializes the table as delimited text, one row per line in
// insertion order, preceded by a header line. Zone column headers are
// written as bare layer numbers.
func (t *Table) WriteFile(path string, opts WriteOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	delim := opts.delim()

	header := []string{"Location", "ID", "n", "X", "Y", "Zland", "Depth"}
	header = append(header, t.schema.Classes...)
	if t.schema.Variance {
		for _, c := range t.schema.Classes {
			header = append(header, c+"_var")
		}
	}
	for i := 1; i <= t.schema.Layers; i++ {
		header = append(header, strconv.Itoa(i))
	}
	fmt.Fprintln(w, strings.Join(header, delim))

	ff := opts.floatFormat()
	for _, r := range t.rows {
		fields := []string{
			r.Location,
			strconv.Itoa(r.WellID),
			strconv.Itoa(r.Point),
			fmt.Sprintf(ff, r.X),
			fmt.Sprintf(ff, r.Y),
			fmt.Sprintf(ff, r.Zland),
			fmt.Sprintf(ff, r.Depth),
		}
		for _, v := range r.Classes {
			fields = append(fields, formatValue(v, ff, opts.missing()))
		}
		for _, v := range r.Variance {
			fields = append(fields, formatValue(v, ff, opts.missing()))
		}
		for _, z := range r.Zones {
			fields = append(fields, strconv.Itoa(z))
		}
		fmt.Fprintln(w, strings.Join(fields, delim))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write dataset file: %w", err)
	}
	return nil
}

func formatValue(v float64, floatFormat, missing string) string {
	if IsMissing(v) {
		return missing
	}
	return fmt.Sprintf(floatFormat, v)
}

// ReadTable parses a dataset file into a new table. The first line is
// skipped unconditionally; columns map positionally onto the schema and
// columns beyond the schema's width are ignored.
func ReadTable(path string, schema Schema, opts ReadOptions) (*Table, error) {
	t, err := NewTable(schema)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer f.Close()

	width := len(schema.Columns())
	nc := len(schema.Classes)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	first := true
	lineno := 0
	var rows []Row
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if first {
			first = false
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, opts.delim())
		if len(fields) < width {
			return nil, fmt.Errorf("line %d has %d columns, schema needs %d", lineno, len(fields), width)
		}

		p := &fileParser{missing: opts.missingValues()}
		r := Row{Location: strings.TrimSpace(fields[0])}
		r.WellID = p.int(fields[1])
		r.Point = p.int(fields[2])
		r.X = p.float(fields[3])
		r.Y = p.float(fields[4])
		r.Zland = p.float(fields[5])
		r.Depth = p.float(fields[6])
		col := 7
		r.Classes = make([]float64, nc)
		for i := 0; i < nc; i++ {
			r.Classes[i] = p.float(fields[col])
			col++
		}
		if schema.Variance {
			r.Variance = make([]float64, nc)
			for i := 0; i < nc; i++ {
				r.Variance[i] = p.float(fields[col])
				col++
			}
		}
		if schema.Layers > 0 {
			r.Zones = make([]int, schema.Layers)
			for i := 0; i < schema.Layers; i++ {
				r.Zones[i] = p.int(fields[col])
				col++
			}
		}
		if p.err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, p.err)
		}
		rows = append(rows, r)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	t.append(rows)
	return t, nil
}

// fileParser accumulates the first parse error across a row's fields.
type fileParser struct {
	missing []string
	err     error
}

func (p *fileParser) isMissing(s string) bool {
	for _, m := range p.missing {
		if s == m {
			return true
		}
	}
	return false
}

func (p *fileParser) float(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" || p.isMissing(s) {
		return Missing
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("failed to parse float %q", s)
	}
	return v
}

func (p *fileParser) int(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("failed to parse integer %q", s)
	}
	return v
}
