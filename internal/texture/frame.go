package texture

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultMissingValues are the literal tokens treated as missing when
// parsing raw tables and dataset files.
var DefaultMissingValues = []string{"-99", "-999"}

// Frame is a raw named-column table, the reconciler's input: a header of
// column names and string records below it. It carries no schema beyond the
// header.
type Frame struct {
	Columns []string
	Records [][]string

	// MissingValues are tokens parsed as the missing marker. Defaults to
	// DefaultMissingValues when nil.
	MissingValues []string
}

// ReadFrame reads a delimited raw table whose first line is a header of
// column names.
func ReadFrame(path, delim string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open raw table: %w", err)
	}
	defer f.Close()

	var frame Frame
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, delim)
		if frame.Columns == nil {
			for _, c := range fields {
				frame.Columns = append(frame.Columns, strings.TrimSpace(c))
			}
			continue
		}
		if len(fields) < len(frame.Columns) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d", len(frame.Records)+1, len(fields), len(frame.Columns))
		}
		frame.Records = append(frame.Records, fields)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read raw table: %w", err)
	}
	if frame.Columns == nil {
		return nil, fmt.Errorf("raw table %s is empty", path)
	}
	return &frame, nil
}

// Index returns the position of the named column, or -1.
func (f *Frame) Index(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Has reports whether the named column exists.
func (f *Frame) Has(name string) bool { return f.Index(name) >= 0 }

func (f *Frame) missingValues() []string {
	if f.MissingValues != nil {
		return f.MissingValues
	}
	return DefaultMissingValues
}

// Float parses the field at column col of record rec. Missing-value tokens
// and empty fields parse to the missing marker.
func (f *Frame) Float(rec []string, col int) (float64, error) {
	s := strings.TrimSpace(rec[col])
	if s == "" {
		return Missing, nil
	}
	for _, m := range f.missingValues() {
		if s == m {
			return Missing, nil
		}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %q in column %q: %w", s, f.Columns[col], err)
	}
	return v, nil
}

// Int parses the field at column col of record rec as an integer.
func (f *Frame) Int(rec []string, col int) (int, error) {
	s := strings.TrimSpace(rec[col])
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %q in column %q: %w", s, f.Columns[col], err)
	}
	return v, nil
}
