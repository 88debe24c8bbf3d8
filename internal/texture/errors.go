package texture

import "fmt"

// SchemaError reports a column that is missing from an input table or a
// classification/zone name that the target schema does not know about.
type SchemaError struct {
	msg string
}

func (e *SchemaError) Error() string { return e.msg }

func schemaErrorf(format string, args ...interface{}) error {
	return &SchemaError{msg: fmt.Sprintf(format, args...)}
}

// ShapeError reports parallel input slices of mismatched length.
type ShapeError struct {
	msg string
}

func (e *ShapeError) Error() string { return e.msg }

func shapeErrorf(format string, args ...interface{}) error {
	return &ShapeError{msg: fmt.Sprintf(format, args...)}
}
