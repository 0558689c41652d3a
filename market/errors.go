package market

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidArgument is matched by every *InvalidArgumentError.
var ErrInvalidArgument = errors.New("invalid argument")

// SchemaError reports required columns that are absent from the header.
type SchemaError struct {
	Missing []string
	Header  []string
}

func (e *SchemaError) Error() string {
	if len(e.Missing) == 1 {
		return fmt.Sprintf("missing column in CSV: %q", e.Missing[0])
	}
	quoted := make([]string, len(e.Missing))
	for i, m := range e.Missing {
		quoted[i] = fmt.Sprintf("%q", m)
	}
	return "missing columns in CSV: " + strings.Join(quoted, ", ")
}

// ParseError reports a required field of a data row that could not be
// turned into a finite number. Row is the zero based data row, header
// excluded.
type ParseError struct {
	Row   int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d: field %s: invalid value %q: %v", e.Row, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidArgumentError reports an argument outside its accepted range.
type InvalidArgumentError struct {
	Name  string
	Value int
	Want  string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid %s %d: must be %s", e.Name, e.Value, e.Want)
}

func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}
