package ingest

import (
	"errors"
	"fmt"
)

// ErrNoHeader is returned when the upload contains no header line at all
var ErrNoHeader = errors.New("CSV file has no header row")

// SchemaError reports a header that does not match the expected columns.
// Position is -1 when the column count is wrong.
type SchemaError struct {
	Position      int
	Expected      string
	Actual        string
	ExpectedCount int
	ActualCount   int
}

func (e *SchemaError) Error() string {
	if e.Position < 0 {
		return "CSV column count does not match the required format."
	}
	return fmt.Sprintf("Column order mismatch: Expected '%s' but got '%s'", e.Expected, e.Actual)
}

// DecodeError is a fatal problem reading the delimited payload
type DecodeError struct {
	Line int
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("failed to decode CSV at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("failed to decode CSV: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// MissingFieldError rejects a row without a value for a required column
type MissingFieldError struct {
	Column string
}

func (e *MissingFieldError) Error() string {
	return "Missing value for required field: " + e.Column
}

// InvalidFieldError rejects a row whose value cannot be stored in its column
type InvalidFieldError struct {
	Column string
	Value  string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("Invalid value for field %s: '%s'", e.Column, e.Value)
}

// StorageError wraps a failed batch upsert
type StorageError struct {
	Batch int
	Err   error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to upsert batch %d: %v", e.Batch, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsClientError reports whether err rejects the whole upload as malformed
func IsClientError(err error) bool {
	var schemaErr *SchemaError
	var decodeErr *DecodeError
	return errors.As(err, &schemaErr) || errors.As(err, &decodeErr)
}
