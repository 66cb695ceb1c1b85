package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"
)

// Separator is the field delimiter of places uploads
const Separator = ';'

// RawRow maps header names to the values of one data line
type RawRow map[string]string

// Decoder reads a ';'-delimited payload one row at a time.
// The header is always produced before the first data row and the
// decoder cannot be rewound.
type Decoder struct {
	r          *csv.Reader
	header     []string
	headerErr  error
	headerRead bool
}

// NewDecoder creates a decoder over r
func NewDecoder(r io.Reader) *Decoder {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.Comma = Separator
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return &Decoder{r: cr}
}

// Header returns the header line. Subsequent calls return the same slice,
// or the same error when the header could not be read.
func (d *Decoder) Header() ([]string, error) {
	if !d.headerRead {
		d.headerRead = true
		d.header, d.headerErr = d.readHeader()
	}
	return d.header, d.headerErr
}

func (d *Decoder) readHeader() ([]string, error) {
	record, err := d.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &DecodeError{Line: 1, Err: ErrNoHeader}
		}
		return nil, &DecodeError{Line: 1, Err: err}
	}
	if err := checkEncoding(record); err != nil {
		return nil, &DecodeError{Line: 1, Err: err}
	}
	return record, nil
}

// Next returns the next data row, or io.EOF when the payload is exhausted.
// Missing trailing fields are absent from the row; extra fields are dropped.
func (d *Decoder) Next() (RawRow, error) {
	header, err := d.Header()
	if err != nil {
		return nil, err
	}

	record, err := d.r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return nil, &DecodeError{Line: parseErr.Line, Err: parseErr.Err}
		}
		return nil, &DecodeError{Err: err}
	}

	line, _ := d.r.FieldPos(0)
	if err := checkEncoding(record); err != nil {
		return nil, &DecodeError{Line: line, Err: err}
	}

	row := make(RawRow, len(header))
	for i, name := range header {
		if i >= len(record) {
			break
		}
		row[name] = record[i]
	}
	return row, nil
}

func checkEncoding(record []string) error {
	for i, field := range record {
		if !utf8.ValidString(field) {
			return fmt.Errorf("field %d is not valid UTF-8", i+1)
		}
	}
	return nil
}
