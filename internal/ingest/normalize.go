package ingest

import (
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alexivanou/places-api/internal/model"
)

const unknownCode = "UNKNOWN"

// NormalizeRow validates a raw row and converts it to a storage record
func NormalizeRow(raw RawRow) (model.Place, error) {
	row := normalizeKeys(raw)

	for _, col := range Columns {
		if col.Optional {
			continue
		}
		if collapseSpaces(row[col.Header]) == "" {
			return model.Place{}, &MissingFieldError{Column: col.Header}
		}
	}

	values := make(map[string]string, len(Columns))
	for _, col := range Columns {
		v := strings.TrimSpace(row[col.Header])
		if col.MaxLen > 0 && utf8.RuneCountInString(v) > col.MaxLen {
			return model.Place{}, &InvalidFieldError{Column: col.Header, Value: v}
		}
		values[col.Storage] = v
	}

	level, err := strconv.ParseInt(values["level"], 10, 16)
	if err != nil {
		return model.Place{}, &InvalidFieldError{Column: "Level", Value: values["level"]}
	}

	return model.Place{
		Code:           values["code"],
		Sources:        values["sources"],
		Name:           values["name"],
		EnglishText:    values["english_text"],
		SpanishText:    values["spanish_text"],
		ChineseText:    values["chinese_text"],
		GermanText:     values["german_text"],
		FrenchText:     values["french_text"],
		RussianText:    values["russian_text"],
		PortugueseText: values["portuguese_text"],
		ItalianText:    values["italian_text"],
		HindiText:      values["hindi_text"],
		ArabText:       values["arab_text"],
		TurkishText:    values["turkish_text"],
		JapaneseText:   values["japanese_text"],
		RomanianText:   values["romanian_text"],
		PolishText:     values["polish_text"],
		CzechText:      values["czech_text"],
		IndonesianText: values["indonesian_text"],
		Level:          int16(level),
		Coordinates:    values["coordinates"],
		Province:       values["province"],
		Country:        values["country"],
		Tag:            values["tag"],
		Image:          values["image"],
		Web:            nullable(values["web"]),
		Phone:          nullable(values["phone"]),
	}, nil
}

// RowCode returns the CODE of a raw row for failure reports
func RowCode(raw RawRow) string {
	if code := strings.TrimSpace(normalizeKeys(raw)["CODE"]); code != "" {
		return code
	}
	return unknownCode
}

// RowSet is the result of folding decoded rows through NormalizeRow.
// Accepted and Rejected keep input order.
type RowSet struct {
	Total    int
	Accepted []model.Place
	Rejected []model.FailedRecord
}

// Add normalizes one raw row into the set
func (s *RowSet) Add(raw RawRow) {
	s.Total++
	place, err := NormalizeRow(raw)
	if err != nil {
		s.Rejected = append(s.Rejected, model.FailedRecord{
			Code:   RowCode(raw),
			Error:  err.Error(),
			Status: model.StatusFailed,
		})
		return
	}
	s.Accepted = append(s.Accepted, place)
}

// ReadRows drains the decoder into a RowSet.
// A decoding error aborts the whole read.
func ReadRows(d *Decoder) (*RowSet, error) {
	set := &RowSet{}
	for {
		raw, err := d.Next()
		if err != nil {
			if err == io.EOF {
				return set, nil
			}
			return nil, err
		}
		set.Add(raw)
	}
}

func normalizeKeys(raw RawRow) RawRow {
	row := make(RawRow, len(raw))
	for key, value := range raw {
		row[cleanName(key)] = value
	}
	return row
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(s, byteOrderMark, "")), " ")
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
