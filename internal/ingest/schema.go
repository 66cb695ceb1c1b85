package ingest

import "strings"

const byteOrderMark = "\uFEFF"

// Column maps a CSV header to its storage column.
// MaxLen is the character limit of a VARCHAR column, 0 for TEXT.
type Column struct {
	Header   string
	Storage  string
	Optional bool
	MaxLen   int
}

// Columns is the expected header of a places upload, in order
var Columns = []Column{
	{Header: "CODE", Storage: "code", MaxLen: 50},
	{Header: "SOURCES", Storage: "sources"},
	{Header: "Name", Storage: "name"},
	{Header: "English Text", Storage: "english_text"},
	{Header: "Spanish Text", Storage: "spanish_text"},
	{Header: "Chinese Text", Storage: "chinese_text"},
	{Header: "German Text", Storage: "german_text"},
	{Header: "French Text", Storage: "french_text"},
	{Header: "Russian Text", Storage: "russian_text"},
	{Header: "Portuguese Text", Storage: "portuguese_text"},
	{Header: "Italian Text", Storage: "italian_text"},
	{Header: "Hindi Text", Storage: "hindi_text"},
	{Header: "Arab Text", Storage: "arab_text"},
	{Header: "Turkish Text", Storage: "turkish_text"},
	{Header: "Japanese Text", Storage: "japanese_text"},
	{Header: "Romanian Text", Storage: "romanian_text"},
	{Header: "Polish Text", Storage: "polish_text"},
	{Header: "Czech Text", Storage: "czech_text"},
	{Header: "Indonesian Text", Storage: "indonesian_text"},
	{Header: "Level", Storage: "level"},
	{Header: "Coordinates", Storage: "coordinates", MaxLen: 50},
	{Header: "Province", Storage: "province", MaxLen: 200},
	{Header: "Country", Storage: "country", MaxLen: 50},
	{Header: "Tag", Storage: "tag", MaxLen: 50},
	{Header: "IMAGE", Storage: "image"},
	{Header: "Web", Storage: "web", Optional: true},
	{Header: "Phone", Storage: "phone", Optional: true},
}

// ExpectedHeader returns the header names in upload order
func ExpectedHeader() []string {
	names := make([]string, len(Columns))
	for i, c := range Columns {
		names[i] = c.Header
	}
	return names
}

// ValidateHeader checks column count and positional names.
// Names are compared after trimming whitespace and removing byte-order marks.
func ValidateHeader(header []string) error {
	if len(header) != len(Columns) {
		return &SchemaError{
			Position:      -1,
			ExpectedCount: len(Columns),
			ActualCount:   len(header),
		}
	}
	for i, raw := range header {
		name := cleanName(raw)
		if name != Columns[i].Header {
			return &SchemaError{
				Position:      i,
				Expected:      Columns[i].Header,
				Actual:        name,
				ExpectedCount: len(Columns),
				ActualCount:   len(header),
			}
		}
	}
	return nil
}

func cleanName(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, byteOrderMark, ""))
}
