// Package ingesttest builds places CSV payloads for tests.
package ingesttest

import (
	"strings"

	"github.com/alexivanou/places-api/internal/ingest"
)

// Row returns the field values of a valid data line for code.
// Values in overrides replace the defaults by header name.
func Row(code string, overrides map[string]string) []string {
	values := make([]string, len(ingest.Columns))
	for i, col := range ingest.Columns {
		switch col.Header {
		case "CODE":
			values[i] = code
		case "SOURCES":
			values[i] = "src"
		case "Name":
			values[i] = "Place " + code
		case "Level":
			values[i] = "5"
		case "Coordinates":
			values[i] = "48.85,2.29"
		case "Province":
			values[i] = "Ile-de-France"
		case "Country":
			values[i] = "France"
		case "Tag":
			values[i] = "landmark"
		case "IMAGE":
			values[i] = "img.jpg"
		case "Web", "Phone":
			values[i] = ""
		default:
			values[i] = col.Header + " of " + code
		}
		if v, ok := overrides[col.Header]; ok {
			values[i] = v
		}
	}
	return values
}

// CSV joins a header and rows into a ';'-delimited payload
func CSV(header []string, rows ...[]string) string {
	var b strings.Builder
	b.WriteString(strings.Join(header, ";"))
	b.WriteString("\n")
	for _, row := range rows {
		b.WriteString(strings.Join(row, ";"))
		b.WriteString("\n")
	}
	return b.String()
}

// Upload builds a payload with the expected header and one valid row per code
func Upload(codes ...string) string {
	rows := make([][]string, len(codes))
	for i, code := range codes {
		rows[i] = Row(code, nil)
	}
	return CSV(ingest.ExpectedHeader(), rows...)
}
