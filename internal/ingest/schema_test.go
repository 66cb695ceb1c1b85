package ingest_test

import (
	"errors"
	"testing"

	"github.com/alexivanou/places-api/internal/ingest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateHeader(t *testing.T) {
	expected := ingest.ExpectedHeader()
	require.Len(t, expected, 27)

	swapped := append([]string(nil), expected...)
	swapped[3], swapped[4] = swapped[4], swapped[3]

	withBOM := append([]string(nil), expected...)
	withBOM[0] = "\uFEFFCODE"
	withBOM[5] = "  Chinese Text "

	tests := []struct {
		name         string
		header       []string
		wantErr      bool
		wantPosition int
		wantExpected string
		wantActual   string
	}{
		{
			name:   "exact header",
			header: expected,
		},
		{
			name:   "byte-order mark and padding are ignored",
			header: withBOM,
		},
		{
			name:         "missing column",
			header:       expected[:26],
			wantErr:      true,
			wantPosition: -1,
		},
		{
			name:         "extra column",
			header:       append(append([]string(nil), expected...), "Extra"),
			wantErr:      true,
			wantPosition: -1,
		},
		{
			name:         "wrong order",
			header:       swapped,
			wantErr:      true,
			wantPosition: 3,
			wantExpected: "English Text",
			wantActual:   "Spanish Text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ingest.ValidateHeader(tt.header)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var schemaErr *ingest.SchemaError
			require.True(t, errors.As(err, &schemaErr))
			assert.Equal(t, tt.wantPosition, schemaErr.Position)
			assert.Equal(t, tt.wantExpected, schemaErr.Expected)
			assert.Equal(t, tt.wantActual, schemaErr.Actual)
			assert.True(t, ingest.IsClientError(err))
		})
	}
}

func TestSchemaError_Message(t *testing.T) {
	err := ingest.ValidateHeader([]string{"CODE"})
	assert.EqualError(t, err, "CSV column count does not match the required format.")

	header := ingest.ExpectedHeader()
	header[22] = "Nation"
	err = ingest.ValidateHeader(header)
	assert.EqualError(t, err, "Column order mismatch: Expected 'Country' but got 'Nation'")
}
