package ingest_test

import (
	"testing"

	"github.com/alexivanou/places-api/internal/ingest"
	"github.com/alexivanou/places-api/internal/model"
	"github.com/stretchr/testify/assert"
)

func places(codes ...string) []model.Place {
	out := make([]model.Place, len(codes))
	for i, c := range codes {
		out[i] = model.Place{Code: c}
	}
	return out
}

func TestBatches(t *testing.T) {
	tests := []struct {
		name      string
		rows      int
		size      int
		wantSizes []int
	}{
		{name: "empty", rows: 0, size: 50, wantSizes: nil},
		{name: "single partial batch", rows: 3, size: 50, wantSizes: []int{3}},
		{name: "exact multiple", rows: 100, size: 50, wantSizes: []int{50, 50}},
		{name: "remainder", rows: 120, size: 50, wantSizes: []int{50, 50, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := make([]model.Place, tt.rows)
			for i := range in {
				in[i].Level = int16(i)
			}

			batches := ingest.Batches(in, tt.size)

			var sizes []int
			next := 0
			for _, b := range batches {
				sizes = append(sizes, len(b))
				for _, p := range b {
					assert.Equal(t, int16(next), p.Level, "batches must preserve input order")
					next++
				}
			}
			assert.Equal(t, tt.wantSizes, sizes)
		})
	}
}

func TestDedupe_KeepsLastOccurrence(t *testing.T) {
	in := places("A", "B", "A", "C", "B")
	in[2].Name = "second A"
	in[4].Name = "second B"

	out := ingest.Dedupe(in)

	assert.Len(t, out, 3)
	assert.Equal(t, "A", out[0].Code)
	assert.Equal(t, "second A", out[0].Name)
	assert.Equal(t, "C", out[1].Code)
	assert.Equal(t, "B", out[2].Code)
	assert.Equal(t, "second B", out[2].Name)
}
