package ingest

import "github.com/alexivanou/places-api/internal/model"

// Dedupe drops all but the last occurrence of each code.
// The surviving rows keep the relative order of their last occurrence.
func Dedupe(places []model.Place) []model.Place {
	seen := make(map[string]bool, len(places))
	kept := make([]model.Place, 0, len(places))
	for i := len(places) - 1; i >= 0; i-- {
		if seen[places[i].Code] {
			continue
		}
		seen[places[i].Code] = true
		kept = append(kept, places[i])
	}
	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	return kept
}

// Batches splits places into consecutive chunks of at most size rows
func Batches(places []model.Place, size int) [][]model.Place {
	if size <= 0 {
		size = len(places)
	}
	var batches [][]model.Place
	for i := 0; i < len(places); i += size {
		end := i + size
		if end > len(places) {
			end = len(places)
		}
		batches = append(batches, places[i:end])
	}
	return batches
}

// State is a step of the upload lifecycle
type State string

const (
	StateReceived        State = "received"
	StateHeaderValidated State = "header_validated"
	StateRowsProcessed   State = "rows_processed"
	StateBatched         State = "batched"
	StateCompleted       State = "completed"
	StateAborted         State = "aborted"
)
