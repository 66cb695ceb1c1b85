package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alexivanou/places-api/internal/ingest"
	"github.com/alexivanou/places-api/internal/metrics"
	"github.com/alexivanou/places-api/internal/model"
	"go.uber.org/zap"
)

const importedMessage = "CSV data processed"

// ImportPlaces runs a CSV upload through the ingestion pipeline:
// header check, row normalization, override classification and batched upserts.
//
// Malformed uploads fail with *ingest.SchemaError or *ingest.DecodeError before
// any write. A failed batch returns *ingest.StorageError; earlier batches stay
// committed. Writes are not interrupted when ctx is cancelled.
func (s *Service) ImportPlaces(ctx context.Context, r io.Reader) (*model.ImportReport, error) {
	log := s.logger.With(zap.String("operation", "import_places"))
	log.Debug("Upload state", zap.String("state", string(ingest.StateReceived)))

	dec := ingest.NewDecoder(r)
	header, err := dec.Header()
	if err == nil {
		err = ingest.ValidateHeader(header)
	}
	if err != nil {
		s.abort(log, err)
		return nil, err
	}
	log.Debug("Upload state", zap.String("state", string(ingest.StateHeaderValidated)))

	existing, err := s.placeRepo.ExistingCodes(ctx)
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("failed").Inc()
		return nil, fmt.Errorf("failed to load existing codes: %w", err)
	}

	rows, err := ingest.ReadRows(dec)
	if err != nil {
		s.abort(log, err)
		return nil, err
	}

	overrides := []model.OverrideRecord{}
	for _, p := range rows.Accepted {
		if existing[p.Code] {
			overrides = append(overrides, model.OverrideRecord{Code: p.Code, Status: model.StatusOverride})
		}
	}
	log.Info("Upload state",
		zap.String("state", string(ingest.StateRowsProcessed)),
		zap.Int("total", rows.Total),
		zap.Int("accepted", len(rows.Accepted)),
		zap.Int("rejected", len(rows.Rejected)),
		zap.Int("overrides", len(overrides)),
	)
	metrics.RowsTotal.WithLabelValues("accepted").Add(float64(len(rows.Accepted)))
	metrics.RowsTotal.WithLabelValues("failed").Add(float64(len(rows.Rejected)))
	metrics.RowsTotal.WithLabelValues("override").Add(float64(len(overrides)))

	writeCtx := context.WithoutCancel(ctx)
	committed, err := s.writeBatches(writeCtx, log, rows.Accepted)
	if committed > 0 {
		if cerr := s.cache.Invalidate(writeCtx); cerr != nil {
			log.Warn("Failed to invalidate cache", zap.Error(cerr))
		}
	}
	if err != nil {
		metrics.UploadsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	log.Info("Upload state", zap.String("state", string(ingest.StateCompleted)))
	metrics.UploadsTotal.WithLabelValues(string(ingest.StateCompleted)).Inc()

	failed := rows.Rejected
	if failed == nil {
		failed = []model.FailedRecord{}
	}
	return &model.ImportReport{
		Message:         importedMessage,
		TotalRecords:    rows.Total,
		SuccessRecords:  len(rows.Accepted),
		OverrideRecords: len(overrides),
		FailedRecords:   len(rows.Rejected),
		FailedDetails:   failed,
		OverrideDetails: overrides,
	}, nil
}

// writeBatches upserts places in sequential batches, stopping at the first failure.
// It returns the number of batches committed.
func (s *Service) writeBatches(ctx context.Context, log *zap.Logger, places []model.Place) (int, error) {
	batches := ingest.Batches(ingest.Dedupe(places), s.batchSize)
	for i, batch := range batches {
		start := time.Now()
		if err := s.placeRepo.UpsertBatch(ctx, batch); err != nil {
			log.Error("Batch upsert failed",
				zap.Int("batch", i+1),
				zap.Int("batches", len(batches)),
				zap.Error(err),
			)
			return i, &ingest.StorageError{Batch: i + 1, Err: err}
		}
		metrics.BatchesTotal.Inc()
		metrics.BatchDurationMs.Observe(float64(time.Since(start).Milliseconds()))
		log.Debug("Upload state",
			zap.String("state", string(ingest.StateBatched)),
			zap.Int("batch", i+1),
			zap.Int("rows", len(batch)),
		)
	}
	return len(batches), nil
}

func (s *Service) abort(log *zap.Logger, err error) {
	log.Info("Upload state", zap.String("state", string(ingest.StateAborted)), zap.Error(err))
	metrics.UploadsTotal.WithLabelValues(string(ingest.StateAborted)).Inc()
}
