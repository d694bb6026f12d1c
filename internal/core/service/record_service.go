package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/teamsite/content-api/internal/api/metrics"
	"github.com/teamsite/content-api/internal/core/domain"
	"github.com/teamsite/content-api/internal/core/ports"
)

const (
	msgRecordCreated = "Record created"
	msgRecordSaved   = "Record saved"
)

// RecordService drives the record write pipeline: auth gate, validation,
// upsert, then the best-effort image step. The record store is authoritative;
// a failed image step is logged and swallowed, never surfaced to the client.
type RecordService struct {
	auth    *AuthGate
	records ports.RecordRepository
	locales ports.LocaleRepository
	assets  ports.AssetStore
	codec   ports.ImageCodec
	cache   ports.ListCache        // optional
	gc      ports.ReconcileTrigger // optional
	logger  zerolog.Logger
}

func NewRecordService(
	auth *AuthGate,
	records ports.RecordRepository,
	locales ports.LocaleRepository,
	assets ports.AssetStore,
	codec ports.ImageCodec,
	logger zerolog.Logger,
) *RecordService {
	return &RecordService{
		auth:    auth,
		records: records,
		locales: locales,
		assets:  assets,
		codec:   codec,
		logger:  logger,
	}
}

// WithCache enables the read-side list cache.
func (s *RecordService) WithCache(cache ports.ListCache) *RecordService {
	s.cache = cache
	return s
}

// WithReconcileTrigger kicks asset reconciliation after mutating writes.
func (s *RecordService) WithReconcileTrigger(gc ports.ReconcileTrigger) *RecordService {
	s.gc = gc
	return s
}

// Save authenticates and persists one write request, then attaches the image
// when a payload was supplied.
func (s *RecordService) Save(ctx context.Context, input ports.SaveRecordInput) (*ports.SaveRecordResult, error) {
	if err := s.auth.Authorize(input.Token); err != nil {
		return nil, err
	}

	write := domain.NewRecordWrite(input.ID, domain.RecordFields{
		Name:        input.Name,
		Description: input.Description,
		Locale:      input.Locale,
	})

	if write.Op == domain.OpCreate {
		if err := validateCreate(input); err != nil {
			return nil, err
		}
	}

	if write.Fields.Locale != "" {
		known, err := s.locales.Exists(ctx, write.Fields.Locale)
		if err != nil {
			return nil, err
		}
		if !known {
			return nil, domain.ErrLocaleNotFound
		}
	}

	rec, err := s.records.Upsert(ctx, input.Kind, write)
	if err != nil {
		s.logger.Error().Err(err).Str("kind", string(input.Kind)).Msg("record upsert failed")
		return nil, err
	}

	op := "update"
	message := msgRecordSaved
	if write.Op == domain.OpCreate {
		op = "create"
		message = msgRecordCreated
	}
	metrics.RecordsSavedTotal.WithLabelValues(string(input.Kind), op).Inc()

	if input.Image != "" {
		s.attachImage(rec.ID, input.Image)
	}
	rec.HasImage = s.assets.Exists(rec.ID)

	s.invalidate(ctx, input.Kind, rec.Locale)
	s.kickReconcile()

	s.logger.Info().
		Str("kind", string(input.Kind)).
		Str("record_id", rec.ID).
		Str("op", op).
		Bool("has_image", rec.HasImage).
		Msg("record saved")

	return &ports.SaveRecordResult{Message: message, Record: rec}, nil
}

// validateCreate enforces the fixed check order: name, description, locale,
// image. The first missing field names the failure.
func validateCreate(input ports.SaveRecordInput) error {
	switch {
	case input.Name == "":
		return &domain.MissingFieldError{Field: "name"}
	case input.Description == "":
		return &domain.MissingFieldError{Field: "description"}
	case input.Locale == "":
		return &domain.MissingFieldError{Field: "locale"}
	case input.Image == "":
		return &domain.MissingFieldError{Field: "image"}
	}
	return nil
}

// attachImage runs the non-fatal half of the pipeline. The record is already
// persisted, so decode and write failures are logged and counted only.
func (s *RecordService) attachImage(recordID, dataURI string) {
	img, err := s.codec.Decode(dataURI)
	if err != nil {
		metrics.ImageErrorsTotal.WithLabelValues("decode").Inc()
		s.logger.Warn().Err(err).Str("record_id", recordID).Msg("image decode failed, record kept")
		return
	}
	if err := s.assets.Write(recordID, img.Data); err != nil {
		metrics.ImageErrorsTotal.WithLabelValues("write").Inc()
		s.logger.Warn().Err(err).Str("record_id", recordID).Msg("asset write failed, record kept")
		return
	}
	metrics.ImagesStoredTotal.WithLabelValues(img.SourceFormat).Inc()
}

// Delete removes the record and then, best-effort, its asset.
func (s *RecordService) Delete(ctx context.Context, input ports.DeleteRecordInput) error {
	if err := s.auth.Authorize(input.Token); err != nil {
		return err
	}

	rec, err := s.records.Get(ctx, input.Kind, input.ID)
	if err != nil {
		return err
	}

	if err := s.records.Delete(ctx, input.Kind, input.ID); err != nil {
		return err
	}
	metrics.RecordsDeletedTotal.WithLabelValues(string(input.Kind)).Inc()

	if err := s.assets.Remove(input.ID); err != nil {
		// The reconcile worker sweeps whatever is left behind.
		s.logger.Warn().Err(err).Str("record_id", input.ID).Msg("asset cleanup failed")
	}

	s.invalidate(ctx, input.Kind, rec.Locale)
	s.kickReconcile()

	s.logger.Info().Str("kind", string(input.Kind)).Str("record_id", input.ID).Msg("record deleted")
	return nil
}

// ListRecords serves the unauthenticated list read, cache first.
func (s *RecordService) ListRecords(ctx context.Context, kind domain.Kind, locale string) ([]*domain.Record, error) {
	if s.cache != nil {
		if records, ok := s.cache.GetRecordList(ctx, kind, locale); ok {
			s.deriveHasImage(records)
			return records, nil
		}
	}

	records, err := s.records.List(ctx, kind, locale)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetRecordList(ctx, kind, locale, records)
	}
	s.deriveHasImage(records)
	return records, nil
}

func (s *RecordService) GetRecord(ctx context.Context, kind domain.Kind, id string) (*domain.Record, error) {
	rec, err := s.records.Get(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	rec.HasImage = s.assets.Exists(rec.ID)
	return rec, nil
}

// deriveHasImage fills the derived flag at read time; it is never cached or
// persisted because the asset store is the only source of truth for it.
func (s *RecordService) deriveHasImage(records []*domain.Record) {
	for _, rec := range records {
		rec.HasImage = s.assets.Exists(rec.ID)
	}
}

func (s *RecordService) invalidate(ctx context.Context, kind domain.Kind, locale string) {
	if s.cache != nil {
		s.cache.DropRecordList(ctx, kind, locale)
	}
}

func (s *RecordService) kickReconcile() {
	if s.gc != nil {
		s.gc.Kick()
	}
}
