package ports

import (
	"context"

	"github.com/teamsite/content-api/internal/core/domain"
)

// SaveRecordInput carries one authenticated write request. An empty ID selects
// the create path; a non-empty ID selects partial update of that record.
// Image is an optional data URI; empty means no image supplied.
type SaveRecordInput struct {
	Token       string
	Kind        domain.Kind
	ID          string
	Name        string
	Description string
	Locale      string
	Image       string
}

// SaveRecordResult is the outcome of a successful write. The record carries
// no binary data; HasImage reflects the asset store after the image step.
type SaveRecordResult struct {
	Message string
	Record  *domain.Record
}

// DeleteRecordInput identifies the record to remove.
type DeleteRecordInput struct {
	Token string
	Kind  domain.Kind
	ID    string
}

// RecordService orchestrates authentication, validation, record persistence
// and the best-effort image step for a single write.
type RecordService interface {
	Save(ctx context.Context, input SaveRecordInput) (*SaveRecordResult, error)
	Delete(ctx context.Context, input DeleteRecordInput) error
	ListRecords(ctx context.Context, kind domain.Kind, locale string) ([]*domain.Record, error)
	GetRecord(ctx context.Context, kind domain.Kind, id string) (*domain.Record, error)
}

// ReconcileService removes asset files whose filename stem matches no record
// id of any kind. Idempotent; safe to invoke concurrently.
type ReconcileService interface {
	Reconcile(ctx context.Context) (removed int, err error)
}

// ReconcileTrigger requests an asynchronous reconcile run after a mutating
// write. Implementations coalesce bursts of triggers.
type ReconcileTrigger interface {
	Kick()
}

// ListCache is an optional read-side cache for list endpoints. Lookups that
// fail for any reason report a miss; the caller falls through to the
// repository.
type ListCache interface {
	GetRecordList(ctx context.Context, kind domain.Kind, locale string) ([]*domain.Record, bool)
	SetRecordList(ctx context.Context, kind domain.Kind, locale string, records []*domain.Record)
	DropRecordList(ctx context.Context, kind domain.Kind, locale string)
	GetLocales(ctx context.Context) ([]domain.Locale, bool)
	SetLocales(ctx context.Context, locales []domain.Locale)
	DropLocales(ctx context.Context)
}
