package ports

import (
	"context"

	"github.com/teamsite/content-api/internal/core/domain"
)

// RecordRepository defines persistence operations for one of the two record
// collections, selected by kind on every call.
type RecordRepository interface {
	// List returns records of a kind; when locale is non-empty only records
	// tagged with that locale are returned. Order follows insertion order,
	// no further guarantee.
	List(ctx context.Context, kind domain.Kind, locale string) ([]*domain.Record, error)
	Get(ctx context.Context, kind domain.Kind, id string) (*domain.Record, error)
	// Upsert dispatches on the write variant: OpCreate assigns a fresh id,
	// OpUpdate applies the non-empty fields to an existing record and fails
	// with domain.ErrRecordNotFound when the id is unknown for that kind.
	Upsert(ctx context.Context, kind domain.Kind, write domain.RecordWrite) (*domain.Record, error)
	Delete(ctx context.Context, kind domain.Kind, id string) error
	// ListIDs enumerates every record id of a kind, for asset reconciliation.
	ListIDs(ctx context.Context, kind domain.Kind) ([]string, error)
}

// LocaleRepository defines persistence operations for locale tags.
type LocaleRepository interface {
	List(ctx context.Context) ([]domain.Locale, error)
	Exists(ctx context.Context, language string) (bool, error)
	// Create is an upsert: creating an existing language is a no-op.
	Create(ctx context.Context, language string) error
	Delete(ctx context.Context, language string) error
}
