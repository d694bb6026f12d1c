package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/teamsite/content-api/internal/api/metrics"
	"github.com/teamsite/content-api/internal/core/domain"
	"github.com/teamsite/content-api/internal/core/ports"
)

// ReconcileService removes orphaned assets: files whose stem matches no
// record id of either kind. The asset/record link is a filename convention,
// so divergence is expected after partial failures; this sweep restores the
// invariant. Idempotent, and safe against concurrent runs because asset
// removal tolerates already-missing files.
type ReconcileService struct {
	records ports.RecordRepository
	assets  ports.AssetStore
	logger  zerolog.Logger
}

func NewReconcileService(records ports.RecordRepository, assets ports.AssetStore, logger zerolog.Logger) *ReconcileService {
	return &ReconcileService{records: records, assets: assets, logger: logger}
}

// Reconcile enumerates assets and record ids, deletes the difference, and
// returns how many files were removed.
func (s *ReconcileService) Reconcile(ctx context.Context) (int, error) {
	start := time.Now()
	defer func() {
		metrics.GCDuration.Observe(time.Since(start).Seconds())
	}()

	owned := make(map[string]struct{})
	for _, kind := range []domain.Kind{domain.KindMember, domain.KindProject} {
		ids, err := s.records.ListIDs(ctx, kind)
		if err != nil {
			return 0, err
		}
		for _, id := range ids {
			owned[id] = struct{}{}
		}
	}

	names, err := s.assets.List()
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, name := range names {
		owner := domain.AssetOwner(name)
		if _, ok := owned[owner]; ok {
			continue
		}
		if err := s.assets.Remove(owner); err != nil {
			s.logger.Warn().Err(err).Str("asset", name).Msg("orphan removal failed")
			continue
		}
		s.logger.Debug().Str("asset", name).Msg("orphaned asset removed")
		removed++
	}

	if removed > 0 {
		metrics.GCOrphansRemovedTotal.Add(float64(removed))
	}
	return removed, nil
}
