// Package metrics defines and registers all custom Prometheus metrics for the
// content API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register with the default registry at import time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "content"

// RecordsSavedTotal counts successful record writes.
// Labels:
//   - kind: "member" or "project"
//   - op:   "create" or "update"
var RecordsSavedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_saved_total",
		Help:      "Total number of records created or updated.",
	},
	[]string{"kind", "op"},
)

// RecordsDeletedTotal counts successful record deletions by kind.
var RecordsDeletedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "records_deleted_total",
		Help:      "Total number of records deleted.",
	},
	[]string{"kind"},
)

// ImagesStoredTotal counts image payloads successfully transcoded and stored.
// Label:
//   - format: declared source subtype ("png", "gif", "webp", ...)
var ImagesStoredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "images_stored_total",
		Help:      "Total number of image assets transcoded and written, by source format.",
	},
	[]string{"format"},
)

// ImageErrorsTotal counts best-effort image steps that failed without failing
// the enclosing record write.
// Label:
//   - reason: "decode" or "write"
var ImageErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_errors_total",
		Help:      "Total number of swallowed image pipeline failures, by reason.",
	},
	[]string{"reason"},
)

// GCOrphansRemovedTotal counts asset files deleted by reconciliation.
var GCOrphansRemovedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gc_orphans_removed_total",
		Help:      "Total number of orphaned asset files removed by the garbage collector.",
	},
)

// GCDuration measures one full reconcile scan-and-diff.
var GCDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gc_duration_seconds",
		Help:      "Duration of a full asset reconciliation run.",
		Buckets:   prometheus.DefBuckets,
	},
)
