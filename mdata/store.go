package mdata

import (
	"github.com/grafana/splitstore/schema"
)

// Store persists the splits and unaggregated data of metrics.
// Implementations map OS level conditions to the errors in mdata/errors:
// ErrMetricAlreadyExists, ErrMetricDoesNotExist and ErrAggregationDoesNotExist.
// Any other failure is returned unmodified.
type Store interface {
	// CreateMetric provisions storage for the metric and one area per aggregation method
	// of its archive policy.
	CreateMetric(metric schema.Metric) error
	// DeleteMetric removes all data of the metric. Deleting a metric that has no storage is not an error.
	DeleteMetric(metric schema.Metric) error

	WriteUnaggregated(metric schema.Metric, data []byte) error
	// ReadUnaggregated returns found=false if the metric has no unaggregated data yet.
	ReadUnaggregated(metric schema.Metric) (data []byte, found bool, err error)

	// ListSplitKeys returns, for every requested aggregation, the split keys stored in the given format version.
	ListSplitKeys(metric schema.Metric, aggregations []schema.Aggregation, version int) (map[schema.Aggregation]schema.SplitKeySet, error)
	// WriteSplits writes each split independently. It is not atomic as a unit.
	WriteSplits(metric schema.Metric, aggregation schema.Aggregation, splits []SplitWriteRequest, version int) error
	DeleteSplit(metric schema.Metric, aggregation schema.Aggregation, key schema.SplitKey, version int) error
	ReadSplit(metric schema.Metric, aggregation schema.Aggregation, key schema.SplitKey, version int) ([]byte, error)

	// WriteFull reports whether writes replace whole splits, in which case offsets are ignored.
	WriteFull() bool
}
