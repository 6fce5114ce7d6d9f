package file

import (
	"io/ioutil"
	"time"

	"github.com/grafana/splitstore/mdata/errors"
	"github.com/grafana/splitstore/schema"
	"github.com/grafana/splitstore/tracing"
	log "github.com/sirupsen/logrus"
)

// ListSplitKeys returns the split keys stored for each of the requested aggregations,
// in the given format version. Every requested aggregation gets an entry, possibly empty.
// A missing aggregation directory means the metric doesn't exist.
func (s *FileStore) ListSplitKeys(metric schema.Metric, aggregations []schema.Aggregation, version int) (map[schema.Aggregation]schema.SplitKeySet, error) {
	if err := checkMetric(metric); err != nil {
		return nil, err
	}
	span := tracing.NewSpan(s.tracer, "FileStore.ListSplitKeys", metric.ID)
	defer span.Finish()
	pre := time.Now()

	keys := make(map[schema.Aggregation]schema.SplitKeySet, len(aggregations))
	for _, agg := range aggregations {
		keys[agg] = make(schema.SplitKeySet)
	}

	methods, grouped := schema.GroupByMethod(aggregations)
	for _, method := range methods {
		if err := checkMethod(method); err != nil {
			return nil, err
		}
		found, err := s.listMethod(metric, method, version)
		if err != nil {
			tracing.Error(span, err)
			return nil, err
		}
		for _, key := range found {
			// the first aggregation with a matching granularity gets the key
			for _, agg := range grouped[method] {
				if agg.Granularity == key.Sampling {
					keys[agg].Add(key)
					break
				}
			}
		}
	}

	listDuration.Value(time.Since(pre))
	return keys, nil
}

// listMethod parses the names of all splits of the given version in the directory of an aggregation method
func (s *FileStore) listMethod(metric schema.Metric, method schema.Method, version int) ([]schema.SplitKey, error) {
	entries, err := ioutil.ReadDir(s.layout.AggregationDir(metric, method))
	err = outcome{
		op:         "list_splits",
		onNotExist: func() error { return errors.ErrMetricDoesNotExist{Metric: metric} },
	}.of(err)
	if err != nil {
		return nil, err
	}

	var keys []schema.SplitKey
	for _, e := range entries {
		key, ok, err := ParseSplitName(e.Name(), version)
		if !ok {
			continue
		}
		if err != nil {
			err = errors.ErrCorruptSplit{Metric: metric, Method: method, Name: e.Name(), Err: err}
			if s.corruptSplits == CorruptSplitsFail {
				return nil, err
			}
			splitsCorrupt.Inc()
			log.WithFields(log.Fields{
				"metric": metric.ID,
				"method": string(method),
				"file":   e.Name(),
			}).Warnf("file-store: skipping split: %s", err.Error())
			continue
		}
		keys = append(keys, key)
	}
	return keys, nil
}
