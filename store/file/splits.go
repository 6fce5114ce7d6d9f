package file

import (
	"io/ioutil"
	"os"
	"time"

	"github.com/grafana/splitstore/mdata"
	"github.com/grafana/splitstore/mdata/errors"
	"github.com/grafana/splitstore/schema"
	"github.com/grafana/splitstore/tracing"
)

// WriteSplits atomically replaces each split. Offsets are ignored.
// The batch as a whole is not atomic: when a split fails, the ones before it stay written.
func (s *FileStore) WriteSplits(metric schema.Metric, aggregation schema.Aggregation, splits []mdata.SplitWriteRequest, version int) error {
	if err := checkMetric(metric); err != nil {
		return err
	}
	if err := checkMethod(aggregation.Method); err != nil {
		return err
	}
	span := tracing.NewSpan(s.tracer, "FileStore.WriteSplits", metric.ID)
	defer span.Finish()
	span.SetTag("aggregation", aggregation.String())
	span.SetTag("splits", len(splits))

	for _, swr := range splits {
		pre := time.Now()
		err := outcome{op: "write_split"}.of(s.writer.write(s.layout.SplitPath(metric, aggregation.Method, swr.Key, version), swr.Data))
		if err != nil {
			tracing.Error(span, err)
			return err
		}
		splitPutDuration.Value(time.Since(pre))
		splitsPut.Inc()
	}
	return nil
}

// DeleteSplit removes the file of one split. A split that doesn't exist is an error.
func (s *FileStore) DeleteSplit(metric schema.Metric, aggregation schema.Aggregation, key schema.SplitKey, version int) error {
	if err := checkMetric(metric); err != nil {
		return err
	}
	if err := checkMethod(aggregation.Method); err != nil {
		return err
	}
	span := tracing.NewSpan(s.tracer, "FileStore.DeleteSplit", metric.ID)
	defer span.Finish()
	span.SetTag("aggregation", aggregation.String())
	span.SetTag("key", key.String())

	pre := time.Now()
	err := outcome{op: "delete_split"}.of(os.Remove(s.layout.SplitPath(metric, aggregation.Method, key, version)))
	splitDeleteDuration.Value(time.Since(pre))
	tracing.Error(span, err)
	return err
}

// ReadSplit returns the stored bytes of a split.
// If the split is missing, the error says whether the whole metric is missing
// (ErrMetricDoesNotExist) or just this split (ErrAggregationDoesNotExist).
func (s *FileStore) ReadSplit(metric schema.Metric, aggregation schema.Aggregation, key schema.SplitKey, version int) ([]byte, error) {
	if err := checkMetric(metric); err != nil {
		return nil, err
	}
	if err := checkMethod(aggregation.Method); err != nil {
		return nil, err
	}
	span := tracing.NewSpan(s.tracer, "FileStore.ReadSplit", metric.ID)
	defer span.Finish()
	span.SetTag("aggregation", aggregation.String())
	span.SetTag("key", key.String())

	pre := time.Now()
	data, err := ioutil.ReadFile(s.layout.SplitPath(metric, aggregation.Method, key, version))
	err = outcome{
		op:         "read_split",
		onNotExist: func() error { return s.missingSplit(metric, aggregation, key) },
	}.of(err)
	if err != nil {
		tracing.Error(span, err)
		return nil, err
	}
	splitGetDuration.Value(time.Since(pre))
	return data, nil
}

// missingSplit tells apart a missing metric from a missing split of an existing metric
func (s *FileStore) missingSplit(metric schema.Metric, aggregation schema.Aggregation, key schema.SplitKey) error {
	_, err := os.Stat(s.layout.MetricDir(metric))
	err = outcome{
		op:         "stat_metric",
		onNotExist: func() error { return errors.ErrMetricDoesNotExist{Metric: metric} },
	}.of(err)
	if err != nil {
		return err
	}
	return errors.ErrAggregationDoesNotExist{Metric: metric, Method: aggregation.Method, Granularity: key.Sampling}
}
