package file

import (
	"fmt"
	"io/ioutil"
	"os"
	"sort"

	"github.com/grafana/splitstore/mdata"
	"github.com/grafana/splitstore/mdata/errors"
	"github.com/grafana/splitstore/schema"
	"github.com/grafana/splitstore/stats"
	"github.com/grafana/splitstore/tracing"
	opentracing "github.com/opentracing/opentracing-go"
	log "github.com/sirupsen/logrus"
)

var (
	// metric store.file.split.get.exec is the duration of reading a split
	splitGetDuration = stats.NewLatencyHistogram15s32("store.file.split.get.exec")
	// metric store.file.split.put.exec is the duration of atomically writing a split
	splitPutDuration = stats.NewLatencyHistogram15s32("store.file.split.put.exec")
	// metric store.file.split.delete.exec is the duration of deleting a split
	splitDeleteDuration = stats.NewLatencyHistogram15s32("store.file.split.delete.exec")
	// metric store.file.list.exec is the duration of listing the split keys of a metric
	listDuration = stats.NewLatencyHistogram15s32("store.file.list.exec")

	// metric store.file.write.inflight is how many atomic writes are in progress
	writesInflight = stats.NewGauge32("store.file.write.inflight")

	// metric store.file.split.put is how many splits were written
	splitsPut = stats.NewCounter32("store.file.split.put")
	// metric store.file.split.corrupt is how many split files were found with a name that can't be parsed
	splitsCorrupt = stats.NewCounter32("store.file.split.corrupt")
	// metric store.file.metric.create is how many metric directories were created
	metricsCreated = stats.NewCounter32("store.file.metric.create")
	// metric store.file.metric.delete is how many metrics were deleted
	metricsDeleted = stats.NewCounter32("store.file.metric.delete")
)

// FileStore keeps splits as plain files, one directory per metric.
// It does no locking: concurrent writers of the same split are safe because every
// write is a rename over the destination, the last one wins.
type FileStore struct {
	layout              Layout
	writer              atomicWriter
	dirMode             os.FileMode
	corruptSplits       string
	unaggregatedVersion int
	tracer              opentracing.Tracer
}

var _ mdata.Store = (*FileStore)(nil)

func NewFileStore(config *StoreConfig) (*FileStore, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	layout := NewLayout(config.BasePath)
	return &FileStore{
		layout:              layout,
		writer:              atomicWriter{tmpDir: layout.TmpDir()},
		dirMode:             config.DirMode,
		corruptSplits:       config.CorruptSplits,
		unaggregatedVersion: config.UnaggregatedVersion,
		tracer:              opentracing.NoopTracer{},
	}, nil
}

func (s *FileStore) SetTracer(t opentracing.Tracer) {
	s.tracer = t
}

func (s *FileStore) String() string {
	return fmt.Sprintf("FileStore: %s", s.layout.BasePath)
}

// Upgrade provisions the base path and the tmp directory used for atomic writes.
// It is idempotent and must be called once before the store is used.
func (s *FileStore) Upgrade() error {
	err := os.MkdirAll(s.layout.TmpDir(), s.dirMode)
	if err != nil {
		return err
	}
	log.Infof("file-store: ensured %s exists", s.layout.TmpDir())
	return nil
}

// WriteFull is true: every write replaces the whole split.
func (s *FileStore) WriteFull() bool {
	return true
}

func checkMetric(metric schema.Metric) error {
	if !validName(metric.ID) || metric.ID == tmpDirname {
		return fmt.Errorf("%w: %q", errors.ErrInvalidMetricID, metric.ID)
	}
	return nil
}

func checkMethod(method schema.Method) error {
	if !validName(string(method)) {
		return fmt.Errorf("invalid aggregation method %q", method)
	}
	return nil
}

// CreateMetric creates the metric directory and one directory per aggregation method.
// The aggregation directories may already exist, e.g. when racing another creator.
func (s *FileStore) CreateMetric(metric schema.Metric) error {
	if err := checkMetric(metric); err != nil {
		return err
	}
	for _, method := range metric.ArchivePolicy.AggregationMethods {
		if err := checkMethod(method); err != nil {
			return err
		}
	}

	err := outcome{
		op:      "create_metric",
		onExist: func() error { return errors.ErrMetricAlreadyExists{Metric: metric} },
	}.of(os.Mkdir(s.layout.MetricDir(metric), s.dirMode))
	if err != nil {
		return err
	}
	metricsCreated.Inc()

	for _, method := range metric.ArchivePolicy.AggregationMethods {
		err := outcome{
			op:      "create_aggregation",
			onExist: ignore,
		}.of(os.Mkdir(s.layout.AggregationDir(metric, method), s.dirMode))
		if err != nil {
			return err
		}
	}
	log.Debugf("file-store: created metric %s with aggregation methods %v", metric.ID, metric.ArchivePolicy.AggregationMethods)
	return nil
}

// DeleteMetric removes the metric directory and everything in it.
// A metric that never got a directory (e.g. no measures yet) is not an error.
func (s *FileStore) DeleteMetric(metric schema.Metric) error {
	if err := checkMetric(metric); err != nil {
		return err
	}
	err := outcome{
		op:         "delete_metric",
		onNotExist: ignore,
	}.of(os.RemoveAll(s.layout.MetricDir(metric)))
	if err != nil {
		return err
	}
	metricsDeleted.Inc()
	log.Debugf("file-store: deleted metric %s", metric.ID)
	return nil
}

func (s *FileStore) WriteUnaggregated(metric schema.Metric, data []byte) error {
	if err := checkMetric(metric); err != nil {
		return err
	}
	span := tracing.NewSpan(s.tracer, "FileStore.WriteUnaggregated", metric.ID)
	defer span.Finish()

	err := s.writer.write(s.layout.UnaggregatedPath(metric, s.unaggregatedVersion), data)
	tracing.Error(span, err)
	return err
}

// ReadUnaggregated returns the unaggregated data of the metric.
// If there is none, found is false and the metric directory gets provisioned,
// so that a subsequent write can go ahead.
func (s *FileStore) ReadUnaggregated(metric schema.Metric) ([]byte, bool, error) {
	if err := checkMetric(metric); err != nil {
		return nil, false, err
	}
	span := tracing.NewSpan(s.tracer, "FileStore.ReadUnaggregated", metric.ID)
	defer span.Finish()

	missing := false
	data, err := ioutil.ReadFile(s.layout.UnaggregatedPath(metric, s.unaggregatedVersion))
	err = outcome{
		op:         "read_unaggregated",
		onNotExist: func() error { missing = true; return nil },
	}.of(err)
	if err != nil {
		tracing.Error(span, err)
		return nil, false, err
	}
	if !missing {
		return data, true, nil
	}

	err = s.CreateMetric(metric)
	if err != nil && !errors.IsMetricAlreadyExists(err) {
		tracing.Error(span, err)
		return nil, false, err
	}
	return nil, false, nil
}

// ListMetrics returns the ids of all metrics that have a directory, sorted.
func (s *FileStore) ListMetrics() ([]string, error) {
	entries, err := ioutil.ReadDir(s.layout.BasePath)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, e := range entries {
		if !e.IsDir() || e.Name() == tmpDirname {
			continue
		}
		ids = append(ids, e.Name())
	}
	sort.Strings(ids)
	return ids, nil
}
