// Package memory is an in-memory Store for unit tests and dry runs.
// It mirrors the error behavior of the file store.
package memory

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/grafana/splitstore/mdata"
	"github.com/grafana/splitstore/mdata/errors"
	"github.com/grafana/splitstore/schema"
)

type splitID struct {
	key     schema.SplitKey
	version int
}

type metricData struct {
	// unaggregated data per format version
	unaggregated map[int][]byte
	// splits per aggregation method. a method is present once provisioned
	splits map[schema.Method]map[splitID][]byte
}

type MemoryStore struct {
	sync.RWMutex
	metrics map[string]*metricData
	// count of splits in the store.
	items int
	// dont save any split data.
	Drop bool
	// format version unaggregated data is read and written in, like the file store's unaggregated-version.
	UnaggregatedVersion int
}

var _ mdata.Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		metrics:             make(map[string]*metricData),
		UnaggregatedVersion: 3,
	}
}

func (s *MemoryStore) Reset() {
	s.Lock()
	s.metrics = make(map[string]*metricData)
	s.items = 0
	s.Unlock()
}

func (s *MemoryStore) Items() int {
	s.RLock()
	defer s.RUnlock()
	return s.items
}

func (s *MemoryStore) String() string {
	return "MemoryStore"
}

func (s *MemoryStore) WriteFull() bool {
	return true
}

// clone copies b. the copy of an empty slice is not nil
func clone(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}

func checkMetric(metric schema.Metric) error {
	if metric.ID == "" {
		return fmt.Errorf("%w: %q", errors.ErrInvalidMetricID, metric.ID)
	}
	return nil
}

func (s *MemoryStore) CreateMetric(metric schema.Metric) error {
	if err := checkMetric(metric); err != nil {
		return err
	}
	s.Lock()
	defer s.Unlock()
	if _, ok := s.metrics[metric.ID]; ok {
		return errors.ErrMetricAlreadyExists{Metric: metric}
	}
	md := &metricData{
		unaggregated: make(map[int][]byte),
		splits:       make(map[schema.Method]map[splitID][]byte),
	}
	for _, method := range metric.ArchivePolicy.AggregationMethods {
		md.splits[method] = make(map[splitID][]byte)
	}
	s.metrics[metric.ID] = md
	return nil
}

func (s *MemoryStore) DeleteMetric(metric schema.Metric) error {
	if err := checkMetric(metric); err != nil {
		return err
	}
	s.Lock()
	defer s.Unlock()
	if md, ok := s.metrics[metric.ID]; ok {
		for _, splits := range md.splits {
			s.items -= len(splits)
		}
		delete(s.metrics, metric.ID)
	}
	return nil
}

// WriteUnaggregated requires the metric to exist, like the file store does.
func (s *MemoryStore) WriteUnaggregated(metric schema.Metric, data []byte) error {
	if err := checkMetric(metric); err != nil {
		return err
	}
	s.Lock()
	defer s.Unlock()
	md, ok := s.metrics[metric.ID]
	if !ok {
		return &os.PathError{Op: "rename", Path: metric.ID, Err: os.ErrNotExist}
	}
	md.unaggregated[s.UnaggregatedVersion] = clone(data)
	return nil
}

// ReadUnaggregated provisions the metric when it has no unaggregated data.
func (s *MemoryStore) ReadUnaggregated(metric schema.Metric) ([]byte, bool, error) {
	if err := checkMetric(metric); err != nil {
		return nil, false, err
	}
	s.RLock()
	md, ok := s.metrics[metric.ID]
	if ok {
		if data, ok := md.unaggregated[s.UnaggregatedVersion]; ok {
			data = clone(data)
			s.RUnlock()
			return data, true, nil
		}
	}
	s.RUnlock()

	err := s.CreateMetric(metric)
	if err != nil && !errors.IsMetricAlreadyExists(err) {
		return nil, false, err
	}
	return nil, false, nil
}

func (s *MemoryStore) ListSplitKeys(metric schema.Metric, aggregations []schema.Aggregation, version int) (map[schema.Aggregation]schema.SplitKeySet, error) {
	if err := checkMetric(metric); err != nil {
		return nil, err
	}
	keys := make(map[schema.Aggregation]schema.SplitKeySet, len(aggregations))
	for _, agg := range aggregations {
		keys[agg] = make(schema.SplitKeySet)
	}

	s.RLock()
	defer s.RUnlock()
	md, ok := s.metrics[metric.ID]
	if !ok {
		return nil, errors.ErrMetricDoesNotExist{Metric: metric}
	}
	methods, grouped := schema.GroupByMethod(aggregations)
	for _, method := range methods {
		splits, ok := md.splits[method]
		if !ok {
			return nil, errors.ErrMetricDoesNotExist{Metric: metric}
		}
		for id := range splits {
			if id.version != version {
				continue
			}
			for _, agg := range grouped[method] {
				if agg.Granularity == id.key.Sampling {
					keys[agg].Add(id.key)
					break
				}
			}
		}
	}
	return keys, nil
}

func (s *MemoryStore) WriteSplits(metric schema.Metric, aggregation schema.Aggregation, splits []mdata.SplitWriteRequest, version int) error {
	if err := checkMetric(metric); err != nil {
		return err
	}
	s.Lock()
	defer s.Unlock()
	var area map[splitID][]byte
	md, ok := s.metrics[metric.ID]
	if ok {
		area, ok = md.splits[aggregation.Method]
	}
	if !ok {
		return &os.PathError{Op: "rename", Path: metric.ID + "/" + string(aggregation.Method), Err: os.ErrNotExist}
	}
	if s.Drop {
		return nil
	}
	for _, swr := range splits {
		id := splitID{swr.Key, version}
		if _, ok := area[id]; !ok {
			s.items++
		}
		area[id] = clone(swr.Data)
	}
	return nil
}

// DeleteSplit returns an error satisfying os.IsNotExist if the split doesn't exist.
func (s *MemoryStore) DeleteSplit(metric schema.Metric, aggregation schema.Aggregation, key schema.SplitKey, version int) error {
	if err := checkMetric(metric); err != nil {
		return err
	}
	s.Lock()
	defer s.Unlock()
	id := splitID{key, version}
	md, ok := s.metrics[metric.ID]
	if ok {
		if _, ok := md.splits[aggregation.Method][id]; ok {
			delete(md.splits[aggregation.Method], id)
			s.items--
			return nil
		}
	}
	return &os.PathError{Op: "remove", Path: metric.ID + "/" + string(aggregation.Method) + "/" + key.String(), Err: os.ErrNotExist}
}

func (s *MemoryStore) ReadSplit(metric schema.Metric, aggregation schema.Aggregation, key schema.SplitKey, version int) ([]byte, error) {
	if err := checkMetric(metric); err != nil {
		return nil, err
	}
	s.RLock()
	defer s.RUnlock()
	md, ok := s.metrics[metric.ID]
	if !ok {
		return nil, errors.ErrMetricDoesNotExist{Metric: metric}
	}
	data, ok := md.splits[aggregation.Method][splitID{key, version}]
	if !ok {
		return nil, errors.ErrAggregationDoesNotExist{Metric: metric, Method: aggregation.Method, Granularity: key.Sampling}
	}
	return clone(data), nil
}

// ListMetrics returns the ids of all metrics, sorted.
func (s *MemoryStore) ListMetrics() ([]string, error) {
	s.RLock()
	defer s.RUnlock()
	ids := make([]string, 0, len(s.metrics))
	for id := range s.metrics {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
