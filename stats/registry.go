package stats

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var errFmtMetricExists = "fatal: metric %q already exists as type %T"

// Metric is a measurement that can be reported
type Metric interface {
	// ReportGraphite reports the measurements in graphite format and resets them for the next interval if needed
	ReportGraphite(prefix []byte, buf []byte, now time.Time) []byte
	// ReportPrometheus reports the measurements as a prometheus metric and resets them for the next interval if needed
	ReportPrometheus(desc *prometheus.Desc) prometheus.Metric
}

// Registry tracks metrics by name
type Registry struct {
	sync.Mutex
	metrics map[string]Metric
}

func NewRegistry() *Registry {
	return &Registry{
		metrics: make(map[string]Metric),
	}
}

func (r *Registry) getOrAdd(name string, metric Metric) Metric {
	r.Lock()
	defer r.Unlock()
	if existing, ok := r.metrics[name]; ok {
		if reflect.TypeOf(existing) == reflect.TypeOf(metric) {
			return existing
		}
		panic(fmt.Sprintf(errFmtMetricExists, name, existing))
	}
	r.metrics[name] = metric
	return metric
}

// names returns the registered names in sorted order, so outputs are stable
func (r *Registry) names() []string {
	r.Lock()
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	r.Unlock()
	sort.Strings(names)
	return names
}

func (r *Registry) get(name string) Metric {
	r.Lock()
	m := r.metrics[name]
	r.Unlock()
	return m
}

func (r *Registry) Clear() {
	r.Lock()
	r.metrics = make(map[string]Metric)
	r.Unlock()
}
