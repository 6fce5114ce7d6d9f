package stats

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector exposes the registry as prometheus metrics.
// store.file.split.get.exec becomes <namespace>_store_file_split_get_exec
type PrometheusCollector struct {
	namespace string
}

func NewPrometheusCollector(namespace string) *PrometheusCollector {
	return &PrometheusCollector{namespace: namespace}
}

func (c *PrometheusCollector) desc(name string) *prometheus.Desc {
	return prometheus.NewDesc(prometheus.BuildFQName(c.namespace, "", strings.NewReplacer(".", "_", "-", "_").Replace(name)), name, nil, nil)
}

// Describe sends no descriptors: the set of metrics grows at runtime, which makes this an unchecked collector
func (c *PrometheusCollector) Describe(ch chan<- *prometheus.Desc) {
}

func (c *PrometheusCollector) Collect(ch chan<- prometheus.Metric) {
	for _, name := range registry.names() {
		ch <- registry.get(name).ReportPrometheus(c.desc(name))
	}
}
