// Package stats provides functionality for instrumenting metrics and reporting them
//
// Metrics are registered by name in a process wide registry, and can be exposed through
// a prometheus collector or written out in graphite plaintext format.
// Histograms reset on every report, so use exactly 1 output per process: with more
// than 1 output each would only see a partial view of the latencies.
package stats

var registry *Registry

func init() {
	registry = NewRegistry()
}

func Clear() {
	registry.Clear()
}
