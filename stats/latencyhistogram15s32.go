package stats

import (
	"time"

	"github.com/Dieterbe/artisanalhistogram/hist15s"
	"github.com/prometheus/client_golang/prometheus"
)

// tracks latency measurements in a given range as 32 bit counters
type LatencyHistogram15s32 struct {
	hist hist15s.Hist15s
}

func NewLatencyHistogram15s32(name string) *LatencyHistogram15s32 {
	return registry.getOrAdd(name, &LatencyHistogram15s32{
		hist: hist15s.New(),
	}).(*LatencyHistogram15s32)
}

func (l *LatencyHistogram15s32) Value(t time.Duration) {
	l.hist.AddDuration(t)
}

func (l *LatencyHistogram15s32) ReportGraphite(prefix, buf []byte, now time.Time) []byte {
	snap := l.hist.Snapshot()
	// only the summaries are reported, not the buckets
	r, ok := l.hist.Report(snap)
	if ok {
		buf = WriteUint32(buf, prefix, []byte("min.gauge32"), r.Min/1000, now)
		buf = WriteUint32(buf, prefix, []byte("mean.gauge32"), r.Mean/1000, now)
		buf = WriteUint32(buf, prefix, []byte("median.gauge32"), r.Median/1000, now)
		buf = WriteUint32(buf, prefix, []byte("p75.gauge32"), r.P75/1000, now)
		buf = WriteUint32(buf, prefix, []byte("p90.gauge32"), r.P90/1000, now)
		buf = WriteUint32(buf, prefix, []byte("max.gauge32"), r.Max/1000, now)
		buf = WriteUint32(buf, prefix, []byte("values.count32"), r.Count, now)
	}
	return buf
}

// ReportPrometheus reports a summary in seconds over the values seen since the previous report
func (l *LatencyHistogram15s32) ReportPrometheus(desc *prometheus.Desc) prometheus.Metric {
	snap := l.hist.Snapshot()
	r, ok := l.hist.Report(snap)
	if !ok {
		return prometheus.MustNewConstSummary(desc, 0, 0, nil)
	}
	micros := func(v uint32) float64 { return float64(v) / 1e6 }
	return prometheus.MustNewConstSummary(desc, uint64(r.Count), micros(r.Mean)*float64(r.Count), map[float64]float64{
		0.5:  micros(r.Median),
		0.75: micros(r.P75),
		0.9:  micros(r.P90),
	})
}
