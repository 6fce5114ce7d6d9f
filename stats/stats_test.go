package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRegistryGetOrAdd(t *testing.T) {
	Clear()
	c1 := NewCounter32("test.counter")
	c2 := NewCounter32("test.counter")
	if c1 != c2 {
		t.Fatalf("expected the same counter for the same name")
	}
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic when registering a name with a different type")
		}
	}()
	NewGauge32("test.counter")
}

func TestWriteGraphite(t *testing.T) {
	Clear()
	NewCounter32("b.counter").Add(3)
	NewGauge32("a.gauge").Set(7)
	NewLatencyHistogram15s32("c.latency") // no values: reports nothing

	var buf bytes.Buffer
	now := time.Unix(1000, 0)
	if err := WriteGraphite(&buf, "splitstore", now); err != nil {
		t.Fatalf("expected no error, got %s", err)
	}
	exp := "splitstore.a.gauge.gauge32 7 1000\nsplitstore.b.counter.counter32 3 1000\n"
	if buf.String() != exp {
		t.Fatalf("expected %q, got %q", exp, buf.String())
	}
}

func TestLatencyHistogramGraphite(t *testing.T) {
	Clear()
	h := NewLatencyHistogram15s32("lat")
	h.Value(time.Millisecond)
	h.Value(time.Millisecond)

	var buf bytes.Buffer
	if err := WriteGraphite(&buf, "", time.Unix(1, 0)); err != nil {
		t.Fatalf("expected no error, got %s", err)
	}
	if !strings.Contains(buf.String(), "lat.values.count32 2 1\n") {
		t.Fatalf("expected count of 2 in %q", buf.String())
	}

	// histograms reset on report
	buf.Reset()
	WriteGraphite(&buf, "", time.Unix(2, 0))
	if buf.Len() != 0 {
		t.Fatalf("expected no output after reset, got %q", buf.String())
	}
}

func TestPrometheusCollector(t *testing.T) {
	Clear()
	NewCounter32("store.file.split.put").Add(2)
	NewLatencyHistogram15s32("store.file.split.put.exec").Value(time.Millisecond)

	reg := prometheus.NewRegistry()
	reg.MustRegister(NewPrometheusCollector("splitstore"))
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("expected no error, got %s", err)
	}
	got := make(map[string]bool)
	for _, f := range families {
		got[f.GetName()] = true
		if f.GetName() == "splitstore_store_file_split_put" && f.GetMetric()[0].GetCounter().GetValue() != 2 {
			t.Fatalf("expected counter value 2, got %v", f.GetMetric()[0].GetCounter().GetValue())
		}
		if f.GetName() == "splitstore_store_file_split_put_exec" && f.GetMetric()[0].GetSummary().GetSampleCount() != 1 {
			t.Fatalf("expected 1 sample, got %v", f.GetMetric()[0].GetSummary().GetSampleCount())
		}
	}
	for _, name := range []string{"splitstore_store_file_split_put", "splitstore_store_file_split_put_exec"} {
		if !got[name] {
			t.Fatalf("expected metric family %s, got %v", name, got)
		}
	}
}
