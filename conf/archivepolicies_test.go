package conf

import (
	"io/ioutil"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/grafana/splitstore/schema"
)

func TestParseArchivePolicies(t *testing.T) {
	type testCase struct {
		title  string
		in     string
		exp    []schema.ArchivePolicy
		expErr bool
	}

	testCases := []testCase{
		{
			title: "completely empty", // should result in just the default
			in:    "",
		},
		{
			title: "missing methods",
			in: `[foo]
			definition = 60:1440`,
			expErr: true,
		},
		{
			title: "unknown method",
			in: `[foo]
			aggregationMethods = mean,avg
			definition = 60:1440`,
			expErr: true,
		},
		{
			title: "missing definition",
			in: `[foo]
			aggregationMethods = mean`,
			expErr: true,
		},
		{
			title: "bad definition",
			in: `[foo]
			aggregationMethods = mean
			definition = 1min`,
			expErr: true,
		},
		{
			title: "invalid pattern",
			in: `[foo]
			pattern = (((
			aggregationMethods = mean
			definition = 60:1440`,
			expErr: true,
		},
		{
			title: "duplicate granularity",
			in: `[foo]
			aggregationMethods = mean
			definition = 60:1440,1min:2d`,
			expErr: true,
		},
		{
			title: "two policies, both formats",
			in: `[low]
			pattern = ^low\.
			aggregationMethods = mean, max
			definition = 5min:1d, 1h:30d
			[raw]
			aggregationMethods = last,95pct
			definition = 60:1440`,
			exp: []schema.ArchivePolicy{
				{
					Name:               "low",
					AggregationMethods: []schema.Method{schema.Mean, schema.Max},
					Definitions: []schema.ArchivePolicyItem{
						{Granularity: 5 * time.Minute, Points: 288},
						{Granularity: time.Hour, Points: 720},
					},
				},
				{
					Name:               "raw",
					AggregationMethods: []schema.Method{schema.Last, "95pct"},
					Definitions: []schema.ArchivePolicyItem{
						{Granularity: time.Minute, Points: 1440},
					},
				},
			},
		},
	}

	for _, tc := range testCases {
		policies, err := ParseArchivePolicies(strings.NewReader(tc.in), "")
		if tc.expErr {
			if err == nil {
				t.Fatalf("case %q: expected error, got nil", tc.title)
			}
			continue
		}
		if err != nil {
			t.Fatalf("case %q: expected no error, got %s", tc.title, err)
		}
		var got []schema.ArchivePolicy
		for _, p := range policies.Data {
			got = append(got, p.ArchivePolicy)
		}
		if diff := cmp.Diff(tc.exp, got); diff != "" {
			t.Fatalf("case %q: policies mismatch (-want +got):\n%s", tc.title, diff)
		}
	}
}

func TestMatchArchivePolicy(t *testing.T) {
	in := `[low]
pattern = ^low\.
aggregationMethods = mean
definition = 1h:30d
`
	policies, err := ParseArchivePolicies(strings.NewReader(in), "")
	if err != nil {
		t.Fatalf("expected no error, got %s", err)
	}
	if p := policies.Match("low.cpu"); p.Name != "low" {
		t.Fatalf("expected policy low, got %q", p.Name)
	}
	if p := policies.Match("high.cpu"); p.Name != "default" {
		t.Fatalf("expected default policy, got %q", p.Name)
	}
	m := policies.Metric("low.mem")
	if m.ID != "low.mem" || m.ArchivePolicy.Name != "low" {
		t.Fatalf("unexpected metric %+v", m)
	}
	if _, ok := policies.Get("default"); !ok {
		t.Fatalf("expected to find default policy by name")
	}
	if _, ok := policies.Get("nope"); ok {
		t.Fatalf("expected not to find policy nope")
	}
}

func TestReadArchivePolicies(t *testing.T) {
	file, err := ioutil.TempFile("", "storage-archive-policies")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(file.Name())
	if _, err := file.WriteString("[agg]\naggregationMethods = sum\ndefinition = 10:6\n"); err != nil {
		t.Fatal(err)
	}
	file.Close()

	policies, err := ReadArchivePolicies(file.Name())
	if err != nil {
		t.Fatalf("expected no error, got %s", err)
	}
	if len(policies.Data) != 1 || policies.Data[0].Definitions[0].Timespan() != time.Minute {
		t.Fatalf("unexpected policies %+v", policies.Data)
	}

	if _, err := ReadArchivePolicies(file.Name() + ".missing"); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
