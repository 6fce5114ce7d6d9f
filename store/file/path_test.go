package file

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/grafana/splitstore/schema"
)

func TestSplitName(t *testing.T) {
	type testCase struct {
		key     schema.SplitKey
		version int
		exp     string
	}
	testCases := []testCase{
		{schema.NewSplitKey(time.Unix(1000, 0), time.Minute), 3, "1000.0_60.0_v3"},
		{schema.NewSplitKey(time.Unix(1000, 0), time.Minute), 0, "1000.0_60.0"},
		{schema.NewSplitKey(time.Unix(1425906000, 0), 5*time.Minute), 12, "1425906000.0_300.0_v12"},
		{schema.NewSplitKey(time.Unix(1, 500000000), 500*time.Millisecond), 3, "1.5_0.5_v3"},
	}
	for i, c := range testCases {
		got := SplitName(c.key, c.version)
		if got != c.exp {
			t.Fatalf("case %d: expected %q, got %q", i, c.exp, got)
		}
		key, ok, err := ParseSplitName(got, c.version)
		if !ok || err != nil {
			t.Fatalf("case %d: expected %q to parse, got ok=%t err=%v", i, got, ok, err)
		}
		if key != c.key {
			t.Fatalf("case %d: expected %#v, got %#v", i, c.key, key)
		}
	}
}

func TestParseSplitName(t *testing.T) {
	type testCase struct {
		name    string
		version int
		expKey  schema.SplitKey
		expOk   bool
		expErr  bool
	}
	minute := schema.NewSplitKey(time.Unix(1000, 0), time.Minute)
	testCases := []testCase{
		{"1000.0_60.0_v3", 3, minute, true, false},
		{"1000_60_v3", 3, minute, true, false},
		{"1000.0_60.0", 3, schema.SplitKey{}, false, false},
		{"1000.0_60.0_v2", 3, schema.SplitKey{}, false, false},
		{"1000.0_60.0_v3", 0, schema.SplitKey{}, false, false},
		{"1000.0_60.0", 0, minute, true, false},
		{"garbage_v3", 3, schema.SplitKey{}, true, true},
		{"1000.0_60.0_extra_v3", 3, schema.SplitKey{}, true, true},
		{"abc_60.0_v3", 3, schema.SplitKey{}, true, true},
		{"1000.0_0.0_v3", 3, schema.SplitKey{}, true, true},
		{"1000.0_-60.0_v3", 3, schema.SplitKey{}, true, true},
		{"garbage", 0, schema.SplitKey{}, true, true},
	}
	for i, c := range testCases {
		key, ok, err := ParseSplitName(c.name, c.version)
		if ok != c.expOk {
			t.Fatalf("case %d (%q): expected ok %t, got %t", i, c.name, c.expOk, ok)
		}
		if (err != nil) != c.expErr {
			t.Fatalf("case %d (%q): expected error %t, got %v", i, c.name, c.expErr, err)
		}
		if key != c.expKey {
			t.Fatalf("case %d (%q): expected %#v, got %#v", i, c.name, c.expKey, key)
		}
	}
}

func TestLayout(t *testing.T) {
	l := NewLayout("/base")
	m := schema.Metric{ID: "42"}
	key := schema.NewSplitKey(time.Unix(1000, 0), time.Minute)

	exp := map[string]string{
		l.TmpDir():                          "/base/tmp",
		l.MetricDir(m):                      "/base/42",
		l.UnaggregatedPath(m, 3):            "/base/42/none_v3",
		l.UnaggregatedPath(m, 0):            "/base/42/none",
		l.AggregationDir(m, schema.Mean):    "/base/42/agg_mean",
		l.SplitPath(m, schema.Mean, key, 3): "/base/42/agg_mean/1000.0_60.0_v3",
	}
	for got, want := range exp {
		if got != filepath.FromSlash(want) {
			t.Fatalf("expected %s, got %s", want, got)
		}
	}
}

func TestValidName(t *testing.T) {
	for _, s := range []string{"42", "a.b.c", "5a301dd0-b5b0-4f30-9d8c-8e2e5a2f6c1e", "rate:mean"} {
		if !validName(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	for _, s := range []string{"", ".", "..", "a/b", "a\\b", "a\x00"} {
		if validName(s) {
			t.Fatalf("expected %q to be invalid", s)
		}
	}
}
