package schema

import (
	"testing"
	"time"
)

func TestFormatSeconds(t *testing.T) {
	cases := []struct {
		ns  int64
		exp string
	}{
		{0, "0.0"},
		{int64(1000 * time.Second), "1000.0"},
		{int64(60 * time.Second), "60.0"},
		{int64(1500 * time.Millisecond), "1.5"},
		{int64(time.Millisecond), "0.001"},
		{1, "0.000000001"},
		{-int64(1500 * time.Millisecond), "-1.5"},
		{1425906000 * int64(time.Second), "1425906000.0"},
	}
	for i, c := range cases {
		got := FormatSeconds(c.ns)
		if got != c.exp {
			t.Fatalf("case %d: expected %q, got %q", i, c.exp, got)
		}
	}
}

func TestParseSeconds(t *testing.T) {
	cases := []struct {
		in     string
		expErr bool
		exp    int64
	}{
		{"1000.0", false, int64(1000 * time.Second)},
		{"1000", false, int64(1000 * time.Second)},
		{"60.0", false, int64(60 * time.Second)},
		{"1.5", false, int64(1500 * time.Millisecond)},
		{".5", false, int64(500 * time.Millisecond)},
		{"5.", false, int64(5 * time.Second)},
		{"0.000000001", false, 1},
		{"0.1000000000", false, int64(100 * time.Millisecond)},
		{"-1.5", false, -int64(1500 * time.Millisecond)},
		{"", true, 0},
		{".", true, 0},
		{"-", true, 0},
		{"abc", true, 0},
		{"1e3", true, 0},
		{"+5", true, 0},
		{"1.2.3", true, 0},
		{"0.0000000001", true, 0},
		{"99999999999999999999", true, 0},
		{"v3", true, 0},
	}
	for i, c := range cases {
		got, err := ParseSeconds(c.in)
		if c.expErr {
			if err == nil {
				t.Fatalf("case %d (%q): expected error, got %d", i, c.in, got)
			}
			continue
		}
		if err != nil {
			t.Fatalf("case %d (%q): expected no error, got %s", i, c.in, err)
		}
		if got != c.exp {
			t.Fatalf("case %d (%q): expected %d, got %d", i, c.in, c.exp, got)
		}
	}
}

func TestSecondsRoundTrip(t *testing.T) {
	for _, ns := range []int64{0, 1, 999999999, int64(time.Hour), 1425906000123000000} {
		got, err := ParseSeconds(FormatSeconds(ns))
		if err != nil {
			t.Fatalf("%d: %s", ns, err)
		}
		if got != ns {
			t.Fatalf("expected %d, got %d", ns, got)
		}
	}
}

func TestParseTimespan(t *testing.T) {
	d, err := ParseTimespan("3600.0")
	if err != nil {
		t.Fatalf("expected no error, got %s", err)
	}
	if d != time.Hour {
		t.Fatalf("expected 1h, got %s", d)
	}
	if _, err := ParseTimespan("0.0"); err == nil {
		t.Fatalf("expected error for zero timespan")
	}
	if FormatTimespan(time.Minute) != "60.0" {
		t.Fatalf("expected 60.0, got %s", FormatTimespan(time.Minute))
	}
}
