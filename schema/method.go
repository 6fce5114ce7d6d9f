package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// Method is the name of an aggregation function, e.g. "mean" or "95pct".
// It is used verbatim in the on-disk layout (agg_<method>), so it must never contain
// a path separator.
type Method string

const (
	Mean   Method = "mean"
	Sum    Method = "sum"
	Last   Method = "last"
	Max    Method = "max"
	Min    Method = "min"
	Std    Method = "std"
	Median Method = "median"
	First  Method = "first"
	Count  Method = "count"
)

const ratePrefix = "rate:"

var basicMethods = map[Method]struct{}{
	Mean:   {},
	Sum:    {},
	Last:   {},
	Max:    {},
	Min:    {},
	Std:    {},
	Median: {},
	First:  {},
	Count:  {},
}

// Valid reports whether m is a basic method, a percentile (1pct..99pct)
// or a rate over a basic method or percentile (rate:mean, rate:95pct).
func (m Method) Valid() bool {
	s := string(m)
	if strings.HasPrefix(s, ratePrefix) {
		s = s[len(ratePrefix):]
		if strings.HasPrefix(s, ratePrefix) {
			return false
		}
	}
	if _, ok := basicMethods[Method(s)]; ok {
		return true
	}
	if !strings.HasSuffix(s, "pct") {
		return false
	}
	pct, err := strconv.Atoi(strings.TrimSuffix(s, "pct"))
	return err == nil && pct > 0 && pct < 100
}

func (m Method) String() string {
	return string(m)
}

// ParseMethods parses a comma separated list of aggregation methods.
// duplicates are dropped, order is retained.
func ParseMethods(s string) ([]Method, error) {
	var methods []Method
	seen := make(map[Method]struct{})
	for _, str := range strings.Split(s, ",") {
		m := Method(strings.TrimSpace(str))
		if m == "" {
			continue
		}
		if !m.Valid() {
			return nil, fmt.Errorf("unknown aggregation method %q", m)
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		methods = append(methods, m)
	}
	if len(methods) == 0 {
		return nil, fmt.Errorf("no aggregation methods in %q", s)
	}
	return methods, nil
}
