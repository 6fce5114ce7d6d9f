package schema

import (
	"fmt"
	"sort"
	"time"
)

// Aggregation describes one derived view of a metric: an aggregation method
// applied at a given granularity.
type Aggregation struct {
	Method      Method
	Granularity time.Duration
}

func NewAggregation(method Method, granularity time.Duration) Aggregation {
	return Aggregation{
		Method:      method,
		Granularity: granularity,
	}
}

func (a Aggregation) String() string {
	return fmt.Sprintf("%s@%s", a.Method, a.Granularity)
}

// GroupByMethod partitions aggregations by method, as all granularities of one
// method share storage. Methods are returned sorted, aggregations within a method
// keep the order they were given in.
func GroupByMethod(aggs []Aggregation) ([]Method, map[Method][]Aggregation) {
	groups := make(map[Method][]Aggregation)
	var methods []Method
	for _, agg := range aggs {
		if _, ok := groups[agg.Method]; !ok {
			methods = append(methods, agg.Method)
		}
		groups[agg.Method] = append(groups[agg.Method], agg)
	}
	sort.Slice(methods, func(i, j int) bool { return methods[i] < methods[j] })
	return methods, groups
}
