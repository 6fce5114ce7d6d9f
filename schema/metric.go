package schema

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ArchivePolicyItem is one level of an archive policy: a granularity and how
// many points are retained at that granularity.
type ArchivePolicyItem struct {
	Granularity time.Duration
	Points      uint32
}

// Timespan is the time window covered by the item.
func (i ArchivePolicyItem) Timespan() time.Duration {
	return i.Granularity * time.Duration(i.Points)
}

// ArchivePolicy declares which aggregations a metric retains.
type ArchivePolicy struct {
	Name               string
	AggregationMethods []Method
	Definitions        []ArchivePolicyItem
}

// Validate assures the policy is sane:
// 1. it has at least one method and one definition
// 2. all methods are known
// 3. granularities are positive and unique
func (p ArchivePolicy) Validate() error {
	if len(p.AggregationMethods) == 0 {
		return errors.New("archive policy has no aggregation methods")
	}
	if len(p.Definitions) == 0 {
		return errors.New("archive policy has no definitions")
	}
	for _, m := range p.AggregationMethods {
		if !m.Valid() {
			return fmt.Errorf("unknown aggregation method %q", m)
		}
	}
	seen := make(map[time.Duration]struct{})
	for _, d := range p.Definitions {
		if d.Granularity <= 0 {
			return fmt.Errorf("granularity must be positive, got %s", d.Granularity)
		}
		if _, ok := seen[d.Granularity]; ok {
			return fmt.Errorf("duplicate granularity %s", d.Granularity)
		}
		seen[d.Granularity] = struct{}{}
	}
	return nil
}

// Aggregations returns every method at every granularity of the policy,
// ordered by method then by granularity.
func (p ArchivePolicy) Aggregations() []Aggregation {
	defs := make([]ArchivePolicyItem, len(p.Definitions))
	copy(defs, p.Definitions)
	sort.Slice(defs, func(i, j int) bool { return defs[i].Granularity < defs[j].Granularity })

	aggs := make([]Aggregation, 0, len(p.AggregationMethods)*len(defs))
	for _, m := range p.AggregationMethods {
		for _, d := range defs {
			aggs = append(aggs, NewAggregation(m, d.Granularity))
		}
	}
	return aggs
}

// Metric is the storage view of a metric: a stable identifier and the
// archive policy that governs it.
type Metric struct {
	ID            string
	ArchivePolicy ArchivePolicy
}

func NewMetric(id string, policy ArchivePolicy) Metric {
	return Metric{
		ID:            id,
		ArchivePolicy: policy,
	}
}

func (m Metric) String() string {
	return m.ID
}
