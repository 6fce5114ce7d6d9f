package conf

import (
	"github.com/grafana/splitstore/schema"
	"github.com/grafana/splitstore/stats"
	lru "github.com/hashicorp/golang-lru"
)

var (
	// metric conf.matchcache.ops.hit is how many archive policy lookups were served from the cache
	matchCacheHit = stats.NewCounter32("conf.matchcache.ops.hit")
	// metric conf.matchcache.ops.miss is how many archive policy lookups had to match the patterns
	matchCacheMiss = stats.NewCounter32("conf.matchcache.ops.miss")
)

// MatchCache caches which archive policy applies to a metric id, so the policy
// patterns are matched only once per id. It is safe for concurrent use.
// The least recently used ids are evicted once size is exceeded.
type MatchCache struct {
	policies ArchivePolicies
	cache    *lru.Cache
}

func NewMatchCache(policies ArchivePolicies, size int) (*MatchCache, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &MatchCache{
		policies: policies,
		cache:    cache,
	}, nil
}

// Match returns the archive policy for the given metric id
func (m *MatchCache) Match(id string) schema.ArchivePolicy {
	if p, ok := m.cache.Get(id); ok {
		matchCacheHit.Inc()
		return p.(schema.ArchivePolicy)
	}
	matchCacheMiss.Inc()
	p := m.policies.Match(id)
	m.cache.Add(id, p)
	return p
}

// Metric returns the storage view of the metric with the given id
func (m *MatchCache) Metric(id string) schema.Metric {
	return schema.NewMetric(id, m.Match(id))
}
