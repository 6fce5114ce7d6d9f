package schema

import (
	"fmt"
	"sort"
	"time"
)

// SplitKey identifies one contiguous chunk of samples at a given sampling.
// It is comparable and can be used as a map key.
type SplitKey struct {
	Key      int64 // start of the split, in unix nanoseconds
	Sampling time.Duration
}

func NewSplitKey(t time.Time, sampling time.Duration) SplitKey {
	return SplitKey{
		Key:      t.UnixNano(),
		Sampling: sampling,
	}
}

// Time returns the start of the split in UTC.
func (k SplitKey) Time() time.Time {
	return time.Unix(0, k.Key).UTC()
}

// String returns the start of the split in decimal epoch seconds, the way it
// appears in split file names.
func (k SplitKey) String() string {
	return FormatSeconds(k.Key)
}

func (k SplitKey) GoString() string {
	return fmt.Sprintf("SplitKey(%s, %s)", k.Time().Format(time.RFC3339Nano), k.Sampling)
}

// Less orders split keys by start, then by sampling.
func (k SplitKey) Less(o SplitKey) bool {
	if k.Key != o.Key {
		return k.Key < o.Key
	}
	return k.Sampling < o.Sampling
}

// SplitKeySet is a set of split keys.
type SplitKeySet map[SplitKey]struct{}

func NewSplitKeySet(keys ...SplitKey) SplitKeySet {
	s := make(SplitKeySet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

func (s SplitKeySet) Add(k SplitKey) {
	s[k] = struct{}{}
}

func (s SplitKeySet) Has(k SplitKey) bool {
	_, ok := s[k]
	return ok
}

// Sorted returns the keys in ascending order.
func (s SplitKeySet) Sorted() []SplitKey {
	keys := make([]SplitKey, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}
