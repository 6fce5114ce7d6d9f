package mdata

import (
	"github.com/grafana/splitstore/schema"
)

// SplitWriteRequest is one split to be persisted by Store.WriteSplits.
// Offset is where Data starts within the split, for stores that append.
// Stores that replace whole splits ignore it.
type SplitWriteRequest struct {
	Key    schema.SplitKey
	Data   []byte
	Offset int
}

func NewSplitWriteRequest(key schema.SplitKey, data []byte, offset int) SplitWriteRequest {
	return SplitWriteRequest{key, data, offset}
}
