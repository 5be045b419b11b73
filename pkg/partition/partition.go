// Package partition splits a graph's node set into contiguous shards, one per
// propagation worker.
package partition

import (
	"errors"
	"fmt"
)

// ErrInvalidShardCount is returned when fewer than one shard is requested
var ErrInvalidShardCount = errors.New("shard count must be at least 1")

// Shard is the half-open id range [Start, End) owned by one worker
type Shard struct {
	Index int `json:"index" yaml:"index"`
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Len returns the number of nodes in the shard
func (s Shard) Len() int {
	return s.End - s.Start
}

// Contains reports whether node id belongs to the shard
func (s Shard) Contains(id int) bool {
	return id >= s.Start && id < s.End
}

func (s Shard) String() string {
	return fmt.Sprintf("shard %d [%d, %d)", s.Index, s.Start, s.End)
}

// Partition splits nodes 0..n-1 into count contiguous shards in id order.
// Sizes differ by at most one; the first n mod count shards take the extra
// node. When count > n the trailing shards are empty.
func Partition(n, count int) ([]Shard, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidShardCount, count)
	}
	if n < 0 {
		return nil, fmt.Errorf("node count %d: must be non-negative", n)
	}

	base, extra := n/count, n%count
	shards := make([]Shard, count)
	start := 0
	for i := range shards {
		size := base
		if i < extra {
			size++
		}
		shards[i] = Shard{Index: i, Start: start, End: start + size}
		start += size
	}
	return shards, nil
}

// Strategy maps node ids to shard indexes
type Strategy interface {
	GetPartition(nodeID int) int
	GetPartitionCount() int
}

// RangeStrategy is the Strategy matching Partition's layout, computed
// arithmetically instead of by search
type RangeStrategy struct {
	nodeCount  int
	shardCount int
}

// NewRangeStrategy creates the strategy for n nodes over count shards
func NewRangeStrategy(n, count int) (*RangeStrategy, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidShardCount, count)
	}
	return &RangeStrategy{nodeCount: n, shardCount: count}, nil
}

// GetPartition returns the shard owning nodeID, or -1 when out of range
func (rs *RangeStrategy) GetPartition(nodeID int) int {
	if nodeID < 0 || nodeID >= rs.nodeCount {
		return -1
	}

	base, extra := rs.nodeCount/rs.shardCount, rs.nodeCount%rs.shardCount
	// the first extra shards hold base+1 nodes
	bigSpan := extra * (base + 1)
	if nodeID < bigSpan {
		return nodeID / (base + 1)
	}
	return extra + (nodeID-bigSpan)/base
}

// GetPartitionCount returns total number of shards
func (rs *RangeStrategy) GetPartitionCount() int {
	return rs.shardCount
}

// ShardOf returns the index of the shard containing id, or -1
func ShardOf(shards []Shard, id int) int {
	lo, hi := 0, len(shards)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case id < shards[mid].Start:
			hi = mid
		case id >= shards[mid].End:
			lo = mid + 1
		default:
			return mid
		}
	}
	return -1
}
