package streamkm

import (
	"sync"

	"github.com/RoaringBitmap/roaring/v2"
)

// StreamStats is a point-in-time snapshot of stream-level statistics.
//
// LiveClusters holds every cluster index that has received at least one label
// since the stream started; DeadClusters holds the rest. A dead cluster's
// center is frozen: clusters are never reseeded, so a cluster that stops
// attracting points stays where it is. The split makes that visible to
// operators without changing update behavior.
type StreamStats struct {
	Batches      int64
	Vectors      int64
	LiveClusters []int
	DeadClusters []int
}

// streamStats accumulates label observations across batches.
// Guarded by its own mutex so snapshots never contend with batch updates.
type streamStats struct {
	mu      sync.Mutex
	batches int64
	vectors int64
	live    *roaring.Bitmap
}

func newStreamStats() *streamStats {
	return &streamStats{
		live: roaring.New(),
	}
}

func (s *streamStats) observe(labels []int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.batches++
	s.vectors += int64(len(labels))
	for _, label := range labels {
		s.live.Add(uint32(label))
	}
}

func (s *streamStats) snapshot(k int) StreamStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := StreamStats{
		Batches:      s.batches,
		Vectors:      s.vectors,
		LiveClusters: make([]int, 0, s.live.GetCardinality()),
		DeadClusters: make([]int, 0, k),
	}

	for i := 0; i < k; i++ {
		if s.live.Contains(uint32(i)) {
			stats.LiveClusters = append(stats.LiveClusters, i)
		} else {
			stats.DeadClusters = append(stats.DeadClusters, i)
		}
	}

	return stats
}
