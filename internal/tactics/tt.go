package tactics

import (
	"arimaa_go/internal/game"
)

// 失败缓存：记录"某只兔子在 depth 步内到不了底线"的局面
const ttBuckets = 1 << 12
const ttWays = 4
const ttMask = ttBuckets - 1

type ttEntry struct {
	key   uint64
	depth int32 // 已证明失败的步数
}

// FailCache remembers goal searches that failed, keyed by position, side and
// rabbit square. It is not safe for concurrent use; give each goroutine its
// own, or use the package GoalDist which borrows one per call.
type FailCache struct {
	table  [ttBuckets][ttWays]ttEntry
	salt   uint64
	probes uint64
	hits   uint64
}

// NewFailCache returns an empty cache.
func NewFailCache() *FailCache {
	return &FailCache{salt: 0x9E3779B97F4A7C15}
}

// Clear forgets every cached result and resets the counters.
func (c *FailCache) Clear() {
	// 换盐：旧 key 立刻全部失效
	c.salt += 0x632BE59BD9B4E019
	c.probes, c.hits = 0, 0
}

// Stats reports probes and hits since the last Clear, and the hit rate in
// percent.
func (c *FailCache) Stats() (probes, hits uint64, rate float64) {
	if c.probes > 0 {
		rate = float64(c.hits) / float64(c.probes) * 100
	}
	return c.probes, c.hits, rate
}

func (c *FailCache) key(b *game.Board, pla game.Player, rloc int) uint64 {
	return b.PosCurrentHash ^ game.HashPla[pla] ^ c.salt ^ uint64(rloc+1)*0xBF58476D1CE4E5B9
}

// probe reports whether key is known to fail within depth steps.
func (c *FailCache) probe(key uint64, depth int) bool {
	c.probes++
	bucket := &c.table[key&ttMask]
	for w := range bucket {
		if e := &bucket[w]; e.key == key && int(e.depth) >= depth {
			c.hits++
			return true
		}
	}
	return false
}

// store records that key fails within depth steps. Same key first, then the
// shallowest slot.
func (c *FailCache) store(key uint64, depth int) {
	bucket := &c.table[key&ttMask]
	slot := 0
	best := int32(1 << 30)
	for w := range bucket {
		e := &bucket[w]
		if e.key == key {
			if int(e.depth) < depth {
				e.depth = int32(depth)
			}
			return
		}
		if e.depth < best {
			best = e.depth
			slot = w
		}
	}
	bucket[slot] = ttEntry{key: key, depth: int32(depth)}
}
