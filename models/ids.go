package models

import (
	"fmt"
	"sync"
	"time"
)

// IDGenerator issues "<prefix>-<unix ms>" IDs, bumping the millisecond when
// two IDs would collide.
type IDGenerator struct {
	mu   sync.Mutex
	last int64
	Now  func() time.Time
}

func (g *IDGenerator) Next(prefix string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	ms := now().UnixMilli()
	if ms <= g.last {
		ms = g.last + 1
	}
	g.last = ms
	return fmt.Sprintf("%s-%d", prefix, ms)
}
