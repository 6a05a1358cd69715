package input

import (
	"github.com/lixenwraith/fixed-engine/fixed"
	"github.com/lixenwraith/fixed-engine/vmath"
)

// Buffer keeps the last Cap quantized inputs, one per tick
type Buffer[F fixed.Format] struct {
	entries []vmath.Vec2[F]
	head    int // next write index
	count   int
}

// NewBuffer panics on a non-positive capacity
func NewBuffer[F fixed.Format](capacity int) *Buffer[F] {
	if capacity <= 0 {
		panic("input: buffer capacity must be positive")
	}
	return &Buffer[F]{entries: make([]vmath.Vec2[F], capacity)}
}

// Record overwrites the oldest entry once full
func (b *Buffer[F]) Record(v vmath.Vec2[F]) {
	b.entries[b.head] = v
	b.head = (b.head + 1) % len(b.entries)
	if b.count < len(b.entries) {
		b.count++
	}
}

// Get returns the input recorded back ticks ago, 0 being the latest.
// Out-of-range lookups return the zero vector.
func (b *Buffer[F]) Get(back int) vmath.Vec2[F] {
	if back < 0 || back >= b.count {
		return vmath.Vec2[F]{}
	}
	n := len(b.entries)
	return b.entries[(b.head-1-back+n)%n]
}

func (b *Buffer[F]) Len() int { return b.count }
func (b *Buffer[F]) Cap() int { return len(b.entries) }
