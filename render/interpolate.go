package render

import (
	"github.com/lixenwraith/fixed-engine/fixed"
	"github.com/lixenwraith/fixed-engine/transform"
	"github.com/lixenwraith/fixed-engine/vmath"
)

// Interpolator smooths a transform's world position between ticks.
// Register it with the scheduler after whatever moves the target.
type Interpolator[F fixed.Format] struct {
	target     *transform.Transform[F]
	prev, curr vmath.Vec3[F]
}

func NewInterpolator[F fixed.Format](target *transform.Transform[F]) *Interpolator[F] {
	i := &Interpolator[F]{target: target}
	i.Reset()
	return i
}

// FixedTick captures the post-tick world position
func (i *Interpolator[F]) FixedTick(uint64) {
	i.prev = i.curr
	i.curr = i.target.WorldPosition()
}

// Reset drops history so a teleported target does not streak across the screen
func (i *Interpolator[F]) Reset() {
	i.curr = i.target.WorldPosition()
	i.prev = i.curr
}

// Sample blends the last two captured positions. alpha is clamped to [0,1]
// and quantized into F before blending.
func (i *Interpolator[F]) Sample(alpha float64) vmath.Vec3[F] {
	a := fixed.Clamp(fixed.FromFloat[F](alpha), fixed.Zero[F](), fixed.One[F]())
	return vmath.Lerp3(i.prev, i.curr, a)
}

func (i *Interpolator[F]) Previous() vmath.Vec3[F] { return i.prev }
func (i *Interpolator[F]) Current() vmath.Vec3[F]  { return i.curr }
