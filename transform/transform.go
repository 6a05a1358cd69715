package transform

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/fixed-engine/fixed"
	"github.com/lixenwraith/fixed-engine/vmath"
)

// ErrCycle is returned by SetParent when the new parent descends from the node
var ErrCycle = errors.New("parent cycle")

// Transform is a node with local TRS and an optional parent.
// The parent is a plain reference: the node never manages its lifetime.
// World values are recomputed from the parent chain on every read.
type Transform[F fixed.Format] struct {
	Name          string
	LocalPosition vmath.Vec3[F]
	LocalRotation vmath.Quat[F]
	LocalScale    vmath.Vec3[F]

	parent *Transform[F]
}

// New returns an unparented node at the origin with identity rotation and unit scale
func New[F fixed.Format](name string) *Transform[F] {
	return &Transform[F]{
		Name:          name,
		LocalRotation: vmath.QuatIdentity[F](),
		LocalScale:    vmath.V3Int[F](1, 1, 1),
	}
}

func (t *Transform[F]) Parent() *Transform[F] { return t.parent }

// SetParent attaches t under p, or detaches it when p is nil.
// Local values are kept as-is, so the world pose changes with the new parent.
func (t *Transform[F]) SetParent(p *Transform[F]) error {
	for a := p; a != nil; a = a.parent {
		if a == t {
			return fmt.Errorf("transform %q under %q: %w", t.Name, p.Name, ErrCycle)
		}
	}
	t.parent = p
	return nil
}

// Depth counts ancestors
func (t *Transform[F]) Depth() int {
	n := 0
	for a := t.parent; a != nil; a = a.parent {
		n++
	}
	return n
}

// --- Matrices ---

func (t *Transform[F]) LocalMatrix() vmath.Mat4[F] {
	return vmath.Mat4TRS(t.LocalPosition, t.LocalRotation, t.LocalScale)
}

// LocalToWorldMatrix pre-multiplies the parent chain: parent·local
func (t *Transform[F]) LocalToWorldMatrix() vmath.Mat4[F] {
	m := t.LocalMatrix()
	if t.parent == nil {
		return m
	}
	return t.parent.LocalToWorldMatrix().Mul(m)
}

func (t *Transform[F]) WorldToLocalMatrix() (vmath.Mat4[F], error) {
	inv, err := t.LocalToWorldMatrix().Inverse()
	if err != nil {
		return vmath.Mat4[F]{}, fmt.Errorf("transform %q: %w", t.Name, err)
	}
	return inv, nil
}

// --- World read path ---

func (t *Transform[F]) WorldPosition() vmath.Vec3[F] {
	return t.LocalToWorldMatrix().Translation()
}

func (t *Transform[F]) WorldRotation() vmath.Quat[F] {
	if t.parent == nil {
		return t.LocalRotation
	}
	return t.parent.WorldRotation().Mul(t.LocalRotation)
}

// WorldScale multiplies scales down the chain component-wise.
// It ignores skew from rotated non-uniform parents.
func (t *Transform[F]) WorldScale() vmath.Vec3[F] {
	if t.parent == nil {
		return t.LocalScale
	}
	return t.parent.WorldScale().Mul(t.LocalScale)
}

// TransformPoint maps a local point to world space
func (t *Transform[F]) TransformPoint(p vmath.Vec3[F]) vmath.Vec3[F] {
	return t.LocalToWorldMatrix().MultiplyPoint(p)
}

// InverseTransformPoint maps a world point into local space
func (t *Transform[F]) InverseTransformPoint(p vmath.Vec3[F]) (vmath.Vec3[F], error) {
	inv, err := t.WorldToLocalMatrix()
	if err != nil {
		return vmath.Vec3[F]{}, err
	}
	return inv.MultiplyPoint(p), nil
}

// --- Axes ---
// Forward is local +X, Right is +Y and Up is +Z, rotated into world space.

func (t *Transform[F]) Forward() vmath.Vec3[F] {
	return t.WorldRotation().Rotate(vmath.V3Int[F](1, 0, 0))
}

func (t *Transform[F]) Right() vmath.Vec3[F] {
	return t.WorldRotation().Rotate(vmath.V3Int[F](0, 1, 0))
}

func (t *Transform[F]) Up() vmath.Vec3[F] {
	return t.WorldRotation().Rotate(vmath.V3Int[F](0, 0, 1))
}

func (t *Transform[F]) Forward2D() vmath.Vec2[F] { return t.Forward().XY() }
func (t *Transform[F]) Right2D() vmath.Vec2[F]   { return t.Right().XY() }
