package transform

import (
	"fmt"

	"github.com/lixenwraith/fixed-engine/fixed"
	"github.com/lixenwraith/fixed-engine/vmath"
)

// Mover2D moves a transform on the XY plane of a tile grid.
// Z is forced to zero on every write.
type Mover2D[F fixed.Format] struct {
	Transform *Transform[F]
	tileSize  fixed.Fixed[F]
}

// NewMover2D fails for a tile size that is not strictly positive in F
func NewMover2D[F fixed.Format](t *Transform[F], tileSize int) (*Mover2D[F], error) {
	size := fixed.FromInt[F](tileSize)
	if !size.Gt(fixed.Zero[F]()) {
		return nil, fmt.Errorf("mover: tile size %d not representable as positive %s", tileSize, fixed.DescriptorOf[F]())
	}
	return &Mover2D[F]{Transform: t, tileSize: size}, nil
}

func (m *Mover2D[F]) TileSize() fixed.Fixed[F] { return m.tileSize }

func (m *Mover2D[F]) Position2D() vmath.Vec2[F] { return m.Transform.LocalPosition.XY() }

func (m *Mover2D[F]) SetPosition(p vmath.Vec2[F]) {
	m.Transform.LocalPosition = vmath.V3From2D(p, fixed.Zero[F]())
}

func (m *Mover2D[F]) Move(delta vmath.Vec2[F]) {
	m.SetPosition(m.Position2D().Add(delta))
}

// Cell returns the tile containing the current position, flooring toward -inf
func (m *Mover2D[F]) Cell() (x, y int) {
	p := m.Position2D()
	return p.X.MustDiv(m.tileSize).ToInt(), p.Y.MustDiv(m.tileSize).ToInt()
}

// SnapToCell places the transform at the centre of tile (x, y)
func (m *Mover2D[F]) SnapToCell(x, y int) {
	half := m.tileSize.Mul(fixed.Half[F]())
	m.SetPosition(vmath.V2(
		fixed.FromInt[F](x).Mul(m.tileSize).Add(half),
		fixed.FromInt[F](y).Mul(m.tileSize).Add(half),
	))
}

// SnapToTileCenter re-centres the transform in its current tile
func (m *Mover2D[F]) SnapToTileCenter() {
	m.SnapToCell(m.Cell())
}

// SnapFromFloat quantizes a host position and floors it to whole units
func (m *Mover2D[F]) SnapFromFloat(x, y float64) {
	m.SetPosition(vmath.V2(fixed.FromFloat[F](x).Floor(), fixed.FromFloat[F](y).Floor()))
}

// DisplayPosition is the floored position handed to a renderer
func (m *Mover2D[F]) DisplayPosition() vmath.Vec2[F] {
	p := m.Position2D()
	return vmath.V2(p.X.Floor(), p.Y.Floor())
}

// Mover3D is the unconstrained counterpart of Mover2D
type Mover3D[F fixed.Format] struct {
	Transform *Transform[F]
}

func (m *Mover3D[F]) Position3D() vmath.Vec3[F]   { return m.Transform.LocalPosition }
func (m *Mover3D[F]) SetPosition(p vmath.Vec3[F]) { m.Transform.LocalPosition = p }
func (m *Mover3D[F]) Move(delta vmath.Vec3[F])    { m.SetPosition(m.Position3D().Add(delta)) }

func (m *Mover3D[F]) SnapFromFloat(x, y, z float64) {
	m.SetPosition(vmath.V3(fixed.FromFloat[F](x).Floor(), fixed.FromFloat[F](y).Floor(), fixed.FromFloat[F](z).Floor()))
}
