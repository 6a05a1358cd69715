package render

import (
	"image"

	xfixed "golang.org/x/image/math/fixed"

	"github.com/lixenwraith/fixed-engine/fixed"
	"github.com/lixenwraith/fixed-engine/vmath"
)

const subpixelBits = 6

// ToInt26_6 rescales x to 26.6, truncating extra fraction bits toward -inf
func ToInt26_6[F fixed.Format](x fixed.Fixed[F]) xfixed.Int26_6 {
	fb := int(fixed.DescriptorOf[F]().FractionBits)
	raw := x.Raw()
	if fb > subpixelBits {
		raw >>= fb - subpixelBits
	} else {
		raw <<= subpixelBits - fb
	}
	return xfixed.Int26_6(int32(raw))
}

func Point26_6[F fixed.Format](v vmath.Vec2[F]) xfixed.Point26_6 {
	return xfixed.Point26_6{X: ToInt26_6(v.X), Y: ToInt26_6(v.Y)}
}

// Snap floors a subpixel point to the pixel containing it
func Snap(p xfixed.Point26_6) image.Point {
	return image.Pt(p.X.Floor(), p.Y.Floor())
}

// Viewport maps world XY onto a screen grid of terminal cells or pixels. Y
// grows upward in the world and downward on screen. Terminal cells are about
// twice as tall as wide, so terminal hosts usually pick
// CellsPerUnitX = 2 * CellsPerUnitY.
type Viewport struct {
	Origin        image.Point // screen cell of world (0,0)
	CellsPerUnitX int
	CellsPerUnitY int
}

// Project returns the screen cell for a world position, interpolated or not
func Project[F fixed.Format](vp Viewport, world vmath.Vec3[F]) image.Point {
	p := Point26_6(world.XY())
	x := p.X.Mul(xfixed.I(vp.CellsPerUnitX))
	y := p.Y.Mul(xfixed.I(vp.CellsPerUnitY))
	return image.Pt(vp.Origin.X+x.Floor(), vp.Origin.Y-y.Floor())
}

// Contains reports whether pt lies inside a w by h screen
func Contains(pt image.Point, w, h int) bool {
	return pt.In(image.Rect(0, 0, w, h))
}

// Center is the middle cell of a w by h screen
func Center(w, h int) image.Point { return image.Pt(w/2, h/2) }
