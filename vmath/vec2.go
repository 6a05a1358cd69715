package vmath

import "github.com/lixenwraith/fixed-engine/fixed"

// Vec2 is a 2D vector of one fixed format. Equality is exact raw equality.
type Vec2[F fixed.Format] struct {
	X, Y fixed.Fixed[F]
}

func V2[F fixed.Format](x, y fixed.Fixed[F]) Vec2[F] { return Vec2[F]{x, y} }

// V2Int builds a vector from whole units
func V2Int[F fixed.Format](x, y int) Vec2[F] {
	return Vec2[F]{fixed.FromInt[F](x), fixed.FromInt[F](y)}
}

func (v Vec2[F]) Add(o Vec2[F]) Vec2[F] { return Vec2[F]{v.X.Add(o.X), v.Y.Add(o.Y)} }
func (v Vec2[F]) Sub(o Vec2[F]) Vec2[F] { return Vec2[F]{v.X.Sub(o.X), v.Y.Sub(o.Y)} }
func (v Vec2[F]) Neg() Vec2[F]          { return Vec2[F]{v.X.Neg(), v.Y.Neg()} }
func (v Vec2[F]) Eq(o Vec2[F]) bool     { return v == o }
func (v Vec2[F]) IsZero() bool          { return v.X.IsZero() && v.Y.IsZero() }

func (v Vec2[F]) Scale(s fixed.Fixed[F]) Vec2[F] {
	return Vec2[F]{v.X.Mul(s), v.Y.Mul(s)}
}

func (v Vec2[F]) Dot(o Vec2[F]) fixed.Fixed[F] {
	return v.X.Mul(o.X).Add(v.Y.Mul(o.Y))
}

func (v Vec2[F]) SqrMagnitude() fixed.Fixed[F] { return v.Dot(v) }
func (v Vec2[F]) Magnitude() fixed.Fixed[F]    { return fixed.Sqrt(v.SqrMagnitude()) }

// Normalize returns the zero vector for a zero-length input
func (v Vec2[F]) Normalize() Vec2[F] {
	mag := v.Magnitude()
	if mag.IsZero() {
		return Vec2[F]{}
	}
	return Vec2[F]{v.X.MustDiv(mag), v.Y.MustDiv(mag)}
}

// ClampMagnitude limits length to maxLen, preserving direction
func (v Vec2[F]) ClampMagnitude(maxLen fixed.Fixed[F]) Vec2[F] {
	if v.SqrMagnitude().Le(fixed.Square(maxLen)) {
		return v
	}
	return v.Normalize().Scale(maxLen)
}

func (v Vec2[F]) Distance(o Vec2[F]) fixed.Fixed[F] { return v.Sub(o).Magnitude() }

// Reflect mirrors v about a unit normal: v - 2(v·n)n
func (v Vec2[F]) Reflect(n Vec2[F]) Vec2[F] {
	d := v.Dot(n)
	return v.Sub(n.Scale(d.Add(d)))
}

// Perpendicular rotates 90° counter-clockwise
func (v Vec2[F]) Perpendicular() Vec2[F] { return Vec2[F]{v.Y.Neg(), v.X} }

// Sign returns the per-component sign as -1, 0 or 1 units
func (v Vec2[F]) Sign() Vec2[F] {
	return V2Int[F](fixed.Sign(v.X), fixed.Sign(v.Y))
}

func Lerp2[F fixed.Format](a, b Vec2[F], t fixed.Fixed[F]) Vec2[F] {
	return Vec2[F]{fixed.Lerp(a.X, b.X, t), fixed.Lerp(a.Y, b.Y, t)}
}

func (v Vec2[F]) String() string { return "(" + v.X.String() + ", " + v.Y.String() + ")" }
