package vmath

import "github.com/lixenwraith/fixed-engine/fixed"

type Vec3[F fixed.Format] struct {
	X, Y, Z fixed.Fixed[F]
}

func V3[F fixed.Format](x, y, z fixed.Fixed[F]) Vec3[F] { return Vec3[F]{x, y, z} }

func V3Int[F fixed.Format](x, y, z int) Vec3[F] {
	return Vec3[F]{fixed.FromInt[F](x), fixed.FromInt[F](y), fixed.FromInt[F](z)}
}

// V3From2D lifts a planar vector at height z
func V3From2D[F fixed.Format](v Vec2[F], z fixed.Fixed[F]) Vec3[F] { return Vec3[F]{v.X, v.Y, z} }

// XY drops the Z component
func (v Vec3[F]) XY() Vec2[F] { return Vec2[F]{v.X, v.Y} }

func (v Vec3[F]) Add(o Vec3[F]) Vec3[F] { return Vec3[F]{v.X.Add(o.X), v.Y.Add(o.Y), v.Z.Add(o.Z)} }
func (v Vec3[F]) Sub(o Vec3[F]) Vec3[F] { return Vec3[F]{v.X.Sub(o.X), v.Y.Sub(o.Y), v.Z.Sub(o.Z)} }
func (v Vec3[F]) Neg() Vec3[F]          { return Vec3[F]{v.X.Neg(), v.Y.Neg(), v.Z.Neg()} }
func (v Vec3[F]) Eq(o Vec3[F]) bool     { return v == o }
func (v Vec3[F]) IsZero() bool          { return v.X.IsZero() && v.Y.IsZero() && v.Z.IsZero() }

func (v Vec3[F]) Scale(s fixed.Fixed[F]) Vec3[F] {
	return Vec3[F]{v.X.Mul(s), v.Y.Mul(s), v.Z.Mul(s)}
}

// Mul multiplies component-wise
func (v Vec3[F]) Mul(o Vec3[F]) Vec3[F] {
	return Vec3[F]{v.X.Mul(o.X), v.Y.Mul(o.Y), v.Z.Mul(o.Z)}
}

func (v Vec3[F]) Dot(o Vec3[F]) fixed.Fixed[F] {
	return v.X.Mul(o.X).Add(v.Y.Mul(o.Y)).Add(v.Z.Mul(o.Z))
}

func (v Vec3[F]) Cross(o Vec3[F]) Vec3[F] {
	return Vec3[F]{
		v.Y.Mul(o.Z).Sub(v.Z.Mul(o.Y)),
		v.Z.Mul(o.X).Sub(v.X.Mul(o.Z)),
		v.X.Mul(o.Y).Sub(v.Y.Mul(o.X)),
	}
}

func (v Vec3[F]) SqrMagnitude() fixed.Fixed[F] { return v.Dot(v) }
func (v Vec3[F]) Magnitude() fixed.Fixed[F]    { return fixed.Sqrt(v.SqrMagnitude()) }

// Normalize returns the zero vector for a zero-length input
func (v Vec3[F]) Normalize() Vec3[F] {
	mag := v.Magnitude()
	if mag.IsZero() {
		return Vec3[F]{}
	}
	return Vec3[F]{v.X.MustDiv(mag), v.Y.MustDiv(mag), v.Z.MustDiv(mag)}
}

func (v Vec3[F]) ClampMagnitude(maxLen fixed.Fixed[F]) Vec3[F] {
	if v.SqrMagnitude().Le(fixed.Square(maxLen)) {
		return v
	}
	return v.Normalize().Scale(maxLen)
}

func (v Vec3[F]) Distance(o Vec3[F]) fixed.Fixed[F] { return v.Sub(o).Magnitude() }

func (v Vec3[F]) Reflect(n Vec3[F]) Vec3[F] {
	d := v.Dot(n)
	return v.Sub(n.Scale(d.Add(d)))
}

func (v Vec3[F]) Sign() Vec3[F] {
	return V3Int[F](fixed.Sign(v.X), fixed.Sign(v.Y), fixed.Sign(v.Z))
}

func Lerp3[F fixed.Format](a, b Vec3[F], t fixed.Fixed[F]) Vec3[F] {
	return Vec3[F]{fixed.Lerp(a.X, b.X, t), fixed.Lerp(a.Y, b.Y, t), fixed.Lerp(a.Z, b.Z, t)}
}

func (v Vec3[F]) String() string {
	return "(" + v.X.String() + ", " + v.Y.String() + ", " + v.Z.String() + ")"
}
