package vmath

import "github.com/lixenwraith/fixed-engine/fixed"

// --- Angles (degrees) ---

// Heading2 is the direction of v in [0°,360°), measured from +X toward +Y
func Heading2[F fixed.AngularFormat](v Vec2[F]) fixed.Fixed[F] {
	return fixed.Atan2(v.Y, v.X)
}

// AngleDeg2 is the counter-clockwise turn from a to b in [0°,360°)
func AngleDeg2[F fixed.AngularFormat](a, b Vec2[F]) fixed.Fixed[F] {
	return fixed.WrapAngle360(Heading2(b).Sub(Heading2(a)))
}

// SignedAngleDeg2 is the shortest turn from a to b in (-180°,180°]
func SignedAngleDeg2[F fixed.AngularFormat](a, b Vec2[F]) fixed.Fixed[F] {
	return fixed.WrapAngle180(Heading2(b).Sub(Heading2(a)))
}

// Rotate2 rotates v counter-clockwise by deg
func Rotate2[F fixed.AngularFormat](v Vec2[F], deg fixed.Fixed[F]) Vec2[F] {
	c, s := fixed.Cos(deg), fixed.Sin(deg)
	return Vec2[F]{
		v.X.Mul(c).Sub(v.Y.Mul(s)),
		v.X.Mul(s).Add(v.Y.Mul(c)),
	}
}

// FromHeading2 returns the unit vector at deg
func FromHeading2[F fixed.AngularFormat](deg fixed.Fixed[F]) Vec2[F] {
	return Vec2[F]{fixed.Cos(deg), fixed.Sin(deg)}
}

// AngleDeg3 is the unsigned angle between a and b in [0°,180°].
// Zero-length inputs give 0.
func AngleDeg3[F fixed.AngularFormat](a, b Vec3[F]) fixed.Fixed[F] {
	denom := a.Magnitude().Mul(b.Magnitude())
	if denom.IsZero() {
		return fixed.Zero[F]()
	}
	return fixed.AcosLUT(a.Dot(b).MustDiv(denom))
}

// SignedAngleDeg3 is AngleDeg3 negated when a×b points away from normal
func SignedAngleDeg3[F fixed.AngularFormat](a, b, normal Vec3[F]) fixed.Fixed[F] {
	angle := AngleDeg3(a, b)
	if fixed.Sign(normal.Dot(a.Cross(b))) < 0 {
		return angle.Neg()
	}
	return angle
}
