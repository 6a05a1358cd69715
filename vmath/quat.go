package vmath

import "github.com/lixenwraith/fixed-engine/fixed"

// Quat is a rotation quaternion. Unit length is assumed, not enforced:
// Mul and Rotate never renormalize.
type Quat[F fixed.Format] struct {
	X, Y, Z, W fixed.Fixed[F]
}

func QuatIdentity[F fixed.Format]() Quat[F] { return Quat[F]{W: fixed.One[F]()} }

// QuatFromEuler composes axis rotations in degrees as qz·qy·qx,
// so X is applied first
func QuatFromEuler[F fixed.AngularFormat](x, y, z fixed.Fixed[F]) Quat[F] {
	half := fixed.Half[F]()
	hx, hy, hz := x.Mul(half), y.Mul(half), z.Mul(half)
	qx := Quat[F]{X: fixed.Sin(hx), W: fixed.Cos(hx)}
	qy := Quat[F]{Y: fixed.Sin(hy), W: fixed.Cos(hy)}
	qz := Quat[F]{Z: fixed.Sin(hz), W: fixed.Cos(hz)}
	return qz.Mul(qy).Mul(qx)
}

// QuatAxisAngle rotates deg around a unit axis
func QuatAxisAngle[F fixed.AngularFormat](axis Vec3[F], deg fixed.Fixed[F]) Quat[F] {
	h := deg.Mul(fixed.Half[F]())
	s := fixed.Sin(h)
	return Quat[F]{axis.X.Mul(s), axis.Y.Mul(s), axis.Z.Mul(s), fixed.Cos(h)}
}

// Mul is the Hamilton product q·o: o is applied first, then q
func (q Quat[F]) Mul(o Quat[F]) Quat[F] {
	return Quat[F]{
		X: q.W.Mul(o.X).Add(q.X.Mul(o.W)).Add(q.Y.Mul(o.Z)).Sub(q.Z.Mul(o.Y)),
		Y: q.W.Mul(o.Y).Sub(q.X.Mul(o.Z)).Add(q.Y.Mul(o.W)).Add(q.Z.Mul(o.X)),
		Z: q.W.Mul(o.Z).Add(q.X.Mul(o.Y)).Sub(q.Y.Mul(o.X)).Add(q.Z.Mul(o.W)),
		W: q.W.Mul(o.W).Sub(q.X.Mul(o.X)).Sub(q.Y.Mul(o.Y)).Sub(q.Z.Mul(o.Z)),
	}
}

// Inverse is the conjugate, exact only for unit quaternions
func (q Quat[F]) Inverse() Quat[F] { return Quat[F]{q.X.Neg(), q.Y.Neg(), q.Z.Neg(), q.W} }

// Rotate applies q to v as v + 2w(u×v) + 2u×(u×v) without building a matrix
func (q Quat[F]) Rotate(v Vec3[F]) Vec3[F] {
	u := Vec3[F]{q.X, q.Y, q.Z}
	t := u.Cross(v)
	two := fixed.FromInt[F](2)
	return v.Add(t.Scale(q.W.Mul(two))).Add(u.Cross(t).Scale(two))
}

func (q Quat[F]) Eq(o Quat[F]) bool { return q == o }

func (q Quat[F]) String() string {
	return "(" + q.X.String() + ", " + q.Y.String() + ", " + q.Z.String() + ", " + q.W.String() + ")"
}
