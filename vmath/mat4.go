package vmath

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/fixed-engine/fixed"
)

// ErrSingularMatrix is returned by Inverse when a diagonal pivot is exactly zero
var ErrSingularMatrix = errors.New("singular matrix")

// Mat4 is a row-major 4x4 matrix acting on column vectors:
// p' = M·p, translation in column 3 (indices 3, 7, 11).
type Mat4[F fixed.Format] [16]fixed.Fixed[F]

func Mat4Identity[F fixed.Format]() Mat4[F] {
	one := fixed.One[F]()
	var m Mat4[F]
	m[0], m[5], m[10], m[15] = one, one, one, one
	return m
}

func Mat4Translate[F fixed.Format](t Vec3[F]) Mat4[F] {
	m := Mat4Identity[F]()
	m[3], m[7], m[11] = t.X, t.Y, t.Z
	return m
}

func Mat4Scale[F fixed.Format](s Vec3[F]) Mat4[F] {
	var m Mat4[F]
	m[0], m[5], m[10], m[15] = s.X, s.Y, s.Z, fixed.One[F]()
	return m
}

// Mat4Rotate builds the rotation matrix of a unit quaternion
func Mat4Rotate[F fixed.Format](q Quat[F]) Mat4[F] {
	one := fixed.One[F]()
	two := fixed.FromInt[F](2)
	xx, yy, zz := q.X.Mul(q.X), q.Y.Mul(q.Y), q.Z.Mul(q.Z)
	xy, xz, yz := q.X.Mul(q.Y), q.X.Mul(q.Z), q.Y.Mul(q.Z)
	wx, wy, wz := q.W.Mul(q.X), q.W.Mul(q.Y), q.W.Mul(q.Z)

	m := Mat4Identity[F]()
	m[0] = one.Sub(two.Mul(yy.Add(zz)))
	m[1] = two.Mul(xy.Sub(wz))
	m[2] = two.Mul(xz.Add(wy))
	m[4] = two.Mul(xy.Add(wz))
	m[5] = one.Sub(two.Mul(xx.Add(zz)))
	m[6] = two.Mul(yz.Sub(wx))
	m[8] = two.Mul(xz.Sub(wy))
	m[9] = two.Mul(yz.Add(wx))
	m[10] = one.Sub(two.Mul(xx.Add(yy)))
	return m
}

// Mat4TRS composes T·R·S: scale first, then rotate, then translate
func Mat4TRS[F fixed.Format](t Vec3[F], r Quat[F], s Vec3[F]) Mat4[F] {
	return Mat4Translate(t).Mul(Mat4Rotate(r)).Mul(Mat4Scale(s))
}

func (m Mat4[F]) At(row, col int) fixed.Fixed[F] { return m[row*4+col] }

// Mul returns m·o
func (m Mat4[F]) Mul(o Mat4[F]) Mat4[F] {
	var r Mat4[F]
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum fixed.Fixed[F]
			for k := 0; k < 4; k++ {
				sum = sum.Add(m[i*4+k].Mul(o[k*4+j]))
			}
			r[i*4+j] = sum
		}
	}
	return r
}

// MultiplyPoint transforms p with w = 1
func (m Mat4[F]) MultiplyPoint(p Vec3[F]) Vec3[F] {
	return m.MultiplyVector(p).Add(Vec3[F]{m[3], m[7], m[11]})
}

// MultiplyVector transforms a direction (w = 0), ignoring translation
func (m Mat4[F]) MultiplyVector(v Vec3[F]) Vec3[F] {
	return Vec3[F]{
		m[0].Mul(v.X).Add(m[1].Mul(v.Y)).Add(m[2].Mul(v.Z)),
		m[4].Mul(v.X).Add(m[5].Mul(v.Y)).Add(m[6].Mul(v.Z)),
		m[8].Mul(v.X).Add(m[9].Mul(v.Y)).Add(m[10].Mul(v.Z)),
	}
}

// Translation returns column 3
func (m Mat4[F]) Translation() Vec3[F] { return Vec3[F]{m[3], m[7], m[11]} }

// Inverse runs Gauss-Jordan elimination pivoting on the diagonal only.
// Rows are never swapped, so a zero on the diagonal mid-elimination fails
// with ErrSingularMatrix even when the matrix is invertible (a pure 90° turn, for one).
func (m Mat4[F]) Inverse() (Mat4[F], error) {
	a := m
	inv := Mat4Identity[F]()

	for i := 0; i < 4; i++ {
		pivot := a[i*4+i]
		if pivot.IsZero() {
			return Mat4[F]{}, fmt.Errorf("vmath: pivot %d: %w", i, ErrSingularMatrix)
		}
		for j := 0; j < 4; j++ {
			a[i*4+j] = a[i*4+j].MustDiv(pivot)
			inv[i*4+j] = inv[i*4+j].MustDiv(pivot)
		}
		for r := 0; r < 4; r++ {
			if r == i {
				continue
			}
			f := a[r*4+i]
			if f.IsZero() {
				continue
			}
			for j := 0; j < 4; j++ {
				a[r*4+j] = a[r*4+j].Sub(f.Mul(a[i*4+j]))
				inv[r*4+j] = inv[r*4+j].Sub(f.Mul(inv[i*4+j]))
			}
		}
	}
	return inv, nil
}
