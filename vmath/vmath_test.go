package vmath

import (
	"errors"
	"testing"

	"github.com/lixenwraith/fixed-engine/fixed"
)

type f16 = fixed.Q16_16

func near3(a, b Vec3[f16], tol int64) bool {
	eps := fixed.FromRaw[f16](tol)
	return fixed.Approximately(a.X, b.X, eps) && fixed.Approximately(a.Y, b.Y, eps) && fixed.Approximately(a.Z, b.Z, eps)
}

func TestVec2Basics(t *testing.T) {
	a := V2Int[f16](3, 4)
	b := V2Int[f16](1, -2)

	tests := []struct {
		name string
		got  Vec2[f16]
		want Vec2[f16]
	}{
		{"Add", a.Add(b), V2Int[f16](4, 2)},
		{"Sub", a.Sub(b), V2Int[f16](2, 6)},
		{"Neg", a.Neg(), V2Int[f16](-3, -4)},
		{"Scale", a.Scale(fixed.FromInt[f16](2)), V2Int[f16](6, 8)},
		{"Perpendicular", V2Int[f16](1, 0).Perpendicular(), V2Int[f16](0, 1)},
		{"Sign", V2Int[f16](-7, 0).Sign(), V2Int[f16](-1, 0)},
		{"Lerp", Lerp2(V2Int[f16](0, 0), V2Int[f16](4, 8), fixed.Half[f16]()), V2Int[f16](2, 4)},
		{"Reflect", V2Int[f16](1, -1).Reflect(V2Int[f16](0, 1)), V2Int[f16](1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.Eq(tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, tt.got)
			}
		})
	}

	if d := a.Dot(b).ToInt(); d != -5 {
		t.Errorf("Expected dot -5, got %d", d)
	}
	if m := a.Magnitude().ToInt(); m != 5 {
		t.Errorf("Expected magnitude 5, got %d", m)
	}
	if d := V2Int[f16](1, 1).Distance(V2Int[f16](4, 5)); d != fixed.FromInt[f16](5) {
		t.Errorf("Expected distance 5, got %v", d)
	}
}

func TestNormalize(t *testing.T) {
	n := V2Int[f16](3, 4).Normalize()
	if n.X != fixed.FromFloat[f16](0.6) || n.Y != fixed.FromFloat[f16](0.8) {
		t.Errorf("Expected (0.6, 0.8), got %v", n)
	}

	if z := (Vec2[f16]{}).Normalize(); !z.IsZero() {
		t.Errorf("Expected zero vector, got %v", z)
	}
	if z := (Vec3[f16]{}).Normalize(); !z.IsZero() {
		t.Errorf("Expected zero vector, got %v", z)
	}
}

func TestClampMagnitude(t *testing.T) {
	v := V2Int[f16](3, 4)
	if got := v.ClampMagnitude(fixed.FromInt[f16](10)); got != v {
		t.Errorf("Expected unchanged vector, got %v", got)
	}
	got := v.ClampMagnitude(fixed.FromFloat[f16](2.5))
	eps := fixed.FromRaw[f16](4)
	if !fixed.Approximately(got.X, fixed.FromFloat[f16](1.5), eps) || !fixed.Approximately(got.Y, fixed.FromInt[f16](2), eps) {
		t.Errorf("Expected about (1.5, 2), got %v", got)
	}

	v3 := V3Int[f16](0, 0, 9).ClampMagnitude(fixed.FromInt[f16](3))
	if v3 != V3Int[f16](0, 0, 3) {
		t.Errorf("Expected (0, 0, 3), got %v", v3)
	}
}

func TestVec3Basics(t *testing.T) {
	x, y, z := V3Int[f16](1, 0, 0), V3Int[f16](0, 1, 0), V3Int[f16](0, 0, 1)
	if got := x.Cross(y); got != z {
		t.Errorf("Expected x cross y = z, got %v", got)
	}
	if got := y.Cross(x); got != z.Neg() {
		t.Errorf("Expected y cross x = -z, got %v", got)
	}
	if d := V3Int[f16](1, 2, 3).Dot(V3Int[f16](4, -5, 6)).ToInt(); d != 12 {
		t.Errorf("Expected dot 12, got %d", d)
	}
	if m := V3Int[f16](2, 3, 6).Magnitude().ToInt(); m != 7 {
		t.Errorf("Expected magnitude 7, got %d", m)
	}
	if got := V3Int[f16](1, -1, 0).Reflect(y); got != V3Int[f16](1, 1, 0) {
		t.Errorf("Expected reflection (1, 1, 0), got %v", got)
	}
	if got := V3Int[f16](2, 3, 4).Mul(V3Int[f16](1, 2, 3)); got != V3Int[f16](2, 6, 12) {
		t.Errorf("Expected (2, 6, 12), got %v", got)
	}
	if got := V3From2D(V2Int[f16](5, 6), fixed.FromInt[f16](7)).XY(); got != V2Int[f16](5, 6) {
		t.Errorf("Expected XY round trip, got %v", got)
	}
	if got := Lerp3(x, y, fixed.Half[f16]()); got != V3(fixed.Half[f16](), fixed.Half[f16](), fixed.Zero[f16]()) {
		t.Errorf("Expected midpoint, got %v", got)
	}
}

func TestAngles2D(t *testing.T) {
	right, up := V2Int[f16](1, 0), V2Int[f16](0, 1)

	tests := []struct {
		name string
		got  fixed.Fixed[f16]
		want int
	}{
		{"Unsigned quarter", AngleDeg2(right, up), 90},
		{"Unsigned wraps", AngleDeg2(up, right), 270},
		{"Signed clockwise", SignedAngleDeg2(up, right), -90},
		{"Signed half turn", SignedAngleDeg2(right, right.Neg()), 180},
		{"Heading", Heading2(V2Int[f16](-2, -2)), 225},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != fixed.FromInt[f16](tt.want) {
				t.Errorf("Expected %d, got %v", tt.want, tt.got)
			}
		})
	}

	if got := Rotate2(right, fixed.Deg90[f16]()); got != up {
		t.Errorf("Expected rotation to (0, 1), got %v", got)
	}
	if got := FromHeading2(fixed.Deg180[f16]()); got != right.Neg() {
		t.Errorf("Expected (-1, 0), got %v", got)
	}
}

func TestAngles3D(t *testing.T) {
	x, y := V3Int[f16](1, 0, 0), V3Int[f16](0, 1, 0)
	down := V3Int[f16](0, 0, -1)

	if got := AngleDeg3(x, y); got != fixed.Deg90[f16]() {
		t.Errorf("Expected 90, got %v", got)
	}
	if got := AngleDeg3(x, x.Scale(fixed.FromInt[f16](3))); !got.IsZero() {
		t.Errorf("Expected 0, got %v", got)
	}
	if got := AngleDeg3(x, x.Neg()); got != fixed.Deg180[f16]() {
		t.Errorf("Expected 180, got %v", got)
	}
	if got := AngleDeg3(x, Vec3[f16]{}); !got.IsZero() {
		t.Errorf("Expected 0 for zero vector, got %v", got)
	}
	if got := SignedAngleDeg3(x, y, down); got != fixed.Deg90[f16]().Neg() {
		t.Errorf("Expected -90, got %v", got)
	}
	if got := SignedAngleDeg3(x, y, down.Neg()); got != fixed.Deg90[f16]() {
		t.Errorf("Expected 90, got %v", got)
	}
}

func TestQuatRotate(t *testing.T) {
	q := QuatFromEuler(fixed.Zero[f16](), fixed.Zero[f16](), fixed.Deg90[f16]())

	tests := []struct {
		in, want Vec3[f16]
	}{
		{V3Int[f16](1, 0, 0), V3Int[f16](0, 1, 0)},
		{V3Int[f16](0, 1, 0), V3Int[f16](-1, 0, 0)},
		{V3Int[f16](0, 0, 1), V3Int[f16](0, 0, 1)},
		{V3Int[f16](2, 0, 0), V3Int[f16](0, 2, 0)},
	}

	for _, tt := range tests {
		if got := q.Rotate(tt.in); !near3(got, tt.want, 16) {
			t.Errorf("Rotate(%v): expected about %v, got %v", tt.in, tt.want, got)
		}
	}

	if got := QuatIdentity[f16]().Rotate(V3Int[f16](3, -2, 5)); got != V3Int[f16](3, -2, 5) {
		t.Errorf("Expected identity rotation to be exact, got %v", got)
	}
}

func TestQuatComposition(t *testing.T) {
	zero := fixed.Zero[f16]()
	ninety := fixed.Deg90[f16]()
	qx := QuatFromEuler(ninety, zero, zero)
	qz := QuatFromEuler(zero, zero, ninety)

	// X applied first: y -> z, then Z leaves z alone
	combined := QuatFromEuler(ninety, zero, ninety)
	v := V3Int[f16](0, 1, 0)
	if got, want := combined.Rotate(v), qz.Rotate(qx.Rotate(v)); !near3(got, want, 32) {
		t.Errorf("Expected %v, got %v", want, got)
	}
	if got := combined.Rotate(v); !near3(got, V3Int[f16](0, 0, 1), 32) {
		t.Errorf("Expected about (0, 0, 1), got %v", got)
	}

	back := qz.Inverse().Rotate(qz.Rotate(V3Int[f16](1, 2, 3)))
	if !near3(back, V3Int[f16](1, 2, 3), 32) {
		t.Errorf("Expected inverse to undo rotation, got %v", back)
	}

	axis := QuatAxisAngle(V3Int[f16](0, 0, 1), ninety)
	if axis != qz {
		t.Errorf("Expected axis-angle to match euler Z, got %v vs %v", axis, qz)
	}
}

func TestMat4IdentityInverse(t *testing.T) {
	id := Mat4Identity[f16]()
	inv, err := id.Inverse()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if inv != id {
		t.Errorf("Expected identity inverse to be identity")
	}
}

func TestMat4TranslateRoundTrip(t *testing.T) {
	offsets := []Vec3[f16]{V3Int[f16](1, 2, 3), V3Int[f16](-40, 7, 0), V3(fixed.FromFloat[f16](0.25), fixed.FromFloat[f16](-3.5), fixed.FromInt[f16](100))}
	points := []Vec3[f16]{V3Int[f16](0, 0, 0), V3Int[f16](5, -5, 9), V3(fixed.FromFloat[f16](1.125), fixed.FromInt[f16](-2), fixed.FromFloat[f16](7.75))}

	for _, v := range offsets {
		m := Mat4Translate(v)
		inv, err := m.Inverse()
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		for _, p := range points {
			if got := inv.MultiplyPoint(m.MultiplyPoint(p)); got != p {
				t.Errorf("Translate %v: expected %v, got %v", v, p, got)
			}
		}
	}
}

func TestMat4ScaleInverse(t *testing.T) {
	m := Mat4Scale(V3(fixed.FromInt[f16](2), fixed.FromInt[f16](4), fixed.Half[f16]()))
	inv, err := m.Inverse()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := Mat4Scale(V3(fixed.Half[f16](), fixed.FromFloat[f16](0.25), fixed.FromInt[f16](2)))
	if inv != want {
		t.Errorf("Expected exact scale inverse")
	}
	if got := m.Mul(inv); got != Mat4Identity[f16]() {
		t.Errorf("Expected m·m⁻¹ = identity")
	}
}

func TestMat4Singular(t *testing.T) {
	_, err := Mat4Scale(V3Int[f16](0, 1, 1)).Inverse()
	if !errors.Is(err, ErrSingularMatrix) {
		t.Errorf("Expected ErrSingularMatrix, got %v", err)
	}

	// Invertible axis swap, rejected because no row search is done
	swap := Mat4Identity[f16]()
	swap[0], swap[1] = fixed.Zero[f16](), fixed.One[f16]()
	swap[4], swap[5] = fixed.One[f16](), fixed.Zero[f16]()
	if _, err := swap.Inverse(); !errors.Is(err, ErrSingularMatrix) {
		t.Errorf("Expected ErrSingularMatrix for zero diagonal pivot, got %v", err)
	}
}

func TestMat4TRS(t *testing.T) {
	q := QuatFromEuler(fixed.Zero[f16](), fixed.Zero[f16](), fixed.Deg90[f16]())
	m := Mat4TRS(V3Int[f16](1, 2, 3), q, V3Int[f16](2, 2, 2))

	if got := m.MultiplyPoint(V3Int[f16](1, 0, 0)); !near3(got, V3Int[f16](1, 4, 3), 16) {
		t.Errorf("Expected about (1, 4, 3), got %v", got)
	}
	if got := m.MultiplyVector(V3Int[f16](1, 0, 0)); !near3(got, V3Int[f16](0, 2, 0), 16) {
		t.Errorf("Expected about (0, 2, 0), got %v", got)
	}
	if got := m.Translation(); got != V3Int[f16](1, 2, 3) {
		t.Errorf("Expected translation (1, 2, 3), got %v", got)
	}

	v := V3Int[f16](3, -1, 2)
	if got, want := Mat4Rotate(q).MultiplyVector(v), q.Rotate(v); !near3(got, want, 32) {
		t.Errorf("Expected matrix and quaternion rotation to agree: %v vs %v", got, want)
	}
}
