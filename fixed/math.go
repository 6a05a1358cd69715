package fixed

import (
	"log/slog"
	"math/bits"
)

// --- Scalar helpers ---

func Abs[F Format](x Fixed[F]) Fixed[F] {
	if x.wide() < 0 {
		return x.Neg()
	}
	return x
}

// Sign returns -1, 0 or 1
func Sign[F Format](x Fixed[F]) int {
	switch w := x.wide(); {
	case w < 0:
		return -1
	case w > 0:
		return 1
	}
	return 0
}

func Min[F Format](a, b Fixed[F]) Fixed[F] {
	if a.Lt(b) {
		return a
	}
	return b
}

func Max[F Format](a, b Fixed[F]) Fixed[F] {
	if a.Gt(b) {
		return a
	}
	return b
}

func Clamp[F Format](x, lo, hi Fixed[F]) Fixed[F] {
	if x.Lt(lo) {
		return lo
	}
	if x.Gt(hi) {
		return hi
	}
	return x
}

// Lerp returns a + (b-a)*t, t is not clamped
func Lerp[F Format](a, b, t Fixed[F]) Fixed[F] {
	return a.Add(b.Sub(a).Mul(t))
}

// Remap maps v from [inMin,inMax] onto [outMin,outMax].
// An empty input range returns outMin and logs a warning.
func Remap[F Format](v, inMin, inMax, outMin, outMax Fixed[F]) Fixed[F] {
	span := inMax.Sub(inMin)
	if span.IsZero() {
		Logger().Warn("fixed: remap with empty input range",
			slog.String("format", DescriptorOf[F]().String()),
			slog.String("in", inMin.String()))
		return outMin
	}
	return outMin.Add(v.Sub(inMin).Mul(outMax.Sub(outMin)).MustDiv(span))
}

func Square[F Format](x Fixed[F]) Fixed[F] { return x.Mul(x) }

// Approximately reports |a-b| <= eps
func Approximately[F Format](a, b, eps Fixed[F]) bool {
	return Abs(a.Sub(b)).Le(eps)
}

const sqrtIterations = 6

// Sqrt runs a fixed number of integer Newton-Raphson steps on raw<<FractionBits.
// Non-positive input returns zero. The n>>1 seed is capped by a bit-length estimate,
// which keeps six steps within one raw unit of the exact root across the 32-bit range.
func Sqrt[F Format](x Fixed[F]) Fixed[F] {
	w := x.wide()
	if w <= 0 {
		return Fixed[F]{}
	}
	n := w << DescriptorOf[F]().FractionBits
	g := n >> 1
	if est := int64(1) << ((bits.Len64(uint64(n)) + 1) / 2); est < g {
		g = est
	}
	for range sqrtIterations {
		g = (g + n/g) >> 1
	}
	return FromRaw[F](g)
}

// Floor, Ceil and Round are function forms of the methods, for use as func values

func Floor[F Format](x Fixed[F]) Fixed[F] { return x.Floor() }
func Ceil[F Format](x Fixed[F]) Fixed[F]  { return x.Ceil() }
func Round[F Format](x Fixed[F]) Fixed[F] { return x.RoundNearest() }
