package fixed

import (
	"fmt"
	"math"
	"math/bits"
	"strconv"
)

// Fixed is a scaled integer in format F: value = raw / 2^FractionBits.
// The raw word is always wrapped to the format's width, so two values of the same
// format are equal exactly when their raws are.
type Fixed[F Format] struct {
	raw int32
}

// wrap truncates raw to the format width, sign-extending for signed formats.
// Unsigned 32-bit formats keep their bit pattern in the int32.
func wrap(d Descriptor, raw int64) int32 {
	n := d.TotalBits()
	mask := int64(1)<<n - 1
	v := raw & mask
	if d.Signed && v&(int64(1)<<(n-1)) != 0 {
		v -= int64(1) << n
	}
	if devChecks && v != raw {
		reportWrap(d, raw, v)
	}
	return int32(v)
}

// --- Construction ---

// FromRaw wraps raw into format F
func FromRaw[F Format](raw int64) Fixed[F] {
	return Fixed[F]{raw: wrap(DescriptorOf[F](), raw)}
}

// FromInt converts a whole number of units
func FromInt[F Format](i int) Fixed[F] {
	d := DescriptorOf[F]()
	return FromRaw[F](int64(i) << d.FractionBits)
}

// FromFloat quantizes f by truncation toward zero after scaling.
// NaN and infinities give zero; finite out-of-range values wrap.
func FromFloat[F Format](f float64) Fixed[F] {
	d := DescriptorOf[F]()
	v := math.Trunc(f * float64(d.Scale()))
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Fixed[F]{}
	}
	// Reduce before the int conversion so huge inputs wrap the same way on every platform
	v = math.Mod(v, 1<<32)
	return FromRaw[F](int64(v))
}

func Zero[F Format]() Fixed[F] { return Fixed[F]{} }
func One[F Format]() Fixed[F]  { return FromInt[F](1) }

func Half[F Format]() Fixed[F] {
	d := DescriptorOf[F]()
	return FromRaw[F](d.Scale() >> 1)
}

// MinValue and MaxValue bound the representable range of F
func MinValue[F Format]() Fixed[F] {
	d := DescriptorOf[F]()
	if !d.Signed {
		return Fixed[F]{}
	}
	return FromRaw[F](-(int64(1) << (d.TotalBits() - 1)))
}

func MaxValue[F Format]() Fixed[F] {
	d := DescriptorOf[F]()
	if !d.Signed {
		return FromRaw[F](int64(1)<<d.TotalBits() - 1)
	}
	return FromRaw[F](int64(1)<<(d.TotalBits()-1) - 1)
}

// --- Accessors ---

// Raw returns the backing integer, widened by the format's signedness
func (x Fixed[F]) Raw() int64 { return x.wide() }

func (x Fixed[F]) Descriptor() Descriptor { return DescriptorOf[F]() }

func (x Fixed[F]) wide() int64 {
	if DescriptorOf[F]().Signed {
		return int64(x.raw)
	}
	return int64(uint32(x.raw))
}

func (x Fixed[F]) IsZero() bool { return x.raw == 0 }

// --- Arithmetic ---

func (x Fixed[F]) Add(y Fixed[F]) Fixed[F] { return FromRaw[F](x.wide() + y.wide()) }
func (x Fixed[F]) Sub(y Fixed[F]) Fixed[F] { return FromRaw[F](x.wide() - y.wide()) }
func (x Fixed[F]) Neg() Fixed[F]           { return FromRaw[F](-x.wide()) }

// Mul widens to 64 bits, multiplies and shifts right by the fraction bits
func (x Fixed[F]) Mul(y Fixed[F]) Fixed[F] {
	d := DescriptorOf[F]()
	if d.Signed {
		return FromRaw[F]((x.wide() * y.wide()) >> d.FractionBits)
	}
	// UQ16.16 products reach 2^64, take the 128-bit route
	hi, lo := bits.Mul64(uint64(x.wide()), uint64(y.wide()))
	r := hi<<(64-d.FractionBits) | lo>>d.FractionBits
	return FromRaw[F](int64(r & math.MaxUint32))
}

// Div shifts the dividend left by the fraction bits before dividing.
// The quotient truncates toward zero.
func (x Fixed[F]) Div(y Fixed[F]) (Fixed[F], error) {
	if y.raw == 0 {
		return Fixed[F]{}, fmt.Errorf("fixed %s: %w", DescriptorOf[F](), ErrDivideByZero)
	}
	d := DescriptorOf[F]()
	return FromRaw[F]((x.wide() << d.FractionBits) / y.wide()), nil
}

// MustDiv is Div for divisors known to be non-zero; it panics otherwise
func (x Fixed[F]) MustDiv(y Fixed[F]) Fixed[F] {
	q, err := x.Div(y)
	if err != nil {
		panic(err)
	}
	return q
}

// Mod is the raw remainder, carrying the dividend's sign
func (x Fixed[F]) Mod(y Fixed[F]) (Fixed[F], error) {
	if y.raw == 0 {
		return Fixed[F]{}, fmt.Errorf("fixed %s: %w", DescriptorOf[F](), ErrDivideByZero)
	}
	return FromRaw[F](x.wide() % y.wide()), nil
}

// --- Comparison ---

// Cmp returns -1, 0 or +1
func (x Fixed[F]) Cmp(y Fixed[F]) int {
	a, b := x.wide(), y.wide()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (x Fixed[F]) Eq(y Fixed[F]) bool { return x.raw == y.raw }
func (x Fixed[F]) Lt(y Fixed[F]) bool { return x.wide() < y.wide() }
func (x Fixed[F]) Le(y Fixed[F]) bool { return x.wide() <= y.wide() }
func (x Fixed[F]) Gt(y Fixed[F]) bool { return x.wide() > y.wide() }
func (x Fixed[F]) Ge(y Fixed[F]) bool { return x.wide() >= y.wide() }

// --- Conversion ---

// ToFloat is for display and logging. Never feed the result back into simulation state.
func (x Fixed[F]) ToFloat() float64 {
	return float64(x.wide()) / float64(DescriptorOf[F]().Scale())
}

// ToInt floors to whole units (arithmetic shift)
func (x Fixed[F]) ToInt() int {
	return int(x.wide() >> DescriptorOf[F]().FractionBits)
}

func (x Fixed[F]) Floor() Fixed[F] {
	mask := DescriptorOf[F]().Scale() - 1
	return FromRaw[F](x.wide() &^ mask)
}

func (x Fixed[F]) Ceil() Fixed[F] {
	mask := DescriptorOf[F]().Scale() - 1
	return FromRaw[F]((x.wide() + mask) &^ mask)
}

// RoundNearest rounds halves up (toward +inf), no ties-to-even
func (x Fixed[F]) RoundNearest() Fixed[F] {
	d := DescriptorOf[F]()
	mask := d.Scale() - 1
	return FromRaw[F]((x.wide() + d.Scale()>>1) &^ mask)
}

func (x Fixed[F]) String() string {
	return strconv.FormatFloat(x.ToFloat(), 'f', 4, 64)
}

// Convert rescales x into format To, truncating dropped fraction bits toward -inf
func Convert[From, To Format](x Fixed[From]) Fixed[To] {
	src, dst := DescriptorOf[From](), DescriptorOf[To]()
	v := x.wide()
	if dst.FractionBits >= src.FractionBits {
		v <<= dst.FractionBits - src.FractionBits
	} else {
		v >>= src.FractionBits - dst.FractionBits
	}
	return FromRaw[To](v)
}
