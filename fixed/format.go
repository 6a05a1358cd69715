package fixed

import (
	"fmt"
)

// Descriptor describes the bit layout of a fixed-point format.
// IntegerBits includes the sign bit for signed formats.
type Descriptor struct {
	IntegerBits  uint8
	FractionBits uint8
	Signed       bool
}

// TotalBits is the width of the backing word actually used by the format
func (d Descriptor) TotalBits() uint8 { return d.IntegerBits + d.FractionBits }

// Scale returns 2^FractionBits
func (d Descriptor) Scale() int64 { return int64(1) << d.FractionBits }

// Validate reports layouts that cannot be stored in a 32-bit raw word
func (d Descriptor) Validate() error {
	if d.FractionBits == 0 {
		return fmt.Errorf("fixed %s: no fraction bits", d)
	}
	if int(d.IntegerBits)+int(d.FractionBits) > 32 {
		return fmt.Errorf("fixed %s: %d bits exceed 32-bit raw word", d, int(d.IntegerBits)+int(d.FractionBits))
	}
	return nil
}

func (d Descriptor) String() string {
	if d.Signed {
		return fmt.Sprintf("Q%d.%d", d.IntegerBits, d.FractionBits)
	}
	return fmt.Sprintf("UQ%d.%d", d.IntegerBits, d.FractionBits)
}

// Format is implemented only by the marker types of this package.
// The set of formats is closed: the unexported method keeps outside types from satisfying it.
type Format interface {
	Descriptor() Descriptor
	format()
}

// AngularFormat is a Format shipping angle literals and a sine table.
// Trig functions are constrained to it, so calling them on other formats does not compile.
type AngularFormat interface {
	Format
	angles() *angleTable
}

type (
	Q8_4    struct{}
	Q8_8    struct{}
	Q16_4   struct{}
	Q16_8   struct{}
	Q16_16  struct{}
	Q8_4U   struct{}
	Q8_8U   struct{}
	Q16_4U  struct{}
	Q16_8U  struct{}
	Q16_16U struct{}
)

func (Q8_4) Descriptor() Descriptor    { return Descriptor{8, 4, true} }
func (Q8_8) Descriptor() Descriptor    { return Descriptor{8, 8, true} }
func (Q16_4) Descriptor() Descriptor   { return Descriptor{16, 4, true} }
func (Q16_8) Descriptor() Descriptor   { return Descriptor{16, 8, true} }
func (Q16_16) Descriptor() Descriptor  { return Descriptor{16, 16, true} }
func (Q8_4U) Descriptor() Descriptor   { return Descriptor{8, 4, false} }
func (Q8_8U) Descriptor() Descriptor   { return Descriptor{8, 8, false} }
func (Q16_4U) Descriptor() Descriptor  { return Descriptor{16, 4, false} }
func (Q16_8U) Descriptor() Descriptor  { return Descriptor{16, 8, false} }
func (Q16_16U) Descriptor() Descriptor { return Descriptor{16, 16, false} }

func (Q8_4) format()    {}
func (Q8_8) format()    {}
func (Q16_4) format()   {}
func (Q16_8) format()   {}
func (Q16_16) format()  {}
func (Q8_4U) format()   {}
func (Q8_8U) format()   {}
func (Q16_4U) format()  {}
func (Q16_8U) format()  {}
func (Q16_16U) format() {}

func (Q16_4) angles() *angleTable  { return &q16_4Angles }
func (Q16_8) angles() *angleTable  { return &q16_8Angles }
func (Q16_16) angles() *angleTable { return &q16_16Angles }

// DescriptorOf returns the layout of format F
func DescriptorOf[F Format]() Descriptor {
	var f F
	return f.Descriptor()
}

// Descriptors lists every supported format, signed first
func Descriptors() []Descriptor {
	return []Descriptor{
		Q8_4{}.Descriptor(), Q8_8{}.Descriptor(), Q16_4{}.Descriptor(), Q16_8{}.Descriptor(), Q16_16{}.Descriptor(),
		Q8_4U{}.Descriptor(), Q8_8U{}.Descriptor(), Q16_4U{}.Descriptor(), Q16_8U{}.Descriptor(), Q16_16U{}.Descriptor(),
	}
}

func init() {
	for _, d := range Descriptors() {
		if err := d.Validate(); err != nil {
			panic(err)
		}
	}
}
