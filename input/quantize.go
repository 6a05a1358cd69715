package input

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/fixed-engine/fixed"
	"github.com/lixenwraith/fixed-engine/vmath"
)

// ErrZeroStep is returned when a quantization step collapses to zero in the target format
var ErrZeroStep = errors.New("quantization step is zero")

// Quantize converts a host float to F and rounds it to the nearest whole unit
func Quantize[F fixed.Format](v float64) fixed.Fixed[F] {
	return fixed.FromFloat[F](v).RoundNearest()
}

// QuantizeStep snaps v to the nearest multiple of step, computed entirely in F
func QuantizeStep[F fixed.Format](v, step float64) (fixed.Fixed[F], error) {
	s := fixed.FromFloat[F](step)
	count, err := fixed.FromFloat[F](v).Div(s)
	if err != nil {
		return fixed.Zero[F](), fmt.Errorf("input: step %g: %w", step, ErrZeroStep)
	}
	return count.RoundNearest().Mul(s), nil
}

// QuantizeAxis maps an analog reading to -1, 0 or 1. Readings inside the deadzone,
// and NaN, give 0.
func QuantizeAxis[F fixed.Format](v, deadzone float64) fixed.Fixed[F] {
	if math.IsNaN(v) || math.Abs(v) < deadzone {
		return fixed.Zero[F]()
	}
	if v < 0 {
		return fixed.FromInt[F](-1)
	}
	return fixed.One[F]()
}

// QuantizeVec2 quantizes a stick or d-pad reading per axis
func QuantizeVec2[F fixed.Format](x, y, deadzone float64) vmath.Vec2[F] {
	return vmath.Vec2[F]{X: QuantizeAxis[F](x, deadzone), Y: QuantizeAxis[F](y, deadzone)}
}

// QuantizeVec3 rounds each component to whole units
func QuantizeVec3[F fixed.Format](x, y, z float64) vmath.Vec3[F] {
	return vmath.Vec3[F]{X: Quantize[F](x), Y: Quantize[F](y), Z: Quantize[F](z)}
}
