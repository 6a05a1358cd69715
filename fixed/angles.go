package fixed

import "math"

// angleTable holds the angle literals and sine table of one angular format.
// Literals are raw values rounded to nearest; none are derived at runtime.
type angleTable struct {
	deg15, deg45, deg90, deg135, deg180, deg360 int32
	pi, twoPi                                   int32
	deg2rad, rad2deg                            int32
	sixth                                       int32
	atanLin, atanCubic                          int32 // 56.25° and 11.25°

	sin [360]int32
}

// Q16.4 loses deg2rad entirely (0.0175 < 1/16); ToRadians is zero there
var q16_4Angles = angleTable{
	deg15: 240, deg45: 720, deg90: 1440, deg135: 2160, deg180: 2880, deg360: 5760,
	pi: 50, twoPi: 101,
	deg2rad: 0, rad2deg: 917,
	sixth:   3,
	atanLin: 900, atanCubic: 180,
}

var q16_8Angles = angleTable{
	deg15: 3840, deg45: 11520, deg90: 23040, deg135: 34560, deg180: 46080, deg360: 92160,
	pi: 804, twoPi: 1608,
	deg2rad: 4, rad2deg: 14668,
	sixth:   43,
	atanLin: 14400, atanCubic: 2880,
}

var q16_16Angles = angleTable{
	deg15: 983040, deg45: 2949120, deg90: 5898240, deg135: 8847360, deg180: 11796480, deg360: 23592960,
	pi: 205887, twoPi: 411775,
	deg2rad: 1144, rad2deg: 3754936,
	sixth:   10923,
	atanLin: 3686400, atanCubic: 737280,
}

func init() {
	buildSinTable[Q16_4]()
	buildSinTable[Q16_8]()
	buildSinTable[Q16_16]()
}

// buildSinTable fills the per-degree sine table, quantized the same way as FromFloat
func buildSinTable[F AngularFormat]() {
	t := anglesOf[F]()
	for i := range t.sin {
		t.sin[i] = FromFloat[F](math.Sin(float64(i) * math.Pi / 180)).raw
	}
}

func anglesOf[F AngularFormat]() *angleTable {
	var f F
	return f.angles()
}

func Deg15[F AngularFormat]() Fixed[F]  { return Fixed[F]{raw: anglesOf[F]().deg15} }
func Deg45[F AngularFormat]() Fixed[F]  { return Fixed[F]{raw: anglesOf[F]().deg45} }
func Deg90[F AngularFormat]() Fixed[F]  { return Fixed[F]{raw: anglesOf[F]().deg90} }
func Deg135[F AngularFormat]() Fixed[F] { return Fixed[F]{raw: anglesOf[F]().deg135} }
func Deg180[F AngularFormat]() Fixed[F] { return Fixed[F]{raw: anglesOf[F]().deg180} }
func Deg360[F AngularFormat]() Fixed[F] { return Fixed[F]{raw: anglesOf[F]().deg360} }
func Pi[F AngularFormat]() Fixed[F]     { return Fixed[F]{raw: anglesOf[F]().pi} }
func TwoPi[F AngularFormat]() Fixed[F]  { return Fixed[F]{raw: anglesOf[F]().twoPi} }

// Deg2Rad and Rad2Deg are the conversion factors as literals of F
func Deg2Rad[F AngularFormat]() Fixed[F] { return Fixed[F]{raw: anglesOf[F]().deg2rad} }
func Rad2Deg[F AngularFormat]() Fixed[F] { return Fixed[F]{raw: anglesOf[F]().rad2deg} }

func ToRadians[F AngularFormat](deg Fixed[F]) Fixed[F] { return deg.Mul(Deg2Rad[F]()) }
func ToDegrees[F AngularFormat](rad Fixed[F]) Fixed[F] { return rad.Mul(Rad2Deg[F]()) }

// WrapAngle360 reduces deg into [0°,360°)
func WrapAngle360[F AngularFormat](deg Fixed[F]) Fixed[F] {
	full := int64(anglesOf[F]().deg360)
	r := deg.wide() % full
	if r < 0 {
		r += full
	}
	return FromRaw[F](r)
}

// WrapAngle180 reduces deg into (-180°,180°]
func WrapAngle180[F AngularFormat](deg Fixed[F]) Fixed[F] {
	t := anglesOf[F]()
	r := WrapAngle360(deg).wide()
	if r > int64(t.deg180) {
		r -= int64(t.deg360)
	}
	return FromRaw[F](r)
}
