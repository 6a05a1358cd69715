package fixed

// --- Trigonometry ---
// Angles are in degrees of the same format as the result.

// Sin rounds deg to the nearest whole degree and reads the sine table
func Sin[F AngularFormat](deg Fixed[F]) Fixed[F] {
	i := deg.RoundNearest().ToInt() % 360
	if i < 0 {
		i += 360
	}
	return Fixed[F]{raw: anglesOf[F]().sin[i]}
}

func Cos[F AngularFormat](deg Fixed[F]) Fixed[F] {
	return Sin(deg.Add(Deg90[F]()))
}

// SinTable returns a copy of the sine table of F, indexed by whole degree
func SinTable[F AngularFormat]() [360]Fixed[F] {
	var out [360]Fixed[F]
	for i, r := range anglesOf[F]().sin {
		out[i] = Fixed[F]{raw: r}
	}
	return out
}

func clampUnit[F AngularFormat](x Fixed[F]) Fixed[F] {
	one := One[F]()
	return Clamp(x, one.Neg(), one)
}

// Acos is the cubic approximation 90° - (x + x³/6)·180/π, clamped to [0°,180°].
// Max error is about 23° near x = ±1; use AcosLUT where that matters.
func Acos[F AngularFormat](x Fixed[F]) Fixed[F] {
	t := anglesOf[F]()
	x = clampUnit(x)
	series := x.Add(x.Mul(x).Mul(x).Mul(Fixed[F]{raw: t.sixth}))
	deg := Deg90[F]().Sub(series.Mul(Fixed[F]{raw: t.rad2deg}))
	return Clamp(deg, Zero[F](), Deg180[F]())
}

// AcosLUT inverts the sine table: it finds the last whole degree k in [0,180]
// with cos(k) >= x and interpolates linearly toward k+1.
// Max error: 0.07° in Q16.16, 4.1° in Q16.8, 19.4° in Q16.4.
func AcosLUT[F AngularFormat](x Fixed[F]) Fixed[F] {
	t := anglesOf[F]()
	fb := DescriptorOf[F]().FractionBits
	v := int64(clampUnit(x).raw)
	cos := func(k int) int64 { return int64(t.sin[(k+90)%360]) }

	lo, hi := 0, 180
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if cos(mid) >= v {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	k := lo
	if k == 180 {
		return Deg180[F]()
	}
	var frac int64
	if c0, c1 := cos(k), cos(k+1); c0 > c1 {
		frac = ((c0 - v) << fb) / (c0 - c1)
	}
	return FromRaw[F](int64(k)<<fb + frac)
}

// Atan2 returns the angle of (x,y) in [0°,360°), with Atan2(0,0) = 0.
// Each half-plane is approximated around a 45° or 135° base by
// r·(11.25°·r² - 56.25°), r being the rotated slope in [-1,1]. Max error 0.6°.
func Atan2[F AngularFormat](y, x Fixed[F]) Fixed[F] {
	t := anglesOf[F]()
	fb := DescriptorOf[F]().FractionBits
	xr, yr := int64(x.raw), int64(y.raw)
	if xr == 0 && yr == 0 {
		return Fixed[F]{}
	}
	ay := yr
	if ay < 0 {
		ay = -ay
	}

	var angle int64
	if xr == 0 {
		angle = int64(t.deg90)
	} else {
		var r, base int64
		if xr > 0 {
			r = ((xr - ay) << fb) / (xr + ay)
			base = int64(t.deg45)
		} else {
			r = ((xr + ay) << fb) / (ay - xr)
			base = int64(t.deg135)
		}
		poly := (((int64(t.atanCubic)*r)>>fb)*r)>>fb - int64(t.atanLin)
		angle = base + (r*poly)>>fb
	}

	if yr < 0 {
		angle = -angle
	}
	if angle < 0 {
		angle += int64(t.deg360)
	}
	if angle >= int64(t.deg360) {
		angle -= int64(t.deg360)
	}
	return FromRaw[F](angle)
}
