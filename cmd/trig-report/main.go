// trig-report measures the fixed-point trig and sqrt routines against float64
// for every angular format and prints a summary table.
package main

import (
	"flag"
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"text/tabwriter"

	"github.com/lixenwraith/fixed-engine/fixed"
)

type stats struct {
	maxErr float64
	sumErr float64
	worst  float64 // input at maxErr
	n      int
}

func (s *stats) add(in, err float64) {
	err = math.Abs(err)
	if err > s.maxErr {
		s.maxErr = err
		s.worst = in
	}
	s.sumErr += err
	s.n++
}

func (s *stats) mean() float64 {
	if s.n == 0 {
		return 0
	}
	return s.sumErr / float64(s.n)
}

type row struct {
	format string
	name   string
	unit   string
	st     stats
}

func measureSin[F fixed.AngularFormat]() stats {
	var st stats
	table := fixed.SinTable[F]()
	for deg := range 360 {
		want := math.Sin(float64(deg) * math.Pi / 180)
		st.add(float64(deg), table[deg].ToFloat()-want)
	}
	return st
}

// measureAcos walks every raw value in [-1,1]
func measureAcos[F fixed.AngularFormat](acos func(fixed.Fixed[F]) fixed.Fixed[F]) stats {
	var st stats
	one := fixed.One[F]().Raw()
	for raw := -one; raw <= one; raw++ {
		x := fixed.FromRaw[F](raw)
		want := math.Acos(x.ToFloat()) * 180 / math.Pi
		st.add(x.ToFloat(), acos(x).ToFloat()-want)
	}
	return st
}

func measureAtan2[F fixed.AngularFormat](rng *rand.Rand, samples int, radius float64) stats {
	var st stats
	for range samples {
		y := fixed.FromFloat[F]((rng.Float64()*2 - 1) * radius)
		x := fixed.FromFloat[F]((rng.Float64()*2 - 1) * radius)
		if x.IsZero() && y.IsZero() {
			continue
		}
		want := math.Atan2(y.ToFloat(), x.ToFloat()) * 180 / math.Pi
		if want < 0 {
			want += 360
		}
		diff := fixed.Atan2(y, x).ToFloat() - want
		// Compare on the circle so 359.9 vs 0.1 counts as 0.2
		diff = math.Mod(diff+540, 360) - 180
		st.add(want, diff)
	}
	return st
}

// measureSqrt reports error in raw units against the exact root
func measureSqrt[F fixed.Format](rng *rand.Rand, samples int) stats {
	var st stats
	maxRaw := fixed.MaxValue[F]().Raw()
	for range samples {
		x := fixed.FromRaw[F](rng.Int64N(maxRaw + 1))
		want := math.Sqrt(x.ToFloat()) * float64(fixed.DescriptorOf[F]().Scale())
		st.add(x.ToFloat(), float64(fixed.Sqrt(x).Raw())-math.Floor(want))
	}
	return st
}

func report[F fixed.AngularFormat](rng *rand.Rand, samples int) []row {
	name := fixed.DescriptorOf[F]().String()
	return []row{
		{name, "sin table", "unit", measureSin[F]()},
		{name, "acos polynomial", "deg", measureAcos(fixed.Acos[F])},
		{name, "acos lut", "deg", measureAcos(fixed.AcosLUT[F])},
		{name, "atan2 unit", "deg", measureAtan2[F](rng, samples, 1)},
		{name, "atan2 wide", "deg", measureAtan2[F](rng, samples, 100)},
		{name, "sqrt", "raw", measureSqrt[F](rng, samples)},
	}
}

func main() {
	samples := flag.Int("samples", 20000, "random samples per atan2/sqrt measurement")
	seed := flag.Uint64("seed", 1, "PRNG seed")
	flag.Parse()

	rng := rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))

	var rows []row
	rows = append(rows, report[fixed.Q16_4](rng, *samples)...)
	rows = append(rows, report[fixed.Q16_8](rng, *samples)...)
	rows = append(rows, report[fixed.Q16_16](rng, *samples)...)

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "FORMAT\tFUNCTION\tUNIT\tMAX ERR\tMEAN ERR\tWORST AT")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.4f\t%.4f\t%.4f\n", r.format, r.name, r.unit, r.st.maxErr, r.st.mean(), r.st.worst)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "write: %v\n", err)
		os.Exit(1)
	}
}
