package phicp

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// PreciseTicks places major ticks on round values with enough digits to tell
// them apart, plus unlabelled minor ticks between them.
type PreciseTicks struct {
	NSuggestedTicks int
}

func (t PreciseTicks) Ticks(min, max float64) []plot.Tick {
	n := t.NSuggestedTicks
	if n < 2 {
		n = 4
	}
	if !(max > min) {
		return []plot.Tick{{Value: min, Label: formatFloatTick(min, -1)}}
	}

	major, div := tickSpacing(max-min, n)
	minor := major / float64(div)
	prec := -int(math.Floor(math.Log10(major))) // decimal places of a major label

	// ticks are integer multiples of the minor spacing
	const eps = 1e-9
	var ticks []plot.Tick
	for k := int(math.Ceil(min/minor - eps)); k <= int(math.Floor(max/minor+eps)); k++ {
		v := float64(k) * minor
		if k%div != 0 {
			ticks = append(ticks, plot.Tick{Value: v})
			continue
		}
		v = round(v, prec)
		ticks = append(ticks, plot.Tick{Value: v, Label: formatFloatTick(v, -1)})
	}
	return ticks
}

// tickSpacing returns the major tick spacing for about n labels across width
// and the number of minor intervals per major one.
func tickSpacing(width float64, n int) (major float64, div int) {
	tens := math.Pow10(int(math.Floor(math.Log10(width))))
	for width/tens < float64(n-1) {
		tens /= 10
	}

	mult := int(width / tens / float64(n-1))
	switch mult {
	case 0:
		mult = 1
	case 7:
		mult = 6
	case 9:
		mult = 8
	}

	div = 2
	switch mult {
	case 3, 6:
		div = 3
	case 5:
		div = 5
	}
	return float64(mult) * tens, div
}

// AngleTicks labels an angular axis in multiples of π/Div, with minor ticks
// at a quarter of that spacing. Div defaults to 2.
type AngleTicks struct {
	Div int
}

func (t AngleTicks) Ticks(min, max float64) []plot.Tick {
	div := t.Div
	if div < 1 {
		div = 2
	}
	major := math.Pi / float64(div)
	minor := major / 4

	var ticks []plot.Tick
	for i := int(math.Ceil(min/minor - 1e-9)); float64(i)*minor <= max+1e-9; i++ {
		v := float64(i) * minor
		if i%4 != 0 {
			ticks = append(ticks, plot.Tick{Value: v})
			continue
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: piLabel(i/4, div)})
	}
	return ticks
}

// piLabel formats num·π/den in lowest terms.
func piLabel(num, den int) string {
	if num == 0 {
		return "0"
	}
	g := gcd(abs(num), den)
	num, den = num/g, den/g

	s := "π"
	switch num {
	case 1:
	case -1:
		s = "-π"
	default:
		s = strconv.Itoa(num) + "π"
	}
	if den != 1 {
		s += "/" + strconv.Itoa(den)
	}
	return s
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func round(x float64, prec int) float64 {
	if x == 0 {
		return 0
	}
	if prec >= 0 && x == math.Trunc(x) {
		return x
	}
	pow := math.Pow10(prec)
	scaled := x * pow
	if math.IsInf(scaled, 0) {
		return x
	}
	r := math.Round(scaled)
	if r == 0 {
		return 0
	}
	return r / pow
}

func formatFloatTick(v float64, prec int) string {
	return strconv.FormatFloat(v, 'g', prec, 64)
}
