package plot

import (
	"math"
	"strconv"

	gplot "gonum.org/v1/plot"
)

// rangeTicks returns labelled ticks at lo, lo+step, ... up to but not
// including hi. Labels use just enough decimals to show step.
func rangeTicks(lo, hi, step float64) []gplot.Tick {
	if step <= 0 || hi <= lo {
		return nil
	}
	prec := decimalsFor(step)
	n := int(math.Ceil((hi-lo)/step - 1e-9))
	ticks := make([]gplot.Tick, 0, n)
	for i := 0; i < n; i++ {
		v := lo + float64(i)*step
		// Avoid "-0.00" style labels from accumulated error.
		if math.Abs(v) < step*1e-9 {
			v = 0
		}
		ticks = append(ticks, gplot.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', prec, 64)})
	}
	return ticks
}

// decimalsFor returns how many decimals are needed to print multiples of
// step, capped at 6.
func decimalsFor(step float64) int {
	for d := 0; d < 6; d++ {
		scaled := step * math.Pow10(d)
		if math.Abs(scaled-math.Round(scaled)) < 1e-9 {
			return d
		}
	}
	return 6
}
