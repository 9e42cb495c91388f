package transform

import "math"

// Scores are conceptually signed 16-bit; nudging computes in wider precision
// and saturates back at the end.

func saturateToInt16(v int) int16 {
	if v > math.MaxInt16 {
		return math.MaxInt16
	}
	if v < math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

// saturateFloatToInt16 truncates toward zero, then clamps.
func saturateFloatToInt16(v float64) int16 {
	if v >= math.MaxInt16 {
		return math.MaxInt16
	}
	if v <= math.MinInt16 {
		return math.MinInt16
	}
	return int16(v)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// nudge adjusts staticEval toward deepEval under the configured mode.
func nudge(params *NudgedStaticParams, staticEval, deepEval int16) int16 {
	var staticScore = int(staticEval)
	var deepScore = int(deepEval)

	switch params.Mode {
	case ModeAbsolute:
		return saturateToInt16(
			staticScore + clampInt(
				deepScore-staticScore,
				-params.AbsoluteNudge,
				params.AbsoluteNudge))

	case ModeRelative:
		// Zero static score keeps the ratio undefined; leave it unchanged.
		if staticEval == 0 {
			return staticEval
		}
		var ratio = clampFloat(
			float64(deepScore)/float64(staticScore),
			1-params.RelativeNudge,
			1+params.RelativeNudge)
		return saturateFloatToInt16(float64(staticScore) * ratio)

	case ModeInterpolate:
		return saturateFloatToInt16(
			float64(staticScore)*(1-params.InterpolateNudge) +
				float64(deepScore)*params.InterpolateNudge)
	}
	return 0
}
