package transform

import (
	"math"
	"testing"
)

var scoreSamples = []int16{math.MinInt16, -5000, -1234, -100, -1, 0, 1, 77, 100, 5000, math.MaxInt16}

func TestNudgeAbsolute(t *testing.T) {
	var tests = []struct {
		cap          int
		static, deep int16
		want         int16
	}{
		{10, 100, 200, 110},
		{10, 100, 50, 90},
		{10, 100, 105, 105},
		{10, 100, 100, 100},
		{0, 100, 200, 100},
		{5, -100, -200, -105},
		{100000, math.MaxInt16, math.MinInt16, math.MinInt16},
	}
	for _, test := range tests {
		var params = newNudgedStaticParams()
		params.Mode = ModeAbsolute
		params.AbsoluteNudge = test.cap
		var got = nudge(&params, test.static, test.deep)
		if got != test.want {
			t.Error(test, got)
		}
	}
}

func TestNudgeAbsoluteBounds(t *testing.T) {
	for _, cap := range []int{0, 1, 10, 500} {
		var params = newNudgedStaticParams()
		params.Mode = ModeAbsolute
		params.AbsoluteNudge = cap
		for _, static := range scoreSamples {
			for _, deep := range scoreSamples {
				var got = int(nudge(&params, static, deep))
				var lo = clampInt(int(static)-cap, math.MinInt16, math.MaxInt16)
				var hi = clampInt(int(static)+cap, math.MinInt16, math.MaxInt16)
				if got < lo || got > hi {
					t.Error(cap, static, deep, got)
				}
				if deep == static && got != int(static) {
					t.Error(cap, static, deep, got)
				}
			}
		}
	}
}

func TestNudgeRelative(t *testing.T) {
	var params = newNudgedStaticParams()
	params.Mode = ModeRelative
	params.RelativeNudge = 0.1

	if got := nudge(&params, 100, 200); got != 110 {
		t.Error(got)
	}
	if got := nudge(&params, 100, 50); got != 90 {
		t.Error(got)
	}
	if got := nudge(&params, 100, 105); got != 105 {
		t.Error(got)
	}
	// zero static score is left unchanged
	if got := nudge(&params, 0, 500); got != 0 {
		t.Error(got)
	}
}

func TestNudgeRelativeBounds(t *testing.T) {
	var params = newNudgedStaticParams()
	params.Mode = ModeRelative
	params.RelativeNudge = 0.25
	for _, static := range scoreSamples {
		if static == 0 {
			continue
		}
		for _, deep := range scoreSamples {
			var got = nudge(&params, static, deep)
			var lo = float64(static) * 0.75
			var hi = float64(static) * 1.25
			if lo > hi {
				lo, hi = hi, lo
			}
			// truncation and saturation only shrink the magnitude
			if float64(got) < math.Max(lo, math.MinInt16)-1 ||
				float64(got) > math.Min(hi, math.MaxInt16)+1 {
				t.Error(static, deep, got)
			}
		}
	}
}

func TestNudgeInterpolate(t *testing.T) {
	var params = newNudgedStaticParams()
	params.Mode = ModeInterpolate
	for _, static := range scoreSamples {
		for _, deep := range scoreSamples {
			params.InterpolateNudge = 0
			if got := nudge(&params, static, deep); got != static {
				t.Error(static, deep, got)
			}
			params.InterpolateNudge = 1
			if got := nudge(&params, static, deep); got != deep {
				t.Error(static, deep, got)
			}
		}
	}
	params.InterpolateNudge = 0.5
	if got := nudge(&params, 100, 200); got != 150 {
		t.Error(got)
	}
}

func TestSaturateIdempotent(t *testing.T) {
	for _, v := range []int{math.MinInt32, -40000, math.MinInt16, -1, 0, 1, math.MaxInt16, 40000, math.MaxInt32} {
		var once = saturateToInt16(v)
		var twice = saturateToInt16(int(once))
		if once != twice {
			t.Error(v, once, twice)
		}
	}
	for _, v := range []float64{-1e9, -32768.9, -0.5, 0, 0.5, 32767.9, 1e9} {
		var once = saturateFloatToInt16(v)
		var twice = saturateFloatToInt16(float64(once))
		if once != twice {
			t.Error(v, once, twice)
		}
	}
}
