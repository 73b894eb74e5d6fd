package utils

import (
	"math"
)

// Fl is the pixel unit used through the whole engine.
type Fl = float64

func MinInt(x, y int) int {
	if x < y {
		return x
	}
	return y
}

func MaxInt(x, y int) int {
	if x > y {
		return x
	}
	return y
}

func MinF(x, y Fl) Fl {
	if x < y {
		return x
	}
	return y
}

func MaxF(x, y Fl) Fl {
	if x > y {
		return x
	}
	return y
}

func Maxs(values ...Fl) Fl {
	max := values[0]
	for _, w := range values {
		if w > max {
			max = w
		}
	}
	return max
}

func Mins(values ...Fl) Fl {
	min := values[0]
	for _, w := range values {
		if w < min {
			min = w
		}
	}
	return min
}

// IsFinite reports whether v is neither NaN nor an infinity.
func IsFinite(v Fl) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// FirstFinite returns the first finite value in `values`, or 0 when
// none is. It is the terminal step of every measurement fallback chain:
// geometry that could not be resolved is passed along as NaN and replaced
// here by the next candidate.
func FirstFinite(values ...Fl) Fl {
	for _, v := range values {
		if IsFinite(v) {
			return v
		}
	}
	return 0
}

// Clamp returns v constrained to [lo, hi]. A non-finite v collapses to lo.
func Clamp(v, lo, hi Fl) Fl {
	if !IsFinite(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// NaN is a convenience for "no value" in fallback chains.
func NaN() Fl { return math.NaN() }

// RoundPrec rounds f with n digits precision
func RoundPrec(f Fl, n int) Fl {
	n10 := math.Pow10(n)
	return math.Round(f*n10) / n10
}

// Round rounds f with 6 digits precision
func Round(f Fl) Fl {
	return RoundPrec(f, 6)
}
