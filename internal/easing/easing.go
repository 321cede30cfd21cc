// Package easing holds the closed-form shaping curves used by the wing layout.
// All functions are pure and allocation free.
package easing

import "math"

// Impulse is an exponential bump h·e^(1-h) with h = k·x.
// It is 0 at x = 0, reaches its maximum of 1 at x = 1/k and decays after.
// Larger k moves the peak toward the origin and sharpens it.
func Impulse(x, k float64) float64 {
	h := k * x
	return h * math.Exp(1-h)
}

// EaseInOutQuadratic accelerates over the first half of [0, 1] and
// decelerates over the second half.
func EaseInOutQuadratic(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// PCurve is a power curve on [0, 1] that is 0 at both ends and peaks with
// value 1 at x = a/(a+b). Values of a and b must be positive.
func PCurve(x, a, b float64) float64 {
	k := math.Pow(a+b, a+b) / (math.Pow(a, a) * math.Pow(b, b))
	return k * math.Pow(x, a) * math.Pow(1-x, b)
}

// Lerp returns a + (b-a)·t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp01 clamps v to [0, 1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
