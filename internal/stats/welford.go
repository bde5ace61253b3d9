// Package stats provides the online and small-scale statistical routines
// used by the aggregators: Welford mean/variance, linear-interpolation
// percentiles, and bounded Top-K selection.
package stats

import "math"

// Welford computes a running mean and variance in a single pass without
// storing observed values, using Welford's online algorithm.
type Welford struct {
	count int
	mean  float64
	m2    float64
}

// Update incorporates one observation.
func (w *Welford) Update(value float64) {
	w.count++
	delta := value - w.mean
	w.mean += delta / float64(w.count)
	w.m2 += delta * (value - w.mean)
}

// Count returns the number of observations seen.
func (w *Welford) Count() int { return w.count }

// Mean returns the running mean, 0 if no observations.
func (w *Welford) Mean() float64 { return w.mean }

// Variance returns the population variance, 0 for fewer than two
// observations.
func (w *Welford) Variance() float64 {
	if w.count < 2 {
		return 0
	}
	return w.m2 / float64(w.count)
}

// StdDev returns the population standard deviation.
func (w *Welford) StdDev() float64 {
	return math.Sqrt(w.Variance())
}

// ZScore returns how many standard deviations value lies from the mean.
// A zero standard deviation yields 0 so that degenerate distributions
// produce no outliers.
func (w *Welford) ZScore(value float64) float64 {
	sd := w.StdDev()
	if sd == 0 {
		return 0
	}
	return (value - w.mean) / sd
}
