package core

import "math"

// Interval represents a closed range of real values used to bound
// acceptable intersection parameters.
type Interval struct {
	Min, Max float64
}

// EmptyInterval contains no values: Min > Max, so Contains and
// Surrounds are false for every finite x.
var EmptyInterval = Interval{Min: math.Inf(1), Max: math.Inf(-1)}

// UniverseInterval contains every value.
var UniverseInterval = Interval{Min: math.Inf(-1), Max: math.Inf(1)}

// NewInterval creates an interval with the given bounds
func NewInterval(min, max float64) Interval {
	return Interval{Min: min, Max: max}
}

// Size returns the extent of the interval
func (i Interval) Size() float64 {
	return i.Max - i.Min
}

// Contains reports whether x is within the interval, endpoints included
func (i Interval) Contains(x float64) bool {
	return i.Min <= x && x <= i.Max
}

// Surrounds reports whether x is within the interval, endpoints
// excluded. Intersection code uses this to reject exact boundary roots.
func (i Interval) Surrounds(x float64) bool {
	return i.Min < x && x < i.Max
}

// Clamp projects x onto the interval
func (i Interval) Clamp(x float64) float64 {
	if x < i.Min {
		return i.Min
	}
	if x > i.Max {
		return i.Max
	}
	return x
}
