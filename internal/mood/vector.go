package mood

import (
	"fmt"
	"math"
)

// Vector holds one value per mood, indexed by Mood.
type Vector [count]float64

func (v Vector) Get(m Mood) float64 {
	return v[m]
}

// Add returns the element-wise sum of v and other.
func (v Vector) Add(other Vector) Vector {
	for _, m := range All {
		v[m] += other[m]
	}
	return v
}

// Sum adds the components in canonical order.
func (v Vector) Sum() float64 {
	var total float64
	for _, m := range All {
		total += v[m]
	}
	return total
}

// Validate rejects negative, NaN and infinite components.
func (v Vector) Validate() error {
	for _, m := range All {
		w := v[m]
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return &InvalidWeightError{Mood: m, Value: w}
		}
	}
	return nil
}

// Map returns the vector keyed by mood name.
func (v Vector) Map() map[string]float64 {
	out := make(map[string]float64, len(All))
	for _, m := range All {
		out[m.String()] = v[m]
	}
	return out
}

// FromMap builds a vector from mood-name keys. Unknown names and names that
// resolve to the same mood are rejected; absent moods are zero.
func FromMap(in map[string]float64) (Vector, error) {
	var v Vector
	var seen [count]bool
	for name, value := range in {
		m, err := Parse(name)
		if err != nil {
			return Vector{}, err
		}
		if seen[m] {
			return Vector{}, fmt.Errorf("mood %s given more than once", m)
		}
		seen[m] = true
		v[m] = value
	}
	return v, nil
}

type InvalidWeightError struct {
	Mood  Mood
	Value float64
}

func (e *InvalidWeightError) Error() string {
	return "invalid weight for " + e.Mood.String() + ": must be a finite non-negative number"
}
