package wfsa

import (
	"math"
	"strconv"
)

// Semiring identifies the weight algebra an automaton is defined over.
// Two automata share a semiring only when their identifiers are equal;
// isomorphic but distinct semirings are considered different.
type Semiring string

const (
	Boolean  Semiring = "boolean"
	Real     Semiring = "real"
	Tropical Semiring = "tropical"
)

// String returns the semiring name.
func (r Semiring) String() string {
	return string(r)
}

// Zero returns the additive identity of the semiring.
func (r Semiring) Zero() Weight {
	switch r {
	case Boolean:
		return BoolWeight(false)
	case Real:
		return RealWeight(0)
	case Tropical:
		return TropicalWeight(math.Inf(1))
	}
	return nil
}

// One returns the multiplicative identity of the semiring.
func (r Semiring) One() Weight {
	switch r {
	case Boolean:
		return BoolWeight(true)
	case Real:
		return RealWeight(1)
	case Tropical:
		return TropicalWeight(0)
	}
	return nil
}

// Weight is an opaque semiring element. Weights support equality and
// stringification only; semiring arithmetic is out of scope here.
// Weights from different semirings are never equal.
type Weight interface {
	Semiring() Semiring
	Equal(other Weight) bool
	String() string
}

// BoolWeight is a weight in the Boolean semiring.
type BoolWeight bool

func (w BoolWeight) Semiring() Semiring { return Boolean }

func (w BoolWeight) Equal(other Weight) bool {
	o, ok := other.(BoolWeight)
	return ok && w == o
}

func (w BoolWeight) String() string {
	return strconv.FormatBool(bool(w))
}

// RealWeight is a weight in the Real semiring.
type RealWeight float64

func (w RealWeight) Semiring() Semiring { return Real }

func (w RealWeight) Equal(other Weight) bool {
	o, ok := other.(RealWeight)
	return ok && w == o
}

func (w RealWeight) String() string {
	return strconv.FormatFloat(float64(w), 'g', -1, 64)
}

// TropicalWeight is a weight in the Tropical (min-plus) semiring.
type TropicalWeight float64

func (w TropicalWeight) Semiring() Semiring { return Tropical }

func (w TropicalWeight) Equal(other Weight) bool {
	o, ok := other.(TropicalWeight)
	return ok && w == o
}

func (w TropicalWeight) String() string {
	if math.IsInf(float64(w), 1) {
		return "inf"
	}
	return strconv.FormatFloat(float64(w), 'g', -1, 64)
}
