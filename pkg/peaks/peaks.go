// Package peaks locates shot boundaries in a signal as local maxima whose
// prominence reaches a caller supplied threshold.
package peaks

import (
	"math"

	"github.com/tauraamui/xerror"
)

var (
	ErrInvalidProminence = xerror.New("prominence must be a finite, non-negative number")
	// ErrNoTransitions marks a search which found no boundaries. It is a
	// valid outcome, callers may retry with a lower prominence.
	ErrNoTransitions = xerror.New("no transitions found")
)

// BoundarySet is a strictly increasing list of signal indices.
type BoundarySet []int

func (b BoundarySet) Empty() bool { return len(b) == 0 }

func (b BoundarySet) Len() int { return len(b) }

// Contains reports whether index is one of the boundaries.
func (b BoundarySet) Contains(index int) bool {
	lo, hi := 0, len(b)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case b[mid] == index:
			return true
		case b[mid] < index:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return false
}

// Peak is a local maximum of a signal and its prominence.
type Peak struct {
	Index      int
	Value      float64
	Prominence float64
}

// LocalMaxima finds every index whose value is greater than both
// neighbours. A flat top of equal values counts once, at its midpoint
// rounded down. The first and last samples are never maxima.
func LocalMaxima(x []float64) []int {
	var maxima []int
	n := len(x)
	i := 1
	for i < n-1 {
		if x[i-1] < x[i] {
			ahead := i + 1
			for ahead < n-1 && x[ahead] == x[i] {
				ahead++
			}
			if x[ahead] < x[i] {
				maxima = append(maxima, (i+ahead-1)/2)
				i = ahead
			}
		}
		i++
	}
	return maxima
}

// Prominence is the height of x[peak] above the higher of the two lowest
// points reached walking left and right from it before meeting a
// strictly higher sample or the signal's end.
func Prominence(x []float64, peak int) float64 {
	height := x[peak]

	leftMin := height
	for i := peak; i >= 0 && x[i] <= height; i-- {
		if x[i] < leftMin {
			leftMin = x[i]
		}
	}

	rightMin := height
	for i := peak; i < len(x) && x[i] <= height; i++ {
		if x[i] < rightMin {
			rightMin = x[i]
		}
	}

	return height - math.Max(leftMin, rightMin)
}

// Prominences lists every local maximum of x with its prominence.
func Prominences(x []float64) []Peak {
	maxima := LocalMaxima(x)
	found := make([]Peak, 0, len(maxima))
	for _, m := range maxima {
		found = append(found, Peak{Index: m, Value: x[m], Prominence: Prominence(x, m)})
	}
	return found
}

// FindPeaks returns the local maxima of x with prominence of at least
// prominence. Raising prominence only ever removes boundaries.
func FindPeaks(x []float64, prominence float64) BoundarySet {
	boundaries := BoundarySet{}
	for _, p := range Prominences(x) {
		if p.Prominence >= prominence {
			boundaries = append(boundaries, p.Index)
		}
	}
	return boundaries
}

// Find validates prominence before searching and reports an empty result
// as ErrNoTransitions.
func Find(x []float64, prominence float64) (BoundarySet, error) {
	if math.IsNaN(prominence) || math.IsInf(prominence, 0) || prominence < 0 {
		return nil, xerror.Errorf("%w: got %v", ErrInvalidProminence, prominence)
	}
	boundaries := FindPeaks(x, prominence)
	if boundaries.Empty() {
		return boundaries, ErrNoTransitions
	}
	return boundaries, nil
}
