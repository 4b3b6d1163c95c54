package stats

import (
	"fmt"

	mfstats "github.com/montanaflynn/stats"
)

// Mean returns the arithmetic mean of xs.
func Mean(xs []float64) (float64, error) {
	m, err := mfstats.Mean(xs)
	if err != nil {
		return 0, fmt.Errorf("mean: %w", err)
	}
	return m, nil
}

// Median returns the median of xs. The input is not modified.
func Median(xs []float64) (float64, error) {
	m, err := mfstats.Median(xs)
	if err != nil {
		return 0, fmt.Errorf("median: %w", err)
	}
	return m, nil
}

// MAP returns the maximum a posteriori estimate of xs: the location of the
// highest point of a Gaussian kernel density estimate over the sample.
//
// The estimate is deterministic (see [Estimate] for the bandwidth rule).
// For a sample with zero spread it returns the common value directly.
func MAP(xs []float64) (float64, error) {
	if len(xs) == 0 {
		return 0, fmt.Errorf("map: empty input")
	}

	kde, err := Estimate(xs, DefaultGridSize)
	if err != nil {
		return 0, err
	}

	best := 0
	for i, d := range kde.Density {
		if d > kde.Density[best] {
			best = i
		}
	}
	return kde.X[best], nil
}
