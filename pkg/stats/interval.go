package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ETI returns the equal-tailed credible interval containing the given
// probability mass: the (1-mass)/2 and (1+mass)/2 quantiles of xs.
// mass must be in (0, 1]; a mass of 1 returns the full sample range.
func ETI(xs []float64, mass float64) (low, high float64, err error) {
	if err := checkInterval(xs, mass); err != nil {
		return 0, 0, err
	}

	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	if mass == 1 {
		return sorted[0], sorted[len(sorted)-1], nil
	}

	tail := (1 - mass) / 2
	low = stat.Quantile(tail, stat.Empirical, sorted, nil)
	high = stat.Quantile(1-tail, stat.Empirical, sorted, nil)
	return low, high, nil
}

// HDI returns the highest density interval containing the given probability
// mass: the narrowest contiguous window of the sorted sample covering
// ceil(mass*n) observations. mass must be in (0, 1].
//
// For multimodal distributions the single narrowest window is returned; the
// disjoint-interval case is not handled.
func HDI(xs []float64, mass float64) (low, high float64, err error) {
	if err := checkInterval(xs, mass); err != nil {
		return 0, 0, err
	}

	sorted := make([]float64, len(xs))
	copy(sorted, xs)
	sort.Float64s(sorted)

	n := len(sorted)
	window := int(math.Ceil(mass * float64(n)))
	if window >= n {
		return sorted[0], sorted[n-1], nil
	}
	if window < 2 {
		window = 2
	}

	bestStart := 0
	bestWidth := sorted[window-1] - sorted[0]
	for i := 1; i+window <= n; i++ {
		width := sorted[i+window-1] - sorted[i]
		if width < bestWidth {
			bestWidth = width
			bestStart = i
		}
	}
	return sorted[bestStart], sorted[bestStart+window-1], nil
}

func checkInterval(xs []float64, mass float64) error {
	if len(xs) == 0 {
		return fmt.Errorf("interval: empty input")
	}
	if mass <= 0 || mass > 1 {
		return fmt.Errorf("interval: mass %v outside (0, 1]", mass)
	}
	return nil
}
