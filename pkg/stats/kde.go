package stats

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// DefaultGridSize is the number of evaluation points for density estimates.
const DefaultGridSize = 512

// gridPadding extends the evaluation grid this many bandwidths beyond the
// sample range so the density tails reach (near) zero.
const gridPadding = 3.0

// KDE holds a kernel density estimate evaluated on a fixed grid.
type KDE struct {
	X       []float64 // evaluation grid, ascending
	Density []float64 // density at each grid point
}

// Estimate computes a Gaussian kernel density estimate of xs on a grid of
// the given size.
//
// The bandwidth follows Silverman's rule of thumb,
// 0.9 * min(sd, iqr/1.349) * n^(-1/5), which is closed form and therefore
// deterministic. A zero-spread sample produces a narrow spike centered on
// the common value.
func Estimate(xs []float64, gridSize int) (*KDE, error) {
	n := len(xs)
	if n == 0 {
		return nil, fmt.Errorf("kde: empty input")
	}
	if gridSize < 2 {
		gridSize = DefaultGridSize
	}

	h := Bandwidth(xs)
	min, max := minMax(xs)
	if h <= 0 {
		// Degenerate sample (all values equal). Use a tiny bandwidth so the
		// grid still spans a nonzero interval.
		h = math.Max(math.Abs(min)*1e-3, 1e-3)
	}

	lo := min - gridPadding*h
	hi := max + gridPadding*h
	step := (hi - lo) / float64(gridSize-1)

	kde := &KDE{
		X:       make([]float64, gridSize),
		Density: make([]float64, gridSize),
	}

	norm := 1 / (float64(n) * h * math.Sqrt(2*math.Pi))
	for i := 0; i < gridSize; i++ {
		g := lo + float64(i)*step
		kde.X[i] = g
		sum := 0.0
		for _, x := range xs {
			u := (g - x) / h
			sum += math.Exp(-0.5 * u * u)
		}
		kde.Density[i] = sum * norm
	}

	return kde, nil
}

// Bandwidth returns Silverman's rule-of-thumb bandwidth for xs.
// Returns 0 for samples with no spread.
func Bandwidth(xs []float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}

	sorted := make([]float64, n)
	copy(sorted, xs)
	sort.Float64s(sorted)

	sd := stat.StdDev(sorted, nil)
	iqr := stat.Quantile(0.75, stat.Empirical, sorted, nil) -
		stat.Quantile(0.25, stat.Empirical, sorted, nil)

	spread := sd
	if iqr > 0 && iqr/1.349 < spread {
		spread = iqr / 1.349
	}
	if spread <= 0 || math.IsNaN(spread) {
		return 0
	}

	return 0.9 * spread * math.Pow(float64(n), -0.2)
}

func minMax(xs []float64) (min, max float64) {
	min, max = xs[0], xs[0]
	for _, x := range xs[1:] {
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}
	return min, max
}
