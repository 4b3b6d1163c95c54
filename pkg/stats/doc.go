// Package stats provides the point-estimate and credible-interval
// computations behind the density summarizer.
//
// Centrality statistics (mean, median, MAP) and interval methods (ETI, HDI)
// are deterministic: the MAP estimate uses a closed-form Gaussian kernel
// density estimate with Silverman's bandwidth rule rather than a stochastic
// smoother, so repeated calls on the same input always agree.
//
// Simple descriptive statistics delegate to montanaflynn/stats; quantiles
// and dispersion use gonum/stat.
package stats
