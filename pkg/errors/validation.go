package errors

// Centrality method names accepted by the summarizer.
const (
	CentralityMedian = "median"
	CentralityMean   = "mean"
	CentralityMAP    = "map"
)

// Interval method names accepted by the summarizer.
const (
	IntervalETI = "eti"
	IntervalHDI = "hdi"
)

// ValidCentralities is the set of recognized centrality methods.
var ValidCentralities = map[string]bool{
	CentralityMedian: true,
	CentralityMean:   true,
	CentralityMAP:    true,
}

// ValidIntervalMethods is the set of recognized interval methods.
var ValidIntervalMethods = map[string]bool{
	IntervalETI: true,
	IntervalHDI: true,
}

// ValidateCentrality checks that name is a recognized centrality method.
func ValidateCentrality(name string) error {
	if !ValidCentralities[name] {
		return New(ErrCodeInvalidCentrality,
			"unknown centrality %q (must be one of: median, mean, map)", name)
	}
	return nil
}

// ValidateIntervalMethod checks that name is a recognized interval method.
func ValidateIntervalMethod(name string) error {
	if !ValidIntervalMethods[name] {
		return New(ErrCodeInvalidMethod,
			"unknown interval method %q (must be one of: eti, hdi)", name)
	}
	return nil
}

// ValidateIntervalMass checks that the credible-mass fraction is in (0, 1].
func ValidateIntervalMass(mass float64) error {
	if mass <= 0 || mass > 1 {
		return New(ErrCodeInvalidInterval,
			"credible mass %v outside (0, 1]", mass)
	}
	return nil
}
