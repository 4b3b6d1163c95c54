package summarize

import (
	"io"

	"github.com/charmbracelet/log"

	apperrors "github.com/credplot/credplot/pkg/errors"
)

// Default option values.
const (
	DefaultCentrality = apperrors.CentralityMedian
	DefaultCI         = 0.95
	DefaultMethod     = apperrors.IntervalETI
)

// Options configures a summarization run.
type Options struct {
	// Centrality selects the point-estimate statistic: "median" (default),
	// "mean" or "map".
	Centrality string `json:"centrality,omitempty"`

	// CI is the credible-mass fraction in (0, 1]. Defaults to 0.95.
	CI float64 `json:"ci,omitempty"`

	// Method selects the interval type: "eti" (equal-tailed, default) or
	// "hdi" (highest density).
	Method string `json:"method,omitempty"`

	// Strict controls the classification-join policy. When false (default),
	// sample rows whose parameter has no classification in the model are
	// dropped with a warning. When true, an unmatched parameter is an error.
	Strict bool `json:"strict,omitempty"`

	// Logger receives join warnings and debug output. Defaults to a
	// discarding logger.
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks option values and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Centrality == "" {
		o.Centrality = DefaultCentrality
	}
	if o.CI == 0 {
		o.CI = DefaultCI
	}
	if o.Method == "" {
		o.Method = DefaultMethod
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	if err := apperrors.ValidateCentrality(o.Centrality); err != nil {
		return err
	}
	if err := apperrors.ValidateIntervalMethod(o.Method); err != nil {
		return err
	}
	if err := apperrors.ValidateIntervalMass(o.CI); err != nil {
		return err
	}

	o.validated = true
	return nil
}
