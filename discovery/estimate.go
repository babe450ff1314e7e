package discovery

import (
	"math"
	"regexp"
	"strconv"
)

// DefaultMinVRAMGB is the catalog min_vram_gb for models of unknown size.
const DefaultMinVRAMGB = 3.0

// fitTolerance absorbs float error when a footprint sits exactly on the
// budget boundary.
const fitTolerance = 1e-9

// paramPattern finds a parameter count such as "8B", "1.5b" or "7 billion".
var paramPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*b(?:illion)?(?:\b|_)`)

// Estimator is a 4-bit quantization size heuristic: a model with P billion
// parameters needs about P*PerBillionGB+OverheadGB gigabytes, and fits a
// budget B when that is at most B*Margin.
type Estimator struct {
	PerBillionGB float64
	OverheadGB   float64
	Margin       float64
}

var (
	// FetchEstimator sizes entries written to the catalog cache. Q4_K_M
	// files run about 0.6 GB per billion parameters plus half a gigabyte of
	// embeddings and metadata. The fit check is strict.
	FetchEstimator = Estimator{PerBillionGB: 0.6, OverheadGB: 0.5, Margin: 1.0}

	// SearchEstimator sizes advisory search hits: 0.55 GB per billion
	// parameters with 10% slack on the budget.
	SearchEstimator = Estimator{PerBillionGB: 0.55, OverheadGB: 0, Margin: 1.1}
)

// Estimate is the outcome of Evaluate. Params and FootprintGB are nil when
// no parameter count could be read from the identifier.
type Estimate struct {
	ParamsB     *float64
	FootprintGB *float64
	Fits        bool
}

// ParseParamBillions returns the first parameter count found in id.
func ParseParamBillions(id string) (float64, bool) {
	m := paramPattern.FindStringSubmatch(id)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Footprint returns the estimated size in GB, rounded to one decimal.
func (e Estimator) Footprint(billions float64) float64 {
	return math.Round((billions*e.PerBillionGB+e.OverheadGB)*10) / 10
}

// Fits reports whether footprintGB fits budgetGB. A budget of zero or less
// means no budget.
func (e Estimator) Fits(footprintGB, budgetGB float64) bool {
	if budgetGB <= 0 {
		return true
	}
	margin := e.Margin
	if margin <= 0 {
		margin = 1
	}
	return footprintGB <= budgetGB*margin+fitTolerance
}

// Evaluate estimates the identifier's size and checks it against the
// budget. Identifiers without a parameter count always fit.
func (e Estimator) Evaluate(id string, budgetGB float64) Estimate {
	params, ok := ParseParamBillions(id)
	if !ok {
		return Estimate{Fits: true}
	}
	footprint := e.Footprint(params)
	return Estimate{
		ParamsB:     &params,
		FootprintGB: &footprint,
		Fits:        e.Fits(footprint, budgetGB),
	}
}
