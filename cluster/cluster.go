// Package cluster composes the morphology statistics into the full
// alignment-parameter pipeline for a single core catalog: an unweighted
// and a weighted PCA pass, minor-axis scale extraction, and the pairwise
// alignment statistic.
package cluster

import (
	"fmt"
	"math"

	"github.com/astroquant/corealign/algorithms/common"
	"github.com/astroquant/corealign/algorithms/morphology"
	"github.com/astroquant/corealign/logging"
)

// CoreCatalog holds the core positions of one cluster, in pixels.
// A nil Weight means every core counts equally.
type CoreCatalog struct {
	X      []float64 `json:"x"`
	Y      []float64 `json:"y"`
	Weight []float64 `json:"weight,omitempty"`
}

// NumCores returns the number of cores in the catalog
func (c *CoreCatalog) NumCores() int {
	return len(c.X)
}

// Config holds configuration for alignment analysis
type Config struct {
	// RequireFiniteScales rejects catalogs whose minor-axis spread is zero
	// or non-finite (perfectly collinear or coincident cores) instead of
	// letting Inf/NaN propagate into the alignment parameters
	RequireFiniteScales bool `json:"require_finite_scales"`

	// ComputeSeparationSummary adds descriptive statistics of the
	// normalized pairwise separations to the result
	ComputeSeparationSummary bool `json:"compute_separation_summary"`
}

// DefaultConfig returns the default analysis configuration
func DefaultConfig() *Config {
	return &Config{
		RequireFiniteScales:      true,
		ComputeSeparationSummary: true,
	}
}

// Result bundles everything one analysis pass produces
type Result struct {
	PCA         *morphology.PCAResult `json:"pca"`
	WeightedPCA *morphology.PCAResult `json:"weighted_pca"`

	// ScaleUnweighted and ScaleWeighted are the minor-axis scales (square
	// roots of the smaller eigenvalue) of the two PCA passes
	ScaleUnweighted float64 `json:"scale_unweighted"`
	ScaleWeighted   float64 `json:"scale_weighted"`

	Alignment *morphology.AlignmentResult `json:"alignment"`

	SeparationSummary *SeparationSummary `json:"separation_summary,omitempty"`
}

// Analyzer computes alignment parameters for core catalogs
type Analyzer struct {
	config *Config
	logger logging.Logger
}

// NewAnalyzer creates an analyzer with the given configuration, falling
// back to DefaultConfig when config is nil
func NewAnalyzer(config *Config) *Analyzer {
	if config == nil {
		config = DefaultConfig()
	}

	logger := logging.WithFields(logging.Fields{
		"component": "cluster_analyzer",
	})

	return &Analyzer{
		config: config,
		logger: logger,
	}
}

// Analyze runs the full alignment-parameter pipeline over one catalog
func (a *Analyzer) Analyze(catalog *CoreCatalog) (*Result, error) {
	if catalog == nil {
		return nil, fmt.Errorf("nil catalog")
	}

	weights := catalog.Weight
	if weights == nil {
		weights = common.UniformWeights(catalog.NumCores())
	}

	pca, err := morphology.PrincipalAxes(catalog.X, catalog.Y)
	if err != nil {
		return nil, fmt.Errorf("unweighted PCA: %w", err)
	}

	weightedPCA, err := morphology.WeightedPrincipalAxes(catalog.X, catalog.Y, weights)
	if err != nil {
		return nil, fmt.Errorf("weighted PCA: %w", err)
	}

	result := &Result{
		PCA:             pca,
		WeightedPCA:     weightedPCA,
		ScaleUnweighted: pca.MinorAxisScale(),
		ScaleWeighted:   weightedPCA.MinorAxisScale(),
	}

	// The small-N sentinel path never divides by a scale, so the guard
	// only applies to catalogs with enough cores for pairwise statistics
	if a.config.RequireFiniteScales && catalog.NumCores() >= 3 {
		if !usableScale(result.ScaleUnweighted) || !usableScale(result.ScaleWeighted) {
			return nil, fmt.Errorf("degenerate minor-axis scale (unweighted=%g, weighted=%g): cores are collinear or coincident",
				result.ScaleUnweighted, result.ScaleWeighted)
		}
	}

	alignment, err := morphology.AlignmentStatistic(catalog.X, catalog.Y, weights,
		result.ScaleUnweighted, result.ScaleWeighted)
	if err != nil {
		return nil, fmt.Errorf("alignment statistic: %w", err)
	}
	result.Alignment = alignment

	if alignment.Degenerate() {
		a.logger.Warn("too few cores for pairwise statistics", logging.Fields{
			"num_cores": catalog.NumCores(),
		})
		return result, nil
	}

	if a.config.ComputeSeparationSummary {
		summary, err := summarizeSeparations(catalog.X, catalog.Y, result.ScaleUnweighted)
		if err != nil {
			return nil, fmt.Errorf("separation summary: %w", err)
		}
		result.SeparationSummary = summary
	}

	a.logger.Debug("alignment parameters computed", logging.Fields{
		"num_cores": catalog.NumCores(),
		"num_pairs": alignment.NumPairs,
		"al_uw":     alignment.Unweighted,
		"al_w":      alignment.Weighted,
	})

	return result, nil
}

func usableScale(scale float64) bool {
	return scale > 0 && !math.IsInf(scale, 0) && !math.IsNaN(scale)
}
