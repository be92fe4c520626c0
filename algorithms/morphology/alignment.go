package morphology

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/astroquant/corealign/algorithms/common"
)

// Sentinel values AlignmentStatistic returns when a catalog has too few
// cores for pairwise statistics. These are defined results, not failures.
const (
	// SinglePointAlignment marks a catalog with a single core
	SinglePointAlignment = -1.0

	// TwoPointAlignment marks a catalog with exactly two cores
	TwoPointAlignment = -2.0
)

// AlignmentResult contains the alignment parameters of a core catalog
type AlignmentResult struct {
	// Unweighted is ALuw, the plain mean of the pairwise separations
	// normalized by the unweighted minor-axis scale
	Unweighted float64 `json:"unweighted"`

	// Weighted is ALw, the wᵢwⱼ-weighted mean of the pairwise separations
	// normalized by the weighted minor-axis scale
	Weighted float64 `json:"weighted"`

	// UnweightedStdErr and WeightedStdErr are the standard errors of the
	// two means over the ordered-pair sample
	UnweightedStdErr float64 `json:"unweighted_std_err"`
	WeightedStdErr   float64 `json:"weighted_std_err"`

	NumPoints int `json:"num_points"`
	NumPairs  int `json:"num_pairs"`
}

// Degenerate reports whether the catalog had too few cores for pairwise
// statistics, in which case Unweighted and Weighted hold the sentinel
// values
func (r *AlignmentResult) Degenerate() bool {
	return r.NumPoints < 3
}

// AlignmentStatistic computes the alignment parameters for a core catalog.
// scaleUnweighted and scaleWeighted are the minor-axis scales obtained
// from the unweighted and weighted PCA passes. Zero or non-finite scales
// are not special-cased: they propagate as Inf/NaN in the result.
//
// Every ordered pair (i, j), i ≠ j, contributes one sample. Each unordered
// pair therefore appears twice with identical values, which leaves the
// means untouched but fixes the sample count at N·(N−1) in the
// standard-error denominators.
func AlignmentStatistic(x, y, weights []float64, scaleUnweighted, scaleWeighted float64) (*AlignmentResult, error) {
	if err := validatePointSet(x, y, weights); err != nil {
		return nil, err
	}

	n := len(x)
	switch n {
	case 1:
		return &AlignmentResult{
			Unweighted: SinglePointAlignment,
			Weighted:   SinglePointAlignment,
			NumPoints:  n,
		}, nil
	case 2:
		return &AlignmentResult{
			Unweighted: TwoPointAlignment,
			Weighted:   TwoPointAlignment,
			NumPoints:  n,
		}, nil
	}

	numPairs := n * (n - 1)
	sepUnweighted := make([]float64, 0, numPairs)
	sepWeighted := make([]float64, 0, numPairs)
	pairWeights := make([]float64, 0, numPairs)

	for i := range n {
		for j := range n {
			if j == i {
				continue
			}
			sep := math.Hypot(x[i]-x[j], y[i]-y[j])
			sepUnweighted = append(sepUnweighted, sep/scaleUnweighted)
			sepWeighted = append(sepWeighted, sep/scaleWeighted)
			pairWeights = append(pairWeights, weights[i]*weights[j])
		}
	}

	// Individual weights may multiply out to a zero-sum pair weighting
	// even when the catalog weighting itself is valid
	weightedStdDev, err := common.WeightedStandardDeviation(sepWeighted, pairWeights)
	if err != nil {
		return nil, fmt.Errorf("pair weighting is degenerate: %w", err)
	}

	return &AlignmentResult{
		Unweighted:       stat.Mean(sepUnweighted, nil),
		Weighted:         stat.Mean(sepWeighted, pairWeights),
		UnweightedStdErr: common.StandardError(common.PopulationStandardDeviation(sepUnweighted), numPairs),
		WeightedStdErr:   common.StandardError(weightedStdDev, numPairs),
		NumPoints:        n,
		NumPairs:         numPairs,
	}, nil
}
