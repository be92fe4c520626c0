// Package morphology implements spatial statistics for 2D core catalogs:
// weighted principal component analysis of the core distribution and the
// pairwise alignment parameter built on its minor-axis scale.
package morphology

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/astroquant/corealign/algorithms/common"
)

// PCAResult contains the principal axes of a (weighted) 2D point set
type PCAResult struct {
	// Eigenvalues of the weighted covariance matrix, sorted descending.
	// Eigenvalues[0] is the variance along the major axis, Eigenvalues[1]
	// along the minor axis.
	Eigenvalues [2]float64 `json:"eigenvalues"`

	// Eigenvectors[k] is the unit eigenvector paired with Eigenvalues[k]
	Eigenvectors [2][2]float64 `json:"eigenvectors"`

	// Centroid is the weighted center of mass the positions were centered on
	Centroid [2]float64 `json:"centroid"`

	TotalWeight float64 `json:"total_weight"`
	NumPoints   int     `json:"num_points"`
	Weighted    bool    `json:"weighted"`
}

// MajorAxisScale returns the RMS spread along the major axis
func (r *PCAResult) MajorAxisScale() float64 {
	return math.Sqrt(r.Eigenvalues[0])
}

// MinorAxisScale returns the RMS spread along the minor axis, the
// characteristic transverse scale used to normalize pairwise separations
func (r *PCAResult) MinorAxisScale() float64 {
	return math.Sqrt(r.Eigenvalues[1])
}

// PrincipalAxes solves the unweighted PCA for a set of 2D core positions.
// It is the omitted-weight form of WeightedPrincipalAxes with every core
// counted equally.
func PrincipalAxes(x, y []float64) (*PCAResult, error) {
	result, err := WeightedPrincipalAxes(x, y, common.UniformWeights(len(x)))
	if err != nil {
		return nil, err
	}
	result.Weighted = false
	return result, nil
}

// WeightedPrincipalAxes solves the weighted PCA for a set of 2D core
// positions: it centers the positions on their weighted center of mass,
// builds the 2×2 weighted covariance matrix and eigendecomposes it.
//
// A single point yields a zero covariance matrix and zero eigenvalues;
// callers dividing by MinorAxisScale must guard that case themselves.
func WeightedPrincipalAxes(x, y, weights []float64) (*PCAResult, error) {
	if err := validatePointSet(x, y, weights); err != nil {
		return nil, err
	}

	sumWeight := floats.Sum(weights)

	// Shift the core positions to the weighted center-of-mass frame
	meanX := stat.Mean(x, weights)
	meanY := stat.Mean(y, weights)

	var covXX, covXY, covYY float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		covXX += weights[i] * dx * dx
		covXY += weights[i] * dx * dy
		covYY += weights[i] * dy * dy
	}
	covXX /= sumWeight
	covXY /= sumWeight
	covYY /= sumWeight

	covar := mat.NewSymDense(2, []float64{
		covXX, covXY,
		covXY, covYY,
	})

	var eig mat.EigenSym
	if ok := eig.Factorize(covar, true); !ok {
		return nil, fmt.Errorf("eigendecomposition of covariance matrix did not converge")
	}

	values := eig.Values(nil)
	var vectors mat.Dense
	eig.VectorsTo(&vectors)

	result := &PCAResult{
		Centroid:    [2]float64{meanX, meanY},
		TotalWeight: sumWeight,
		NumPoints:   len(x),
		Weighted:    true,
	}

	// EigenSym reports eigenvalues in ascending order; index 0 of the
	// result is the major axis
	for k := range 2 {
		src := 1 - k
		value := values[src]
		if value < 0 {
			// The covariance matrix is positive semi-definite; a negative
			// eigenvalue here is solver roundoff
			value = 0
		}
		result.Eigenvalues[k] = value
		result.Eigenvectors[k] = [2]float64{vectors.At(0, src), vectors.At(1, src)}
	}

	return result, nil
}

func validatePointSet(x, y, weights []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("position length mismatch: %d x values, %d y values", len(x), len(y))
	}
	if len(weights) != len(x) {
		return fmt.Errorf("weight length mismatch: %d positions, %d weights", len(x), len(weights))
	}
	if len(x) == 0 {
		return fmt.Errorf("empty point set")
	}
	if sum := floats.Sum(weights); sum <= 0 {
		return fmt.Errorf("total weight must be positive, got %g", sum)
	}
	return nil
}
