package common

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Weighted statistical functions shared across algorithms, using gonum for robustness

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// WeightedMean calculates the weighted mean of data
func WeightedMean(data, weights []float64) (float64, error) {
	if err := validateWeights(data, weights); err != nil {
		return 0, err
	}
	return stat.Mean(data, weights), nil
}

// WeightedStandardDeviation calculates the weighted population standard
// deviation of values: sqrt(Σ wᵢ(vᵢ-μ)² / Σ wᵢ) with μ the weighted mean.
// Not sample-corrected.
func WeightedStandardDeviation(values, weights []float64) (float64, error) {
	if err := validateWeights(values, weights); err != nil {
		return 0, err
	}
	return stat.PopStdDev(values, weights), nil
}

// PopulationStandardDeviation calculates the unweighted population
// standard deviation of data
func PopulationStandardDeviation(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.PopStdDev(data, nil)
}

// StandardError converts a standard deviation into the standard error of
// the mean over n samples
func StandardError(stdDev float64, n int) float64 {
	if n <= 0 {
		return 0.0
	}
	return stdDev / math.Sqrt(float64(n))
}

// UniformWeights returns a weight array of n ones, the implicit weighting
// when a caller supplies no weights
func UniformWeights(n int) []float64 {
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1.0
	}
	return weights
}

func validateWeights(data, weights []float64) error {
	if len(data) != len(weights) {
		return fmt.Errorf("length mismatch: %d values, %d weights", len(data), len(weights))
	}
	if len(data) == 0 {
		return fmt.Errorf("empty input")
	}
	if sum := floats.Sum(weights); sum <= 0 {
		return fmt.Errorf("total weight must be positive, got %g", sum)
	}
	return nil
}
