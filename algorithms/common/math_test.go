package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeightedStandardDeviation_UniformWeightsMatchPopulation(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}

	got, err := WeightedStandardDeviation(values, UniformWeights(len(values)))
	require.NoError(t, err)

	// Population std dev of 1..5: mean 3, squared deviations sum 10, /5
	assert.InDelta(t, math.Sqrt(2), got, 1e-12)
	assert.InDelta(t, PopulationStandardDeviation(values), got, 1e-12)
}

func TestWeightedStandardDeviation_Weighted(t *testing.T) {
	// mean = 3/4, variance = (1*(3/4)^2 + 3*(1/4)^2)/4 = 3/16
	got, err := WeightedStandardDeviation([]float64{0, 1}, []float64{1, 3})
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(3.0/16.0), got, 1e-12)
}

func TestWeightedStandardDeviation_ConstantValues(t *testing.T) {
	got, err := WeightedStandardDeviation([]float64{2, 2, 2}, []float64{1, 5, 0.5})
	require.NoError(t, err)
	assert.InDelta(t, 0, got, 1e-12)
}

func TestWeightedStandardDeviation_InvalidInput(t *testing.T) {
	_, err := WeightedStandardDeviation([]float64{1, 2}, []float64{1})
	assert.Error(t, err)

	_, err = WeightedStandardDeviation([]float64{1, 2}, []float64{0, 0})
	assert.Error(t, err)

	_, err = WeightedStandardDeviation(nil, nil)
	assert.Error(t, err)
}

func TestWeightedMean(t *testing.T) {
	got, err := WeightedMean([]float64{1, 3}, []float64{3, 1})
	require.NoError(t, err)
	assert.InDelta(t, 1.5, got, 1e-12)

	_, err = WeightedMean([]float64{1}, []float64{-1})
	assert.Error(t, err)
}

func TestStandardError(t *testing.T) {
	assert.InDelta(t, 1.0, StandardError(2.0, 4), 1e-12)
	assert.Equal(t, 0.0, StandardError(2.0, 0))
}

func TestUniformWeights(t *testing.T) {
	weights := UniformWeights(3)
	require.Len(t, weights, 3)
	for _, w := range weights {
		assert.Equal(t, 1.0, w)
	}

	assert.Empty(t, UniformWeights(0))
}

func TestMean(t *testing.T) {
	assert.InDelta(t, 2.0, Mean([]float64{1, 2, 3}), 1e-12)
	assert.Equal(t, 0.0, Mean(nil))
}
