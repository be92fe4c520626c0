package cluster

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astroquant/corealign/algorithms/morphology"
)

func elongatedCatalog() *CoreCatalog {
	return &CoreCatalog{
		X:      []float64{0.0, 1.2, 2.1, 3.3, 4.0},
		Y:      []float64{0.1, 0.5, -0.4, 0.9, -0.2},
		Weight: []float64{1.0, 2.0, 1.5, 0.5, 1.0},
	}
}

func TestAnalyzer_PipelineMatchesManualComposition(t *testing.T) {
	catalog := elongatedCatalog()

	result, err := NewAnalyzer(nil).Analyze(catalog)
	require.NoError(t, err)

	pca, err := morphology.PrincipalAxes(catalog.X, catalog.Y)
	require.NoError(t, err)
	weightedPCA, err := morphology.WeightedPrincipalAxes(catalog.X, catalog.Y, catalog.Weight)
	require.NoError(t, err)

	assert.Equal(t, pca, result.PCA)
	assert.Equal(t, weightedPCA, result.WeightedPCA)
	assert.Equal(t, math.Sqrt(pca.Eigenvalues[1]), result.ScaleUnweighted)
	assert.Equal(t, math.Sqrt(weightedPCA.Eigenvalues[1]), result.ScaleWeighted)

	alignment, err := morphology.AlignmentStatistic(catalog.X, catalog.Y, catalog.Weight,
		result.ScaleUnweighted, result.ScaleWeighted)
	require.NoError(t, err)
	assert.Equal(t, alignment, result.Alignment)

	require.NotNil(t, result.SeparationSummary)
	assert.Equal(t, 10, result.SeparationSummary.NumSeparations)
	assert.LessOrEqual(t, result.SeparationSummary.Min, result.SeparationSummary.Median)
	assert.LessOrEqual(t, result.SeparationSummary.Median, result.SeparationSummary.Max)
}

func TestAnalyzer_NilWeightMeansUniform(t *testing.T) {
	catalog := &CoreCatalog{
		X: []float64{0.0, 1.2, 2.1, 3.3, 4.0},
		Y: []float64{0.1, 0.5, -0.4, 0.9, -0.2},
	}

	result, err := NewAnalyzer(nil).Analyze(catalog)
	require.NoError(t, err)

	// With uniform weights both PCA passes agree, so both parameters do too
	assert.InDelta(t, result.ScaleUnweighted, result.ScaleWeighted, 1e-12)
	assert.InDelta(t, result.Alignment.Unweighted, result.Alignment.Weighted, 1e-12)
	assert.InDelta(t, result.Alignment.UnweightedStdErr, result.Alignment.WeightedStdErr, 1e-12)
}

func TestAnalyzer_SmallCatalogSentinels(t *testing.T) {
	analyzer := NewAnalyzer(nil)

	single, err := analyzer.Analyze(&CoreCatalog{X: []float64{5}, Y: []float64{5}})
	require.NoError(t, err)
	assert.Equal(t, morphology.SinglePointAlignment, single.Alignment.Unweighted)
	assert.Nil(t, single.SeparationSummary)

	// Two cores are always collinear; the scale guard must not reject them
	pair, err := analyzer.Analyze(&CoreCatalog{X: []float64{0, 1}, Y: []float64{0, 0}})
	require.NoError(t, err)
	assert.Equal(t, morphology.TwoPointAlignment, pair.Alignment.Unweighted)
	assert.Equal(t, morphology.TwoPointAlignment, pair.Alignment.Weighted)
	assert.Nil(t, pair.SeparationSummary)
}

func TestAnalyzer_CoincidentCoresRejected(t *testing.T) {
	catalog := &CoreCatalog{
		X: []float64{1, 1, 1},
		Y: []float64{2, 2, 2},
	}

	_, err := NewAnalyzer(nil).Analyze(catalog)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "degenerate minor-axis scale")
}

func TestAnalyzer_DegenerateScalesPropagateWhenUnguarded(t *testing.T) {
	catalog := &CoreCatalog{
		X: []float64{1, 1, 1},
		Y: []float64{2, 2, 2},
	}

	config := &Config{RequireFiniteScales: false, ComputeSeparationSummary: false}
	result, err := NewAnalyzer(config).Analyze(catalog)
	require.NoError(t, err)

	// Coincident cores: 0/0 separations surface as NaN, never a panic
	assert.True(t, math.IsNaN(result.Alignment.Unweighted))
	assert.Nil(t, result.SeparationSummary)
}

func TestAnalyzer_NilCatalog(t *testing.T) {
	_, err := NewAnalyzer(nil).Analyze(nil)
	assert.Error(t, err)
}

func TestSummarizeSeparations(t *testing.T) {
	summary, err := summarizeSeparations([]float64{0, 1, 0}, []float64{0, 0, 1}, 1)
	require.NoError(t, err)

	// Unordered separations: {1, 1, √2}
	assert.Equal(t, 3, summary.NumSeparations)
	assert.InDelta(t, 1.0, summary.Min, 1e-12)
	assert.InDelta(t, math.Sqrt2, summary.Max, 1e-12)
	assert.InDelta(t, 1.0, summary.Median, 1e-12)
	assert.InDelta(t, 1.0, summary.FirstQuartile, 1e-12)
	assert.InDelta(t, math.Sqrt2, summary.ThirdQuartile, 1e-12)
}
