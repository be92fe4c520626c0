package cluster

import (
	"math"

	"github.com/montanaflynn/stats"
)

// SeparationSummary describes the distribution of pairwise core
// separations normalized by the unweighted minor-axis scale
type SeparationSummary struct {
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`
	Median         float64 `json:"median"`
	FirstQuartile  float64 `json:"first_quartile"`
	ThirdQuartile  float64 `json:"third_quartile"`
	NumSeparations int     `json:"num_separations"`
}

// summarizeSeparations collects each unordered pair once; unlike the
// alignment statistic, order statistics gain nothing from the
// double-counted enumeration
func summarizeSeparations(x, y []float64, scale float64) (*SeparationSummary, error) {
	n := len(x)
	separations := make([]float64, 0, n*(n-1)/2)
	for i := range n {
		for j := i + 1; j < n; j++ {
			separations = append(separations, math.Hypot(x[i]-x[j], y[i]-y[j])/scale)
		}
	}

	minSep, err := stats.Min(separations)
	if err != nil {
		return nil, err
	}
	maxSep, err := stats.Max(separations)
	if err != nil {
		return nil, err
	}
	median, err := stats.Median(separations)
	if err != nil {
		return nil, err
	}
	quartiles, err := stats.Quartile(separations)
	if err != nil {
		return nil, err
	}

	return &SeparationSummary{
		Min:            minSep,
		Max:            maxSep,
		Median:         median,
		FirstQuartile:  quartiles.Q1,
		ThirdQuartile:  quartiles.Q3,
		NumSeparations: len(separations),
	}, nil
}
