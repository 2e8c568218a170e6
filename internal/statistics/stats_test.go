package statistics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDescribe_Empty(t *testing.T) {
	d := Describe(nil)
	require.Zero(t, d.Count)
	require.Zero(t, d.Mean)
	require.Nil(t, d.CI95)
}

func TestDescribe_Single(t *testing.T) {
	d := Describe([]float64{0.42})
	require.Equal(t, 1, d.Count)
	require.Equal(t, 0.42, d.Mean)
	require.Equal(t, 0.42, d.Min)
	require.Equal(t, 0.42, d.Max)
	require.Zero(t, d.StdDev)
	require.Nil(t, d.CI95, "no CI with fewer than 2 data points")
}

func TestDescribe_KnownValues(t *testing.T) {
	d := DescribeWithSeed([]float64{1, 2, 3}, 7)
	require.Equal(t, 3, d.Count)
	require.InDelta(t, 2.0, d.Mean, 1e-9)
	require.InDelta(t, math.Sqrt(2.0/3.0), d.StdDev, 1e-9)
	require.Equal(t, 1.0, d.Min)
	require.Equal(t, 3.0, d.Max)

	require.NotNil(t, d.CI95)
	require.LessOrEqual(t, d.CI95.Lower, d.Mean)
	require.GreaterOrEqual(t, d.CI95.Upper, d.Mean)
	require.Equal(t, 0.95, d.CI95.ConfidenceLevel)
	require.Equal(t, DefaultResamples, d.CI95.Resamples)
}

func TestDescribeWithSeed_Deterministic(t *testing.T) {
	scores := []float64{0.2, 0.5, 0.9, 0.4, 0.7}
	a := DescribeWithSeed(scores, 42)
	b := DescribeWithSeed(scores, 42)
	require.Equal(t, a, b)
}

func TestBootstrapCI_TooFewPoints(t *testing.T) {
	ci := BootstrapCI([]float64{0.5}, 0.95, 1)
	require.Equal(t, 0.5, ci.Lower)
	require.Equal(t, 0.5, ci.Upper)
	require.Equal(t, 0.5, ci.Mean)
	require.Zero(t, ci.Resamples)
}

func TestBootstrapCI_BoundsOrdered(t *testing.T) {
	ci := BootstrapCI([]float64{0.1, 0.9, 0.5, 0.3, 0.8, 0.6}, 0.95, 3)
	require.LessOrEqual(t, ci.Lower, ci.Upper)
	require.LessOrEqual(t, ci.Lower, ci.Mean)
	require.GreaterOrEqual(t, ci.Upper, ci.Mean)
}
