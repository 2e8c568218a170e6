// Package statistics summarizes the distribution of final scores in a
// ranking batch.
package statistics

import (
	"math"
	"math/rand/v2"
	"sort"
)

// DefaultResamples is the number of bootstrap resamples used for the
// confidence interval in a distribution summary.
const DefaultResamples = 10000

// ConfidenceInterval is a percentile bootstrap interval over a score set.
type ConfidenceInterval struct {
	Lower           float64 `json:"lower"`
	Upper           float64 `json:"upper"`
	Mean            float64 `json:"mean"`
	ConfidenceLevel float64 `json:"confidence_level"`
	Resamples       int     `json:"resamples"`
}

// Distribution describes a batch's final-score distribution.
type Distribution struct {
	Count  int                 `json:"count"`
	Mean   float64             `json:"mean"`
	StdDev float64             `json:"std_dev"`
	Min    float64             `json:"min"`
	Max    float64             `json:"max"`
	CI95   *ConfidenceInterval `json:"ci95,omitempty"`
}

// Describe summarizes scores, including a 95% bootstrap CI when at least
// two data points exist. The bootstrap uses a non-deterministic seed.
func Describe(scores []float64) Distribution {
	return DescribeWithSeed(scores, -1)
}

// DescribeWithSeed is like Describe but accepts a seed for reproducibility.
// A negative seed uses a non-deterministic source.
func DescribeWithSeed(scores []float64, seed int64) Distribution {
	d := Distribution{Count: len(scores)}
	if len(scores) == 0 {
		return d
	}

	d.Min = scores[0]
	d.Max = scores[0]
	sum := 0.0
	for _, s := range scores {
		sum += s
		d.Min = math.Min(d.Min, s)
		d.Max = math.Max(d.Max, s)
	}
	d.Mean = sum / float64(len(scores))
	d.StdDev = stdDev(scores, d.Mean)

	if len(scores) >= 2 {
		ci := BootstrapCI(scores, 0.95, seed)
		d.CI95 = &ci
	}
	return d
}

// BootstrapCI computes a percentile-method bootstrap confidence interval
// over the given scores. confidenceLevel should be in (0,1), e.g. 0.95.
// A negative seed uses a non-deterministic source.
func BootstrapCI(scores []float64, confidenceLevel float64, seed int64) ConfidenceInterval {
	n := len(scores)
	m := mean(scores)
	if n < 2 {
		return ConfidenceInterval{
			Lower:           m,
			Upper:           m,
			Mean:            m,
			ConfidenceLevel: confidenceLevel,
		}
	}

	var rng *rand.Rand
	if seed >= 0 {
		rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)+1))
	} else {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	iters := DefaultResamples
	resampleMeans := make([]float64, iters)
	sample := make([]float64, n)
	for i := 0; i < iters; i++ {
		for j := 0; j < n; j++ {
			sample[j] = scores[rng.IntN(n)]
		}
		resampleMeans[i] = mean(sample)
	}
	sort.Float64s(resampleMeans)

	alpha := 1.0 - confidenceLevel
	loIdx := int(math.Floor(alpha / 2.0 * float64(iters)))
	hiIdx := int(math.Floor((1.0 - alpha/2.0) * float64(iters)))
	if hiIdx >= iters {
		hiIdx = iters - 1
	}

	return ConfidenceInterval{
		Lower:           resampleMeans[loIdx],
		Upper:           resampleMeans[hiIdx],
		Mean:            m,
		ConfidenceLevel: confidenceLevel,
		Resamples:       iters,
	}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev returns the population standard deviation given a precomputed mean.
func stdDev(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0.0
	}
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	return math.Sqrt(variance / float64(len(values)))
}
