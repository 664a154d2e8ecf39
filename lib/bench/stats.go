package bench

import (
	"math"
	"time"
)

// Stats summarizes the round durations of a phase, all values in milliseconds
type Stats struct {
	StdDeviation float64 `json:"std_deviation"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Mean         float64 `json:"mean"`
	MinMaxRatio  float64 `json:"min_max_ratio"` // 1 means every round took the same time
}

// NewStats computes Stats over durations
func NewStats(durations []time.Duration) Stats {
	if len(durations) == 0 {
		return Stats{}
	}

	minD, maxD := durations[0], durations[0]
	var total time.Duration
	for _, d := range durations {
		total += d
		minD = min(minD, d)
		maxD = max(maxD, d)
	}
	mean := ms(total) / float64(len(durations))

	// population standard deviation
	var sumSquaredDiffs float64
	for _, d := range durations {
		diff := ms(d) - mean
		sumSquaredDiffs += diff * diff
	}

	s := Stats{
		StdDeviation: math.Sqrt(sumSquaredDiffs / float64(len(durations))),
		Min:          ms(minD),
		Max:          ms(maxD),
		Mean:         mean,
		MinMaxRatio:  1,
	}
	if maxD > 0 {
		s.MinMaxRatio = float64(minD) / float64(maxD)
	}
	return s
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
