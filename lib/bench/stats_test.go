package bench

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewStats(t *testing.T) {
	require.Equal(t, Stats{}, NewStats(nil))

	var rounds []time.Duration
	for _, v := range []int{2, 4, 4, 4, 5, 5, 7, 9} {
		rounds = append(rounds, time.Duration(v)*time.Millisecond)
	}

	s := NewStats(rounds)
	require.Equal(t, 2.0, s.Min)
	require.Equal(t, 9.0, s.Max)
	require.Equal(t, 5.0, s.Mean)
	require.InDelta(t, 2.0, s.StdDeviation, 1e-9)
	require.InDelta(t, 2.0/9.0, s.MinMaxRatio, 1e-9)
}

func TestNewStatsSingleRound(t *testing.T) {
	s := NewStats([]time.Duration{1500 * time.Microsecond})
	require.Equal(t, 1.5, s.Mean)
	require.Equal(t, 0.0, s.StdDeviation)
	require.Equal(t, 1.0, s.MinMaxRatio)

	zero := NewStats([]time.Duration{0, 0})
	require.Equal(t, 1.0, zero.MinMaxRatio)
}
