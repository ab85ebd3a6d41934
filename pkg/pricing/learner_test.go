package pricing_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bolibazaar/bolibazaar/pkg/pricing"
)

func TestLearner_NeutralPrior(t *testing.T) {
	l := pricing.NewLearner(pricing.DefaultConfig())

	stat := l.Ratio("onion")
	assert.Equal(t, 1.0, stat.AverageRatio)
	assert.Equal(t, 0, stat.SampleCount)
}

func TestLearner_ObserveEWMA(t *testing.T) {
	l := pricing.NewLearner(pricing.DefaultConfig())

	stat := l.Observe("onion", 1.1)
	// 1.0*0.8 + 1.1*0.2
	assert.InDelta(t, 1.02, stat.AverageRatio, 1e-9)
	assert.Equal(t, 1, stat.SampleCount)

	stat = l.Observe("onion", 1.1)
	assert.InDelta(t, 1.036, stat.AverageRatio, 1e-9)
	assert.Equal(t, 2, stat.SampleCount)

	// Other commodities keep the neutral prior.
	assert.Equal(t, 1.0, l.Ratio("wheat").AverageRatio)
}

func TestLearner_ObservationClamped(t *testing.T) {
	l := pricing.NewLearner(pricing.DefaultConfig())

	// An out-of-range observation enters the average as the clamp bound,
	// so the statistic stays within [0.8, 1.2].
	stat := l.Observe("onion", 5.0)
	assert.InDelta(t, 1.04, stat.AverageRatio, 1e-9)

	stat = l.Observe("onion", -3.0)
	assert.GreaterOrEqual(t, stat.AverageRatio, 0.8)
	assert.LessOrEqual(t, stat.AverageRatio, 1.2)
}

func TestLearner_SampleCountSaturates(t *testing.T) {
	l := pricing.NewLearner(pricing.Config{SampleCap: 3})

	for i := 0; i < 10; i++ {
		l.Observe("onion", 1.0)
	}
	assert.Equal(t, 3, l.Ratio("onion").SampleCount)
}

func TestLearner_Reset(t *testing.T) {
	l := pricing.NewLearner(pricing.DefaultConfig())
	l.Observe("onion", 1.2)
	l.Observe("wheat", 0.8)

	l.Reset("onion")

	assert.Equal(t, pricing.Stat{AverageRatio: 1.0}, l.Ratio("onion"))
	assert.NotEqual(t, 1.0, l.Ratio("wheat").AverageRatio)
}

func TestLearner_Snapshot(t *testing.T) {
	l := pricing.NewLearner(pricing.DefaultConfig())
	l.Observe("onion", 1.1)
	l.Observe("rice", 0.9)

	snap := l.Snapshot()
	require.Len(t, snap, 2)
	assert.Contains(t, snap, "onion")
	assert.Contains(t, snap, "rice")
}

func TestLearner_ConcurrentObserve(t *testing.T) {
	l := pricing.NewLearner(pricing.DefaultConfig())
	commodities := []string{"onion", "tomato", "wheat", "rice"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		for _, c := range commodities {
			wg.Add(1)
			go func(c string) {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					l.Observe(c, 1.05)
				}
			}(c)
		}
	}
	wg.Wait()

	for _, c := range commodities {
		stat := l.Ratio(c)
		assert.GreaterOrEqual(t, stat.AverageRatio, 0.8, c)
		assert.LessOrEqual(t, stat.AverageRatio, 1.2, c)
		assert.Equal(t, 50, stat.SampleCount, c)
	}
}
