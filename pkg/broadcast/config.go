package broadcast

import "time"

// Phase is one named step of the simulated network round-trip. Its duration
// is drawn uniformly from [Min, Max].
type Phase struct {
	Name string
	Min  time.Duration
	Max  time.Duration
}

// Config tunes the simulator. All values are configurable defaults; the
// documented probabilities and bounds are illustrative, not hard-coded.
type Config struct {
	// Independent failure probabilities, checked in this priority order.
	// The remaining probability mass is the success path.
	NetworkErrorRate   float64
	GatewayTimeoutRate float64
	NoSellersRate      float64
	RateLimitedRate    float64

	// WarmupThreshold is the minimum sample count before a commodity's
	// learned ratio is trusted over the neutral default.
	WarmupThreshold int

	// WarmupNoise randomizes the neutral ratio by ±WarmupNoise while warming up.
	WarmupNoise float64

	// MinRatio and MaxRatio clamp the final bid ratio.
	MinRatio float64
	MaxRatio float64

	// FallbackPrice is the static per-kg base used when a market-quote
	// listing cannot obtain any oracle price at all.
	FallbackPrice float64

	Phases []Phase
}

// DefaultConfig returns the documented defaults. Phase bounds sum to a total
// elapsed time of 6s at minimum and 25s at maximum.
func DefaultConfig() Config {
	return Config{
		NetworkErrorRate:   0.01,
		GatewayTimeoutRate: 0.03,
		NoSellersRate:      0.02,
		RateLimitedRate:    0.01,
		WarmupThreshold:    5,
		WarmupNoise:        0.10,
		MinRatio:           0.8,
		MaxRatio:           1.2,
		FallbackPrice:      50,
		Phases: []Phase{
			{Name: "gateway_handshake", Min: 500 * time.Millisecond, Max: 2 * time.Second},
			{Name: "authentication", Min: 500 * time.Millisecond, Max: 2 * time.Second},
			{Name: "fan_out", Min: 1500 * time.Millisecond, Max: 6 * time.Second},
			{Name: "matching", Min: 1500 * time.Millisecond, Max: 6 * time.Second},
			{Name: "bidding", Min: 2 * time.Second, Max: 9 * time.Second},
		},
	}
}

// MaxElapsed is the documented upper bound of one broadcast call.
func (c Config) MaxElapsed() time.Duration {
	var total time.Duration
	for _, p := range c.Phases {
		total += p.Max
	}
	return total
}
