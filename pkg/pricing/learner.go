// Package pricing maintains the per-commodity bid-ratio statistics learned
// from successful broadcasts. The store is the only mutable state shared
// across sessions: updates for one commodity are serialized behind that
// commodity's lock, while different commodities update fully in parallel.
package pricing

import (
	"sync"
)

// Stat is a snapshot of one commodity's learned statistic.
type Stat struct {
	AverageRatio float64 `json:"average_ratio"`
	SampleCount  int     `json:"sample_count"`
}

// Config tunes the learner. Zero values fall back to defaults.
type Config struct {
	// Alpha is the EWMA smoothing factor.
	Alpha float64

	// MinRatio and MaxRatio clamp every observed ratio before it enters the
	// average, keeping the statistic inside believable bid bounds.
	MinRatio float64
	MaxRatio float64

	// SampleCap saturates the sample counter so recent data keeps its weight
	// over all-time history.
	SampleCap int
}

// DefaultConfig mirrors the documented defaults.
func DefaultConfig() Config {
	return Config{Alpha: 0.2, MinRatio: 0.8, MaxRatio: 1.2, SampleCap: 50}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Alpha <= 0 || c.Alpha > 1 {
		c.Alpha = d.Alpha
	}
	if c.MinRatio <= 0 {
		c.MinRatio = d.MinRatio
	}
	if c.MaxRatio <= c.MinRatio {
		c.MaxRatio = d.MaxRatio
	}
	if c.SampleCap <= 0 {
		c.SampleCap = d.SampleCap
	}
	return c
}

type entry struct {
	mu    sync.Mutex
	ratio float64
	count int
}

// Learner is the keyed atomic store of pricing statistics. Every commodity
// starts at the neutral prior (ratio 1.0, count 0).
type Learner struct {
	cfg Config

	mu      sync.RWMutex
	entries map[string]*entry
}

// NewLearner creates a learner with neutral priors for every commodity.
func NewLearner(cfg Config) *Learner {
	return &Learner{
		cfg:     cfg.withDefaults(),
		entries: make(map[string]*entry),
	}
}

// get returns the entry for a commodity, creating the neutral prior lazily.
func (l *Learner) get(commodity string) *entry {
	l.mu.RLock()
	e, ok := l.entries[commodity]
	l.mu.RUnlock()
	if ok {
		return e
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if e, ok = l.entries[commodity]; ok {
		return e
	}
	e = &entry{ratio: 1.0}
	l.entries[commodity] = e
	return e
}

// Observe folds one realized bid ratio into the commodity's statistic.
// The ratio is clamped before entering the average.
func (l *Learner) Observe(commodity string, observedRatio float64) Stat {
	cfg := l.cfg
	observedRatio = clamp(observedRatio, cfg.MinRatio, cfg.MaxRatio)

	e := l.get(commodity)
	e.mu.Lock()
	defer e.mu.Unlock()

	e.ratio = e.ratio*(1-cfg.Alpha) + observedRatio*cfg.Alpha
	e.ratio = clamp(e.ratio, cfg.MinRatio, cfg.MaxRatio)
	if e.count < cfg.SampleCap {
		e.count++
	}
	return Stat{AverageRatio: e.ratio, SampleCount: e.count}
}

// Ratio returns the commodity's current statistic. A commodity that was never
// observed reports the neutral prior.
func (l *Learner) Ratio(commodity string) Stat {
	e := l.get(commodity)
	e.mu.Lock()
	defer e.mu.Unlock()
	return Stat{AverageRatio: e.ratio, SampleCount: e.count}
}

// Reset restores the neutral prior for one commodity. This is the remedy for
// a corrupted statistic; other commodities are untouched.
func (l *Learner) Reset(commodity string) {
	e := l.get(commodity)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ratio = 1.0
	e.count = 0
}

// Snapshot returns a copy of every tracked statistic.
func (l *Learner) Snapshot() map[string]Stat {
	l.mu.RLock()
	keys := make([]string, 0, len(l.entries))
	for k := range l.entries {
		keys = append(keys, k)
	}
	l.mu.RUnlock()

	out := make(map[string]Stat, len(keys))
	for _, k := range keys {
		out[k] = l.Ratio(k)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
