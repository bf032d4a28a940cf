// Package config implements the config manager:
// profile/content-type presets, validation and auto-correction,
// serialization, and graceful degradation.
package config

import (
	"math"

	"github.com/aulei-sync/syncalign/model"
)

// DefaultConfig returns the library's baseline Config.
func DefaultConfig() model.Config {
	return model.Config{
		ConfidenceThreshold:   0.6,
		WindowSize:            2048,
		HopSize:               512,
		NoiseGateDB:           -40,
		MaxOffsetSamples:      0, // 0 = auto
		EnableDriftCorrection: false,
		PreEmphasisAlpha:      0.97,
		MedianFilterSize:      3,
		NumChromaBins:         12,
		SmoothingWindow:       5,
		NumMFCCCoeffs:         13,
		NumMelFilters:         26,
		IncludeC0:             true,
	}
}

// EffectiveMaxOffset resolves the "0 = auto" sentinel of MaxOffsetSamples
// to min(len(ref), len(tgt))/4 samples
func EffectiveMaxOffset(cfg model.Config, refLen, tgtLen int) int64 {
	if cfg.MaxOffsetSamples > 0 {
		return cfg.MaxOffsetSamples
	}
	l := refLen
	if tgtLen < l {
		l = tgtLen
	}
	return int64(l / 4)
}

// Issue describes one invalid or corrected config field.
type Issue struct {
	Field      string
	Value      any
	Suggestion string
}

// Validate checks every tunable field for range and consistency. A
// non-power-of-two window_size is reported as a warning (returned in
// Warnings), never as an error.
func Validate(cfg model.Config) (errors []Issue, warnings []Issue) {
	if cfg.ConfidenceThreshold < 0 || cfg.ConfidenceThreshold > 1 {
		errors = append(errors, Issue{"confidence_threshold", cfg.ConfidenceThreshold, "clamp to [0, 1]"})
	}
	if cfg.WindowSize < 64 || cfg.WindowSize > 8192 {
		errors = append(errors, Issue{"window_size", cfg.WindowSize, "clamp to [64, 8192]"})
	} else if !isPowerOfTwo(cfg.WindowSize) {
		warnings = append(warnings, Issue{"window_size", cfg.WindowSize, "round to the nearest power of two"})
	}
	if cfg.HopSize <= 0 || cfg.HopSize > cfg.WindowSize {
		errors = append(errors, Issue{"hop_size", cfg.HopSize, "clamp to (0, window_size]"})
	}
	if cfg.NoiseGateDB < -120 || cfg.NoiseGateDB > 0 {
		errors = append(errors, Issue{"noise_gate_db", cfg.NoiseGateDB, "clamp to [-120, 0]"})
	}
	return errors, warnings
}

// AutoCorrect clamps every out-of-range field to its nearest valid
// value and rounds window_size to the nearest power of two, leaving
// already-valid fields untouched.
func AutoCorrect(cfg model.Config) model.Config {
	out := cfg
	out.ConfidenceThreshold = clamp(cfg.ConfidenceThreshold, 0, 1)
	out.WindowSize = clampInt(cfg.WindowSize, 64, 8192)
	out.WindowSize = nearestPowerOfTwo(out.WindowSize)
	out.HopSize = clampInt(cfg.HopSize, 1, out.WindowSize)
	out.NoiseGateDB = clamp(cfg.NoiseGateDB, -120, 0)
	return out
}

func isPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }

func nearestPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	lower := 1
	for lower*2 <= n {
		lower *= 2
	}
	upper := lower * 2
	if n-lower <= upper-n {
		return lower
	}
	return upper
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}

func clampInt(x, lo, hi int) int {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
