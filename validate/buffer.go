// Package validate implements the input validator and audio-quality
// analyzer: buffer and pair gating, config validation,
// quality analysis, method-specific content sufficiency, and resource
// estimation for degradation.
package validate

import (
	"math"

	"github.com/aulei-sync/syncalign/errs"
	"github.com/aulei-sync/syncalign/model"
)

// MinSamples and MaxSamples bound a buffer's sample count.
const (
	MinSamples = 1024
	MaxSamples = 10_000_000
)

// MinSampleRate and MaxSampleRate bound a buffer's sample rate in Hz.
const (
	MinSampleRate = 8000
	MaxSampleRate = 192000
)

// minDurationSeconds gives each method's minimum tolerated buffer
// length.
var minDurationSeconds = map[model.Method]float64{
	model.SpectralFlux: 2.0,
	model.Chroma:       4.0,
	model.Energy:       1.0,
	model.MFCC:         3.0,
	model.Hybrid:       4.0,
}

// MinDuration returns the minimum tolerated duration, in seconds, for method.
func MinDuration(m model.Method) float64 {
	return minDurationSeconds[m]
}

// MinLength returns the minimum sample count for method at sampleRate.
func MinLength(m model.Method, sampleRate int) int {
	return int(math.Ceil(minDurationSeconds[m] * float64(sampleRate)))
}

// Buffer validates a single AudioBuffer in isolation:
// null/empty, non-finite samples, sample count and sample rate bounds.
func Buffer(b model.AudioBuffer) error {
	if b.Samples == nil {
		return errs.New(errs.InvalidInput, "validate", "buffer is nil", "provide a non-nil sample buffer")
	}
	n := len(b.Samples)
	if n < MinSamples || n > MaxSamples {
		return errs.New(errs.InvalidInput, "validate", "sample count out of range",
			"provide between 1024 and 10000000 samples")
	}
	if b.SampleRate < MinSampleRate || b.SampleRate > MaxSampleRate {
		return errs.New(errs.UnsupportedFormat, "validate", "sample rate out of range",
			"use a sample rate between 8000 and 192000 Hz")
	}
	if !b.AllFinite() {
		return errs.New(errs.InvalidInput, "validate", "buffer contains non-finite samples",
			"remove NaN/Inf samples before calling")
	}
	return nil
}

// Pair validates a reference/target buffer combination for a given
// method: both valid, both meet the method's
// minimum length, sample rates agree within 1Hz, and the duration
// ratio lies in [0.1, 10].
func Pair(ref, tgt model.AudioBuffer, m model.Method) error {
	if err := Buffer(ref); err != nil {
		return err
	}
	if err := Buffer(tgt); err != nil {
		return err
	}

	minLen := MinLength(m, ref.SampleRate)
	if ref.Len() < minLen || tgt.Len() < minLen {
		return errs.New(errs.InsufficientData, "validate", "buffer shorter than method minimum",
			"use a longer buffer or a less data-hungry method")
	}

	if math.Abs(float64(ref.SampleRate-tgt.SampleRate)) > 1 {
		return errs.New(errs.UnsupportedFormat, "validate", "sample rate mismatch between reference and target",
			"resample both buffers to a common rate")
	}

	refDur, tgtDur := ref.Duration(), tgt.Duration()
	if refDur <= 0 || tgtDur <= 0 {
		return errs.New(errs.UnsupportedFormat, "validate", "non-positive duration", "provide audio with a positive duration")
	}
	ratio := refDur / tgtDur
	if ratio < 0.1 || ratio > 10 {
		return errs.New(errs.UnsupportedFormat, "validate", "reference/target duration ratio out of range",
			"align clips of comparable duration")
	}

	return nil
}
