// Package model holds the plain value records shared across the core's
// subsystems: AudioBuffer, Config, Result, and
// AudioQualityReport. Keeping them in their own package lets the
// validator, config manager, and alignment engine all depend on the
// same data without an import cycle back to the public API package.
package model

import (
	"math"

	"github.com/aulei-sync/syncalign/errs"
	"github.com/aulei-sync/syncalign/features"
)

// AudioBuffer is a contiguous, read-only, input-only mono sample
// sequence. The core never retains Samples past the call that receives
// it.
type AudioBuffer struct {
	Samples    []float32
	SampleRate int
}

// Len reports the sample count.
func (b AudioBuffer) Len() int { return len(b.Samples) }

// Duration reports the buffer's length in seconds; 0 if SampleRate<=0.
func (b AudioBuffer) Duration() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(len(b.Samples)) / float64(b.SampleRate)
}

// Float64 copies Samples into a float64 slice for internal DSP use,
// since gonum and the feature extractors operate in float64.
func (b AudioBuffer) Float64() []float64 {
	out := make([]float64, len(b.Samples))
	for i, v := range b.Samples {
		out[i] = float64(v)
	}
	return out
}

// AllFinite reports whether every sample is finite.
func (b AudioBuffer) AllFinite() bool {
	for _, v := range b.Samples {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return false
		}
	}
	return true
}

// Config enumerates the recognized tuning knobs, including
// the algorithm-specific knobs used by the extended engine.
type Config struct {
	ConfidenceThreshold   float64
	WindowSize            int
	HopSize               int
	NoiseGateDB           float64
	MaxOffsetSamples      int64
	EnableDriftCorrection bool

	// Algorithm-specific (extended) knobs.
	PreEmphasisAlpha float64
	MedianFilterSize int
	NumChromaBins    int
	SmoothingWindow  int
	NumMFCCCoeffs    int
	NumMelFilters    int
	IncludeC0        bool
}

// Result is the public alignment outcome.
type Result struct {
	OffsetSamples      int64
	Confidence         float64
	PeakCorrelation    float64
	SecondaryPeakRatio float64
	SNREstimate        float64
	NoiseFloorDB       float64
	Method             string
	Error              errs.Kind
}

// FailureResult builds a well-formed failure Result: confidence 0,
// offset 0, a best-effort secondary_peak_ratio of 1.0 and
// noise_floor_db of -60.
func FailureResult(kind errs.Kind, methodName string) Result {
	return Result{
		OffsetSamples:      0,
		Confidence:         0,
		PeakCorrelation:    0,
		SecondaryPeakRatio: 1.0,
		SNREstimate:        0,
		NoiseFloorDB:       -60,
		Method:             methodName,
		Error:              kind,
	}
}

// AudioQualityReport characterizes a buffer's audio quality.
type AudioQualityReport struct {
	RMSLevel           float64
	PeakLevel          float64
	DynamicRangeDB     float64
	SilenceRatio       float64
	ClippingRatio      float64
	SpectralCentroidHz float64
	SpectralRolloffHz  float64
	ZeroCrossingRate   float64

	HasSufficientContent bool
	HasExcessiveClipping bool
	HasGoodDynamicRange  bool
	IsMonotonic          bool

	Warnings        []string
	Recommendations []string
}

// Method re-exports features.Method so callers of model don't need to
// import the features package just to name a method.
type Method = features.Method

const (
	SpectralFlux = features.MethodSpectralFlux
	Chroma       = features.MethodChroma
	Energy       = features.MethodEnergy
	MFCC         = features.MethodMFCC
	Hybrid       = features.MethodHybrid
)
