package validate

import (
	"math"

	"github.com/aulei-sync/syncalign/dsp"
	"github.com/aulei-sync/syncalign/model"
	"gonum.org/v1/gonum/floats"
)

const (
	silenceThresholdDB = -40.0
	clippingThreshold  = 0.99
	rolloffFraction    = 0.85
	qualityWindowSize  = 2048
	qualityHopSize     = 512
)

// Analyze computes an AudioQualityReport for buffer. It has no side
// effects on buffer itself.
func Analyze(b model.AudioBuffer) model.AudioQualityReport {
	samples := b.Float64()
	n := len(samples)

	abs := make([]float64, n)
	var sumSq float64
	var silent, clipped, zeroCross int
	for i, x := range samples {
		ax := math.Abs(x)
		abs[i] = ax
		sumSq += x * x
		if ax < silenceAmplitude(silenceThresholdDB) {
			silent++
		}
		if ax >= clippingThreshold {
			clipped++
		}
		if i > 0 && ((samples[i-1] >= 0) != (x >= 0)) {
			zeroCross++
		}
	}

	var peak float64
	if n > 0 {
		peak = floats.Max(abs)
	}

	rms := 0.0
	if n > 0 {
		rms = math.Sqrt(sumSq / float64(n))
	}
	dynRange := 20 * math.Log10(peak/(rms+1e-10))

	var silenceRatio, clippingRatio, zcr float64
	if n > 0 {
		silenceRatio = float64(silent) / float64(n)
		clippingRatio = float64(clipped) / float64(n)
		zcr = float64(zeroCross) / float64(n)
	}

	centroid, rolloff := spectralShape(samples, b.SampleRate)
	monotonic := isMonotonic(samples)

	report := model.AudioQualityReport{
		RMSLevel:           rms,
		PeakLevel:          peak,
		DynamicRangeDB:     dynRange,
		SilenceRatio:       silenceRatio,
		ClippingRatio:      clippingRatio,
		SpectralCentroidHz: centroid,
		SpectralRolloffHz:  rolloff,
		ZeroCrossingRate:   zcr,
		IsMonotonic:        monotonic,
	}

	report.HasSufficientContent = silenceRatio < 0.9 && n >= MinSamples
	report.HasExcessiveClipping = clippingRatio > 0.01
	report.HasGoodDynamicRange = dynRange > 6

	if silenceRatio > 0.5 {
		report.Warnings = append(report.Warnings, "high silence ratio detected")
		report.Recommendations = append(report.Recommendations, "trim silent portions")
	}
	if report.HasExcessiveClipping {
		report.Warnings = append(report.Warnings, "excessive clipping detected")
		report.Recommendations = append(report.Recommendations, "reduce input gain before recording")
	}
	if !report.HasGoodDynamicRange {
		report.Warnings = append(report.Warnings, "low dynamic range detected")
	}
	if centroid <= 200 {
		report.Recommendations = append(report.Recommendations, "use chroma-based method")
	}

	return report
}

func silenceAmplitude(db float64) float64 {
	return math.Pow(10, db/20)
}

func isMonotonic(x []float64) bool {
	if len(x) < 2 {
		return true
	}
	increasing, decreasing := true, true
	for i := 1; i < len(x); i++ {
		if x[i] < x[i-1] {
			increasing = false
		}
		if x[i] > x[i-1] {
			decreasing = false
		}
	}
	return increasing || decreasing
}

// spectralShape returns the average spectral centroid and the 85%
// rolloff frequency (Hz) over the buffer's frames.
func spectralShape(samples []float64, sampleRate int) (centroidHz, rolloffHz float64) {
	if len(samples) < qualityWindowSize || sampleRate <= 0 {
		return 0, 0
	}

	n := 1 + (len(samples)-qualityWindowSize)/qualityHopSize
	if n < 1 {
		n = 1
	}

	freqPerBin := float64(sampleRate) / float64(qualityWindowSize)
	var centroidSum, rolloffSum float64
	var frames int

	for i := 0; i < n; i++ {
		start := i * qualityHopSize
		end := start + qualityWindowSize
		if end > len(samples) {
			break
		}
		mag, err := dsp.Magnitude(samples[start:end])
		if err != nil {
			continue
		}

		energy := floats.Sum(mag)
		if energy <= 0 {
			continue
		}
		var weighted float64
		for k, m := range mag {
			weighted += float64(k) * freqPerBin * m
		}
		centroidSum += weighted / energy

		target := rolloffFraction * energy
		var cum float64
		rolloffBin := len(mag) - 1
		for k, m := range mag {
			cum += m
			if cum >= target {
				rolloffBin = k
				break
			}
		}
		rolloffSum += float64(rolloffBin) * freqPerBin
		frames++
	}

	if frames == 0 {
		return 0, 0
	}
	return centroidSum / float64(frames), rolloffSum / float64(frames)
}

// ContentSufficient applies the method-specific content sufficiency
// rules.
func ContentSufficient(report model.AudioQualityReport, m model.Method) bool {
	switch m {
	case model.SpectralFlux:
		return report.HasSufficientContent && !report.IsMonotonic && report.ZeroCrossingRate > 0.01
	case model.Chroma:
		return report.HasSufficientContent && report.HasGoodDynamicRange && report.SpectralCentroidHz > 200
	case model.Energy:
		return report.HasSufficientContent && report.DynamicRangeDB > 6
	case model.MFCC:
		return report.HasSufficientContent && !report.HasExcessiveClipping
	case model.Hybrid:
		return report.HasSufficientContent
	default:
		return report.HasSufficientContent
	}
}
