// Package confidence implements the three-factor confidence calibrator:
// correlation strength, peak sharpness, and SNR, combined into a
// single bounded score.
package confidence

import (
	"math"
	"sort"

	"github.com/aulei-sync/syncalign/correlate"
	"gonum.org/v1/gonum/stat"
)

// Factors is ConfidenceFactors: three normalized, finite
// values in [0, 1].
type Factors struct {
	CorrelationStrength float64
	PeakSharpness       float64
	SNR                 float64
}

// Weights for the published confidence = 0.5*strength + 0.3*sharpness + 0.2*snr.
const (
	weightStrength = 0.5
	weightSharp    = 0.3
	weightSNR      = 0.2
)

// Score returns the weighted, clamped confidence for f.
func (f Factors) Score() float64 {
	c := weightStrength*f.CorrelationStrength + weightSharp*f.PeakSharpness + weightSNR*f.SNR
	return clamp01(c)
}

// Calibrate derives ConfidenceFactors and the scalar confidence from a
// correlation buffer and its picked peak.
func Calibrate(buf correlate.Buffer, peak correlate.Peak) (Factors, float64) {
	f := Factors{
		CorrelationStrength: correlationStrength(buf, peak),
		PeakSharpness:       peakSharpness(buf, peak),
		SNR:                 snrFactor(peak),
	}
	return f, f.Score()
}

// correlationStrength is |peak| / rms(correlation), clamped to [0, 1]:
// it normalizes for overall correlation energy so a peak's absolute
// height is comparable across inputs of different scale.
func correlationStrength(buf correlate.Buffer, peak correlate.Peak) float64 {
	rms := rmsOf(buf.Values)
	if rms <= 0 {
		return 0
	}
	return clamp01(math.Abs(peak.Value) / rms)
}

// peakSharpness is |peak| / mean(|correlation|), squashed through
// tanh(x/10): it rewards peaks that stand out from the average, with a
// bounded (never hard-capped) score.
func peakSharpness(buf correlate.Buffer, peak correlate.Peak) float64 {
	mean := meanAbs(buf.Values)
	if mean <= 0 {
		return 0
	}
	x := math.Abs(peak.Value) / mean
	return clamp01(math.Tanh(x / 10))
}

// snrFactor is |peak|/|secondary| compressed via tanh(log(x+1)/3); a
// sentinel 1.0 is returned when there is no secondary peak.
func snrFactor(peak correlate.Peak) float64 {
	if peak.SecondaryPeakRatio >= correlate.SecondarySentinel {
		return 1.0
	}
	x := peak.SecondaryPeakRatio
	if x < 0 {
		x = 0
	}
	return clamp01(math.Tanh(math.Log(x+1) / 3))
}

// SNREstimateDB estimates signal-to-noise ratio in dB from a correlation
// buffer and its peak index: signal = corr[peak], noise = median of
// |corr[i]| for |i-peak| > 10, result = 20*log10(|signal|/noise). A
// default of 40dB is returned if no samples survive the exclusion
// window or the noise estimate is effectively zero.
func SNREstimateDB(buf correlate.Buffer, peakIndex int) float64 {
	var excluded []float64
	for i, v := range buf.Values {
		if abs(i-peakIndex) > 10 {
			excluded = append(excluded, math.Abs(v))
		}
	}
	if len(excluded) == 0 {
		return 40.0
	}
	noise := median(excluded)
	if noise < 1e-12 {
		return 40.0
	}
	var signal float64
	if peakIndex >= 0 && peakIndex < len(buf.Values) {
		signal = math.Abs(buf.Values[peakIndex])
	}
	return 20 * math.Log10(signal/noise)
}

// NoiseFloorDB is the 10th percentile of |correlation|, in dB (eps =
// 1e-10); a default of -60dB is returned for empty input.
func NoiseFloorDB(buf correlate.Buffer) float64 {
	if len(buf.Values) == 0 {
		return -60.0
	}
	abs := make([]float64, len(buf.Values))
	for i, v := range buf.Values {
		abs[i] = math.Abs(v)
	}
	sort.Float64s(abs)
	p10 := stat.Quantile(0.10, stat.Empirical, abs, nil)
	return 20 * math.Log10(p10+1e-10)
}

func rmsOf(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sumSq float64
	for _, v := range x {
		sumSq += v * v
	}
	return math.Sqrt(sumSq / float64(len(x)))
}

func meanAbs(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var sum float64
	for _, v := range x {
		sum += math.Abs(v)
	}
	return sum / float64(len(x))
}

func median(x []float64) float64 {
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
