package features

import (
	"sort"

	"github.com/aulei-sync/syncalign/dsp"
	"gonum.org/v1/gonum/stat"
)

// FluxParams configures the spectral flux extractor.
type FluxParams struct {
	WindowSize       int
	HopSize          int
	MedianFilterSize int     // default 3
	ThresholdPercent float64 // default 0.10 (10th percentile)
}

// DefaultFluxParams returns the package's default parameters.
func DefaultFluxParams(windowSize, hopSize int) FluxParams {
	return FluxParams{WindowSize: windowSize, HopSize: hopSize, MedianFilterSize: 3, ThresholdPercent: 0.10}
}

// Flux computes the spectral-flux frame sequence of samples: for each
// adjacent frame pair the half-wave-rectified L1 difference over bins
// k>=1 (DC excluded), followed by adaptive thresholding (percentile
// subtract, clamp at zero), median smoothing, and min-max normalization,
// in that order.
func Flux(samples []float64, p FluxParams) (*Sequence, error) {
	n := numFrames(len(samples), p.WindowSize, p.HopSize)
	raw := make([]float64, n)

	var prevMag []float64
	for i := 0; i < n; i++ {
		frame := extractFrame(samples, i*p.HopSize, p.WindowSize)
		mag, err := dsp.Magnitude(frame)
		if err != nil {
			return nil, err
		}
		if prevMag != nil {
			var flux float64
			for k := 1; k < len(mag); k++ {
				d := mag[k] - prevMag[k]
				if d > 0 {
					flux += d
				}
			}
			raw[i] = flux
		}
		prevMag = mag
	}

	thresholded := adaptiveThreshold(raw, p.ThresholdPercent)
	smoothed := medianFilter(thresholded, p.MedianFilterSize)
	minMaxNormalize(smoothed)

	frames := make([][]float64, n)
	for i, v := range smoothed {
		frames[i] = []float64{v}
	}
	return &Sequence{Dim: 1, HopSize: p.HopSize, Frames: frames}, nil
}

// adaptiveThreshold subtracts the pct-th percentile of x from every
// element and clamps the result at zero.
func adaptiveThreshold(x []float64, pct float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)
	if len(x) == 0 {
		return out
	}
	sorted := append([]float64(nil), x...)
	sort.Float64s(sorted)
	threshold := stat.Quantile(pct, stat.Empirical, sorted, nil)
	for i, v := range out {
		v -= threshold
		if v < 0 {
			v = 0
		}
		out[i] = v
	}
	return out
}
