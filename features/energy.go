package features

import "math"

// EnergyParams configures the RMS energy extractor.
type EnergyParams struct {
	WindowSize       int
	HopSize          int
	MedianFilterSize int // default 5
}

// DefaultEnergyParams returns the package's default parameters.
func DefaultEnergyParams(windowSize, hopSize int) EnergyParams {
	return EnergyParams{WindowSize: windowSize, HopSize: hopSize, MedianFilterSize: 5}
}

// Energy computes the per-frame RMS profile, median-smoothed (length 5)
// and min-max normalized.
func Energy(samples []float64, p EnergyParams) (*Sequence, error) {
	n := numFrames(len(samples), p.WindowSize, p.HopSize)
	raw := make([]float64, n)

	for i := 0; i < n; i++ {
		frame := extractFrame(samples, i*p.HopSize, p.WindowSize)
		var sumSq float64
		for _, v := range frame {
			sumSq += v * v
		}
		raw[i] = math.Sqrt(sumSq / float64(len(frame)))
	}

	smoothed := medianFilter(raw, p.MedianFilterSize)
	minMaxNormalize(smoothed)

	frames := make([][]float64, n)
	for i, v := range smoothed {
		frames[i] = []float64{v}
	}
	return &Sequence{Dim: 1, HopSize: p.HopSize, Frames: frames}, nil
}
