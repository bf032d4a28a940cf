package features

import (
	"math"

	"github.com/aulei-sync/syncalign/dsp"
)

// ChromaParams configures the chroma extractor.
type ChromaParams struct {
	WindowSize int
	HopSize    int
	SampleRate int
	NumBins    int // default 12
}

// DefaultChromaParams returns the package's default parameters.
func DefaultChromaParams(windowSize, hopSize, sampleRate int) ChromaParams {
	return ChromaParams{WindowSize: windowSize, HopSize: hopSize, SampleRate: sampleRate, NumBins: 12}
}

// Chroma computes the 12-dimensional chroma frame sequence: each
// spectral bin in (80Hz, 2000Hz) is mapped to a MIDI pitch class and
// accumulated into the corresponding chroma bin, then the 12-vector is
// L1-normalized (left at zero if its sum is zero).
func Chroma(samples []float64, p ChromaParams) (*Sequence, error) {
	if p.NumBins <= 0 {
		p.NumBins = 12
	}
	n := numFrames(len(samples), p.WindowSize, p.HopSize)
	frames := make([][]float64, n)
	// f_k = k*SR/(2*(M-1)) with M = WindowSize/2+1 magnitude bins reduces
	// to k*SR/WindowSize, the usual FFT bin-to-frequency mapping.
	freqPerBin := float64(p.SampleRate) / float64(p.WindowSize)

	for i := 0; i < n; i++ {
		frame := extractFrame(samples, i*p.HopSize, p.WindowSize)
		mag, err := dsp.Magnitude(frame)
		if err != nil {
			return nil, err
		}

		chroma := make([]float64, p.NumBins)
		for k, m := range mag {
			freq := float64(k) * freqPerBin
			if freq <= 80 || freq >= 2000 {
				continue
			}
			midi := 12*math.Log2(freq/440) + 69
			class := int(math.Floor(midi)) % p.NumBins
			if class < 0 {
				class += p.NumBins
			}
			chroma[class] += m
		}

		var sum float64
		for _, v := range chroma {
			sum += v
		}
		if sum > 0 {
			for i := range chroma {
				chroma[i] /= sum
			}
		}
		frames[i] = chroma
	}

	return &Sequence{Dim: p.NumBins, HopSize: p.HopSize, Frames: frames}, nil
}
