// Package features turns a mono audio buffer into one of four
// frame-sequences (spectral flux, chroma, energy, MFCC) using a shared
// sliding-window frame loop over the dsp package's magnitude spectrum.
package features

import "math"

// Sequence is an ordered, owned sequence of fixed-dimension feature
// frames. Frame i corresponds to the audio sample position i*HopSize.
type Sequence struct {
	Dim      int
	HopSize  int
	Frames   [][]float64 // len(Frames[i]) == Dim for all i
}

// Len reports the number of frames.
func (s *Sequence) Len() int { return len(s.Frames) }

// Scalar returns frame i's single value; Dim must be 1.
func (s *Sequence) Scalar(i int) float64 { return s.Frames[i][0] }

// AllFinite reports whether every value in every frame is finite.
func (s *Sequence) AllFinite() bool {
	for _, f := range s.Frames {
		for _, v := range f {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

// Method identifies which of the five alignment methods produced or
// consumes a given sequence/result.
type Method int

const (
	MethodSpectralFlux Method = iota
	MethodChroma
	MethodEnergy
	MethodMFCC
	MethodHybrid
)

// Name returns the short ASCII method identifier the ABI's Result.method
// field and method_name() report.
func (m Method) Name() string {
	switch m {
	case MethodSpectralFlux:
		return "Spectral Flux"
	case MethodChroma:
		return "Chroma Features"
	case MethodEnergy:
		return "Energy Correlation"
	case MethodMFCC:
		return "MFCC"
	case MethodHybrid:
		return "Hybrid"
	default:
		return "Unknown"
	}
}
