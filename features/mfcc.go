package features

import (
	"math"
	"sync"

	"github.com/aulei-sync/syncalign/dsp"
)

// MFCCParams configures the MFCC extractor.
type MFCCParams struct {
	WindowSize    int
	HopSize       int
	SampleRate    int
	NumCoeffs     int  // default 13
	NumMelFilters int  // default 26
	IncludeC0     bool // whether to keep coefficient 0
}

// DefaultMFCCParams returns the package's default parameters.
func DefaultMFCCParams(windowSize, hopSize, sampleRate int) MFCCParams {
	return MFCCParams{WindowSize: windowSize, HopSize: hopSize, SampleRate: sampleRate, NumCoeffs: 13, NumMelFilters: 26, IncludeC0: true}
}

// MFCC computes Mel-Frequency Cepstral Coefficient frames: magnitude
// spectrum -> triangular mel filterbank -> log compression -> DCT-II
// truncated to NumCoeffs, optionally dropping coefficient 0.
func MFCC(samples []float64, p MFCCParams) (*Sequence, error) {
	if p.NumCoeffs <= 0 {
		p.NumCoeffs = 13
	}
	if p.NumMelFilters <= 0 {
		p.NumMelFilters = 26
	}
	filters := melFilterbank(p.NumMelFilters, p.WindowSize, p.SampleRate)

	n := numFrames(len(samples), p.WindowSize, p.HopSize)
	frames := make([][]float64, n)

	start := 0
	dim := p.NumCoeffs
	if !p.IncludeC0 {
		start = 1
		dim = p.NumCoeffs - 1
		if dim < 0 {
			dim = 0
		}
	}

	for i := 0; i < n; i++ {
		frame := extractFrame(samples, i*p.HopSize, p.WindowSize)
		mag, err := dsp.Magnitude(frame)
		if err != nil {
			return nil, err
		}

		melEnergies := make([]float64, p.NumMelFilters)
		for f := 0; f < p.NumMelFilters; f++ {
			var e float64
			for j := 0; j < len(mag) && j < len(filters[f]); j++ {
				e += mag[j] * mag[j] * filters[f][j]
			}
			melEnergies[f] = math.Log(e + 1e-10)
		}

		coeffs := dctII(melEnergies, p.NumCoeffs)
		frames[i] = append([]float64(nil), coeffs[start:start+dim]...)
	}

	return &Sequence{Dim: dim, HopSize: p.HopSize, Frames: frames}, nil
}

// dctII computes the first numOut coefficients of the type-II discrete
// cosine transform of x.
func dctII(x []float64, numOut int) []float64 {
	n := len(x)
	out := make([]float64, numOut)
	for k := 0; k < numOut; k++ {
		var sum float64
		for j := 0; j < n; j++ {
			sum += x[j] * math.Cos(math.Pi*float64(k)*(float64(j)+0.5)/float64(n))
		}
		out[k] = sum
	}
	return out
}

var melFilterCache = struct {
	mu    sync.Mutex
	cache map[[3]int][][]float64
}{cache: make(map[[3]int][][]float64)}

// melFilterbank builds (and caches) a triangular mel filterbank spanning
// [0, sampleRate/2]: filter center frequencies are spaced evenly on the
// mel scale, then mapped back to FFT bins.
func melFilterbank(numFilters, windowSize, sampleRate int) [][]float64 {
	key := [3]int{numFilters, windowSize, sampleRate}
	melFilterCache.mu.Lock()
	defer melFilterCache.mu.Unlock()
	if f, ok := melFilterCache.cache[key]; ok {
		return f
	}

	hzToMel := func(hz float64) float64 { return 2595 * math.Log10(1+hz/700) }
	melToHz := func(mel float64) float64 { return 700 * (math.Pow(10, mel/2595) - 1) }

	nyquist := float64(sampleRate) / 2
	lowMel := hzToMel(0)
	highMel := hzToMel(nyquist)

	numBins := windowSize/2 + 1
	melPoints := make([]float64, numFilters+2)
	for i := range melPoints {
		melPoints[i] = lowMel + float64(i)*(highMel-lowMel)/float64(numFilters+1)
	}
	binPoints := make([]int, numFilters+2)
	for i, mel := range melPoints {
		hz := melToHz(mel)
		binPoints[i] = int(math.Floor(hz * float64(windowSize) / float64(sampleRate)))
		if binPoints[i] >= numBins {
			binPoints[i] = numBins - 1
		}
	}

	filters := make([][]float64, numFilters)
	for i := 0; i < numFilters; i++ {
		filters[i] = make([]float64, numBins)
		for j := binPoints[i]; j < binPoints[i+1] && j < numBins; j++ {
			if binPoints[i+1] != binPoints[i] {
				filters[i][j] = float64(j-binPoints[i]) / float64(binPoints[i+1]-binPoints[i])
			}
		}
		for j := binPoints[i+1]; j < binPoints[i+2] && j < numBins; j++ {
			if binPoints[i+2] != binPoints[i+1] {
				filters[i][j] = float64(binPoints[i+2]-j) / float64(binPoints[i+2]-binPoints[i+1])
			}
		}
	}

	melFilterCache.cache[key] = filters
	return filters
}
