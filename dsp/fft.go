// Package dsp implements the windowed FFT pipeline shared by every
// feature extractor: a cached Hann window plus a one-sided magnitude
// spectrum built on gonum's real-input FFT (gonum.org/v1/gonum/dsp/fourier),
// the same API the corpus's own audio analyzers use
// (gonum fourier.NewFFT + (*FFT).Coefficients) rather than a hand-rolled
// Cooley-Tukey butterfly network.
package dsp

import (
	"fmt"
	"math"
	"sync"

	"github.com/aulei-sync/syncalign/errs"
	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	// MinFrameSize and MaxFrameSize bound the window sizes the pipeline
	// accepts
	MinFrameSize = 64
	MaxFrameSize = 8192

	// epsilon keeps dB conversions finite at silence.
	epsilon = 1e-10
)

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// planCache caches a gonum *fourier.FFT plan per frame size, since
// constructing one precomputes twiddle factors that can be reused
// across calls at the same size.
type planCache struct {
	mu    sync.Mutex
	plans map[int]*fourier.FFT
}

var plans = &planCache{plans: make(map[int]*fourier.FFT)}

func (c *planCache) get(n int) *fourier.FFT {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.plans[n]; ok {
		return p
	}
	p := fourier.NewFFT(n)
	c.plans[n] = p
	return p
}

// Magnitude computes the one-sided magnitude spectrum of a Hann-windowed
// real frame. len(frame) must be a power of two in [MinFrameSize,
// MaxFrameSize]; the output has length len(frame)/2+1, is finite and
// non-negative. Rejections are returned as an *errs.Error of kind
// INVALID_INPUT.
func Magnitude(frame []float64) ([]float64, error) {
	n := len(frame)
	if frame == nil {
		return nil, errs.New(errs.InvalidInput, "dsp", "nil frame", "")
	}
	if !IsPowerOfTwo(n) {
		return nil, errs.New(errs.InvalidInput, "dsp", fmt.Sprintf("frame length %d is not a power of two", n), "")
	}
	if n < MinFrameSize || n > MaxFrameSize {
		return nil, errs.New(errs.InvalidInput, "dsp", fmt.Sprintf("frame length %d outside [%d, %d]", n, MinFrameSize, MaxFrameSize), "")
	}

	windowed := make([]float64, n)
	w := Window(n)
	for i, v := range frame {
		windowed[i] = v * w[i]
	}

	fft := plans.get(n)
	coeffs := fft.Coefficients(nil, windowed)

	mag := make([]float64, n/2+1)
	for i, c := range coeffs {
		re, im := real(c), imag(c)
		mag[i] = math.Sqrt(re*re + im*im)
		if math.IsNaN(mag[i]) || math.IsInf(mag[i], 0) {
			mag[i] = 0
		}
	}
	return mag, nil
}

// Power returns the elementwise square of a magnitude spectrum.
func Power(mag []float64) []float64 {
	p := make([]float64, len(mag))
	for i, m := range mag {
		p[i] = m * m
	}
	return p
}

// ToDB20 converts a magnitude (amplitude) value to decibels using
// 20*log10(x + eps), the fixed epsilon keeping silence finite.
func ToDB20(x float64) float64 {
	return 20 * math.Log10(x+epsilon)
}

// ToDB10 converts a power value to decibels using 10*log10(x + eps).
func ToDB10(x float64) float64 {
	return 10 * math.Log10(x+epsilon)
}
