package dsp

import (
	"sync"

	gonumwindow "gonum.org/v1/gonum/dsp/window"
)

// windowCache caches the Hann table for a given frame size, since the
// same size is reused across every frame of a call.
var windowCache = struct {
	mu    sync.Mutex
	cache map[int][]float64
}{cache: make(map[int][]float64)}

// Window returns the cached Hann window of length n:
//
//	w[i] = 0.5 * (1 - cos(2*pi*i/(n-1)))
//
// built from gonum.org/v1/gonum/dsp/window.Hann applied to a unit
// sequence.
func Window(n int) []float64 {
	windowCache.mu.Lock()
	defer windowCache.mu.Unlock()
	if w, ok := windowCache.cache[n]; ok {
		return w
	}
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	w = gonumwindow.Hann(w)
	windowCache.cache[n] = w
	return w
}
