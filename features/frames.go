package features

// numFrames returns how many windows of size W, hop H fit in n samples;
// a short-but-valid buffer still yields one frame instead of zero.
func numFrames(n, windowSize, hopSize int) int {
	if n < windowSize {
		return 1
	}
	count := (n-windowSize)/hopSize + 1
	if count < 1 {
		count = 1
	}
	return count
}

// extractFrame copies windowSize samples starting at start, zero-padding
// past the end of src.
func extractFrame(src []float64, start, windowSize int) []float64 {
	frame := make([]float64, windowSize)
	end := start + windowSize
	if end > len(src) {
		end = len(src)
	}
	if start < len(src) {
		copy(frame, src[start:end])
	}
	return frame
}

// medianFilter applies an odd-sized sliding median filter to x,
// replicating edge values for the half-window at each boundary.
func medianFilter(x []float64, size int) []float64 {
	if size <= 1 || len(x) == 0 {
		out := make([]float64, len(x))
		copy(out, x)
		return out
	}
	if size%2 == 0 {
		size++
	}
	half := size / 2
	out := make([]float64, len(x))
	window := make([]float64, size)
	for i := range x {
		for j := 0; j < size; j++ {
			idx := i - half + j
			if idx < 0 {
				idx = 0
			}
			if idx >= len(x) {
				idx = len(x) - 1
			}
			window[j] = x[idx]
		}
		out[i] = median(window)
	}
	return out
}

func median(x []float64) float64 {
	sorted := append([]float64(nil), x...)
	insertionSort(sorted)
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// insertionSort is used for the small (filter-size) slices medianFilter
// sorts per sample; a full sort.Float64s per window would be overkill
// for the handful of elements a median filter window actually holds.
func insertionSort(x []float64) {
	for i := 1; i < len(x); i++ {
		v := x[i]
		j := i - 1
		for j >= 0 && x[j] > v {
			x[j+1] = x[j]
			j--
		}
		x[j+1] = v
	}
}

// minMaxNormalize scales x in place into [0, 1]. A constant sequence
// (max == min) is left at zero rather than dividing by zero.
func minMaxNormalize(x []float64) {
	if len(x) == 0 {
		return
	}
	min, max := x[0], x[0]
	for _, v := range x {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	span := max - min
	if span <= 0 {
		for i := range x {
			x[i] = 0
		}
		return
	}
	for i := range x {
		x[i] = (x[i] - min) / span
	}
}
