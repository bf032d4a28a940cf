// Package correlate implements time-lag cross-correlation of feature
// sequences and the peak/secondary-peak picker that locates the
// dominant alignment lag.
package correlate

import "github.com/aulei-sync/syncalign/features"

// Buffer is a CorrelationBuffer: an ordered sequence of
// mean-normalized overlap-sums. Buffer[k] corresponds to lag
// k - (L-1) feature-frames, where L = min(len(a), len(b)).
type Buffer struct {
	Values []float64
	L      int // min(len(a), len(b))
}

// LagAt returns the lag, in feature-frames, that index k corresponds to.
func (b Buffer) LagAt(k int) int { return k - (b.L - 1) }

// Scalar cross-correlates two equal- or unequal-length scalar sequences.
// Each lag's value is the mean (not sum) of pairwise products over the
// overlapping region, so edge lags with few
// overlapping samples are not unfairly suppressed relative to the
// center.
func Scalar(a, b []float64) Buffer {
	l := len(a)
	if len(b) < l {
		l = len(b)
	}
	if l == 0 {
		return Buffer{Values: nil, L: 0}
	}

	n := 2*l - 1
	values := make([]float64, n)
	for k := 0; k < n; k++ {
		lag := k - (l - 1)
		values[k] = meanProduct(a, b, lag)
	}
	return Buffer{Values: values, L: l}
}

// meanProduct computes mean_i a[i]*b[i+lag] over the indices where both
// sides are in range.
func meanProduct(a, b []float64, lag int) float64 {
	var sum float64
	var count int
	for i := range a {
		j := i + lag
		if j < 0 || j >= len(b) {
			continue
		}
		sum += a[i] * b[j]
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// dimension extracts dimension d of every frame in seq as a scalar slice.
func dimension(seq *features.Sequence, d int) []float64 {
	out := make([]float64, len(seq.Frames))
	for i, f := range seq.Frames {
		out[i] = f[d]
	}
	return out
}

// Chroma cross-correlates two 12-D chroma sequences: each of the 12
// dimensions is correlated independently and the 12 resulting buffers
// are combined by an unweighted arithmetic mean
func Chroma(a, b *features.Sequence) Buffer {
	weights := make([]float64, a.Dim)
	for i := range weights {
		weights[i] = 1
	}
	return combine(a, b, weights, 0)
}

// MFCC cross-correlates two MFCC sequences with weight 1/(1+0.1*k) for
// coefficient k, where k is the true MFCC coefficient index (0 when
// includeC0 is true, 1 otherwise, since Sequence.Dim already excludes a
// dropped c0). Combination is a running weighted mean (weighted average
// normalized by total weight), not a weighted sum, so the down-weighting
// of high coefficients narrows their influence without shrinking the
// overall correlation magnitude —
func MFCC(a, b *features.Sequence, coeffOffset int) Buffer {
	weights := make([]float64, a.Dim)
	for i := range weights {
		k := i + coeffOffset
		weights[i] = 1 / (1 + 0.1*float64(k))
	}
	return combine(a, b, weights, 0)
}

// combine correlates each dimension of two multi-dimensional sequences
// independently and returns their weighted average, buffer-length
// normalized by the dividing-by-dimension centering adjustment callers
// apply separately (see peak.go's Offset).
func combine(a, b *features.Sequence, weights []float64, _ int) Buffer {
	if a.Dim == 0 || b.Dim == 0 {
		return Buffer{}
	}
	dims := a.Dim
	if b.Dim < dims {
		dims = b.Dim
	}

	var combined Buffer
	var totalWeight float64
	for d := 0; d < dims; d++ {
		buf := Scalar(dimension(a, d), dimension(b, d))
		w := 1.0
		if d < len(weights) {
			w = weights[d]
		}
		if d == 0 {
			combined = Buffer{Values: make([]float64, len(buf.Values)), L: buf.L}
		}
		for k, v := range buf.Values {
			combined.Values[k] += w * v
		}
		totalWeight += w
	}
	if totalWeight > 0 {
		for k := range combined.Values {
			combined.Values[k] /= totalWeight
		}
	}
	return combined
}
