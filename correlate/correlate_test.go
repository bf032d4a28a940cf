package correlate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScalarIdentityPeaksAtZeroLag(t *testing.T) {
	a := []float64{0, 1, 2, 3, 2, 1, 0, 1, 2, 1}
	buf := Scalar(a, a)
	peak := Pick(buf)
	assert.Equal(t, 0, buf.LagAt(peak.Index))
}

func TestScalarKnownShift(t *testing.T) {
	a := make([]float64, 50)
	for i := range a {
		a[i] = float64(i % 7)
	}
	shift := 3
	b := make([]float64, len(a))
	for i := range b {
		src := i - shift
		if src >= 0 && src < len(a) {
			b[i] = a[src]
		}
	}
	buf := Scalar(a, b)
	peak := Pick(buf)
	assert.Equal(t, shift, buf.LagAt(peak.Index))
}

func TestPickSentinelWithoutSecondary(t *testing.T) {
	buf := Buffer{Values: []float64{5}, L: 1}
	peak := Pick(buf)
	assert.Equal(t, SecondarySentinel, peak.SecondaryPeakRatio)
}

func TestPickEmptyBuffer(t *testing.T) {
	peak := Pick(Buffer{})
	assert.Equal(t, SecondarySentinel, peak.SecondaryPeakRatio)
}

func TestDetectOnsetsImpulseTrain(t *testing.T) {
	sampleRate := 44100
	hop := 512
	duration := 2.0
	n := int(duration * float64(sampleRate) / float64(hop))
	flux := make([]float64, n)

	impulses := []float64{0.1, 0.3, 0.7, 1.2, 1.8}
	for _, t := range impulses {
		idx := int(t * float64(sampleRate) / float64(hop))
		if idx < len(flux) {
			flux[idx] = 1.0
		}
	}

	onsets := DetectOnsets(flux, 0.1, 10)
	assert.GreaterOrEqual(t, len(onsets), 3)
	assert.LessOrEqual(t, len(onsets), 7)
}

func TestDetectOnsetsSpacing(t *testing.T) {
	flux := make([]float64, 100)
	flux[10] = 1.0
	flux[12] = 0.9 // too close to 10, weaker -> rejected
	flux[40] = 0.8

	onsets := DetectOnsets(flux, 0.1, 10)
	for _, o := range onsets {
		assert.NotEqual(t, 12, o)
	}
}
