package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sineBuffer(n int, freq, sampleRate float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
	}
	return s
}

func TestFluxSilenceBounded(t *testing.T) {
	samples := make([]float64, 44100*2)
	seq, err := Flux(samples, DefaultFluxParams(2048, 512))
	require.NoError(t, err)
	for i := 0; i < seq.Len(); i++ {
		assert.LessOrEqual(t, seq.Scalar(i), 0.1)
	}
	assert.True(t, seq.AllFinite())
}

func TestEnergySilenceIsZero(t *testing.T) {
	samples := make([]float64, 44100)
	seq, err := Energy(samples, DefaultEnergyParams(2048, 512))
	require.NoError(t, err)
	for i := 0; i < seq.Len(); i++ {
		assert.Equal(t, 0.0, seq.Scalar(i))
	}
}

func TestChromaNormalization(t *testing.T) {
	samples := sineBuffer(44100*2, 440, 44100)
	seq, err := Chroma(samples, DefaultChromaParams(2048, 512, 44100))
	require.NoError(t, err)
	for _, frame := range seq.Frames {
		var sum float64
		for _, v := range frame {
			sum += v
		}
		if sum > 0 {
			assert.InDelta(t, 1.0, sum, 1e-5)
		}
	}
	assert.True(t, seq.AllFinite())
}

func TestMFCCFiniteOnSilenceAndSignal(t *testing.T) {
	silence := make([]float64, 44100*3)
	seq, err := MFCC(silence, DefaultMFCCParams(2048, 512, 44100))
	require.NoError(t, err)
	assert.True(t, seq.AllFinite())
	assert.Equal(t, 13, seq.Dim)

	tone := sineBuffer(44100*3, 440, 44100)
	seq2, err := MFCC(tone, DefaultMFCCParams(2048, 512, 44100))
	require.NoError(t, err)
	assert.True(t, seq2.AllFinite())
}

func TestMFCCDropC0(t *testing.T) {
	samples := sineBuffer(44100, 440, 44100)
	p := DefaultMFCCParams(2048, 512, 44100)
	p.IncludeC0 = false
	seq, err := MFCC(samples, p)
	require.NoError(t, err)
	assert.Equal(t, 12, seq.Dim)
}
