package dsp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestMagnitudeLengthAndSign(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		exp := rapid.IntRange(6, 13).Draw(t, "exp") // 64..8192
		n := 1 << exp

		frame := make([]float64, n)
		for i := range frame {
			frame[i] = rapid.Float64Range(-1, 1).Draw(t, "sample")
		}

		mag, err := Magnitude(frame)
		require.NoError(t, err)
		assert.Equal(t, n/2+1, len(mag))
		for _, v := range mag {
			assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
			assert.GreaterOrEqual(t, v, 0.0)
		}
	})
}

func TestMagnitudeRejectsBadSizes(t *testing.T) {
	_, err := Magnitude(make([]float64, 100)) // not a power of two
	assert.Error(t, err)

	_, err = Magnitude(make([]float64, 16384)) // too large
	assert.Error(t, err)

	_, err = Magnitude(nil)
	assert.Error(t, err)
}

func TestMagnitudeSinePeakAccuracy(t *testing.T) {
	const n = 2048
	const sampleRate = 44100.0
	const freq = 1000.0

	frame := make([]float64, n)
	for i := range frame {
		frame[i] = math.Sin(2 * math.Pi * freq * float64(i) / sampleRate)
	}

	mag, err := Magnitude(frame)
	require.NoError(t, err)

	peakBin := 0
	peakVal := -1.0
	for i, v := range mag {
		if v > peakVal {
			peakVal = v
			peakBin = i
		}
	}

	expectedBin := int(math.Round(freq * n / sampleRate))
	assert.LessOrEqual(t, abs(peakBin-expectedBin), 2)
}

func TestMagnitudeSilence(t *testing.T) {
	frame := make([]float64, 1024)
	mag, err := Magnitude(frame)
	require.NoError(t, err)
	for _, v := range mag {
		assert.InDelta(t, 0, v, 1e-9)
	}
}

func TestToDBFiniteAtSilence(t *testing.T) {
	assert.False(t, math.IsInf(ToDB20(0), 0))
	assert.False(t, math.IsInf(ToDB10(0), 0))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
