package wavfixture

import (
	"math"
	"testing"

	"github.com/aulei-sync/syncalign/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWAVRoundtrip(t *testing.T) {
	samples := make([]float32, 1000)
	for i := range samples {
		samples[i] = float32(math.Sin(2 * math.Pi * float64(i) / 100))
	}
	buf := model.AudioBuffer{Samples: samples, SampleRate: 44100}

	data := Write(buf)
	recovered, err := Read(data)
	require.NoError(t, err)
	assert.Equal(t, 44100, recovered.SampleRate)
	require.Len(t, recovered.Samples, len(samples))

	for i := range samples {
		assert.InDelta(t, samples[i], recovered.Samples[i], 0.001)
	}
}

func TestReadRejectsBadHeader(t *testing.T) {
	_, err := Read([]byte("not a wav file"))
	assert.Error(t, err)
}

func TestReadMixesStereoToMono(t *testing.T) {
	// Hand-construct a tiny stereo WAV: two int16 samples per frame.
	stereo := model.AudioBuffer{Samples: []float32{0.5, -0.5, 1.0, -1.0}, SampleRate: 8000}
	data := Write(stereo)
	data[22] = 2 // channel count: the four samples become two L/R frames
	recovered, err := Read(data)
	require.NoError(t, err)
	require.Len(t, recovered.Samples, 2)
	// Each frame's channels cancel, so the mono mix is (near) zero.
	assert.InDelta(t, 0.0, recovered.Samples[0], 1e-3)
	assert.InDelta(t, 0.0, recovered.Samples[1], 1e-3)
}
