package validate

import (
	"math"
	"testing"

	"github.com/aulei-sync/syncalign/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sineBuffer(n int, freq float64, sampleRate int) model.AudioBuffer {
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = float32(0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)))
	}
	return model.AudioBuffer{Samples: samples, SampleRate: sampleRate}
}

func TestBufferRejectsNil(t *testing.T) {
	err := Buffer(model.AudioBuffer{SampleRate: 44100})
	require.Error(t, err)
}

func TestBufferRejectsBadSampleRate(t *testing.T) {
	buf := sineBuffer(4096, 440, 44100)
	buf.SampleRate = 7999
	err := Buffer(buf)
	require.Error(t, err)
}

func TestBufferRejectsNonFinite(t *testing.T) {
	buf := sineBuffer(4096, 440, 44100)
	buf.Samples[10] = float32(math.NaN())
	err := Buffer(buf)
	require.Error(t, err)
}

func TestPairRejectsInsufficientData(t *testing.T) {
	ref := sineBuffer(8000, 440, 44100) // well under flux's 2s minimum at 44.1kHz
	tgt := sineBuffer(8000, 440, 44100)
	err := Pair(ref, tgt, model.SpectralFlux)
	require.Error(t, err)
}

func TestPairRejectsSampleRateMismatch(t *testing.T) {
	ref := sineBuffer(int(2.5*44100), 440, 44100)
	tgt := sineBuffer(int(2.5*48000), 440, 48000)
	err := Pair(ref, tgt, model.Energy)
	require.Error(t, err)
}

func TestPairAcceptsValidPair(t *testing.T) {
	ref := sineBuffer(int(2.5*44100), 440, 44100)
	tgt := sineBuffer(int(2.5*44100), 440, 44100)
	err := Pair(ref, tgt, model.Energy)
	assert.NoError(t, err)
}

func TestAnalyzeSilence(t *testing.T) {
	buf := model.AudioBuffer{Samples: make([]float32, 8192), SampleRate: 44100}
	report := Analyze(buf)
	assert.Equal(t, 1.0, report.SilenceRatio)
	assert.False(t, report.HasSufficientContent)
}

func TestAnalyzeSineHasFiniteDynamicRange(t *testing.T) {
	buf := sineBuffer(44100, 440, 44100)
	report := Analyze(buf)
	assert.True(t, math.IsInf(report.DynamicRangeDB, 0) == false)
	assert.Greater(t, report.RMSLevel, 0.0)
}

func TestEstimateProcessingTimePositive(t *testing.T) {
	cfg := model.Config{WindowSize: 4096, HopSize: 512}
	got := EstimateProcessingTime(2.0, cfg, model.MFCC)
	assert.Greater(t, got, 0.0)
}

func TestEstimateMemoryBytesPositive(t *testing.T) {
	cfg := model.Config{WindowSize: 2048}
	got := EstimateMemoryBytes(44100, 44100, cfg)
	assert.Greater(t, got, int64(0))
}
