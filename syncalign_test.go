package syncalign

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sineBuffer(seconds, freq float64, sampleRate int) AudioBuffer {
	n := int(seconds * float64(sampleRate))
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = float32(0.6 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)))
	}
	return AudioBuffer{Samples: samples, SampleRate: sampleRate}
}

func TestDefaultConfigIsValid(t *testing.T) {
	errors, _ := ValidateConfig(DefaultConfig())
	assert.Empty(t, errors)
}

func TestConfigForUseCaseMusic(t *testing.T) {
	cfg := ConfigForUseCase("music")
	assert.GreaterOrEqual(t, cfg.WindowSize, 2048)
	assert.GreaterOrEqual(t, cfg.ConfidenceThreshold, 0.75)
}

func TestMinAudioLengthScalesWithSampleRate(t *testing.T) {
	at44k := MinAudioLength(Chroma, 44100)
	at48k := MinAudioLength(Chroma, 48000)
	assert.Greater(t, at48k, at44k)
}

func TestErrorDescriptionNonEmpty(t *testing.T) {
	assert.NotEmpty(t, ErrorDescription(InvalidInput))
	assert.Equal(t, "no error", ErrorDescription(Success))
}

func TestMethodNameMatchesABI(t *testing.T) {
	assert.Equal(t, "Spectral Flux", MethodName(SpectralFlux))
	assert.Equal(t, "Hybrid", MethodName(Hybrid))
}

func TestAlignIdentitySucceeds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ConfidenceThreshold = 0.3
	ref := sineBuffer(2.0, 440, 44100)
	result := Align(ref, ref, Energy, cfg)
	require.Equal(t, Success, result.Error)
	assert.GreaterOrEqual(t, result.Confidence, cfg.ConfidenceThreshold)
}

func TestAlignContextRejectsCancelledUpFront(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ref := sineBuffer(2.0, 440, 44100)
	result := AlignContext(ctx, ref, ref, Energy, DefaultConfig())
	assert.Equal(t, ProcessingFailed, result.Error)
	assert.Equal(t, 0.0, result.Confidence)
}

func TestEngineLifecycle(t *testing.T) {
	e := CreateEngine()
	defer DestroyEngine(e)

	cfg := GetEngineConfig(e)
	assert.Equal(t, DefaultConfig(), cfg)

	cfg.ConfidenceThreshold = 0.9
	SetEngineConfig(e, cfg)
	assert.Equal(t, 0.9, GetEngineConfig(e).ConfidenceThreshold)
}

func TestProcessPlaceholderHardcodesRateAndMethod(t *testing.T) {
	e := CreateEngine()
	defer DestroyEngine(e)
	SetEngineConfig(e, func() Config { c := DefaultConfig(); c.ConfidenceThreshold = 0.3; return c }())

	ref := sineBuffer(2.0, 440, 44100).Samples
	result, err := Process(e, ref, ref)
	require.NoError(t, err)
	assert.Equal(t, "Spectral Flux", result.Method)
}

func TestVersionNonEmpty(t *testing.T) {
	assert.NotEmpty(t, Version())
	assert.Contains(t, BuildInfo(), Version())
}

func TestEstimateProcessingTimePositive(t *testing.T) {
	got := EstimateProcessingTime(44100*2, 44100, MFCC)
	assert.Greater(t, got, 0.0)
}
