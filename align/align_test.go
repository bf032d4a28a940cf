package align

import (
	"math"
	"testing"

	"github.com/aulei-sync/syncalign/config"
	"github.com/aulei-sync/syncalign/errs"
	"github.com/aulei-sync/syncalign/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sineBuffer(seconds float64, freq float64, sampleRate int) model.AudioBuffer {
	n := int(seconds * float64(sampleRate))
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = float32(0.6 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)))
	}
	return model.AudioBuffer{Samples: samples, SampleRate: sampleRate}
}

func shifted(b model.AudioBuffer, delaySamples int) model.AudioBuffer {
	out := make([]float32, len(b.Samples))
	for i := range out {
		src := i - delaySamples
		if src >= 0 && src < len(b.Samples) {
			out[i] = b.Samples[src]
		}
	}
	return model.AudioBuffer{Samples: out, SampleRate: b.SampleRate}
}

func TestAlignEnergyIdentity(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ConfidenceThreshold = 0.3
	ref := sineBuffer(2.0, 440, 44100)
	result := AlignEnergy(ref, ref, cfg)
	require.Equal(t, errs.Success, result.Error)
	assert.LessOrEqual(t, int64(math.Abs(float64(result.OffsetSamples))), int64(cfg.HopSize*2))
}

func TestAlignEnergyKnownShift(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ConfidenceThreshold = 0.3
	ref := sineBuffer(2.0, 440, 44100)
	tgt := shifted(ref, 2205) // 50ms at 44.1kHz
	result := AlignEnergy(ref, tgt, cfg)
	require.Equal(t, errs.Success, result.Error)
	assert.InDelta(t, 2205, result.OffsetSamples, float64(cfg.HopSize*2))
}

func TestAlignRejectsSampleRateMismatch(t *testing.T) {
	cfg := config.DefaultConfig()
	ref := sineBuffer(2.5, 440, 44100)
	tgt := sineBuffer(2.5, 440, 7999)
	result := Align(ref, tgt, model.Energy, cfg)
	assert.Equal(t, errs.UnsupportedFormat, result.Error)
	assert.Equal(t, 0.0, result.Confidence)
	assert.Equal(t, int64(0), result.OffsetSamples)
}

func TestAlignInsufficientData(t *testing.T) {
	cfg := config.DefaultConfig()
	ref := sineBuffer(0.5, 440, 44100)
	result := Align(ref, ref, model.SpectralFlux, cfg)
	assert.Equal(t, errs.InsufficientData, result.Error)
}

func TestAlignBatchIndependence(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ConfidenceThreshold = 0.3
	ref := sineBuffer(2.0, 440, 44100)
	targets := []model.AudioBuffer{
		shifted(ref, 441),
		shifted(ref, 2205),
		shifted(ref, 4410),
	}
	results := AlignBatch(ref, targets, model.Energy, cfg)
	require.Len(t, results, 3)
	for i, r := range results {
		assert.Equal(t, errs.Success, r.Error)
		assert.Equal(t, Align(ref, targets[i], model.Energy, cfg), r)
	}
}

func TestAlignHybridFallsBackGracefully(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ConfidenceThreshold = 0.3
	ref := sineBuffer(4.0, 440, 44100)
	tgt := shifted(ref, 441)
	result := AlignHybrid(ref, tgt, cfg)
	assert.Equal(t, "Hybrid", result.Method)
	if result.Error == errs.Success {
		assert.GreaterOrEqual(t, result.Confidence, cfg.ConfidenceThreshold)
	}
}
