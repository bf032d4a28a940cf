package confidence

import (
	"testing"

	"github.com/aulei-sync/syncalign/correlate"
	"github.com/stretchr/testify/assert"
)

func TestCalibrateBounded(t *testing.T) {
	buf := correlate.Buffer{Values: []float64{0.1, 0.2, 5.0, 0.3, 0.1}, L: 3}
	peak := correlate.Pick(buf)
	factors, score := Calibrate(buf, peak)

	assert.GreaterOrEqual(t, factors.CorrelationStrength, 0.0)
	assert.LessOrEqual(t, factors.CorrelationStrength, 1.0)
	assert.GreaterOrEqual(t, factors.PeakSharpness, 0.0)
	assert.LessOrEqual(t, factors.PeakSharpness, 1.0)
	assert.GreaterOrEqual(t, factors.SNR, 0.0)
	assert.LessOrEqual(t, factors.SNR, 1.0)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
}

func TestSNRFactorSentinel(t *testing.T) {
	peak := correlate.Peak{Value: 5, SecondaryPeakRatio: correlate.SecondarySentinel}
	assert.Equal(t, 1.0, snrFactor(peak))
}

func TestNoiseFloorEmptyDefault(t *testing.T) {
	assert.Equal(t, -60.0, NoiseFloorDB(correlate.Buffer{}))
}

func TestSNREstimateDefaultOnSparse(t *testing.T) {
	buf := correlate.Buffer{Values: []float64{1, 2, 3}, L: 2}
	got := SNREstimateDB(buf, 1)
	assert.Equal(t, 40.0, got)
}
