package config

import (
	"testing"

	"github.com/aulei-sync/syncalign/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDegradeShrinksWindowMonotonically(t *testing.T) {
	cfg := DefaultConfig()
	prev := cfg.WindowSize
	for _, lvl := range []Level{LevelMinimal, LevelModerate, LevelSignificant, LevelEmergency} {
		resp := Degrade(cfg, lvl, nil, false)
		assert.LessOrEqual(t, resp.Config.WindowSize, prev)
		assert.GreaterOrEqual(t, resp.Config.WindowSize, windowFloor)
		prev = resp.Config.WindowSize
	}
}

func TestDegradeConfidenceFloor(t *testing.T) {
	cfg := DefaultConfig()
	resp := Degrade(cfg, LevelEmergency, nil, false)
	assert.GreaterOrEqual(t, resp.Config.ConfidenceThreshold, confidenceFloor)
}

func TestDegradeFallbackRespectsCompatibility(t *testing.T) {
	report := &model.AudioQualityReport{
		SpectralCentroidHz:   50, // too low for chroma
		HasExcessiveClipping: false,
		HasSufficientContent: true,
	}
	resp := Degrade(DefaultConfig(), LevelModerate, report, true)
	require.True(t, resp.HasFallbackMethod)
	assert.NotEqual(t, model.Chroma, resp.FallbackMethod)
}

func TestDegradeFallbackSkipsClippedMFCC(t *testing.T) {
	report := &model.AudioQualityReport{
		SpectralCentroidHz:   500,
		HasExcessiveClipping: true,
		HasSufficientContent: true,
	}
	m, ok := compatibleFallback(report)
	require.True(t, ok)
	assert.NotEqual(t, model.MFCC, m)
}

func TestStrategiesForOrdering(t *testing.T) {
	assert.Equal(t, []Strategy{StrategyReduceQuality, StrategyReducePrecision, StrategyFallbackMethod}, StrategiesFor(TriggerOutOfMemory))
	assert.Equal(t, []Strategy{StrategyFallbackMethod, StrategyAdaptiveParameters, StrategyReduceQuality}, StrategiesFor(TriggerProcessingFailed))
}
