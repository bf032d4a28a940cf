package config

import "github.com/aulei-sync/syncalign/model"

// Trigger identifies why degradation was invoked.
type Trigger int

const (
	TriggerOutOfMemory Trigger = iota
	TriggerProcessingFailed
	TriggerInsufficientData
)

// Strategy is one degradation action.
type Strategy int

const (
	StrategyReduceQuality Strategy = iota
	StrategyReducePrecision
	StrategyFallbackMethod
	StrategyAdaptiveParameters
)

// strategyOrder gives, per trigger, the order in which strategies are
// attempted.
var strategyOrder = map[Trigger][]Strategy{
	TriggerOutOfMemory:      {StrategyReduceQuality, StrategyReducePrecision, StrategyFallbackMethod},
	TriggerProcessingFailed: {StrategyFallbackMethod, StrategyAdaptiveParameters, StrategyReduceQuality},
	TriggerInsufficientData: {StrategyAdaptiveParameters, StrategyReduceQuality, StrategyFallbackMethod},
}

// StrategiesFor returns the ordered strategies for trigger.
func StrategiesFor(t Trigger) []Strategy {
	return strategyOrder[t]
}

// Level is a degradation severity tier; each level halves window_size
// once more than the one before it (floor 256) and lowers
// confidence_threshold by a further 0.1 (floor 0.3). Every level sets
// hop_size to window_size/2.
type Level int

const (
	LevelMinimal Level = iota
	LevelModerate
	LevelSignificant
	LevelEmergency
)

// fallbackOrder is the ordered, preference-ranked set of compatible
// methods degradation falls back through.
var fallbackOrder = []model.Method{model.Energy, model.SpectralFlux, model.Chroma, model.MFCC, model.Hybrid}

// Response is what a degradation attempt reports back to the caller.
type Response struct {
	Level              Level
	Config             model.Config
	FallbackMethod     model.Method
	HasFallbackMethod  bool
	ExpectedConfidence float64 // multiplicative impact on confidence, e.g. 0.9 = -10%
	EstimatedSpeedup   float64 // multiplicative, e.g. 1.5 = 50% faster
}

// windowFloor is the minimum window_size degradation will shrink to.
const windowFloor = 256

// confidenceFloor is the minimum confidence_threshold degradation will
// lower to.
const confidenceFloor = 0.3

// Degrade applies level to cfg, producing a new Config plus expected
// impact estimates. report, if non-nil, is used to pick a compatible
// fallback method when needed.
func Degrade(cfg model.Config, level Level, report *model.AudioQualityReport, needFallback bool) Response {
	steps := int(level) + 1
	out := cfg

	for i := 0; i < steps; i++ {
		if out.WindowSize/2 >= windowFloor {
			out.WindowSize /= 2
		} else {
			out.WindowSize = windowFloor
		}
	}
	out.HopSize = out.WindowSize / 2 // coarser hop than the default /4, for speed
	if out.HopSize < 1 {
		out.HopSize = 1
	}

	reduction := 0.1 * float64(steps)
	out.ConfidenceThreshold = cfg.ConfidenceThreshold - reduction
	if out.ConfidenceThreshold < confidenceFloor {
		out.ConfidenceThreshold = confidenceFloor
	}

	resp := Response{
		Level:              level,
		Config:             out,
		ExpectedConfidence: 1.0 - 0.05*float64(steps),
		EstimatedSpeedup:   1.0 + 0.3*float64(steps),
	}

	if needFallback {
		if m, ok := compatibleFallback(report); ok {
			resp.FallbackMethod = m
			resp.HasFallbackMethod = true
		}
	}
	return resp
}

// compatibleFallback walks fallbackOrder and returns the first method
// whose compatibility requirement the quality report satisfies:
// chroma needs spectral centroid > 200Hz, MFCC needs no excessive
// clipping, hybrid needs sufficient content on both sides and >= 4s
// (approximated here via HasSufficientContent, since duration is a
// caller-side concern the report does not carry directly).
func compatibleFallback(report *model.AudioQualityReport) (model.Method, bool) {
	for _, m := range fallbackOrder {
		if report == nil {
			return m, true
		}
		switch m {
		case model.Chroma:
			if report.SpectralCentroidHz <= 200 {
				continue
			}
		case model.MFCC:
			if report.HasExcessiveClipping {
				continue
			}
		case model.Hybrid:
			if !report.HasSufficientContent {
				continue
			}
		}
		return m, true
	}
	return model.Energy, false
}
