// Package syncalign is the audio synchronization core: given a
// reference and a target mono buffer recorded of the same event, it
// determines the integer sample offset that best aligns them, plus a
// calibrated confidence score and diagnostic quality metrics.
//
// The package is stateless except for the optional Engine handle. All
// public operations are synchronous and run on the caller's goroutine;
// there are no background goroutines, timers, or hidden callbacks.
package syncalign

import (
	"context"
	"time"

	"github.com/aulei-sync/syncalign/align"
	"github.com/aulei-sync/syncalign/config"
	"github.com/aulei-sync/syncalign/errs"
	"github.com/aulei-sync/syncalign/metrics"
	"github.com/aulei-sync/syncalign/model"
	"github.com/aulei-sync/syncalign/validate"
	"github.com/prometheus/client_golang/prometheus"
)

// Re-exported types so callers only need to import this package for
// the common path.
type (
	AudioBuffer        = model.AudioBuffer
	Config             = model.Config
	Result             = model.Result
	AudioQualityReport = model.AudioQualityReport
	Method             = model.Method
)

// Re-exported method constants.
const (
	SpectralFlux = model.SpectralFlux
	Chroma       = model.Chroma
	Energy       = model.Energy
	MFCC         = model.MFCC
	Hybrid       = model.Hybrid
)

// Re-exported error kinds.
const (
	Success           = errs.Success
	InvalidInput      = errs.InvalidInput
	InsufficientData  = errs.InsufficientData
	ProcessingFailed  = errs.ProcessingFailed
	OutOfMemory       = errs.OutOfMemory
	UnsupportedFormat = errs.UnsupportedFormat
)

// RegisterMetrics wires Prometheus instrumentation against reg for
// every subsequent Align/AlignBatch call made through this package.
// Callers that never call this incur no collection overhead.
func RegisterMetrics(reg prometheus.Registerer) {
	globalMetrics = metrics.Register(reg)
}

// globalMetrics is nil unless RegisterMetrics is called; every
// observation call tolerates a nil receiver.
var globalMetrics *metrics.Metrics

// DefaultConfig returns the library's baseline Config.
func DefaultConfig() Config { return config.DefaultConfig() }

// ConfigForUseCase returns a tuned Config for a named use case
// ("music", "speech", "ambient", "multicam", "broadcast"); any other
// name returns the Balanced profile untuned.
func ConfigForUseCase(name string) Config { return config.ForUseCase(name) }

// ValidateConfig reports invalid and warned-about fields of cfg.
func ValidateConfig(cfg Config) (errors, warnings []config.Issue) {
	return config.Validate(cfg)
}

// AutoCorrectConfig clamps every out-of-range field of cfg to its
// nearest valid value.
func AutoCorrectConfig(cfg Config) Config { return config.AutoCorrect(cfg) }

// MinAudioLength returns the minimum sample count method requires at
// sampleRate.
func MinAudioLength(m Method, sampleRate int) int { return validate.MinLength(m, sampleRate) }

// ErrorDescription returns the human-readable description of an error kind.
func ErrorDescription(k errs.Kind) string { return k.Description() }

// MethodName returns the short ASCII identifier for m.
func MethodName(m Method) string { return m.Name() }

// EstimateProcessingTime estimates wall-clock alignment time in
// seconds for a buffer of lengthSamples at sampleRate under method,
// using the default Config (the ABI operation takes no config
// argument).
func EstimateProcessingTime(lengthSamples, sampleRate int, m Method) float64 {
	if sampleRate <= 0 {
		return 0
	}
	duration := float64(lengthSamples) / float64(sampleRate)
	return validate.EstimateProcessingTime(duration, DefaultConfig(), m)
}

// AnalyzeQuality runs the (side-effect-free) quality analyzer over buf.
func AnalyzeQuality(buf AudioBuffer) AudioQualityReport { return validate.Analyze(buf) }

// Re-exported degradation types.
type (
	DegradationTrigger  = config.Trigger
	DegradationLevel    = config.Level
	DegradationResponse = config.Response
)

// Re-exported degradation triggers.
const (
	TriggerOutOfMemory      = config.TriggerOutOfMemory
	TriggerProcessingFailed = config.TriggerProcessingFailed
	TriggerInsufficientData = config.TriggerInsufficientData
)

// Re-exported degradation levels.
const (
	DegradeMinimal     = config.LevelMinimal
	DegradeModerate    = config.LevelModerate
	DegradeSignificant = config.LevelSignificant
	DegradeEmergency   = config.LevelEmergency
)

// Degrade applies a graceful-degradation level to cfg for the given
// trigger, optionally selecting a compatible fallback method using
// report.
func Degrade(cfg Config, trigger DegradationTrigger, level DegradationLevel, report *AudioQualityReport) DegradationResponse {
	needFallback := false
	for _, s := range config.StrategiesFor(trigger) {
		if s == config.StrategyFallbackMethod {
			needFallback = true
			break
		}
	}
	return config.Degrade(cfg, level, report, needFallback)
}

// Align runs one alignment method against ref/tgt under cfg.
func Align(ref, tgt AudioBuffer, m Method, cfg Config) Result {
	start := time.Now()
	result := align.Align(ref, tgt, m, cfg)
	observeAlign(m, result, time.Since(start))
	return result
}

// AlignBatch runs m against every target independently; an individual
// target's failure does not abort the batch.
func AlignBatch(ref AudioBuffer, targets []AudioBuffer, m Method, cfg Config) []Result {
	start := time.Now()
	results := align.AlignBatch(ref, targets, m, cfg)
	elapsed := time.Since(start)
	perTarget := elapsed / time.Duration(max(1, len(results)))
	for _, r := range results {
		observeAlign(m, r, perTarget)
	}
	return results
}

func observeAlign(m Method, result Result, elapsed time.Duration) {
	outcome := "success"
	if result.Error != errs.Success {
		outcome = result.Error.String()
	}
	globalMetrics.ObserveAlign(m.Name(), outcome, elapsed.Seconds(), result.Confidence, result.Error == errs.Success)
}

// AlignContext is Align with caller-side cancellation: ctx
// is checked before the call starts and again before the result is
// emitted. There are no suspension points mid-call, so cancellation
// observed between those two points surfaces as ProcessingFailed with
// the attempted method's name, matching the ABI's fixed six-kind error
// enum (no separate "cancelled" kind is exposed across the boundary).
func AlignContext(ctx context.Context, ref, tgt AudioBuffer, m Method, cfg Config) Result {
	if err := ctx.Err(); err != nil {
		return model.FailureResult(errs.ProcessingFailed, m.Name())
	}
	result := Align(ref, tgt, m, cfg)
	if err := ctx.Err(); err != nil {
		return model.FailureResult(errs.ProcessingFailed, m.Name())
	}
	return result
}

// AlignBatchContext is AlignBatch with caller-side cancellation,
// checked before the batch starts and between each target.
func AlignBatchContext(ctx context.Context, ref AudioBuffer, targets []AudioBuffer, m Method, cfg Config) []Result {
	out := make([]Result, len(targets))
	for i, tgt := range targets {
		if err := ctx.Err(); err != nil {
			for j := i; j < len(targets); j++ {
				out[j] = model.FailureResult(errs.ProcessingFailed, m.Name())
			}
			return out
		}
		out[i] = Align(ref, tgt, m, cfg)
	}
	return out
}
