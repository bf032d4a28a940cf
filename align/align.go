// Package align implements the alignment engine: the
// five public alignment operations and batch processing, each
// following validate -> extract features -> correlate -> peak ->
// confidence -> result.
package align

import (
	"github.com/aulei-sync/syncalign/confidence"
	"github.com/aulei-sync/syncalign/correlate"
	"github.com/aulei-sync/syncalign/errs"
	"github.com/aulei-sync/syncalign/features"
	"github.com/aulei-sync/syncalign/model"
	"github.com/aulei-sync/syncalign/validate"
)

// AlignSpectralFlux aligns tgt against ref using spectral flux onset
// strength.
func AlignSpectralFlux(ref, tgt model.AudioBuffer, cfg model.Config) model.Result {
	return alignScalar(ref, tgt, cfg, model.SpectralFlux, func(samples []float64) (*features.Sequence, error) {
		p := features.DefaultFluxParams(cfg.WindowSize, cfg.HopSize)
		if cfg.MedianFilterSize > 0 {
			p.MedianFilterSize = cfg.MedianFilterSize
		}
		return features.Flux(samples, p)
	})
}

// AlignEnergy aligns tgt against ref using the RMS energy profile.
func AlignEnergy(ref, tgt model.AudioBuffer, cfg model.Config) model.Result {
	return alignScalar(ref, tgt, cfg, model.Energy, func(samples []float64) (*features.Sequence, error) {
		p := features.DefaultEnergyParams(cfg.WindowSize, cfg.HopSize)
		if cfg.MedianFilterSize > 0 {
			p.MedianFilterSize = cfg.MedianFilterSize
		}
		return features.Energy(samples, p)
	})
}

// AlignChroma aligns tgt against ref using 12-bin chroma features.
func AlignChroma(ref, tgt model.AudioBuffer, cfg model.Config) model.Result {
	return alignMulti(ref, tgt, cfg, model.Chroma, func(samples []float64, sampleRate int) (*features.Sequence, error) {
		p := features.DefaultChromaParams(cfg.WindowSize, cfg.HopSize, sampleRate)
		if cfg.NumChromaBins > 0 {
			p.NumBins = cfg.NumChromaBins
		}
		return features.Chroma(samples, p)
	}, func(a, b *features.Sequence) correlate.Buffer {
		return correlate.Chroma(a, b)
	})
}

// AlignMFCC aligns tgt against ref using MFCCs.
func AlignMFCC(ref, tgt model.AudioBuffer, cfg model.Config) model.Result {
	return alignMulti(ref, tgt, cfg, model.MFCC, func(samples []float64, sampleRate int) (*features.Sequence, error) {
		p := features.DefaultMFCCParams(cfg.WindowSize, cfg.HopSize, sampleRate)
		if cfg.NumMFCCCoeffs > 0 {
			p.NumCoeffs = cfg.NumMFCCCoeffs
		}
		if cfg.NumMelFilters > 0 {
			p.NumMelFilters = cfg.NumMelFilters
		}
		p.IncludeC0 = cfg.IncludeC0
		return features.MFCC(samples, p)
	}, func(a, b *features.Sequence) correlate.Buffer {
		coeffOffset := 1
		if cfg.IncludeC0 {
			coeffOffset = 0
		}
		return correlate.MFCC(a, b, coeffOffset)
	})
}

// AlignHybrid runs the four primary methods and combines the
// successful ones as a confidence-weighted average.
func AlignHybrid(ref, tgt model.AudioBuffer, cfg model.Config) model.Result {
	if err := validate.Pair(ref, tgt, model.Hybrid); err != nil {
		return model.FailureResult(errs.KindOf(err), model.Hybrid.Name())
	}

	results := []model.Result{
		AlignSpectralFlux(ref, tgt, cfg),
		AlignChroma(ref, tgt, cfg),
		AlignEnergy(ref, tgt, cfg),
		AlignMFCC(ref, tgt, cfg),
	}

	var successes []model.Result
	for _, r := range results {
		if r.Error == errs.Success {
			successes = append(successes, r)
		}
	}
	if len(successes) == 0 {
		return model.FailureResult(errs.ProcessingFailed, model.Hybrid.Name())
	}

	var totalWeight, offset, conf, peakCorr, snr, noiseFloor, secondaryMean float64
	for _, r := range successes {
		w := r.Confidence
		totalWeight += w
		offset += w * float64(r.OffsetSamples)
		conf += w * r.Confidence
		peakCorr += w * r.PeakCorrelation
		snr += w * r.SNREstimate
		noiseFloor += w * r.NoiseFloorDB
		secondaryMean += r.SecondaryPeakRatio
	}
	secondaryMean /= float64(len(successes))

	if totalWeight <= 0 {
		// every success somehow carries zero confidence: fall back to an
		// unweighted average rather than divide by zero.
		n := float64(len(successes))
		var sOffset, sConf, sPeak, sSNR, sFloor float64
		for _, r := range successes {
			sOffset += float64(r.OffsetSamples)
			sConf += r.Confidence
			sPeak += r.PeakCorrelation
			sSNR += r.SNREstimate
			sFloor += r.NoiseFloorDB
		}
		return model.Result{
			OffsetSamples:      int64(sOffset / n),
			Confidence:         sConf / n,
			PeakCorrelation:    sPeak / n,
			SecondaryPeakRatio: secondaryMean,
			SNREstimate:        sSNR / n,
			NoiseFloorDB:       sFloor / n,
			Method:             model.Hybrid.Name(),
			Error:              errs.Success,
		}
	}

	result := model.Result{
		OffsetSamples:      int64(offset / totalWeight),
		Confidence:         conf / totalWeight,
		PeakCorrelation:    peakCorr / totalWeight,
		SecondaryPeakRatio: secondaryMean,
		SNREstimate:        snr / totalWeight,
		NoiseFloorDB:       noiseFloor / totalWeight,
		Method:             model.Hybrid.Name(),
		Error:              errs.Success,
	}
	if result.Confidence < cfg.ConfidenceThreshold {
		return model.FailureResult(errs.ProcessingFailed, model.Hybrid.Name())
	}
	return result
}

// AlignBatch runs method against every target independently: a
// target's failure does not abort the batch.
func AlignBatch(ref model.AudioBuffer, targets []model.AudioBuffer, method model.Method, cfg model.Config) []model.Result {
	out := make([]model.Result, len(targets))
	for i, tgt := range targets {
		out[i] = Align(ref, tgt, method, cfg)
	}
	return out
}

// Align dispatches to the method-specific alignment function. A panic
// inside any pipeline is recovered here and reported as a
// PROCESSING_FAILED result with method "Exception".
func Align(ref, tgt model.AudioBuffer, method model.Method, cfg model.Config) (result model.Result) {
	defer func() {
		if r := recover(); r != nil {
			result = model.FailureResult(errs.ProcessingFailed, "Exception")
		}
	}()
	switch method {
	case model.SpectralFlux:
		return AlignSpectralFlux(ref, tgt, cfg)
	case model.Chroma:
		return AlignChroma(ref, tgt, cfg)
	case model.Energy:
		return AlignEnergy(ref, tgt, cfg)
	case model.MFCC:
		return AlignMFCC(ref, tgt, cfg)
	case model.Hybrid:
		return AlignHybrid(ref, tgt, cfg)
	default:
		return model.FailureResult(errs.InvalidInput, "Invalid")
	}
}

// alignScalar implements the shared pipeline for scalar-dimension
// features (flux, energy).
func alignScalar(ref, tgt model.AudioBuffer, cfg model.Config, method model.Method, extract func([]float64) (*features.Sequence, error)) model.Result {
	name := method.Name()
	if err := validate.Pair(ref, tgt, method); err != nil {
		return model.FailureResult(errs.KindOf(err), name)
	}

	refSeq, err := extract(ref.Float64())
	if err != nil {
		return model.FailureResult(errs.KindOf(err), name)
	}
	tgtSeq, err := extract(tgt.Float64())
	if err != nil {
		return model.FailureResult(errs.KindOf(err), name)
	}

	refScalars := make([]float64, refSeq.Len())
	for i := 0; i < refSeq.Len(); i++ {
		refScalars[i] = refSeq.Scalar(i)
	}
	tgtScalars := make([]float64, tgtSeq.Len())
	for i := 0; i < tgtSeq.Len(); i++ {
		tgtScalars[i] = tgtSeq.Scalar(i)
	}

	buf := correlate.Scalar(refScalars, tgtScalars)
	return finish(buf, refSeq.HopSize, refSeq.Len(), 1, cfg, name)
}

// alignMulti implements the shared pipeline for multi-dimensional
// features (chroma, MFCC).
func alignMulti(ref, tgt model.AudioBuffer, cfg model.Config, method model.Method,
	extract func(samples []float64, sampleRate int) (*features.Sequence, error),
	correlateFn func(a, b *features.Sequence) correlate.Buffer) model.Result {

	name := method.Name()
	if err := validate.Pair(ref, tgt, method); err != nil {
		return model.FailureResult(errs.KindOf(err), name)
	}

	refSeq, err := extract(ref.Float64(), ref.SampleRate)
	if err != nil {
		return model.FailureResult(errs.KindOf(err), name)
	}
	tgtSeq, err := extract(tgt.Float64(), tgt.SampleRate)
	if err != nil {
		return model.FailureResult(errs.KindOf(err), name)
	}

	buf := correlateFn(refSeq, tgtSeq)
	return finish(buf, refSeq.HopSize, refSeq.Len(), refSeq.Dim, cfg, name)
}

// finish picks the peak, calibrates confidence, and builds the final
// Result, gating on cfg.ConfidenceThreshold.
func finish(buf correlate.Buffer, hopSize, refFrameLen, dim int, cfg model.Config, name string) model.Result {
	peak := correlate.Pick(buf)
	_, conf := confidence.Calibrate(buf, peak)

	if conf < cfg.ConfidenceThreshold {
		return model.FailureResult(errs.ProcessingFailed, name)
	}

	offset := correlate.Offset(peak.Index, hopSize, refFrameLen, dim)
	snr := confidence.SNREstimateDB(buf, peak.Index)
	noiseFloor := confidence.NoiseFloorDB(buf)

	return model.Result{
		OffsetSamples:      offset,
		Confidence:         conf,
		PeakCorrelation:    peak.Value,
		SecondaryPeakRatio: peak.SecondaryPeakRatio,
		SNREstimate:        snr,
		NoiseFloorDB:       noiseFloor,
		Method:             name,
		Error:              errs.Success,
	}
}
