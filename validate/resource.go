package validate

import "github.com/aulei-sync/syncalign/model"

var methodMultiplier = map[model.Method]float64{
	model.SpectralFlux: 0.08,
	model.Chroma:       0.12,
	model.Energy:       0.04,
	model.MFCC:         0.18,
	model.Hybrid:       0.35,
}

// EstimateProcessingTime returns an estimated wall-clock processing
// time in seconds for a buffer of durationSeconds under cfg and method
//.
func EstimateProcessingTime(durationSeconds float64, cfg model.Config, m model.Method) float64 {
	mult := methodMultiplier[m]
	configMult := 1.0
	if cfg.WindowSize > 2048 {
		configMult *= 1.5
	}
	if cfg.HopSize < cfg.WindowSize/8 {
		configMult *= 1.2
	}
	return durationSeconds * mult * configMult
}

// EstimateMemoryBytes returns an estimated peak memory footprint in
// bytes for aligning ref against tgt under cfg:
// input buffers + working buffers (2x floats) + FFT buffers
// (4*window_size*sizeof(float32)) + correlation buffer
// ((|ref|+|tgt|)*sizeof(float64)).
func EstimateMemoryBytes(refLen, tgtLen int, cfg model.Config) int64 {
	const float32Size = 4
	const float64Size = 8

	input := int64(refLen+tgtLen) * float32Size
	working := input * 2
	fft := int64(cfg.WindowSize) * 4 * float32Size
	correlation := int64(refLen+tgtLen) * float64Size

	return input + working + fft + correlation
}
