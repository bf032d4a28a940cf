package syncalign

import "sync"

// Engine is an opaque, long-lived handle that caches a Config across
// calls. It is not safe for concurrent
// mutation of the same handle, but independent handles may be used
// from independent goroutines without coordination.
type Engine struct {
	mu  sync.Mutex
	cfg Config
}

// CreateEngine allocates an Engine seeded with DefaultConfig.
func CreateEngine() *Engine {
	return &Engine{cfg: DefaultConfig()}
}

// DestroyEngine releases e. It is a no-op beyond dropping the
// reference: the Engine owns no resources requiring explicit cleanup
// beyond what the garbage collector already reclaims.
func DestroyEngine(e *Engine) {
	_ = e
}

// SetEngineConfig replaces e's cached Config.
func SetEngineConfig(e *Engine, cfg Config) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg = cfg
}

// GetEngineConfig returns e's cached Config.
func GetEngineConfig(e *Engine) Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// Process is the ABI's simplified single-call convenience path. It is
// a documented placeholder: sample rate is hard-coded to 44100Hz and
// the method to spectral flux; the raw sample slices carry no rate of
// their own. Production callers should use Align or
// AlignBatch with an explicit method and sample rate.
func Process(e *Engine, ref, tgt []float32) (Result, error) {
	e.mu.Lock()
	cfg := e.cfg
	e.mu.Unlock()

	refBuf := AudioBuffer{Samples: ref, SampleRate: 44100}
	tgtBuf := AudioBuffer{Samples: tgt, SampleRate: 44100}
	result := Align(refBuf, tgtBuf, SpectralFlux, cfg)
	if result.Error != Success {
		return result, ErrorAsError(result.Error)
	}
	return result, nil
}
