// Command capi is the stable C ABI bridge: cgo-exported
// functions over fixed-layout structs, built with
// `go build -buildmode=c-shared`. It is the only package in this
// module that imports "C"; everything else stays pure Go so it can be
// tested and reused without a cgo toolchain.
package main

/*
#include <stddef.h>
#include <stdint.h>
#include <stdlib.h>
#include <string.h>

typedef struct {
	int64_t offset_samples;
	double  confidence;
	double  peak_correlation;
	double  secondary_peak_ratio;
	double  snr_estimate;
	double  noise_floor_db;
	char    method[32];
	int32_t error;
} sa_Result;

typedef struct {
	sa_Result *results;
	size_t     count;
	int32_t    error;
} sa_BatchResult;

typedef struct {
	double  confidence_threshold;
	int64_t max_offset_samples;
	int32_t window_size;
	int32_t hop_size;
	double  noise_gate_db;
	int32_t enable_drift_correction;
} sa_Config;
*/
import "C"

import (
	"sync"
	"unsafe"

	syncalign "github.com/aulei-sync/syncalign"
	"github.com/aulei-sync/syncalign/errs"
)

// method/error enums mirror the ABI's documented numbering exactly;
// these values must not be renumbered.
const (
	methodSpectralFlux int32 = 0
	methodChroma       int32 = 1
	methodEnergy       int32 = 2
	methodMFCC         int32 = 3
	methodHybrid       int32 = 4
)

func methodFromC(m C.int32_t) syncalign.Method {
	switch int32(m) {
	case methodChroma:
		return syncalign.Chroma
	case methodEnergy:
		return syncalign.Energy
	case methodMFCC:
		return syncalign.MFCC
	case methodHybrid:
		return syncalign.Hybrid
	default:
		return syncalign.SpectralFlux
	}
}

func methodToC(m syncalign.Method) int32 {
	switch m {
	case syncalign.Chroma:
		return methodChroma
	case syncalign.Energy:
		return methodEnergy
	case syncalign.MFCC:
		return methodMFCC
	case syncalign.Hybrid:
		return methodHybrid
	default:
		return methodSpectralFlux
	}
}

func configFromC(c *C.sa_Config) syncalign.Config {
	cfg := syncalign.DefaultConfig()
	if c == nil {
		return cfg
	}
	cfg.ConfidenceThreshold = float64(c.confidence_threshold)
	cfg.MaxOffsetSamples = int64(c.max_offset_samples)
	cfg.WindowSize = int(c.window_size)
	cfg.HopSize = int(c.hop_size)
	cfg.NoiseGateDB = float64(c.noise_gate_db)
	cfg.EnableDriftCorrection = c.enable_drift_correction != 0
	return cfg
}

func configToC(cfg syncalign.Config) C.sa_Config {
	var out C.sa_Config
	out.confidence_threshold = C.double(cfg.ConfidenceThreshold)
	out.max_offset_samples = C.int64_t(cfg.MaxOffsetSamples)
	out.window_size = C.int32_t(cfg.WindowSize)
	out.hop_size = C.int32_t(cfg.HopSize)
	out.noise_gate_db = C.double(cfg.NoiseGateDB)
	if cfg.EnableDriftCorrection {
		out.enable_drift_correction = 1
	}
	return out
}

func resultToC(r syncalign.Result) C.sa_Result {
	var out C.sa_Result
	out.offset_samples = C.int64_t(r.OffsetSamples)
	out.confidence = C.double(r.Confidence)
	out.peak_correlation = C.double(r.PeakCorrelation)
	out.secondary_peak_ratio = C.double(r.SecondaryPeakRatio)
	out.snr_estimate = C.double(r.SNREstimate)
	out.noise_floor_db = C.double(r.NoiseFloorDB)
	out.error = C.int32_t(r.Error)

	name := r.Method
	if len(name) > 31 {
		name = name[:31]
	}
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	C.memset(unsafe.Pointer(&out.method[0]), 0, 32)
	C.strncpy((*C.char)(unsafe.Pointer(&out.method[0])), cname, 31)

	return out
}

func bufferFromC(samples *C.float, length C.size_t, sampleRate C.int32_t) syncalign.AudioBuffer {
	n := int(length)
	if n == 0 || samples == nil {
		return syncalign.AudioBuffer{SampleRate: int(sampleRate)}
	}
	slice := unsafe.Slice((*float32)(unsafe.Pointer(samples)), n)
	buf := make([]float32, n)
	copy(buf, slice)
	return syncalign.AudioBuffer{Samples: buf, SampleRate: int(sampleRate)}
}

//export sa_align
func sa_align(ref *C.float, refLen C.size_t, tgt *C.float, tgtLen C.size_t, sampleRate C.int32_t, method C.int32_t, cfg *C.sa_Config) C.sa_Result {
	refBuf := bufferFromC(ref, refLen, sampleRate)
	tgtBuf := bufferFromC(tgt, tgtLen, sampleRate)
	result := syncalign.Align(refBuf, tgtBuf, methodFromC(method), configFromC(cfg))
	return resultToC(result)
}

//export sa_align_batch
func sa_align_batch(ref *C.float, refLen C.size_t, tgts **C.float, tgtLens *C.size_t, count C.size_t, sampleRate C.int32_t, method C.int32_t, cfg *C.sa_Config) C.sa_BatchResult {
	n := int(count)
	if n == 0 {
		return C.sa_BatchResult{}
	}

	refBuf := bufferFromC(ref, refLen, sampleRate)
	tgtPtrs := unsafe.Slice(tgts, n)
	tgtLenSlice := unsafe.Slice(tgtLens, n)

	targets := make([]syncalign.AudioBuffer, n)
	for i := 0; i < n; i++ {
		targets[i] = bufferFromC(tgtPtrs[i], tgtLenSlice[i], sampleRate)
	}

	results := syncalign.AlignBatch(refBuf, targets, methodFromC(method), configFromC(cfg))

	cResults := (*C.sa_Result)(C.malloc(C.size_t(n) * C.size_t(unsafe.Sizeof(C.sa_Result{}))))
	out := unsafe.Slice(cResults, n)
	for i, r := range results {
		out[i] = resultToC(r)
	}

	return C.sa_BatchResult{results: cResults, count: C.size_t(n), error: C.int32_t(errs.Success)}
}

//export sa_default_config
func sa_default_config() C.sa_Config {
	return configToC(syncalign.DefaultConfig())
}

//export sa_config_for_use_case
func sa_config_for_use_case(name *C.char) C.sa_Config {
	return configToC(syncalign.ConfigForUseCase(C.GoString(name)))
}

//export sa_validate_config
func sa_validate_config(cfg *C.sa_Config) C.int32_t {
	errList, _ := syncalign.ValidateConfig(configFromC(cfg))
	if len(errList) > 0 {
		return C.int32_t(errs.InvalidInput)
	}
	return C.int32_t(errs.Success)
}

//export sa_min_audio_length
func sa_min_audio_length(method C.int32_t, sampleRate C.int32_t) C.size_t {
	return C.size_t(syncalign.MinAudioLength(methodFromC(method), int(sampleRate)))
}

//export sa_free_result
func sa_free_result(r *C.sa_Result) {
	// reserved; currently a no-op — sa_Result owns no
	// separately allocated memory.
	_ = r
}

//export sa_free_batch_result
func sa_free_batch_result(br *C.sa_BatchResult) {
	if br == nil || br.results == nil {
		return
	}
	C.free(unsafe.Pointer(br.results))
	br.results = nil
	br.count = 0
}

//export sa_error_description
func sa_error_description(code C.int32_t) *C.char {
	return C.CString(errs.Kind(code).Description())
}

//export sa_method_name
func sa_method_name(method C.int32_t) *C.char {
	return C.CString(methodFromC(method).Name())
}

//export sa_version
func sa_version() *C.char {
	return C.CString(syncalign.Version())
}

//export sa_build_info
func sa_build_info() *C.char {
	return C.CString(syncalign.BuildInfo())
}

//export sa_estimate_processing_time
func sa_estimate_processing_time(lengthSamples C.size_t, sampleRate C.int32_t, method C.int32_t) C.double {
	return C.double(syncalign.EstimateProcessingTime(int(lengthSamples), int(sampleRate), methodFromC(method)))
}

// engines maps opaque handles exposed to C callers onto live Engine
// values; cgo forbids storing Go pointers inside C-visible memory
// directly, so callers hold an integer token instead.
var engines = struct {
	mu   sync.Mutex
	next uintptr
	m    map[uintptr]*syncalign.Engine
}{m: make(map[uintptr]*syncalign.Engine)}

//export sa_create_engine
func sa_create_engine() C.uintptr_t {
	engines.mu.Lock()
	defer engines.mu.Unlock()
	engines.next++
	token := engines.next
	engines.m[token] = syncalign.CreateEngine()
	return C.uintptr_t(token)
}

//export sa_destroy_engine
func sa_destroy_engine(handle C.uintptr_t) {
	engines.mu.Lock()
	defer engines.mu.Unlock()
	delete(engines.m, uintptr(handle))
}

func lookupEngine(handle C.uintptr_t) *syncalign.Engine {
	engines.mu.Lock()
	defer engines.mu.Unlock()
	return engines.m[uintptr(handle)]
}

//export sa_set_engine_config
func sa_set_engine_config(handle C.uintptr_t, cfg *C.sa_Config) {
	e := lookupEngine(handle)
	if e == nil {
		return
	}
	syncalign.SetEngineConfig(e, configFromC(cfg))
}

//export sa_get_engine_config
func sa_get_engine_config(handle C.uintptr_t) C.sa_Config {
	e := lookupEngine(handle)
	if e == nil {
		return configToC(syncalign.DefaultConfig())
	}
	return configToC(syncalign.GetEngineConfig(e))
}

//export sa_process
func sa_process(handle C.uintptr_t, ref *C.float, refLen C.size_t, tgt *C.float, tgtLen C.size_t, out *C.sa_Result) C.int32_t {
	e := lookupEngine(handle)
	if e == nil {
		return C.int32_t(errs.InvalidInput)
	}
	refSlice := unsafe.Slice((*float32)(unsafe.Pointer(ref)), int(refLen))
	tgtSlice := unsafe.Slice((*float32)(unsafe.Pointer(tgt)), int(tgtLen))

	result, err := syncalign.Process(e, refSlice, tgtSlice)
	if out != nil {
		*out = resultToC(result)
	}
	return C.int32_t(errs.KindOf(err))
}

func main() {}
