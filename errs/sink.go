package errs

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	charmlog "github.com/charmbracelet/log"
)

// Record is one entry in the sink's ring buffer.
type Record struct {
	OpID       uint64
	Severity   Severity
	Kind       Kind
	Component  string
	Message    string
	Suggestion string
	Time       time.Time
}

// Callback receives a copy of every record at or above the sink's
// minimum severity. Callbacks run after the sink's lock is released, so
// they may call Register or SetMinSeverity.
type Callback func(Record)

const ringCapacity = 1000

// Sink is the process-wide error log. The zero value is not usable;
// use DefaultSink() for the lazily constructed process-wide sink, or
// NewSink.
type Sink struct {
	mu        sync.RWMutex
	ring      []Record
	ringStart int
	ringLen   int
	callbacks []Callback
	minLevel  Severity
	logger    *charmlog.Logger
	nextOpID  uint64
}

var (
	defaultOnce sync.Once
	defaultSink *Sink
)

// DefaultSink returns the lazily-created, process-wide sink.
func DefaultSink() *Sink {
	defaultOnce.Do(func() {
		defaultSink = NewSink(os.Stderr)
	})
	return defaultSink
}

// NewSink builds an independent sink writing structured records to w via
// charmbracelet/log. Most callers want DefaultSink(); NewSink exists for
// tests that need isolation from global state.
func NewSink(w *os.File) *Sink {
	l := charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		Level:           charmlog.DebugLevel,
	})
	return &Sink{
		ring:     make([]Record, ringCapacity),
		minLevel: Info,
		logger:   l,
	}
}

// SetMinSeverity changes the floor below which records are dropped
// entirely (not even buffered).
func (s *Sink) SetMinSeverity(min Severity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.minLevel = min
}

// Register adds a callback invoked for every record accepted from now on.
func (s *Sink) Register(cb Callback) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callbacks = append(s.callbacks, cb)
}

// NextOpID assigns a monotonic operation id at call entry; log output
// renders it in hexadecimal.
func (s *Sink) NextOpID() uint64 {
	return atomic.AddUint64(&s.nextOpID, 1)
}

// Log records an entry and dispatches it to registered callbacks. It is
// safe for concurrent use.
func (s *Sink) Log(opID uint64, sev Severity, kind Kind, component, message, suggestion string) {
	if sev < s.minLevelSnapshot() {
		return
	}
	rec := Record{
		OpID:       opID,
		Severity:   sev,
		Kind:       kind,
		Component:  component,
		Message:    message,
		Suggestion: suggestion,
		Time:       time.Now(),
	}

	s.mu.Lock()
	s.append(rec)
	cbs := make([]Callback, len(s.callbacks))
	copy(cbs, s.callbacks)
	s.mu.Unlock()

	s.emit(rec)

	for _, cb := range cbs {
		cb(rec)
	}
}

func (s *Sink) minLevelSnapshot() Severity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.minLevel
}

// append pushes rec into the ring buffer, discarding the oldest entry
// once full. Callers must hold s.mu for writing.
func (s *Sink) append(rec Record) {
	idx := (s.ringStart + s.ringLen) % ringCapacity
	s.ring[idx] = rec
	if s.ringLen < ringCapacity {
		s.ringLen++
	} else {
		s.ringStart = (s.ringStart + 1) % ringCapacity
	}
}

// Recent returns up to n most recent records, newest last.
func (s *Sink) Recent(n int) []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if n > s.ringLen || n <= 0 {
		n = s.ringLen
	}
	out := make([]Record, n)
	for i := 0; i < n; i++ {
		idx := (s.ringStart + s.ringLen - n + i) % ringCapacity
		out[i] = s.ring[idx]
	}
	return out
}

// emit forwards a record to the charmbracelet/log backend. Critical is
// deliberately mapped to Error, not Fatal: charmlog's Fatal level calls
// os.Exit, which a library must never trigger on behalf of its embedder.
func (s *Sink) emit(rec Record) {
	fields := []any{
		"op_id", fmt.Sprintf("%x", rec.OpID),
		"kind", rec.Kind.String(),
		"component", rec.Component,
	}
	if rec.Suggestion != "" {
		fields = append(fields, "suggestion", rec.Suggestion)
	}
	switch rec.Severity {
	case Trace, Debug:
		s.logger.Debug(rec.Message, fields...)
	case Info:
		s.logger.Info(rec.Message, fields...)
	case Warn:
		s.logger.Warn(rec.Message, fields...)
	case SeverityError, Critical:
		s.logger.Error(rec.Message, fields...)
	}
}
