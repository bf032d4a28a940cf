package syncalign

import "github.com/aulei-sync/syncalign/errs"

// ErrorAsError converts a Result.Error kind into a Go error, or nil
// for Success. Useful for callers who prefer idiomatic error returns
// over inspecting the Result.Error field directly.
func ErrorAsError(k errs.Kind) error {
	if k == errs.Success {
		return nil
	}
	return errs.New(k, "syncalign", k.Description(), "")
}
