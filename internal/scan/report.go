package scan

import "romshelf/internal/reconcile"

// Report is one per-file line emitted during a scan. Every walked file
// produces exactly one.
type Report struct {
	Path   string
	Result reconcile.Result
	Action reconcile.Action
	Err    error
}

// Reporter receives per-file reports as the scan progresses.
type Reporter interface {
	File(report Report)
}

type nopReporter struct{}

func (nopReporter) File(Report) {}
