package history

import "time"

// Run summarizes one scan invocation persisted in SQLite.
type Run struct {
	ID            string
	Root          string
	SystemName    string
	StartedAt     time.Time
	FinishedAt    time.Time
	RenameFiles   bool
	RemoveInvalid bool
	DedupFiles    bool
	Matched       int
	Mismatched    int
	Unmatched     int
	Renamed       int
	Deleted       int
	Failed        int
}

// FileResult is one per-file report line within a run.
type FileResult struct {
	RunID    string
	Path     string
	Outcome  string
	Action   string
	Detail   string
	LoggedAt time.Time
}
