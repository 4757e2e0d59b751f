package scan

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"romshelf/internal/catalog"
	"romshelf/internal/hasher"
	"romshelf/internal/history"
	"romshelf/internal/logging"
	"romshelf/internal/reconcile"
	"romshelf/internal/systems"
)

// lockFileName guards a scan root against concurrent romshelf processes.
const lockFileName = ".romshelf.lock"

// ErrLocked is returned for a root already being scanned by another process.
var ErrLocked = errors.New("scan root is locked by another process")

// Summary aggregates one system scan.
type Summary struct {
	RunID      string
	Root       string
	System     systems.System
	StartedAt  time.Time
	FinishedAt time.Time
	Matched    int
	Mismatched int
	Unmatched  int
	Renamed    int
	Deleted    int
	Failed     int
	// Err is set when the subtree could not be scanned at all. Counters are
	// zero in that case.
	Err error
}

// Option customizes a Scanner.
type Option func(*Scanner)

// WithHistoryStore records every completed run to the given store, pruning
// to keepRuns afterwards.
func WithHistoryStore(store *history.Store, keepRuns int) Option {
	return func(s *Scanner) {
		s.store = store
		s.keepRuns = keepRuns
	}
}

// WithReporter streams per-file reports to the given reporter.
func WithReporter(reporter Reporter) Option {
	return func(s *Scanner) {
		if reporter != nil {
			s.reporter = reporter
		}
	}
}

// Scanner walks ROM directories, classifies every file against the catalog,
// and applies the requested repairs.
type Scanner struct {
	registry *systems.Registry
	catalog  catalog.Service
	engine   *reconcile.Engine
	executor *reconcile.Executor
	store    *history.Store
	keepRuns int
	reporter Reporter
	logger   *slog.Logger
}

// New constructs a Scanner.
func New(registry *systems.Registry, svc catalog.Service, resolver hasher.Resolver, logger *slog.Logger, opts ...Option) *Scanner {
	s := &Scanner{
		registry: registry,
		catalog:  svc,
		engine:   reconcile.NewEngine(resolver, svc, logger),
		executor: reconcile.NewExecutor(resolver),
		reporter: nopReporter{},
		logger:   logging.NewComponentLogger(logger, "scan"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan verifies the tree rooted at root.
//
// With systemID > 0 the whole tree is scanned as that system and a single
// summary is returned. With systemID == 0 each immediate subdirectory whose
// name matches a registered directory alias is scanned as the resolved
// system; a failing subtree yields a summary carrying its error and does not
// stop the siblings.
func (s *Scanner) Scan(ctx context.Context, root string, systemID int, opts reconcile.Options) ([]Summary, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve scan root: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", root)
	}

	if systemID > 0 {
		sys, ok := s.registry.ByID(systemID)
		if !ok {
			return nil, fmt.Errorf("unknown system id %d", systemID)
		}
		return []Summary{s.scanSystem(ctx, root, sys, opts)}, nil
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("read scan root: %w", err)
	}

	var summaries []Summary
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		sys, ok := s.registry.ByDir(entry.Name())
		if !ok {
			s.logger.Debug("skipping unrecognized directory", logging.String("dir", entry.Name()))
			continue
		}
		summary := s.scanSystem(ctx, filepath.Join(root, entry.Name()), sys, opts)
		summaries = append(summaries, summary)
		// Bad credentials fail every subtree the same way; stop immediately.
		if errors.Is(summary.Err, catalog.ErrUnauthorized) {
			return summaries, summary.Err
		}
		if ctx.Err() != nil {
			return summaries, ctx.Err()
		}
	}
	if len(summaries) == 0 {
		return nil, fmt.Errorf("no recognized system directories under %s", root)
	}
	return summaries, nil
}

func (s *Scanner) scanSystem(ctx context.Context, root string, sys systems.System, opts reconcile.Options) Summary {
	summary := Summary{
		RunID:     uuid.NewString(),
		Root:      root,
		System:    sys,
		StartedAt: time.Now(),
	}

	lock := flock.New(filepath.Join(root, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		summary.Err = fmt.Errorf("acquire scan lock: %w", err)
		return summary
	}
	if !locked {
		summary.Err = fmt.Errorf("%w: %s", ErrLocked, root)
		return summary
	}
	defer func() {
		_ = lock.Unlock()
	}()

	s.logger.Info("scanning system",
		logging.String("system", sys.Name),
		logging.String("root", root))

	games, err := s.catalog.ListGames(ctx, sys.ID)
	if err != nil {
		summary.Err = fmt.Errorf("fetch game list for %s: %w", sys.Name, err)
		return summary
	}
	index := reconcile.BuildIndex(games)
	s.logger.Info("hash index built",
		logging.String("system", sys.Name),
		logging.Int("hashes", index.Len()))

	var results []history.FileResult
	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if entry.Name() == lockFileName {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		results = append(results, s.processFile(ctx, path, index, sys, opts, &summary))
		return nil
	})
	if walkErr != nil && summary.Err == nil {
		summary.Err = fmt.Errorf("walk %s: %w", root, walkErr)
	}

	summary.FinishedAt = time.Now()
	s.record(ctx, summary, opts, results)
	return summary
}

func (s *Scanner) processFile(ctx context.Context, path string, index reconcile.Index, sys systems.System, opts reconcile.Options, summary *Summary) history.FileResult {
	report := Report{Path: path}
	result, err := s.engine.Classify(ctx, path, index, sys)
	report.Result = result
	if err == nil {
		report.Action, err = s.executor.Apply(ctx, result, sys.ID, opts)
	}
	report.Err = err
	s.reporter.File(report)

	row := history.FileResult{
		RunID:   summary.RunID,
		Path:    path,
		Outcome: result.Outcome.String(),
		Action:  report.Action.Kind.String(),
	}
	switch {
	case err != nil:
		summary.Failed++
		row.Action = "failed"
		row.Detail = err.Error()
		return row
	case result.Outcome == reconcile.OutcomeMatched:
		summary.Matched++
	case result.Outcome == reconcile.OutcomeMismatched:
		summary.Mismatched++
		row.Detail = result.Canonical
	default:
		summary.Unmatched++
	}
	switch report.Action.Kind {
	case reconcile.ActionRenamed:
		summary.Renamed++
		row.Detail = report.Action.Dest
	case reconcile.ActionDedupDeleted, reconcile.ActionInvalidDeleted:
		summary.Deleted++
	}
	return row
}

func (s *Scanner) record(ctx context.Context, summary Summary, opts reconcile.Options, results []history.FileResult) {
	if s.store == nil {
		return
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Path < results[j].Path })
	run := history.Run{
		ID:            summary.RunID,
		Root:          summary.Root,
		SystemName:    summary.System.Name,
		StartedAt:     summary.StartedAt,
		FinishedAt:    summary.FinishedAt,
		RenameFiles:   opts.RenameFiles,
		RemoveInvalid: opts.RemoveInvalid,
		DedupFiles:    opts.DedupFiles,
		Matched:       summary.Matched,
		Mismatched:    summary.Mismatched,
		Unmatched:     summary.Unmatched,
		Renamed:       summary.Renamed,
		Deleted:       summary.Deleted,
		Failed:        summary.Failed,
	}
	if err := s.store.RecordRun(ctx, run, results); err != nil {
		s.logger.Warn("record scan run", logging.Error(err))
		return
	}
	if s.keepRuns > 0 {
		if err := s.store.Prune(ctx, s.keepRuns); err != nil {
			s.logger.Warn("prune scan history", logging.Error(err))
		}
	}
}
