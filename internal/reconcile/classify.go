package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"romshelf/internal/catalog"
	"romshelf/internal/hasher"
	"romshelf/internal/logging"
	"romshelf/internal/systems"
)

// Outcome classifies one local file against the hash index.
type Outcome int

const (
	// OutcomeUnmatched means the file's hash is unknown to the catalog.
	OutcomeUnmatched Outcome = iota
	// OutcomeMatched means hash and local name both agree with the catalog.
	OutcomeMatched
	// OutcomeMismatched means the hash is known but the local name differs
	// from the canonical one.
	OutcomeMismatched
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMatched:
		return "matched"
	case OutcomeMismatched:
		return "mismatched"
	default:
		return "unmatched"
	}
}

// Result carries everything the action executor and reporters need about one
// classified file. It is transient; nothing outlives the file's processing.
type Result struct {
	Path      string
	LocalName string
	Hash      string
	Outcome   Outcome
	Game      catalog.Game
	Record    catalog.HashRecord
	Canonical string
	// RecordMissing marks the index-hit-but-no-record case where the list
	// endpoint and the per-game endpoint disagree. The file is reported as
	// unmatched, but distinguishably so.
	RecordMissing bool
}

// Engine resolves files against a hash index.
type Engine struct {
	resolver hasher.Resolver
	catalog  catalog.Service
	logger   *slog.Logger
}

// NewEngine constructs a reconciliation engine.
func NewEngine(resolver hasher.Resolver, svc catalog.Service, logger *slog.Logger) *Engine {
	return &Engine{
		resolver: resolver,
		catalog:  svc,
		logger:   logging.NewComponentLogger(logger, "reconcile"),
	}
}

// Classify hashes one file and resolves it against the index.
//
// A file whose hash cannot be computed is unmatched, never an error. Errors
// are reserved for catalog failures while fetching the matched game's hash
// records.
func (e *Engine) Classify(ctx context.Context, path string, index Index, sys systems.System) (Result, error) {
	result := Result{
		Path:      path,
		LocalName: LocalBaseName(filepath.Base(path)),
	}

	digest, ok, err := e.resolver.Hash(ctx, sys.ID, path)
	if err != nil {
		return result, err
	}
	if !ok {
		e.logger.Debug("hasher produced no digest", logging.String("path", path))
		return result, nil
	}
	result.Hash = digest

	game, matchedKey, found := index.Lookup(digest)
	if !found {
		return result, nil
	}
	result.Game = game

	records, err := e.catalog.GameHashes(ctx, game.ID)
	if err != nil {
		return result, fmt.Errorf("fetch hash records for %q: %w", game.Title, err)
	}

	for _, record := range records {
		if record.MD5 != matchedKey {
			continue
		}
		result.Record = record
		result.Canonical = CanonicalName(sys.ID, record.Name)
		if result.Canonical == result.LocalName {
			result.Outcome = OutcomeMatched
		} else {
			result.Outcome = OutcomeMismatched
		}
		return result, nil
	}

	// The list endpoint knows this hash but the per-game endpoint does not.
	result.RecordMissing = true
	e.logger.Warn("index hit without matching hash record",
		logging.String("path", path),
		logging.String("game", game.Title),
		logging.String("hash", matchedKey))
	return result, nil
}
