package reconcile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"romshelf/internal/fileutil"
	"romshelf/internal/hasher"
)

// Options selects which filesystem mutations a scan is allowed to perform.
type Options struct {
	RenameFiles   bool
	RemoveInvalid bool
	DedupFiles    bool
}

// ActionKind identifies what the executor did with a file.
type ActionKind int

const (
	// ActionNone means the file was left untouched.
	ActionNone ActionKind = iota
	// ActionRenamed means the file now carries its canonical name.
	ActionRenamed
	// ActionDedupDeleted means the file duplicated an existing correctly
	// named file and was removed.
	ActionDedupDeleted
	// ActionInvalidDeleted means an unmatched file was removed.
	ActionInvalidDeleted
	// ActionRenameConflict means the canonical name is already taken by a
	// different file; nothing was changed.
	ActionRenameConflict
)

func (k ActionKind) String() string {
	switch k {
	case ActionRenamed:
		return "renamed"
	case ActionDedupDeleted:
		return "dedup-deleted"
	case ActionInvalidDeleted:
		return "invalid-deleted"
	case ActionRenameConflict:
		return "rename-conflict"
	default:
		return "none"
	}
}

// Action reports the executor's decision for one file.
type Action struct {
	Kind ActionKind
	Dest string
}

// Executor performs the filesystem mutations implied by classification
// outcomes. Applying the same outcome twice is a no-op, not an error.
type Executor struct {
	resolver hasher.Resolver
}

// NewExecutor constructs an action executor. The resolver is needed to hash
// rename-collision targets during dedup.
func NewExecutor(resolver hasher.Resolver) *Executor {
	return &Executor{resolver: resolver}
}

// renameRetries bounds the re-check loop when a rename target appears or
// disappears between the stat and the rename.
const renameRetries = 3

// Apply executes the action for a classified file.
func (x *Executor) Apply(ctx context.Context, result Result, systemID int, opts Options) (Action, error) {
	switch result.Outcome {
	case OutcomeMatched:
		return Action{Kind: ActionNone}, nil
	case OutcomeMismatched:
		if !opts.RenameFiles {
			return Action{Kind: ActionNone}, nil
		}
		return x.rename(ctx, result, systemID, opts)
	default:
		if !opts.RemoveInvalid {
			return Action{Kind: ActionNone}, nil
		}
		if err := os.Remove(result.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Action{}, fmt.Errorf("delete invalid file: %w", err)
		}
		return Action{Kind: ActionInvalidDeleted}, nil
	}
}

func (x *Executor) rename(ctx context.Context, result Result, systemID int, opts Options) (Action, error) {
	dir := filepath.Dir(result.Path)
	name := filepath.Base(result.Path)
	dest := filepath.Join(dir, strings.Replace(name, result.LocalName, result.Canonical, 1))
	if dest == result.Path {
		return Action{Kind: ActionNone}, nil
	}

	source := result.Path
	// Case-insensitive filesystems treat a casing-only rename as a self
	// collision; hop through a temporary sibling name first. The hop only
	// applies when the destination resolves to this very file, never when a
	// distinct file already holds the target name.
	selfCollision, err := casingSelfCollision(source, dest)
	if err != nil {
		return Action{}, err
	}
	if selfCollision {
		temp, err := fileutil.TempSibling(source)
		if err != nil {
			return Action{}, err
		}
		if err := os.Rename(source, temp); err != nil {
			return Action{}, fmt.Errorf("rename to temporary name: %w", err)
		}
		source = temp
		// A conflict or failure past this point must put the original name
		// back, or the next scan would find the temp sibling instead.
		moved := false
		defer func() {
			if !moved {
				_ = os.Rename(source, result.Path)
			}
		}()
		action, err := x.resolveDestination(ctx, result, source, dest, systemID, opts)
		if err == nil && (action.Kind == ActionRenamed || action.Kind == ActionDedupDeleted) {
			moved = true
		}
		return action, err
	}

	return x.resolveDestination(ctx, result, source, dest, systemID, opts)
}

func (x *Executor) resolveDestination(ctx context.Context, result Result, source, dest string, systemID int, opts Options) (Action, error) {
	for attempt := 0; attempt < renameRetries; attempt++ {
		exists, err := fileutil.Exists(dest)
		if err != nil {
			return Action{}, err
		}
		if !exists {
			if err := os.Rename(source, dest); err != nil {
				if errors.Is(err, fs.ErrExist) {
					// Lost the race; re-check the destination.
					continue
				}
				return Action{}, fmt.Errorf("rename: %w", err)
			}
			return Action{Kind: ActionRenamed, Dest: dest}, nil
		}

		if !opts.DedupFiles {
			return Action{Kind: ActionRenameConflict, Dest: dest}, nil
		}

		destHash, ok, err := x.resolver.Hash(ctx, systemID, dest)
		if err != nil {
			return Action{}, err
		}
		if ok && strings.EqualFold(destHash, result.Hash) {
			if err := os.Remove(source); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return Action{}, fmt.Errorf("delete duplicate: %w", err)
			}
			return Action{Kind: ActionDedupDeleted, Dest: dest}, nil
		}
		return Action{Kind: ActionRenameConflict, Dest: dest}, nil
	}
	return Action{Kind: ActionRenameConflict, Dest: dest}, nil
}

// casingSelfCollision reports whether dest names the source file itself under
// a different casing. On case-sensitive filesystems an existing dest is a
// distinct file and no hop is wanted.
func casingSelfCollision(source, dest string) (bool, error) {
	if !strings.EqualFold(dest, source) {
		return false, nil
	}
	srcInfo, err := os.Stat(source)
	if err != nil {
		return false, fmt.Errorf("stat %q: %w", source, err)
	}
	destInfo, err := os.Stat(dest)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("stat %q: %w", dest, err)
	}
	return os.SameFile(srcInfo, destInfo), nil
}
