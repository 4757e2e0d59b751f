package reconcile

import (
	"strings"

	"romshelf/internal/catalog"
)

// Index maps hash strings to the game that owns them for one system. It is
// built fresh for every system scan and discarded afterwards; nothing is
// cached across runs.
type Index struct {
	entries map[string]catalog.Game
}

// BuildIndex flattens the game list's hash manifests into a lookup table.
// The first game claiming a hash wins; catalog response order is
// authoritative.
func BuildIndex(games []catalog.Game) Index {
	entries := make(map[string]catalog.Game)
	for _, game := range games {
		for _, hash := range game.Hashes {
			hash = strings.TrimSpace(hash)
			if hash == "" {
				continue
			}
			if _, claimed := entries[hash]; claimed {
				continue
			}
			entries[hash] = game
		}
	}
	return Index{entries: entries}
}

// Lookup resolves a hash against the index. The catalog's stored casing is
// inconsistent across systems, so a miss on the exact form retries the
// lowercase and then uppercase forms. The returned key is the casing the
// index matched under, which per-game record matching must reuse.
func (ix Index) Lookup(hash string) (catalog.Game, string, bool) {
	if hash == "" {
		return catalog.Game{}, "", false
	}
	for _, candidate := range []string{hash, strings.ToLower(hash), strings.ToUpper(hash)} {
		if game, ok := ix.entries[candidate]; ok {
			return game, candidate, true
		}
	}
	return catalog.Game{}, "", false
}

// Len reports the number of indexed hashes.
func (ix Index) Len() int {
	return len(ix.entries)
}
