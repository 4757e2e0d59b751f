package reconcile_test

import (
	"context"
	"errors"
	"testing"

	"romshelf/internal/catalog"
	"romshelf/internal/logging"
	"romshelf/internal/reconcile"
	"romshelf/internal/systems"
)

type fakeResolver struct {
	hashes map[string]string
	calls  int
}

func (f *fakeResolver) Hash(ctx context.Context, systemID int, path string) (string, bool, error) {
	f.calls++
	digest, ok := f.hashes[path]
	return digest, ok && digest != "", nil
}

type fakeCatalog struct {
	records map[int][]catalog.HashRecord
	err     error
	fetches int
}

func (f *fakeCatalog) ListGames(ctx context.Context, systemID int) ([]catalog.Game, error) {
	return nil, errors.New("not used in these tests")
}

func (f *fakeCatalog) GameHashes(ctx context.Context, gameID int) ([]catalog.HashRecord, error) {
	f.fetches++
	if f.err != nil {
		return nil, f.err
	}
	return f.records[gameID], nil
}

var nesSystem = systems.System{ID: 7, Name: "Nintendo Entertainment System", Dirs: []string{"nes"}}

func marioIndex() reconcile.Index {
	return reconcile.BuildIndex([]catalog.Game{
		{ID: 1446, Title: "Super Mario Bros.", Hashes: []string{"811b027eaf99c2def7b933c5208636de"}},
	})
}

func TestClassifyMismatchedName(t *testing.T) {
	resolver := &fakeResolver{hashes: map[string]string{
		"/roms/nes/mario.nes": "811b027eaf99c2def7b933c5208636de",
	}}
	svc := &fakeCatalog{records: map[int][]catalog.HashRecord{
		1446: {{MD5: "811b027eaf99c2def7b933c5208636de", Name: "Super Mario Bros. (USA).nes"}},
	}}
	engine := reconcile.NewEngine(resolver, svc, logging.NewNop())

	result, err := engine.Classify(context.Background(), "/roms/nes/mario.nes", marioIndex(), nesSystem)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if result.Outcome != reconcile.OutcomeMismatched {
		t.Fatalf("outcome = %v, want mismatched", result.Outcome)
	}
	if result.Canonical != "Super Mario Bros. (USA)" {
		t.Fatalf("canonical = %q", result.Canonical)
	}
	if result.LocalName != "mario" {
		t.Fatalf("local name = %q", result.LocalName)
	}
	if result.Game.Title != "Super Mario Bros." {
		t.Fatalf("game = %+v", result.Game)
	}
}

func TestClassifyMatchedCorrectName(t *testing.T) {
	resolver := &fakeResolver{hashes: map[string]string{
		"/roms/nes/Super Mario Bros. (USA).nes": "811b027eaf99c2def7b933c5208636de",
	}}
	svc := &fakeCatalog{records: map[int][]catalog.HashRecord{
		1446: {{MD5: "811b027eaf99c2def7b933c5208636de", Name: "Super Mario Bros. (USA).nes"}},
	}}
	engine := reconcile.NewEngine(resolver, svc, logging.NewNop())

	result, err := engine.Classify(context.Background(), "/roms/nes/Super Mario Bros. (USA).nes", marioIndex(), nesSystem)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if result.Outcome != reconcile.OutcomeMatched {
		t.Fatalf("outcome = %v, want matched", result.Outcome)
	}
}

func TestClassifyCasingFallbackNeverUnmatchedForIndexedHash(t *testing.T) {
	// Index stores lowercase; hasher reports uppercase.
	resolver := &fakeResolver{hashes: map[string]string{
		"/roms/nes/mario.nes": "811B027EAF99C2DEF7B933C5208636DE",
	}}
	svc := &fakeCatalog{records: map[int][]catalog.HashRecord{
		1446: {{MD5: "811b027eaf99c2def7b933c5208636de", Name: "Super Mario Bros. (USA).nes"}},
	}}
	engine := reconcile.NewEngine(resolver, svc, logging.NewNop())

	result, err := engine.Classify(context.Background(), "/roms/nes/mario.nes", marioIndex(), nesSystem)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if result.Outcome == reconcile.OutcomeUnmatched {
		t.Fatal("indexed hash must never classify as unmatched")
	}
}

func TestClassifyNoHashIsUnmatched(t *testing.T) {
	resolver := &fakeResolver{hashes: map[string]string{}}
	svc := &fakeCatalog{}
	engine := reconcile.NewEngine(resolver, svc, logging.NewNop())

	result, err := engine.Classify(context.Background(), "/roms/nes/corrupt.nes", marioIndex(), nesSystem)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if result.Outcome != reconcile.OutcomeUnmatched {
		t.Fatalf("outcome = %v, want unmatched", result.Outcome)
	}
	if svc.fetches != 0 {
		t.Fatal("catalog should not be queried without a hash")
	}
}

func TestClassifyUnknownHashIsUnmatched(t *testing.T) {
	resolver := &fakeResolver{hashes: map[string]string{
		"/roms/nes/bootleg.nes": "ffffffffffffffffffffffffffffffff",
	}}
	svc := &fakeCatalog{}
	engine := reconcile.NewEngine(resolver, svc, logging.NewNop())

	result, err := engine.Classify(context.Background(), "/roms/nes/bootleg.nes", marioIndex(), nesSystem)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if result.Outcome != reconcile.OutcomeUnmatched {
		t.Fatalf("outcome = %v, want unmatched", result.Outcome)
	}
}

func TestClassifyRecordMissingIsDiagnosableUnmatched(t *testing.T) {
	resolver := &fakeResolver{hashes: map[string]string{
		"/roms/nes/mario.nes": "811b027eaf99c2def7b933c5208636de",
	}}
	// Per-game endpoint disagrees with the list endpoint.
	svc := &fakeCatalog{records: map[int][]catalog.HashRecord{1446: {}}}
	engine := reconcile.NewEngine(resolver, svc, logging.NewNop())

	result, err := engine.Classify(context.Background(), "/roms/nes/mario.nes", marioIndex(), nesSystem)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if result.Outcome != reconcile.OutcomeUnmatched {
		t.Fatalf("outcome = %v, want unmatched", result.Outcome)
	}
	if !result.RecordMissing {
		t.Fatal("expected RecordMissing marker")
	}
}

func TestClassifyCatalogFailurePropagates(t *testing.T) {
	resolver := &fakeResolver{hashes: map[string]string{
		"/roms/nes/mario.nes": "811b027eaf99c2def7b933c5208636de",
	}}
	svc := &fakeCatalog{err: errors.New("boom")}
	engine := reconcile.NewEngine(resolver, svc, logging.NewNop())

	if _, err := engine.Classify(context.Background(), "/roms/nes/mario.nes", marioIndex(), nesSystem); err == nil {
		t.Fatal("expected catalog error to propagate")
	}
}
