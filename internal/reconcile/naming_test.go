package reconcile_test

import (
	"testing"

	"romshelf/internal/reconcile"
)

func TestCanonicalNamePolicies(t *testing.T) {
	cases := []struct {
		name     string
		systemID int
		input    string
		want     string
	}{
		{"default strips last extension", 7, "Super Mario Bros. (USA).nes", "Super Mario Bros. (USA)"},
		{"default keeps inner dots", 7, "Dr. Mario (World).nes", "Dr. Mario (World)"},
		{"default without dot unchanged", 7, "Homebrew Demo", "Homebrew Demo"},
		{"ps2 keeps extension", 21, "Shadow of the Colossus (USA).iso", "Shadow of the Colossus (USA).iso"},
		{"dreamcast keeps extension", 40, "Crazy Taxi (USA).chd", "Crazy Taxi (USA).chd"},
		{"pc88 splits at first dot", 47, "Snatcher.disk1.d88", "Snatcher"},
		{"pc88 without dot unchanged", 47, "Snatcher", "Snatcher"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := reconcile.CanonicalName(tc.systemID, tc.input); got != tc.want {
				t.Fatalf("CanonicalName(%d, %q) = %q, want %q", tc.systemID, tc.input, got, tc.want)
			}
		})
	}
}

func TestCanonicalNameRoundTrip(t *testing.T) {
	// For non-special systems, re-appending the stripped suffix must
	// reconstruct the catalog filename.
	inputs := []string{
		"Super Mario Bros. (USA).nes",
		"The Legend of Zelda (USA) (Rev 1).nes",
		"Metroid (USA).zip",
	}
	for _, input := range inputs {
		canonical := reconcile.CanonicalName(7, input)
		suffix := input[len(canonical):]
		if canonical+suffix != input {
			t.Fatalf("round trip failed for %q: canonical %q suffix %q", input, canonical, suffix)
		}
	}
}

func TestLocalBaseName(t *testing.T) {
	cases := map[string]string{
		"mario.nes":            "mario",
		"game.v1.1.bin":        "game.v1.1",
		"no-extension":         "no-extension",
		"Crazy Taxi (USA).chd": "Crazy Taxi (USA)",
	}
	for input, want := range cases {
		if got := reconcile.LocalBaseName(input); got != want {
			t.Fatalf("LocalBaseName(%q) = %q, want %q", input, got, want)
		}
	}
}
