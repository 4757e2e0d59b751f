package reconcile

import "strings"

// Canonical-name derivation is driven by a small per-system policy table
// rather than scattered conditionals. Most systems store catalog filenames
// with a single trailing extension that local files do not carry in their
// base name; a couple of systems keep the extension as part of the name
// itself, and the PC-88 library names multi-part disk images where only the
// text before the first dot is the title.
var (
	keepExtensionSystems = map[int]struct{}{
		21: {}, // PlayStation 2
		40: {}, // Dreamcast
	}
	splitFirstDotSystems = map[int]struct{}{
		47: {}, // NEC PC-8000 / PC-8800
	}
)

// CanonicalName derives the expected local base name from a catalog filename.
func CanonicalName(systemID int, catalogName string) string {
	if _, keep := keepExtensionSystems[systemID]; keep {
		return catalogName
	}
	if _, first := splitFirstDotSystems[systemID]; first {
		if idx := strings.Index(catalogName, "."); idx >= 0 {
			return catalogName[:idx]
		}
		return catalogName
	}
	if idx := strings.LastIndex(catalogName, "."); idx >= 0 {
		return catalogName[:idx]
	}
	return catalogName
}

// LocalBaseName strips the last extension from a local filename.
func LocalBaseName(filename string) string {
	if idx := strings.LastIndex(filename, "."); idx >= 0 {
		return filename[:idx]
	}
	return filename
}
