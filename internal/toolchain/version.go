package toolchain

import "github.com/WyattAu/omnicpp/internal/types"

// parseFamilyVersion extracts a normalized version from a compiler's version
// output using the family's ordered pattern list, taking the first match.
// This is the only place version strings are parsed; every other component
// consumes the structured types.Version.
func parseFamilyVersion(spec familySpec, output string) (types.Version, bool) {
	for _, pattern := range spec.versionPatterns {
		m := pattern.FindStringSubmatch(output)
		if m == nil {
			continue
		}
		if v, ok := types.ParseVersion(m[1]); ok {
			return v, true
		}
	}
	return types.Version{}, false
}
