package types

import (
	"fmt"
	"regexp"
	"strconv"

	"golang.org/x/mod/semver"
)

// Version is a normalized (major, minor, patch) tool version.
// Components that a tool does not report default to 0.
type Version struct {
	Major int `json:"major" yaml:"major"`
	Minor int `json:"minor" yaml:"minor"`
	Patch int `json:"patch" yaml:"patch"`
}

// looseVersionPattern matches the first dotted numeric run in arbitrary
// version output, e.g. "13", "13.2" or "13.2.1".
var looseVersionPattern = regexp.MustCompile(`([0-9]+)(?:\.([0-9]+))?(?:\.([0-9]+))?`)

// ParseVersion extracts the first dotted numeric version from s.
// Returns false when s contains no digits at all.
func ParseVersion(s string) (Version, bool) {
	m := looseVersionPattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, false
	}
	return versionFromMatch(m), true
}

// versionFromMatch builds a Version from a looseVersionPattern submatch.
// Missing minor/patch groups default to 0.
func versionFromMatch(m []string) Version {
	atoi := func(s string) int {
		if s == "" {
			return 0
		}
		n, _ := strconv.Atoi(s)
		return n
	}
	return Version{Major: atoi(m[1]), Minor: atoi(m[2]), Patch: atoi(m[3])}
}

// String returns the dotted form, e.g. "13.2.1".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// canonical returns the semver form used for ordering, e.g. "v13.2.1".
func (v Version) canonical() string {
	return "v" + v.String()
}

// Compare returns -1, 0 or +1 when v is lower than, equal to, or higher
// than o. Ordering is delegated to semver over the canonical form so the
// comparison rules stay in one place.
func (v Version) Compare(o Version) int {
	return semver.Compare(v.canonical(), o.canonical())
}

// Less reports whether v orders strictly before o.
func (v Version) Less(o Version) bool {
	return v.Compare(o) < 0
}

// AtLeast reports whether v satisfies the minimum min.
func (v Version) AtLeast(min Version) bool {
	return v.Compare(min) >= 0
}

// IsZero reports whether no version information was parsed.
func (v Version) IsZero() bool {
	return v == Version{}
}
