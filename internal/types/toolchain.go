package types

// Family identifies a class of compiler sharing a flag dialect.
type Family string

// Known toolchain families.
const (
	FamilyGCC   Family = "gcc"
	FamilyClang Family = "clang"
	FamilyMSVC  Family = "msvc"
	FamilyOther Family = "other"
)

// KnownFamilies lists the probeable families in their default priority order.
var KnownFamilies = []Family{FamilyClang, FamilyGCC, FamilyMSVC}

// IsKnownFamily reports whether f names a probeable family.
func IsKnownFamily(f Family) bool {
	for _, k := range KnownFamilies {
		if k == f {
			return true
		}
	}
	return false
}

// CandidateStatus is the detection outcome for one toolchain candidate.
type CandidateStatus string

const (
	// StatusAvailable means the tool was found and satisfies the version floor.
	StatusAvailable CandidateStatus = "available"
	// StatusNotFound means no executable for the family exists on the search path.
	StatusNotFound CandidateStatus = "not_found"
	// StatusIncompatibleVersion means the tool exists but its version is below
	// the configured minimum for its family.
	StatusIncompatibleVersion CandidateStatus = "incompatible_version"
	// StatusMissingDependency means the executable exists but could not be
	// queried (the version subprocess errored or timed out).
	StatusMissingDependency CandidateStatus = "missing_dependency"
)

// ToolchainCandidate is the result of probing one compiler family.
type ToolchainCandidate struct {
	// Family is the flag dialect class of the candidate.
	Family Family `json:"family"`

	// Path is the resolved executable path. Empty when Status is StatusNotFound.
	Path string `json:"executable_path,omitempty"`

	// Version is the parsed (major, minor, patch) version.
	Version Version `json:"version"`

	// TargetTriple is the compiler's default target (e.g.
	// "x86_64-pc-linux-gnu"). Empty when introspection failed.
	TargetTriple string `json:"target_triple,omitempty"`

	// Status is the detection outcome.
	Status CandidateStatus `json:"status"`

	// Capabilities are feature tags (language standards, lto, sanitizers).
	// Only populated when Status is StatusAvailable. Sorted.
	Capabilities []string `json:"capabilities,omitempty"`

	// Flags are family baseline flags in a fixed order.
	Flags []string `json:"flags,omitempty"`

	// IncludePaths and LibraryPaths come from family introspection; empty
	// when introspection failed.
	IncludePaths []string `json:"include_paths,omitempty"`
	LibraryPaths []string `json:"library_paths,omitempty"`

	// Detail carries a human-readable note for non-available statuses
	// (e.g. the version-query error).
	Detail string `json:"detail,omitempty"`
}

// Usable reports whether the candidate can be selected.
func (c ToolchainCandidate) Usable() bool {
	return c.Status == StatusAvailable
}

// HasCapability reports whether the candidate advertises the given feature tag.
func (c ToolchainCandidate) HasCapability(tag string) bool {
	for _, t := range c.Capabilities {
		if t == tag {
			return true
		}
	}
	return false
}
