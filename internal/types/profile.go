package types

// BuildType is the requested optimization/debug configuration.
type BuildType string

// Supported build types, mirroring the four standard CMake configurations.
const (
	BuildDebug          BuildType = "debug"
	BuildRelease        BuildType = "release"
	BuildRelWithDebInfo BuildType = "relwithdebinfo"
	BuildMinSizeRel     BuildType = "minsizerel"
)

// KnownBuildTypes lists the accepted build types.
var KnownBuildTypes = []BuildType{BuildDebug, BuildRelease, BuildRelWithDebInfo, BuildMinSizeRel}

// IsKnownBuildType reports whether b names a supported build type.
func IsKnownBuildType(b BuildType) bool {
	for _, k := range KnownBuildTypes {
		if k == b {
			return true
		}
	}
	return false
}

// BuildProfile is the fully-resolved flag/environment set for one
// (platform, toolchain, build type) combination. Profiles are derived values:
// they are recomputed on demand and never mutated in place — any parameter
// change produces a new profile.
type BuildProfile struct {
	// Platform is the host platform the profile was generated for.
	Platform PlatformRecord `json:"platform"`

	// Toolchain is the selected compiler candidate.
	Toolchain ToolchainCandidate `json:"toolchain"`

	// BuildType is the configuration the flags were derived for.
	BuildType BuildType `json:"build_type"`

	// CFlags, CXXFlags and LinkerFlags are ordered flag sequences. Order is
	// meaningful: caller overrides are appended last so the underlying tool's
	// last-flag-wins rules apply.
	CFlags      []string `json:"c_flags"`
	CXXFlags    []string `json:"cxx_flags"`
	LinkerFlags []string `json:"linker_flags"`

	// Defines are preprocessor definitions without the -D/ /D prefix.
	Defines []string `json:"defines"`

	// Environment holds the variables a build under this profile runs with.
	Environment map[string]string `json:"environment"`
}
