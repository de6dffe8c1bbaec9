// Package profile derives deterministic build profiles from a platform
// record, a selected toolchain and a build type, and serializes them to an
// ordered-section textual form that round-trips.
package profile

import (
	"github.com/WyattAu/omnicpp/internal/toolchain"
	"github.com/WyattAu/omnicpp/internal/types"
)

// Overrides are caller-supplied additions appended after every generated
// flag, so they win on conflict wherever the underlying tool treats later
// flags as authoritative. The generator never deduplicates; it only
// guarantees ordering.
type Overrides struct {
	CFlags      []string
	CXXFlags    []string
	LinkerFlags []string
	Defines     []string
	Environment map[string]string
}

// Options tune profile generation beyond the (platform, toolchain, build
// type) key.
type Options struct {
	// NativeTuning controls host-tuned optimization flags. The zero value
	// behaves as types.TuningAuto.
	NativeTuning types.NativeTuning

	// Overrides are appended last.
	Overrides Overrides
}

// Generate derives a BuildProfile. It is a pure function: no side effects,
// no caching, and identical inputs always produce byte-identical flag
// sequences. Callers may cache results under the same key if they wish.
func Generate(platform types.PlatformRecord, tc types.ToolchainCandidate, buildType types.BuildType, opts Options) types.BuildProfile {
	d := dialectOf(tc.Family)

	base := appendCopy(nil, tc.Flags...)
	base = append(base, buildTypeFlags[d][buildType]...)
	if tuningApplies(platform, tc.Family, opts.NativeTuning) {
		base = append(base, nativeTuningFlags...)
	}

	cflags := appendCopy(base, opts.Overrides.CFlags...)

	cxxflags := appendCopy(base, stdFlag(tc))
	cxxflags = append(cxxflags, opts.Overrides.CXXFlags...)

	ldflags := appendCopy(buildTypeLinkerFlags[d][buildType], opts.Overrides.LinkerFlags...)

	defines := appendCopy(buildTypeDefines[buildType], opts.Overrides.Defines...)

	env := map[string]string{
		"CC":  tc.Path,
		"CXX": toolchain.CXXFor(tc.Family, tc.Path),
	}
	for k, v := range opts.Overrides.Environment {
		env[k] = v
	}

	return types.BuildProfile{
		Platform:    platform,
		Toolchain:   tc,
		BuildType:   buildType,
		CFlags:      cflags,
		CXXFlags:    cxxflags,
		LinkerFlags: ldflags,
		Defines:     defines,
		Environment: env,
	}
}

// tuningApplies decides whether host-native tuning flags are added. The
// historic behavior (tuning only on one Arch derivative) is kept as the
// TuningAuto default but is an explicit, configurable policy rather than a
// hidden special case. Cross targets never tune: these profiles always
// target the probing host.
func tuningApplies(platform types.PlatformRecord, family types.Family, tuning types.NativeTuning) bool {
	if family == types.FamilyMSVC {
		return false
	}
	switch tuning {
	case types.TuningAlways:
		return true
	case types.TuningNever:
		return false
	default: // TuningAuto
		return platform.ReleaseName == "cachyos" && platform.IsKnownDerivative("arch")
	}
}

// appendCopy appends onto a fresh slice so generated profiles never alias
// the shared tables or each other.
func appendCopy(base []string, extra ...string) []string {
	out := make([]string, 0, len(base)+len(extra))
	out = append(out, base...)
	out = append(out, extra...)
	return out
}
