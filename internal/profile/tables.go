package profile

import (
	"github.com/WyattAu/omnicpp/internal/toolchain"
	"github.com/WyattAu/omnicpp/internal/types"
)

// dialect groups families sharing a flag dialect. GCC and Clang take GNU
// flags; MSVC has its own.
type dialect int

const (
	dialectGNU dialect = iota
	dialectMSVC
)

func dialectOf(family types.Family) dialect {
	if family == types.FamilyMSVC {
		return dialectMSVC
	}
	return dialectGNU
}

// buildTypeFlags is the ordered per-(dialect, build type) flag table. All
// internal tables are ordered sequences: identical inputs must always yield
// byte-identical flag sequences, so nothing here may depend on map iteration
// order.
var buildTypeFlags = map[dialect]map[types.BuildType][]string{
	dialectGNU: {
		types.BuildDebug:          {"-O0", "-g3"},
		types.BuildRelease:        {"-O3"},
		types.BuildRelWithDebInfo: {"-O2", "-g"},
		types.BuildMinSizeRel:     {"-Os"},
	},
	dialectMSVC: {
		types.BuildDebug:          {"/Od", "/Zi", "/RTC1", "/MDd"},
		types.BuildRelease:        {"/O2", "/MD"},
		types.BuildRelWithDebInfo: {"/O2", "/Zi", "/MD"},
		types.BuildMinSizeRel:     {"/O1", "/MD"},
	},
}

// buildTypeLinkerFlags holds link-stage additions per dialect and build type.
var buildTypeLinkerFlags = map[dialect]map[types.BuildType][]string{
	dialectGNU: {
		types.BuildRelease:    {"-Wl,-O1"},
		types.BuildMinSizeRel: {"-Wl,-O1"},
	},
	dialectMSVC: {
		types.BuildDebug:          {"/DEBUG"},
		types.BuildRelWithDebInfo: {"/DEBUG"},
	},
}

// buildTypeDefines holds preprocessor definitions per build type, shared by
// both dialects.
var buildTypeDefines = map[types.BuildType][]string{
	types.BuildRelease:        {"NDEBUG"},
	types.BuildRelWithDebInfo: {"NDEBUG"},
	types.BuildMinSizeRel:     {"NDEBUG"},
}

// nativeTuningFlags are the host-tuned optimization flags. MSVC has no
// equivalent of -march=native and gets none.
var nativeTuningFlags = []string{"-march=native", "-mtune=native"}

// stdFlag picks the highest language-standard flag the candidate advertises.
func stdFlag(cand types.ToolchainCandidate) string {
	switch dialectOf(cand.Family) {
	case dialectMSVC:
		switch {
		case cand.HasCapability(toolchain.CapCxx23):
			return "/std:c++latest"
		case cand.HasCapability(toolchain.CapCxx20):
			return "/std:c++20"
		default:
			return "/std:c++17"
		}
	default:
		switch {
		case cand.HasCapability(toolchain.CapCxx23):
			return "-std=c++23"
		case cand.HasCapability(toolchain.CapCxx20):
			return "-std=c++20"
		default:
			return "-std=c++17"
		}
	}
}
