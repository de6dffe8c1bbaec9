package toolchain

import (
	"regexp"
	"strconv"

	"github.com/WyattAu/omnicpp/internal/types"
)

// familySpec describes how one compiler family is probed: which executables
// to sweep, how to ask for a version, and which introspection flags yield the
// target triple and search paths. Adding a family is a table addition.
type familySpec struct {
	family types.Family

	// executables are swept in order; every name found on the search path is
	// version-queried and the highest version wins.
	executables []string

	// versionArgs are passed to the executable to obtain version output.
	// An empty slice means "run bare" (MSVC cl prints its banner on stderr).
	versionArgs []string

	// versionPatterns are tried in order against the combined output; the
	// first matching pattern's first capture group is parsed.
	versionPatterns []*regexp.Regexp

	// bannerOnStderr marks tools whose banner goes to stderr and whose bare
	// invocation exits non-zero even when healthy.
	bannerOnStderr bool

	// tripleArgs asks for the default target triple; nil means the triple is
	// derived rather than probed.
	tripleArgs []string

	// searchArgs asks for library/install search paths; nil disables.
	searchArgs []string

	// windowsOnly marks families that only exist on Windows hosts.
	windowsOnly bool

	// baseFlags is the family's fixed baseline flag sequence.
	baseFlags []string

	// cxxDriver maps the C driver name to the C++ driver (gcc-13 → g++-13).
	cxxDriver func(cDriver string) string
}

var gccVersionPatterns = []*regexp.Regexp{
	// "gcc (GCC) 13.2.1 20230801" / "gcc (Ubuntu 13.2.0-23ubuntu4) 13.2.0"
	regexp.MustCompile(`\) ([0-9]+(?:\.[0-9]+){0,2})`),
	regexp.MustCompile(`gcc[^0-9]*([0-9]+(?:\.[0-9]+){0,2})`),
}

var clangVersionPatterns = []*regexp.Regexp{
	// "clang version 17.0.6" / "Apple clang version 15.0.0"
	regexp.MustCompile(`clang version ([0-9]+(?:\.[0-9]+){0,2})`),
	regexp.MustCompile(`version ([0-9]+(?:\.[0-9]+){0,2})`),
}

var msvcVersionPatterns = []*regexp.Regexp{
	// "Microsoft (R) C/C++ Optimizing Compiler Version 19.38.33135 for x64"
	regexp.MustCompile(`Compiler Version ([0-9]+(?:\.[0-9]+){0,2})`),
	regexp.MustCompile(`Version ([0-9]+(?:\.[0-9]+){0,2})`),
}

// familySpecs is the closed probe table, one entry per supported family.
var familySpecs = []familySpec{
	{
		family:          types.FamilyGCC,
		executables:     versionedNames("gcc", 15, 9),
		versionArgs:     []string{"--version"},
		versionPatterns: gccVersionPatterns,
		tripleArgs:      []string{"-dumpmachine"},
		searchArgs:      []string{"-print-search-dirs"},
		baseFlags:       []string{"-Wall", "-Wextra", "-Wpedantic"},
		cxxDriver:       gnuCXXDriver("gcc", "g++"),
	},
	{
		family:          types.FamilyClang,
		executables:     versionedNames("clang", 20, 12),
		versionArgs:     []string{"--version"},
		versionPatterns: clangVersionPatterns,
		tripleArgs:      []string{"-dumpmachine"},
		searchArgs:      []string{"-print-search-dirs"},
		baseFlags:       []string{"-Wall", "-Wextra", "-Wpedantic"},
		cxxDriver:       gnuCXXDriver("clang", "clang++"),
	},
	{
		family:          types.FamilyMSVC,
		executables:     []string{"cl"},
		versionArgs:     nil,
		versionPatterns: msvcVersionPatterns,
		bannerOnStderr:  true,
		windowsOnly:     true,
		baseFlags:       []string{"/W4", "/permissive-", "/EHsc"},
		cxxDriver:       func(c string) string { return c },
	},
}

// specFor returns the probe table entry for a family.
func specFor(family types.Family) (familySpec, bool) {
	for _, s := range familySpecs {
		if s.family == family {
			return s, true
		}
	}
	return familySpec{}, false
}

// versionedNames produces the executable sweep list for a GNU-style tool:
// the plain name first, then versioned names from newest to oldest
// (gcc, gcc-15, gcc-14, ...).
func versionedNames(base string, newest, oldest int) []string {
	names := []string{base}
	for v := newest; v >= oldest; v-- {
		names = append(names, fmtVersioned(base, v))
	}
	return names
}

func fmtVersioned(base string, v int) string {
	// gcc-13, clang-17
	return base + "-" + strconv.Itoa(v)
}

// gnuCXXDriver maps a GNU-style C driver name onto its C++ counterpart,
// preserving a version suffix (gcc-13 → g++-13).
func gnuCXXDriver(cBase, cxxBase string) func(string) string {
	return func(cDriver string) string {
		if len(cDriver) >= len(cBase) && cDriver[:len(cBase)] == cBase {
			return cxxBase + cDriver[len(cBase):]
		}
		return cxxBase
	}
}
