// Package command turns a build profile plus a requested action into an
// executable command description. Nothing here runs processes: the produced
// CommandSpec is handed to the process-execution collaborator.
package command

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/WyattAu/omnicpp/internal/types"
)

// Per-action wall-clock budgets. Configure and test are bounded; full builds
// get the longest leash.
const (
	configureTimeout = 5 * time.Minute
	buildTimeout     = 30 * time.Minute
	testTimeout      = 15 * time.Minute
	packageTimeout   = 10 * time.Minute
)

// cmakeBuildTypes maps the profile build types onto CMake's configuration
// names.
var cmakeBuildTypes = map[types.BuildType]string{
	types.BuildDebug:          "Debug",
	types.BuildRelease:        "Release",
	types.BuildRelWithDebInfo: "RelWithDebInfo",
	types.BuildMinSizeRel:     "MinSizeRel",
}

// OutputDir derives the build directory for a profile. The name is keyed by
// (toolchain family, build type) so differing profiles never collide in the
// same output tree.
func OutputDir(p types.BuildProfile) string {
	return filepath.Join("build", fmt.Sprintf("%s-%s", p.Toolchain.Family, p.BuildType))
}

// Generate maps an action onto its command template, parameterized by the
// profile's flags and environment and by target for build/test/package.
// Identical inputs yield identical specs.
func Generate(p types.BuildProfile, action types.Action, target string) (types.CommandSpec, error) {
	outDir := OutputDir(p)

	switch action {
	case types.ActionConfigure:
		args := []string{
			"-S", ".",
			"-B", outDir,
			"-G", "Ninja",
			"-DCMAKE_BUILD_TYPE=" + cmakeBuildTypes[p.BuildType],
		}
		if p.Toolchain.Path != "" {
			args = append(args, "-DCMAKE_C_COMPILER="+p.Environment["CC"])
			args = append(args, "-DCMAKE_CXX_COMPILER="+p.Environment["CXX"])
		}
		if len(p.CFlags) > 0 {
			args = append(args, "-DCMAKE_C_FLAGS="+strings.Join(p.CFlags, " "))
		}
		if len(p.CXXFlags) > 0 {
			args = append(args, "-DCMAKE_CXX_FLAGS="+strings.Join(p.CXXFlags, " "))
		}
		if len(p.LinkerFlags) > 0 {
			args = append(args, "-DCMAKE_EXE_LINKER_FLAGS="+strings.Join(p.LinkerFlags, " "))
		}
		for _, def := range p.Defines {
			args = append(args, "-D"+def)
		}
		return types.CommandSpec{
			Executable: "cmake",
			Args:       args,
			Env:        copyEnv(p.Environment),
			Timeout:    configureTimeout,
		}, nil

	case types.ActionBuild:
		args := []string{"--build", outDir, "--parallel"}
		if target != "" {
			args = append(args, "--target", target)
		}
		return types.CommandSpec{
			Executable: "cmake",
			Args:       args,
			Env:        copyEnv(p.Environment),
			Timeout:    buildTimeout,
		}, nil

	case types.ActionTest:
		args := []string{"--test-dir", outDir, "--output-on-failure"}
		if target != "" {
			args = append(args, "-R", target)
		}
		return types.CommandSpec{
			Executable: "ctest",
			Args:       args,
			Env:        copyEnv(p.Environment),
			Timeout:    testTimeout,
		}, nil

	case types.ActionPackage:
		args := []string{"--build", outDir, "--target", "package"}
		if target != "" {
			args = []string{"--build", outDir, "--target", target}
		}
		return types.CommandSpec{
			Executable: "cmake",
			Args:       args,
			Env:        copyEnv(p.Environment),
			Timeout:    packageTimeout,
		}, nil

	default:
		return types.CommandSpec{}, fmt.Errorf("unknown action %q", action)
	}
}

// copyEnv clones the profile environment so the spec never aliases the
// profile's map.
func copyEnv(env map[string]string) map[string]string {
	if len(env) == 0 {
		return nil
	}
	out := make(map[string]string, len(env))
	for k, v := range env {
		out[k] = v
	}
	return out
}
