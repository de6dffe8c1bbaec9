package output

import (
	"time"

	"github.com/WyattAu/omnicpp/internal/types"
)

// testTimestamp is a fixed time for deterministic test output.
var testTimestamp = time.Date(2026, 3, 2, 9, 15, 0, 0, time.UTC)

// newTestReport builds a representative detection report.
func newTestReport() *Report {
	gcc := types.ToolchainCandidate{
		Family:       types.FamilyGCC,
		Path:         "/usr/bin/gcc",
		Version:      types.Version{Major: 13, Minor: 2, Patch: 1},
		Status:       types.StatusAvailable,
		Capabilities: []string{"asan", "c++17", "c++20", "c++23", "lto", "ubsan"},
	}
	conan := types.BackendRecord{
		Kind:      types.BackendConan,
		Path:      "/usr/bin/conan",
		Version:   types.Version{Major: 2, Minor: 4},
		Available: true,
	}

	return &Report{
		Action:    "detect",
		Version:   "1.0.0",
		Timestamp: testTimestamp,
		Platform: types.PlatformRecord{
			OSFamily:       types.OSLinux,
			OSVersion:      "6.9.1",
			ReleaseName:    "cachyos",
			ReleaseVersion: "rolling",
			Arch:           "amd64",
			DefaultABI:     types.ABIGnu,
			DerivativeOf:   "arch",
		},
		Toolchains: []types.ToolchainCandidate{
			{Family: types.FamilyClang, Status: types.StatusNotFound, Detail: "clang not found on PATH"},
			gcc,
			{Family: types.FamilyMSVC, Status: types.StatusNotFound, Detail: "not probed on this platform"},
		},
		Backends: []types.BackendRecord{
			conan,
			{Kind: types.BackendVcpkg, Detail: "vcpkg not found on PATH"},
			{Kind: types.BackendNative, NativeName: "pacman", Path: "/usr/bin/pacman", Available: true, RequiresElevation: true},
		},
		Toolchain: &gcc,
		Backend:   &conan,
	}
}

// newValidationReport builds a report carrying a failed validation.
func newValidationReport() *Report {
	r := newTestReport()
	r.Action = "validate"
	r.Validation = &types.ValidationReport{
		Valid: false,
		Errors: []string{
			"toolchain: not found (try: sudo pacman -S --needed clang)",
			"ninja not found on PATH (try: sudo pacman -S --needed ninja)",
		},
	}
	return r
}
