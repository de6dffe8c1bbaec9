package toolchain

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WyattAu/omnicpp/internal/subproc"
	"github.com/WyattAu/omnicpp/internal/types"
)

// mockRunner maps "path arg1 arg2" onto canned output.
type mockRunner struct {
	stdout map[string]string
	stderr map[string]string
	errs   map[string]error
	delay  time.Duration
}

func (m *mockRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return "", "", ctx.Err()
		}
	}
	if ctx.Err() != nil {
		return "", "", ctx.Err()
	}
	key := name
	for _, a := range args {
		key += " " + a
	}
	return m.stdout[key], m.stderr[key], m.errs[key]
}

// lookPathFrom resolves only the listed executables.
func lookPathFrom(paths map[string]string) func(string) (string, error) {
	return func(name string) (string, error) {
		if p, ok := paths[name]; ok {
			return p, nil
		}
		return "", fmt.Errorf("%s: executable file not found in $PATH", name)
	}
}

func testProber(osFamily string, runner subproc.Runner, paths map[string]string) *Prober {
	p := NewProber(osFamily, types.DefaultPolicy())
	p.Runner = runner
	p.LookPath = lookPathFrom(paths)
	p.ResolveLink = func(path string) (string, error) { return path, nil }
	return p
}

func TestDetect_GCCAvailable(t *testing.T) {
	runner := &mockRunner{
		stdout: map[string]string{
			"/usr/bin/gcc --version":          "gcc (GCC) 13.2.1 20230801\nCopyright (C) 2023",
			"/usr/bin/gcc -dumpmachine":       "x86_64-pc-linux-gnu\n",
			"/usr/bin/gcc -print-search-dirs": "install: /usr/lib/gcc/x86_64-pc-linux-gnu/13/\nlibraries: =/usr/lib64:/usr/lib\n",
		},
	}
	p := testProber(types.OSLinux, runner, map[string]string{"gcc": "/usr/bin/gcc"})

	cand := p.Detect(context.Background(), types.FamilyGCC)

	require.Equal(t, types.StatusAvailable, cand.Status)
	assert.Equal(t, "/usr/bin/gcc", cand.Path)
	assert.Equal(t, types.Version{Major: 13, Minor: 2, Patch: 1}, cand.Version)
	assert.Equal(t, "x86_64-pc-linux-gnu", cand.TargetTriple)
	assert.Equal(t, []string{"-Wall", "-Wextra", "-Wpedantic"}, cand.Flags)
	assert.Contains(t, cand.Capabilities, CapCxx20)
	assert.Contains(t, cand.Capabilities, CapCxx23)
	assert.Equal(t, []string{"/usr/lib/gcc/x86_64-pc-linux-gnu/13/include"}, cand.IncludePaths)
	assert.Equal(t, []string{"/usr/lib64", "/usr/lib"}, cand.LibraryPaths)
}

func TestDetect_BelowMinimumStillReturned(t *testing.T) {
	// An old compiler must be surfaced as incompatible_version, not omitted,
	// so the caller can distinguish "not installed" from "too old".
	runner := &mockRunner{
		stdout: map[string]string{
			"/usr/bin/gcc --version": "gcc (Ubuntu 8.5.0-1ubuntu1) 8.5.0\n",
		},
	}
	p := testProber(types.OSLinux, runner, map[string]string{"gcc": "/usr/bin/gcc"})

	cand := p.Detect(context.Background(), types.FamilyGCC)

	assert.Equal(t, types.StatusIncompatibleVersion, cand.Status)
	assert.Equal(t, types.Version{Major: 8, Minor: 5}, cand.Version)
	assert.Empty(t, cand.Capabilities, "capabilities are only populated for available candidates")
	assert.Contains(t, cand.Detail, "8.5.0")
	assert.Contains(t, cand.Detail, "9.0.0")
}

func TestDetect_NotFound(t *testing.T) {
	p := testProber(types.OSLinux, &mockRunner{}, nil)

	cand := p.Detect(context.Background(), types.FamilyClang)

	assert.Equal(t, types.StatusNotFound, cand.Status)
	assert.Empty(t, cand.Path)
}

func TestDetect_QueryFailureIsMissingDependency(t *testing.T) {
	// The tool exists but cannot be queried: distinct from "not found".
	runner := &mockRunner{
		errs: map[string]error{
			"/usr/bin/clang --version": errors.New("error while loading shared libraries"),
		},
	}
	p := testProber(types.OSLinux, runner, map[string]string{"clang": "/usr/bin/clang"})

	cand := p.Detect(context.Background(), types.FamilyClang)

	assert.Equal(t, types.StatusMissingDependency, cand.Status)
	assert.Contains(t, cand.Detail, "version query failed")
}

func TestDetect_TieBreakPrefersHighestVersion(t *testing.T) {
	runner := &mockRunner{
		stdout: map[string]string{
			"/usr/bin/gcc --version":    "gcc (GCC) 12.3.0\n",
			"/usr/bin/gcc-14 --version": "gcc (GCC) 14.1.0\n",
		},
	}
	p := testProber(types.OSLinux, runner, map[string]string{
		"gcc":    "/usr/bin/gcc",
		"gcc-14": "/usr/bin/gcc-14",
	})

	cand := p.Detect(context.Background(), types.FamilyGCC)

	require.Equal(t, types.StatusAvailable, cand.Status)
	assert.Equal(t, "/usr/bin/gcc-14", cand.Path)
	assert.Equal(t, types.Version{Major: 14, Minor: 1}, cand.Version)
}

func TestDetect_MSVCSkippedOffWindows(t *testing.T) {
	p := testProber(types.OSLinux, &mockRunner{}, map[string]string{"cl": "/weird/cl"})

	cand := p.Detect(context.Background(), types.FamilyMSVC)

	assert.Equal(t, types.StatusNotFound, cand.Status)
	assert.Equal(t, "not probed on this platform", cand.Detail)
}

func TestDetect_MSVCBannerOnStderr(t *testing.T) {
	runner := &mockRunner{
		stderr: map[string]string{
			"C:\\VC\\bin\\cl.exe": "Microsoft (R) C/C++ Optimizing Compiler Version 19.38.33135 for x64\n",
		},
		errs: map[string]error{
			"C:\\VC\\bin\\cl.exe": errors.New("exit status 2"),
		},
	}
	p := testProber(types.OSWindows, runner, map[string]string{"cl": "C:\\VC\\bin\\cl.exe"})

	cand := p.Detect(context.Background(), types.FamilyMSVC)

	require.Equal(t, types.StatusAvailable, cand.Status)
	assert.Equal(t, types.Version{Major: 19, Minor: 38, Patch: 33135}, cand.Version)
	assert.Equal(t, "x86_64-pc-windows-msvc", cand.TargetTriple)
	assert.Contains(t, cand.Capabilities, CapCxx23)
}

func TestDetect_CancelledContextReportsNotFound(t *testing.T) {
	runner := &mockRunner{delay: time.Second}
	p := testProber(types.OSLinux, runner, map[string]string{"gcc": "/usr/bin/gcc"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cand := p.Detect(ctx, types.FamilyGCC)

	assert.Equal(t, types.StatusNotFound, cand.Status)
	assert.Contains(t, cand.Detail, "probe cancelled")
}

func TestDetectAll_OneCandidatePerFamily(t *testing.T) {
	runner := &mockRunner{
		stdout: map[string]string{
			"/usr/bin/gcc --version": "gcc (GCC) 13.0.0\n",
		},
	}
	p := testProber(types.OSLinux, runner, map[string]string{"gcc": "/usr/bin/gcc"})

	candidates := p.DetectAll(context.Background())

	require.Len(t, candidates, len(types.KnownFamilies))
	byFamily := map[types.Family]types.ToolchainCandidate{}
	for _, c := range candidates {
		byFamily[c.Family] = c
	}
	assert.Equal(t, types.StatusAvailable, byFamily[types.FamilyGCC].Status)
	assert.Equal(t, types.StatusNotFound, byFamily[types.FamilyClang].Status)
	assert.Equal(t, types.StatusNotFound, byFamily[types.FamilyMSVC].Status)
}

func TestParseFamilyVersion_Variants(t *testing.T) {
	cases := []struct {
		family types.Family
		output string
		want   types.Version
	}{
		{types.FamilyGCC, "gcc (Ubuntu 13.2.0-23ubuntu4) 13.2.0", types.Version{Major: 13, Minor: 2}},
		{types.FamilyGCC, "gcc (GCC) 14.1.1 20240522", types.Version{Major: 14, Minor: 1, Patch: 1}},
		{types.FamilyClang, "clang version 17.0.6 (Fedora 17.0.6-1.fc39)", types.Version{Major: 17, Minor: 0, Patch: 6}},
		{types.FamilyClang, "Apple clang version 15.0.0 (clang-1500.3.9.4)", types.Version{Major: 15}},
		{types.FamilyMSVC, "Microsoft (R) C/C++ Optimizing Compiler Version 19.29.30133 for x86", types.Version{Major: 19, Minor: 29, Patch: 30133}},
	}

	for _, tc := range cases {
		spec, ok := specFor(tc.family)
		require.True(t, ok)
		v, ok := parseFamilyVersion(spec, tc.output)
		require.True(t, ok, "no version parsed from %q", tc.output)
		assert.Equal(t, tc.want, v, "output %q", tc.output)
	}
}

func TestCapabilitiesFor_VersionGated(t *testing.T) {
	old := capabilitiesFor(types.FamilyGCC, types.Version{Major: 9})
	assert.Contains(t, old, CapCxx17)
	assert.NotContains(t, old, CapCxx20)

	recent := capabilitiesFor(types.FamilyGCC, types.Version{Major: 13})
	assert.Contains(t, recent, CapCxx20)
	assert.Contains(t, recent, CapCxx23)
	assert.IsIncreasing(t, recent, "capability sets are sorted")
}

func TestCXXFor(t *testing.T) {
	assert.Equal(t, "/usr/bin/g++", CXXFor(types.FamilyGCC, "/usr/bin/gcc"))
	assert.Equal(t, "/usr/bin/g++-13", CXXFor(types.FamilyGCC, "/usr/bin/gcc-13"))
	assert.Equal(t, "/opt/llvm/bin/clang++", CXXFor(types.FamilyClang, "/opt/llvm/bin/clang"))
	assert.Equal(t, "C:\\VC\\bin\\cl.exe", CXXFor(types.FamilyMSVC, "C:\\VC\\bin\\cl.exe"))
}
