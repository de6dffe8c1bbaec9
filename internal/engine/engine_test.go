package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WyattAu/omnicpp/internal/hostcache"
	"github.com/WyattAu/omnicpp/internal/profile"
	"github.com/WyattAu/omnicpp/internal/types"
)

type fakeToolchains struct {
	calls      int
	candidates []types.ToolchainCandidate
}

func (f *fakeToolchains) DetectAll(context.Context) []types.ToolchainCandidate {
	f.calls++
	return f.candidates
}

type fakeBackends struct {
	calls   int
	records []types.BackendRecord
}

func (f *fakeBackends) DetectAll(context.Context) []types.BackendRecord {
	f.calls++
	return f.records
}

func lookPathWith(present ...string) func(string) (string, error) {
	set := map[string]string{}
	for _, name := range present {
		set[name] = "/usr/bin/" + name
	}
	return func(name string) (string, error) {
		if p, ok := set[name]; ok {
			return p, nil
		}
		return "", fmt.Errorf("%s: executable file not found in $PATH", name)
	}
}

func testEngine(plat types.PlatformRecord, tc *fakeToolchains, be *fakeBackends, lookPath func(string) (string, error)) *Engine {
	return &Engine{
		Policy:         types.DefaultPolicy(),
		Cache:          &hostcache.Cache{},
		DetectPlatform: func() types.PlatformRecord { return plat },
		Toolchains:     tc,
		Backends:       be,
		LookPath:       lookPath,
	}
}

func linuxPlatform() types.PlatformRecord {
	return types.PlatformRecord{OSFamily: types.OSLinux, ReleaseName: "arch", Arch: "amd64", DefaultABI: types.ABIGnu}
}

func availableGCC() types.ToolchainCandidate {
	return types.ToolchainCandidate{
		Family:  types.FamilyGCC,
		Path:    "/usr/bin/gcc",
		Version: types.Version{Major: 13},
		Status:  types.StatusAvailable,
		Flags:   []string{"-Wall"},
	}
}

func TestValidate_AggregatesAllProblems(t *testing.T) {
	// Two independent problems — no compiler, no backend — must yield
	// exactly two errors, not one: validation never stops at the first.
	tc := &fakeToolchains{candidates: []types.ToolchainCandidate{
		{Family: types.FamilyGCC, Status: types.StatusNotFound},
		{Family: types.FamilyClang, Status: types.StatusNotFound},
	}}
	be := &fakeBackends{records: []types.BackendRecord{
		{Kind: types.BackendConan},
	}}
	e := testEngine(linuxPlatform(), tc, be, lookPathWith("cmake", "ninja"))

	report := e.Validate(context.Background())

	assert.False(t, report.Valid)
	assert.Len(t, report.Errors, 2)
	assert.Contains(t, report.Errors[0], "toolchain")
	assert.Contains(t, report.Errors[1], "backend")
}

func TestValidate_CleanHost(t *testing.T) {
	tc := &fakeToolchains{candidates: []types.ToolchainCandidate{availableGCC()}}
	be := &fakeBackends{records: []types.BackendRecord{
		{Kind: types.BackendConan, Available: true},
	}}
	e := testEngine(linuxPlatform(), tc, be, lookPathWith("cmake", "ninja"))

	report := e.Validate(context.Background())

	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
}

func TestValidate_MissingBuildToolsCarryHints(t *testing.T) {
	tc := &fakeToolchains{candidates: []types.ToolchainCandidate{availableGCC()}}
	be := &fakeBackends{records: []types.BackendRecord{{Kind: types.BackendConan, Available: true}}}
	e := testEngine(linuxPlatform(), tc, be, lookPathWith("cmake"))

	report := e.Validate(context.Background())

	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "ninja not found on PATH")
	assert.Contains(t, report.Errors[0], "pacman -S --needed ninja")
}

func TestValidate_ActiveNixShellMissingTools(t *testing.T) {
	plat := linuxPlatform()
	plat.Extra = map[string]string{types.ExtraNixShell: "pure"}

	tc := &fakeToolchains{candidates: []types.ToolchainCandidate{availableGCC()}}
	be := &fakeBackends{records: []types.BackendRecord{{Kind: types.BackendConan, Available: true}}}
	e := testEngine(plat, tc, be, lookPathWith())

	report := e.Validate(context.Background())

	require.Len(t, report.Errors, 2)
	for _, msg := range report.Errors {
		assert.Contains(t, msg, "nix shell")
	}
}

func TestProbes_CachedAcrossCalls(t *testing.T) {
	tc := &fakeToolchains{candidates: []types.ToolchainCandidate{availableGCC()}}
	be := &fakeBackends{records: []types.BackendRecord{{Kind: types.BackendConan, Available: true}}}
	e := testEngine(linuxPlatform(), tc, be, lookPathWith("cmake", "ninja"))

	e.Validate(context.Background())
	e.Validate(context.Background())

	assert.Equal(t, 1, tc.calls, "probe results are cached for the invocation")
	assert.Equal(t, 1, be.calls)

	e.Cache.Invalidate()
	e.Validate(context.Background())

	assert.Equal(t, 2, tc.calls, "explicit invalidation forces a re-probe")
}

func TestProfile_EndToEnd(t *testing.T) {
	tc := &fakeToolchains{candidates: []types.ToolchainCandidate{availableGCC()}}
	be := &fakeBackends{records: []types.BackendRecord{{Kind: types.BackendConan, Available: true}}}
	e := testEngine(linuxPlatform(), tc, be, lookPathWith("cmake", "ninja"))

	p, err := e.Profile(context.Background(), types.BuildRelease, profile.Overrides{})

	require.NoError(t, err)
	assert.Equal(t, types.FamilyGCC, p.Toolchain.Family)
	assert.Contains(t, p.CFlags, "-O3")
	assert.Equal(t, "/usr/bin/gcc", p.Environment["CC"])
}

func TestCommand_PropagatesSelectionFailure(t *testing.T) {
	tc := &fakeToolchains{candidates: []types.ToolchainCandidate{
		{Family: types.FamilyGCC, Status: types.StatusNotFound},
	}}
	be := &fakeBackends{}
	e := testEngine(linuxPlatform(), tc, be, lookPathWith())

	_, err := e.Command(context.Background(), types.ActionBuild, types.BuildDebug, "", profile.Overrides{})

	var notFound *types.NotFoundFailure
	require.ErrorAs(t, err, &notFound)
}

func TestInstallHint_Families(t *testing.T) {
	cases := []struct {
		plat types.PlatformRecord
		want string
	}{
		{types.PlatformRecord{OSFamily: types.OSLinux, ReleaseName: "cachyos", DerivativeOf: "arch"}, "sudo pacman -S --needed ninja"},
		{types.PlatformRecord{OSFamily: types.OSLinux, ReleaseName: "ubuntu", DerivativeOf: "debian"}, "sudo apt-get install ninja-build"},
		{types.PlatformRecord{OSFamily: types.OSLinux, ReleaseName: "fedora"}, "sudo dnf install ninja-build"},
		{types.PlatformRecord{OSFamily: types.OSDarwin}, "brew install ninja"},
		{types.PlatformRecord{OSFamily: types.OSLinux, ReleaseName: "mystery", DerivativeOf: "ubuntu"}, "sudo apt-get install ninja-build"},
	}

	for _, tcase := range cases {
		hint := installHint(tcase.plat, "ninja")
		assert.Contains(t, hint, tcase.want, "platform %+v", tcase.plat)
	}
}
