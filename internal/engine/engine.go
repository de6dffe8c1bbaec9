// Package engine wires the probes, selectors, profile and command generators
// behind one front door. It owns the probe result cache and is the only
// component the CLI calls in the common path.
package engine

import (
	"context"
	"os/exec"
	"sync"

	"github.com/WyattAu/omnicpp/internal/backend"
	"github.com/WyattAu/omnicpp/internal/command"
	"github.com/WyattAu/omnicpp/internal/hostcache"
	"github.com/WyattAu/omnicpp/internal/platform"
	"github.com/WyattAu/omnicpp/internal/profile"
	"github.com/WyattAu/omnicpp/internal/selector"
	"github.com/WyattAu/omnicpp/internal/toolchain"
	"github.com/WyattAu/omnicpp/internal/types"
)

// ToolchainProber and BackendProber are the probe contracts the engine
// consumes; the real probers satisfy them and tests substitute fixtures.
type ToolchainProber interface {
	DetectAll(ctx context.Context) []types.ToolchainCandidate
}

// BackendProber detects dependency backends.
type BackendProber interface {
	DetectAll(ctx context.Context) []types.BackendRecord
}

// Probes bundles one coherent snapshot of all three probe results.
type Probes struct {
	Platform   types.PlatformRecord
	Toolchains []types.ToolchainCandidate
	Backends   []types.BackendRecord
}

// Engine coordinates detection, selection, validation and generation for one
// invocation. Construct with New; the zero value lacks probers.
type Engine struct {
	// Policy drives the selectors and the probes' version floors.
	Policy types.SelectionPolicy

	// Cache memoizes probe results. Callers share it across engine calls
	// and may Invalidate it after changing the environment.
	Cache *hostcache.Cache

	// DetectPlatform, Toolchains and Backends are the probe entry points.
	// Toolchains may be nil, in which case a real prober is built from the
	// detected platform's OS family (MSVC is only probed on Windows).
	DetectPlatform func() types.PlatformRecord
	Toolchains     ToolchainProber
	Backends       BackendProber

	// LookPath resolves required external build tools during validation.
	LookPath func(string) (string, error)
}

// New builds an Engine over the real probes.
func New(policy types.SelectionPolicy) *Engine {
	return &Engine{
		Policy:         policy,
		Cache:          &hostcache.Cache{},
		DetectPlatform: platform.Detect,
		Backends:       backend.NewProber(),
		LookPath:       exec.LookPath,
	}
}

// Probes returns the cached probe snapshot, detecting on first use. The
// platform is probed first (it is subprocess-free and the toolchain probe
// consumes its OS classification); the toolchain and backend probes then run
// concurrently since neither depends on the other.
func (e *Engine) Probes(ctx context.Context) Probes {
	plat := e.Cache.Platform(e.DetectPlatform)

	tp := e.Toolchains
	if tp == nil {
		tp = toolchain.NewProber(plat.OSFamily, e.Policy)
	}

	var (
		wg         sync.WaitGroup
		toolchains []types.ToolchainCandidate
		backends   []types.BackendRecord
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		toolchains = e.Cache.Toolchains(func() []types.ToolchainCandidate {
			return tp.DetectAll(ctx)
		})
	}()
	go func() {
		defer wg.Done()
		backends = e.Cache.Backends(func() []types.BackendRecord {
			return e.Backends.DetectAll(ctx)
		})
	}()
	wg.Wait()

	return Probes{Platform: plat, Toolchains: toolchains, Backends: backends}
}

// SelectToolchain runs the toolchain selector over the cached probes.
func (e *Engine) SelectToolchain(ctx context.Context) (types.ToolchainCandidate, error) {
	probes := e.Probes(ctx)
	return selector.SelectToolchain(probes.Toolchains, e.Policy)
}

// SelectBackend runs the backend selector over the cached probes.
func (e *Engine) SelectBackend(ctx context.Context) (types.BackendRecord, error) {
	probes := e.Probes(ctx)
	return selector.SelectBackend(probes.Backends, e.Policy)
}

// Profile resolves the host toolchain and derives a build profile.
func (e *Engine) Profile(ctx context.Context, buildType types.BuildType, overrides profile.Overrides) (types.BuildProfile, error) {
	probes := e.Probes(ctx)
	tc, err := selector.SelectToolchain(probes.Toolchains, e.Policy)
	if err != nil {
		return types.BuildProfile{}, err
	}
	opts := profile.Options{NativeTuning: e.Policy.NativeTuning, Overrides: overrides}
	return profile.Generate(probes.Platform, tc, buildType, opts), nil
}

// Command derives a build profile and maps the action onto a CommandSpec.
func (e *Engine) Command(ctx context.Context, action types.Action, buildType types.BuildType, target string, overrides profile.Overrides) (types.CommandSpec, error) {
	p, err := e.Profile(ctx, buildType, overrides)
	if err != nil {
		return types.CommandSpec{}, err
	}
	return command.Generate(p, action, target)
}
