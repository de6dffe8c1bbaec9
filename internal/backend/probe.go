// Package backend probes dependency-acquisition backends: the three
// build-integrated fetchers (conan, vcpkg, cpm) and the OS-native package
// manager. Each backend is checked independently; one backend's absence
// never affects another's detection.
package backend

import (
	"context"
	"os/exec"
	"regexp"
	"sync"
	"time"

	"github.com/WyattAu/omnicpp/internal/subproc"
	"github.com/WyattAu/omnicpp/internal/types"
)

// DefaultTimeout bounds each version-query subprocess.
const DefaultTimeout = 10 * time.Second

// backendDef describes how one build-integrated backend is probed.
// CPM rides on CMake (it is a CMake module, not a standalone program), so its
// availability is keyed to the cmake executable.
type backendDef struct {
	kind           types.BackendKind
	executable     string
	versionArgs    []string
	versionPattern *regexp.Regexp
}

var backendDefs = []backendDef{
	{
		kind:           types.BackendConan,
		executable:     "conan",
		versionArgs:    []string{"--version"},
		versionPattern: regexp.MustCompile(`Conan version ([0-9]+(?:\.[0-9]+){0,2})`),
	},
	{
		kind:           types.BackendVcpkg,
		executable:     "vcpkg",
		versionArgs:    []string{"--version"},
		versionPattern: regexp.MustCompile(`version ([0-9]+(?:\.[0-9]+){0,2})`),
	},
	{
		kind:           types.BackendCPM,
		executable:     "cmake",
		versionArgs:    []string{"--version"},
		versionPattern: regexp.MustCompile(`cmake version ([0-9]+(?:\.[0-9]+){0,2})`),
	},
}

// Prober detects dependency backends. Construct with NewProber.
type Prober struct {
	// Runner executes version-query subprocesses.
	Runner subproc.Runner

	// LookPath resolves an executable on the process search path.
	LookPath func(string) (string, error)

	// Timeout bounds each individual subprocess.
	Timeout time.Duration
}

// NewProber returns a Prober backed by the real process environment.
func NewProber() *Prober {
	return &Prober{
		Runner:   subproc.ExecRunner{},
		LookPath: exec.LookPath,
		Timeout:  DefaultTimeout,
	}
}

// DetectAll probes every backend concurrently: the build-integrated backends
// plus the native package manager. The result is a set; ordering carries no
// meaning until the selector imposes one.
func (p *Prober) DetectAll(ctx context.Context) []types.BackendRecord {
	records := make([]types.BackendRecord, len(backendDefs)+1)

	var wg sync.WaitGroup
	for i, def := range backendDefs {
		wg.Add(1)
		go func(i int, def backendDef) {
			defer wg.Done()
			records[i] = p.detectOne(ctx, def)
		}(i, def)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		records[len(backendDefs)] = p.detectNative()
	}()
	wg.Wait()

	return records
}

// detectOne checks executable presence, then runs the version flag. A missing
// executable is a normal outcome, not an error.
func (p *Prober) detectOne(ctx context.Context, def backendDef) types.BackendRecord {
	rec := types.BackendRecord{Kind: def.kind}

	path, err := p.LookPath(def.executable)
	if err != nil {
		rec.Detail = def.executable + " not found on PATH"
		return rec
	}
	rec.Path = path

	runCtx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()
	stdout, stderr, err := p.Runner.Run(runCtx, path, def.versionArgs...)
	output := stdout + "\n" + stderr

	if m := def.versionPattern.FindStringSubmatch(output); m != nil {
		if v, ok := types.ParseVersion(m[1]); ok {
			rec.Version = v
			rec.Available = true
			return rec
		}
	}
	if err != nil {
		rec.Detail = (&types.DetectionFailure{Tool: path, Err: err}).Error()
		return rec
	}
	// Executable answered but with unrecognized output; usable regardless.
	rec.Available = true
	return rec
}

func (p *Prober) timeout() time.Duration {
	if p.Timeout > 0 {
		return p.Timeout
	}
	return DefaultTimeout
}
