// Package toolchain probes installed compilers by family (GCC-like,
// Clang-like, MSVC-like), parsing versions and deriving capabilities from a
// static, version-gated table. Probing is subprocess-based with independent
// timeouts; a missing or hanging tool never stalls the other families.
package toolchain

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/WyattAu/omnicpp/internal/subproc"
	"github.com/WyattAu/omnicpp/internal/types"
)

// DefaultTimeout bounds each version-query subprocess.
const DefaultTimeout = 10 * time.Second

// DebugMode enables diagnostic messages to stderr.
var DebugMode bool

// Prober detects installed compilers. The zero value is not usable; call
// NewProber.
type Prober struct {
	// Runner executes introspection subprocesses.
	Runner subproc.Runner

	// LookPath resolves an executable on the process search path.
	LookPath func(string) (string, error)

	// ResolveLink canonicalizes a found path so versioned symlinks to the
	// same binary dedupe to one candidate.
	ResolveLink func(string) (string, error)

	// Timeout bounds each individual subprocess.
	Timeout time.Duration

	// OSFamily is the host OS classification from the platform probe; it is
	// only used to skip probes that cannot apply (MSVC off Windows).
	OSFamily string

	// Minimums holds per-family version floors. A candidate below its floor
	// is still returned, with StatusIncompatibleVersion, so callers can
	// distinguish "not installed" from "too old".
	Minimums map[types.Family]types.Version
}

// NewProber builds a Prober for the given host OS family using the policy's
// minimum versions.
func NewProber(osFamily string, policy types.SelectionPolicy) *Prober {
	minimums := make(map[types.Family]types.Version)
	for _, f := range types.KnownFamilies {
		if min, ok := policy.MinimumFor(string(f)); ok {
			minimums[f] = min
		}
	}
	return &Prober{
		Runner:      subproc.ExecRunner{},
		LookPath:    exec.LookPath,
		ResolveLink: filepath.EvalSymlinks,
		Timeout:     DefaultTimeout,
		OSFamily:    osFamily,
		Minimums:    minimums,
	}
}

// DetectAll probes every known family concurrently and returns one candidate
// per family. The result is a set: ordering carries no meaning until a
// selector imposes one.
func (p *Prober) DetectAll(ctx context.Context) []types.ToolchainCandidate {
	candidates := make([]types.ToolchainCandidate, len(types.KnownFamilies))

	var wg sync.WaitGroup
	for i, family := range types.KnownFamilies {
		wg.Add(1)
		go func(i int, family types.Family) {
			defer wg.Done()
			candidates[i] = p.Detect(ctx, family)
		}(i, family)
	}
	wg.Wait()

	return candidates
}

// Detect probes a single family. A missing tool is a normal, modeled outcome
// (StatusNotFound), never an error.
func (p *Prober) Detect(ctx context.Context, family types.Family) types.ToolchainCandidate {
	cand := types.ToolchainCandidate{Family: family, Status: types.StatusNotFound}

	spec, ok := specFor(family)
	if !ok {
		cand.Detail = "unsupported family"
		return cand
	}
	if spec.windowsOnly && p.OSFamily != types.OSWindows {
		cand.Detail = "not probed on this platform"
		return cand
	}

	type hit struct {
		path    string
		version types.Version
	}
	var (
		hits     []hit
		queryErr error
		seen     = map[string]struct{}{}
	)

	for _, name := range spec.executables {
		path, err := p.LookPath(name)
		if err != nil {
			continue
		}
		// Versioned names often symlink to the same binary.
		if p.ResolveLink != nil {
			if resolved, err := p.ResolveLink(path); err == nil {
				path = resolved
			}
		}
		if _, dup := seen[path]; dup {
			continue
		}
		seen[path] = struct{}{}

		version, err := p.queryVersion(ctx, spec, path)
		if err != nil {
			if ctx.Err() != nil {
				// Caller deadline hit: report the family as not found
				// rather than blocking on the remaining names.
				cand.Detail = "probe cancelled: " + ctx.Err().Error()
				return cand
			}
			if queryErr == nil {
				queryErr = &types.DetectionFailure{Tool: path, Err: err}
			}
			if DebugMode {
				fmt.Fprintf(os.Stderr, "debug: %s version query failed: %v\n", path, err)
			}
			continue
		}
		hits = append(hits, hit{path: path, version: version})
	}

	if len(hits) == 0 {
		if queryErr != nil {
			cand.Status = types.StatusMissingDependency
			cand.Detail = queryErr.Error()
		}
		return cand
	}

	// Tie-break multiple executables of one family by highest version.
	best := hits[0]
	for _, h := range hits[1:] {
		if best.version.Less(h.version) {
			best = h
		}
	}
	cand.Path = best.path
	cand.Version = best.version

	if min, ok := p.Minimums[family]; ok && !best.version.AtLeast(min) {
		cand.Status = types.StatusIncompatibleVersion
		cand.Detail = fmt.Sprintf("version %s is below the required minimum %s", best.version, min)
		return cand
	}

	cand.Status = types.StatusAvailable
	cand.Capabilities = capabilitiesFor(family, best.version)
	cand.Flags = append([]string(nil), spec.baseFlags...)
	p.introspect(ctx, spec, &cand)
	return cand
}

// queryVersion runs the family's version query with its own timeout and
// parses the output. MSVC's cl prints its banner to stderr and exits
// non-zero when run bare, so a parseable banner counts as success there.
func (p *Prober) queryVersion(ctx context.Context, spec familySpec, path string) (types.Version, error) {
	runCtx, cancel := context.WithTimeout(ctx, p.timeout())
	defer cancel()

	stdout, stderr, err := p.Runner.Run(runCtx, path, spec.versionArgs...)
	output := stdout
	if spec.bannerOnStderr {
		output = stdout + "\n" + stderr
	}

	if v, ok := parseFamilyVersion(spec, output); ok {
		return v, nil
	}
	if err != nil {
		return types.Version{}, err
	}
	return types.Version{}, fmt.Errorf("unrecognized version output %q", firstLine(output))
}

// introspect fills target triple and search paths via family-specific flags.
// Any failure here degrades the corresponding field to empty.
func (p *Prober) introspect(ctx context.Context, spec familySpec, cand *types.ToolchainCandidate) {
	if spec.tripleArgs == nil {
		cand.TargetTriple = derivedTriple(p.OSFamily)
	} else {
		runCtx, cancel := context.WithTimeout(ctx, p.timeout())
		stdout, _, err := p.Runner.Run(runCtx, cand.Path, spec.tripleArgs...)
		cancel()
		if err == nil {
			cand.TargetTriple = strings.TrimSpace(firstLine(stdout))
		}
	}

	if spec.searchArgs != nil {
		runCtx, cancel := context.WithTimeout(ctx, p.timeout())
		stdout, _, err := p.Runner.Run(runCtx, cand.Path, spec.searchArgs...)
		cancel()
		if err == nil {
			cand.IncludePaths, cand.LibraryPaths = parseSearchDirs(stdout)
		}
	}
}

func (p *Prober) timeout() time.Duration {
	if p.Timeout > 0 {
		return p.Timeout
	}
	return DefaultTimeout
}

// CXXFor maps an available candidate's C driver path onto its C++ driver
// (gcc-13 → g++-13, clang → clang++, cl → cl).
func CXXFor(family types.Family, cPath string) string {
	spec, ok := specFor(family)
	if !ok || cPath == "" {
		return cPath
	}
	dir, base := filepath.Split(cPath)
	ext := ""
	if e := filepath.Ext(base); strings.EqualFold(e, ".exe") {
		ext = e
		base = strings.TrimSuffix(base, e)
	}
	return dir + spec.cxxDriver(base) + ext
}

// derivedTriple synthesizes a triple for families without a triple flag.
func derivedTriple(osFamily string) string {
	if osFamily == types.OSWindows {
		return "x86_64-pc-windows-msvc"
	}
	return ""
}

// parseSearchDirs extracts include and library paths from GNU-style
// -print-search-dirs output.
func parseSearchDirs(output string) (includes, libraries []string) {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "install: "):
			install := strings.TrimPrefix(line, "install: ")
			if install != "" {
				includes = append(includes, filepath.Join(install, "include"))
			}
		case strings.HasPrefix(line, "libraries: "):
			raw := strings.TrimPrefix(line, "libraries: ")
			raw = strings.TrimPrefix(raw, "=")
			for _, dir := range strings.Split(raw, string(os.PathListSeparator)) {
				if dir != "" {
					libraries = append(libraries, dir)
				}
			}
		}
	}
	return includes, libraries
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return text[:idx]
	}
	return text
}
