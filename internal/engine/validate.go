package engine

import (
	"context"
	"fmt"

	"github.com/WyattAu/omnicpp/internal/selector"
	"github.com/WyattAu/omnicpp/internal/types"
)

// requiredBuildTools must be on the search path for any action to run:
// the build-graph generator and the build driver.
var requiredBuildTools = []string{"cmake", "ninja"}

// Validate aggregates every precondition for building on this host into a
// single report: a usable toolchain, at least one dependency backend, the
// required external build tools, and — when a Nix shell is active — that the
// shell itself provides those tools. Nothing short-circuits: one run surfaces
// the complete remediation list.
func (e *Engine) Validate(ctx context.Context) types.ValidationReport {
	probes := e.Probes(ctx)
	var b types.ReportBuilder

	if _, err := selector.SelectToolchain(probes.Toolchains, e.Policy); err != nil {
		b.Add(remediate(err.Error(), toolchainHint(probes.Platform, e.Policy)))
	}

	if _, err := selector.SelectBackend(probes.Backends, e.Policy); err != nil {
		b.Add(remediate(err.Error(), backendHint(probes.Platform)))
	}

	inNix := probes.Platform.InNixShell()
	for _, tool := range requiredBuildTools {
		if _, err := e.LookPath(tool); err == nil {
			continue
		}
		if inNix {
			// An absent Nix shell is never an error; an active one missing
			// its required tools is.
			b.Add(fmt.Sprintf("%s is not available inside the active nix shell; add it to the shell definition", tool))
			continue
		}
		b.Add(remediate(tool+" not found on PATH", installHint(probes.Platform, tool)))
	}

	return b.Report()
}

// remediate appends an install hint to a problem message when one exists.
func remediate(problem, hint string) string {
	if hint == "" {
		return problem
	}
	return problem + " (" + hint + ")"
}
