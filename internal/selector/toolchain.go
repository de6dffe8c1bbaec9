// Package selector applies priority and fallback policy over probe results.
// Selectors are pure functions: they never probe, never mutate their inputs,
// and return typed failures instead of raising, so the validator can
// aggregate several problems from one pass.
package selector

import (
	"github.com/WyattAu/omnicpp/internal/types"
)

// SelectToolchain picks the first family in policy.ToolchainPriority that has
// an available candidate. Families absent from the host are skipped, so a
// lower-priority family can win over a missing higher-priority one.
//
// When candidates exist but every prioritized one is below its version floor,
// the returned failure names the best (highest-version) incompatible
// candidate and its required minimum — the host is never silently downgraded
// to an arbitrary family. When no prioritized family is present at all, the
// failure is a distinct NotFoundFailure.
func SelectToolchain(candidates []types.ToolchainCandidate, policy types.SelectionPolicy) (types.ToolchainCandidate, error) {
	byFamily := make(map[types.Family]types.ToolchainCandidate, len(candidates))
	for _, c := range candidates {
		// Probes emit one candidate per family; keep the highest version if
		// a caller hands us duplicates.
		prev, ok := byFamily[c.Family]
		if !ok || prev.Version.Less(c.Version) {
			byFamily[c.Family] = c
		}
	}

	var bestIncompatible *types.ToolchainCandidate
	anyPresent := false

	for _, family := range policy.ToolchainPriority {
		cand, ok := byFamily[family]
		if !ok || cand.Status == types.StatusNotFound {
			continue
		}
		anyPresent = true

		if cand.Status == types.StatusAvailable {
			return cand, nil
		}
		if cand.Status == types.StatusIncompatibleVersion {
			if bestIncompatible == nil || bestIncompatible.Version.Less(cand.Version) {
				c := cand
				bestIncompatible = &c
			}
		}
	}

	if bestIncompatible != nil {
		required, _ := policy.MinimumFor(string(bestIncompatible.Family))
		return types.ToolchainCandidate{}, &types.IncompatibleVersionFailure{
			What:     string(bestIncompatible.Family),
			Found:    bestIncompatible.Version,
			Required: required,
			Path:     bestIncompatible.Path,
		}
	}
	if anyPresent {
		// Present candidates exist but none is usable and none carries a
		// version (query failures). Report as not found with the family list.
		return types.ToolchainCandidate{}, &types.NotFoundFailure{What: "usable toolchain"}
	}
	return types.ToolchainCandidate{}, &types.NotFoundFailure{What: "toolchain"}
}
