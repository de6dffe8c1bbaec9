package selector

import "github.com/WyattAu/omnicpp/internal/types"

// SelectBackend returns the first backend in policy.BackendPriority that is
// available, regardless of the input record ordering. Unlike the toolchain
// selector there is no version floor by default; callers may impose one via
// policy.MinimumVersions keyed by backend kind.
func SelectBackend(records []types.BackendRecord, policy types.SelectionPolicy) (types.BackendRecord, error) {
	byKind := make(map[types.BackendKind]types.BackendRecord, len(records))
	for _, r := range records {
		byKind[r.Kind] = r
	}

	var bestIncompatible *types.BackendRecord
	var bestRequired types.Version

	for _, kind := range policy.BackendPriority {
		rec, ok := byKind[kind]
		if !ok || !rec.Available {
			continue
		}

		if min, floor := policy.MinimumFor(string(kind)); floor && !rec.Version.AtLeast(min) {
			if bestIncompatible == nil || bestIncompatible.Version.Less(rec.Version) {
				r := rec
				bestIncompatible = &r
				bestRequired = min
			}
			continue
		}
		return rec, nil
	}

	if bestIncompatible != nil {
		return types.BackendRecord{}, &types.IncompatibleVersionFailure{
			What:     string(bestIncompatible.Kind),
			Found:    bestIncompatible.Version,
			Required: bestRequired,
			Path:     bestIncompatible.Path,
		}
	}
	return types.BackendRecord{}, &types.NotFoundFailure{What: "dependency backend"}
}
