package types

// NativeTuning controls host-native optimization flags in generated profiles.
// The corpus historically enabled them only for one Arch derivative; the
// policy is explicit and configurable here.
type NativeTuning string

const (
	// TuningAuto enables native tuning only for distributions that ship
	// host-tuned userlands (currently the cachyos Arch derivative).
	TuningAuto NativeTuning = "auto"
	// TuningAlways enables native tuning on every non-cross profile.
	TuningAlways NativeTuning = "always"
	// TuningNever disables native tuning everywhere.
	TuningNever NativeTuning = "never"
)

// SelectionPolicy drives the toolchain and backend selectors. It is supplied
// by configuration and read-only to the selectors.
type SelectionPolicy struct {
	// ToolchainPriority is the family preference order for the toolchain
	// selector.
	ToolchainPriority []Family `json:"toolchain_priority"`

	// BackendPriority is the preference order for the backend selector.
	BackendPriority []BackendKind `json:"backend_priority"`

	// MinimumVersions maps a family or backend name to its version floor.
	// Families without an entry have no floor.
	MinimumVersions map[string]Version `json:"minimum_versions,omitempty"`

	// NativeTuning controls host-native optimization flags.
	NativeTuning NativeTuning `json:"native_tuning,omitempty"`
}

// MinimumFor returns the version floor for a family or backend name, and
// whether one is configured.
func (p SelectionPolicy) MinimumFor(name string) (Version, bool) {
	v, ok := p.MinimumVersions[name]
	return v, ok
}

// DefaultPolicy returns the built-in selection policy: clang preferred over
// gcc over msvc, conan over vcpkg over cpm over the native manager, with the
// compiler version floors the project's C++ standard requires.
func DefaultPolicy() SelectionPolicy {
	return SelectionPolicy{
		ToolchainPriority: []Family{FamilyClang, FamilyGCC, FamilyMSVC},
		BackendPriority:   []BackendKind{BackendConan, BackendVcpkg, BackendCPM, BackendNative},
		MinimumVersions: map[string]Version{
			string(FamilyGCC):   {Major: 9},
			string(FamilyClang): {Major: 10},
			string(FamilyMSVC):  {Major: 19, Minor: 20},
		},
		NativeTuning: TuningAuto,
	}
}
