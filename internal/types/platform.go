// Package types defines the data model shared by the probes, selectors and
// generators: platform and toolchain records, backend records, selection
// policy, build profiles, command specs and the validation report.
package types

// OS family identifiers as reported by PlatformRecord.OSFamily.
const (
	OSLinux   = "linux"
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSUnknown = "unknown"
)

// ABI identifiers for PlatformRecord.DefaultABI.
const (
	ABIGnu    = "gnu"
	ABIMusl   = "musl"
	ABIDarwin = "darwin"
	ABIMsvc   = "msvc"
)

// ExtraNixShell is the PlatformRecord.Extra key recording that a Nix shell
// was active when the probe ran. The value is the raw marker variable value.
const ExtraNixShell = "nix_shell"

// PlatformRecord describes the detected host platform. It is immutable once
// detected; probes create it once per process and cache it for the process
// lifetime.
type PlatformRecord struct {
	// OSFamily is "linux", "darwin", "windows" or "unknown".
	OSFamily string `json:"os_family"`

	// OSVersion is the kernel (or OS build) version string.
	OSVersion string `json:"os_version,omitempty"`

	// ReleaseName is the distribution identifier on Linux (e.g. "ubuntu",
	// "cachyos"). Empty on other OS families.
	ReleaseName string `json:"os_release_name,omitempty"`

	// ReleaseVersion is the distribution version (e.g. "24.04"). Rolling
	// releases may leave it empty.
	ReleaseVersion string `json:"os_release_version,omitempty"`

	// Arch is the CPU architecture (e.g. "amd64", "arm64").
	Arch string `json:"architecture"`

	// DefaultABI is the ABI a native toolchain targets by default.
	DefaultABI string `json:"default_abi,omitempty"`

	// DerivativeOf names the better-known parent distribution when the
	// detected distribution is a known derivative (e.g. "arch" for
	// cachyos). Empty otherwise.
	DerivativeOf string `json:"derivative_of,omitempty"`

	// Extra carries free-form detection detail (e.g. the Nix shell marker).
	Extra map[string]string `json:"extra,omitempty"`
}

// IsKnownDerivative reports whether the detected distribution is a known
// derivative of base (e.g. IsKnownDerivative("arch") for cachyos).
func (p PlatformRecord) IsKnownDerivative(base string) bool {
	return p.DerivativeOf != "" && p.DerivativeOf == base
}

// InNixShell reports whether a reproducible Nix shell was active at probe time.
func (p PlatformRecord) InNixShell() bool {
	return p.Extra[ExtraNixShell] != ""
}
