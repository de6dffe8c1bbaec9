package types

// BackendKind identifies a dependency-acquisition backend.
type BackendKind string

// Supported backends: three build-integrated fetchers plus the OS-native
// package manager.
const (
	BackendConan  BackendKind = "conan"
	BackendVcpkg  BackendKind = "vcpkg"
	BackendCPM    BackendKind = "cpm"
	BackendNative BackendKind = "native-os"
)

// KnownBackends lists the probeable backends in their default priority order.
var KnownBackends = []BackendKind{BackendConan, BackendVcpkg, BackendCPM, BackendNative}

// IsKnownBackend reports whether k names a probeable backend.
func IsKnownBackend(k BackendKind) bool {
	for _, b := range KnownBackends {
		if b == k {
			return true
		}
	}
	return false
}

// BackendRecord is the result of probing one dependency backend.
type BackendRecord struct {
	// Kind identifies the backend.
	Kind BackendKind `json:"kind"`

	// Path is the resolved executable path, empty when not found.
	Path string `json:"executable_path,omitempty"`

	// Version is the parsed backend version; zero when unknown.
	Version Version `json:"version"`

	// Available reports whether the backend can be used on this host.
	Available bool `json:"is_available"`

	// NativeName is the concrete manager behind BackendNative
	// (e.g. "pacman", "apt-get"). Empty for the other kinds.
	NativeName string `json:"native_name,omitempty"`

	// RequiresElevation reports whether mutating operations need elevated
	// privileges. Queries never do.
	RequiresElevation bool `json:"requires_elevated_privilege"`

	// Detail carries a human-readable note for unavailable backends.
	Detail string `json:"detail,omitempty"`
}
