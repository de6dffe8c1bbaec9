// Package platform detects the host platform: OS family, architecture,
// distribution identity (including known derivatives) and default ABI.
package platform

import (
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"

	"github.com/WyattAu/omnicpp/internal/types"
)

// osReleasePath is the structured key-value release descriptor on Linux.
const osReleasePath = "/etc/os-release"

// nixShellMarker is the environment variable an active Nix shell exports.
// It is a read-only input; the probe never writes it.
const nixShellMarker = "IN_NIX_SHELL"

// DebugMode enables diagnostic messages to stderr.
var DebugMode bool

// Detect probes the host and returns an immutable PlatformRecord. It never
// fails: when OS identification is unavailable the record carries
// OSFamily = "unknown" and callers must handle that explicitly.
func Detect() types.PlatformRecord {
	return detectWith(osReleasePath, os.Getenv)
}

// detectWith is the injectable core of Detect. The release descriptor path
// and environment lookup are parameters so tests can run against fixtures.
func detectWith(releasePath string, getenv func(string) string) types.PlatformRecord {
	rec := types.PlatformRecord{
		OSFamily: classifyOS(runtime.GOOS),
		Arch:     runtime.GOARCH,
	}

	// Kernel/OS version via gopsutil; failure degrades the field, never the probe.
	if info, err := host.Info(); err == nil {
		rec.OSVersion = info.KernelVersion
	} else if DebugMode {
		fmt.Fprintf(os.Stderr, "debug: host info unavailable: %v\n", err)
	}

	if rec.OSFamily == types.OSLinux {
		applyRelease(&rec, releasePath)
	}
	rec.DefaultABI = defaultABI(rec)

	if marker := getenv(nixShellMarker); marker != "" {
		if rec.Extra == nil {
			rec.Extra = make(map[string]string)
		}
		rec.Extra[types.ExtraNixShell] = marker
	}

	return rec
}

// classifyOS maps a GOOS value onto the supported OS families.
func classifyOS(goos string) string {
	switch goos {
	case "linux":
		return types.OSLinux
	case "darwin":
		return types.OSDarwin
	case "windows":
		return types.OSWindows
	default:
		return types.OSUnknown
	}
}

// applyRelease reads the release descriptor and fills distribution identity.
// Absence of the descriptor degrades to OS-level detection only.
func applyRelease(rec *types.PlatformRecord, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		if DebugMode {
			fmt.Fprintf(os.Stderr, "debug: release descriptor unreadable: %v\n", err)
		}
		return
	}

	fields := ParseOSRelease(data)
	rec.ReleaseName = fields["ID"]
	rec.ReleaseVersion = fields["VERSION_ID"]

	if parent, ok := parentDistro(fields["ID"], fields["ID_LIKE"]); ok {
		rec.DerivativeOf = parent
	}
}

// defaultABI derives the ABI a native toolchain targets on this platform.
func defaultABI(rec types.PlatformRecord) string {
	switch rec.OSFamily {
	case types.OSLinux:
		if rec.ReleaseName == "alpine" {
			return types.ABIMusl
		}
		return types.ABIGnu
	case types.OSDarwin:
		return types.ABIDarwin
	case types.OSWindows:
		return types.ABIMsvc
	default:
		return ""
	}
}
