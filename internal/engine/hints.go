package engine

import (
	"fmt"
	"strings"

	"github.com/WyattAu/omnicpp/internal/platform"
	"github.com/WyattAu/omnicpp/internal/types"
)

// packageNames maps a tool onto its package name per distro family, for the
// families where the two differ.
var packageNames = map[string]map[string]string{
	"ninja": {
		"debian": "ninja-build",
		"rhel":   "ninja-build",
	},
}

// installHint suggests the native package-manager command that installs the
// given tools on the detected platform. Empty when no suggestion applies.
func installHint(plat types.PlatformRecord, tools ...string) string {
	if len(tools) == 0 {
		return ""
	}

	family := platform.DistroFamily(plat.ReleaseName)
	if family == "" && plat.DerivativeOf != "" {
		family = platform.DistroFamily(plat.DerivativeOf)
	}

	pkgs := make([]string, len(tools))
	for i, tool := range tools {
		pkgs[i] = tool
		if byFamily, ok := packageNames[tool]; ok {
			if name, ok := byFamily[family]; ok {
				pkgs[i] = name
			}
		}
	}
	list := strings.Join(pkgs, " ")

	switch family {
	case "arch":
		return "try: sudo pacman -S --needed " + list
	case "debian":
		return "try: sudo apt-get install " + list
	case "rhel":
		return "try: sudo dnf install " + list
	case "suse":
		return "try: sudo zypper install " + list
	case "alpine":
		return "try: sudo apk add " + list
	case "nixos":
		return "add " + list + " to your shell or system packages"
	}

	switch plat.OSFamily {
	case types.OSDarwin:
		return "try: brew install " + list
	case types.OSWindows:
		return "try: winget install " + list
	}
	return ""
}

// toolchainHint names the compiler packages for the policy's first family.
func toolchainHint(plat types.PlatformRecord, policy types.SelectionPolicy) string {
	if len(policy.ToolchainPriority) == 0 {
		return ""
	}
	switch policy.ToolchainPriority[0] {
	case types.FamilyClang:
		return installHint(plat, "clang")
	case types.FamilyGCC:
		return installHint(plat, "gcc")
	case types.FamilyMSVC:
		if plat.OSFamily == types.OSWindows {
			return "install the Visual Studio Build Tools"
		}
		return ""
	}
	return ""
}

// backendHint suggests the least intrusive backend to install.
func backendHint(plat types.PlatformRecord) string {
	hint := installHint(plat, "cmake")
	if hint == "" {
		return "install conan, vcpkg or cmake"
	}
	return fmt.Sprintf("cpm needs only cmake; %s", hint)
}
