package profile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/WyattAu/omnicpp/internal/types"
)

// The textual profile form is four ordered key-value sections:
//
//	[settings]   identity: platform, compiler, build type
//	[buildenv]   ordered flag and define sequences, one entry per line
//	[conf]       tool configuration: capabilities, search paths
//	[env]        free-form environment variables, sorted by key
//
// Repeated keys in [buildenv] and [conf] preserve sequence order, which is
// what makes the form round-trip: Parse(Marshal(p)) reproduces the same
// flags in the same order and the same environment map.
const (
	sectionSettings = "settings"
	sectionBuildenv = "buildenv"
	sectionConf     = "conf"
	sectionEnv      = "env"
)

// Marshal serializes a BuildProfile to its textual form. Output is
// deterministic: equal profiles marshal to byte-identical text.
func Marshal(p types.BuildProfile) []byte {
	var b strings.Builder

	writeSection(&b, sectionSettings)
	writeKV(&b, "os", p.Platform.OSFamily)
	writeKV(&b, "os_version", p.Platform.OSVersion)
	writeKV(&b, "arch", p.Platform.Arch)
	writeKV(&b, "abi", p.Platform.DefaultABI)
	writeKV(&b, "distro", p.Platform.ReleaseName)
	writeKV(&b, "distro_version", p.Platform.ReleaseVersion)
	writeKV(&b, "derivative_of", p.Platform.DerivativeOf)
	writeKV(&b, "compiler", string(p.Toolchain.Family))
	if !p.Toolchain.Version.IsZero() {
		writeKV(&b, "compiler.version", p.Toolchain.Version.String())
	}
	writeKV(&b, "compiler.path", p.Toolchain.Path)
	writeKV(&b, "compiler.triple", p.Toolchain.TargetTriple)
	writeKV(&b, "build_type", string(p.BuildType))

	b.WriteString("\n")
	writeSection(&b, sectionBuildenv)
	writeSeq(&b, "cflags", p.CFlags)
	writeSeq(&b, "cxxflags", p.CXXFlags)
	writeSeq(&b, "ldflags", p.LinkerFlags)
	writeSeq(&b, "define", p.Defines)

	b.WriteString("\n")
	writeSection(&b, sectionConf)
	writeSeq(&b, "capability", p.Toolchain.Capabilities)
	writeSeq(&b, "include_path", p.Toolchain.IncludePaths)
	writeSeq(&b, "library_path", p.Toolchain.LibraryPaths)

	b.WriteString("\n")
	writeSection(&b, sectionEnv)
	keys := make([]string, 0, len(p.Environment))
	for k := range p.Environment {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		writeKV(&b, k, p.Environment[k])
	}

	return []byte(b.String())
}

func writeSection(b *strings.Builder, name string) {
	fmt.Fprintf(b, "[%s]\n", name)
}

// writeKV writes one key=value line, skipping empty values so the settings
// section only carries detected facts.
func writeKV(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s=%s\n", key, value)
}

// writeSeq writes a repeated key preserving sequence order.
func writeSeq(b *strings.Builder, key string, values []string) {
	for _, v := range values {
		fmt.Fprintf(b, "%s=%s\n", key, v)
	}
}
